package fluid

import "testing"

func TestLODController_Tiers(t *testing.T) {
	cases := []struct {
		name       string
		fps        float32
		entities   int
		resolution float32
		injection  float32
	}{
		{"full", 65, 10, 1.0, 1.0},
		{"medium", 55, 40, 0.75, 0.8},
		{"low", 30, 60, 0.5, 0.6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewLODController()
			d := c.Calculate(tc.fps, tc.entities)
			if d.Resolution != tc.resolution {
				t.Errorf("resolution: got %v, want %v", d.Resolution, tc.resolution)
			}
			if d.InjectionRate != tc.injection {
				t.Errorf("injection rate: got %v, want %v", d.InjectionRate, tc.injection)
			}
		})
	}
}

func TestLODController_Hysteresis(t *testing.T) {
	c := NewLODController()

	// Holding full resolution only needs fps above threshold-bias.
	if d := c.Calculate(57, 10); d.Resolution != 1.0 {
		t.Errorf("expected to hold full tier at 57fps, got %v", d.Resolution)
	}

	// Below the hold threshold the controller steps down to medium.
	if d := c.Calculate(47, 10); d.Resolution != 0.75 {
		t.Errorf("expected medium tier at 47fps, got %v", d.Resolution)
	}

	// 57fps was enough to hold full, but stepping back up from medium
	// requires crossing threshold+bias.
	if d := c.Calculate(57, 10); d.Resolution != 0.75 {
		t.Errorf("expected medium tier to hold at 57fps, got %v", d.Resolution)
	}

	if d := c.Calculate(66, 10); d.Resolution != 1.0 {
		t.Errorf("expected full tier at 66fps, got %v", d.Resolution)
	}
}

func TestLODController_EntityPressure(t *testing.T) {
	c := NewLODController()

	// High fps but too many entities for the full tier.
	if d := c.Calculate(120, 35); d.Resolution != 0.75 {
		t.Errorf("expected medium tier with 35 entities, got %v", d.Resolution)
	}

	// And too many for medium as well.
	c = NewLODController()
	if d := c.Calculate(120, 80); d.Resolution != 0.5 {
		t.Errorf("expected low tier with 80 entities, got %v", d.Resolution)
	}
}

func TestLODController_ZeroValueStartsAtFull(t *testing.T) {
	var c LODController
	if d := c.Calculate(57, 10); d.Resolution != 1.0 {
		t.Errorf("zero-value controller should bias toward full, got %v", d.Resolution)
	}
}
