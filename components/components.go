// Package components defines the ECS components of the demo scene.
package components

// Position is a normalized [0,1] scene position.
type Position struct {
	X, Y float32
}

// Velocity is drift in normalized units per second.
type Velocity struct {
	X, Y float32
}

// Mote is a drifting dye emitter. Each kind feeds its own dye layer, so the
// engine composites one layer per active kind.
type Mote struct {
	ID       uint32
	Kind     Kind
	Age      float32
	Lifetime float32
}

// Kind selects a mote's pigment and dye layer.
type Kind uint8

const (
	KindIndigo Kind = iota
	KindMadder
	KindOchre

	NumKinds
)

// String returns the pigment name, which doubles as the dye layer key.
func (k Kind) String() string {
	switch k {
	case KindIndigo:
		return "indigo"
	case KindMadder:
		return "madder"
	case KindOchre:
		return "ochre"
	}
	return "unknown"
}

// Color returns the pigment color injected by this kind, channels in [0,1].
func (k Kind) Color() (r, g, b float32) {
	switch k {
	case KindIndigo:
		return 0.18, 0.22, 0.65
	case KindMadder:
		return 0.72, 0.12, 0.25
	case KindOchre:
		return 0.80, 0.58, 0.14
	}
	return 1, 1, 1
}
