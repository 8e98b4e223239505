package fluid

// Quality tiers. Frame-rate thresholds are biased by lodBias in the
// direction that makes a tier change harder: stepping up to a higher
// resolution requires fps above threshold+bias, while holding the current
// tier only requires threshold-bias. Without the bias the output oscillates
// whenever fps hovers near a boundary.
const (
	lodBias = 5.0

	lodFullFPS      = 60.0
	lodFullEntities = 30

	lodMediumFPS      = 50.0
	lodMediumEntities = 50
)

// LODDecision is a quality tier: a simulation resolution scale and a
// throttle factor callers apply to their injection rates.
type LODDecision struct {
	Resolution    float32
	InjectionRate float32
}

// LODController picks a quality tier from measured fps and active entity
// count. It keeps only the last decided resolution, which sets the bias
// direction for hysteresis. Throttling how often a decision is taken, and
// any cooldown before acting on one, belong to the caller.
type LODController struct {
	last float32
}

// NewLODController returns a controller that starts at full resolution.
func NewLODController() *LODController {
	return &LODController{last: 1.0}
}

// Calculate returns the quality tier for the given frame rate and entity
// count, updating the hysteresis state to the decided resolution.
func (c *LODController) Calculate(fps float32, entityCount int) LODDecision {
	if c.last == 0 {
		c.last = 1.0
	}

	var d LODDecision
	switch {
	case fps >= c.threshold(1.0, lodFullFPS) && entityCount < lodFullEntities:
		d = LODDecision{Resolution: 1.0, InjectionRate: 1.0}
	case fps >= c.threshold(0.75, lodMediumFPS) && entityCount < lodMediumEntities:
		d = LODDecision{Resolution: 0.75, InjectionRate: 0.8}
	default:
		d = LODDecision{Resolution: 0.5, InjectionRate: 0.6}
	}
	c.last = d.Resolution
	return d
}

// threshold biases a tier's fps threshold: crossing into a higher-resolution
// tier than the last decision costs an extra lodBias, staying at or below it
// grants one.
func (c *LODController) threshold(tierResolution, base float32) float32 {
	if c.last >= tierResolution {
		return base - lodBias
	}
	return base + lodBias
}
