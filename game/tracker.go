package game

// EntityTracker keeps the set of entity IDs seen on the previous frame so
// appearances and disappearances can be detected with a set difference. The
// live count feeds the LOD controller.
type EntityTracker struct {
	current  map[uint32]struct{}
	previous map[uint32]struct{}
}

// NewEntityTracker creates an empty tracker.
func NewEntityTracker() *EntityTracker {
	return &EntityTracker{
		current:  make(map[uint32]struct{}),
		previous: make(map[uint32]struct{}),
	}
}

// Begin starts a new frame, rotating the current set into previous.
func (t *EntityTracker) Begin() {
	t.previous, t.current = t.current, t.previous
	clear(t.current)
}

// Observe records one live entity for this frame.
func (t *EntityTracker) Observe(id uint32) {
	t.current[id] = struct{}{}
}

// Count returns the number of entities observed this frame.
func (t *EntityTracker) Count() int { return len(t.current) }

// Disappeared returns the IDs present last frame but absent this frame.
func (t *EntityTracker) Disappeared() []uint32 {
	var gone []uint32
	for id := range t.previous {
		if _, ok := t.current[id]; !ok {
			gone = append(gone, id)
		}
	}
	return gone
}

// Appeared returns the IDs absent last frame but present this frame.
func (t *EntityTracker) Appeared() []uint32 {
	var fresh []uint32
	for id := range t.current {
		if _, ok := t.previous[id]; !ok {
			fresh = append(fresh, id)
		}
	}
	return fresh
}
