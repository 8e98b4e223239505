package fluid

// DoubleBuffer is a ping-pong pair of fields. Passes read from the read half,
// write the write half, then Swap. The write half is never sampled by a later
// pass until it has been swapped in; this single-writer-then-swap discipline
// is the only synchronization the solver needs.
type DoubleBuffer struct {
	read  Field
	write Field
}

// NewDoubleBuffer allocates both halves of a pair on the given device.
func NewDoubleBuffer(dev Device, w, h, comps int) *DoubleBuffer {
	return &DoubleBuffer{
		read:  dev.NewField(w, h, comps),
		write: dev.NewField(w, h, comps),
	}
}

// Read returns the half holding the most recent completed pass output.
func (b *DoubleBuffer) Read() Field { return b.read }

// Write returns the half the next pass should target.
func (b *DoubleBuffer) Write() Field { return b.write }

// Swap promotes the write half to read.
func (b *DoubleBuffer) Swap() {
	b.read, b.write = b.write, b.read
}

// Release frees both halves.
func (b *DoubleBuffer) Release() {
	if b.read != nil {
		b.read.Release()
		b.read = nil
	}
	if b.write != nil {
		b.write.Release()
		b.write = nil
	}
}
