package rc

// Stats is a point-in-time snapshot of counter state.
type Stats struct {
	// TotalObjects is the number of live objects.
	TotalObjects int

	// TotalRefs is the sum of live strong counts.
	TotalRefs int

	// SuspectBufferSize is the number of staged cycle suspects.
	SuspectBufferSize int

	// SuspectTyped is the number of staged suspects the detector can
	// actually traverse (typed, with reference fields).
	SuspectTyped int

	// CyclesDetected is the cumulative number of garbage cycles found.
	CyclesDetected int

	// CyclesCollected is the cumulative number of garbage cycles freed.
	CyclesCollected int
}

// Stats returns a snapshot.
func (c *Counter) Stats() Stats {
	s := Stats{
		TotalObjects:      c.totalObjects,
		TotalRefs:         c.totalRefs,
		SuspectBufferSize: len(c.suspects),
		CyclesDetected:    c.cyclesDetected,
		CyclesCollected:   c.cyclesCollected,
	}
	for _, o := range c.suspects {
		if o.typ != nil && o.typ.HasPointers() {
			s.SuspectTyped++
		}
	}
	return s
}
