package fibonacci

// Options holds the tuning parameters of a calculation. The zero value is
// valid: any field left at zero is replaced by its default when the
// calculation starts.
type Options struct {
	// ParallelThreshold is the bit size of F(k) above which the two
	// products of a doubling step run on separate goroutines.
	ParallelThreshold int
}

// DefaultOptions returns the Options used when the caller does not
// override any tuning parameter.
func DefaultOptions() Options {
	return Options{
		ParallelThreshold: DefaultParallelThreshold,
	}
}

// normalize fills zero-valued fields with their defaults.
func (o Options) normalize() Options {
	if o.ParallelThreshold <= 0 {
		o.ParallelThreshold = DefaultParallelThreshold
	}
	return o
}
