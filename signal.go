package godas

// SignalSize describes the sampled acquisition an operator applies to,
// without holding any samples: the fast-time sample count per channel, the
// channel (element) count, and whether the samples are complex IQ rather
// than RF.
//
// The operator built for a SignalSize expects the signal buffer flattened
// column by column: entry c of the vector is sample c mod Samples of
// element c div Samples.
type SignalSize struct {
	Samples  int
	Channels int
	IQ       bool
}

// RFSize describes a real-valued RF acquisition.
func RFSize(samples, channels int) SignalSize {
	return SignalSize{Samples: samples, Channels: channels}
}

// IQSize describes a complex-demodulated IQ acquisition.
func IQSize(samples, channels int) SignalSize {
	return SignalSize{Samples: samples, Channels: channels, IQ: true}
}

// Len returns the flattened signal vector length, Samples*Channels.
func (s SignalSize) Len() int { return s.Samples * s.Channels }

func (s SignalSize) validate() error {
	if s.Samples < 1 {
		return cfgErrf("SignalSize.Samples", "must be at least 1, got %d", s.Samples)
	}
	if s.Channels < 1 {
		return cfgErrf("SignalSize.Channels", "must be at least 1, got %d", s.Channels)
	}
	return nil
}
