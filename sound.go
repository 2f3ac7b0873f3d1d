package sound

// Source is the origin of signal data. Sample pulls up to n samples from the
// source.
//
// Implementations should use next error conventions:
//   - nil if a full block was produced;
//   - io.EOF if no data is left;
//   - nil with a shorter block if the source got exhausted mid-block.
//
// The shorter block still carries valid samples; every following call must
// return io.EOF.
//
// Ownership of the returned block transfers to the caller. A source may
// reuse internal scratch storage between calls; in that case a previously
// returned block must not be assumed stable past the next Sample call.
type Source interface {
	Sample(n int) (Block, error)
}

// Node is a source which exposes its direct inputs, so that a signal graph
// can be traversed. Leaf nodes return an empty slice.
//
// Nodes are synchronous and pull-based: Sample recursively samples the
// node's sources. A single node is not safe for concurrent sampling.
type Node interface {
	Source
	Sources() []Node
}

// Sink is the destination of signal data. It consumes multi-channel blocks
// of exactly BlockSize samples per channel.
type Sink interface {
	SampleRate() int
	NumChannels() int
	BlockSize() int
	Write(channels []Block) error
	Close() error
	Closed() bool
}

// Filter processes blocks of signal and describes itself in time and
// frequency domain. Concrete filters live outside this package.
type Filter interface {
	Process(Block) Block
	ImpulseResponse() Block
	FrequencyResponse(n int) Block
	Wrap(src Node, inPlace bool) Node
}

// DurationExtender is implemented by leaf generators which default to a
// finite duration. Composition operators ask such operands to switch to an
// unbounded duration, so that combining a finite generator with another
// signal does not truncate the combined output.
type DurationExtender interface {
	ExtendDurationIfUnbounded()
}

// AmplitudeDefaulter is implemented by leaf generators which default to a
// reduced amplitude. Multiplying operators ask such operands to switch to a
// full-scale amplitude, so that using a generator as a modulator does not
// silently attenuate the product.
type AmplitudeDefaulter interface {
	ExtendAmplitudeIfDefault()
}
