package encryption

// Option configures a stream transform.
type Option func(*options)

type options struct {
	chunkSize int
}

// WithChunkSize sets how many bytes are read per iteration.
// The value is rounded down to a whole number of cipher blocks, minimum one block.
func WithChunkSize(size int) Option {
	return func(o *options) {
		o.chunkSize = size
	}
}

func newOptions(blockSize int, opts []Option) options {
	o := options{chunkSize: defaultChunkSize}

	for _, opt := range opts {
		opt(&o)
	}

	o.chunkSize -= o.chunkSize % blockSize
	if o.chunkSize < blockSize {
		o.chunkSize = blockSize
	}

	return o
}
