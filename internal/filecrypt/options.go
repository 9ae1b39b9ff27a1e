package filecrypt

import (
	"io"
	"log/slog"

	"github.com/idelchi/gocrypt/internal/encryption"
	"github.com/idelchi/gocrypt/internal/keys"
)

// Option configures an encrypt or decrypt call.
type Option func(*options)

type options struct {
	iterations int
	chunkSize  int
	logger     *slog.Logger
}

// WithIterations sets the PBKDF2 iteration count. Decryption must use the
// count that was used for encryption.
func WithIterations(n int) Option {
	return func(o *options) {
		o.iterations = n
	}
}

// WithChunkSize sets the streaming read size.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithLogger sets the logger for debug output. Secrets are never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		iterations: keys.DefaultIterations,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o options) engine() []encryption.Option {
	if o.chunkSize > 0 {
		return []encryption.Option{encryption.WithChunkSize(o.chunkSize)}
	}

	return nil
}
