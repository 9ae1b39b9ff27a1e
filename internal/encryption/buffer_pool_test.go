package encryption

import (
	"bytes"
	"testing"
)

func TestReleaseWipesBuffer(t *testing.T) {
	t.Parallel()

	for _, size := range []int{defaultChunkSize, 64, defaultChunkSize * 2} {
		buf, release := getBuffer(size)

		if len(buf) < size+maxBlockSize {
			t.Fatalf("getBuffer(%d) length = %d", size, len(buf))
		}

		copy(buf, "plaintext that must not outlive the call")

		release()

		if !bytes.Equal(buf, make([]byte, len(buf))) {
			t.Errorf("getBuffer(%d): buffer not cleared on release", size)
		}
	}
}
