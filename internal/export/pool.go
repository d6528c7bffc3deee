package export

import (
	"bytes"
	"sync"
)

// bufferPool recycles row buffers. bytes.Buffer keeps its capacity across
// Reset, unlike strings.Builder.
var bufferPool = sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(4 * 1024)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(b *bytes.Buffer) {
	b.Reset()
	bufferPool.Put(b)
}
