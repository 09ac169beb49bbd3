package iometa

import (
	"bytes"
	"io"
)

// CountingWriter tracks how many bytes and newline-terminated lines have been
// written through it.
type CountingWriter struct {
	Writer io.Writer

	bytesWritten int64
	linesWritten int
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	written, err := c.Writer.Write(p)
	c.bytesWritten += int64(written)
	c.linesWritten += bytes.Count(p[:written], []byte{'\n'})

	return written, err //nolint:wrapcheck
}

func (c *CountingWriter) BytesWritten() int64 {
	return c.bytesWritten
}

func (c *CountingWriter) LinesWritten() int {
	return c.linesWritten
}
