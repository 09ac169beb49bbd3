package iometa

import (
	"io"
	"time"
)

type ProgressCallback func(progress float64, read int64, expected int64)

// ProgressReader passes reads through to an underlying reader, invoking a
// callback at most once per cadence with the number of bytes read so far. The
// callback is always invoked once more when the underlying reader hits EOF.
type ProgressReader struct {
	reader io.Reader

	bytesRead     int64
	bytesExpected int64

	callback   ProgressCallback
	cadence    time.Duration
	lastUpdate time.Time
	now        func() time.Time
}

func NewProgressReader(r io.Reader, callback ProgressCallback, cadence time.Duration, expected int64) *ProgressReader {
	return &ProgressReader{
		reader:        r,
		bytesExpected: expected,
		callback:      callback,
		cadence:       cadence,
		now:           time.Now,
	}
}

func (p *ProgressReader) Read(b []byte) (int, error) {
	n, err := p.reader.Read(b)
	p.bytesRead += int64(n)

	now := p.now()
	if err == io.EOF || p.lastUpdate.IsZero() || now.Sub(p.lastUpdate) >= p.cadence {
		p.lastUpdate = now
		p.callback(p.progress(), p.bytesRead, p.bytesExpected)
	}

	return n, err //nolint:wrapcheck
}

func (p *ProgressReader) BytesRead() int64 {
	return p.bytesRead
}

func (p *ProgressReader) progress() float64 {
	if p.bytesExpected <= 0 {
		return 0
	}

	return float64(p.bytesRead) / float64(p.bytesExpected)
}
