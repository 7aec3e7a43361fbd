package logging

import (
	"bytes"
	"io"
)

// PrefixWriter wraps an io.Writer and adds a prefix to each line.
type PrefixWriter struct {
	prefix  []byte
	writer  io.Writer
	partial bytes.Buffer
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{
		prefix: []byte(prefix),
		writer: w,
	}
}

// Write implements io.Writer. Incomplete lines are buffered until the
// terminating newline arrives, so a prefix is emitted exactly once per line.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	total := len(p)

	for len(p) > 0 {
		nl := bytes.IndexByte(p, '\n')
		if nl < 0 {
			pw.partial.Write(p)
			break
		}

		if _, err := pw.writer.Write(pw.prefix); err != nil {
			return 0, err
		}
		if pw.partial.Len() > 0 {
			if _, err := pw.writer.Write(pw.partial.Bytes()); err != nil {
				return 0, err
			}
			pw.partial.Reset()
		}
		if _, err := pw.writer.Write(p[:nl+1]); err != nil {
			return 0, err
		}
		p = p[nl+1:]
	}

	return total, nil
}
