package transcode

import "io"

const flushSize = 64 << 10

// docWriter is a buffered writer which knows where documents end. When a
// run aborts, buffered bytes of the failed document are dropped instead of
// flushed. Memory stays bounded: once the buffer fills it is written out
// whole, so a failed document larger than the buffer is partly written.
type docWriter struct {
	w         io.Writer
	buf       []byte
	committed int
}

func newDocWriter(w io.Writer) *docWriter {
	return &docWriter{w: w}
}

func (d *docWriter) Write(p []byte) (int, error) {
	d.buf = append(d.buf, p...)
	if len(d.buf) >= flushSize {
		if err := d.Flush(); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Commit marks everything written so far as belonging to complete
// documents.
func (d *docWriter) Commit() error {
	d.committed = len(d.buf)
	return nil
}

func (d *docWriter) write(n int) error {
	if n == 0 {
		return nil
	}
	_, err := d.w.Write(d.buf[:n])
	d.buf = d.buf[:copy(d.buf, d.buf[n:])]
	d.committed = 0
	return err
}

// Flush writes all buffered output.
func (d *docWriter) Flush() error {
	return d.write(len(d.buf))
}

// Abort writes the committed output and drops the rest.
func (d *docWriter) Abort() error {
	err := d.write(d.committed)
	d.buf = d.buf[:0]
	return err
}
