package printer

import (
	"io"
	"sync"
)

// Transport is an opened duplex byte channel to a labeler.
type Transport interface {
	Write([]byte) (int, error)
	Read([]byte) (int, error)
	Close() error
}

// -------------------- RAW --------------------

type RawTransport struct {
	conn io.ReadWriteCloser

	closeOnce sync.Once
	closeErr  error
}

func (r *RawTransport) Write(b []byte) (int, error) { return r.conn.Write(b) }
func (r *RawTransport) Read(b []byte) (int, error)  { return r.conn.Read(b) }

// Close closes the underlying connection once. Later calls return the first
// result.
func (r *RawTransport) Close() error {
	r.closeOnce.Do(func() { r.closeErr = r.conn.Close() })
	return r.closeErr
}

// NewTransport wraps w. Writers that cannot be closed get a no-op Close so
// that buffers can stand in for devices.
func NewTransport(w io.ReadWriter) Transport {
	if rc, ok := w.(io.ReadWriteCloser); ok {
		return &RawTransport{conn: rc}
	}
	return &RawTransport{conn: nopCloser{w}}
}

// writeAll loops until b is fully written; USB bulk writes may be short.
func writeAll(t io.Writer, b []byte) error {
	sent := 0
	for sent < len(b) {
		n, err := t.Write(b[sent:])
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		sent += n
	}
	return nil
}

// -------------------- helpers --------------------

type nopCloser struct {
	io.ReadWriter
}

func (n nopCloser) Close() error { return nil }
