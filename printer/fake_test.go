package printer

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"
)

// fakeTransport records every write and serves queued replies. Once the
// queue is empty it answers with defaultReply, or io.EOF when that is nil.
type fakeTransport struct {
	writes       [][]byte
	replies      [][]byte
	defaultReply []byte
	reads        int
	closed       int

	failWrite error
}

func (f *fakeTransport) Write(b []byte) (int, error) {
	if f.failWrite != nil {
		return 0, f.failWrite
	}
	f.writes = append(f.writes, bytes.Clone(b))
	return len(b), nil
}

func (f *fakeTransport) Read(b []byte) (int, error) {
	f.reads++
	if len(f.replies) > 0 {
		r := f.replies[0]
		f.replies = f.replies[1:]
		return copy(b, r), nil
	}
	if f.defaultReply == nil {
		return 0, io.EOF
	}
	return copy(b, f.defaultReply), nil
}

func (f *fakeTransport) Close() error {
	f.closed++
	return nil
}

func (f *fakeTransport) written() []byte {
	return bytes.Join(f.writes, nil)
}

var errBrokenPipe = errors.New("broken pipe")

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}
