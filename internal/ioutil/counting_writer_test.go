package ioutil_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"braces.dev/errtrace"

	"github.com/httpwire/httphdr/internal/ioutil"
)

type errorWriter struct {
	failAfter int
	written   int
}

func (ew *errorWriter) Write(p []byte) (n int, err error) {
	if ew.written >= ew.failAfter {
		return 0, errtrace.Wrap(errors.New("write failed"))
	}
	n = len(p)
	if ew.written+n > ew.failAfter {
		n = ew.failAfter - ew.written
	}
	ew.written += n
	if n < len(p) {
		return n, errtrace.Wrap(errors.New("write failed"))
	}
	return n, nil
}

func TestCountingWriter_Write(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	cw := ioutil.NewCountingWriter(buf)

	n, err := cw.Write([]byte("hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 {
		t.Errorf("expected 5 bytes written, got %d", n)
	}

	n, err = cw.WriteString(" world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 6 {
		t.Errorf("expected 6 bytes written, got %d", n)
	}
	if cw.Count() != 11 {
		t.Errorf("expected count 11, got %d", cw.Count())
	}

	if buf.String() != "hello world" {
		t.Errorf("expected 'hello world', got %q", buf.String())
	}
}

func TestCountingWriter_ErrorLatches(t *testing.T) {
	t.Parallel()

	cw := ioutil.NewCountingWriter(&errorWriter{failAfter: 3})

	if _, err := cw.WriteString("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cw.WriteString("def"); err == nil {
		t.Fatal("expected write error, got nil")
	}

	// Subsequent writes are no-ops returning the latched error.
	n, err := cw.Fprint("ghi")
	if err == nil {
		t.Fatal("expected latched error, got nil")
	}
	if n != 0 {
		t.Errorf("expected 0 bytes written after error, got %d", n)
	}

	num, err := cw.Result()
	if num != 3 {
		t.Errorf("expected result count 3, got %d", num)
	}
	if err == nil {
		t.Error("expected result error, got nil")
	}
	if cw.Err() == nil {
		t.Error("expected Err() to report the latched error")
	}
}

func TestCountingWriter_Call(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	cw := ioutil.NewCountingWriter(&sb)

	cw.Fprint("a")
	cw.Call(func(w io.Writer) (int, error) {
		return io.WriteString(w, "bc")
	})

	num, err := cw.Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 3 {
		t.Errorf("expected count 3, got %d", num)
	}
	if sb.String() != "abc" {
		t.Errorf("expected 'abc', got %q", sb.String())
	}
}

func TestCountingWriter_Pool(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	cw := ioutil.GetCountingWriter(&sb)
	cw.Fprint("pooled")
	num, err := cw.Result()
	ioutil.FreeCountingWriter(cw)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 6 {
		t.Errorf("expected count 6, got %d", num)
	}
	if sb.String() != "pooled" {
		t.Errorf("expected 'pooled', got %q", sb.String())
	}
}
