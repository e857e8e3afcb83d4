package transport

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestWriteLineAppendsCRLF(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLineWriter(&buf)

	if err := lw.WriteLine([]byte(`{"id":1,"method":"toggle","params":[]}`)); err != nil {
		t.Fatalf("WriteLine failed: %v", err)
	}
	want := "{\"id\":1,\"method\":\"toggle\",\"params\":[]}\r\n"
	if buf.String() != want {
		t.Errorf("wrote %q, want %q", buf.String(), want)
	}
}

func TestWriteLineRejectsEmpty(t *testing.T) {
	lw := NewLineWriter(&bytes.Buffer{})
	if err := lw.WriteLine(nil); !errors.Is(err, ErrLineEmpty) {
		t.Errorf("WriteLine(nil) error = %v, want ErrLineEmpty", err)
	}
}

func TestWriteLineRejectsOversize(t *testing.T) {
	lw := NewLineWriterWithMaxSize(&bytes.Buffer{}, 8)
	if err := lw.WriteLine([]byte("123456789")); !errors.Is(err, ErrLineTooLong) {
		t.Errorf("error = %v, want ErrLineTooLong", err)
	}
}

func TestReadLine(t *testing.T) {
	lr := NewLineReader(strings.NewReader("first\r\nsecond\nthird"))

	line, err := lr.ReadLine()
	if err != nil || string(line) != "first" {
		t.Fatalf("first ReadLine = %q, %v", line, err)
	}

	// Bare LF is tolerated.
	line, err = lr.ReadLine()
	if err != nil || string(line) != "second" {
		t.Fatalf("second ReadLine = %q, %v", line, err)
	}

	// Unterminated final line is returned before EOF.
	line, err = lr.ReadLine()
	if err != nil || string(line) != "third" {
		t.Fatalf("third ReadLine = %q, %v", line, err)
	}

	if _, err = lr.ReadLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("final ReadLine error = %v, want EOF", err)
	}
}

func TestReadLineTooLong(t *testing.T) {
	long := strings.Repeat("x", 100) + "\r\n"
	lr := NewLineReaderWithMaxSize(strings.NewReader(long), 64)

	if _, err := lr.ReadLine(); !errors.Is(err, ErrLineTooLong) {
		t.Errorf("error = %v, want ErrLineTooLong", err)
	}
}

func TestReadLineSpansBufferedChunks(t *testing.T) {
	// Longer than bufio's default 4KB buffer but within the line limit,
	// so accumulation across ErrBufferFull must work.
	payload := strings.Repeat("y", 6000)
	lr := NewLineReader(strings.NewReader(payload + "\r\n"))

	line, err := lr.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if string(line) != payload {
		t.Errorf("got %d bytes, want %d", len(line), len(payload))
	}
}
