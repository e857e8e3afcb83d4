package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/yeelight-protocol/yeelight-go/pkg/log"
)

// Framing constants.
const (
	// DefaultMaxLineSize is the default maximum line size (16 KB).
	// Protocol lines are small; the largest in practice are flow_params
	// notifications, far below this.
	DefaultMaxLineSize = 16384
)

// Framing errors.
var (
	// ErrLineTooLong indicates a line exceeding the maximum size. The
	// stream position is unrecoverable after this.
	ErrLineTooLong = errors.New("line too long")

	// ErrLineEmpty indicates an attempt to write an empty line.
	ErrLineEmpty = errors.New("line is empty")
)

// LineWriter writes CRLF-terminated lines to an underlying writer.
type LineWriter struct {
	w           io.Writer
	maxLineSize int
	mu          sync.Mutex

	// Logging support (optional)
	logger log.Logger
	connID string
}

// NewLineWriter creates a new line writer with the default max size.
func NewLineWriter(w io.Writer) *LineWriter {
	return NewLineWriterWithMaxSize(w, DefaultMaxLineSize)
}

// NewLineWriterWithMaxSize creates a line writer with a custom max size.
func NewLineWriterWithMaxSize(w io.Writer, maxSize int) *LineWriter {
	return &LineWriter{
		w:           w,
		maxLineSize: maxSize,
	}
}

// SetLogger configures protocol event logging for this writer.
// Pass nil to disable logging.
func (lw *LineWriter) SetLogger(logger log.Logger, connID string) {
	lw.logger = logger
	lw.connID = connID
}

// WriteLine writes one line followed by CRLF.
// Thread-safe: can be called from multiple goroutines.
func (lw *LineWriter) WriteLine(line []byte) error {
	if len(line) == 0 {
		return ErrLineEmpty
	}
	if len(line) > lw.maxLineSize {
		return fmt.Errorf("%w: %d > %d", ErrLineTooLong, len(line), lw.maxLineSize)
	}

	lw.mu.Lock()
	defer lw.mu.Unlock()

	// Single Write call so concurrent writers cannot interleave a line
	// with its terminator.
	buf := make([]byte, 0, len(line)+2)
	buf = append(buf, line...)
	buf = append(buf, '\r', '\n')

	if _, err := lw.w.Write(buf); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}

	if lw.logger != nil {
		lw.logger.Log(log.NewLineEvent(lw.connID, log.DirectionOut, line))
	}

	return nil
}

// LineReader reads CRLF-terminated lines from an underlying reader.
// It is not safe for concurrent use; exactly one goroutine owns the
// read half of a connection.
type LineReader struct {
	br          *bufio.Reader
	maxLineSize int

	// Logging support (optional)
	logger log.Logger
	connID string
}

// NewLineReader creates a new line reader with the default max size.
func NewLineReader(r io.Reader) *LineReader {
	return NewLineReaderWithMaxSize(r, DefaultMaxLineSize)
}

// NewLineReaderWithMaxSize creates a line reader with a custom max size.
func NewLineReaderWithMaxSize(r io.Reader, maxSize int) *LineReader {
	return &LineReader{
		br:          bufio.NewReader(r),
		maxLineSize: maxSize,
	}
}

// SetLogger configures protocol event logging for this reader.
// Pass nil to disable logging.
func (lr *LineReader) SetLogger(logger log.Logger, connID string) {
	lr.logger = logger
	lr.connID = connID
}

// ReadLine reads one line, stripping the trailing CRLF (a bare LF is
// tolerated). A line exceeding the max size returns ErrLineTooLong.
// A final unterminated line before EOF is returned as-is; the next
// call reports io.EOF.
func (lr *LineReader) ReadLine() ([]byte, error) {
	var line []byte
	for {
		chunk, err := lr.br.ReadSlice('\n')
		line = append(line, chunk...)

		if len(line) > lr.maxLineSize {
			return nil, fmt.Errorf("%w: exceeds %d bytes", ErrLineTooLong, lr.maxLineSize)
		}

		switch {
		case err == nil:
			line = trimLineEnding(line)
			if lr.logger != nil {
				lr.logger.Log(log.NewLineEvent(lr.connID, log.DirectionIn, line))
			}
			return line, nil

		case errors.Is(err, bufio.ErrBufferFull):
			// Line continues past the buffer; keep accumulating.
			continue

		case errors.Is(err, io.EOF) && len(line) > 0:
			line = trimLineEnding(line)
			if lr.logger != nil {
				lr.logger.Log(log.NewLineEvent(lr.connID, log.DirectionIn, line))
			}
			return line, nil

		default:
			return nil, err
		}
	}
}

// trimLineEnding strips one trailing LF and an optional preceding CR.
func trimLineEnding(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}
