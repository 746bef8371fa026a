package publisher

import (
	"bytes"
	"os/exec"
	"sync"

	"github.com/MKhiriev/freedom-sidecar/internal/logger"
)

// maxLine caps a buffered partial line so a child that never writes a
// newline cannot grow memory without bound.
const maxLine = 64 << 10

// lineWriter forwards child output to the logger one line at a time.
type lineWriter struct {
	logger *logger.Logger
	stream string

	mu  sync.Mutex
	buf []byte
}

func newLineWriter(log *logger.Logger, stream string) *lineWriter {
	return &lineWriter{logger: log, stream: stream}
}

// Write implements io.Writer.
func (w *lineWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, b...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	if len(w.buf) >= maxLine {
		w.emit(w.buf)
		w.buf = nil
	}
	return len(b), nil
}

// Flush logs a trailing line without newline.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.buf) > 0 {
		w.emit(w.buf)
		w.buf = nil
	}
}

func (w *lineWriter) emit(line []byte) {
	line = bytes.TrimRight(line, "\r")
	if len(line) == 0 {
		return
	}
	ev := w.logger.Info()
	if w.stream == "stderr" {
		ev = w.logger.Warn()
	}
	ev.Str("stream", w.stream).Msg(string(line))
}

func flushWriters(cmd *exec.Cmd) {
	for _, out := range []any{cmd.Stdout, cmd.Stderr} {
		if w, ok := out.(*lineWriter); ok {
			w.Flush()
		}
	}
}
