package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// RawLogger writes one line per observed input event.
type RawLogger interface {
	Log(source, action string, injected bool, fields ...any)
}

type rawLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewRaw returns a RawLogger writing to w. A nil w discards events.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w, now: time.Now}
}

// Log writes a line like
//
//	2026/01/02 15:04:05.000000 keyboard press key=a injected=false
//
// fields are key/value pairs.
func (r *rawLogger) Log(source, action string, injected bool, fields ...any) {
	if r.w == nil {
		return
	}

	var b strings.Builder
	b.WriteString(r.now().Format("2006/01/02 15:04:05.000000"))
	b.WriteByte(' ')
	b.WriteString(source)
	b.WriteByte(' ')
	b.WriteString(action)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 == 1 {
		fmt.Fprintf(&b, " %v", fields[len(fields)-1])
	}
	fmt.Fprintf(&b, " injected=%t\n", injected)

	r.mu.Lock()
	_, _ = io.WriteString(r.w, b.String())
	r.mu.Unlock()
}
