package rendernode

import (
	"fmt"
	"io"
	"strings"
)

const defaultOpLogSize = 2048

type opLogEntry struct {
	level int
	name  string
}

// OpLog is a fixed-size ring buffer of the most recent ops dispatched, kept
// for post-mortem diagnostics. A nil *OpLog discards writes.
type OpLog struct {
	entries []opLogEntry
	start   int
	n       int
}

// NewOpLog creates a log holding the last size ops. A non-positive size
// selects the default.
func NewOpLog(size int) *OpLog {
	if size <= 0 {
		size = defaultOpLogSize
	}
	return &OpLog{entries: make([]opLogEntry, size)}
}

// Write appends an op, evicting the oldest entry when full.
func (l *OpLog) Write(level int, name string) {
	if l == nil {
		return
	}
	i := (l.start + l.n) % len(l.entries)
	l.entries[i] = opLogEntry{level: level, name: name}
	if l.n < len(l.entries) {
		l.n++
	} else {
		l.start = (l.start + 1) % len(l.entries)
	}
}

// Len returns the number of entries held.
func (l *OpLog) Len() int {
	if l == nil {
		return 0
	}
	return l.n
}

// IsEmpty reports whether the log holds no entries.
func (l *OpLog) IsEmpty() bool { return l.Len() == 0 }

// Names returns the held op names, oldest first.
func (l *OpLog) Names() []string {
	names := make([]string, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		names = append(names, l.entries[(l.start+i)%len(l.entries)].name)
	}
	return names
}

// Reset empties the log.
func (l *OpLog) Reset() {
	if l == nil {
		return
	}
	l.start = 0
	l.n = 0
}

// WriteTo writes the log, oldest first, one op per line indented by level.
func (l *OpLog) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := 0; i < l.Len(); i++ {
		e := l.entries[(l.start+i)%len(l.entries)]
		n, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", e.level), e.name)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
