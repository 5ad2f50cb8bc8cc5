package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

const consoleTimeLayout = "15:04:05"

// lineHeader holds the attributes promoted out of key=value form. The first
// value set wins, so an outer component tag is not overridden by an inner one.
type lineHeader struct {
	component string
	command   string
}

// consoleHandler writes one line per record:
//
//	15:04:05 INFO [downloader] dl: download complete files=1
//
// The run ID is dropped here and kept for JSON output.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     slog.Leveler
	addSource bool

	header lineHeader
	group  string
	attrs  []byte
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) *consoleHandler {
	return &consoleHandler{mu: new(sync.Mutex), w: w, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.attrs = slices.Clone(h.attrs)
	for _, a := range attrs {
		next.attrs = appendAttr(next.attrs, &next.header, h.group, a)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = h.group + name + "."
	return &next
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	header := h.header
	tail := slices.Clone(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		tail = appendAttr(tail, &header, h.group, a)
		return true
	})

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf := make([]byte, 0, 80+len(r.Message)+len(tail))
	buf = ts.AppendFormat(buf, consoleTimeLayout)
	buf = append(buf, ' ')
	buf = append(buf, r.Level.String()...)
	if header.component != "" {
		buf = append(buf, " ["...)
		buf = append(buf, header.component...)
		buf = append(buf, ']')
	}
	buf = append(buf, ' ')
	if header.command != "" {
		buf = append(buf, header.command...)
		buf = append(buf, ": "...)
	}
	buf = append(buf, r.Message...)
	if h.addSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		buf = fmt.Appendf(buf, " (%s:%d)", filepath.Base(frame.File), frame.Line)
	}
	buf = append(buf, tail...)
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

func appendAttr(buf []byte, header *lineHeader, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, member := range a.Value.Group() {
			buf = appendAttr(buf, header, prefix, member)
		}
		return buf
	}
	if prefix == "" {
		switch a.Key {
		case FieldComponent:
			if header.component == "" {
				header.component = a.Value.String()
			}
			return buf
		case FieldCommand:
			if header.command == "" {
				header.command = a.Value.String()
			}
			return buf
		case FieldRunID:
			return buf
		}
	}
	buf = append(buf, ' ')
	buf = append(buf, prefix...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return appendValue(buf, a.Value)
}

func appendValue(buf []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindString:
		return appendText(buf, v.String())
	case slog.KindInt64:
		return strconv.AppendInt(buf, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(buf, v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.AppendFloat(buf, v.Float64(), 'f', -1, 64)
	case slog.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case slog.KindDuration:
		return append(buf, v.Duration().String()...)
	case slog.KindTime:
		return v.Time().AppendFormat(buf, time.RFC3339)
	}
	if err, ok := v.Any().(error); ok {
		return appendText(buf, err.Error())
	}
	return appendText(buf, fmt.Sprint(v.Any()))
}

// appendText quotes s when it would otherwise be ambiguous in key=value form.
func appendText(buf []byte, s string) []byte {
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}
