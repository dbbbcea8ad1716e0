package comm

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

type slogHandler struct {
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = (*slogHandler)(nil)

// NewSlogHandler returns a slog.Handler that emits logs through comm.
// In text mode attributes are appended to the message as key=value pairs.
func NewSlogHandler(level slog.Leveler) slog.Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &slogHandler{level: level}
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *slogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := JsonMessage{}
	for _, attr := range h.attrs {
		addAttr(fields, h.groups, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		addAttr(fields, h.groups, attr)
		return true
	})

	level := slogLevelToCommLevel(r.Level)
	if JsonEnabled() {
		obj := JsonMessage{
			"type":    "log",
			"time":    time.Now().UTC().Unix(),
			"level":   level,
			"message": r.Message,
		}
		for k, v := range fields {
			obj[k] = v
		}
		sendJSON(obj)
		return nil
	}

	Logl(level, textLine(r.Message, fields))
	return nil
}

func textLine(msg string, fields JsonMessage) string {
	if len(fields) == 0 {
		return msg
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(msg)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, fields[k])
	}
	return sb.String()
}

func (h *slogHandler) clone() *slogHandler {
	return &slogHandler{
		level:  h.level,
		groups: append([]string{}, h.groups...),
		attrs:  append([]slog.Attr{}, h.attrs...),
	}
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := h.clone()
	nh.attrs = append(nh.attrs, attrs...)
	return nh
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := h.clone()
	nh.groups = append(nh.groups, name)
	return nh
}

func addAttr(obj JsonMessage, groups []string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		nextGroups := append([]string{}, groups...)
		if attr.Key != "" {
			nextGroups = append(nextGroups, attr.Key)
		}
		for _, groupAttr := range attr.Value.Group() {
			addAttr(obj, nextGroups, groupAttr)
		}
		return
	}
	if attr.Key == "" {
		return
	}

	key := strings.Join(append(append([]string{}, groups...), attr.Key), ".")
	obj[key] = attr.Value.Any()
}

func slogLevelToCommLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}
