package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

const timeFormat = "2006-01-02 15:04:05.000"

type Options struct {
	Level   slog.Leveler
	NoColor bool
}

var DefaultOptions = Options{
	Level: slog.LevelInfo,
}

type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

// Handler writes one colored line per record: time, level, request id,
// message and attributes as key=value pairs.
type Handler struct {
	mu    *sync.Mutex
	w     io.Writer
	opts  Options
	attrs []slog.Attr
	group string
}

func NewHandler(w io.Writer, opts Options) *Handler {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	return &Handler{mu: &sync.Mutex{}, w: w, opts: opts}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(h.paint(color.FgHiBlack, r.Time.Format(timeFormat)))
	sb.WriteByte(' ')
	sb.WriteString(h.level(r.Level))
	sb.WriteByte(' ')

	if id := RequestID(ctx); id != "" {
		sb.WriteString(h.paint(color.FgMagenta, "["+id+"]"))
		sb.WriteByte(' ')
	}

	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		h.appendAttr(&sb, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&sb, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	nh.attrs = append(nh.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		nh.attrs = append(nh.attrs, a)
	}
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	if nh.group != "" {
		name = nh.group + "." + name
	}
	nh.group = name
	return &nh
}

func (h *Handler) appendAttr(sb *strings.Builder, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			ga.Key = a.Key + "." + ga.Key
			h.appendAttr(sb, ga)
		}
		return
	}

	key := a.Key
	if h.group != "" && !strings.HasPrefix(key, h.group+".") {
		key = h.group + "." + key
	}

	sb.WriteByte(' ')
	if key == "error" {
		sb.WriteString(h.paint(color.FgRed, key+"="+formatValue(a.Value)))
		return
	}
	sb.WriteString(h.paint(color.FgCyan, key))
	sb.WriteByte('=')
	sb.WriteString(formatValue(a.Value))
}

func (h *Handler) level(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return h.paint(color.FgRed, "ERROR")
	case l >= slog.LevelWarn:
		return h.paint(color.FgYellow, "WARN ")
	case l >= slog.LevelInfo:
		return h.paint(color.FgGreen, "INFO ")
	default:
		return h.paint(color.FgBlue, "DEBUG")
	}
}

func (h *Handler) paint(attr color.Attribute, s string) string {
	if h.opts.NoColor {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return fmt.Sprintf("%q", s)
		}
		return s
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	default:
		return fmt.Sprint(v.Any())
	}
}
