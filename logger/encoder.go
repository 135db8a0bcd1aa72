package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset  = "\x1b[0m"
	colorBold   = "\x1b[1m"
	colorDim    = "\x1b[2m"
	colorYellow = "\x1b[33m"
	colorRed    = "\x1b[31m"
	colorCyan   = "\x1b[36m"
)

var bufferPool = buffer.NewPool()

// consoleEncoder is a compact console encoder.
// Format: "13:04:35  bench  pass complete  strategy=explicit elapsed_ms=12"
//
// Every field is printed as key=value: context fields added with With()
// first (sorted by key), then the entry's own fields in call order.
type consoleEncoder struct {
	*zapcore.MapObjectEncoder
	color bool
}

func newConsoleEncoder(color bool) *consoleEncoder {
	return &consoleEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		color:            color,
	}
}

func (enc *consoleEncoder) Clone() zapcore.Encoder {
	clone := newConsoleEncoder(enc.color)
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (enc *consoleEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(enc.paint(colorDim, ent.Time.Format("15:04:05")))

	// Level: only shown when it is not INFO
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(enc.levelString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(enc.paint(colorCyan, ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	if pairs := enc.pairs(fields); len(pairs) > 0 {
		final.AppendString("  ")
		final.AppendString(strings.Join(pairs, " "))
	}

	final.AppendString("\n")
	return final, nil
}

func (enc *consoleEncoder) pairs(fields []zapcore.Field) []string {
	pairs := make([]string, 0, len(enc.Fields)+len(fields))

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pairs = append(pairs, k+"="+fmt.Sprint(enc.Fields[k]))
	}

	for _, field := range fields {
		m := zapcore.NewMapObjectEncoder()
		field.AddTo(m)
		for k, v := range m.Fields {
			pairs = append(pairs, k+"="+fmt.Sprint(v))
		}
	}
	return pairs
}

func (enc *consoleEncoder) levelString(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return enc.paint(colorDim, "DEBUG")
	case zapcore.WarnLevel:
		return enc.paint(colorBold+colorYellow, "WARN")
	default:
		return enc.paint(colorBold+colorRed, level.CapitalString())
	}
}

func (enc *consoleEncoder) paint(color, s string) string {
	if !enc.color {
		return s
	}
	return color + s + colorReset
}
