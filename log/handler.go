// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/holiman/uint256"
)

type discardHandler struct{}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(_ context.Context, _ slog.Record) error { return nil }

func (h *discardHandler) Enabled(_ context.Context, _ slog.Level) bool { return false }

func (h *discardHandler) WithGroup(_ string) slog.Handler { return &discardHandler{} }

func (h *discardHandler) WithAttrs(_ []slog.Attr) slog.Handler { return &discardHandler{} }

const (
	timeFormat  = "Jan 02 15:04:05"
	termMsgJust = 40
)

// TerminalHandler formats records for human readability on a terminal with
// color-coded levels and a terse timestamp:
//
//	[LEVEL] [TIME] MESSAGE key=value key=value ...
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr

	buf []byte
}

// NewTerminalHandler returns a terminal handler logging all levels.
// This format should only be used for interactive programs.
func NewTerminalHandler(wr io.Writer, useColor bool) *TerminalHandler {
	var level slog.LevelVar
	level.Set(levelMaxVerbosity)
	return NewTerminalHandlerWithLevel(wr, &level, useColor)
}

// NewTerminalHandlerWithLevel returns a terminal handler dropping records
// below the given level.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:       wr,
		lvl:      lvl,
		useColor: useColor,
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := h.buf[:0]
	lvl := LevelString(r.Level)
	if h.useColor {
		if color := levelColor(r.Level); color > 0 {
			lvl = fmt.Sprintf("\x1b[%dm%s\x1b[0m", color, lvl)
		}
	}
	buf = append(buf, '[')
	buf = append(buf, lvl...)
	buf = append(buf, "] ["...)
	buf = r.Time.AppendFormat(buf, timeFormat)
	buf = append(buf, "] "...)
	buf = append(buf, r.Message...)

	// pad the message so attrs of consecutive records line up
	if n := len(r.Message); r.NumAttrs() > 0 && n < termMsgJust {
		buf = append(buf, spaces[:termMsgJust-n]...)
	}
	for _, attr := range h.attrs {
		buf = appendAttr(buf, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		buf = appendAttr(buf, attr)
		return true
	})
	buf = append(buf, '\n')

	h.buf = buf[:0]
	_, err := h.wr.Write(buf)
	return err
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *TerminalHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{
		wr:       h.wr,
		lvl:      h.lvl,
		useColor: h.useColor,
		attrs:    append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

var spaces = "                                        "

func levelColor(l slog.Level) int {
	switch {
	case l >= LevelCrit:
		return 35 // magenta
	case l >= LevelError:
		return 31 // red
	case l >= LevelWarn:
		return 33 // yellow
	case l >= LevelInfo:
		return 32 // green
	default:
		return 36 // cyan
	}
}

func appendAttr(buf []byte, attr slog.Attr) []byte {
	buf = append(buf, ' ')
	buf = append(buf, attr.Key...)
	buf = append(buf, '=')
	return append(buf, formatValue(attr.Value)...)
}

// formatValue renders attribute values, with shortcuts for the big number
// types that show up in ledger amounts.
func formatValue(v slog.Value) string {
	if v.Kind() == slog.KindAny {
		switch n := v.Any().(type) {
		case *big.Int:
			if n == nil {
				return "<nil>"
			}
			return n.String()
		case *uint256.Int:
			if n == nil {
				return "<nil>"
			}
			return n.Dec()
		case error:
			return escapeString(n.Error())
		case fmt.Stringer:
			return escapeString(n.String())
		}
	}
	if v.Kind() == slog.KindTime {
		return v.Time().Format(time.RFC3339)
	}
	return escapeString(v.String())
}

func escapeString(s string) string {
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return strconv.Quote(s)
		}
	}
	if s == "" {
		return `""`
	}
	return s
}
