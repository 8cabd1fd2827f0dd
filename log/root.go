// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"log/slog"
	"sync/atomic"
)

var root atomic.Pointer[logger]

func init() {
	root.Store(&logger{inner: slog.New(DiscardHandler())})
}

// SetDefault installs the root logger used by the package-level functions
// and by WithContext.
func SetDefault(l Logger) {
	if lg, ok := l.(*logger); ok {
		root.Store(lg)
	} else {
		root.Store(&logger{inner: slog.New(l.Handler())})
	}
}

// Root returns the root logger.
func Root() Logger {
	return root.Load()
}

// WithContext returns a logger derived from the root logger carrying the
// given attributes, e.g. log.WithContext("pkg", "trackerdb").
func WithContext(ctx ...interface{}) Logger {
	return Root().With(ctx...)
}

func Trace(msg string, ctx ...interface{}) { Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...interface{}) { Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...interface{})  { Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...interface{}) { Root().Error(msg, ctx...) }
func Crit(msg string, ctx ...interface{})  { Root().Crit(msg, ctx...) }
