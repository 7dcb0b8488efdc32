//go:build debug
// +build debug

package optics

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

var debugLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

// DebugLog writes one debug line. Only debug builds print anything.
func DebugLog(format string, args ...interface{}) {
	debugLogger.Debug(fmt.Sprintf(format, args...), "build", "debug")
}

var logged sync.Map

// DebugLogOnce logs only the first message seen for each format string.
func DebugLogOnce(format string, args ...interface{}) {
	if _, dup := logged.LoadOrStore(format, struct{}{}); dup {
		return
	}
	DebugLog(format, args...)
}
