// Package debug provides opt-in stderr logging, enabled with NAVCARD_DEBUG=1.
// Everything is a no-op when disabled, so call sites never gate themselves.
package debug

import (
	"log"
	"os"
	"strings"
)

var enabled = debugEnabled()

func debugEnabled() bool {
	switch strings.TrimSpace(os.Getenv("NAVCARD_DEBUG")) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

var logger = log.New(os.Stderr, "navcard: ", log.Ltime|log.Lmicroseconds)

func Logf(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}
