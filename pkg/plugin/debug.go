package plugin

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/jwalton/go-supportscolor"
)

var (
	debugEnabled atomic.Bool

	// debugOut is stderr so diagnostics can never leak into the
	// single-line stdout contract. Swapped in tests.
	debugOut io.Writer = os.Stderr

	debugPrefix = "DEBUG:"
)

func init() {
	if os.Getenv("NAGPLUG_DEBUG") != "" {
		debugEnabled.Store(true)
	}
	if supportscolor.Stderr().SupportsColor {
		debugPrefix = "\033[33mDEBUG:\033[0m"
	}
}

// SetDebug toggles the debug channel. It is off by default and can
// also be enabled by setting the NAGPLUG_DEBUG environment variable to
// any non-empty value.
func SetDebug(on bool) {
	debugEnabled.Store(on)
}

// Debugf prints a prefixed diagnostic line on stderr when the debug
// channel is enabled. Check functions may use it for their own
// diagnostics; it never counts against the status-line output.
func Debugf(format string, args ...any) {
	if !debugEnabled.Load() {
		return
	}
	fmt.Fprintf(debugOut, "%s %s\n", debugPrefix, fmt.Sprintf(format, args...))
}
