package dummycheck

import (
	"fmt"
	"strings"

	"github.com/revolux/nagplug/pkg/plugin"
)

// Check reports whatever state it is told to report. Useful for
// wiring tests on the supervisor side and as the smallest possible
// example of a plugin.
type Check struct{}

// NewRunner builds the check_dummy plugin runner.
func NewRunner() *plugin.Runner {
	c := &Check{}
	r := plugin.New("DUMMY", c.Run)
	r.SetExtendedUsage("<state> [message...]")
	return r
}

// Run parses the requested state from the positional arguments and
// echoes it back.
func (c *Check) Run(req *plugin.Request) plugin.Outcome {
	if len(req.Args) == 0 {
		return plugin.Unknownf("missing state argument")
	}

	status, err := plugin.ParseStatus(req.Args[0])
	if err != nil {
		return plugin.Unknownf("cannot parse state: %v", err)
	}

	message := "dummy check"
	if len(req.Args) > 1 {
		message = strings.Join(req.Args[1:], " ")
	}

	fmt.Fprintf(req.Verbose, "reporting state %s\n", status)
	return plugin.Outcome{Status: status, Message: message}
}
