package plugin

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the outcome of a plugin run. The numeric values are the
// exit codes the monitoring supervisor expects and must not change.
type Status int

const (
	StatusOK        Status = 0
	StatusWarning   Status = 1
	StatusCritical  Status = 2
	StatusUnknown   Status = 3
	StatusDependant Status = 4
)

var statusWords = [...]string{
	StatusOK:        "OK",
	StatusWarning:   "WARNING",
	StatusCritical:  "CRITICAL",
	StatusUnknown:   "UNKNOWN",
	StatusDependant: "DEPENDANT",
}

// String returns the fixed status word printed on the status line.
func (s Status) String() string {
	if s < StatusOK || s > StatusDependant {
		return fmt.Sprintf("STATUS(%d)", int(s))
	}
	return statusWords[s]
}

// ExitCode returns the process exit code for this status.
func (s Status) ExitCode() int {
	return int(s)
}

// ParseStatus accepts a status word ("critical", case-insensitive) or a
// numeric exit code ("2") and returns the corresponding Status.
func ParseStatus(s string) (Status, error) {
	if n, err := strconv.Atoi(s); err == nil {
		st := Status(n)
		if st < StatusOK || st > StatusDependant {
			return StatusUnknown, fmt.Errorf("status code out of range: %d", n)
		}
		return st, nil
	}
	want := strings.ToUpper(strings.TrimSpace(s))
	for st, word := range statusWords {
		if word == want {
			return Status(st), nil
		}
	}
	return StatusUnknown, fmt.Errorf("unknown status %q", s)
}
