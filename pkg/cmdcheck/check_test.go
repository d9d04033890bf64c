package cmdcheck

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/revolux/nagplug/pkg/plugin"
)

func mock(path string, lookErr error, output string, runErr error) *MockRunner {
	return &MockRunner{
		LookPathFunc: func(string) (string, error) {
			return path, lookErr
		},
		CombinedOutputFunc: func(context.Context, string, ...string) (string, error) {
			return output, runErr
		},
	}
}

func request(args ...string) *plugin.Request {
	return &plugin.Request{
		Context: context.Background(),
		Args:    args,
		Verbose: io.Discard,
	}
}

func TestCmdCheck(t *testing.T) {
	notFound := errors.New("executable file not found in $PATH")

	tests := []struct {
		name   string
		check  Check
		runner *MockRunner
		want   plugin.Status
	}{
		{
			"found, no constraint",
			Check{},
			mock("/usr/bin/pg_dump", nil, "", nil),
			plugin.StatusOK,
		},
		{
			"not found",
			Check{},
			mock("", notFound, "", nil),
			plugin.StatusCritical,
		},
		{
			"constraint satisfied",
			Check{Constraint: ">= 16"},
			mock("/usr/bin/pg_dump", nil, "pg_dump (PostgreSQL) 16.4", nil),
			plugin.StatusOK,
		},
		{
			"constraint violated",
			Check{Constraint: ">= 17"},
			mock("/usr/bin/pg_dump", nil, "pg_dump (PostgreSQL) 16.4", nil),
			plugin.StatusCritical,
		},
		{
			"range constraint",
			Check{Constraint: ">= 1.20, < 2"},
			mock("/usr/local/bin/tool", nil, "tool version v1.24.4 linux/amd64", nil),
			plugin.StatusOK,
		},
		{
			"version command fails",
			Check{Constraint: ">= 1"},
			mock("/usr/bin/tool", nil, "", errors.New("exit status 1")),
			plugin.StatusUnknown,
		},
		{
			"no version in output",
			Check{Constraint: ">= 1"},
			mock("/usr/bin/tool", nil, "no numbers here", nil),
			plugin.StatusUnknown,
		},
		{
			"invalid constraint",
			Check{Constraint: "not-a-constraint"},
			mock("/usr/bin/tool", nil, "1.0.0", nil),
			plugin.StatusUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.check
			if c.VersionArg == "" {
				c.VersionArg = "--version"
			}
			c.Runner = tt.runner

			got := c.Run(request("pg_dump"))
			if got.Status != tt.want {
				t.Errorf("Run() = %+v, want status %v", got, tt.want)
			}
		})
	}
}

func TestCmdCheckArgCount(t *testing.T) {
	c := &Check{Runner: RealRunner{}}
	if got := c.Run(request()); got.Status != plugin.StatusUnknown {
		t.Errorf("Run() = %+v, want UNKNOWN", got)
	}
}
