package cmdcheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/revolux/nagplug/pkg/plugin"
)

// versionPattern pulls the first version-looking token out of the
// command's version output.
var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// Check verifies that a command is installed and, optionally, that the
// version it reports satisfies a semver constraint. A missing command
// or violated constraint is CRITICAL; not being able to determine the
// version is UNKNOWN.
type Check struct {
	VersionArg string // argument that makes the command print its version
	Constraint string // semver constraint, e.g. ">= 1.20, < 2"

	Runner Runner
}

// NewRunner builds the check_cmd plugin runner.
func NewRunner() *plugin.Runner {
	c := &Check{Runner: RealRunner{}}
	r := plugin.New("CMD", c.Run)
	fs := r.Flags()
	fs.StringVar(&c.VersionArg, "version-arg", "--version", "Argument used to ask the command for its version")
	fs.StringVar(&c.Constraint, "constraint", "", "Semver constraint the reported version must satisfy")
	r.SetExtendedUsage("<command>")
	return r
}

func (c *Check) Run(req *plugin.Request) plugin.Outcome {
	if len(req.Args) != 1 {
		return plugin.Unknownf("exactly one command argument expected")
	}
	name := req.Args[0]

	path, err := c.Runner.LookPath(name)
	if err != nil {
		return plugin.Criticalf("%s not found in PATH", name)
	}
	fmt.Fprintf(req.Verbose, "found %s at %s\n", name, path)

	if c.Constraint == "" {
		return plugin.OKf("%s found at %s", name, path)
	}

	constraint, err := semver.NewConstraint(c.Constraint)
	if err != nil {
		return plugin.Unknownf("invalid constraint %q: %v", c.Constraint, err)
	}

	output, err := c.Runner.CombinedOutput(req.Context, name, c.VersionArg)
	if err != nil {
		return plugin.Unknownf("%s %s failed: %v", name, c.VersionArg, err)
	}
	fmt.Fprintf(req.Verbose, "version output: %s\n", strings.TrimSpace(output))

	raw := versionPattern.FindString(output)
	if raw == "" {
		return plugin.Unknownf("no version found in %s output", name)
	}
	version, err := semver.NewVersion(raw)
	if err != nil {
		return plugin.Unknownf("cannot parse version %q: %v", raw, err)
	}

	if !constraint.Check(version) {
		return plugin.Criticalf("%s version %s does not satisfy %q", name, version, c.Constraint)
	}
	return plugin.OKf("%s version %s satisfies %q", name, version, c.Constraint)
}
