package envcheck

import (
	"fmt"
	"os"
	"regexp"

	"github.com/revolux/nagplug/pkg/plugin"
)

// Getter abstracts environment lookup for testability.
type Getter interface {
	LookupEnv(key string) (string, bool)
}

// RealGetter uses the process environment.
type RealGetter struct{}

func (RealGetter) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Check verifies that the named environment variables are present.
// A missing variable is CRITICAL, an empty one WARNING unless
// AllowEmpty is set. With Match, every value must match the pattern.
type Check struct {
	Match      string
	AllowEmpty bool

	Getter Getter
}

// NewRunner builds the check_env plugin runner.
func NewRunner() *plugin.Runner {
	c := &Check{Getter: RealGetter{}}
	r := plugin.New("ENV", c.Run)
	fs := r.Flags()
	fs.StringVar(&c.Match, "match", "", "Regex every variable value must match")
	fs.BoolVar(&c.AllowEmpty, "allow-empty", false, "Treat empty values as OK instead of WARNING")
	r.SetExtendedUsage("<VAR>...")
	return r
}

func (c *Check) Run(req *plugin.Request) plugin.Outcome {
	if len(req.Args) == 0 {
		return plugin.Unknownf("at least one variable name expected")
	}

	var re *regexp.Regexp
	if c.Match != "" {
		var err error
		re, err = regexp.Compile(c.Match)
		if err != nil {
			return plugin.Unknownf("invalid --match pattern: %v", err)
		}
	}

	empty := 0
	for _, name := range req.Args {
		value, ok := c.Getter.LookupEnv(name)
		if !ok {
			return plugin.Criticalf("%s is not set", name)
		}
		fmt.Fprintf(req.Verbose, "%s=%s\n", name, value)
		if value == "" {
			empty++
			continue
		}
		if re != nil && !re.MatchString(value) {
			return plugin.Criticalf("%s does not match %q", name, c.Match)
		}
	}

	if empty > 0 && !c.AllowEmpty {
		return plugin.Warningf("%d of %d variable%s empty", empty, len(req.Args), pluralS(len(req.Args)))
	}
	return plugin.OKf("%d variable%s present", len(req.Args), pluralS(len(req.Args)))
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
