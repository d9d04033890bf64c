package jsoncheck

import (
	"fmt"
	"os"
	"regexp"

	"github.com/tidwall/gjson"

	"github.com/revolux/nagplug/pkg/plugin"
)

// FileSystem abstracts file reading for testability.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
}

// RealFS uses the real filesystem.
type RealFS struct{}

func (RealFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Check validates a JSON status file and optionally asserts on a value
// inside it, addressed with gjson dot-path notation. Assertion
// failures and invalid JSON are CRITICAL; trouble reading the file at
// all is UNKNOWN.
type Check struct {
	Key   string // gjson path to inspect
	Exact string // expected exact value (requires Key)
	Match string // regex the value must match (requires Key)

	FS FileSystem
}

// NewRunner builds the check_json plugin runner.
func NewRunner() *plugin.Runner {
	c := &Check{FS: RealFS{}}
	r := plugin.New("JSON", c.Run)
	fs := r.Flags()
	fs.StringVar(&c.Key, "key", "", "Dot-notation path of the value to inspect")
	fs.StringVar(&c.Exact, "exact", "", "Exact value the key must hold")
	fs.StringVar(&c.Match, "match", "", "Regex the key's value must match")
	r.SetExtendedUsage("<file>")
	return r
}

func (c *Check) Run(req *plugin.Request) plugin.Outcome {
	if len(req.Args) != 1 {
		return plugin.Unknownf("exactly one file argument expected")
	}
	file := req.Args[0]

	content, err := c.FS.ReadFile(file)
	if err != nil {
		return plugin.Unknownf("cannot read %s: %v", file, err)
	}

	doc := string(content)
	if !gjson.Valid(doc) {
		return plugin.Criticalf("%s is not valid JSON", file)
	}

	if c.Key == "" {
		return plugin.OKf("%s is valid JSON (%d bytes)", file, len(content))
	}

	value := gjson.Get(doc, c.Key)
	if !value.Exists() {
		return plugin.Criticalf("key %q not found in %s", c.Key, file)
	}

	text := value.String()
	if value.Type == gjson.Null {
		text = "null"
	}
	fmt.Fprintf(req.Verbose, "%s = %s\n", c.Key, text)

	if c.Exact != "" && text != c.Exact {
		return plugin.Criticalf("%s is %q, expected %q", c.Key, text, c.Exact)
	}
	if c.Match != "" {
		re, err := regexp.Compile(c.Match)
		if err != nil {
			return plugin.Unknownf("invalid --match pattern: %v", err)
		}
		if !re.MatchString(text) {
			return plugin.Criticalf("%s is %q, does not match %q", c.Key, text, c.Match)
		}
	}

	return plugin.OKf("%s = %s", c.Key, text)
}
