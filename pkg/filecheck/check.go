package filecheck

import (
	"fmt"
	"os"
	"time"

	"github.com/revolux/nagplug/pkg/plugin"
)

// Stater abstracts filesystem stat for testability.
type Stater interface {
	Stat(path string) (os.FileInfo, error)
}

// RealStater uses the real filesystem.
type RealStater struct{}

func (RealStater) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Check verifies that a file exists and optionally that it is fresh and
// large enough. Age thresholds follow the usual -w/-c convention:
// exceeding the warning age is a WARNING, exceeding the critical age a
// CRITICAL.
type Check struct {
	WarnAge   int   // seconds since last modification, 0 disables
	CritAge   int   // seconds since last modification, 0 disables
	MinSize   int64 // bytes, 0 disables
	ExpectDir bool

	Stater Stater
	Now    func() time.Time // for tests; nil means time.Now
}

// NewRunner builds the check_file plugin runner.
func NewRunner() *plugin.Runner {
	c := &Check{Stater: RealStater{}}
	r := plugin.New("FILE", c.Run)
	fs := r.Flags()
	fs.IntVarP(&c.WarnAge, "warning", "w", 0, "Warn when the file is older than this many seconds (0 disables)")
	fs.IntVarP(&c.CritAge, "critical", "c", 0, "Critical when the file is older than this many seconds (0 disables)")
	fs.Int64Var(&c.MinSize, "min-size", 0, "Critical when the file is smaller than this many bytes (0 disables)")
	fs.BoolVar(&c.ExpectDir, "dir", false, "Expect a directory instead of a regular file")
	r.SetExtendedUsage("<path>")
	return r
}

func (c *Check) Run(req *plugin.Request) plugin.Outcome {
	if len(req.Args) != 1 {
		return plugin.Unknownf("exactly one path argument expected")
	}
	path := req.Args[0]

	info, err := c.Stater.Stat(path)
	switch {
	case os.IsNotExist(err):
		return plugin.Criticalf("%s does not exist", path)
	case err != nil:
		return plugin.Unknownf("cannot stat %s: %v", path, err)
	}

	if c.ExpectDir && !info.IsDir() {
		return plugin.Criticalf("%s is not a directory", path)
	}
	if !c.ExpectDir && info.IsDir() {
		return plugin.Criticalf("%s is a directory", path)
	}

	fmt.Fprintf(req.Verbose, "%s: size=%d mtime=%s\n", path, info.Size(), info.ModTime())

	if !c.ExpectDir && c.MinSize > 0 && info.Size() < c.MinSize {
		return plugin.Criticalf("%s is %d bytes (minimum %d)", path, info.Size(), c.MinSize)
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	ageSecs := int(now().Sub(info.ModTime()) / time.Second)

	if c.CritAge > 0 && ageSecs >= c.CritAge {
		return plugin.Criticalf("%s is %d seconds old (critical threshold %d)", path, ageSecs, c.CritAge)
	}
	if c.WarnAge > 0 && ageSecs >= c.WarnAge {
		return plugin.Warningf("%s is %d seconds old (warning threshold %d)", path, ageSecs, c.WarnAge)
	}

	return plugin.OKf("%s is %d bytes, modified %d seconds ago", path, info.Size(), ageSecs)
}
