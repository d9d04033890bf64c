package filecheck

import (
	"context"
	"io"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/revolux/nagplug/pkg/plugin"
)

type fakeInfo struct {
	size  int64
	mtime time.Time
	dir   bool
}

func (f fakeInfo) Name() string       { return "fake" }
func (f fakeInfo) Size() int64        { return f.size }
func (f fakeInfo) Mode() fs.FileMode  { return 0o644 }
func (f fakeInfo) ModTime() time.Time { return f.mtime }
func (f fakeInfo) IsDir() bool        { return f.dir }
func (f fakeInfo) Sys() any           { return nil }

type mockStater struct {
	info fakeInfo
	err  error
}

func (m mockStater) Stat(string) (os.FileInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.info, nil
}

func request(args ...string) *plugin.Request {
	return &plugin.Request{
		Context: context.Background(),
		Args:    args,
		Verbose: io.Discard,
	}
}

func TestFileCheck(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-30 * time.Second)
	stale := now.Add(-600 * time.Second)

	tests := []struct {
		name   string
		check  Check
		stater mockStater
		want   plugin.Status
	}{
		{
			"fresh file ok",
			Check{WarnAge: 120, CritAge: 300},
			mockStater{info: fakeInfo{size: 100, mtime: fresh}},
			plugin.StatusOK,
		},
		{
			"stale file critical",
			Check{WarnAge: 120, CritAge: 300},
			mockStater{info: fakeInfo{size: 100, mtime: stale}},
			plugin.StatusCritical,
		},
		{
			"stale file warning only",
			Check{WarnAge: 120},
			mockStater{info: fakeInfo{size: 100, mtime: stale}},
			plugin.StatusWarning,
		},
		{
			"thresholds disabled",
			Check{},
			mockStater{info: fakeInfo{size: 100, mtime: stale}},
			plugin.StatusOK,
		},
		{
			"missing file",
			Check{},
			mockStater{err: os.ErrNotExist},
			plugin.StatusCritical,
		},
		{
			"stat failure",
			Check{},
			mockStater{err: os.ErrPermission},
			plugin.StatusUnknown,
		},
		{
			"too small",
			Check{MinSize: 1024},
			mockStater{info: fakeInfo{size: 100, mtime: fresh}},
			plugin.StatusCritical,
		},
		{
			"unexpected directory",
			Check{},
			mockStater{info: fakeInfo{dir: true, mtime: fresh}},
			plugin.StatusCritical,
		},
		{
			"expected directory",
			Check{ExpectDir: true},
			mockStater{info: fakeInfo{dir: true, mtime: fresh}},
			plugin.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.check
			c.Stater = tt.stater
			c.Now = func() time.Time { return now }

			got := c.Run(request("/var/log/app.log"))
			assert.Equal(t, tt.want, got.Status, "message: %s", got.Message)
		})
	}
}

func TestFileCheckArgCount(t *testing.T) {
	c := &Check{Stater: RealStater{}}

	got := c.Run(request())
	assert.Equal(t, plugin.StatusUnknown, got.Status)

	got = c.Run(request("a", "b"))
	assert.Equal(t, plugin.StatusUnknown, got.Status)
}
