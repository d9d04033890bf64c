package hashcheck

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/revolux/nagplug/pkg/plugin"
)

// Opener abstracts file access for testability.
type Opener interface {
	Open(name string) (io.ReadCloser, error)
}

// RealOpener uses the real filesystem.
type RealOpener struct{}

func (RealOpener) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Algorithm selects the digest used for comparison.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	BLAKE3 Algorithm = "blake3"
)

func (a Algorithm) newHasher() hash.Hash {
	if a == BLAKE3 {
		return blake3.New()
	}
	return sha256.New()
}

// Check compares a file's digest against an expected value. A
// mismatch is CRITICAL; not being able to compute the digest at all is
// UNKNOWN.
type Check struct {
	Checksum string // expected digest, hex
	Algo     string // sha256 (default) or blake3

	Opener Opener
}

// NewRunner builds the check_hash plugin runner.
func NewRunner() *plugin.Runner {
	c := &Check{Opener: RealOpener{}}
	r := plugin.New("HASH", c.Run)
	fs := r.Flags()
	fs.StringVar(&c.Checksum, "checksum", "", "Expected digest in hex (required)")
	fs.StringVar(&c.Algo, "algo", string(SHA256), "Digest algorithm: sha256 or blake3")
	r.SetExtendedUsage("--checksum <hex> <file>")
	return r
}

func (c *Check) Run(req *plugin.Request) plugin.Outcome {
	if len(req.Args) != 1 {
		return plugin.Unknownf("exactly one file argument expected")
	}
	file := req.Args[0]

	algo := Algorithm(strings.ToLower(c.Algo))
	if algo != SHA256 && algo != BLAKE3 {
		return plugin.Unknownf("unsupported algorithm %q", c.Algo)
	}

	want := strings.ToLower(strings.TrimSpace(c.Checksum))
	if want == "" {
		return plugin.Unknownf("--checksum is required")
	}
	if _, err := hex.DecodeString(want); err != nil {
		return plugin.Unknownf("checksum is not valid hex")
	}

	f, err := c.Opener.Open(file)
	if err != nil {
		return plugin.Unknownf("cannot open %s: %v", file, err)
	}
	defer func() { _ = f.Close() }()

	h := algo.newHasher()
	if _, err := io.Copy(h, f); err != nil {
		return plugin.Unknownf("cannot read %s: %v", file, err)
	}
	got := hex.EncodeToString(h.Sum(nil))
	fmt.Fprintf(req.Verbose, "%s %s = %s\n", algo, file, got)

	if got != want {
		return plugin.Criticalf("%s digest mismatch on %s (got %s, want %s)", algo, file, got, want)
	}
	return plugin.OKf("%s digest of %s matches", algo, file)
}
