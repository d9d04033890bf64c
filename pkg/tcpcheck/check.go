package tcpcheck

import (
	"fmt"
	"net"
	"time"

	"github.com/revolux/nagplug/pkg/plugin"
)

// Dialer abstracts network dialing for testability.
type Dialer interface {
	DialTimeout(network, address string, timeout time.Duration) (net.Conn, error)
}

// RealDialer uses the real net package.
type RealDialer struct{}

func (RealDialer) DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout(network, address, timeout)
}

// Check connects to a host:port and compares the connect time against
// the usual -w/-c thresholds. A failed connection is CRITICAL.
type Check struct {
	WarnSecs float64 // response time threshold, 0 disables
	CritSecs float64 // response time threshold, 0 disables

	Dialer Dialer
	Now    func() time.Time // for tests; nil means time.Now
}

// connectTimeout caps the dial itself; the plugin's own deadline is
// usually tighter.
const connectTimeout = 10 * time.Second

// NewRunner builds the check_tcp plugin runner.
func NewRunner() *plugin.Runner {
	c := &Check{Dialer: RealDialer{}}
	r := plugin.New("TCP", c.Run)
	fs := r.Flags()
	fs.Float64VarP(&c.WarnSecs, "warning", "w", 0, "Warn when connecting takes more than this many seconds (0 disables)")
	fs.Float64VarP(&c.CritSecs, "critical", "c", 0, "Critical when connecting takes more than this many seconds (0 disables)")
	r.SetExtendedUsage("<host:port>")
	return r
}

func (c *Check) Run(req *plugin.Request) plugin.Outcome {
	if len(req.Args) != 1 {
		return plugin.Unknownf("exactly one host:port argument expected")
	}
	address := req.Args[0]
	if _, _, err := net.SplitHostPort(address); err != nil {
		return plugin.Unknownf("invalid address %q: %v", address, err)
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	start := now()
	conn, err := c.Dialer.DialTimeout("tcp", address, connectTimeout)
	if err != nil {
		return plugin.Criticalf("connection to %s failed: %v", address, err)
	}
	defer func() { _ = conn.Close() }()
	elapsed := now().Sub(start).Seconds()

	fmt.Fprintf(req.Verbose, "connected to %s in %.3fs\n", address, elapsed)

	if c.CritSecs > 0 && elapsed >= c.CritSecs {
		return plugin.Criticalf("connection to %s took %.3fs (critical threshold %.3fs)", address, elapsed, c.CritSecs)
	}
	if c.WarnSecs > 0 && elapsed >= c.WarnSecs {
		return plugin.Warningf("connection to %s took %.3fs (warning threshold %.3fs)", address, elapsed, c.WarnSecs)
	}
	return plugin.OKf("connected to %s in %.3fs", address, elapsed)
}
