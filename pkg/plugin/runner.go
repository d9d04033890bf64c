package plugin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
)

// Default bounds used when the Runner fields are left zero and no
// command-line override is given.
const (
	DefaultTimeout        = 10 * time.Second
	DefaultCleanupTimeout = 60 * time.Second
)

// Request carries everything a check function receives for a single
// run.
type Request struct {
	// Context is cancelled when the check deadline fires. Checks that
	// honor it stop promptly on timeout; checks that ignore it keep
	// running until the process exits.
	Context context.Context

	// Flags is the parsed option set, including any custom options
	// registered through Runner.Flags.
	Flags *pflag.FlagSet

	// Args holds the positional arguments left over after parsing.
	Args []string

	// Verbose is where free-form diagnostic output goes. It is the
	// real output stream when -v/--verbose was given and a discard
	// sink otherwise, so in normal mode the status line stays the only
	// thing the plugin prints.
	Verbose io.Writer
}

// CheckFunc is the caller-supplied check. It performs the actual
// monitored-condition test and reports the result as an Outcome.
type CheckFunc func(req *Request) Outcome

// CleanupFunc runs on every exit path with the already-decided final
// status. Its context is cancelled when the cleanup deadline fires.
// Cleanup must not print to stdout; use Debugf for diagnostics.
type CleanupFunc func(ctx context.Context, final Status)

// Runner owns a check function and drives it through the plugin exit
// protocol: parse options, run the check under a deadline, classify,
// run cleanup under its own best-effort deadline, print one status
// line and exit with the mapped code.
//
// A Runner is built once per process, configured, and then Run exactly
// once. Run does not return.
type Runner struct {
	// Name is the identifier prepended to the status line, usually in
	// caps ("DISK", "MAILQ").
	Name string

	// Check is the check function. Required.
	Check CheckFunc

	// Timeout bounds the check. Zero means DefaultTimeout; the
	// --timeout flag overrides it, and --timeout=0 disables the bound.
	Timeout time.Duration

	// CleanupTimeout bounds the cleanup hook. Zero means
	// DefaultCleanupTimeout; --cleanup-timeout overrides it.
	CleanupTimeout time.Duration

	// Out receives the status line and, in verbose mode, check
	// diagnostics. Defaults to os.Stdout.
	Out io.Writer

	// ErrOut receives usage and argument errors. Defaults to
	// os.Stderr.
	ErrOut io.Writer

	extendedUsage string
	flags         *pflag.FlagSet
	cleanup       CleanupFunc
	exit          func(code int)
	start         time.Time
}

// New returns a Runner for the given check. Configuration mistakes
// (nil check, duplicate flag names) are programming errors and fail
// fast by panicking before any check executes; they never map to an
// exit code.
func New(name string, check CheckFunc) *Runner {
	if check == nil {
		panic("plugin: nil check function")
	}
	Debugf("runner init: name=%q", name)
	return &Runner{
		Name:  name,
		Check: check,
		flags: pflag.NewFlagSet(name, pflag.ContinueOnError),
		exit:  os.Exit,
	}
}

// Flags exposes the option set so callers can register custom options
// before Run. The names "verbose", "timeout" and "cleanup-timeout" and
// the shorthand "v" are reserved for the built-in options.
func (r *Runner) Flags() *pflag.FlagSet {
	return r.flags
}

// SetCleanup registers a hook invoked on every exit path, bounded by
// the cleanup timeout. Any failure, timeout or panic inside the hook
// is swallowed: cleanup can never change the already-decided status or
// block the exit sequence. Pass nil to unregister.
func (r *Runner) SetCleanup(fn CleanupFunc) {
	if fn == nil {
		Debugf("cleanup hook unregistered")
	} else {
		Debugf("cleanup hook registered")
	}
	r.cleanup = fn
}

// SetExtendedUsage appends text to the usage line, typically to
// describe positional arguments which the flag parser cannot document
// on its own. An empty string reverts to the bare usage line.
func (r *Runner) SetExtendedUsage(text string) {
	r.extendedUsage = text
}

// Run parses os.Args, executes the check and terminates the process.
// It does not return.
//
// A check that exceeds its timeout is classified UNKNOWN with a
// "Timeout reached" message. (Earlier designs of this protocol
// treated a timeout as CRITICAL; UNKNOWN is the deliberate choice
// here, since an overrun says nothing about the monitored resource.)
func (r *Runner) Run() {
	r.RunArgs(os.Args[1:])
}

// RunArgs is Run with an explicit argument vector.
func (r *Runner) RunArgs(args []string) {
	fs := r.flags
	verbose := fs.BoolP("verbose", "v", false,
		"Let the check output more information on what is happening")
	timeoutSecs := fs.Int("timeout", seconds(r.Timeout, DefaultTimeout),
		"Number of seconds before the check times out. 0 disables the timeout")
	cleanupSecs := fs.Int("cleanup-timeout", seconds(r.CleanupTimeout, DefaultCleanupTimeout),
		"Number of seconds before the cleanup hook times out")

	fs.SetOutput(r.errw())
	// All usage printing happens in the branches below; pflag's own
	// printing is inconsistent under ContinueOnError.
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprint(r.outw(), r.usageText())
		} else {
			fmt.Fprintln(r.errw(), err)
			fmt.Fprint(r.errw(), r.usageText())
		}
		r.exit(StatusUnknown.ExitCode())
		return
	}

	checkTimeout := r.resolveTimeout(fs, "timeout", *timeoutSecs, r.Timeout, DefaultTimeout)
	cleanupTimeout := r.resolveTimeout(fs, "cleanup-timeout", *cleanupSecs, r.CleanupTimeout, DefaultCleanupTimeout)
	Debugf("resolved timeouts: check=%s cleanup=%s", checkTimeout, cleanupTimeout)

	r.start = time.Now()

	verboseOut := io.Writer(io.Discard)
	if *verbose {
		verboseOut = r.outw()
	}
	req := &Request{
		Flags:   fs,
		Args:    fs.Args(),
		Verbose: verboseOut,
	}

	// Buffered so a check that outlives its deadline parks its late
	// result here instead of racing the timeout classification.
	outCh := make(chan Outcome, 1)
	err := Deadline{Timeout: checkTimeout}.Run(context.Background(), func(ctx context.Context) error {
		req.Context = ctx
		outCh <- r.Check(req)
		return nil
	})
	var out Outcome
	if err == nil {
		out = <-outCh
	}
	switch {
	case errors.Is(err, ErrTimeout):
		Debugf("check timed out")
		secs := int(checkTimeout / time.Second)
		out = Unknownf("Timeout reached (%d second%s)", secs, pluralS(secs))
	case err != nil:
		out = Unknownf("check failed: %v", err)
	}

	r.finish(out, cleanupTimeout)
}

// finish runs the cleanup hook, prints the status line and exits. The
// outcome is already decided; nothing that happens here may change it.
func (r *Runner) finish(out Outcome, cleanupTimeout time.Duration) {
	Debugf("time elapsed during check: %s", time.Since(r.start))

	if out.Status < StatusOK || out.Status > StatusDependant {
		out = Unknownf("check returned invalid status %d (%s)", int(out.Status), out.Message)
	}

	if r.cleanup != nil {
		Debugf("invoking cleanup hook")
		err := Deadline{Timeout: cleanupTimeout}.Run(context.Background(), func(ctx context.Context) error {
			r.cleanup(ctx, out.Status)
			return nil
		})
		if err != nil {
			// Swallowed: cleanup failure never overrides the outcome.
			Debugf("cleanup hook: %v", err)
		}
	} else {
		Debugf("no cleanup hook registered, skipping")
	}

	fmt.Fprintf(r.outw(), "%s %s: %s\n", r.Name, out.Status, out.Message)
	Debugf("exiting with code %d", out.Status.ExitCode())
	r.exit(out.Status.ExitCode())
}

// resolveTimeout gives the command line precedence over the Runner
// field, which in turn has precedence over the package default.
func (r *Runner) resolveTimeout(fs *pflag.FlagSet, name string, flagSecs int, field, fallback time.Duration) time.Duration {
	if fs.Changed(name) {
		return time.Duration(flagSecs) * time.Second
	}
	if field > 0 {
		return field
	}
	return fallback
}

func (r *Runner) usageText() string {
	usage := fmt.Sprintf("Usage: %s [options]", r.Name)
	if r.extendedUsage != "" {
		usage += " " + r.extendedUsage
	}
	return usage + "\n\nOptions:\n" + r.flags.FlagUsages()
}

func (r *Runner) outw() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

func (r *Runner) errw() io.Writer {
	if r.ErrOut != nil {
		return r.ErrOut
	}
	return os.Stderr
}

// seconds renders a duration field as the whole-second default shown
// in the flag help.
func seconds(d, fallback time.Duration) int {
	if d <= 0 {
		d = fallback
	}
	return int(d / time.Second)
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
