package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/revolux/nagplug/pkg/cmdcheck"
	"github.com/revolux/nagplug/pkg/dummycheck"
	"github.com/revolux/nagplug/pkg/envcheck"
	"github.com/revolux/nagplug/pkg/filecheck"
	"github.com/revolux/nagplug/pkg/hashcheck"
	"github.com/revolux/nagplug/pkg/jsoncheck"
	"github.com/revolux/nagplug/pkg/plugin"
	"github.com/revolux/nagplug/pkg/tcpcheck"
)

// Version is set at build time via ldflags
var Version = "dev"

// bundled lists the built-in plugins. Each subcommand hands its raw
// arguments to the plugin's own runner, which owns flag parsing and
// the exit protocol.
var bundled = []struct {
	name  string
	short string
	build func() *plugin.Runner
}{
	{"dummy", "Report the state given on the command line", dummycheck.NewRunner},
	{"file", "Check file existence, freshness and size", filecheck.NewRunner},
	{"env", "Check that environment variables are present", envcheck.NewRunner},
	{"json", "Validate a JSON status file and assert on values", jsoncheck.NewRunner},
	{"hash", "Compare a file digest against an expected checksum", hashcheck.NewRunner},
	{"cmd", "Check that a command is installed, optionally at a version", cmdcheck.NewRunner},
	{"tcp", "Check TCP connectivity and response time", tcpcheck.NewRunner},
}

var rootCmd = &cobra.Command{
	Use:     "nagplug",
	Short:   "Bundled monitoring plugins in a single binary",
	Long:    "nagplug runs any of the bundled monitoring plugins. Each subcommand follows the plugin exit protocol: one status line on stdout and an exit code of 0 (OK) through 4 (DEPENDANT).",
	Version: Version,
}

func init() {
	for _, b := range bundled {
		build := b.build
		rootCmd.AddCommand(&cobra.Command{
			Use:                b.name,
			Short:              b.short,
			DisableFlagParsing: true,
			Run: func(_ *cobra.Command, args []string) {
				build().RunArgs(args)
			},
		})
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(plugin.StatusUnknown.ExitCode())
	}
}
