package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out.Println(out.Header("employeedb"))
		out.Println("")
		out.Println(out.KeyValue("Version", Version))
		out.Println(out.KeyValue("Git Commit", GitCommit))
		out.Println(out.KeyValue("Built", BuildDate))
		out.Println(out.KeyValue("Go Version", runtime.Version()))
		out.Println(out.KeyValue("OS/Arch", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = Version
}
