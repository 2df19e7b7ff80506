package cmd

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/khanhnv2901/seca-recon/cmd.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type buildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
	Platform  string
	Compiler  string
}

// currentBuildInfo fills commit and date from the embedded VCS stamp when
// ldflags did not set them.
func currentBuildInfo() buildInfo {
	info := buildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Compiler:  runtime.Compiler,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" && s.Value != "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" && s.Value != "" {
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

func printBuildInfo(out io.Writer, info buildInfo) {
	fmt.Fprintln(out, "seca-recon build:")
	fmt.Fprintf(out, "  %-11s %s\n", "Version:", info.Version)
	fmt.Fprintf(out, "  %-11s %s\n", "Git Commit:", info.GitCommit)
	fmt.Fprintf(out, "  %-11s %s\n", "Build Date:", info.BuildDate)
	fmt.Fprintf(out, "  %-11s %s\n", "Go:", info.GoVersion)
	fmt.Fprintf(out, "  %-11s %s\n", "Platform:", info.Platform)
	fmt.Fprintf(out, "  %-11s %s\n", "Compiler:", info.Compiler)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if detailed, _ := cmd.Flags().GetBool("verbose"); detailed {
			printBuildInfo(out, currentBuildInfo())
			return
		}
		fmt.Fprintf(out, "seca-recon version %s\n", Version)
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "show build details")
}
