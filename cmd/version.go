package cmd

import (
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/spf13/cobra"
)

var (
	appVersion   = "dev"
	appBuildTime = "unknown"
	semVersion   *semver.Version
)

// SetVersion records the build version. Versions that are not valid semver
// (such as "dev") are kept verbatim.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	semVersion = nil

	if v, err := semver.ParseTolerant(version); err == nil {
		semVersion = &v
		appVersion = v.String()
	}
}

// userAgent identifies fotoctl to the API.
func userAgent() string {
	return "fotoctl/" + appVersion
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of fotoctl",
	Args:  cobra.NoArgs,
	// No config needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("fotoctl %s\n", appVersion)
		fmt.Printf("  Build time: %s\n", appBuildTime)
		fmt.Printf("  Go version: %s\n", runtime.Version())
		if semVersion == nil {
			fmt.Println("  Development build")
		} else if len(semVersion.Pre) > 0 {
			fmt.Println("  Pre-release build")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
