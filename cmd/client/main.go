// The client command is the Digital Identity Hub terminal client: it hosts
// the registration and login screens that talk to the remote auth API.
package main

import (
	"cmp"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	root := &cobra.Command{
		Use:   "idhub",
		Short: "Digital Identity Hub client",
	}

	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build version and date",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Version: %s\nBuild Date: %s\n",
				cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		},
	}
}
