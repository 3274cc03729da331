// Package cmd implements the lomrf command-line surface (§6): compile,
// infer, wlearn, slearn and supervision subcommands built around the
// pkg/compiler orchestration layer.
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is empty unless set at link time (go build -ldflags
// "-X github.com/anskarl/lomrf/pkg/cmd.Version=..."); when empty, --version
// reports an unknown version.
var Version string

// rootCmd is the base command invoked when lomrf is run without a
// subcommand.
var rootCmd = &cobra.Command{
	Use:   "lomrf",
	Short: "LoMRF: a Markov Logic Networks toolkit.",
	Long:  "LoMRF compiles, grounds and queries Markov Logic Networks (MLNs).",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			if Version != "" {
				fmt.Println("lomrf " + Version)
			} else {
				fmt.Println("lomrf (unknown version)")
			}

			return
		}

		_ = cmd.Usage()
	},
}

// Execute runs rootCmd, exiting with status 1 on error; each subcommand
// file's init function has already added its command to rootCmd. Called
// once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}
