package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// supervisionCmd fills out §6's remaining learning surface (kNN/eNN-guided
// template selection ahead of an OSL-style search) with the same
// validate-then-report-unimplemented contract as slearnCmd, for the reason
// documented there.
var supervisionCmd = &cobra.Command{
	Use:   "supervision",
	Short: "kNN/eNN-supervised structure learning (not implemented by this core).",
	Long: "Supervised structure learning is outside this toolkit's scope " +
		"(see `lomrf slearn --help`); this subcommand validates its flags and " +
		"input files, then reports that no structure search is available.",
	Run: func(cmd *cobra.Command, args []string) {
		_ = readFile(GetString(cmd, "i"))
		_ = readTrainingSource(GetString(cmd, "t"))

		classifier := GetString(cmd, "c")
		if classifier != "kNN" && classifier != "eNN" {
			fmt.Printf("unknown -c classifier %q, expected kNN|eNN\n", classifier)
			os.Exit(ExitUsageError)
		}

		if len(GetStringArray(cmd, "ne")) == 0 {
			fmt.Println("lomrf supervision: -ne must name at least one non-evidence predicate")
			os.Exit(ExitUsageError)
		}

		fmt.Println("lomrf supervision: supervised structure learning is not implemented by this build")
		os.Exit(ExitPipelineError)
	},
}

func init() {
	rootCmd.AddCommand(supervisionCmd)
	supervisionCmd.Flags().String("i", "", "input MLN knowledge base file")
	supervisionCmd.Flags().String("t", "", "training evidence directory")
	supervisionCmd.Flags().StringArray("m", nil, "search mode declaration (repeatable)")
	supervisionCmd.Flags().StringArray("ne", nil, "non-evidence predicate signature Name/N (repeatable)")
	supervisionCmd.Flags().String("c", "kNN", "nearest-neighbor classifier: kNN|eNN")
	supervisionCmd.Flags().Int("k", 1, "neighborhood size for kNN")
	supervisionCmd.Flags().Float64("e", 0.1, "neighborhood radius for eNN")
	_ = supervisionCmd.MarkFlagRequired("i")
	_ = supervisionCmd.MarkFlagRequired("t")
}
