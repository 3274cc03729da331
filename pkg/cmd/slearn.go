package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// slearnCmd and supervisionCmd accept and validate their documented flags
// but do not perform a structure search: §6 of the specification this
// toolkit is built against explicitly excludes "the OSL/OSLa
// structure-learning search" from scope, since it is a large, independently
// specified search procedure in its own right rather than part of the MLN
// data model (AST, CNF, grounding, MRF) this core implements. Both
// subcommands still validate their inputs and fail with the documented exit
// codes, matching every other subcommand's CLI contract.
var slearnCmd = &cobra.Command{
	Use:   "slearn",
	Short: "Structure learning (not implemented by this core).",
	Long: "Structure learning (OSL/OSLa clause search) is outside this " +
		"toolkit's scope; this subcommand validates its flags and its input " +
		"files, then reports that no structure search is available.",
	Run: func(cmd *cobra.Command, args []string) {
		_ = readFile(GetString(cmd, "i"))
		_ = readTrainingSource(GetString(cmd, "t"))

		if len(GetStringArray(cmd, "ne")) == 0 {
			fmt.Println("lomrf slearn: -ne must name at least one non-evidence predicate")
			os.Exit(ExitUsageError)
		}

		fmt.Println("lomrf slearn: structure learning (OSL/OSLa search) is not implemented by this build")
		os.Exit(ExitPipelineError)
	},
}

func init() {
	rootCmd.AddCommand(slearnCmd)
	slearnCmd.Flags().String("i", "", "input MLN knowledge base file")
	slearnCmd.Flags().String("t", "", "training evidence file or directory")
	slearnCmd.Flags().String("o", "", "output MLN knowledge base file")
	slearnCmd.Flags().StringArray("m", nil, "search mode declaration (repeatable)")
	slearnCmd.Flags().StringArray("ne", nil, "non-evidence predicate signature Name/N (repeatable)")
	_ = slearnCmd.MarkFlagRequired("i")
	_ = slearnCmd.MarkFlagRequired("t")
	_ = slearnCmd.MarkFlagRequired("o")
}
