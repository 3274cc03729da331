package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anskarl/lomrf/pkg/fol"
	"github.com/anskarl/lomrf/pkg/parse"
	"github.com/anskarl/lomrf/pkg/pc"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile and rewrite an MLN knowledge base.",
	Long:  "Parses an MLN knowledge base, optionally compiles it to pure CNF and/or strips weights, and writes the result back out.",
	Run: func(cmd *cobra.Command, args []string) {
		input := GetString(cmd, "i")
		output := GetString(cmd, "o")
		toCNF := GetFlag(cmd, "cnf")
		weightMode := parseWeightModeFlag(GetString(cmd, "w"))

		kb, err := parse.ParseKB(readFile(input), fol.NewDynamicRegistry())
		if err != nil {
			fmt.Println(err)
			os.Exit(ExitPipelineError)
		}

		out, err := parse.WriteKB(kb, parse.WriteOptions{CNF: toCNF, WeightMode: weightMode})
		if err != nil {
			fmt.Println(err)
			os.Exit(ExitPipelineError)
		}

		writeFile(output, out)
	},
}

// parseWeightModeFlag parses the `-w keep|remove_all|remove_soft` flag
// value, exiting with ExitUsageError on an unrecognized mode.
func parseWeightModeFlag(s string) parse.WeightMode {
	switch s {
	case "", "keep":
		return parse.KeepWeights
	case "remove_all":
		return parse.RemoveAllWeights
	case "remove_soft":
		return parse.RemoveSoftWeights
	default:
		fmt.Printf("unknown -w mode %q, expected keep|remove_all|remove_soft\n", s)
		os.Exit(ExitUsageError)

		return parse.KeepWeights
	}
}

// completionModeFlag parses the `-pcm standard|decomposed|simplification`
// flag value of infer and wlearn, exiting with ExitUsageError on an
// unrecognized mode. compile has no -pcm flag: its -cnf output always
// completes definite clauses in standard mode.
func completionModeFlag(s string) pc.Mode {
	switch s {
	case "", "standard":
		return pc.Standard
	case "decomposed":
		return pc.Decomposed
	case "simplification":
		return pc.Simplification
	default:
		fmt.Printf("unknown -pcm mode %q, expected standard|decomposed|simplification\n", s)
		os.Exit(ExitUsageError)

		return pc.Standard
	}
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().String("i", "", "input MLN knowledge base file")
	compileCmd.Flags().String("o", "", "output MLN knowledge base file")
	compileCmd.Flags().Bool("cnf", false, "compile to pure clausal (CNF) form before writing")
	compileCmd.Flags().String("w", "keep", "weight handling: keep|remove_all|remove_soft")
	_ = compileCmd.MarkFlagRequired("i")
	_ = compileCmd.MarkFlagRequired("o")
}
