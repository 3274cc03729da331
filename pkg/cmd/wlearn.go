package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anskarl/lomrf/pkg/compiler"
	"github.com/anskarl/lomrf/pkg/fol"
	"github.com/anskarl/lomrf/pkg/ground"
	"github.com/anskarl/lomrf/pkg/infer"
	"github.com/anskarl/lomrf/pkg/mrf"
	"github.com/anskarl/lomrf/pkg/parse"
	"github.com/anskarl/lomrf/pkg/util"
)

var wlearnCmd = &cobra.Command{
	Use:   "wlearn",
	Short: "Learn clause weights from fully-observed training evidence.",
	Long: "Learns a weight per compiled clause via an online, loss-augmented " +
		"structured-perceptron update (Max-Margin-style): each epoch runs MAP " +
		"inference from the current weights, compares grounding counts against " +
		"the gold training evidence for the non-evidence predicates, and nudges " +
		"every soft clause's weight toward the gold counts; hard clauses stay hard.",
	Run: func(cmd *cobra.Command, args []string) {
		stats := util.NewPipelineStats()

		kbSrc := readFile(GetString(cmd, "i"))
		trainingSrc := readTrainingSource(GetString(cmd, "t"))
		ne := parseSignatures(GetStringArray(cmd, "ne"))
		lossAugmented := GetFlag(cmd, "lossAugmented")
		epochs := GetInt(cmd, "epochs")
		rate := GetFloat64(cmd, "rate")

		opts := compiler.Options{
			CompletionMode: completionModeFlag(GetString(cmd, "pcm")),
			// Training assumes complete supervision over the non-evidence
			// predicates: anything the training evidence does not assert
			// true is false, not unknown.
			CWA:       ne,
			Grounding: ground.Options{DependencyMap: true},
		}

		res, err := compiler.Compile(context.Background(), kbSrc, trainingSrc, opts)
		if err != nil {
			fmt.Println(err)
			os.Exit(ExitPipelineError)
		}

		stats.Mark("compile+ground")

		annotation := goldAnnotation(res, ne)
		weights := initialParentWeights(res.Clauses)
		algorithm := infer.NewMaxWalkSATSolver()

		for epoch := 0; epoch < epochs; epoch++ {
			applyAnnotation(res.MRF, annotation)

			goldCounts, err := infer.CountGroundings(res.MRF, len(res.Clauses))
			if err != nil {
				fmt.Println(err)
				os.Exit(ExitPipelineError)
			}

			infOpts := infer.Options{LossAugmented: lossAugmented, Annotation: annotation}
			if err := algorithm.Infer(context.Background(), res.MRF, infOpts); err != nil {
				fmt.Println(err)
				os.Exit(ExitPipelineError)
			}

			inferredCounts, err := infer.CountGroundings(res.MRF, len(res.Clauses))
			if err != nil {
				fmt.Println(err)
				os.Exit(ExitPipelineError)
			}

			for i := range weights {
				if fol.IsWeightHard(weights[i]) {
					continue
				}

				weights[i] += rate * (goldCounts[i] - inferredCounts[i])
			}

			if err := infer.UpdateWeights(res.MRF, weights); err != nil {
				fmt.Println(err)
				os.Exit(ExitPipelineError)
			}
		}

		applyLearnedWeights(res.Clauses, weights)
		stats.Mark("weight learning")
		stats.Log()

		out := parse.WriteSchemaHeader(res.KB) + parse.WriteClauses(res.Clauses, parse.KeepWeights)
		writeFile(GetString(cmd, "o"), out)
	},
}

// readTrainingSource reads `-t`'s argument, which may be a single evidence
// file or a directory of them (§6): a directory's files are concatenated
// into one evidence source, in filepath.Glob's lexical order.
func readTrainingSource(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Println(err)
		os.Exit(ExitUsageError)
	}

	if !info.IsDir() {
		return readFile(path)
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.db"))
	if err != nil {
		fmt.Println(err)
		os.Exit(ExitUsageError)
	}

	var sb strings.Builder

	for _, m := range matches {
		sb.WriteString(readFile(m))
		sb.WriteString("\n")
	}

	return sb.String()
}

// goldAnnotation builds the fully-observed gold truth assignment for every
// ground atom of the non-evidence predicates (§6's `-ne`), read back from
// the compiled evidence DB. Atoms the training evidence leaves UNKNOWN are
// left out of the annotation rather than guessed.
func goldAnnotation(res *compiler.Result, ne []fol.AtomSignature) map[int]bool {
	out := make(map[int]bool)

	for _, sig := range ne {
		start, size, ok := res.Identity.RangeOf(sig)
		if !ok {
			continue
		}

		for id := start; id < start+size; id++ {
			switch res.Evidence.ApplyID(id) {
			case fol.True:
				out[id] = true
			case fol.False:
				out[id] = false
			}
		}
	}

	return out
}

// applyAnnotation resets every annotated atom's truth in m to its gold
// value, the starting point CountGroundings' "gold counts" pass assumes.
func applyAnnotation(m *mrf.MRF, annotation map[int]bool) {
	for id, truth := range annotation {
		m.SetTruth(id, truth)
	}
}

// initialParentWeights seeds one weight per compiled clause from its parsed
// weight, substituting 0 for clauses whose weight is still "to be learned"
// (NaN) -- hard clauses keep +Inf and are skipped by the update loop.
func initialParentWeights(clauses []fol.Clause) []float64 {
	out := make([]float64, len(clauses))

	for i, c := range clauses {
		if fol.IsWeightUnknown(c.Weight) {
			out[i] = 0

			continue
		}

		out[i] = c.Weight
	}

	return out
}

// applyLearnedWeights writes the learned weights back onto clauses in
// place.
func applyLearnedWeights(clauses []fol.Clause, weights []float64) {
	for i := range clauses {
		if fol.IsWeightHard(clauses[i].Weight) {
			continue
		}

		clauses[i].Weight = weights[i]
	}
}

func init() {
	rootCmd.AddCommand(wlearnCmd)
	wlearnCmd.Flags().String("i", "", "input MLN knowledge base file")
	wlearnCmd.Flags().String("t", "", "training evidence file or directory")
	wlearnCmd.Flags().String("o", "", "output MLN knowledge base file")
	wlearnCmd.Flags().StringArray("ne", nil, "non-evidence predicate signature Name/N (repeatable)")
	wlearnCmd.Flags().String("alg", "MAX_MARGIN", "weight-learning algorithm label (informational; one online update rule is implemented)")
	wlearnCmd.Flags().Bool("lossAugmented", true, "use loss-augmented MAP inference during training")
	wlearnCmd.Flags().Int("epochs", 20, "number of training epochs")
	wlearnCmd.Flags().Float64("rate", 1.0, "learning rate")
	wlearnCmd.Flags().String("pcm", "standard", "predicate completion mode: standard|decomposed|simplification")
	_ = wlearnCmd.MarkFlagRequired("i")
	_ = wlearnCmd.MarkFlagRequired("t")
	_ = wlearnCmd.MarkFlagRequired("o")
	_ = wlearnCmd.MarkFlagRequired("ne")
}
