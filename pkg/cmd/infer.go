package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/anskarl/lomrf/pkg/compiler"
	"github.com/anskarl/lomrf/pkg/fol"
	"github.com/anskarl/lomrf/pkg/ground"
	"github.com/anskarl/lomrf/pkg/identity"
	"github.com/anskarl/lomrf/pkg/infer"
	"github.com/anskarl/lomrf/pkg/util"
)

var inferCmd = &cobra.Command{
	Use:   "infer",
	Short: "Run MAP inference over an MLN and its evidence.",
	Long:  "Compiles and grounds an MLN against evidence, runs MAP inference, and writes the resulting truth assignment for every query predicate.",
	Run: func(cmd *cobra.Command, args []string) {
		stats := util.NewPipelineStats()

		opts := compiler.Options{
			CompletionMode: completionModeFlag(GetString(cmd, "pcm")),
			CWA:            parseSignatures(GetStringArray(cmd, "cwa")),
			OWA:            parseSignatures(GetStringArray(cmd, "owa")),
			Query:          parseSignatures(GetStringArray(cmd, "q")),
			Grounding:      ground.Options{},
		}

		res, err := compiler.Compile(context.Background(), readFile(GetString(cmd, "i")), readFile(GetString(cmd, "e")), opts)
		if err != nil {
			fmt.Println(err)
			os.Exit(ExitPipelineError)
		}

		stats.Mark("compile+ground")

		algorithm := inferAlgorithm(GetString(cmd, "mapType"))

		if err := algorithm.Infer(context.Background(), res.MRF, infer.Options{}); err != nil {
			fmt.Println(err)
			os.Exit(ExitPipelineError)
		}

		stats.Mark("infer")
		stats.Log()

		out := renderResults(res, opts.Query, resultWidth())

		writeFile(GetString(cmd, "r"), out)
	},
}

// inferAlgorithm selects a MAP inference algorithm per `-mapType`. Only
// `mws` (MaxWalkSAT) is implemented in-process; this core ships no LP/ILP
// backend (§6's explicit out-of-scope note on "the specific numerical
// optimization routines of external LP/QP solvers"), so `ilp` prints a
// message and exits with ExitUsageError.
func inferAlgorithm(mapType string) infer.Algorithm {
	switch mapType {
	case "", "mws":
		return infer.NewMaxWalkSATSolver()
	case "ilp":
		fmt.Println("lomrf: -mapType ilp requires an external LP/ILP solver, which is not bundled with this build")
		os.Exit(ExitUsageError)

		return nil
	default:
		fmt.Printf("unknown -mapType %q, expected mws|ilp\n", mapType)
		os.Exit(ExitUsageError)

		return nil
	}
}

// renderResults writes one line per ground atom of every query predicate,
// `Pred(args) truth`, sorted by atom id for deterministic output. width (a
// terminal-width hint from golang.org/x/term) caps the length of each whole
// line: a longer line is cut to width-3 characters followed by "...".
func renderResults(res *compiler.Result, query []fol.AtomSignature, width int) string {
	var sb strings.Builder

	for _, sig := range query {
		start, size, ok := res.Identity.RangeOf(sig)
		if !ok {
			continue
		}

		ids := make([]int, 0, size)

		for id := start; id < start+size; id++ {
			if _, ok := res.MRF.Atom(id); ok {
				ids = append(ids, id)
			}
		}

		sort.Ints(ids)

		for _, id := range ids {
			a, _ := res.MRF.Atom(id)
			line := formatGroundAtom(res.Identity, id, a.Truth)

			if width > 0 && len(line) > width {
				line = line[:width-3] + "..."
			}

			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func formatGroundAtom(ids *identity.Function, id int, truth bool) string {
	sig, args, ok := ids.Decode(id)
	if !ok {
		return fmt.Sprintf("%d %v", id, truth)
	}

	return fmt.Sprintf("%s(%s) %v", sig.Symbol, strings.Join(args, ","), truth)
}

// resultWidth reports the controlling terminal's width, or 0 (no limit) if
// stdout is not a terminal.
func resultWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}

	return w
}

func init() {
	rootCmd.AddCommand(inferCmd)
	inferCmd.Flags().String("i", "", "input MLN knowledge base file")
	inferCmd.Flags().String("e", "", "input evidence file")
	inferCmd.Flags().String("r", "", "output results file")
	inferCmd.Flags().StringArray("q", nil, "query predicate signature Name/N (repeatable)")
	inferCmd.Flags().StringArray("cwa", nil, "closed-world predicate signature Name/N (repeatable)")
	inferCmd.Flags().StringArray("owa", nil, "open-world predicate signature Name/N (repeatable)")
	inferCmd.Flags().String("mapType", "mws", "MAP inference backend: mws|ilp")
	inferCmd.Flags().String("pcm", "standard", "predicate completion mode: standard|decomposed|simplification")
	_ = inferCmd.MarkFlagRequired("i")
	_ = inferCmd.MarkFlagRequired("e")
	_ = inferCmd.MarkFlagRequired("r")
}
