package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anskarl/lomrf/pkg/fol"
)

// Exit codes (§6): 0 success, 1 usage/IO error, 10 inference/compilation
// failure (e.g. an unsatisfiable hard theory), anything above 10 an
// unexpected internal error.
const (
	ExitOK            = 0
	ExitUsageError    = 1
	ExitPipelineError = 10
	ExitInternalError = 11
)

// GetFlag gets an expected bool flag, or exits if the flag is undeclared.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(ExitInternalError)
	}

	return r
}

// GetString gets an expected string flag, or exits if the flag is
// undeclared.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(ExitInternalError)
	}

	return r
}

// GetStringArray gets an expected string-array flag, or exits if the flag is
// undeclared.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(ExitInternalError)
	}

	return r
}

// GetFloat64 gets an expected float64 flag, or exits if the flag is
// undeclared.
func GetFloat64(cmd *cobra.Command, flag string) float64 {
	r, err := cmd.Flags().GetFloat64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(ExitInternalError)
	}

	return r
}

// GetInt gets an expected int flag, or exits if the flag is undeclared.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(ExitInternalError)
	}

	return r
}

// readFile reads filename, exiting with ExitUsageError on failure -- every
// subcommand's `-i`/`-e`/`-t` source files go through this helper so a
// missing/unreadable input always exits 1, never panics.
func readFile(filename string) string {
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(ExitUsageError)
	}

	return string(data)
}

// writeFile writes data to filename, exiting with ExitUsageError on
// failure.
func writeFile(filename string, data string) {
	if err := os.WriteFile(filename, []byte(data), 0644); err != nil {
		fmt.Println(err)
		os.Exit(ExitUsageError)
	}
}

// parseSignatures parses the values of a repeatable `Name/N` flag into atom
// signatures, one signature per value (§6's `-q`/`-cwa`/`-owa`/`-ne`
// flags), exiting with ExitUsageError on a malformed entry.
func parseSignatures(flagValues []string) []fol.AtomSignature {
	out := make([]fol.AtomSignature, 0, len(flagValues))

	for _, v := range flagValues {
		sig, err := fol.ParseAtomSignature(v)
		if err != nil {
			fmt.Println(err)
			os.Exit(ExitUsageError)
		}

		out = append(out, sig)
	}

	return out
}
