// Command lomrf is the LoMRF command-line tool: compile, infer, wlearn,
// slearn and supervision subcommands over Markov Logic Networks (§6).
package main

import "github.com/anskarl/lomrf/pkg/cmd"

func main() {
	cmd.Execute()
}
