// Command null is the CLI driver over the null toolchain core: five
// verbs (run, interp, build, repl, test) over the same
// preprocess->lex->parse->analyze->interp pipeline (spec.md §6's
// "CLI surface (outer glue, not core)"). Grounded on cobra wiring in
// cuelang.org/go/cmd/cue/cmd/cmd.go, replacing the teacher's (vex)
// hand-rolled flag.FlagSet switch in cmd/vex-transpiler/main.go — see
// DESIGN.md.
package main

import "os"

func main() {
	os.Exit(Execute())
}
