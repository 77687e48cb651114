package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain registers the `null` binary as an in-process command for
// testscript, grounded on cuelang.org/go/cmd/cue/cmd/script_test.go's
// identical TestMain(m, map[string]func() int{"cue": Main}) pattern.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"null": Execute,
	}))
}

// TestScript runs every testdata/script/*.txt scenario, covering spec.md
// §8's numbered testable properties end to end through the CLI surface.
func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
