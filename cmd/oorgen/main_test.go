package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain registers the oorgen binary as an in-process testscript
// command (github.com/rogpeppe/go-internal/testscript's usual "exec
// your own CLI without forking go build" pattern), so the script tests
// below exercise the exact parseArgs/run path a real invocation would.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"oorgen": func() int { return run(os.Args[1:]) },
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
