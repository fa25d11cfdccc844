package main

import (
	"os"
	"strings"

	"loops-cli/internal/cli"
)

func isLoopID(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "loop-") {
		return false
	}
	return len(s) > len("loop-")
}

// rewriteDirectLoopLookupArgs turns `loops <loop-id>` into `loops show <loop-id>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
// Persistent flags may come first (`loops --dir ... <loop-id>`), so we look for the first
// positional token rather than argv[1].
func rewriteDirectLoopLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value so the loop id is never swallowed.
	valueFlags := map[string]bool{
		"--dir":       true,
		"--format":    true,
		"--log-level": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	insertShow := func(at int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:at]...)
		out = append(out, "show")
		out = append(out, argv[at:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isLoopID(argv[i+1]) {
				return insertShow(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			switch {
			case strings.Contains(a, "="):
			case boolFlags[a]:
			case valueFlags[a]:
				i++
			}
			continue
		}

		if isLoopID(a) {
			return insertShow(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectLoopLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
