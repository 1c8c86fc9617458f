package main

import (
	"os"
	"strings"

	"shoplist-cli/internal/cli"
)

func isListID(s string) bool {
	s = strings.TrimSpace(s)
	// Keep it permissive; ids are generated but users may paste variants.
	return strings.HasPrefix(s, "list-") && len(s) > len("list-")
}

// rewriteDirectListLookupArgs makes `shoplist <list-id>` work like
// `shoplist lists show <list-id>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
// before parsing. Persistent flags may come first, so we look for the first
// positional token rather than argv[1].
func rewriteDirectListLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--data-dir": true,
		"--log-file": true,
		"--glyphs":   true,
		"--format":   true,
		"--email":    true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}
		if strings.HasPrefix(a, "-") {
			// Unknown flags are treated as bool flags so a list id is never consumed as a value.
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		if isListID(a) {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, "lists", "show")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectListLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
