package main

import (
	"os"
	"strings"

	"siralim-planner/internal/cli"
)

func partyShorthand(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "@") || len(s) == 1 {
		return "", false
	}
	return s[1:], true
}

func rewritePartyShorthandArgs(argv []string) []string {
	// Convenience: `siralim-planner @main ...` works like `siralim-planner --party main ...`.
	//
	// Only the first positional token is considered, so persistent flags given before it are skipped.
	// Unknown flags are skipped without consuming a value so the shorthand is never swallowed.
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config-dir": true,
		"--data-dir":   true,
		"--catalog":    true,
		"--party":      true,
		"--format":     true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewrite := func(at, name int) []string {
		party, _ := partyShorthand(argv[name])
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:at]...)
		out = append(out, "--party", party)
		if at != name {
			out = append(out, argv[at:name]...)
		}
		return append(out, argv[name+1:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// Flags after -- are positional, so the party flag goes in front of it.
			if i+1 < len(argv) {
				if _, ok := partyShorthand(argv[i+1]); ok {
					return rewrite(i, i+1)
				}
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if _, ok := partyShorthand(a); ok {
			return rewrite(i, i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewritePartyShorthandArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
