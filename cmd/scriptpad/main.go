package main

import (
	"os"
	"strings"

	"scriptpad/internal/cli"
)

var subcommands = map[string]bool{
	"files":      true,
	"file":       true,
	"run":        true,
	"status":     true,
	"docs":       true,
	"help":       true,
	"completion": true,
}

func isScriptName(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasSuffix(s, ".js") && len(s) > len(".js") && !subcommands[s]
}

// rewriteDirectRunArgs makes `scriptpad <name>.js` work like `scriptpad run <name>.js`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
// before parsing. Persistent flags may come first (`scriptpad --dir x a.js`),
// so this finds the first positional token rather than argv[1].
func rewriteDirectRunArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":      true,
		"--format":   true,
		"--log-file": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isScriptName(argv[i+1]) {
				out := make([]string, 0, len(argv)+1)
				out = append(out, argv[:i+1]...)
				out = append(out, "run")
				out = append(out, argv[i+1:]...)
				return out
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			switch {
			case strings.Contains(a, "="), boolFlags[a]:
			case valueFlags[a]:
				i++
			}
			continue
		}

		if isScriptName(a) {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "run")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectRunArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
