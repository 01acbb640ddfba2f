package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"deskfolio/internal/cli"
	"deskfolio/internal/tui"
)

func rewriteLauncherArgs(argv []string) []string {
	// Convenience: `deskfolio <launcher-id>` works like `deskfolio open <launcher-id>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	//
	// Users often pass persistent flags first (e.g. `deskfolio --catalog ... projects`),
	// so we must find the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	// Minimal persistent-flag awareness. If we see flags we don't recognize, we skip them
	// (and do NOT try to skip their value) to avoid accidentally consuming the launcher id.
	valueFlags := map[string]bool{
		"--config-dir": true,
		"--catalog":    true,
		"--format":     true,
		"--log-file":   true,
		"--log-level":  true,
		"--sidebar":    true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
		"--watch":  true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "open")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// Stop flag parsing; next token (if any) is the first positional.
			if i+1 < len(argv) && tui.IsLauncher(strings.TrimSpace(argv[i+1])) {
				return rewrite(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			// --flag=value form
			if strings.Contains(a, "=") {
				continue
			}
			if boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
				continue
			}
			continue
		}

		// First positional token.
		if tui.IsLauncher(a) {
			return rewrite(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteLauncherArgs(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
