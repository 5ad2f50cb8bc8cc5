package main

import (
	"fmt"
	"io"
	"strings"

	"ytdl/internal/config"
	"ytdl/internal/services"
)

// resolveOutputDir prefers the --outdir flag over paths.output_dir.
func resolveOutputDir(flagValue string, cfg *config.Config) (string, error) {
	dir := strings.TrimSpace(flagValue)
	if dir == "" {
		return cfg.Paths.OutputDir, nil
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "", "resolve output directory", dir, err)
	}
	return expanded, nil
}

// printCommandLine writes argv to w the way a shell user would type it.
func printCommandLine(w io.Writer, argv []string) {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	fmt.Fprintln(w, "$ "+strings.Join(quoted, " "))
}

func shellQuote(arg string) string {
	if arg == "" {
		return "''"
	}
	safe := true
	for _, r := range arg {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./:=@%+,", r)) {
			safe = false
			break
		}
	}
	if safe {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'"'"'`) + "'"
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
