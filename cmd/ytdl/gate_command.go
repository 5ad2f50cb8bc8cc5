package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ytdl/internal/logging"
	"ytdl/internal/preflight"
	"ytdl/internal/services"
)

type gateReport struct {
	Passed bool               `json:"passed"`
	Checks []preflight.Result `json:"checks"`
}

func newGateCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Check that yt-dlp, ffmpeg and the output directory are usable (offline)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger, cfg, err := ctx.scope(cmd)
			if err != nil {
				return err
			}

			results := preflight.RunGate(runCtx, cfg)
			passed := preflight.Passed(results)

			if jsonOutput {
				if err := writeJSON(cmd, gateReport{Passed: passed, Checks: results}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for _, line := range gateLines(results, shouldColorize(out)) {
					fmt.Fprintln(out, line)
				}
			}

			if passed {
				logger.Debug("gate passed", logging.Int("checks", len(results)))
				return nil
			}
			return gateError(results)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit check results as JSON")
	return cmd
}

// gateError names every failed required check. A failed tool check is a
// missing dependency; a failed directory check is a validation problem.
func gateError(results []preflight.Result) error {
	failed := preflight.Failed(results)
	details := make([]string, 0, len(failed))
	marker := services.ErrValidation
	for _, r := range failed {
		details = append(details, fmt.Sprintf("%s (%s)", r.Name, r.Detail))
		if r.Name != preflight.OutputDirectoryCheck {
			marker = services.ErrMissingDependency
		}
	}
	return services.Wrap(marker, "gate", "", "failed: "+strings.Join(details, "; "), nil)
}
