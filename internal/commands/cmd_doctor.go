package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artisan/internal/artisan"
	"github.com/hay-kot/artisan/internal/core/doctor"
	"github.com/hay-kot/artisan/internal/core/styles"
	"github.com/hay-kot/artisan/pkg/iojson"
)

type DoctorCmd struct {
	flags   *Flags
	app     *artisan.App
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags, app *artisan.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "doctor",
		Usage:     "Check that artisan can drive the game window",
		UsageText: "artisan doctor [options]",
		Description: `Runs the preflight checks for a crafting run: configuration, the input
backend tools, the target window and the macros directory.

Exits non-zero when anything blocks crafting. A target window that is not
running counts as a blocker.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "automatically fix issues (e.g., create a missing macros directory)",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	report := cmd.app.Doctor.RunChecks(ctx, cmd.flags.ConfigPath, cmd.autofix)

	var err error
	if cmd.format == "json" {
		err = iojson.WriteWith(c.Root().Writer, errWriter(c), report)
	} else {
		cmd.printReport(errWriter(c), report)
	}
	if err != nil {
		return err
	}

	if !report.Ready {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) printReport(w io.Writer, report doctor.Report) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s  %s\n",
		styles.TextPrimaryBoldStyle.Render("Artisan Doctor"),
		styles.TextMutedStyle.Render(fmt.Sprintf("%s -> %s", report.Backend, report.Target)))
	_, _ = fmt.Fprintln(w, styles.TextMutedStyle.Render(strings.Repeat("─", 40)))

	for _, result := range report.Checks {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.TextForegroundBoldStyle.Render(result.Name))
		for _, item := range result.Items {
			line := "  " + statusIcon(item.Status) + " " + item.Label
			if item.Detail != "" {
				line += " " + styles.TextMutedStyle.Render(item.Detail)
			}
			_, _ = fmt.Fprintln(w, line)
		}
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		styles.TextSuccessStyle.Render(fmt.Sprintf("%d passed", report.Passed)),
		styles.TextWarningStyle.Render(fmt.Sprintf("%d warnings", report.Warned)),
		styles.TextErrorStyle.Render(fmt.Sprintf("%d failed", report.Failed)))
	_, _ = fmt.Fprintln(w)

	if report.Ready {
		_, _ = fmt.Fprintln(w, styles.TextSuccessStyle.Render(styles.IconPass+" ready to craft"))
	} else {
		_, _ = fmt.Fprintln(w, styles.TextErrorStyle.Render(
			fmt.Sprintf("%s not ready to craft, %d blocker(s):", styles.IconFail, len(report.Blockers))))
		for _, b := range report.Blockers {
			_, _ = fmt.Fprintln(w, "  - "+b)
		}
	}

	if !cmd.autofix && report.Fixable > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.TextMutedStyle.Render(
			fmt.Sprintf("Run 'artisan doctor --autofix' to fix %d issue(s)", report.Fixable)))
	}
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusPass:
		return styles.TextSuccessStyle.Render(styles.IconPass)
	case doctor.StatusWarn:
		return styles.TextWarningStyle.Render(styles.IconWarn)
	default:
		return styles.TextErrorStyle.Render(styles.IconFail)
	}
}
