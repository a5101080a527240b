package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/raoulx24/tempsweep/internal/job"
)

var (
	prefixStyle = color.New(color.FgHiCyan, color.Bold)
	okStyle     = color.New(color.FgHiGreen, color.Bold)
	warnStyle   = color.New(color.FgHiYellow, color.Bold)
	errorStyle  = color.New(color.FgHiRed, color.Bold)
	subtleStyle = color.New(color.FgHiBlack)
)

type runFlags struct {
	root    string
	daysAgo int
	dryRun  bool
}

func newRunCommand(flags *globalFlags) *cobra.Command {
	rf := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sweep once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, flags, rf)
		},
	}

	cmd.Flags().StringVar(&rf.root, "root", "", "directory to sweep (overrides sweep.root)")
	cmd.Flags().IntVar(&rf.daysAgo, "days-ago", 0, "delete files whose age in days exceeds this (overrides sweep.daysAgo)")
	cmd.Flags().BoolVar(&rf.dryRun, "dry-run", false, "report what would be deleted without deleting")
	return cmd
}

func runOnce(cmd *cobra.Command, flags *globalFlags, rf *runFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if rf.root != "" {
		cfg.Sweep.Root = rf.root
	}
	if rf.dryRun {
		cfg.Sweep.DryRun = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logg, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logg.Close()

	settings, err := job.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}

	req := job.NewRequest(job.ReasonManual)
	if cmd.Flags().Changed("days-ago") {
		if rf.daysAgo < 0 {
			return newExitError(2, fmt.Errorf("--days-ago must be >= 0, got %d", rf.daysAgo))
		}
		req = req.WithDaysAgo(rf.daysAgo)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := job.New(settings, logg, nil, nil).Run(ctx, req)
	printSummary(cmd.OutOrStdout(), res)

	if res.Outcome() == job.OutcomeError {
		return newExitError(1, res.Err)
	}
	return nil
}

func printSummary(out io.Writer, res job.Result) {
	style := okStyle
	switch res.Outcome() {
	case job.OutcomePartial, job.OutcomeCanceled:
		style = warnStyle
	case job.OutcomeError:
		style = errorStyle
	}

	verb := "deleted"
	if res.DryRun {
		verb = "would delete"
	}

	fmt.Fprintf(out, "%s %s %s\n", prefix(), style.Sprint(res.Outcome()), subtleStyle.Sprintf("(%s, run %s)", res.Duration().Round(time.Millisecond), res.RunID))
	fmt.Fprintf(out, "  root        %s\n", res.Root)
	fmt.Fprintf(out, "  scanned     %d\n", res.Scanned)
	fmt.Fprintf(out, "  eligible    %d (older than %d days)\n", res.Eligible, res.DaysAgo)
	fmt.Fprintf(out, "  %-11s %d\n", verb, res.Deleted)
	if res.Failed > 0 {
		fmt.Fprintf(out, "  failed      %s\n", errorStyle.Sprint(res.Failed))
	}
	fmt.Fprintf(out, "  dirs pruned %d\n", res.DirsPruned)
	if res.DirErrors > 0 {
		fmt.Fprintf(out, "  dir errors  %s\n", warnStyle.Sprint(res.DirErrors))
	}
}

func prefix() string {
	return prefixStyle.Sprint("[tempsweep]")
}
