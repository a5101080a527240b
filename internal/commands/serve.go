package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/raoulx24/tempsweep/internal/job"
	"github.com/raoulx24/tempsweep/internal/metrics"
	"github.com/raoulx24/tempsweep/internal/service"
	"github.com/raoulx24/tempsweep/internal/status"
)

const stopTimeout = 30 * time.Second

func newServeCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the sweeper as a long-lived service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), flags)
		},
	}
}

func serve(parent context.Context, flags *globalFlags) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := loadConfig(flags)
	if err != nil {
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

	m := metrics.New()
	sweep := job.New(settings, logg, nil, m)
	svc := service.New(service.Options{
		Name:       cfg.Service.Name,
		Interval:   cfg.Schedule.Interval,
		RunOnStart: cfg.Schedule.RunOnStart,
	}, sweep, logg)

	logg.Info("configuration loaded",
		"service", cfg.Service.DisplayName,
		"description", cfg.Service.Description,
		"root", settings.Root,
		"pattern", settings.Pattern,
		"daysAgo", settings.Policy.DaysAgo,
		"interval", cfg.Schedule.Interval,
	)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			logg.Info("shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Immediate run on SIGHUP
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGHUP)
		defer signal.Stop(sigCh)
		for {
			select {
			case <-sigCh:
				logg.Info("run requested by signal")
				svc.RunNow(job.NewRequest(job.ReasonSignal))
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := svc.Start(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Status.Listen != "" {
		srv := status.New(cfg.Status.Listen, svc, m.Handler(), logg)
		g.Go(func() error { return srv.ListenAndServe(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
		defer stopCancel()
		return svc.Stop(stopCtx)
	})

	err = g.Wait()
	logg.Info("exit complete")
	return err
}
