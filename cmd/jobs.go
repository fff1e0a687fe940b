package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vibast-solutions/ms-go-school-fees/app/entity"
	"github.com/vibast-solutions/ms-go-school-fees/app/polling"
	"github.com/vibast-solutions/ms-go-school-fees/app/provider"
	"github.com/vibast-solutions/ms-go-school-fees/app/service"
)

var (
	workerMode    bool
	snapshotFile  string
	watchInterval time.Duration
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Render the payment dashboard from a backend snapshot",
	RunE:  runPayments,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh the payment dashboard until nothing is pending",
	Long:  "Re-read the snapshot on every interval while any child owes money or any payment is pending or active, printing the dashboard after each successful read.",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(paymentsCmd)
	rootCmd.AddCommand(watchCmd)

	for _, c := range []*cobra.Command{paymentsCmd, watchCmd} {
		c.Flags().StringVar(&snapshotFile, "file", "", "Path to a backend snapshot JSON file")
		c.Flags().DurationVar(&watchInterval, "interval", 0, "Refresh interval (defaults to POLL_INTERVAL_SECONDS)")
		_ = c.MarkFlagRequired("file")
	}
	paymentsCmd.Flags().BoolVar(&workerMode, "worker", false, "Keep refreshing until nothing is pending, like watch")
}

func runPayments(cmd *cobra.Command, _ []string) error {
	if workerMode {
		return pollDashboard(cmd, "payments_dashboard")
	}

	_, portal := mustCreatePortalService()
	source := provider.NewFileProvider(snapshotFile)

	return runJob("payments_dashboard", func() error {
		snap, err := source.Fetch(context.Background())
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), portal.BuildDashboard(snap))
	})
}

func runWatch(cmd *cobra.Command, _ []string) error {
	return pollDashboard(cmd, "watch")
}

// pollDashboard prints the dashboard after every successful read and returns
// once nothing is left to poll for or a shutdown signal arrives.
func pollDashboard(cmd *cobra.Command, name string) error {
	cfg, portal := mustCreatePortalService()
	out := cmd.OutOrStdout()

	poller := polling.NewPoller(
		provider.NewFileProvider(snapshotFile),
		resolveInterval(cfg.Polling.Interval),
		polling.WithOnUpdate(func(snap *entity.Snapshot) {
			printDashboard(portal, out, snap)
		}),
	)

	ctx, cancel := shutdownContext(name)
	defer cancel()

	return runJob(name, func() error {
		err := poller.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
}

func printDashboard(portal *service.PortalService, out io.Writer, snap *entity.Snapshot) {
	if err := writeJSON(out, portal.BuildDashboard(snap)); err != nil {
		logrus.WithError(err).Warn("Failed to write dashboard")
	}
}

func resolveInterval(configured time.Duration) time.Duration {
	if watchInterval > 0 {
		return watchInterval
	}
	return configured
}

// shutdownContext is cancelled on SIGINT or SIGTERM.
func shutdownContext(name string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(quit)
		select {
		case <-quit:
			logrus.WithField("job", name).Info("Worker shutdown requested")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func runJob(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	latency := time.Since(start)
	if err != nil {
		logrus.WithError(err).WithField("job", name).WithField("latency", latency.String()).Error("job_failed")
		return err
	}
	logrus.WithField("job", name).WithField("latency", latency.String()).Info("job_completed")
	return nil
}
