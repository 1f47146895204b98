package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/NetPo4ki/go-syncx/internal/log"
	"github.com/NetPo4ki/go-syncx/observe/prom"
)

// rootArgs holds the persistent flags shared by every subcommand.
type rootArgs struct {
	logLevel    string
	logFormat   string
	dumpMetrics bool

	logger  *slog.Logger
	metrics *prom.Metrics
}

func newRootCmd() *cobra.Command {
	args := &rootArgs{}

	cmd := &cobra.Command{
		Use:          "syncdemo",
		Short:        "Exercise bounded channels and sync primitives",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := log.New(cmd.ErrOrStderr(), args.logLevel, args.logFormat)
			if err != nil {
				return err
			}
			args.logger = logger
			args.metrics = prom.New()
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if !args.dumpMetrics {
				return nil
			}
			return writeMetrics(cmd.OutOrStdout(), args.metrics)
		},
	}

	cmd.PersistentFlags().StringVar(&args.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&args.logFormat, "log-format", log.TextFormat, "log format (text, json)")
	cmd.PersistentFlags().BoolVar(&args.dumpMetrics, "metrics", false, "print Prometheus metrics after the run")

	cmd.AddCommand(
		newPipelineCmd(args),
		newBarrierCmd(args),
		newOnceCmd(args),
	)

	return cmd
}

func writeMetrics(w io.Writer, m *prom.Metrics) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(m); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
