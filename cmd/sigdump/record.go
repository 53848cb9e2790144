package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe"
	"github.com/hupe1980/signalsafe/file"
	"github.com/hupe1980/signalsafe/format"
	"github.com/hupe1980/signalsafe/internal/conv"
)

type recordFlags struct {
	out        string
	signals    []string
	rate       float64
	burst      int
	maxBytes   uint64
	maxMessage int
	text       bool
	heartbeat  time.Duration
}

func newRecordCmd() *cobra.Command {
	var flags recordFlags

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Write a dump record for each received signal until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecord(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "dump file to create (required)")
	cmd.Flags().StringSliceVarP(&flags.signals, "signal", "s", []string{"USR1"}, "signals to record (name or number)")
	cmd.Flags().Float64Var(&flags.rate, "rate", 0, "max dumps per second (0 = unlimited)")
	cmd.Flags().IntVar(&flags.burst, "burst", 0, "dumps allowed back to back (0 = derived from --rate)")
	cmd.Flags().Uint64Var(&flags.maxBytes, "max-bytes", 0, "max bytes of signal dumps (0 = unlimited)")
	cmd.Flags().IntVar(&flags.maxMessage, "max-message", signalsafe.DefaultMaxMessageSize, "message capacity in bytes")
	cmd.Flags().BoolVar(&flags.text, "text", false, "write text lines instead of binary records")
	cmd.Flags().DurationVar(&flags.heartbeat, "heartbeat", 0, "also write a heartbeat record at this interval")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runRecord(ctx context.Context, flags recordFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	sigs, err := parseSignals(flags.signals)
	if err != nil {
		return err
	}

	maxBytes, err := conv.Uint64ToInt64(flags.maxBytes)
	if err != nil {
		return fmt.Errorf("--max-bytes: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	encoding := signalsafe.Binary
	if flags.text {
		encoding = signalsafe.Text
	}

	var f file.File
	defer f.Destroy()

	if err := guard("create "+flags.out, func() { f.CreateAndOpen(flags.out, file.WriteOnly) }); err != nil {
		return err
	}

	metrics := &signalsafe.BasicMetricsCollector{}

	rec, err := signalsafe.NewRecorder(&f,
		signalsafe.WithLogLevel(level),
		signalsafe.WithMetricsCollector(metrics),
		signalsafe.WithSignals(sigs...),
		signalsafe.WithEncoding(encoding),
		signalsafe.WithRateLimit(flags.rate, flags.burst),
		signalsafe.WithMaxBytes(maxBytes),
		signalsafe.WithMaxMessageSize(flags.maxMessage),
	)
	if err != nil {
		return err
	}
	defer rec.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return rec.Run(gctx)
	})

	g.Go(func() error {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, unix.SIGTERM)
		defer signal.Stop(stop)

		select {
		case <-stop:
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if flags.heartbeat > 0 {
		g.Go(func() error {
			return heartbeat(gctx, rec, flags.heartbeat)
		})
	}

	err = g.Wait()

	stats := metrics.GetStats()
	fmt.Fprintf(os.Stderr, "dumps=%d bytes=%d dropped(rate)=%d dropped(budget)=%d\n",
		stats.DumpCount, stats.DumpBytes, stats.DropRateLimited, stats.DropBudget)

	return err
}

// heartbeat writes a record every interval until the recorder stops.
func heartbeat(ctx context.Context, rec *signalsafe.Recorder, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		// A tick may race with cancellation.
		if ctx.Err() != nil {
			return nil
		}

		if err := guard("heartbeat", func() {
			rec.Record(0, "heartbeat uptime=%ms", format.Int(time.Since(start).Milliseconds()))
		}); err != nil {
			return err
		}
	}
}

// parseSignals accepts "USR1", "SIGUSR1" or a signal number.
func parseSignals(names []string) ([]unix.Signal, error) {
	sigs := make([]unix.Signal, 0, len(names))

	for _, name := range names {
		if n, err := strconv.Atoi(name); err == nil {
			if n <= 0 {
				return nil, fmt.Errorf("invalid signal %q", name)
			}
			sigs = append(sigs, unix.Signal(n))
			continue
		}

		upper := strings.ToUpper(name)
		if !strings.HasPrefix(upper, "SIG") {
			upper = "SIG" + upper
		}

		sig := unix.SignalNum(upper)
		if sig == 0 {
			return nil, fmt.Errorf("unknown signal %q", name)
		}
		sigs = append(sigs, sig)
	}

	return sigs, nil
}
