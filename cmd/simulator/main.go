package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	pkgGrpc "github.com/vogiaan1904/branchqueue/pkg/grpc"
	pkgLog "github.com/vogiaan1904/branchqueue/pkg/logger"
)

func main() {
	flagSet := pflag.NewFlagSet("simulator", pflag.ContinueOnError)

	addr := flagSet.String("addr", "localhost:50056", "branch queue gRPC address")
	logLevel := flagSet.String("log-level", "info", "log level")
	var cfg Config
	flagSet.StringSliceVar(&cfg.Departments, "departments", nil, "department ids to issue tickets for (default: all)")
	flagSet.IntVar(&cfg.Counters, "counters", 3, "number of attendant counters")
	flagSet.DurationVar(&cfg.ArrivalInterval, "arrival-interval", 2*time.Second, "time between kiosk arrivals")
	flagSet.Float64Var(&cfg.PriorityRatio, "priority-ratio", 0.2, "share of priority tickets (0.0-1.0)")
	flagSet.Float64Var(&cfg.RecallRatio, "recall-ratio", 0.1, "share of called tickets that get recalled (0.0-1.0)")
	flagSet.DurationVar(&cfg.ServiceTime, "service-time", 8*time.Second, "time a counter spends per customer")
	flagSet.DurationVar(&cfg.IdleBackoff, "idle-backoff", time.Second, "wait before an idle counter calls again")
	flagSet.DurationVar(&cfg.Duration, "duration", 0, "stop after this long (0 runs until interrupted)")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.Counters < 1 || cfg.ArrivalInterval <= 0 {
		fmt.Fprintln(os.Stderr, "--counters must be >= 1 and --arrival-interval > 0")
		os.Exit(2)
	}

	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{
		Level:    *logLevel,
		Mode:     "development",
		Encoding: "console",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli, closeCli, err := pkgGrpc.NewQueueClient(*addr)
	if err != nil {
		l.Fatalf(ctx, "Failed to connect to %s: %v", *addr, err)
	}
	defer closeCli()

	sim := NewSimulator(cli, cfg, l)
	if err := sim.Run(ctx); err != nil {
		l.Errorf(ctx, "Simulation failed: %v", err)
	}

	st := sim.Stats()
	l.Info(ctx, "Simulation finished",
		"issued", st.Issued.Load(),
		"called", st.Called.Load(),
		"recalled", st.Recalled.Load(),
		"finished", st.Finished.Load(),
	)
}
