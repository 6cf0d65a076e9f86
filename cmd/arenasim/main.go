package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"robotchallenge/internal/combat"
	"robotchallenge/internal/config"
	"robotchallenge/internal/feed"
	"robotchallenge/internal/strategy"
	"robotchallenge/internal/util"
)

type options struct {
	cfgPath string
	out     string
	seed    int64
	n       int
	workers int
	saveLog bool
	watch   string
	delay   time.Duration
	verbose bool
}

func main() {
	// A missing .env is fine; the flags below still have defaults.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "arenasim: reading .env:", err)
	}

	var o options
	flag.StringVar(&o.cfgPath, "config", util.GetEnvDefault("ARENA_CONFIG", ""), "arena YAML (empty = built-in seven-tank arena)")
	flag.StringVar(&o.out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.Int64Var(&o.seed, "seed", util.GetEnvInt64("ARENA_SEED", 0), "seed (0 = config seed, else 12345)")
	flag.IntVar(&o.n, "n", 1, "number of matches")
	flag.IntVar(&o.workers, "workers", runtime.NumCPU(), "parallel matches in batch mode")
	flag.BoolVar(&o.saveLog, "log", true, "save full event log when n==1")
	flag.StringVar(&o.watch, "watch", util.GetEnvDefault("ARENA_WATCH", ""), "serve a live spectator feed on this address (n==1 only)")
	flag.DurationVar(&o.delay, "delay", util.GetEnvDuration("ARENA_DELAY", 100*time.Millisecond), "pause between steps while watching")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := newLogger(level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o, logger); err != nil {
		logger.Error("arenasim failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(level slog.Level) *slog.Logger {
	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "arenasim",
		Level:           log.Level(level),
	})
	return slog.New(handler)
}

func run(ctx context.Context, o options, logger *slog.Logger) error {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return err
	}
	seed := o.seed
	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = 12345
	}

	if o.n <= 1 {
		res, err := runSingle(ctx, cfg, seed, o, logger)
		if err != nil {
			return err
		}
		if err := os.WriteFile(o.out, combat.MarshalPretty(res), 0644); err != nil {
			return err
		}
		winner := "none"
		if res.Outcome.Winner != nil {
			winner = res.Outcome.Winner.Name
		}
		logger.InfoContext(ctx, "single match written",
			"reason", res.Outcome.Reason,
			"winner", winner,
			"rounds", res.Rounds,
			"out", o.out,
		)
		return nil
	}

	if o.watch != "" {
		logger.WarnContext(ctx, "spectator feed ignored in batch mode", "matches", o.n)
	}
	sum, err := runBatch(ctx, cfg, seed, o, logger)
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.out, combat.MarshalPretty(sum), 0644); err != nil {
		return err
	}
	logger.InfoContext(ctx, "batch written", "matches", sum.Matches, "draws", sum.Draws, "halts", sum.Halts, "out", o.out)
	return nil
}

func runSingle(ctx context.Context, cfg *config.ArenaConfig, seed int64, o options, logger *slog.Logger) (combat.MatchResult, error) {
	rng := util.New(seed)
	board, err := strategy.NewBoard(cfg, rng, logger)
	if err != nil {
		return combat.MatchResult{}, err
	}
	env := &combat.Env{Seed: seed, Rng: rng, Logger: logger}

	if o.watch == "" {
		return combat.RunMatch(ctx, env, board, o.saveLog)
	}

	hub := feed.NewHub(logger, 64)
	serveCtx, stopServe := context.WithCancel(ctx)
	defer stopServe()

	var res combat.MatchResult
	g, gctx := errgroup.WithContext(serveCtx)
	g.Go(func() error {
		return hub.ListenAndServe(gctx, o.watch, func(a net.Addr) {
			logger.InfoContext(ctx, "spectator feed listening", "url", "ws://"+a.String()+"/ws")
		})
	})
	g.Go(func() error {
		defer stopServe()
		var err error
		res, err = combat.RunMatch(gctx, env, board, o.saveLog, combat.WithObserver(hub.Observer(gctx, o.delay)))
		return err
	})
	if err := g.Wait(); err != nil {
		return combat.MatchResult{}, err
	}
	return res, nil
}
