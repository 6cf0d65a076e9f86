package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"robotchallenge/internal/combat"
	"robotchallenge/internal/config"
	"robotchallenge/internal/strategy"
	"robotchallenge/internal/util"
)

type strategyStats struct {
	Name    string  `json:"name"`
	Author  string  `json:"author"`
	Entries int     `json:"entries"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
	Hits    int     `json:"hits"`
	Frags   int     `json:"frags"`
	Shots   int     `json:"shots"`
	Deaths  int     `json:"deaths"`
}

type summary struct {
	Matches   int             `json:"matches"`
	Seed      int64           `json:"seed"`
	Draws     int             `json:"draws"`
	Halts     int             `json:"halts"`
	AvgRounds float64         `json:"avg_rounds"`
	TotalHits int             `json:"total_hits"`
	TotalFrag int             `json:"total_frags"`
	ByName    []strategyStats `json:"by_strategy"`
}

type tally struct {
	mu     sync.Mutex
	rounds int
	draws  int
	halts  int
	hits   int
	frags  int
	byName map[string]*strategyStats
}

func (t *tally) add(res combat.MatchResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rounds += res.Rounds
	switch res.Outcome.Reason {
	case combat.ReasonNoSurvivors:
		t.draws++
	case combat.ReasonRoundLimit:
		t.halts++
	}
	for _, v := range res.Standings {
		st, ok := t.byName[v.Name]
		if !ok {
			st = &strategyStats{Name: v.Name, Author: v.Author}
			t.byName[v.Name] = st
		}
		st.Entries++
		st.Hits += v.Hits
		st.Frags += v.Frags
		st.Shots += v.Shots
		if !v.Alive {
			st.Deaths++
		}
		t.hits += v.Hits
		t.frags += v.Frags
	}
	if w := res.Outcome.Winner; w != nil {
		t.byName[w.Name].Wins++
	}
}

// runBatch plays o.n matches with at most o.workers in flight. Match i is
// seeded from util.Derive(seed, i), so the summary does not depend on the
// worker count.
func runBatch(ctx context.Context, cfg *config.ArenaConfig, seed int64, o options, logger *slog.Logger) (summary, error) {
	matchLogger := logger
	if !o.verbose {
		matchLogger = newLogger(slog.LevelWarn)
	}
	workers := o.workers
	if workers <= 0 {
		workers = 1
	}

	t := &tally{byName: map[string]*strategyStats{}}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < o.n; i++ {
		g.Go(func() error {
			matchSeed := util.Derive(seed, i)
			rng := util.New(matchSeed)
			board, err := strategy.NewBoard(cfg, rng, matchLogger)
			if err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}
			env := &combat.Env{Seed: matchSeed, Rng: rng, Logger: matchLogger.With("index", i)}
			res, err := combat.RunMatch(gctx, env, board, false)
			if err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}
			t.add(res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary{}, err
	}

	sum := summary{
		Matches:   o.n,
		Seed:      seed,
		Draws:     t.draws,
		Halts:     t.halts,
		AvgRounds: float64(t.rounds) / float64(o.n),
		TotalHits: t.hits,
		TotalFrag: t.frags,
	}
	for _, st := range t.byName {
		if st.Entries > 0 {
			st.WinRate = float64(st.Wins) / float64(st.Entries)
		}
		sum.ByName = append(sum.ByName, *st)
	}
	sort.Slice(sum.ByName, func(i, j int) bool {
		if sum.ByName[i].Wins != sum.ByName[j].Wins {
			return sum.ByName[i].Wins > sum.ByName[j].Wins
		}
		return sum.ByName[i].Name < sum.ByName[j].Name
	})
	logger.InfoContext(ctx, "batch finished", "matches", o.n, "workers", workers, "strategies", len(sum.ByName))
	return sum, nil
}
