package experiments

import (
	"context"

	"gamesearch/config"
	"gamesearch/experiments/metrics"
	"gamesearch/game/registry"
	"gamesearch/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// RunDepthSweep searches the initial position of gameName once per depth from 1
// to maxDepth with a fresh agent and records the search metrics of each run.
func RunDepthSweep(ctx context.Context, gameName string, base config.Agent, maxDepth int) ([]metrics.MoveRecord, error) {
	state, err := registry.New(gameName)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf("starting depth sweep on %s up to depth %d...", gameName, maxDepth)

	var records []metrics.MoveRecord
	for depth := 1; depth <= maxDepth; depth++ {
		cfg := base
		cfg.Kind = config.KindMinimax
		cfg.Depth = depth
		a, err := agent.NewMinimaxAgent(cfg)
		if err != nil {
			return nil, err
		}
		decision, err := a.PickAction(ctx, state.Copy(), false, true)
		if err != nil {
			return nil, errors.WithMessagef(err, "depth %d", depth)
		}
		records = append(records, metrics.MoveRecord{
			Game:  depth,
			Agent: a.Name(),
			MoveMetric: metrics.MoveMetric{
				Step:         1,
				Player:       state.Player(),
				Action:       decision.Action.Code,
				SearchMetric: decision.Metric,
			},
		})
		log.Info().
			Int("depth", depth).
			Int("nodes", decision.Metric.Nodes).
			Int("cache_hits", decision.Metric.CacheHits).
			Dur("duration", decision.Metric.Duration).
			Msg("searched")
	}
	return records, nil
}
