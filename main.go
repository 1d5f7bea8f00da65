package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"gamesearch/config"
	"gamesearch/engine"
	"gamesearch/experiments"
	"gamesearch/game"
	"gamesearch/game/registry"
	"gamesearch/meta"
	"gamesearch/searcher/agent"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "config file (defaults to the user's gamesearch/config.json)")
	gameName := flag.String("game", "", "game to play: "+strings.Join(registry.Names(), ", "))
	depth := flag.Int("depth", 0, "search depth of every minimax agent")
	games := flag.Int("games", 0, "number of games to play")
	seed := flag.Uint64("seed", 0, "seed of every agent (0 for time based)")
	out := flag.String("out", "", "directory for experiment records")
	serve := flag.String("serve", "", "serve the first agent over HTTP on this address")
	sweep := flag.Int("sweep", 0, "search the initial position at depths 1..n")
	position := flag.String("position", "", "play one game from this position")
	verbose := flag.Bool("verbose", false, "log every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	applyFlags(cfg, *gameName, *depth, *games, *seed, *out)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *serve != "":
		a, err := agent.New(cfg.Agents[0], cfg.Run.Game)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create agent")
		}
		if err := agent.Serve(*serve, a); err != nil {
			log.Fatal().Err(err).Msg("agent server stopped")
		}
	case *sweep > 0:
		records, err := experiments.RunDepthSweep(ctx, cfg.Run.Game, cfg.Agents[0], *sweep)
		if err != nil {
			log.Fatal().Err(err).Msg("depth sweep failed")
		}
		dir, err := experiments.Store(cfg, "depth_sweep", &experiments.Result{Moves: records})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to store depth sweep")
		}
		log.Info().Str("dir", dir).Msg("stored depth sweep")
	case *position != "" || *verbose:
		playOne(ctx, cfg, *position, *verbose)
	default:
		result, err := experiments.RunMatch(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("match failed")
		}
		dir, err := experiments.Store(cfg, cfg.Run.Game, result)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to store match")
		}
		log.Info().Str("dir", dir).Msg("stored match")
	}
}

func applyFlags(cfg *config.Config, gameName string, depth, games int, seed uint64, out string) {
	if gameName != "" {
		cfg.Run.Game = gameName
	}
	if games > 0 {
		cfg.Run.Games = games
	}
	if out != "" {
		cfg.Run.OutDir = out
	}
	if cfg.Run.OutDir == "" {
		cfg.Run.OutDir = "results"
	}
	for i := range cfg.Agents {
		if depth > 0 {
			cfg.Agents[i].Depth = depth
		}
		if seed > 0 {
			cfg.Agents[i].Seed = seed + uint64(i)
		}
	}
}

// playOne plays a single game from position and prints the final board.
func playOne(ctx context.Context, cfg *config.Config, position string, verbose bool) {
	state, err := registry.Parse(cfg.Run.Game, position)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse position")
	}
	agents := make([]agent.Agent, 0, len(cfg.Agents))
	for _, c := range cfg.Agents {
		a, err := agent.New(c, cfg.Run.Game)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create agent")
		}
		agents = append(agents, a)
	}
	options := []engine.Option{engine.WithGameName(cfg.Run.Game), engine.WithMaxMoves(meta.MaxMoves)}
	if verbose {
		options = append(options, engine.Verbose())
	}
	e, err := engine.Local(agents, state, options...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up game")
	}
	outcome, err := e.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("game failed")
	}
	fmt.Println(render(termenv.NewOutput(os.Stdout), outcome.Final))
	fmt.Printf("scores %v, winner %d after %d moves\n", outcome.Scores, outcome.Winner, len(outcome.History))
}

type pretty interface {
	Pretty() string
}

// render colours the marks on boards that can print themselves, other states
// are shown in their plain textual form.
func render(output *termenv.Output, state game.State) string {
	p, ok := state.(pretty)
	if !ok {
		if s, ok := state.(fmt.Stringer); ok {
			return s.String()
		}
		return state.Key()
	}
	var b strings.Builder
	for _, r := range p.Pretty() {
		switch r {
		case 'X':
			b.WriteString(output.String("X").Foreground(output.Color("1")).Bold().String())
		case 'O':
			b.WriteString(output.String("O").Foreground(output.Color("4")).Bold().String())
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
