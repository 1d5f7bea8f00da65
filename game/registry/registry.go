// Package registry maps game names to constructors so drivers can pick a game
// by name.
package registry

import (
	"sort"

	"gamesearch/game"
	"gamesearch/game/nim"
	"gamesearch/game/sim"
	"gamesearch/game/tictactoe"

	"github.com/pkg/errors"
)

// ErrUnknownGame is returned for names that are not registered.
var ErrUnknownGame = errors.New("unknown game")

type entry struct {
	create func() game.State
	parse  func(string) (game.State, error)
}

var games = map[string]entry{
	"tictactoe": {
		create: func() game.State { return tictactoe.New() },
		parse: func(s string) (game.State, error) {
			st, err := tictactoe.Parse(s)
			if err != nil {
				return nil, err
			}
			return st, nil
		},
	},
	"nim":  {create: func() game.State { return nim.New(2, 10, 3) }},
	"nim3": {create: func() game.State { return nim.New(3, 10, 3) }},
	"sim":  {create: func() game.State { return sim.New(2) }},
	"sim3": {create: func() game.State { return sim.New(3) }},
}

// New returns the initial state of the named game.
func New(name string) (game.State, error) {
	e, ok := games[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownGame, "%q", name)
	}
	return e.create(), nil
}

// Parse decodes a textual position of the named game. An empty position yields
// the initial state.
func Parse(name, position string) (game.State, error) {
	e, ok := games[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownGame, "%q", name)
	}
	if position == "" {
		return e.create(), nil
	}
	if e.parse == nil {
		return nil, errors.Errorf("game %q cannot parse positions", name)
	}
	return e.parse(position)
}

// Names lists the registered games in order.
func Names() []string {
	names := make([]string, 0, len(games))
	for name := range games {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
