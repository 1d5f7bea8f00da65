package agent

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamesearch/config"
	"gamesearch/game"
	"gamesearch/game/nim"
	"gamesearch/game/tictactoe"
	"gamesearch/searcher"

	"github.com/stretchr/testify/require"
)

func minimaxConfig(depth int) config.Agent {
	return config.Agent{Name: "minimax", Kind: config.KindMinimax, Depth: depth, Seed: 1}
}

func board(t *testing.T, b string) *tictactoe.State {
	t.Helper()
	s, err := tictactoe.Parse(b)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	t.Run("builds by kind", func(t *testing.T) {
		a, err := New(minimaxConfig(3), "tictactoe")
		require.NoError(t, err)
		require.IsType(t, &MinimaxAgent{}, a)

		a, err = New(config.Agent{Name: "r", Kind: config.KindRandom}, "tictactoe")
		require.NoError(t, err)
		require.IsType(t, &RandomAgent{}, a)

		a, err = New(config.Agent{Name: "far", Kind: config.KindRemote, URL: "http://localhost:1"}, "tictactoe")
		require.NoError(t, err)
		require.IsType(t, &RemoteAgent{}, a)
	})

	t.Run("rejects invalid configs", func(t *testing.T) {
		_, err := New(config.Agent{Name: "deep", Depth: 1000}, "tictactoe")
		require.ErrorIs(t, err, searcher.ErrConfiguration)
		_, err = New(config.Agent{Name: "far", Kind: config.KindRemote}, "tictactoe")
		require.ErrorIs(t, err, searcher.ErrConfiguration, "Should need a url")
	})
}

func TestMinimaxAgent(t *testing.T) {
	t.Run("picks the winning move", func(t *testing.T) {
		a, err := NewMinimaxAgent(minimaxConfig(3))
		require.NoError(t, err)
		d, err := a.PickAction(context.Background(), board(t, "XX-OO----"), false, true)
		require.NoError(t, err)
		require.Equal(t, 2, d.Action.Code)
		require.False(t, d.Action.Random)
		require.True(t, d.Metric.Complete, "Should collect search metrics")
	})

	t.Run("uses score tuples for more than two players", func(t *testing.T) {
		a, err := NewMinimaxAgent(minimaxConfig(3))
		require.NoError(t, err)
		d, err := a.PickAction(context.Background(), nim.New(3, 3, 3), false, true)
		require.NoError(t, err)
		require.Equal(t, 3, d.Action.Code)
		require.Len(t, d.Tuple, 3)
	})

	t.Run("explores only when allowed", func(t *testing.T) {
		cfg := minimaxConfig(3)
		cfg.Epsilon = 1
		a, err := NewMinimaxAgent(cfg)
		require.NoError(t, err)
		s := board(t, "XX-OO----")

		d, err := a.PickAction(context.Background(), s, true, true)
		require.NoError(t, err)
		require.True(t, d.Action.Random, "Should mark exploratory moves")
		require.True(t, game.Contains(s, d.Action))

		d, err = a.PickAction(context.Background(), s, false, true)
		require.NoError(t, err)
		require.False(t, d.Action.Random)
		require.Equal(t, 2, d.Action.Code)
	})

	t.Run("scores positions", func(t *testing.T) {
		a, err := NewMinimaxAgent(minimaxConfig(2))
		require.NoError(t, err)
		v, err := a.Score(board(t, "XX-OO----"))
		require.NoError(t, err)
		require.Equal(t, 1.0, v)
		tuple, err := a.ScoreTuple(board(t, "XX-OO----"))
		require.NoError(t, err)
		require.Equal(t, game.ScoreTuple{1, -1}, tuple)
	})

	t.Run("training plays full episodes", func(t *testing.T) {
		a, err := NewMinimaxAgent(minimaxConfig(2))
		require.NoError(t, err)
		changed, err := a.Train(tictactoe.New())
		require.NoError(t, err)
		require.False(t, changed, "Should have nothing to learn")
		require.Equal(t, 1, a.GameNum())
		require.GreaterOrEqual(t, a.TrainMoves(), int64(5))

		a.Reset()
		require.Zero(t, a.GameNum())
		require.Zero(t, a.Searcher().CacheLen())
	})

	t.Run("finished games are an error", func(t *testing.T) {
		a, err := NewMinimaxAgent(minimaxConfig(2))
		require.NoError(t, err)
		_, err = a.PickAction(context.Background(), board(t, "XXXOO----"), false, true)
		require.ErrorIs(t, err, searcher.ErrContractViolation)
	})
}

func TestRandomAgent(t *testing.T) {
	a := NewRandomAgent(config.Agent{Name: "r", Seed: 5})
	s := tictactoe.New()
	for i := 0; i < 20; i++ {
		d, err := a.PickAction(context.Background(), s, false, true)
		require.NoError(t, err)
		require.True(t, game.Contains(s, d.Action))
	}
	_, err := a.Train(tictactoe.New())
	require.NoError(t, err)
}

func TestHandler(t *testing.T) {
	a, err := NewMinimaxAgent(minimaxConfig(3))
	require.NoError(t, err)
	server := httptest.NewServer(Handler(a))
	defer server.Close()

	post := func(body string) *http.Response {
		resp, err := http.Post(server.URL+"/pickaction", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	t.Run("bad requests", func(t *testing.T) {
		require.Equal(t, http.StatusBadRequest, post(`{`).StatusCode)
		require.Equal(t, http.StatusBadRequest, post(`{"game":"chess","state":""}`).StatusCode)
		require.Equal(t, http.StatusBadRequest, post(`{"game":"tictactoe","state":"XXX"}`).StatusCode)

		resp, err := http.Get(server.URL + "/pickaction")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("finished games are unprocessable", func(t *testing.T) {
		require.Equal(t, http.StatusUnprocessableEntity, post(`{"game":"tictactoe","state":"XXXOO----"}`).StatusCode)
	})

	t.Run("remote agent round trip", func(t *testing.T) {
		remote := NewRemoteAgent(config.Agent{Name: "far", URL: server.URL + "/"}, "tictactoe")
		d, err := remote.PickAction(context.Background(), board(t, "XX-OO----"), false, true)
		require.NoError(t, err)
		require.Equal(t, 2, d.Action.Code)
		require.Len(t, d.Values, len(d.Actions)+1)
		require.Equal(t, 1.0, d.Best)
		require.True(t, d.Complete)

		_, err = remote.PickAction(context.Background(), board(t, "XXXOO----"), false, true)
		require.ErrorIs(t, err, searcher.ErrContractViolation)

		_, err = remote.Score(tictactoe.New())
		require.ErrorIs(t, err, ErrNotSupported)
	})
}
