package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"gamesearch/config"
	"gamesearch/game"
	"gamesearch/searcher"

	"github.com/pkg/errors"
)

// ErrNotSupported is returned for operations a remote agent cannot perform.
var ErrNotSupported = errors.New("not supported by remote agent")

// RemoteAgent asks an agent server for its moves. Positions are sent in their
// String form, so only games the server can parse are playable.
type RemoteAgent struct {
	cfg    config.Agent
	url    string
	game   string
	client *http.Client
}

// NewRemoteAgent returns an agent backed by the server at cfg.URL playing
// gameName.
func NewRemoteAgent(cfg config.Agent, gameName string) *RemoteAgent {
	cfg = cfg.WithDefaults()
	cfg.Kind = config.KindRemote
	return &RemoteAgent{
		cfg:    cfg,
		url:    strings.TrimRight(cfg.URL, "/"),
		game:   gameName,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *RemoteAgent) Name() string         { return a.cfg.Name }
func (a *RemoteAgent) Config() config.Agent { return a.cfg }
func (a *RemoteAgent) Reset()               {}

func (a *RemoteAgent) PickAction(ctx context.Context, state game.State, _, _ bool) (searcher.Decision, error) {
	position, ok := state.(fmt.Stringer)
	if !ok {
		return searcher.Decision{}, errors.Wrapf(ErrNotSupported, "state %s has no textual form", state.Key())
	}
	body, err := json.Marshal(PickRequest{Game: a.game, State: position.String()})
	if err != nil {
		return searcher.Decision{}, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/pickaction", bytes.NewReader(body))
	if err != nil {
		return searcher.Decision{}, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return searcher.Decision{}, errors.Wrapf(err, "agent %s", a.cfg.Name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		err := errors.Errorf("agent %s returned status %d: %s", a.cfg.Name, resp.StatusCode, bytes.TrimSpace(out))
		if resp.StatusCode == http.StatusUnprocessableEntity {
			err = errors.Wrap(searcher.ErrContractViolation, err.Error())
		}
		return searcher.Decision{}, err
	}

	var pick PickResponse
	if err := json.NewDecoder(resp.Body).Decode(&pick); err != nil {
		return searcher.Decision{}, errors.Wrapf(err, "decode answer of agent %s", a.cfg.Name)
	}
	return pick.decision(), nil
}

func (r PickResponse) decision() searcher.Decision {
	d := searcher.Decision{
		Action:   game.Action{Code: r.Action, Random: r.Random},
		Actions:  make([]game.Action, len(r.Actions)),
		Values:   make([]float64, len(r.Values)),
		Best:     r.Best,
		Complete: r.Complete,
	}
	for i, code := range r.Actions {
		d.Actions[i] = game.NewAction(code)
	}
	for i, v := range r.Values {
		if v == nil {
			d.Values[i] = math.NaN()
		} else {
			d.Values[i] = *v
		}
	}
	return d
}

func (a *RemoteAgent) Score(game.State) (float64, error) {
	return 0, errors.Wrap(ErrNotSupported, "score")
}

func (a *RemoteAgent) ScoreTuple(game.State) (game.ScoreTuple, error) {
	return nil, errors.Wrap(ErrNotSupported, "score tuple")
}

// Train plays one self-play episode through the server.
func (a *RemoteAgent) Train(state game.State) (bool, error) {
	_, err := playEpisode(a, state, a.cfg.EpisodeLength)
	return false, err
}
