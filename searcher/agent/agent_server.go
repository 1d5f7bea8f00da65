package agent

import (
	"encoding/json"
	"math"
	"net/http"
	"sync"

	"gamesearch/game/registry"
	"gamesearch/searcher"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// PickRequest is the body of POST /pickaction.
type PickRequest struct {
	Game  string `json:"game"`
	State string `json:"state"`
}

type PickResponse struct {
	Action   int        `json:"action"`
	Random   bool       `json:"random"`
	Actions  []int      `json:"actions"`
	Values   []*float64 `json:"values"` // null for actions cut off by the time budget
	Best     float64    `json:"best"`
	Complete bool       `json:"complete"`
}

// Handler serves POST /pickaction: the agent picks an action for a position
// sent as {"game": "tictactoe", "state": "X---O----"}. Requests are served one
// at a time since agents are not safe for concurrent use.
func Handler(agent Agent) http.Handler {
	var mu sync.Mutex
	mux := http.NewServeMux()
	mux.HandleFunc("/pickaction", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		handlePickAction(agent, w, r)
	})
	return mux
}

// Serve starts an agent HTTP server on addr.
func Serve(addr string, agent Agent) error {
	log.Info().Str("addr", addr).Str("agent", agent.Name()).Msg("starting agent server")
	return http.ListenAndServe(addr, Handler(agent))
}

func handlePickAction(agent Agent, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req PickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	state, err := registry.Parse(req.Game, req.State)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	decision, err := agent.PickAction(r.Context(), state, false, true)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, searcher.ErrContractViolation) {
			status = http.StatusUnprocessableEntity
		}
		log.Error().Err(err).Str("game", req.Game).Str("state", req.State).Msg("pick action failed")
		http.Error(w, err.Error(), status)
		return
	}

	resp := PickResponse{
		Action:   decision.Action.Code,
		Random:   decision.Action.Random,
		Actions:  make([]int, len(decision.Actions)),
		Values:   make([]*float64, len(decision.Values)),
		Best:     decision.Best,
		Complete: decision.Complete,
	}
	for i, a := range decision.Actions {
		resp.Actions[i] = a.Code
	}
	for i := range decision.Values {
		if v := decision.Values[i]; !math.IsNaN(v) {
			resp.Values[i] = &v
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode action: "+err.Error(), http.StatusInternalServerError)
	}
}
