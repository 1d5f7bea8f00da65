package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gamesearch/meta"

	"github.com/adrg/xdg"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var cfgFile = "gamesearch/config.json"

const (
	KindMinimax = "minimax"
	KindRandom  = "random"
	KindRemote  = "remote"
)

// Agent holds an agent's tunables as plain data so it can be stored and
// reloaded independently of the agent.
type Agent struct {
	Name          string        `json:"name"`
	Kind          string        `json:"kind"`
	Depth         int           `json:"depth"`
	CacheCapacity int           `json:"cache_capacity"`
	DisableCache  bool          `json:"disable_cache,omitempty"`
	Seed          uint64        `json:"seed"`
	Goroutines    int           `json:"goroutines"`
	Tolerance     float64       `json:"tolerance,omitempty"`
	Epsilon       float64       `json:"epsilon,omitempty"`
	EpisodeLength int           `json:"episode_length"`
	TimeBudget    time.Duration `json:"time_budget,omitempty"`
	Debug         bool          `json:"debug,omitempty"`
	URL           string        `json:"url,omitempty"`
}

// Run describes what the command line driver plays.
type Run struct {
	Game   string `json:"game"`
	Games  int    `json:"games"`
	Seed   uint64 `json:"seed"`
	OutDir string `json:"out_dir,omitempty"`
}

type Config struct {
	Agents []Agent `json:"agents"`
	Run    Run     `json:"run"`
}

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

// DefaultAgent returns a minimax agent with the default depth.
func DefaultAgent(name string) Agent {
	return Agent{
		Name:          name,
		Kind:          KindMinimax,
		Depth:         meta.DefaultDepth,
		CacheCapacity: meta.DefaultCacheCapacity,
		Goroutines:    1,
		EpisodeLength: meta.DefaultEpisodeLength,
	}
}

func DefaultConfig() Config {
	return Config{
		Agents: []Agent{DefaultAgent("minimax-1"), DefaultAgent("minimax-2")},
		Run: Run{
			Game:  "tictactoe",
			Games: meta.DefaultGames,
		},
	}
}

// WithDefaults fills zero fields with defaults.
func (a Agent) WithDefaults() Agent {
	if a.Kind == "" {
		a.Kind = KindMinimax
	}
	if a.Depth == 0 {
		a.Depth = meta.DefaultDepth
	}
	if a.CacheCapacity == 0 {
		a.CacheCapacity = meta.DefaultCacheCapacity
	}
	if a.Goroutines == 0 {
		a.Goroutines = 1
	}
	if a.EpisodeLength == 0 {
		a.EpisodeLength = meta.DefaultEpisodeLength
	}
	return a
}

func (a Agent) Validate() error {
	var errs error
	switch a.Kind {
	case KindMinimax:
		if a.Depth <= 0 || a.Depth > meta.MaxDepthLimit {
			errs = multierror.Append(errs, &InvalidConfig{fmt.Sprintf("agent %q: depth %d not in [1, %d]", a.Name, a.Depth, meta.MaxDepthLimit)})
		}
	case KindRandom:
	case KindRemote:
		if a.URL == "" {
			errs = multierror.Append(errs, &InvalidConfig{fmt.Sprintf("agent %q: remote agent needs a url", a.Name)})
		}
	default:
		errs = multierror.Append(errs, &InvalidConfig{fmt.Sprintf("agent %q: unknown kind %q", a.Name, a.Kind)})
	}
	if a.CacheCapacity < 0 {
		errs = multierror.Append(errs, &InvalidConfig{fmt.Sprintf("agent %q: negative cache capacity", a.Name)})
	}
	if a.Goroutines < 1 {
		errs = multierror.Append(errs, &InvalidConfig{fmt.Sprintf("agent %q: need at least one goroutine", a.Name)})
	}
	if a.Tolerance < 0 {
		errs = multierror.Append(errs, &InvalidConfig{fmt.Sprintf("agent %q: negative tolerance", a.Name)})
	}
	if a.Epsilon < 0 || a.Epsilon > 1 {
		errs = multierror.Append(errs, &InvalidConfig{fmt.Sprintf("agent %q: epsilon %g not in [0, 1]", a.Name, a.Epsilon)})
	}
	if a.EpisodeLength == 0 || a.EpisodeLength < -1 {
		errs = multierror.Append(errs, &InvalidConfig{fmt.Sprintf("agent %q: episode length must be -1 or positive", a.Name)})
	}
	if a.TimeBudget < 0 {
		errs = multierror.Append(errs, &InvalidConfig{fmt.Sprintf("agent %q: negative time budget", a.Name)})
	}
	return errs
}

func (c *Config) Validate() error {
	var errs error
	if len(c.Agents) == 0 {
		errs = multierror.Append(errs, &InvalidConfig{"no agents configured"})
	}
	for _, a := range c.Agents {
		if err := a.Validate(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if c.Run.Game == "" {
		errs = multierror.Append(errs, &InvalidConfig{"no game configured"})
	}
	if c.Run.Games < 1 {
		errs = multierror.Append(errs, &InvalidConfig{fmt.Sprintf("games %d must be positive", c.Run.Games)})
	}
	return errs
}

// Load reads the config at path, or the user's config file when path is empty,
// on top of the defaults. A missing user config file is not an error.
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		found, err := xdg.SearchConfigFile(cfgFile)
		if err == nil {
			path = found
		}
	}
	if path != "" {
		if err := readCfgFile(path, &config); err != nil {
			return nil, err
		}
	}
	for i := range config.Agents {
		config.Agents[i] = config.Agents[i].WithDefaults()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save writes the config to path, or to the user's config file when path is
// empty.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = xdg.ConfigFile(cfgFile)
		if err != nil {
			return errors.WithStack(err)
		}
	}
	jsonData, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrapf(os.WriteFile(path, jsonData, 0664), "write config %s", path)
}

func readCfgFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	// Agents from the file replace the default agents as a whole.
	loaded := Config{Run: config.Run}
	if err := json.Unmarshal(data, &loaded); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	if loaded.Agents == nil {
		loaded.Agents = config.Agents
	}
	*config = loaded
	return nil
}
