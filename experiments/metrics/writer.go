package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gamesearch/config"
)

type GameRecord struct {
	ID     int
	Agents []string // agent names by seat
	GameMetric
}

type MoveRecord struct {
	Game  int // GameRecord.ID
	Agent string
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <baseDir>/<name>/<timestamp> and writes there.
func NewWriter(baseDir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	dir := filepath.Join(baseDir, name, timestamp)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: dir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) writeCSV(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []config.Agent) error {
	header := []string{"name", "kind", "depth", "cache_capacity", "disable_cache", "seed", "goroutines", "tolerance", "epsilon", "time_budget"}
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			c.Name,
			c.Kind,
			strconv.Itoa(c.Depth),
			strconv.Itoa(c.CacheCapacity),
			strconv.FormatBool(c.DisableCache),
			strconv.FormatUint(c.Seed, 10),
			strconv.Itoa(c.Goroutines),
			strconv.FormatFloat(c.Tolerance, 'g', -1, 64),
			strconv.FormatFloat(c.Epsilon, 'g', -1, 64),
			c.TimeBudget.String(),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "uuid", "game", "agents", "starting_player", "winner", "scores", "moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		scores := make([]string, len(record.Scores))
		for i, s := range record.Scores {
			scores[i] = strconv.FormatFloat(s, 'g', -1, 64)
		}
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.GameMetric.ID,
			record.Game,
			strings.Join(record.Agents, ";"),
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Winner),
			strings.Join(scores, ";"),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.GameMetric.Duration.String(),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "agent", "action", "random", "duration", "depth", "nodes", "leaves", "terminals", "chance_nodes", "cache_hits", "cache_misses", "deepest_ply", "complete"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Agent,
			strconv.Itoa(record.Action),
			strconv.FormatBool(record.Random),
			record.SearchMetric.Duration.String(),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Leaves),
			strconv.Itoa(record.Terminals),
			strconv.Itoa(record.ChanceNodes),
			strconv.Itoa(record.CacheHits),
			strconv.Itoa(record.CacheMisses),
			strconv.Itoa(record.DeepestPly),
			strconv.FormatBool(record.SearchMetric.Complete),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}
