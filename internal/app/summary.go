package app

import (
	"time"

	"thecrew/internal/domain"
)

// TaskResult is one objective line in a finished game's record.
type TaskResult struct {
	DisplayName string `json:"display_name"`
	Player      string `json:"player"`
	Difficulty  int    `json:"difficulty"`
}

// GameSummary captures the outcome of a finished game for the high score table.
type GameSummary struct {
	Players     []string     `json:"players"`
	Tasks       []TaskResult `json:"tasks"`
	Difficulty  int          `json:"difficulty"`
	RestartUsed bool         `json:"restart_used"`
	Succeeded   bool         `json:"succeeded"`
	CreatedAt   time.Time    `json:"created_at"`
}

// BuildSummary assembles the record for a finished game. Players appear in
// seating order by display name; total difficulty sums the expansion
// objectives the crew carried.
func BuildSummary(game *domain.Game) GameSummary {
	players := make([]string, 0, len(game.PlayerOrder))
	for _, id := range game.PlayerOrder {
		name := ""
		if pl, ok := game.Players[id]; ok {
			name = pl.DisplayName
		}
		players = append(players, name)
	}

	var results []TaskResult
	total := 0
	for _, task := range game.ExpansionTasks {
		owner := ""
		if pl, ok := game.Players[task.Owner]; ok {
			owner = pl.DisplayName
		}
		results = append(results, TaskResult{
			DisplayName: task.DisplayName,
			Player:      owner,
			Difficulty:  task.Difficulty,
		})
		total += task.Difficulty
	}

	return GameSummary{
		Players:     players,
		Tasks:       results,
		Difficulty:  total,
		RestartUsed: game.RestartUsed,
		Succeeded:   game.GameSucceeded,
		CreatedAt:   time.Now().UTC(),
	}
}
