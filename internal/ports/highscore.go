package ports

import (
	"context"
	"time"
)

// TaskRecord is one persisted objective line of a finished game.
type TaskRecord struct {
	DisplayName string `json:"display_name"`
	Player      string `json:"player"`
	Difficulty  int    `json:"difficulty"`
}

// HighScore is a persisted record of a successfully finished game.
type HighScore struct {
	Players     []string     `json:"players"`
	Tasks       []TaskRecord `json:"tasks"`
	Difficulty  int          `json:"difficulty"`
	RestartUsed bool         `json:"restart_used"`
	CreatedAt   time.Time    `json:"created_at"`
}

// HighScorePort persists and lists finished game records.
type HighScorePort interface {
	// Add stores a finished game record.
	Add(ctx context.Context, score HighScore) error

	// List returns stored records, highest difficulty first.
	List(ctx context.Context, limit int) ([]HighScore, error)
}
