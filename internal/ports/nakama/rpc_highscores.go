package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"thecrew/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// ListHighScoresResponse wraps the stored records for the client.
type ListHighScoresResponse struct {
	Scores []ports.HighScore `json:"scores"`
}

type listHighScoresRequest struct {
	Limit int `json:"limit"`
}

func rpcListHighScores(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req listHighScoresRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
		}
	}

	adapter := NewNakamaHighScoreAdapter(nk)
	scores, err := adapter.List(ctx, req.Limit)
	if err != nil {
		logger.Error("ListHighScores: %v", err)
		return "", runtime.NewError("internal error", 13) // INTERNAL
	}

	b, err := json.Marshal(ListHighScoresResponse{Scores: scores})
	if err != nil {
		return "", runtime.NewError("internal error", 13)
	}
	return string(b), nil
}
