package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"thecrew/internal/ports"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

const highScoreCollection = "high_scores"

// NakamaHighScoreAdapter implements ports.HighScorePort on Nakama storage.
// Records are system-owned and publicly readable.
type NakamaHighScoreAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaHighScoreAdapter creates a new high score adapter.
func NewNakamaHighScoreAdapter(nk runtime.NakamaModule) *NakamaHighScoreAdapter {
	return &NakamaHighScoreAdapter{nk: nk}
}

// Add stores a finished game record under a fresh key.
func (a *NakamaHighScoreAdapter) Add(ctx context.Context, score ports.HighScore) error {
	value, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("failed to marshal high score: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      highScoreCollection,
			Key:             uuid.NewString(),
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write high score: %w", err)
	}
	return nil
}

// List returns stored records sorted by difficulty, highest first.
func (a *NakamaHighScoreAdapter) List(ctx context.Context, limit int) ([]ports.HighScore, error) {
	if limit <= 0 {
		limit = 100
	}

	objects, _, err := a.nk.StorageList(ctx, "", "", highScoreCollection, limit, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list high scores: %w", err)
	}

	scores := make([]ports.HighScore, 0, len(objects))
	for _, obj := range objects {
		var score ports.HighScore
		if err := json.Unmarshal([]byte(obj.Value), &score); err != nil {
			continue
		}
		scores = append(scores, score)
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].Difficulty > scores[j].Difficulty
	})
	return scores, nil
}

var _ ports.HighScorePort = (*NakamaHighScoreAdapter)(nil)
