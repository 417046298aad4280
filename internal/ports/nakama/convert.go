package nakama

import (
	"errors"
	"fmt"

	"thecrew/internal/domain"
)

var errInvalidTaskCategory = errors.New("invalid task category")

// Wire DTOs for client opcode payloads. Server events reuse the app payload
// structs directly; only requests need validation on the way in.

type wireCard struct {
	Color  string `json:"color"`
	Number int    `json:"number"`
}

func cardFromWire(c wireCard) (domain.Card, error) {
	color := domain.CardColor(c.Color)
	switch color {
	case domain.ColorYellow, domain.ColorGreen, domain.ColorPink, domain.ColorBlue:
		if c.Number < 1 || c.Number > domain.MaxColorNumber {
			return domain.Card{}, fmt.Errorf("invalid card number %d for color %s", c.Number, c.Color)
		}
	case domain.ColorBlack:
		if c.Number < 1 || c.Number > domain.MaxBlackNumber {
			return domain.Card{}, fmt.Errorf("invalid card number %d for color %s", c.Number, c.Color)
		}
	default:
		return domain.Card{}, fmt.Errorf("invalid card color %q", c.Color)
	}
	return domain.Card{Color: color, Number: c.Number}, nil
}

// startGameRequest mirrors the host's setup screen. IncludeTasks gates the
// built-in card tasks; Expansion (or an explicit TargetDifficulty) turns on
// the expansion objectives. Both modes can be combined or omitted.
type startGameRequest struct {
	IncludeTasks     bool `json:"include_tasks"`
	PlainTasks       int  `json:"plain_tasks"`
	OrderedTasks     int  `json:"ordered_tasks"`
	SequencedTasks   int  `json:"sequenced_tasks"`
	LastTask         bool `json:"last_task"`
	Expansion        bool `json:"expansion"`
	TargetDifficulty int  `json:"target_difficulty"`
}

// taskRequest identifies one objective: built-in tasks by card and category,
// expansion objectives by their catalog id.
type taskRequest struct {
	Card          wireCard `json:"card"`
	Category      string   `json:"category"`
	SequenceIndex int      `json:"sequence_index"`
	DefID         string   `json:"def_id,omitempty"`
}

type playCardRequest struct {
	Card wireCard `json:"card"`
}

type communicateRequest struct {
	Card wireCard `json:"card"`
	Rank string   `json:"rank"`
}

type emojiRequest struct {
	Emoji string `json:"emoji"`
}

type kickRequest struct {
	SessionID string `json:"session_id"`
}

type emojiEvent struct {
	SessionID   string `json:"session_id"`
	DisplayName string `json:"display_name"`
	Emoji       string `json:"emoji"`
}

type roomClosedEvent struct {
	Reason string `json:"reason"`
}
