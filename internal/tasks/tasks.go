// Package tasks holds the expansion objective catalog: pure predicates over
// the completed-trick history, difficulty ratings per player count, and the
// difficulty-budgeted selection used at game setup.
package tasks

import (
	"math/rand"

	"thecrew/internal/domain"
)

// State is the verdict of evaluating an objective against the trick history.
type State string

const (
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateInProgress State = "in_progress"
)

// EvaluateFunc recomputes an objective's verdict from scratch for the given
// player over the completed tricks so far.
type EvaluateFunc func(tricks []domain.Trick, playerID string) State

// Definition is one catalog entry. Definitions are immutable; per-game
// progress lives on domain.ExpansionTask instances.
type Definition struct {
	ID             string
	DisplayName    string
	Description    string
	DifficultyFor3 int
	DifficultyFor4 int
	DifficultyFor5 int
	// EvaluateMidGame marks objectives whose verdict is worth refreshing
	// after every trick rather than only at game end.
	EvaluateMidGame bool
	Evaluation      string
	Evaluate        EvaluateFunc
}

// DifficultyFor returns the difficulty rating for the seated player count.
func (d Definition) DifficultyFor(numPlayers int) int {
	switch numPlayers {
	case 3:
		return d.DifficultyFor3
	case 4:
		return d.DifficultyFor4
	default:
		return d.DifficultyFor5
	}
}

// All returns the full catalog.
func All() []Definition {
	var all []Definition
	all = append(all, collectTasks...)
	all = append(all, winCountTasks...)
	all = append(all, avoidTasks...)
	all = append(all, exactCountTasks...)
	all = append(all, relativeWinTasks...)
	all = append(all, miscTasks...)
	all = append(all, specificWinTasks...)
	return all
}

// ByID looks up a catalog definition.
func ByID(id string) (Definition, bool) {
	for _, def := range All() {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// Select picks objectives whose combined difficulty reaches targetDifficulty
// for the given player count. The catalog is shuffled, then walked front to
// back: entries that would overshoot the budget are skipped, fitting entries
// are taken, and selection stops once the target is reached. The walk is
// first-fit on a shuffled order, so the total can land short of the target
// when no remaining entry fits.
func Select(targetDifficulty, numPlayers int, rng *rand.Rand) []Definition {
	catalog := All()
	rng.Shuffle(len(catalog), func(i, j int) { catalog[i], catalog[j] = catalog[j], catalog[i] })

	var selected []Definition
	total := 0
	for _, def := range catalog {
		diff := def.DifficultyFor(numPlayers)
		if total+diff > targetDifficulty {
			continue
		}
		selected = append(selected, def)
		total += diff
		if total >= targetDifficulty {
			break
		}
	}
	return selected
}
