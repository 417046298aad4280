package tasks

import "thecrew/internal/domain"

// exactCountTasks require an exact number of cards of one color or number in
// the owner's won tricks.
var exactCountTasks = []Definition{
	{
		ID:             "exact_three_sixes",
		DisplayName:    "Exactly Three 6s",
		Description:    "EXACTLY three 6s",
		DifficultyFor3: 3,
		DifficultyFor4: 4,
		DifficultyFor5: 4,
		Evaluation:     "Current player won exactly three 6s across all their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactNumberCount(tricks, playerID, map[int]int{6: 3})
		},
	},
	{
		ID:             "exact_two_nines",
		DisplayName:    "Exactly Two 9s",
		Description:    "EXACTLY two 9s",
		DifficultyFor3: 2,
		DifficultyFor4: 3,
		DifficultyFor5: 3,
		Evaluation:     "Current player won exactly two 9s across all their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactNumberCount(tricks, playerID, map[int]int{9: 2})
		},
	},
	{
		ID:             "exact_one_pink",
		DisplayName:    "Exactly One Pink",
		Description:    "EXACTLY one pink",
		DifficultyFor3: 3,
		DifficultyFor4: 3,
		DifficultyFor5: 4,
		Evaluation:     "Current player has only won a SINGLE PINK card across all their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactColorCount(tricks, playerID, map[domain.CardColor]int{domain.ColorPink: 1})
		},
	},
	{
		ID:             "exact_two_greens",
		DisplayName:    "Exactly Two Greens",
		Description:    "EXACTLY two greens",
		DifficultyFor3: 3,
		DifficultyFor4: 4,
		DifficultyFor5: 4,
		Evaluation:     "Current player has won exactly two GREEN card across all their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactColorCount(tricks, playerID, map[domain.CardColor]int{domain.ColorGreen: 2})
		},
	},
	{
		ID:             "exact_two_blues",
		DisplayName:    "Exactly Two Blues",
		Description:    "EXACTLY two blue cards",
		DifficultyFor3: 3,
		DifficultyFor4: 3,
		DifficultyFor5: 4,
		Evaluation:     "Current player has won exactly two BLUE cards across all their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactColorCount(tricks, playerID, map[domain.CardColor]int{domain.ColorBlue: 2})
		},
	},
	{
		ID:             "exact_one_submarine",
		DisplayName:    "Exactly One Submarine",
		Description:    "EXACTLY one submarine",
		DifficultyFor3: 3,
		DifficultyFor4: 3,
		DifficultyFor5: 3,
		Evaluation:     "Current player has only won a single BLACK card across all their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactColorCount(tricks, playerID, map[domain.CardColor]int{domain.ColorBlack: 1})
		},
	},
	{
		ID:             "exact_two_submarines",
		DisplayName:    "Exactly Two Submarines",
		Description:    "EXACTLY two submarines",
		DifficultyFor3: 3,
		DifficultyFor4: 3,
		DifficultyFor5: 4,
		Evaluation:     "Current player has won exactly two BLACK cards across all their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactColorCount(tricks, playerID, map[domain.CardColor]int{domain.ColorBlack: 2})
		},
	},
	{
		ID:             "exact_three_submarines",
		DisplayName:    "Exactly Three Submarines",
		Description:    "EXACTLY three submarines",
		DifficultyFor3: 3,
		DifficultyFor4: 4,
		DifficultyFor5: 4,
		Evaluation:     "Current player has won exactly three BLACK card across all their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactColorCount(tricks, playerID, map[domain.CardColor]int{domain.ColorBlack: 3})
		},
	},
}
