package domain

// Stage represents the lifecycle stage of a crew game.
type Stage string

const (
	// StageNotStarted is the pre-game lobby state where players can join.
	StageNotStarted Stage = "not_started"
	// StageGameSetup is the task-allocation phase after dealing.
	StageGameSetup Stage = "game_setup"
	// StageTrickStart means the trick leader is about to play the first card.
	StageTrickStart Stage = "trick_start"
	// StageTrickMiddle means a trick is underway with at least one card played.
	StageTrickMiddle Stage = "trick_middle"
	// StageTrickEnd means a trick has resolved and awaits acknowledgement.
	StageTrickEnd Stage = "trick_end"
	// StageGameEnd is the terminal state after the final trick.
	StageGameEnd Stage = "game_end"
)

// CommunicationRank is the public hint attached to a communicated card.
type CommunicationRank string

const (
	RankUnknown CommunicationRank = "unknown"
	RankHighest CommunicationRank = "highest"
	RankLowest  CommunicationRank = "lowest"
	RankOnly    CommunicationRank = "only"
)

// Player holds state for a participant in the game.
type Player struct {
	SessionID         string
	DisplayName       string
	IsHost            bool
	IsConnected       bool
	Hand              []Card
	HasCommunicated   bool
	CommunicationCard *Card
	CommunicationRank CommunicationRank
}

// Trick tracks one trick in play order. PlayedCards and PlayerOrder run in
// parallel: PlayedCards[i] was played by PlayerOrder[i].
type Trick struct {
	PlayedCards []Card   `json:"played_cards"`
	PlayerOrder []string `json:"player_order"`
	Winner      string   `json:"winner"`
	Completed   bool     `json:"completed"`
}

// TaskCategory classifies built-in card tasks.
type TaskCategory string

const (
	TaskPlain      TaskCategory = "plain"
	TaskOrdered    TaskCategory = "ordered"
	TaskSequence   TaskCategory = "sequence"
	TaskMustBeLast TaskCategory = "must_be_last"
)

// Task is a built-in objective: the owner must win the trick containing Card,
// subject to the category's ordering constraint. Completed and Failed are
// permanent once set and never both true.
type Task struct {
	Card             Card         `json:"card"`
	Owner            string       `json:"owner"`
	Category         TaskCategory `json:"category"`
	SequenceIndex    int          `json:"sequence_index"`
	Completed        bool         `json:"completed"`
	Failed           bool         `json:"failed"`
	CompletedAtTrick int          `json:"completed_at_trick"`
}

// SameTask reports whether two tasks describe the same objective, ignoring
// ownership and progress.
func SameTask(a, b Task) bool {
	return a.Card == b.Card && a.Category == b.Category && a.SequenceIndex == b.SequenceIndex
}

// ExpansionTask is a per-game instance of a catalog objective. Difficulty is
// resolved for the seated player count at selection time.
type ExpansionTask struct {
	DefID       string `json:"def_id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Difficulty  int    `json:"difficulty"`
	Owner       string `json:"owner"`
	Completed   bool   `json:"completed"`
	Failed      bool   `json:"failed"`
}

// Game holds the authoritative state of one crew game.
type Game struct {
	Players     map[string]*Player
	PlayerOrder []string

	CurrentPlayer string
	Commander     string

	CurrentTrick       Trick
	CompletedTricks    []Trick
	ExpectedTrickCount int

	Tasks                      []Task
	ExpansionTasks             []ExpansionTask
	CompletedTaskCount         int
	CompletedSequenceTaskCount int

	Stage         Stage
	GameStarted   bool
	GameFinished  bool
	GameSucceeded bool

	// RestartUsed records that this game replaced an abandoned one.
	RestartUsed bool
}

// NewGame returns an empty lobby-stage game.
func NewGame() *Game {
	return &Game{
		Players: make(map[string]*Player),
		Stage:   StageNotStarted,
	}
}

// ExpectedTrickCount returns how many tricks a full deal produces for the
// given player count: 13 for three, 10 for four, 8 for five.
func ExpectedTrickCount(numPlayers int) int {
	switch numPlayers {
	case 3:
		return 13
	case 4:
		return 10
	default:
		return 8
	}
}

// NextPlayer returns the session id seated after current in play order.
func (g *Game) NextPlayer(current string) string {
	for i, id := range g.PlayerOrder {
		if id == current {
			return g.PlayerOrder[(i+1)%len(g.PlayerOrder)]
		}
	}
	return current
}
