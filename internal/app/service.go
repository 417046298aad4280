package app

import (
	"errors"
	"math/rand"
	"strconv"
	"time"

	"thecrew/internal/domain"
	"thecrew/internal/tasks"
)

// Service contains crew game use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotHost              = errors.New("actor is not the host")
	ErrGameInProgress       = errors.New("game already in progress")
	ErrRoomFull             = errors.New("room is full")
	ErrTooFewPlayers        = errors.New("not enough players to start")
	ErrUnknownPlayer        = errors.New("player not found")
	ErrNoCommander          = errors.New("no player holds the 4 submarine")
	ErrWrongStage           = errors.New("action not allowed in current stage")
	ErrNotYourTurn          = errors.New("not the acting player's turn")
	ErrCardNotHeld          = errors.New("card not in hand")
	ErrMustFollowSuit       = errors.New("must follow the lead color")
	ErrTaskOwned            = errors.New("task already taken")
	ErrTaskNotOwned         = errors.New("task not owned by actor")
	ErrUnknownTask          = errors.New("task not found")
	ErrTasksUnassigned      = errors.New("not every task has an owner")
	ErrAlreadyCommunicated  = errors.New("player already communicated")
	ErrInvalidCommunication = errors.New("communication does not match hand")
)

// GameSetup carries the host's start options.
type GameSetup struct {
	Tasks domain.TaskSetup
	// TargetDifficulty enables expansion objectives when positive.
	TargetDifficulty int
}

// Join seats a new player or reconnects a known one mid-game.
// The first player to join becomes host.
func (s *Service) Join(game *domain.Game, sessionID, displayName string) ([]Event, error) {
	if pl, ok := game.Players[sessionID]; ok {
		pl.IsConnected = true
		return []Event{{
			Kind:    EventPlayerJoined,
			Payload: PlayerJoinedPayload{SessionID: sessionID, DisplayName: pl.DisplayName, IsHost: pl.IsHost},
		}}, nil
	}
	if game.GameStarted {
		return nil, ErrGameInProgress
	}
	if len(game.Players) >= MaxPlayers {
		return nil, ErrRoomFull
	}

	if displayName == "" {
		displayName = "Player " + strconv.Itoa(len(game.Players)+1)
	}
	pl := &domain.Player{
		SessionID:   sessionID,
		DisplayName: displayName,
		IsHost:      len(game.Players) == 0,
		IsConnected: true,
	}
	game.Players[sessionID] = pl
	game.PlayerOrder = append(game.PlayerOrder, sessionID)

	return []Event{{
		Kind:    EventPlayerJoined,
		Payload: PlayerJoinedPayload{SessionID: sessionID, DisplayName: displayName, IsHost: pl.IsHost},
	}}, nil
}

// Leave removes a lobby player or marks a mid-game player disconnected.
// Host duties pass to the longest-seated remaining connected player so the
// room is never without someone who can restart or kick.
func (s *Service) Leave(game *domain.Game, sessionID string) ([]Event, error) {
	pl, ok := game.Players[sessionID]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	if game.GameStarted {
		pl.IsConnected = false
		events := []Event{{Kind: EventPlayerLeft, Payload: PlayerLeftPayload{SessionID: sessionID}}}
		if pl.IsHost {
			for _, id := range game.PlayerOrder {
				next := game.Players[id]
				if id == sessionID || !next.IsConnected {
					continue
				}
				pl.IsHost = false
				next.IsHost = true
				events = append(events, Event{Kind: EventHostChanged, Payload: HostChangedPayload{SessionID: id}})
				break
			}
		}
		return events, nil
	}

	wasHost := pl.IsHost
	delete(game.Players, sessionID)
	for i, id := range game.PlayerOrder {
		if id == sessionID {
			game.PlayerOrder = append(game.PlayerOrder[:i], game.PlayerOrder[i+1:]...)
			break
		}
	}

	events := []Event{{Kind: EventPlayerLeft, Payload: PlayerLeftPayload{SessionID: sessionID}}}
	if wasHost && len(game.PlayerOrder) > 0 {
		next := game.Players[game.PlayerOrder[0]]
		next.IsHost = true
		events = append(events, Event{Kind: EventHostChanged, Payload: HostChangedPayload{SessionID: next.SessionID}})
	}
	return events, nil
}

// StartGame shuffles and deals the full deck, seats the commander and draws
// the game's objectives. The holder of the 4 submarine leads; a deal without
// one aborts before any state changes.
func (s *Service) StartGame(game *domain.Game, actorID string, setup GameSetup) ([]Event, error) {
	actor, ok := game.Players[actorID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if !actor.IsHost {
		return nil, ErrNotHost
	}
	if game.Stage != domain.StageNotStarted {
		return nil, ErrGameInProgress
	}
	if len(game.PlayerOrder) < MinPlayersToStartGame {
		return nil, ErrTooFewPlayers
	}

	deck := domain.NewDeck(true)
	s.shuffle(deck)

	// Deal round-robin from a random seat so the leftover short hands rotate.
	numPlayers := len(game.PlayerOrder)
	hands := make(map[string][]domain.Card, numPlayers)
	start := s.rng.Intn(numPlayers)
	for i, card := range deck {
		id := game.PlayerOrder[(start+i)%numPlayers]
		hands[id] = append(hands[id], card)
	}

	commander := ""
	black4 := domain.Card{Color: domain.ColorBlack, Number: domain.MaxBlackNumber}
	for id, hand := range hands {
		if domain.ContainsCard(hand, black4) {
			commander = id
			break
		}
	}
	if commander == "" {
		return nil, ErrNoCommander
	}

	pool := domain.NewDeck(false)
	s.shuffle(pool)
	game.Tasks = domain.GenerateTasks(pool, setup.Tasks)

	game.ExpansionTasks = nil
	if setup.TargetDifficulty > 0 {
		for _, def := range tasks.Select(setup.TargetDifficulty, numPlayers, s.rng) {
			game.ExpansionTasks = append(game.ExpansionTasks, domain.ExpansionTask{
				DefID:       def.ID,
				DisplayName: def.DisplayName,
				Description: def.Description,
				Difficulty:  def.DifficultyFor(numPlayers),
			})
		}
	}

	for id, hand := range hands {
		game.Players[id].Hand = hand
	}
	game.Commander = commander
	game.CurrentPlayer = commander
	game.ExpectedTrickCount = domain.ExpectedTrickCount(numPlayers)
	game.Stage = domain.StageGameSetup
	game.GameStarted = true

	events := make([]Event, 0, numPlayers+1)
	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			PlayerOrder:        game.PlayerOrder,
			Commander:          commander,
			ExpectedTrickCount: game.ExpectedTrickCount,
			Tasks:              game.Tasks,
			ExpansionTasks:     game.ExpansionTasks,
		},
	})
	for _, id := range game.PlayerOrder {
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{SessionID: id, Hand: game.Players[id].Hand},
			Recipients: []string{id},
		})
	}
	return events, nil
}

// TakeTask claims an unowned built-in task during setup.
func (s *Service) TakeTask(game *domain.Game, actorID string, task domain.Task) ([]Event, error) {
	if game.Stage != domain.StageGameSetup {
		return nil, ErrWrongStage
	}
	if _, ok := game.Players[actorID]; !ok {
		return nil, ErrUnknownPlayer
	}

	target := s.findTask(game, task)
	if target == nil {
		return nil, ErrUnknownTask
	}
	if target.Owner != "" {
		return nil, ErrTaskOwned
	}

	target.Owner = actorID
	return []Event{{
		Kind:    EventTaskTaken,
		Payload: TaskTakenPayload{SessionID: actorID, Task: *target},
	}}, nil
}

// ReturnTask releases a built-in task the actor owns.
func (s *Service) ReturnTask(game *domain.Game, actorID string, task domain.Task) ([]Event, error) {
	if game.Stage != domain.StageGameSetup {
		return nil, ErrWrongStage
	}
	if _, ok := game.Players[actorID]; !ok {
		return nil, ErrUnknownPlayer
	}

	target := s.findTask(game, task)
	if target == nil {
		return nil, ErrUnknownTask
	}
	if target.Owner != actorID {
		return nil, ErrTaskNotOwned
	}

	target.Owner = ""
	return []Event{{
		Kind:    EventTaskReturned,
		Payload: TaskReturnedPayload{SessionID: actorID, Task: *target},
	}}, nil
}

// TakeExpansionTask claims an unowned expansion objective during setup.
func (s *Service) TakeExpansionTask(game *domain.Game, actorID, defID string) ([]Event, error) {
	if game.Stage != domain.StageGameSetup {
		return nil, ErrWrongStage
	}
	if _, ok := game.Players[actorID]; !ok {
		return nil, ErrUnknownPlayer
	}

	target := s.findExpansionTask(game, defID)
	if target == nil {
		return nil, ErrUnknownTask
	}
	if target.Owner != "" {
		return nil, ErrTaskOwned
	}

	target.Owner = actorID
	return []Event{{
		Kind:    EventTaskTaken,
		Payload: ExpansionTaskTakenPayload{SessionID: actorID, DefID: defID},
	}}, nil
}

// ReturnExpansionTask releases an expansion objective the actor owns.
func (s *Service) ReturnExpansionTask(game *domain.Game, actorID, defID string) ([]Event, error) {
	if game.Stage != domain.StageGameSetup {
		return nil, ErrWrongStage
	}
	if _, ok := game.Players[actorID]; !ok {
		return nil, ErrUnknownPlayer
	}

	target := s.findExpansionTask(game, defID)
	if target == nil {
		return nil, ErrUnknownTask
	}
	if target.Owner != actorID {
		return nil, ErrTaskNotOwned
	}

	target.Owner = ""
	return []Event{{
		Kind:    EventTaskReturned,
		Payload: ExpansionTaskTakenPayload{SessionID: actorID, DefID: defID},
	}}, nil
}

// FinishTaskAllocation closes setup once every objective has an owner.
// The commander leads the first trick.
func (s *Service) FinishTaskAllocation(game *domain.Game, actorID string) ([]Event, error) {
	if game.Stage != domain.StageGameSetup {
		return nil, ErrWrongStage
	}
	if _, ok := game.Players[actorID]; !ok {
		return nil, ErrUnknownPlayer
	}
	for _, task := range game.Tasks {
		if task.Owner == "" {
			return nil, ErrTasksUnassigned
		}
	}
	for _, task := range game.ExpansionTasks {
		if task.Owner == "" {
			return nil, ErrTasksUnassigned
		}
	}

	game.CurrentTrick = domain.Trick{}
	game.CurrentPlayer = game.Commander
	game.Stage = domain.StageTrickStart

	return []Event{{
		Kind:    EventTasksAllocated,
		Payload: TasksAllocatedPayload{FirstPlayer: game.Commander},
	}}, nil
}

// PlayCard plays one card for the acting player. All checks run before any
// state changes so a rejected play leaves the game untouched. Completing the
// trick resolves the winner and re-scores every objective.
func (s *Service) PlayCard(game *domain.Game, actorID string, card domain.Card) ([]Event, error) {
	if game.Stage != domain.StageTrickStart && game.Stage != domain.StageTrickMiddle {
		return nil, ErrWrongStage
	}
	pl, ok := game.Players[actorID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if game.CurrentPlayer != actorID {
		return nil, ErrNotYourTurn
	}
	if !domain.ContainsCard(pl.Hand, card) {
		return nil, ErrCardNotHeld
	}
	if len(game.CurrentTrick.PlayedCards) > 0 {
		leadColor := game.CurrentTrick.PlayedCards[0].Color
		if !domain.CanFollow(pl.Hand, card, leadColor) {
			return nil, ErrMustFollowSuit
		}
	}

	pl.Hand, _ = domain.RemoveCard(pl.Hand, card)
	if pl.CommunicationCard != nil && *pl.CommunicationCard == card {
		pl.CommunicationCard = nil
	}
	game.CurrentTrick.PlayedCards = append(game.CurrentTrick.PlayedCards, card)
	game.CurrentTrick.PlayerOrder = append(game.CurrentTrick.PlayerOrder, actorID)
	game.Stage = domain.StageTrickMiddle

	if len(game.CurrentTrick.PlayedCards) < len(game.PlayerOrder) {
		game.CurrentPlayer = game.NextPlayer(actorID)
		return []Event{{
			Kind:    EventCardPlayed,
			Payload: CardPlayedPayload{SessionID: actorID, Card: card, NextPlayer: game.CurrentPlayer},
		}}, nil
	}

	winner := domain.ResolveTrick(game.CurrentTrick)
	game.CurrentTrick.Winner = winner
	game.CurrentTrick.Completed = true
	game.CompletedTricks = append(game.CompletedTricks, game.CurrentTrick)

	domain.EvaluateTrickForTasks(game, game.CurrentTrick)
	s.evaluateExpansionTasks(game, false)

	game.CurrentPlayer = winner
	game.Stage = domain.StageTrickEnd

	return []Event{
		{
			Kind:    EventCardPlayed,
			Payload: CardPlayedPayload{SessionID: actorID, Card: card, NextPlayer: winner},
		},
		{
			Kind:    EventTrickCompleted,
			Payload: TrickCompletedPayload{Winner: winner, Trick: game.CurrentTrick, Tasks: game.Tasks},
		},
	}, nil
}

// FinishTrick acknowledges a resolved trick. The winner either leads the next
// trick or, after the final one, the game ends with a collective verdict.
func (s *Service) FinishTrick(game *domain.Game, actorID string) ([]Event, error) {
	if game.Stage != domain.StageTrickEnd {
		return nil, ErrWrongStage
	}
	if _, ok := game.Players[actorID]; !ok {
		return nil, ErrUnknownPlayer
	}
	if game.CurrentPlayer != actorID {
		return nil, ErrNotYourTurn
	}

	if len(game.CompletedTricks) >= game.ExpectedTrickCount {
		s.evaluateExpansionTasks(game, true)
		game.Stage = domain.StageGameEnd
		game.GameFinished = true
		game.GameSucceeded = allTasksCompleted(game)
		return []Event{{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				Succeeded:      game.GameSucceeded,
				Tasks:          game.Tasks,
				ExpansionTasks: game.ExpansionTasks,
			},
		}}, nil
	}

	game.CurrentTrick = domain.Trick{}
	game.Stage = domain.StageTrickStart
	return []Event{{
		Kind:    EventTrickFinished,
		Payload: TrickFinishedPayload{NextLeader: game.CurrentPlayer},
	}}, nil
}

// Communicate places the player's one-time hand signal. Only allowed between
// tricks, and the rank must truthfully describe the card.
func (s *Service) Communicate(game *domain.Game, actorID string, card domain.Card, rank domain.CommunicationRank) ([]Event, error) {
	if game.Stage != domain.StageTrickStart && game.Stage != domain.StageTrickEnd {
		return nil, ErrWrongStage
	}
	pl, ok := game.Players[actorID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if pl.HasCommunicated {
		return nil, ErrAlreadyCommunicated
	}
	if !domain.IsValidCommunication(pl, card, rank) {
		return nil, ErrInvalidCommunication
	}

	pl.HasCommunicated = true
	c := card
	pl.CommunicationCard = &c
	pl.CommunicationRank = rank

	return []Event{{
		Kind:    EventCommunicated,
		Payload: CommunicatedPayload{SessionID: actorID, Card: card, Rank: rank},
	}}, nil
}

// RestartGame swaps in a fresh lobby-stage game keeping the seated players.
// Host only. The replacement is flagged so records show the crew started over.
func (s *Service) RestartGame(game *domain.Game, actorID string) (*domain.Game, []Event, error) {
	actor, ok := game.Players[actorID]
	if !ok {
		return nil, nil, ErrUnknownPlayer
	}
	if !actor.IsHost {
		return nil, nil, ErrNotHost
	}

	fresh := domain.NewGame()
	fresh.RestartUsed = true
	for _, id := range game.PlayerOrder {
		old := game.Players[id]
		fresh.Players[id] = &domain.Player{
			SessionID:   old.SessionID,
			DisplayName: old.DisplayName,
			IsHost:      old.IsHost,
			IsConnected: old.IsConnected,
		}
		fresh.PlayerOrder = append(fresh.PlayerOrder, id)
	}

	return fresh, []Event{{
		Kind:    EventGameRestarted,
		Payload: GameRestartedPayload{RequestedBy: actorID},
	}}, nil
}

// evaluateExpansionTasks re-scores unsettled expansion objectives against the
// full trick history. Failures land as soon as the predicate reports them;
// completions land mid-game only for objectives safe to settle early. Anything
// still open when the last trick is in counts as failed.
func (s *Service) evaluateExpansionTasks(game *domain.Game, atGameEnd bool) {
	for i := range game.ExpansionTasks {
		inst := &game.ExpansionTasks[i]
		if inst.Completed || inst.Failed {
			continue
		}
		def, ok := tasks.ByID(inst.DefID)
		if !ok {
			continue
		}
		switch def.Evaluate(game.CompletedTricks, inst.Owner) {
		case tasks.StateFailed:
			inst.Failed = true
		case tasks.StateCompleted:
			if def.EvaluateMidGame || atGameEnd {
				inst.Completed = true
			}
		default:
			if atGameEnd {
				inst.Failed = true
			}
		}
	}
}

func allTasksCompleted(game *domain.Game) bool {
	for _, task := range game.Tasks {
		if !task.Completed || task.Failed {
			return false
		}
	}
	for _, task := range game.ExpansionTasks {
		if !task.Completed || task.Failed {
			return false
		}
	}
	return true
}

func (s *Service) findTask(game *domain.Game, task domain.Task) *domain.Task {
	for i := range game.Tasks {
		if domain.SameTask(game.Tasks[i], task) {
			return &game.Tasks[i]
		}
	}
	return nil
}

func (s *Service) findExpansionTask(game *domain.Game, defID string) *domain.ExpansionTask {
	for i := range game.ExpansionTasks {
		if game.ExpansionTasks[i].DefID == defID {
			return &game.ExpansionTasks[i]
		}
	}
	return nil
}

func (s *Service) shuffle(deck []domain.Card) {
	s.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}
