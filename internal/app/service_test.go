package app

import (
	"math/rand"
	"testing"

	"thecrew/internal/domain"
)

func newLobby(t *testing.T, svc *Service, n int) *domain.Game {
	t.Helper()
	game := domain.NewGame()
	ids := []string{"p1", "p2", "p3", "p4", "p5"}
	for i := 0; i < n; i++ {
		if _, err := svc.Join(game, ids[i], ids[i]); err != nil {
			t.Fatalf("join %s: %v", ids[i], err)
		}
	}
	return game
}

// startedGame builds a three player game mid-trick with fixed hands, skipping
// the deal so tests control every card.
func startedGame(hands map[string][]domain.Card) *domain.Game {
	game := domain.NewGame()
	for i, id := range []string{"p1", "p2", "p3"} {
		game.Players[id] = &domain.Player{
			SessionID:   id,
			DisplayName: id,
			IsHost:      i == 0,
			IsConnected: true,
			Hand:        hands[id],
		}
		game.PlayerOrder = append(game.PlayerOrder, id)
	}
	game.Commander = "p1"
	game.CurrentPlayer = "p1"
	game.ExpectedTrickCount = domain.ExpectedTrickCount(3)
	game.Stage = domain.StageTrickStart
	game.GameStarted = true
	return game
}

func TestJoinAssignsHostAndFallbackName(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	game := domain.NewGame()

	if _, err := svc.Join(game, "p1", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := svc.Join(game, "p2", "Ada"); err != nil {
		t.Fatalf("join: %v", err)
	}

	if !game.Players["p1"].IsHost {
		t.Fatal("first joiner should be host")
	}
	if game.Players["p2"].IsHost {
		t.Fatal("second joiner should not be host")
	}
	if got := game.Players["p1"].DisplayName; got != "Player 1" {
		t.Fatalf("fallback name = %q", got)
	}
	if got := game.Players["p2"].DisplayName; got != "Ada" {
		t.Fatalf("name = %q", got)
	}
}

func TestJoinRejectsWhenFullOrStarted(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	game := newLobby(t, svc, 5)
	if _, err := svc.Join(game, "p6", "p6"); err != ErrRoomFull {
		t.Fatalf("err = %v, want %v", err, ErrRoomFull)
	}

	started := startedGame(map[string][]domain.Card{})
	if _, err := svc.Join(started, "stranger", "x"); err != ErrGameInProgress {
		t.Fatalf("err = %v, want %v", err, ErrGameInProgress)
	}
}

func TestJoinReconnectsSeatedPlayer(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	game := startedGame(map[string][]domain.Card{})
	game.Players["p2"].IsConnected = false

	events, err := svc.Join(game, "p2", "ignored")
	if err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if !game.Players["p2"].IsConnected {
		t.Fatal("player should be reconnected")
	}
	if game.Players["p2"].DisplayName != "p2" {
		t.Fatal("reconnect must not rename the player")
	}
	if len(events) != 1 || events[0].Kind != EventPlayerJoined {
		t.Fatalf("events = %+v", events)
	}
}

func TestLeaveReassignsHost(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	game := newLobby(t, svc, 3)

	events, err := svc.Leave(game, "p1")
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if _, ok := game.Players["p1"]; ok {
		t.Fatal("lobby leaver should be removed")
	}
	if !game.Players["p2"].IsHost {
		t.Fatal("host should pass to the next seated player")
	}
	if len(events) != 2 || events[1].Kind != EventHostChanged {
		t.Fatalf("events = %+v", events)
	}
}

func TestLeaveMidGameKeepsSeat(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	game := startedGame(map[string][]domain.Card{})

	if _, err := svc.Leave(game, "p2"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	pl, ok := game.Players["p2"]
	if !ok {
		t.Fatal("mid-game leaver must keep their seat")
	}
	if pl.IsConnected {
		t.Fatal("leaver should be marked disconnected")
	}
}

func TestLeaveMidGameReassignsHost(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	game := startedGame(map[string][]domain.Card{})

	events, err := svc.Leave(game, "p1")
	if err != nil {
		t.Fatalf("leave: %v", err)
	}

	if game.Players["p1"].IsHost {
		t.Fatal("disconnected host must hand over host duties")
	}
	if !game.Players["p2"].IsHost {
		t.Fatal("host should pass to the next connected player")
	}
	found := false
	for _, ev := range events {
		if ev.Kind != EventHostChanged {
			continue
		}
		found = true
		if got := ev.Payload.(HostChangedPayload).SessionID; got != "p2" {
			t.Fatalf("host changed to %q, want p2", got)
		}
	}
	if !found {
		t.Fatal("expected a host changed event")
	}

	// A mid-game host action from the new host must now work.
	if _, _, err := svc.RestartGame(game, "p2"); err != nil {
		t.Fatalf("new host restart: %v", err)
	}
}

func TestStartGameGuards(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))

	game := newLobby(t, svc, 3)
	if _, err := svc.StartGame(game, "p2", GameSetup{}); err != ErrNotHost {
		t.Fatalf("non-host start: err = %v, want %v", err, ErrNotHost)
	}

	small := newLobby(t, svc, 2)
	if _, err := svc.StartGame(small, "p1", GameSetup{}); err != ErrTooFewPlayers {
		t.Fatalf("two players: err = %v, want %v", err, ErrTooFewPlayers)
	}

	started := startedGame(map[string][]domain.Card{})
	if _, err := svc.StartGame(started, "p1", GameSetup{}); err != ErrGameInProgress {
		t.Fatalf("double start: err = %v, want %v", err, ErrGameInProgress)
	}
}

func TestStartGameDealsEveryCardOnce(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(7)))
	game := newLobby(t, svc, 4)

	setup := GameSetup{Tasks: domain.TaskSetup{PlainTasks: 2}}
	events, err := svc.StartGame(game, "p1", setup)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	seen := make(map[domain.Card]bool)
	total := 0
	for _, id := range game.PlayerOrder {
		for _, card := range game.Players[id].Hand {
			if seen[card] {
				t.Fatalf("card %+v dealt twice", card)
			}
			seen[card] = true
			total++
		}
	}
	if total != 40 {
		t.Fatalf("dealt %d cards, want 40", total)
	}

	black4 := domain.Card{Color: domain.ColorBlack, Number: domain.MaxBlackNumber}
	if !domain.ContainsCard(game.Players[game.Commander].Hand, black4) {
		t.Fatal("commander must hold the 4 submarine")
	}
	if game.CurrentPlayer != game.Commander {
		t.Fatal("commander should act first")
	}
	if game.Stage != domain.StageGameSetup {
		t.Fatalf("stage = %q", game.Stage)
	}
	if game.ExpectedTrickCount != 10 {
		t.Fatalf("expected trick count = %d, want 10", game.ExpectedTrickCount)
	}
	if len(game.Tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(game.Tasks))
	}
	for _, task := range game.Tasks {
		if task.Card.Color == domain.ColorBlack {
			t.Fatal("task cards must never be black")
		}
	}

	handEvents := 0
	for _, ev := range events {
		if ev.Kind != EventHandDealt {
			continue
		}
		handEvents++
		payload := ev.Payload.(HandDealtPayload)
		if len(ev.Recipients) != 1 || ev.Recipients[0] != payload.SessionID {
			t.Fatalf("hand event must be private to its player, got %+v", ev.Recipients)
		}
	}
	if handEvents != 4 {
		t.Fatalf("hand events = %d, want 4", handEvents)
	}
}

func TestStartGameSelectsExpansionObjectives(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(3)))
	game := newLobby(t, svc, 4)

	setup := GameSetup{TargetDifficulty: 8}
	if _, err := svc.StartGame(game, "p1", setup); err != nil {
		t.Fatalf("start: %v", err)
	}

	if len(game.ExpansionTasks) == 0 {
		t.Fatal("expected expansion objectives")
	}
	total := 0
	for _, task := range game.ExpansionTasks {
		if task.DefID == "" || task.DisplayName == "" {
			t.Fatalf("objective missing identity: %+v", task)
		}
		total += task.Difficulty
	}
	if total > 8 {
		t.Fatalf("total difficulty %d over budget", total)
	}
}

func TestTaskAllocationFlow(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(7)))
	game := newLobby(t, svc, 3)
	if _, err := svc.StartGame(game, "p1", GameSetup{Tasks: domain.TaskSetup{PlainTasks: 2}}); err != nil {
		t.Fatalf("start: %v", err)
	}

	first := game.Tasks[0]
	second := game.Tasks[1]

	if _, err := svc.FinishTaskAllocation(game, "p1"); err != ErrTasksUnassigned {
		t.Fatalf("finish with unowned tasks: err = %v, want %v", err, ErrTasksUnassigned)
	}

	if _, err := svc.TakeTask(game, "p2", first); err != nil {
		t.Fatalf("take: %v", err)
	}
	if _, err := svc.TakeTask(game, "p3", first); err != ErrTaskOwned {
		t.Fatalf("take owned: err = %v, want %v", err, ErrTaskOwned)
	}
	if _, err := svc.ReturnTask(game, "p3", first); err != ErrTaskNotOwned {
		t.Fatalf("return foreign: err = %v, want %v", err, ErrTaskNotOwned)
	}
	if _, err := svc.ReturnTask(game, "p2", first); err != nil {
		t.Fatalf("return: %v", err)
	}
	if game.Tasks[0].Owner != "" {
		t.Fatal("returned task should be unowned")
	}

	if _, err := svc.TakeTask(game, "p2", first); err != nil {
		t.Fatalf("retake: %v", err)
	}
	if _, err := svc.TakeTask(game, "p3", second); err != nil {
		t.Fatalf("take second: %v", err)
	}

	if _, err := svc.FinishTaskAllocation(game, "p1"); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if game.Stage != domain.StageTrickStart {
		t.Fatalf("stage = %q", game.Stage)
	}
	if game.CurrentPlayer != game.Commander {
		t.Fatal("commander leads the first trick")
	}
}

func TestPlayCardRejectionsLeaveStateUntouched(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	game := startedGame(map[string][]domain.Card{
		"p1": {{Color: domain.ColorYellow, Number: 9}},
		"p2": {{Color: domain.ColorYellow, Number: 5}, {Color: domain.ColorGreen, Number: 2}},
		"p3": {{Color: domain.ColorBlue, Number: 1}},
	})

	if _, err := svc.PlayCard(game, "p2", domain.Card{Color: domain.ColorYellow, Number: 5}); err != ErrNotYourTurn {
		t.Fatalf("out of turn: err = %v, want %v", err, ErrNotYourTurn)
	}
	if _, err := svc.PlayCard(game, "p1", domain.Card{Color: domain.ColorPink, Number: 1}); err != ErrCardNotHeld {
		t.Fatalf("foreign card: err = %v, want %v", err, ErrCardNotHeld)
	}

	if _, err := svc.PlayCard(game, "p1", domain.Card{Color: domain.ColorYellow, Number: 9}); err != nil {
		t.Fatalf("lead: %v", err)
	}

	// p2 holds yellow and must follow it.
	if _, err := svc.PlayCard(game, "p2", domain.Card{Color: domain.ColorGreen, Number: 2}); err != ErrMustFollowSuit {
		t.Fatalf("off-suit: err = %v, want %v", err, ErrMustFollowSuit)
	}
	if len(game.Players["p2"].Hand) != 2 {
		t.Fatal("rejected play must not touch the hand")
	}
	if len(game.CurrentTrick.PlayedCards) != 1 {
		t.Fatal("rejected play must not touch the trick")
	}
	if game.CurrentPlayer != "p2" {
		t.Fatal("rejected play must not advance the turn")
	}
}

func TestTrickCompletionScoresTasks(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	game := startedGame(map[string][]domain.Card{
		"p1": {{Color: domain.ColorYellow, Number: 9}},
		"p2": {{Color: domain.ColorYellow, Number: 5}},
		"p3": {{Color: domain.ColorYellow, Number: 2}},
	})
	game.Tasks = []domain.Task{
		{Card: domain.Card{Color: domain.ColorYellow, Number: 5}, Owner: "p1", Category: domain.TaskPlain},
	}

	for _, play := range []struct {
		player string
		card   domain.Card
	}{
		{"p1", domain.Card{Color: domain.ColorYellow, Number: 9}},
		{"p2", domain.Card{Color: domain.ColorYellow, Number: 5}},
	} {
		if _, err := svc.PlayCard(game, play.player, play.card); err != nil {
			t.Fatalf("play %s: %v", play.player, err)
		}
	}

	events, err := svc.PlayCard(game, "p3", domain.Card{Color: domain.ColorYellow, Number: 2})
	if err != nil {
		t.Fatalf("closing play: %v", err)
	}

	if game.Stage != domain.StageTrickEnd {
		t.Fatalf("stage = %q", game.Stage)
	}
	if game.CurrentPlayer != "p1" {
		t.Fatalf("winner = %q, want p1", game.CurrentPlayer)
	}
	if len(game.CompletedTricks) != 1 {
		t.Fatalf("completed tricks = %d", len(game.CompletedTricks))
	}
	if !game.Tasks[0].Completed {
		t.Fatal("plain task won by owner should complete")
	}

	var sawCompleted bool
	for _, ev := range events {
		if ev.Kind == EventTrickCompleted {
			sawCompleted = true
			payload := ev.Payload.(TrickCompletedPayload)
			if payload.Winner != "p1" {
				t.Fatalf("event winner = %q", payload.Winner)
			}
		}
	}
	if !sawCompleted {
		t.Fatal("expected a trick completed event")
	}
}

func TestBlackCardTrumpsLead(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	game := startedGame(map[string][]domain.Card{
		"p1": {{Color: domain.ColorYellow, Number: 9}},
		"p2": {{Color: domain.ColorBlack, Number: 1}},
		"p3": {{Color: domain.ColorYellow, Number: 2}},
	})

	plays := []struct {
		player string
		card   domain.Card
	}{
		{"p1", domain.Card{Color: domain.ColorYellow, Number: 9}},
		{"p2", domain.Card{Color: domain.ColorBlack, Number: 1}},
		{"p3", domain.Card{Color: domain.ColorYellow, Number: 2}},
	}
	for _, play := range plays {
		if _, err := svc.PlayCard(game, play.player, play.card); err != nil {
			t.Fatalf("play %s: %v", play.player, err)
		}
	}

	if game.CompletedTricks[0].Winner != "p2" {
		t.Fatalf("winner = %q, want p2", game.CompletedTricks[0].Winner)
	}
}

func TestPlayCardClearsCommunicatedCard(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	card := domain.Card{Color: domain.ColorYellow, Number: 9}
	game := startedGame(map[string][]domain.Card{
		"p1": {card},
		"p2": {{Color: domain.ColorYellow, Number: 5}},
		"p3": {{Color: domain.ColorYellow, Number: 2}},
	})
	pl := game.Players["p1"]
	pl.HasCommunicated = true
	c := card
	pl.CommunicationCard = &c

	if _, err := svc.PlayCard(game, "p1", card); err != nil {
		t.Fatalf("play: %v", err)
	}
	if pl.CommunicationCard != nil {
		t.Fatal("playing the communicated card should clear the signal card")
	}
	if !pl.HasCommunicated {
		t.Fatal("the one-time communication stays spent")
	}
}

func TestFinishTrickStartsNextTrick(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	game := startedGame(map[string][]domain.Card{
		"p1": {{Color: domain.ColorYellow, Number: 9}, {Color: domain.ColorGreen, Number: 1}},
		"p2": {{Color: domain.ColorYellow, Number: 5}, {Color: domain.ColorGreen, Number: 2}},
		"p3": {{Color: domain.ColorYellow, Number: 2}, {Color: domain.ColorGreen, Number: 3}},
	})
	game.ExpectedTrickCount = 2

	plays := []struct {
		player string
		card   domain.Card
	}{
		{"p1", domain.Card{Color: domain.ColorYellow, Number: 9}},
		{"p2", domain.Card{Color: domain.ColorYellow, Number: 5}},
		{"p3", domain.Card{Color: domain.ColorYellow, Number: 2}},
	}
	for _, play := range plays {
		if _, err := svc.PlayCard(game, play.player, play.card); err != nil {
			t.Fatalf("play %s: %v", play.player, err)
		}
	}

	if _, err := svc.FinishTrick(game, "p2"); err != ErrNotYourTurn {
		t.Fatalf("non-winner finish: err = %v, want %v", err, ErrNotYourTurn)
	}

	events, err := svc.FinishTrick(game, "p1")
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if game.Stage != domain.StageTrickStart {
		t.Fatalf("stage = %q", game.Stage)
	}
	if len(game.CurrentTrick.PlayedCards) != 0 {
		t.Fatal("next trick should start empty")
	}
	if len(events) != 1 || events[0].Kind != EventTrickFinished {
		t.Fatalf("events = %+v", events)
	}
}

func TestFinishTrickEndsGameWithVerdict(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))

	endgame := func(taskCompleted bool) *domain.Game {
		game := startedGame(map[string][]domain.Card{})
		game.ExpectedTrickCount = 1
		game.CompletedTricks = []domain.Trick{{
			PlayedCards: []domain.Card{{Color: domain.ColorYellow, Number: 1}},
			PlayerOrder: []string{"p1"},
			Winner:      "p1",
			Completed:   true,
		}}
		game.Tasks = []domain.Task{{
			Card:      domain.Card{Color: domain.ColorYellow, Number: 1},
			Owner:     "p1",
			Category:  domain.TaskPlain,
			Completed: taskCompleted,
			Failed:    !taskCompleted,
		}}
		game.Stage = domain.StageTrickEnd
		game.CurrentPlayer = "p1"
		return game
	}

	success := endgame(true)
	events, err := svc.FinishTrick(success, "p1")
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if success.Stage != domain.StageGameEnd || !success.GameFinished {
		t.Fatalf("stage = %q finished = %t", success.Stage, success.GameFinished)
	}
	if !success.GameSucceeded {
		t.Fatal("all tasks completed should succeed")
	}
	if len(events) != 1 || events[0].Kind != EventGameEnded {
		t.Fatalf("events = %+v", events)
	}

	failure := endgame(false)
	if _, err := svc.FinishTrick(failure, "p1"); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if failure.GameSucceeded {
		t.Fatal("a failed task must fail the whole crew")
	}
}

func TestExpansionObjectiveSettlesAtGameEnd(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	game := startedGame(map[string][]domain.Card{})
	game.ExpectedTrickCount = 1
	game.CompletedTricks = []domain.Trick{{
		PlayedCards: []domain.Card{{Color: domain.ColorGreen, Number: 4}},
		PlayerOrder: []string{"p1"},
		Winner:      "p1",
		Completed:   true,
	}}
	// Winning the first trick is decided as soon as the trick history exists.
	game.ExpansionTasks = []domain.ExpansionTask{{DefID: "count_first_trick", DisplayName: "Win the First Trick", Owner: "p1", Difficulty: 1}}
	game.Stage = domain.StageTrickEnd
	game.CurrentPlayer = "p1"

	if _, err := svc.FinishTrick(game, "p1"); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if !game.ExpansionTasks[0].Completed {
		t.Fatal("objective should be completed at game end")
	}
	if !game.GameSucceeded {
		t.Fatal("completed objective should count toward the verdict")
	}
}

func TestCommunicateOncePerGame(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	game := startedGame(map[string][]domain.Card{
		"p1": {{Color: domain.ColorYellow, Number: 9}, {Color: domain.ColorYellow, Number: 2}},
		"p2": {{Color: domain.ColorGreen, Number: 1}},
		"p3": {{Color: domain.ColorBlue, Number: 1}},
	})

	high := domain.Card{Color: domain.ColorYellow, Number: 9}
	if _, err := svc.Communicate(game, "p1", high, domain.RankLowest); err != ErrInvalidCommunication {
		t.Fatalf("lying rank: err = %v, want %v", err, ErrInvalidCommunication)
	}

	if _, err := svc.Communicate(game, "p1", high, domain.RankHighest); err != nil {
		t.Fatalf("communicate: %v", err)
	}
	pl := game.Players["p1"]
	if !pl.HasCommunicated || pl.CommunicationCard == nil || *pl.CommunicationCard != high {
		t.Fatalf("communication not recorded: %+v", pl)
	}

	if _, err := svc.Communicate(game, "p1", high, domain.RankHighest); err != ErrAlreadyCommunicated {
		t.Fatalf("second signal: err = %v, want %v", err, ErrAlreadyCommunicated)
	}

	game.Stage = domain.StageTrickMiddle
	if _, err := svc.Communicate(game, "p2", domain.Card{Color: domain.ColorGreen, Number: 1}, domain.RankOnly); err != ErrWrongStage {
		t.Fatalf("mid-trick signal: err = %v, want %v", err, ErrWrongStage)
	}
}

func TestRestartGamePreservesSeats(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	game := startedGame(map[string][]domain.Card{
		"p1": {{Color: domain.ColorYellow, Number: 9}},
	})
	game.Players["p1"].HasCommunicated = true

	if _, _, err := svc.RestartGame(game, "p2"); err != ErrNotHost {
		t.Fatalf("non-host restart: err = %v, want %v", err, ErrNotHost)
	}

	fresh, events, err := svc.RestartGame(game, "p1")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if fresh.Stage != domain.StageNotStarted || fresh.GameStarted {
		t.Fatalf("fresh game not in lobby: %+v", fresh.Stage)
	}
	if !fresh.RestartUsed {
		t.Fatal("restarted game must be flagged")
	}
	if len(fresh.PlayerOrder) != 3 {
		t.Fatalf("players = %d, want 3", len(fresh.PlayerOrder))
	}
	pl := fresh.Players["p1"]
	if !pl.IsHost || pl.HasCommunicated || len(pl.Hand) != 0 {
		t.Fatalf("player state not reset: %+v", pl)
	}
	if len(events) != 1 || events[0].Kind != EventGameRestarted {
		t.Fatalf("events = %+v", events)
	}
}
