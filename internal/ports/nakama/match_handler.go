package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"thecrew/internal/app"
	"thecrew/internal/config"
	"thecrew/internal/domain"
	"thecrew/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const tickRate = 1 // ticks per second

// matchLabel is indexed by Nakama for match listing queries.
type matchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Presences map[string]runtime.Presence // user id -> presence for targeted messaging
	App       *app.Service
	Game      *domain.Game
	Tick      int64

	// LastActivityTick drives the idle room shutdown.
	LastActivityTick int64
	// ReconnectDeadlines maps a disconnected player to the tick their seat is released.
	ReconnectDeadlines map[string]int64
	// Kicked bars host-removed users from rejoining this room.
	Kicked map[string]bool

	HighScores ports.HighScorePort
}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		Presences:          make(map[string]runtime.Presence),
		App:                app.NewService(nil),
		Game:               domain.NewGame(),
		Tick:               time.Now().Unix(),
		LastActivityTick:   0,
		ReconnectDeadlines: make(map[string]int64),
		Kicked:             make(map[string]bool),
		HighScores:         NewNakamaHighScoreAdapter(nk),
	}

	label, err := marshalLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.Kicked[presence.GetUserId()] {
		return matchState, false, "removed by host"
	}

	// Known players may always come back; their seat is held through the
	// reconnect grace window.
	if _, seated := matchState.Game.Players[presence.GetUserId()]; seated {
		return matchState, true, ""
	}
	if matchState.Game.GameStarted {
		return matchState, false, "game in progress"
	}
	if len(matchState.Game.Players) >= app.MaxPlayers {
		return matchState, false, "match full"
	}
	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p
		delete(matchState.ReconnectDeadlines, userID)

		events, err := matchState.App.Join(matchState.Game, userID, p.GetUsername())
		if err != nil {
			logger.Warn("MatchJoin: user %s could not be seated: %v", userID, err)
			continue
		}
		for _, ev := range events {
			mh.broadcastEvent(matchState, dispatcher, logger, ev)
		}
	}

	matchState.LastActivityTick = tick
	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match. Mid-game
// leavers keep their seat until the reconnect grace window runs out.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		events, err := matchState.App.Leave(matchState.Game, userID)
		if err != nil {
			logger.Warn("MatchLeave: user %s not seated: %v", userID, err)
			continue
		}
		if matchState.Game.GameStarted {
			grace := int64(config.GetReconnectGraceSeconds()) * tickRate
			if matchState.Kicked[userID] {
				// No way back for a kicked player, so no window to wait out.
				grace = 0
			}
			matchState.ReconnectDeadlines[userID] = tick + grace
			logger.Debug("MatchLeave: user %s disconnected, seat held until tick %d", userID, matchState.ReconnectDeadlines[userID])
		}
		for _, ev := range events {
			mh.broadcastEvent(matchState, dispatcher, logger, ev)
		}
	}

	if len(matchState.Presences) == 0 && !matchState.Game.GameStarted {
		logger.Info("MatchLeave: Terminating empty lobby.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick
	if matchState.LastActivityTick == 0 {
		matchState.LastActivityTick = tick
	}

	for _, msg := range messages {
		matchState.LastActivityTick = tick
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpTakeTask:
			mh.handleTakeTask(matchState, dispatcher, logger, msg)
		case OpReturnTask:
			mh.handleReturnTask(matchState, dispatcher, logger, msg)
		case OpFinishTaskAllocation:
			mh.handleFinishTaskAllocation(matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(matchState, dispatcher, logger, msg)
		case OpFinishTrick:
			mh.handleFinishTrick(ctx, matchState, dispatcher, logger, msg)
		case OpCommunicate:
			mh.handleCommunicate(matchState, dispatcher, logger, msg)
		case OpRestartGame:
			mh.handleRestartGame(matchState, dispatcher, logger, msg)
		case OpEmoji:
			mh.handleEmoji(matchState, dispatcher, logger, msg)
		case OpKickPlayer:
			mh.handleKickPlayer(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode %d from %s", msg.GetOpCode(), msg.GetUserId())
			mh.kickSender(matchState, dispatcher, logger, msg.GetUserId())
		}
	}

	// A cooperative game cannot continue short-handed: once a reconnect
	// window runs out the room closes.
	if expired := mh.expireReconnectDeadlines(matchState, logger); expired {
		logger.Info("MatchLoop: Reconnect window expired, closing room.")
		mh.sendRoomClosed(matchState, dispatcher, logger, "player abandoned")
		return nil
	}

	idleLimit := int64(config.GetInactivityTimeoutMinutes()) * 60 * tickRate
	if tick-matchState.LastActivityTick >= idleLimit {
		logger.Info("MatchLoop: Room idle for %d ticks, closing.", tick-matchState.LastActivityTick)
		mh.sendRoomClosed(matchState, dispatcher, logger, "inactivity")
		return nil
	}

	return matchState
}

// expireReconnectDeadlines drops seats whose grace window has passed.
func (mh *matchHandler) expireReconnectDeadlines(state *MatchState, logger runtime.Logger) bool {
	expired := false
	for userID, deadline := range state.ReconnectDeadlines {
		if state.Tick < deadline {
			continue
		}
		delete(state.ReconnectDeadlines, userID)
		expired = true
		logger.Info("Reconnect window expired for %s", userID)
	}
	return expired
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request startGameRequest
	if len(msg.GetData()) > 0 {
		if err := json.Unmarshal(msg.GetData(), &request); err != nil {
			logger.Warn("StartGame: Malformed request from %s: %v", senderID, err)
			mh.kickSender(state, dispatcher, logger, senderID)
			return
		}
	} else {
		// A bare start request plays the standard card-task game.
		request.IncludeTasks = true
	}

	if !request.IncludeTasks {
		request.PlainTasks = 0
		request.OrderedTasks = 0
		request.SequencedTasks = 0
		request.LastTask = false
	} else if request.PlainTasks == 0 && request.OrderedTasks == 0 && request.SequencedTasks == 0 && !request.LastTask {
		request.PlainTasks = config.GetDefaultPlainTasks()
	}
	if request.TargetDifficulty < 0 {
		request.TargetDifficulty = 0
	}
	if request.Expansion && request.TargetDifficulty == 0 {
		request.TargetDifficulty = config.GetDefaultTargetDifficulty()
	}

	setup := app.GameSetup{
		Tasks: domain.TaskSetup{
			PlainTasks:     request.PlainTasks,
			OrderedTasks:   request.OrderedTasks,
			SequencedTasks: request.SequencedTasks,
			LastTask:       request.LastTask,
		},
		TargetDifficulty: request.TargetDifficulty,
	}

	events, err := state.App.StartGame(state.Game, senderID, setup)
	if err != nil {
		logger.Warn("StartGame: Rejected for %s: %v", senderID, err)
		return
	}

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	logger.Info("StartGame: Game started with %d players.", len(state.Game.PlayerOrder))
}

func (mh *matchHandler) handleTakeTask(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request taskRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("TakeTask: Malformed request from %s: %v", senderID, err)
		mh.kickSender(state, dispatcher, logger, senderID)
		return
	}

	var events []app.Event
	var err error
	if request.DefID != "" {
		events, err = state.App.TakeExpansionTask(state.Game, senderID, request.DefID)
	} else {
		var task domain.Task
		task, err = taskFromRequest(request)
		if err != nil {
			logger.Warn("TakeTask: Malformed task from %s: %v", senderID, err)
			mh.kickSender(state, dispatcher, logger, senderID)
			return
		}
		events, err = state.App.TakeTask(state.Game, senderID, task)
	}
	if err != nil {
		logger.Warn("TakeTask: Rejected for %s: %v", senderID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleReturnTask(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request taskRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("ReturnTask: Malformed request from %s: %v", senderID, err)
		mh.kickSender(state, dispatcher, logger, senderID)
		return
	}

	var events []app.Event
	var err error
	if request.DefID != "" {
		events, err = state.App.ReturnExpansionTask(state.Game, senderID, request.DefID)
	} else {
		var task domain.Task
		task, err = taskFromRequest(request)
		if err != nil {
			logger.Warn("ReturnTask: Malformed task from %s: %v", senderID, err)
			mh.kickSender(state, dispatcher, logger, senderID)
			return
		}
		events, err = state.App.ReturnTask(state.Game, senderID, task)
	}
	if err != nil {
		logger.Warn("ReturnTask: Rejected for %s: %v", senderID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleFinishTaskAllocation(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	events, err := state.App.FinishTaskAllocation(state.Game, senderID)
	if err != nil {
		logger.Warn("FinishTaskAllocation: Rejected for %s: %v", senderID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handlePlayCard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request playCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("PlayCard: Malformed request from %s: %v", senderID, err)
		mh.kickSender(state, dispatcher, logger, senderID)
		return
	}
	card, err := cardFromWire(request.Card)
	if err != nil {
		logger.Warn("PlayCard: Invalid card from %s: %v", senderID, err)
		mh.kickSender(state, dispatcher, logger, senderID)
		return
	}

	events, err := state.App.PlayCard(state.Game, senderID, card)
	if err != nil {
		logger.Warn("PlayCard: Rejected for %s: %v", senderID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleFinishTrick(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	events, err := state.App.FinishTrick(state.Game, senderID)
	if err != nil {
		logger.Warn("FinishTrick: Rejected for %s: %v", senderID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}

	if state.Game.GameFinished {
		mh.updateLabel(state, dispatcher, logger)
		if state.Game.GameSucceeded && state.HighScores != nil {
			summary := app.BuildSummary(state.Game)
			score := ports.HighScore{
				Players:     summary.Players,
				Difficulty:  summary.Difficulty,
				RestartUsed: summary.RestartUsed,
				CreatedAt:   summary.CreatedAt,
			}
			for _, task := range summary.Tasks {
				score.Tasks = append(score.Tasks, ports.TaskRecord(task))
			}
			if err := state.HighScores.Add(ctx, score); err != nil {
				logger.Error("FinishTrick: Failed to store high score: %v", err)
			}
		}
	}
}

func (mh *matchHandler) handleCommunicate(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request communicateRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("Communicate: Malformed request from %s: %v", senderID, err)
		mh.kickSender(state, dispatcher, logger, senderID)
		return
	}
	card, err := cardFromWire(request.Card)
	if err != nil {
		logger.Warn("Communicate: Invalid card from %s: %v", senderID, err)
		mh.kickSender(state, dispatcher, logger, senderID)
		return
	}

	events, err := state.App.Communicate(state.Game, senderID, card, domain.CommunicationRank(request.Rank))
	if err != nil {
		logger.Warn("Communicate: Rejected for %s: %v", senderID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleRestartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	fresh, events, err := state.App.RestartGame(state.Game, senderID)
	if err != nil {
		logger.Warn("RestartGame: Rejected for %s: %v", senderID, err)
		return
	}

	state.Game = fresh
	state.ReconnectDeadlines = make(map[string]int64)
	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	logger.Info("RestartGame: Fresh game requested by %s.", senderID)
}

// handleEmoji relays a player's emoji to the whole room with their name.
func (mh *matchHandler) handleEmoji(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request emojiRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil || request.Emoji == "" {
		logger.Warn("Emoji: Malformed request from %s", senderID)
		mh.kickSender(state, dispatcher, logger, senderID)
		return
	}

	pl, ok := state.Game.Players[senderID]
	if !ok {
		return
	}

	data, err := json.Marshal(emojiEvent{SessionID: senderID, DisplayName: pl.DisplayName, Emoji: request.Emoji})
	if err != nil {
		logger.Error("Emoji: Failed to marshal event: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpEmojiRelayed, data, nil, nil, true); err != nil {
		logger.Error("Emoji: Failed to broadcast: %v", err)
	}
}

// handleKickPlayer lets the host force a seated player out of the room.
// The MatchLeave callback does the seat bookkeeping.
func (mh *matchHandler) handleKickPlayer(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request kickRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("KickPlayer: Malformed request from %s: %v", senderID, err)
		mh.kickSender(state, dispatcher, logger, senderID)
		return
	}

	sender, ok := state.Game.Players[senderID]
	if !ok || !sender.IsHost || request.SessionID == senderID {
		logger.Warn("KickPlayer: Rejected for %s", senderID)
		return
	}
	target, ok := state.Presences[request.SessionID]
	if !ok {
		logger.Warn("KickPlayer: Target %s not connected", request.SessionID)
		return
	}

	state.Kicked[request.SessionID] = true
	if err := dispatcher.MatchKick([]runtime.Presence{target}); err != nil {
		logger.Error("KickPlayer: Failed to kick %s: %v", request.SessionID, err)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := opCodeForEvent(ev.Kind)
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	data, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected, we MUST NOT
		// broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("Failed to broadcast event %v: %v", ev.Kind, err)
	}
}

func opCodeForEvent(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventPlayerJoined:
		return OpPlayerJoined, true
	case app.EventPlayerLeft:
		return OpPlayerLeft, true
	case app.EventHostChanged:
		return OpHostChanged, true
	case app.EventGameStarted:
		return OpGameStarted, true
	case app.EventHandDealt:
		return OpHandDealt, true
	case app.EventTaskTaken:
		return OpTaskTaken, true
	case app.EventTaskReturned:
		return OpTaskReturned, true
	case app.EventTasksAllocated:
		return OpTasksAllocated, true
	case app.EventCardPlayed:
		return OpCardPlayed, true
	case app.EventTrickCompleted:
		return OpTrickCompleted, true
	case app.EventTrickFinished:
		return OpTrickFinished, true
	case app.EventCommunicated:
		return OpCommunicated, true
	case app.EventGameEnded:
		return OpGameEnded, true
	case app.EventGameRestarted:
		return OpGameRestarted, true
	default:
		return 0, false
	}
}

// kickSender removes a client that sent an unparseable payload.
func (mh *matchHandler) kickSender(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	if err := dispatcher.MatchKick([]runtime.Presence{presence}); err != nil {
		logger.Error("Failed to kick %s: %v", userID, err)
	}
}

func (mh *matchHandler) sendRoomClosed(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, reason string) {
	data, err := json.Marshal(roomClosedEvent{Reason: reason})
	if err != nil {
		logger.Error("Failed to marshal room closed event: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpRoomClosed, data, nil, nil, true); err != nil {
		logger.Error("Failed to broadcast room closed: %v", err)
	}
}

func taskFromRequest(request taskRequest) (domain.Task, error) {
	card, err := cardFromWire(request.Card)
	if err != nil {
		return domain.Task{}, err
	}
	category := domain.TaskCategory(request.Category)
	switch category {
	case domain.TaskPlain, domain.TaskOrdered, domain.TaskSequence, domain.TaskMustBeLast:
	default:
		return domain.Task{}, errInvalidTaskCategory
	}
	return domain.Task{Card: card, Category: category, SequenceIndex: request.SequenceIndex}, nil
}

func marshalLabel(state *MatchState) (string, error) {
	phase := "lobby"
	if state.Game.GameStarted && !state.Game.GameFinished {
		phase = "playing"
	}
	label := matchLabel{
		Open:  app.MaxPlayers - len(state.Game.Players),
		Game:  "thecrew",
		Phase: phase,
	}
	data, err := json.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := marshalLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
