package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcListHighScores is the RPC id for reading the finished-game leaderboard.
	RpcListHighScores = "list_high_scores"

	// RpcVoiceToken is the RPC id for signed voice chat access tokens.
	RpcVoiceToken = "generate_voice_token"

	// MatchNameCrew is the authoritative match handler name registered with Nakama.
	MatchNameCrew = "crew_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame            int64 = 1
	OpTakeTask             int64 = 2
	OpReturnTask           int64 = 3
	OpFinishTaskAllocation int64 = 4
	OpPlayCard             int64 = 5
	OpFinishTrick          int64 = 6
	OpCommunicate          int64 = 7
	OpRestartGame          int64 = 8
	OpEmoji                int64 = 9
	OpKickPlayer           int64 = 10

	// Server -> Client events
	OpPlayerJoined   int64 = 101
	OpPlayerLeft     int64 = 102
	OpHostChanged    int64 = 103
	OpGameStarted    int64 = 104
	OpHandDealt      int64 = 105 // send privately
	OpTaskTaken      int64 = 106
	OpTaskReturned   int64 = 107
	OpTasksAllocated int64 = 108
	OpCardPlayed     int64 = 109
	OpTrickCompleted int64 = 110
	OpTrickFinished  int64 = 111
	OpCommunicated   int64 = 112
	OpGameEnded      int64 = 113
	OpGameRestarted  int64 = 114
	OpRoomClosed     int64 = 115
	OpEmojiRelayed   int64 = 116
)
