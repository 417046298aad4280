package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"thecrew/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// voiceService is built once in InitModule, before any RPC can run.
// Handlers only ever read it; Nakama serves RPCs concurrently.
var voiceService *app.VoiceService

type voiceTokenRequest struct {
	Action  string `json:"action"`
	Channel string `json:"channel"`
}

type voiceTokenResponse struct {
	Token string `json:"token"`
}

// RpcGetVoiceToken signs a voice chat access token for the calling user.
// Payload: {"action": "login" | "join", "channel": "..."}
func RpcGetVoiceToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("user required", 16) // UNAUTHENTICATED
	}

	var req voiceTokenRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
	}

	if voiceService == nil {
		return "", runtime.NewError("voice chat not configured", 9) // FAILED_PRECONDITION
	}

	token, err := voiceService.GenerateToken(userID, req.Action, req.Channel)
	if err != nil {
		logger.Error("Failed to generate voice token: %v", err)
		return "", runtime.NewError("internal error", 13) // INTERNAL
	}

	b, _ := json.Marshal(voiceTokenResponse{Token: token})
	return string(b), nil
}
