package nakama

import (
	"context"
	"database/sql"

	"thecrew/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, hooks and the match handler for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	configureVoiceService(ctx, logger)

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameCrew, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(), nil
	}); err != nil {
		return err
	}

	logger.Info("Crew Go module loaded.")
	return nil
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcListHighScores, rpcListHighScores); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcVoiceToken, RpcGetVoiceToken)
}

// configureVoiceService builds the voice token signer from runtime env.
// Running before any RPC registration keeps the package var write-free at
// request time.
func configureVoiceService(ctx context.Context, logger runtime.Logger) {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	issuer := env["vivox_issuer"]
	secret := env["vivox_secret"]
	domain := env["vivox_domain"]
	if issuer == "" || secret == "" || domain == "" {
		logger.Warn("Voice credentials missing from env, voice token RPC disabled.")
		return
	}
	voiceService = app.NewVoiceService(secret, issuer, domain)
}
