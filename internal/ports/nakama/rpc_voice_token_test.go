package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"thecrew/internal/app"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/runtime"
)

func TestRpcGetVoiceTokenGeneratesValidClaims(t *testing.T) {
	t.Cleanup(func() { voiceService = nil })
	voiceService = app.NewVoiceService("test-secret", "issuer", "voice.test")

	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")
	payload := `{"action":"login"}`

	raw1, err := RpcGetVoiceToken(ctx, noopLogger{}, nil, nil, payload)
	if err != nil {
		t.Fatalf("RpcGetVoiceToken: %v", err)
	}
	raw2, err := RpcGetVoiceToken(ctx, noopLogger{}, nil, nil, payload)
	if err != nil {
		t.Fatalf("RpcGetVoiceToken: %v", err)
	}

	claims1 := voiceClaims(t, tokenFromResponse(t, raw1), "test-secret")
	claims2 := voiceClaims(t, tokenFromResponse(t, raw2), "test-secret")

	assertClaim(t, claims1, "iss", "issuer")
	assertClaim(t, claims1, "sub", "user123")
	assertClaim(t, claims1, "vxa", app.VoiceActionLogin)
	assertClaim(t, claims1, "f", "sip:.issuer.user123.@voice.test")

	// vxi is the token nonce and must differ between mints.
	vxi1, ok1 := claims1["vxi"]
	vxi2, ok2 := claims2["vxi"]
	if !ok1 || !ok2 {
		t.Fatal("vxi claim missing")
	}
	if vxi1 == vxi2 {
		t.Errorf("vxi claim must be unique per token, got %v for both", vxi1)
	}
}

func TestRpcGetVoiceTokenRequiresUser(t *testing.T) {
	t.Cleanup(func() { voiceService = nil })
	voiceService = app.NewVoiceService("test-secret", "issuer", "voice.test")

	if _, err := RpcGetVoiceToken(context.Background(), noopLogger{}, nil, nil, `{"action":"login"}`); err == nil {
		t.Fatal("expected error without an authenticated user")
	}
}

func TestRpcGetVoiceTokenRequiresConfiguration(t *testing.T) {
	voiceService = nil

	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")
	if _, err := RpcGetVoiceToken(ctx, noopLogger{}, nil, nil, `{"action":"login"}`); err == nil {
		t.Fatal("expected error when the voice service is not configured")
	}
}

func TestConfigureVoiceServiceFromEnv(t *testing.T) {
	t.Cleanup(func() { voiceService = nil })

	env := map[string]string{
		"vivox_issuer": "issuer",
		"vivox_secret": "test-secret",
		"vivox_domain": "voice.test",
	}
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_ENV, env)
	configureVoiceService(ctx, noopLogger{})
	if voiceService == nil {
		t.Fatal("expected voice service to be configured from env")
	}

	voiceService = nil
	configureVoiceService(context.Background(), noopLogger{})
	if voiceService != nil {
		t.Fatal("incomplete env must leave the voice RPC disabled")
	}
}

func tokenFromResponse(t *testing.T, raw string) string {
	t.Helper()
	var resp voiceTokenResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token in response")
	}
	return resp.Token
}

func voiceClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}

func assertClaim(t *testing.T, claims jwt.MapClaims, key, expected string) {
	t.Helper()
	val, ok := claims[key]
	if !ok {
		t.Errorf("missing claim: %s", key)
		return
	}
	str, ok := val.(string)
	if !ok {
		t.Errorf("claim %s is not a string: %v", key, val)
		return
	}
	if str != expected {
		t.Errorf("claim %s = %s, want %s", key, str, expected)
	}
}
