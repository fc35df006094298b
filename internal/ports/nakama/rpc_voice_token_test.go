package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"suitclash/internal/app"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/runtime"
)

func TestRpcGetVoiceToken_GeneratesValidClaims(t *testing.T) {
	t.Cleanup(func() { voiceService = nil })

	voiceService = app.NewVoiceService("test-secret", "issuer", "example.com")

	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")
	payload := `{"action":"login"}`

	// 1. Generate Token 1
	raw1, err := RpcGetVoiceToken(ctx, noopLogger{}, nil, nil, payload)
	if err != nil {
		t.Fatalf("RpcGetVoiceToken error: %v", err)
	}
	token1 := parseToken(t, raw1)

	// 2. Generate Token 2 (to check uniqueness)
	raw2, err := RpcGetVoiceToken(ctx, noopLogger{}, nil, nil, payload)
	if err != nil {
		t.Fatalf("RpcGetVoiceToken error: %v", err)
	}
	token2 := parseToken(t, raw2)

	// 3. Validate Claims
	claims1 := parseVoiceClaims(t, token1, "test-secret")
	claims2 := parseVoiceClaims(t, token2, "test-secret")

	// Standard Claims
	assertClaim(t, claims1, "iss", "issuer")
	assertClaim(t, claims1, "sub", "user123")
	assertClaim(t, claims1, "vxa", app.VoiceTokenActionLogin)
	assertClaim(t, claims1, "f", "sip:.issuer.user123.@example.com")

	// Check VXI uniqueness (Nonce)
	vxi1, ok1 := claims1["vxi"]
	vxi2, ok2 := claims2["vxi"]
	if !ok1 || !ok2 {
		t.Fatal("vxi claim missing")
	}
	if vxi1 == vxi2 {
		t.Errorf("vxi claim must be unique per token. Got %v for both.", vxi1)
	}
}

func TestRpcGetVoiceToken_JoinTargetsChannel(t *testing.T) {
	t.Cleanup(func() { voiceService = nil })

	voiceService = app.NewVoiceService("test-secret", "issuer", "example.com")

	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")
	payload := `{"action":"join","channel":"table-42"}`

	raw, err := RpcGetVoiceToken(ctx, noopLogger{}, nil, nil, payload)
	if err != nil {
		t.Fatalf("RpcGetVoiceToken error: %v", err)
	}
	claims := parseVoiceClaims(t, parseToken(t, raw), "test-secret")

	assertClaim(t, claims, "vxa", app.VoiceTokenActionJoin)
	assertClaim(t, claims, "t", "sip:confctl-g-table-42@example.com")
}

func TestRpcGetVoiceToken_RequiresUser(t *testing.T) {
	t.Cleanup(func() { voiceService = nil })

	voiceService = app.NewVoiceService("test-secret", "issuer", "example.com")

	if _, err := RpcGetVoiceToken(context.Background(), noopLogger{}, nil, nil, `{"action":"login"}`); err == nil {
		t.Fatal("expected error without a user id in context")
	}
}

func parseToken(t *testing.T, jsonRaw string) string {
	var resp VoiceTokenResponse
	if err := json.Unmarshal([]byte(jsonRaw), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token in response")
	}
	return resp.Token
}

func parseVoiceClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
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
