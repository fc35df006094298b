package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"suitclash/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// voiceService is configured once at module load from environment values.
var voiceService *app.VoiceService

// VoiceTokenRequest asks for a signed token for a voice login or a
// table channel join.
type VoiceTokenRequest struct {
	Action  string `json:"action"`
	Channel string `json:"channel,omitempty"`
}

// VoiceTokenResponse carries the signed token back to the client.
type VoiceTokenResponse struct {
	Token string `json:"token"`
}

// RpcGetVoiceToken issues a voice token for the calling user.
func RpcGetVoiceToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user id not found in context")
	}

	var request VoiceTokenRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &request); err != nil {
			return "", fmt.Errorf("invalid voice token request: %w", err)
		}
	}
	if request.Action == "" {
		request.Action = app.VoiceTokenActionLogin
	}

	token, err := voiceService.GenerateToken(userID, request.Action, request.Channel)
	if err != nil {
		logger.Error("RpcGetVoiceToken [User:%s]: Failed to generate token: %v", userID, err)
		return "", err
	}

	b, err := json.Marshal(VoiceTokenResponse{Token: token})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
