package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// VoiceService issues Vivox access tokens for table voice channels.
type VoiceService struct {
	voiceSecret string
	voiceIssuer string
	voiceDomain string
}

const (
	VoiceTokenActionLogin = "login"
	VoiceTokenActionJoin  = "join"
)

func NewVoiceService(secret, issuer, domain string) *VoiceService {
	return &VoiceService{
		voiceSecret: secret,
		voiceIssuer: issuer,
		voiceDomain: domain,
	}
}

// GenerateToken signs a short-lived token for a voice login or a table
// channel join.
func (s *VoiceService) GenerateToken(user, action, channelName string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("voice service is nil")
	}
	if user == "" {
		return "", fmt.Errorf("user is required")
	}
	if s.voiceSecret == "" || s.voiceIssuer == "" || s.voiceDomain == "" {
		return "", fmt.Errorf("voice config is incomplete")
	}

	userURI := s.userURI(user)
	targetURI, err := s.targetURI(action, channelName, userURI)
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"iss": s.voiceIssuer,
		"sub": user,
		"exp": time.Now().Add(time.Hour * 1).Unix(),
		"vxa": action,
		"vxi": fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Int63()),
		"f":   userURI,
		"t":   targetURI,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.voiceSecret))
}

func (s *VoiceService) userURI(user string) string {
	return "sip:." + s.voiceIssuer + "." + user + ".@" + s.voiceDomain
}

func (s *VoiceService) channelURI(channelName string) string {
	return "sip:confctl-g-" + channelName + "@" + s.voiceDomain
}

func (s *VoiceService) targetURI(action, channelName, userURI string) (string, error) {
	switch action {
	case VoiceTokenActionLogin:
		return userURI, nil
	case VoiceTokenActionJoin:
		if channelName == "" {
			return "", fmt.Errorf("channel name is required for join tokens")
		}
		return s.channelURI(channelName), nil
	default:
		return "", fmt.Errorf("unsupported voice action: %s", action)
	}
}
