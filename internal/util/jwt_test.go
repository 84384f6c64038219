package util

import (
	"strings"
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := SignSessionToken("secret", "session-123", time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	claims, err := ParseSessionToken("secret", token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.SessionID != "session-123" {
		t.Errorf("session id: want session-123, got %s", claims.SessionID)
	}
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	token, _ := SignSessionToken("secret", "sid", time.Hour)
	if _, err := ParseSessionToken("other-secret", token); err == nil {
		t.Error("token signed with a different secret should not parse")
	}
}

func TestParseSessionTokenTampered(t *testing.T) {
	token, _ := SignSessionToken("secret", "sid", time.Hour)

	// flip a character in the payload segment
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := ParseSessionToken("secret", tampered); err == nil {
		t.Error("tampered token should not parse")
	}
}

func TestParseSessionTokenGarbage(t *testing.T) {
	if _, err := ParseSessionToken("secret", "not-a-token"); err == nil {
		t.Error("garbage should not parse")
	}
}
