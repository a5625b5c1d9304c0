package kvclient

import (
	"net/http"
	"testing"
	"time"
)

func TestSessionValidity(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	session := NewSession("tok", base.Add(30*time.Minute)).WithClock(func() time.Time { return clock })

	if !session.Valid() {
		t.Fatal("fresh token must be valid")
	}
	clock = base.Add(31 * time.Minute)
	if session.Valid() {
		t.Fatal("expired token must be invalid")
	}
}

func TestSessionRefreshDue(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	session := NewSession("tok", base.Add(10*time.Minute)).WithClock(func() time.Time { return clock })

	if session.RefreshDue() {
		t.Fatal("refresh must not be due with 10 minutes left")
	}
	clock = base.Add(9*time.Minute + 30*time.Second)
	if !session.RefreshDue() {
		t.Fatal("refresh must be due inside the margin")
	}

	session.SetToken("tok2", clock.Add(10*time.Minute))
	if session.RefreshDue() {
		t.Fatal("refresh must not be due after SetToken")
	}
}

func TestSessionApply(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "http://example.test", nil)
	NewSession("tok", time.Time{}).Apply(req)
	if got := req.Header.Get("Authorization"); got != "Bearer tok" {
		t.Fatalf("authorization: got %q", got)
	}

	req2, _ := http.NewRequest(http.MethodGet, "http://example.test", nil)
	NewSession("", time.Time{}).Apply(req2)
	if got := req2.Header.Get("Authorization"); got != "" {
		t.Fatalf("empty session must not set a header, got %q", got)
	}
}

func TestSessionZeroExpiryNeverRefreshes(t *testing.T) {
	session := NewSession("tok", time.Time{})
	if !session.Valid() {
		t.Fatal("token without expiry must stay valid")
	}
	if session.RefreshDue() {
		t.Fatal("token without expiry never needs a refresh")
	}
}
