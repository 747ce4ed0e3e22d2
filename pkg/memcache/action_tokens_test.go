package mem

import (
	"testing"
	"time"
)

func TestActionTokens_SingleUse(t *testing.T) {
	s := NewActionTokens()
	s.Set("tok", "user@menfem.test", time.Minute)

	if got := s.Consume("tok"); got != "user@menfem.test" {
		t.Fatalf("Consume = %q, want subject", got)
	}
	if got := s.Consume("tok"); got != "" {
		t.Fatalf("second Consume = %q, want empty", got)
	}
}

func TestActionTokens_PeekDoesNotConsume(t *testing.T) {
	s := NewActionTokens()
	s.Set("tok", "subject", time.Minute)

	if v, ok := s.Peek("tok"); !ok || v != "subject" {
		t.Fatalf("Peek = %q %v", v, ok)
	}
	if got := s.Consume("tok"); got != "subject" {
		t.Fatal("Peek consumed the token")
	}
}

func TestActionTokens_Expiry(t *testing.T) {
	s := NewActionTokens()
	s.Set("tok", "subject", 10*time.Millisecond)

	time.Sleep(25 * time.Millisecond)
	if got := s.Consume("tok"); got != "" {
		t.Fatalf("expired token still consumed: %q", got)
	}
}

func TestActionTokens_UnknownToken(t *testing.T) {
	s := NewActionTokens()
	if got := s.Consume("never-issued"); got != "" {
		t.Fatalf("unknown token yielded %q", got)
	}
}
