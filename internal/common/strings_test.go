package common

import "testing"

func TestHasAny(t *testing.T) {
	if !HasAny("dial tcp: connection refused", "connection refused", "no such host") {
		t.Fatal("expected match")
	}
	if HasAny("all good", "connection refused", "no such host") {
		t.Fatal("unexpected match")
	}
	if HasAny("anything") {
		t.Fatal("no substrings should never match")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "second", "third"); got != "second" {
		t.Fatalf("got %q", got)
	}
	if got := FirstNonEmpty("", ""); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := FirstNonEmpty(); got != "" {
		t.Fatalf("got %q", got)
	}
}
