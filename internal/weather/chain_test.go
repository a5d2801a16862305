package weather

import (
	"context"
	"testing"

	"github.com/parkscope/parkscope/internal/upstream"
)

type stubProvider struct {
	name    string
	reading Reading
	err     *upstream.Error
	calls   int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Current(ctx context.Context, q Query) (Reading, *upstream.Error) {
	s.calls++
	if s.err != nil {
		return Reading{}, s.err
	}
	return s.reading, nil
}

func TestChainPrimarySucceeds(t *testing.T) {
	temp := 21.5
	primary := &stubProvider{name: "OpenWeather", reading: Reading{Current: Current{Temperature: &temp}}}
	secondary := &stubProvider{name: "Open-Meteo"}

	chain := NewChain(primary, secondary)
	reading, cerr := chain.Current(context.Background(), Query{Latitude: 37.8, Longitude: -119.5})
	if cerr != nil {
		t.Fatalf("unexpected error: %v", cerr)
	}
	if reading.Source.Provider != "OpenWeather" || reading.Source.Fallback {
		t.Fatalf("source = %+v, want primary with no fallback", reading.Source)
	}
	if reading.Source.FallbackReason != "" {
		t.Fatalf("fallbackReason = %q, want empty", reading.Source.FallbackReason)
	}
	if secondary.calls != 0 {
		t.Fatalf("secondary called %d times, want 0", secondary.calls)
	}
}

// TestChainFallsBackOnAnyFailure verifies the chain advances regardless
// of the failure kind, including a missing credential.
func TestChainFallsBackOnAnyFailure(t *testing.T) {
	kinds := []*upstream.Error{
		upstream.MissingAPIKey("OpenWeather"),
		{Kind: upstream.KindTimeout, Message: "Request timed out"},
		{Kind: upstream.KindHTTP, Message: "HTTP 500 error", StatusCode: 500},
		{Kind: upstream.KindParse, Message: "Failed to parse API response"},
	}

	for _, primaryErr := range kinds {
		primary := &stubProvider{name: "OpenWeather", err: primaryErr}
		secondary := &stubProvider{name: "Open-Meteo", reading: Reading{}}

		chain := NewChain(primary, secondary)
		reading, cerr := chain.Current(context.Background(), Query{})
		if cerr != nil {
			t.Fatalf("kind %s: unexpected error: %v", primaryErr.Kind, cerr)
		}
		if !reading.Source.Fallback {
			t.Fatalf("kind %s: fallback not flagged", primaryErr.Kind)
		}
		if reading.Source.Provider != "Open-Meteo" {
			t.Fatalf("kind %s: provider = %q", primaryErr.Kind, reading.Source.Provider)
		}
		if reading.Source.FallbackReason != "OpenWeather unavailable" {
			t.Fatalf("kind %s: fallbackReason = %q", primaryErr.Kind, reading.Source.FallbackReason)
		}
	}
}

// TestChainAllFail verifies the last provider's classified error surfaces
// when every provider fails.
func TestChainAllFail(t *testing.T) {
	primary := &stubProvider{name: "OpenWeather", err: &upstream.Error{Kind: upstream.KindTimeout, Message: "Request timed out"}}
	secondary := &stubProvider{name: "Open-Meteo", err: &upstream.Error{Kind: upstream.KindHTTP, Message: "HTTP 502 error", StatusCode: 502}}

	chain := NewChain(primary, secondary)
	_, cerr := chain.Current(context.Background(), Query{})
	if cerr == nil {
		t.Fatal("expected error")
	}
	if cerr.Kind != upstream.KindHTTP || cerr.StatusCode != 502 {
		t.Fatalf("error = %v, want the secondary provider's failure", cerr)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("calls = %d/%d, want one each", primary.calls, secondary.calls)
	}
}

func TestChainEmpty(t *testing.T) {
	chain := NewChain()
	_, cerr := chain.Current(context.Background(), Query{})
	if cerr == nil || cerr.Kind != upstream.KindUnknown {
		t.Fatalf("error = %v, want unknown_error", cerr)
	}
}
