package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/parkscope/parkscope/internal/upstream"
)

type countingTransport struct {
	calls int32
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	atomic.AddInt32(&c.calls, 1)
	return http.DefaultTransport.RoundTrip(r)
}

func TestOpenWeatherMissingKeyNoCall(t *testing.T) {
	transport := &countingTransport{}
	client := upstream.New("openweather", "http://never.invalid", &http.Client{Transport: transport})

	p := NewOpenWeather(client, "")
	_, cerr := p.Current(context.Background(), Query{Latitude: 1, Longitude: 2, Units: UnitsMetric})
	if cerr == nil || cerr.Kind != upstream.KindMissingAPIKey {
		t.Fatalf("error = %v, want missing_api_key", cerr)
	}
	if atomic.LoadInt32(&transport.calls) != 0 {
		t.Fatalf("transport called %d times, want 0", transport.calls)
	}
}

const openWeatherFixture = `{
	"dt": 1723480800,
	"main": {"temp": 18.4, "feels_like": 17.9, "humidity": 62, "pressure": 1016},
	"weather": [{"main": "Clouds", "description": "scattered clouds"}],
	"wind": {"speed": 3.1, "deg": 240}
}`

// TestOpenWeatherNormalizationDeterministic verifies the same payload
// always normalizes to the same canonical bytes.
func TestOpenWeatherNormalizationDeterministic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") != "k" {
			t.Errorf("appid = %q", r.URL.Query().Get("appid"))
		}
		w.Write([]byte(openWeatherFixture))
	}))
	defer srv.Close()

	client := upstream.New("openweather", srv.URL, srv.Client(), upstream.WithoutRetry())
	p := NewOpenWeather(client, "k")
	q := Query{Latitude: 37.8651, Longitude: -119.5383, Units: UnitsMetric}

	first, cerr := p.Current(context.Background(), q)
	if cerr != nil {
		t.Fatalf("unexpected error: %v", cerr)
	}
	second, cerr := p.Current(context.Background(), q)
	if cerr != nil {
		t.Fatalf("unexpected error: %v", cerr)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("normalization not deterministic:\n%s\n%s", a, b)
	}

	if first.Current.Temperature == nil || *first.Current.Temperature != 18.4 {
		t.Fatalf("temperature = %v", first.Current.Temperature)
	}
	if first.Current.Timestamp == nil {
		t.Fatal("timestamp missing")
	}
	if _, err := time.Parse(time.RFC3339, *first.Current.Timestamp); err != nil {
		t.Fatalf("timestamp %q not RFC 3339: %v", *first.Current.Timestamp, err)
	}
	if first.Units.Temperature != "C" || first.Units.WindSpeed != "m/s" {
		t.Fatalf("units = %+v, want metric labels", first.Units)
	}
}

// TestOpenWeatherAbsentFieldsMarshalNull verifies optional fields the
// provider omitted appear as explicit nulls in the canonical shape.
func TestOpenWeatherAbsentFieldsMarshalNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"main": {"temp": 5.0}}`))
	}))
	defer srv.Close()

	client := upstream.New("openweather", srv.URL, srv.Client(), upstream.WithoutRetry())
	p := NewOpenWeather(client, "k")
	reading, cerr := p.Current(context.Background(), Query{Units: UnitsImperial})
	if cerr != nil {
		t.Fatalf("unexpected error: %v", cerr)
	}

	raw, err := json.Marshal(reading.Current)
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"humidity", "windSpeed", "condition", "timestamp"} {
		v, ok := fields[key]
		if !ok {
			t.Fatalf("field %q omitted, want explicit null", key)
		}
		if string(v) != "null" {
			t.Fatalf("field %q = %s, want null", key, v)
		}
	}
	if reading.Units.Temperature != "F" || reading.Units.WindSpeed != "mph" {
		t.Fatalf("units = %+v, want imperial labels", reading.Units)
	}
}

const openMeteoFixture = `{
	"current": {
		"time": "2024-08-12T15:00",
		"temperature_2m": 22.1,
		"relative_humidity_2m": 48,
		"apparent_temperature": 21.3,
		"wind_speed_10m": 11.2,
		"wind_direction_10m": 310,
		"weather_code": 2
	},
	"current_units": {"temperature_2m": "°C", "wind_speed_10m": "km/h"}
}`

func TestOpenMeteoUnitParameters(t *testing.T) {
	var gotImperial bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotImperial = r.URL.Query().Get("temperature_unit") == "fahrenheit" &&
			r.URL.Query().Get("wind_speed_unit") == "mph"
		w.Write([]byte(openMeteoFixture))
	}))
	defer srv.Close()

	client := upstream.New("openmeteo", srv.URL, srv.Client(), upstream.WithoutRetry())
	p := NewOpenMeteo(client)

	if _, cerr := p.Current(context.Background(), Query{Units: UnitsMetric}); cerr != nil {
		t.Fatalf("unexpected error: %v", cerr)
	}
	if gotImperial {
		t.Fatal("metric query must not override provider units")
	}

	reading, cerr := p.Current(context.Background(), Query{Units: UnitsImperial})
	if cerr != nil {
		t.Fatalf("unexpected error: %v", cerr)
	}
	if !gotImperial {
		t.Fatal("imperial query must request fahrenheit and mph")
	}
	if reading.Units.Temperature != "°C" || reading.Units.WindSpeed != "km/h" {
		t.Fatalf("units = %+v, want the payload's own labels", reading.Units)
	}
	if reading.Current.ConditionCode == nil || *reading.Current.ConditionCode != 2 {
		t.Fatalf("conditionCode = %v", reading.Current.ConditionCode)
	}
}

// TestChainFallbackAcrossTransports exercises the full path: the primary
// times out through its retry ceiling, the secondary answers, and the
// result carries fallback provenance.
func TestChainFallbackAcrossTransports(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer primary.Close()
	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(openMeteoFixture))
	}))
	defer secondary.Close()

	primaryClient := upstream.New("openweather", primary.URL, &http.Client{Timeout: 5 * time.Millisecond},
		upstream.WithRetry(upstream.RetryConfig{MaxRetries: 1, InitialDelay: time.Millisecond, ExponentialBase: 2}),
		upstream.WithSleep(func(time.Duration) {}),
	)
	secondaryClient := upstream.New("openmeteo", secondary.URL, secondary.Client(), upstream.WithoutRetry())

	chain := NewChain(NewOpenWeather(primaryClient, "k"), NewOpenMeteo(secondaryClient))
	reading, cerr := chain.Current(context.Background(), Query{Latitude: 36.5, Longitude: -118.5, Units: UnitsMetric})
	if cerr != nil {
		t.Fatalf("unexpected error: %v", cerr)
	}
	if reading.Source.Provider != "Open-Meteo" || !reading.Source.Fallback {
		t.Fatalf("source = %+v, want Open-Meteo fallback", reading.Source)
	}
	if reading.Source.FallbackReason != "OpenWeather unavailable" {
		t.Fatalf("fallbackReason = %q", reading.Source.FallbackReason)
	}
}
