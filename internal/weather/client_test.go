package weather

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		code int
		want Kind
	}{
		{0, KindClear},
		{2, KindPartly},
		{3, KindOvercast},
		{48, KindFog},
		{55, KindDrizzle},
		{65, KindRain},
		{77, KindSnow},
		{81, KindShowers},
		{99, KindThunder},
		{42, KindUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.code); got.Kind != tc.want {
			t.Fatalf("code %d: got %q want %q", tc.code, got.Kind, tc.want)
		}
	}
}

func TestCurrentParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/forecast" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("current_weather") != "true" {
			t.Fatal("current_weather flag missing")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current_weather":{"temperature":-3.4,"weathercode":71}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL, time.Second)
	report, err := client.Current(t.Context(), DefaultLocation)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if report.Kind != KindSnow || report.TemperatureC != -3.4 || report.Location != "Stockholm" {
		t.Fatalf("report mismatch: %+v", report)
	}
}

func TestCurrentErrors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClientWithBaseURL(server.URL, time.Second)
		if _, err := client.Current(t.Context(), DefaultLocation); err == nil {
			t.Fatal("expected an error for a non-200 response")
		}
	})

	t.Run("missing payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClientWithBaseURL(server.URL, time.Second)
		if _, err := client.Current(t.Context(), DefaultLocation); err == nil {
			t.Fatal("expected an error for a missing payload")
		}
	})
}

func TestFallbackIsNeutral(t *testing.T) {
	report := Fallback()
	if report.Kind != KindUnknown || report.Label == "" {
		t.Fatalf("fallback not neutral: %+v", report)
	}
}
