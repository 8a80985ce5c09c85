//go:build staging

package staging

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestHealthCheck(t *testing.T) {
	resp := get(t, "/healthz")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestReadiness(t *testing.T) {
	resp := get(t, "/readyz")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestVersion(t *testing.T) {
	resp := get(t, "/version")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestMetricsExposed(t *testing.T) {
	resp := get(t, "/metrics")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read metrics body: %v", err)
	}
	if !strings.Contains(string(body), "dustbound_") {
		t.Error("Expected dustbound_ metrics in /metrics output")
	}
}
