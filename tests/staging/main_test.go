//go:build staging

package staging

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	stagingURL string
	client     *http.Client
)

func TestMain(m *testing.M) {
	// Get ops URL from environment or default to localhost
	stagingURL = os.Getenv("OPS_URL")
	if stagingURL == "" {
		stagingURL = "http://localhost:8080"
	}

	client = &http.Client{
		Timeout: 10 * time.Second,
	}

	os.Exit(m.Run())
}

// get issues a GET against the ops listener.
func get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := client.Get(fmt.Sprintf("%s%s", stagingURL, path))
	if err != nil {
		t.Fatalf("Failed to reach %s: %v", path, err)
	}
	return resp
}
