package integration

import (
	"os"
	"testing"
	"time"
)

// BaseURL points the tests at a running API instance.
var BaseURL = func() string {
	if url := os.Getenv("API_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}()

func TestMain(m *testing.M) {
	// wait for the service to come up
	time.Sleep(5 * time.Second)

	code := m.Run()

	cleanup()

	os.Exit(code)
}

func cleanup() {
	// test fixtures are created with recognizable names; cleanup can be
	// added here when the suite grows destructive cases
}
