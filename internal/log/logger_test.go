package log

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestWithComponentAddsField(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf})

	logger := WithComponent("catalog")
	logger.Info().Str("video_id", "M7lc1UVf-VE").Msg("recorded play")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}

	if entry["component"] != "catalog" {
		t.Errorf("Expected component 'catalog', got %v", entry["component"])
	}
	if entry["app"] != "yt-player" {
		t.Errorf("Expected app 'yt-player', got %v", entry["app"])
	}
	if entry["message"] != "recorded play" {
		t.Errorf("Expected message 'recorded play', got %v", entry["message"])
	}
}

func TestConfigureIgnoresUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "loud", Output: &buf})

	logger := Base()
	logger.Info().Msg("hello")
	if buf.Len() == 0 {
		t.Error("Expected info output with fallback level")
	}
}
