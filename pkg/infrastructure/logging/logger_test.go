package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "json")
	if err != nil {
		t.Fatalf("Failed to build logger: %v", err)
	}

	logger.Info().Msg("hidden")
	logger.Warn().Str("sector", "food").Msg("fallback")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected only the warning to be written, got %d lines: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	if entry["level"] != "warn" || entry["sector"] != "food" || entry["service"] != "fleetplan" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "", "console")
	if err != nil {
		t.Fatalf("Failed to build logger: %v", err)
	}

	logger.Info().Msg("ready")
	if !strings.Contains(buf.String(), "ready") || strings.HasPrefix(buf.String(), "{") {
		t.Errorf("Expected console output, got %q", buf.String())
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New(nil, "loud", "json"); err == nil {
		t.Error("Expected error for unknown level")
	}
	if _, err := New(nil, "info", "xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
}
