package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("batch_id", "b1").Msg("batch ingested")

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if event["message"] != "batch ingested" {
		t.Errorf("message = %v", event["message"])
	}
	if event["batch_id"] != "b1" {
		t.Errorf("batch_id = %v", event["batch_id"])
	}
	if _, ok := event["time"]; !ok {
		t.Error("missing timestamp field")
	}
}
