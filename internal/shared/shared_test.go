package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestHelpers(t *testing.T) {
	t.Run("GenerateID", func(t *testing.T) {
		id := GenerateID()
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("expected valid uuid, got %q: %v", id, err)
		}
		if id == GenerateID() {
			t.Error("expected distinct ids")
		}
	})

	t.Run("GenerateSecret", func(t *testing.T) {
		secret, err := GenerateSecret(16)
		if err != nil {
			t.Fatalf("GenerateSecret failed: %v", err)
		}
		if len(secret) != 32 {
			t.Errorf("expected 32 hex chars, got %d", len(secret))
		}
	})

	t.Run("MarshalJSON", func(t *testing.T) {
		data := map[string]int{"a": 1}

		compact, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		if string(compact) != `{"a":1}` {
			t.Errorf("unexpected compact output %s", compact)
		}

		pretty, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		if !strings.Contains(string(pretty), "\n  \"a\": 1") {
			t.Errorf("unexpected pretty output %s", pretty)
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "test")
		logger.Info("hello")

		out := buf.String()
		if !strings.Contains(out, "hello") || !strings.Contains(out, "component=test") {
			t.Errorf("expected message and fields in log output, got %q", out)
		}
	})
}
