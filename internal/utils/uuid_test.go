package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewTraceID_IsVersion7(t *testing.T) {
	id, err := uuid.Parse(NewTraceID())
	if err != nil {
		t.Fatalf("expected a UUID, got error: %v", err)
	}
	if id.Version() != 7 {
		t.Errorf("expected version 7, got %d", id.Version())
	}
}

func TestNewTraceID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		id := NewTraceID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate trace id %s", id)
		}
		seen[id] = struct{}{}
	}
}
