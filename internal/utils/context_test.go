// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestTraceIDCtxKey(t *testing.T) {
	if TraceIDCtxKey.String() != "traceID" {
		t.Errorf("expected 'traceID', got '%s'", TraceIDCtxKey.String())
	}
}

func TestTraceIDFromContext_Success(t *testing.T) {
	ctx := WithTraceID(context.Background(), "0192c3a4-trace")

	traceID, ok := TraceIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if traceID != "0192c3a4-trace" {
		t.Errorf("expected trace id '0192c3a4-trace', got '%s'", traceID)
	}
}

func TestTraceIDFromContext_Missing(t *testing.T) {
	traceID, ok := TraceIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if traceID != "" {
		t.Errorf("expected empty trace id, got '%s'", traceID)
	}
}

func TestTraceIDFromContext_Empty(t *testing.T) {
	if _, ok := TraceIDFromContext(WithTraceID(context.Background(), "")); ok {
		t.Fatal("expected ok=false for an empty trace id")
	}
}

func TestTraceIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDCtxKey, 42)

	if _, ok := TraceIDFromContext(ctx); ok {
		t.Fatal("expected ok=false, got true")
	}
}
