package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/abhisek/edusheet/internal/store"
)

func TestLogging_RecordsEvents(t *testing.T) {
	s, err := store.Open("file:llm_logging?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 12, OutputTokens: 34}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
	)
	p := WithLogging(mock, s.EventRepo(), logger)
	ctx := WithPurpose(context.Background(), PurposeWorksheetGen)

	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hello"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	failed, ok := events[0], events[1]
	if failed.Success || !strings.Contains(failed.ErrorMessage, "rate limited") {
		t.Fatalf("unexpected failed event: %+v", failed)
	}
	if !ok.Success || ok.InputTokens != 12 || ok.OutputTokens != 34 {
		t.Fatalf("unexpected success event: %+v", ok)
	}
	if ok.Provider != "mock" || ok.Purpose != "worksheet-gen" {
		t.Fatalf("provider/purpose = %q/%q", ok.Provider, ok.Purpose)
	}
	if !strings.Contains(ok.RequestBody, "[system]\nsys") || !strings.Contains(ok.RequestBody, "[user]\nhello") {
		t.Fatalf("request body not serialized: %q", ok.RequestBody)
	}
	if ok.ResponseBody != `{"ok":true}` {
		t.Fatalf("response body = %q", ok.ResponseBody)
	}

	if len(hook.Entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(hook.Entries))
	}
	if last := hook.LastEntry(); last.Level != logrus.WarnLevel || last.Data["purpose"] != "worksheet-gen" {
		t.Fatalf("unexpected last entry: %v %v", last.Level, last.Data)
	}
}

func TestLogging_NilRepo(t *testing.T) {
	logger, hook := test.NewNullLogger()
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})

	p := WithLogging(mock, nil, logger)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Success logs at debug, which the null logger drops at its default level.
	if len(hook.Entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(hook.Entries))
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID() = %q", p.ModelID())
	}
}
