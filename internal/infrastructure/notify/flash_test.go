package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFlash_DrainKeepsOrderAndEmpties(t *testing.T) {
	f := NewFlash(10, zerolog.Nop())
	f.Success("Product created")
	f.Error("Failed to delete category")

	got := f.Drain()
	if len(got) != 2 {
		t.Fatalf("expected 2 notices, got %d", len(got))
	}
	if got[0].Level != LevelSuccess || got[0].Message != "Product created" {
		t.Fatalf("unexpected first notice: %+v", got[0])
	}
	if got[1].Level != LevelError {
		t.Fatalf("unexpected second notice: %+v", got[1])
	}
	if f.Len() != 0 {
		t.Fatalf("expected empty queue after drain")
	}
	if again := f.Drain(); again == nil || len(again) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", again)
	}
}

func TestFlash_DropsOldestWhenFull(t *testing.T) {
	f := NewFlash(2, zerolog.Nop())
	f.Info("one")
	f.Info("two")
	f.Warning("three")

	got := f.Drain()
	if len(got) != 2 || got[0].Message != "two" || got[1].Message != "three" {
		t.Fatalf("unexpected queue: %+v", got)
	}
}

func TestFlash_LogsEachNotice(t *testing.T) {
	var buf bytes.Buffer
	f := NewFlash(0, zerolog.New(&buf))
	f.Warning("Session expired")

	if !strings.Contains(buf.String(), `"notice":"Session expired"`) {
		t.Fatalf("expected notice in log output, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("expected warn level, got %s", buf.String())
	}
}
