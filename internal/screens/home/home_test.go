package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edusheet/internal/router"
	"github.com/abhisek/edusheet/internal/screens"
	"github.com/abhisek/edusheet/internal/screens/library"
	"github.com/abhisek/edusheet/internal/screens/openlink"
	"github.com/abhisek/edusheet/internal/worksheet"
)

// fakeRepo implements store.WorksheetRepo for testing.
type fakeRepo struct {
	list []worksheet.Worksheet
}

func (f *fakeRepo) Save(context.Context, *worksheet.Worksheet) error { return nil }
func (f *fakeRepo) Get(context.Context, string) (*worksheet.Worksheet, error) {
	return nil, nil
}
func (f *fakeRepo) List(context.Context) ([]worksheet.Worksheet, error) { return f.list, nil }
func (f *fakeRepo) Delete(context.Context, string) error               { return nil }

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestHome_MenuNavigation(t *testing.T) {
	h := New(screens.Deps{Worksheets: &fakeRepo{}})

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*library.LibraryScreen); !ok {
		t.Fatalf("expected library screen, got %T", msg.Screen)
	}

	h.Update(specialKey(tea.KeyDown))
	_, cmd = h.Update(specialKey(tea.KeyEnter))
	msg = cmd().(router.PushScreenMsg)
	if _, ok := msg.Screen.(*openlink.OpenLinkScreen); !ok {
		t.Fatalf("expected open-link screen, got %T", msg.Screen)
	}

	h.Update(specialKey(tea.KeyDown))
	_, cmd = h.Update(specialKey(tea.KeyEnter))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected quit")
	}
}

func TestHome_LibraryDisabledWithoutStore(t *testing.T) {
	h := New(screens.Deps{})
	if h.menu.Selected != 1 {
		t.Fatalf("expected the first enabled item selected, got %d", h.menu.Selected)
	}
	if h.Init() != nil {
		t.Fatal("expected no stats load without a store")
	}
}

func TestHome_Stats(t *testing.T) {
	repo := &fakeRepo{list: worksheet.Samples(time.Now())}
	h := New(screens.Deps{Worksheets: repo, LLMConfigured: true})

	h.Update(h.Init()())
	if !h.statsLoaded || h.worksheets != len(repo.list) {
		t.Fatalf("expected %d worksheets, got %d", len(repo.list), h.worksheets)
	}
	if h.questions == 0 {
		t.Fatal("expected question count")
	}
	if !strings.Contains(h.View(120, 40), "PHIẾU CỦA TÔI") {
		t.Fatal("expected menu in view")
	}
}

func TestHome_LLMBanner(t *testing.T) {
	h := New(screens.Deps{})
	if !strings.Contains(h.View(120, 40), "khoá API") {
		t.Fatal("expected missing-key banner")
	}
}
