package router

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edusheet/internal/screen"
)

type fakeScreen struct {
	name  string
	inits int
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}
func (s *fakeScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *fakeScreen) View(int, int) string                    { return s.name }
func (s *fakeScreen) Title() string                           { return s.name }

// titles lists the stack bottom to top.
func titles(r *Router) string {
	names := make([]string, 0, len(r.stack))
	for _, s := range r.stack {
		names = append(names, s.Title())
	}
	return strings.Join(names, ",")
}

func TestRouterStack(t *testing.T) {
	tests := []struct {
		name string
		ops  func(r *Router, mk func(string) *fakeScreen)
		want string
	}{
		{"push", func(r *Router, mk func(string) *fakeScreen) {
			r.Push(mk("detail"))
		}, "home,detail"},
		{"push then pop", func(r *Router, mk func(string) *fakeScreen) {
			r.Push(mk("detail"))
			r.Pop()
		}, "home"},
		{"pop keeps the root", func(r *Router, mk func(string) *fakeScreen) {
			r.Pop()
			r.Pop()
		}, "home"},
		{"replace root", func(r *Router, mk func(string) *fakeScreen) {
			r.Replace(mk("online"))
		}, "online"},
		{"replace top", func(r *Router, mk func(string) *fakeScreen) {
			r.Push(mk("detail"))
			r.Replace(mk("online"))
		}, "home,online"},
		{"messages", func(r *Router, mk func(string) *fakeScreen) {
			r.Update(PushScreenMsg{Screen: mk("detail")})
			r.Update(ReplaceScreenMsg{Screen: mk("online")})
			r.Update(PushScreenMsg{Screen: mk("result")})
			r.Update(PopScreenMsg{})
		}, "home,online"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var made []*fakeScreen
			mk := func(name string) *fakeScreen {
				s := &fakeScreen{name: name}
				made = append(made, s)
				return s
			}
			r := New(&fakeScreen{name: "home"})
			tt.ops(r, mk)

			assert.Equal(t, tt.want, titles(r))
			assert.Equal(t, len(r.stack), r.Depth())
			for _, s := range made {
				assert.Equal(t, 1, s.inits, "%s should be initialized once", s.name)
			}
		})
	}
}

func TestNewStacksWithoutInit(t *testing.T) {
	home := &fakeScreen{name: "home"}
	online := &fakeScreen{name: "online"}
	r := New(home, online)

	require.Equal(t, 2, r.Depth())
	assert.Equal(t, "online", r.Active().Title())
	assert.Zero(t, home.inits+online.inits)
}

func TestCommandHelpers(t *testing.T) {
	s := &fakeScreen{name: "x"}

	push, ok := Push(s)().(PushScreenMsg)
	require.True(t, ok)
	assert.Same(t, s, push.Screen)

	replace, ok := Replace(s)().(ReplaceScreenMsg)
	require.True(t, ok)
	assert.Same(t, s, replace.Screen)

	_, ok = Pop()().(PopScreenMsg)
	assert.True(t, ok)
	assert.NotNil(t, PopAndRefresh())
}
