package registry

import (
	"testing"

	"github.com/vovakirdan/flatworld/internal/core"
)

type testGame struct{ id, title string }

func (g *testGame) ID() string                           { return g.id }
func (g *testGame) Title() string                        { return g.title }
func (g *testGame) Reset(core.RuntimeConfig)             {}
func (g *testGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *testGame) Render(*core.Screen)                  {}
func (g *testGame) State() core.GameState                { return core.GameState{} }

func register(id, title string) {
	Register(id, func() Game { return &testGame{id: id, title: title} })
}

func TestRegisterAndCreate(t *testing.T) {
	register("reg_b", "Board B")
	register("reg_a", "Board A")

	if !Exists("reg_a") || !Exists("reg_b") {
		t.Fatal("registered games should exist")
	}
	if Exists("reg_missing") {
		t.Error("unregistered game should not exist")
	}

	g, err := Create("reg_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "reg_a" || g.Title() != "Board A" {
		t.Errorf("Create() = %s/%s, expected reg_a/Board A", g.ID(), g.Title())
	}

	// Each call builds a fresh instance
	g2, _ := Create("reg_a")
	if g == g2 {
		t.Error("Create() returned the same instance twice")
	}

	if _, err := Create("reg_missing"); err == nil {
		t.Error("Create() of an unknown id should fail")
	}
}

func TestListSortedByID(t *testing.T) {
	register("list_z", "Zed")
	register("list_m", "Em")

	var ids []string
	titles := make(map[string]string)
	for _, info := range List() {
		ids = append(ids, info.ID)
		titles[info.ID] = info.Title
	}

	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("List() not sorted: %v", ids)
		}
	}
	if titles["list_z"] != "Zed" || titles["list_m"] != "Em" {
		t.Errorf("List() titles = %v", titles)
	}
}

func TestRegisterPanics(t *testing.T) {
	register("dup_board", "Dup")

	tests := []struct {
		name string
		id   string
	}{
		{"duplicate id", "dup_board"},
		{"empty id", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Register(%q) should panic", tc.id)
				}
			}()
			register(tc.id, "x")
		})
	}
}
