package registry

import (
	"testing"

	"github.com/vovakirdan/drake-arcade/internal/core"
)

type stubGame struct{ id, title string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return g.title }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

func register(id, title string, opts ...Option) {
	Register(id, func() Game { return stubGame{id: id, title: title} }, opts...)
}

func TestListOrder(t *testing.T) {
	register("test_c", "C", WithOrder(1))
	register("test_b", "B", WithOrder(0))
	register("test_a", "A", WithOrder(1), WithSummary("first of the ones"))

	var got []string
	for _, g := range List() {
		switch g.ID {
		case "test_a", "test_b", "test_c":
			got = append(got, g.ID)
		}
	}
	expected := []string{"test_b", "test_a", "test_c"}
	if len(got) != len(expected) {
		t.Fatalf("List() ids = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("List()[%d] = %s, expected %s", i, got[i], expected[i])
		}
	}

	info, ok := Lookup("test_a")
	if !ok {
		t.Fatal("Lookup(test_a) not found")
	}
	if info.Title != "A" || info.Summary != "first of the ones" {
		t.Errorf("Lookup(test_a) = %+v", info)
	}
}

func TestCreate(t *testing.T) {
	register("test_create", "Create")

	g, err := Create("test_create")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID() != "test_create" {
		t.Errorf("ID() = %s, expected test_create", g.ID())
	}
	if !Exists("test_create") {
		t.Error("Exists(test_create) = false")
	}

	if _, err := Create("test_missing"); err == nil {
		t.Error("Create(test_missing) expected error")
	}
	if Exists("test_missing") {
		t.Error("Exists(test_missing) = true")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	register("test_dup", "Dup")
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	register("test_dup", "Dup")
}
