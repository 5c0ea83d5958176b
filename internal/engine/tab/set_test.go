package tab

import (
	"errors"
	"testing"
)

func TestNewSet(t *testing.T) {
	s := NewSet()
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.ActiveIndex() != 0 || s.Active() == nil {
		t.Error("new set should have active tab 0")
	}
}

func TestRemoveLastTabCreatesFreshTab(t *testing.T) {
	s := NewSet()
	s.Active().InsertRune('x')
	old := s.Active()

	if err := s.Remove(0); err != nil {
		t.Fatalf("Remove(0) error = %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.Active() == old {
		t.Error("expected a fresh tab")
	}
	if s.ActiveIndex() != 0 || s.Active().Line(0) != "" {
		t.Error("fresh tab should be empty and active at 0")
	}
}

func TestRemoveMiddleTab(t *testing.T) {
	s := NewSet()
	first := s.Active()
	a, b, c := New("a"), New("b"), New("c")
	s.Add(a)
	s.Add(b)
	s.Add(c)
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	if err := s.Activate(3); err != nil {
		t.Fatal(err)
	}

	if err := s.Remove(2); err != nil {
		t.Fatalf("Remove(2) error = %v", err)
	}

	want := []*Tab{first, a, c}
	if s.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(want))
	}
	for i, tb := range want {
		got, err := s.At(i)
		if err != nil || got != tb {
			t.Errorf("At(%d) = %v, want %v", i, got, tb)
		}
	}
	if s.ActiveIndex() >= s.Len() {
		t.Errorf("active index %d out of range", s.ActiveIndex())
	}
	if s.Active() != c {
		t.Error("active tab should still be c")
	}
}

func TestRemoveActiveLastTab(t *testing.T) {
	s := NewSet()
	s.Open(New("b"))
	if err := s.Remove(1); err != nil {
		t.Fatal(err)
	}
	if s.ActiveIndex() != 0 {
		t.Errorf("ActiveIndex() = %d, want 0", s.ActiveIndex())
	}
}

func TestSetNeverEmpty(t *testing.T) {
	s := NewSet()
	ops := []func(){
		func() { s.Add(nil) },
		func() { _ = s.Remove(s.Len() - 1) },
		func() { _ = s.Remove(0) },
		func() { _ = s.Remove(0) },
		func() { s.Open(New("x")) },
		func() { _ = s.Remove(5) },
		func() { _ = s.Prev() },
		func() { _ = s.Remove(s.ActiveIndex()) },
		func() { _ = s.Remove(0) },
	}
	for i, op := range ops {
		op()
		if s.Len() < 1 {
			t.Fatalf("after op %d set is empty", i)
		}
		if s.ActiveIndex() < 0 || s.ActiveIndex() >= s.Len() {
			t.Fatalf("after op %d active index %d invalid", i, s.ActiveIndex())
		}
	}
}

func TestNextPrev(t *testing.T) {
	s := NewSet()
	s.Add(New("b"))

	if err := s.Prev(); !errors.Is(err, ErrAlreadyFirst) {
		t.Errorf("Prev() error = %v, want ErrAlreadyFirst", err)
	}
	if err := s.Next(); err != nil {
		t.Errorf("Next() error = %v", err)
	}
	if err := s.Next(); !errors.Is(err, ErrAlreadyLast) {
		t.Errorf("Next() error = %v, want ErrAlreadyLast", err)
	}
}

func TestActivateAndRenameOutOfRange(t *testing.T) {
	s := NewSet()
	if err := s.Activate(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Activate(1) error = %v", err)
	}
	if err := s.Rename(-1, "x"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Rename(-1) error = %v", err)
	}
	if err := s.Rename(0, "main"); err != nil || s.Active().Title() != "main" {
		t.Errorf("Rename(0) error = %v, title %q", err, s.Active().Title())
	}
}

func TestFirstChanged(t *testing.T) {
	s := NewSet()
	s.Add(New("b"))
	if s.FirstChanged() != -1 {
		t.Error("expected no changed tab")
	}
	tb, _ := s.At(1)
	tb.InsertRune('z')
	if s.FirstChanged() != 1 {
		t.Errorf("FirstChanged() = %d, want 1", s.FirstChanged())
	}
	if !s.AnyChanged() {
		t.Error("AnyChanged() = false, want true")
	}
}
