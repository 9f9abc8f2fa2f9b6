package engine

import "testing"

func TestStackPushPop(t *testing.T) {
	t.Parallel()

	s := NewStack(1000)
	if err := s.PushByteArray([]byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := s.PushByteArray([]byte("b")); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	top, err := s.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if string(top) != "b" {
		t.Errorf("got %q, want b", top)
	}
}

func TestStackAtNegativeIndex(t *testing.T) {
	t.Parallel()

	s := NewStack(1000)
	for _, v := range []string{"x1", "x2", "x3"} {
		_ = s.PushByteArray([]byte(v))
	}
	if string(s.At(-1)) != "x3" {
		t.Errorf("At(-1) = %q, want x3", s.At(-1))
	}
	if string(s.At(-3)) != "x1" {
		t.Errorf("At(-3) = %q, want x1", s.At(-3))
	}
}

// TestStack2Rot exercises OP_2ROT's sequential pop semantics: given
// x1 x2 x3 x4 x5 x6, the result must be x3 x4 x5 x6 x1 x2.
func TestStack2Rot(t *testing.T) {
	t.Parallel()

	s := NewStack(1000)
	for _, v := range []string{"x1", "x2", "x3", "x4", "x5", "x6"} {
		_ = s.PushByteArray([]byte(v))
	}

	a, err := s.PopAt(-6)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.PopAt(-5)
	if err != nil {
		t.Fatal(err)
	}
	_ = s.PushByteArray(a)
	_ = s.PushByteArray(b)

	want := []string{"x3", "x4", "x5", "x6", "x1", "x2"}
	items := s.Items()
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, w := range want {
		if string(items[i]) != w {
			t.Errorf("items[%d] = %q, want %q", i, items[i], w)
		}
	}
}

func TestStackSnapshotRestore(t *testing.T) {
	t.Parallel()

	s := NewStack(1000)
	_ = s.PushByteArray([]byte("a"))
	snap := s.Snapshot()
	_ = s.PushByteArray([]byte("b"))
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	s.Restore(snap)
	if s.Len() != 1 {
		t.Fatalf("len after restore = %d, want 1", s.Len())
	}
	if string(s.At(-1)) != "a" {
		t.Errorf("At(-1) after restore = %q, want a", s.At(-1))
	}
}

func TestStackMemoryLimit(t *testing.T) {
	t.Parallel()

	s := NewStack(40)
	if err := s.PushByteArray(make([]byte, 4)); err != nil {
		t.Fatal(err)
	}
	if err := s.PushByteArray(make([]byte, 4)); err == nil {
		t.Error("expected second push to exceed the memory budget")
	}
}

func TestMakeChildStackSharesMeter(t *testing.T) {
	t.Parallel()

	main := NewStack(40)
	alt := main.MakeChildStack()
	if err := main.PushByteArray(make([]byte, 4)); err != nil {
		t.Fatal(err)
	}
	if err := alt.PushByteArray(make([]byte, 4)); err == nil {
		t.Error("expected alt stack push to exceed the shared budget")
	}
}
