package engine

import "testing"

func TestShiftLeft(t *testing.T) {
	t.Parallel()

	got := shiftLeft([]byte{0b00000001, 0b00000000}, 1)
	want := []byte{0b00000010, 0b00000000}
	if !bytesEqual(got, want) {
		t.Errorf("shiftLeft = %08b, want %08b", got, want)
	}
}

func TestShiftRight(t *testing.T) {
	t.Parallel()

	got := shiftRight([]byte{0b00000000, 0b00000010}, 1)
	want := []byte{0b00000000, 0b00000001}
	if !bytesEqual(got, want) {
		t.Errorf("shiftRight = %08b, want %08b", got, want)
	}
}

func TestShiftLeftByteBoundary(t *testing.T) {
	t.Parallel()

	got := shiftLeft([]byte{0x01, 0x02, 0x03}, 8)
	want := []byte{0x02, 0x03, 0x00}
	if !bytesEqual(got, want) {
		t.Errorf("shiftLeft = %x, want %x", got, want)
	}
}

func TestEvaluateScriptEqual(t *testing.T) {
	t.Parallel()

	script := append(pushItem([]byte("abc")), pushItem([]byte("abc"))...)
	script = append(script, byte(OP_EQUAL))
	vm := newTestEngine(0)
	if err := vm.EvaluateScript(script); err != nil {
		t.Fatal(err)
	}
	if !CastToBool(vm.Stack().At(-1)) {
		t.Error("expected equal byte strings to compare true")
	}
}

func TestEvaluateScriptAndRequiresEqualLength(t *testing.T) {
	t.Parallel()

	script := append(pushItem([]byte{0x01}), pushItem([]byte{0x01, 0x02})...)
	script = append(script, byte(OP_AND))
	vm := newTestEngine(0)
	err := vm.EvaluateScript(script)
	if se, ok := err.(*Error); !ok || se.Code != ErrInvalidOperandSize {
		t.Errorf("got %v, want ErrInvalidOperandSize", err)
	}
}
