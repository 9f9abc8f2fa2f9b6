package engine

import "testing"

func TestEvaluateScriptHash160(t *testing.T) {
	t.Parallel()

	script := append(pushItem([]byte("abc")), byte(OP_HASH160))
	vm := newTestEngine(0)
	if err := vm.EvaluateScript(script); err != nil {
		t.Fatal(err)
	}
	want := fakeCrypto{}.Hash160([]byte("abc"))
	if !bytesEqual(vm.Stack().At(-1), want) {
		t.Errorf("OP_HASH160 result = %x, want %x", vm.Stack().At(-1), want)
	}
}

func TestEvaluateScriptCodeSeparatorNarrowsScriptCode(t *testing.T) {
	t.Parallel()

	script := []byte{byte(OP_CODESEPARATOR), byte(OP_NOP)}
	vm := newTestEngine(0)
	if err := vm.EvaluateScript(script); err != nil {
		t.Fatal(err)
	}
	if len(vm.tokenizer.ScriptCode()) != 1 {
		t.Errorf("ScriptCode() after OP_CODESEPARATOR = %x, want just the trailing OP_NOP", vm.tokenizer.ScriptCode())
	}
}

// TestCheckMultiSigNullDummyRequired exercises OP_CHECKMULTISIG with zero
// required signatures: the dummy argument must still be empty under
// RequireNullDummy.
func TestCheckMultiSigNullDummyRequired(t *testing.T) {
	t.Parallel()

	// 0 pubkeys, 0 sigs, non-empty dummy.
	script := pushItem([]byte{0x01})
	script = append(script, byte(OP_0), byte(OP_0))
	script = append(script, byte(OP_CHECKMULTISIG))

	vm := newTestEngine(RequireNullDummy)
	err := vm.EvaluateScript(script)
	if se, ok := err.(*Error); !ok || se.Code != ErrNullDummy {
		t.Errorf("got %v, want ErrNullDummy", err)
	}
}

func TestCheckMultiSigZeroOfZeroSucceeds(t *testing.T) {
	t.Parallel()

	// 0 pubkeys, 0 sigs, empty dummy: a valid (vacuous) multisig.
	script := []byte{byte(OP_0), byte(OP_0), byte(OP_0), byte(OP_CHECKMULTISIG)}
	vm := newTestEngine(RequireNullDummy)
	if err := vm.EvaluateScript(script); err != nil {
		t.Fatal(err)
	}
	if !CastToBool(vm.Stack().At(-1)) {
		t.Error("expected vacuous multisig to succeed")
	}
}
