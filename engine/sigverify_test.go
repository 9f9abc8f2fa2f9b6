package engine

import "testing"

// A minimal, structurally valid DER signature (r=1, s=1) with a trailing
// SIGHASH_ALL byte, for encoding-rule tests that don't need a real
// signature to verify.
func sampleDERSig(sighashByte byte) []byte {
	der := []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01}
	return append(der, sighashByte)
}

func TestIsStrictDERSignature(t *testing.T) {
	t.Parallel()

	if !isStrictDERSignature(sampleDERSig(0x01)[:len(sampleDERSig(0x01))-1]) {
		t.Error("expected sample signature to be strict DER")
	}
	if isStrictDERSignature([]byte{0x30, 0x02}) {
		t.Error("expected truncated signature to be rejected")
	}
	if isStrictDERSignature(nil) {
		t.Error("expected empty signature to be rejected")
	}
}

func TestValidateSignatureRejectsBadEncoding(t *testing.T) {
	t.Parallel()

	vm := newTestEngine(RequireStrictDER)
	if err := vm.validateSignature([]byte{0x01, 0x02, 0x01}); err == nil {
		t.Error("expected malformed signature to be rejected")
	}
}

func TestValidateSignatureAcceptsEmpty(t *testing.T) {
	t.Parallel()

	vm := newTestEngine(RequireStrictDER | RequireLowS | RequireStrictEncoding)
	if err := vm.validateSignature(nil); err != nil {
		t.Errorf("empty signature should always be accepted here: %v", err)
	}
}

func TestValidatePubkeyEncoding(t *testing.T) {
	t.Parallel()

	vm := newTestEngine(RequireStrictEncoding)
	compressed := make([]byte, 33)
	compressed[0] = 0x02
	if err := vm.validatePubkey(compressed); err != nil {
		t.Errorf("compressed pubkey should be accepted: %v", err)
	}
	if err := vm.validatePubkey([]byte{0x01, 0x02}); err == nil {
		t.Error("expected malformed pubkey to be rejected")
	}
}

func TestValidateNullFail(t *testing.T) {
	t.Parallel()

	vm := newTestEngine(RequireNullFail)
	if err := vm.validateNullFail(nil); err != nil {
		t.Errorf("empty signature should satisfy NULLFAIL: %v", err)
	}
	if err := vm.validateNullFail([]byte{0x01}); err == nil {
		t.Error("expected non-empty signature on a failed check to be rejected")
	}
}

func TestFindAndDelete(t *testing.T) {
	t.Parallel()

	sig := []byte{0xaa, 0xbb}
	pushedSig := pushItem(sig)
	script := append(append([]byte{byte(OP_DUP)}, pushedSig...), byte(OP_CHECKSIG))

	cleaned := findAndDelete(script, sig)
	if bytesEqual(cleaned, script) {
		t.Error("expected signature push to be removed")
	}
	for i := 0; i+len(pushedSig) <= len(cleaned); i++ {
		if bytesEqual(cleaned[i:i+len(pushedSig)], pushedSig) {
			t.Error("signature push still present after find-and-delete")
		}
	}
}
