package engine

import "math/big"

// secp256k1Order and its half are needed only to classify a DER
// signature's S value as "low", a pure consensus-rule check independent
// of actually verifying the signature.
var secp256k1Order, _ = new(big.Int).SetString(
	"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
var secp256k1HalfOrder = new(big.Int).Rsh(secp256k1Order, 1)

// isStrictDERSignature reports whether sig (excluding the trailing
// sighash-type byte, which the caller strips) follows the strict DER
// encoding bitcoin consensus requires: this is a pure ASN.1 structural
// check, the same one implemented by every node's script/interpreter,
// and deliberately independent of actually decoding the scalars.
func isStrictDERSignature(sig []byte) bool {
	// Minimum: 0x30 len 0x02 rlen [r] 0x02 slen [s], with r,s each at
	// least 1 byte: 8 bytes total. Maximum: 72 bytes (33-byte r and s).
	if len(sig) < 8 || len(sig) > 72 {
		return false
	}
	if sig[0] != 0x30 || int(sig[1]) != len(sig)-2 {
		return false
	}
	if sig[2] != 0x02 {
		return false
	}
	rlen := int(sig[3])
	if rlen == 0 || 4+rlen >= len(sig) {
		return false
	}
	if sig[4]&0x80 != 0 {
		return false
	}
	if rlen > 1 && sig[4] == 0 && sig[5]&0x80 == 0 {
		return false
	}
	sOff := 4 + rlen
	if sOff+1 >= len(sig) || sig[sOff] != 0x02 {
		return false
	}
	slen := int(sig[sOff+1])
	if slen == 0 || sOff+2+slen != len(sig) {
		return false
	}
	sStart := sOff + 2
	if sig[sStart]&0x80 != 0 {
		return false
	}
	if slen > 1 && sig[sStart] == 0 && sig[sStart+1]&0x80 == 0 {
		return false
	}
	return true
}

// isLowSDERSignature reports whether the S component of a (structurally
// valid) DER signature is at most half the curve order, the malleability
// rule BIP146 / REQUIRE_LOW_S enforces.
func isLowSDERSignature(sig []byte) bool {
	if !isStrictDERSignature(sig) {
		return false
	}
	rlen := int(sig[3])
	sOff := 4 + rlen
	slen := int(sig[sOff+1])
	s := new(big.Int).SetBytes(sig[sOff+2 : sOff+2+slen])
	return s.Cmp(secp256k1HalfOrder) <= 0
}

// validateSignature enforces the encoding requirements REQUIRE_STRICT_DER,
// REQUIRE_LOW_S and REQUIRE_STRICT_ENCODING place on a signature found on
// the stack, independent of whether the signature actually verifies. An
// empty signature (used to deliberately fail a multisig slot) is always
// accepted here; validateNullFail is what rejects it if a check still
// fails.
func (vm *Engine) validateSignature(sigBytes []byte) error {
	if len(sigBytes) == 0 {
		return nil
	}

	if vm.flags&(RequireStrictDER|RequireLowS|RequireStrictEncoding) != 0 {
		der := sigBytes[:len(sigBytes)-1]
		if !isStrictDERSignature(der) {
			return scriptError(ErrInvalidSignature, "signature does not follow strict DER encoding")
		}
		if vm.flags&RequireLowS != 0 && !isLowSDERSignature(der) {
			return scriptError(ErrInvalidSignature, "signature has high S value")
		}
	}

	if vm.flags&RequireStrictEncoding != 0 {
		sighash := FromSigBytes(sigBytes)
		if !sighash.IsDefined() {
			return scriptError(ErrInvalidSignature, "undefined sighash type")
		}
		if sighash.HasForkID() && vm.flags&EnableForkID == 0 {
			return scriptError(ErrInvalidSignature, "sighash must not use FORKID")
		}
		if !sighash.HasForkID() && vm.flags&EnableForkID != 0 {
			return scriptError(ErrInvalidSignature, "sighash must use FORKID")
		}
	}

	return nil
}

// validatePubkey enforces that a public key found on the stack uses a
// standard compressed or uncompressed encoding when REQUIRE_STRICT_ENCODING
// is set.
func (vm *Engine) validatePubkey(pubkeyBytes []byte) error {
	if vm.flags&RequireStrictEncoding == 0 {
		return nil
	}
	length := len(pubkeyBytes)
	if length == 33 && (pubkeyBytes[0] == 2 || pubkeyBytes[0] == 3) {
		return nil
	}
	if length == 65 && pubkeyBytes[0] == 4 {
		return nil
	}
	return scriptError(ErrInvalidPublicKeyEncoding, "invalid public key encoding")
}

// validateNullFail fails immediately if a signature check failed on a
// non-empty signature, as REQUIRE_NULLFAIL requires.
func (vm *Engine) validateNullFail(sigBytes []byte) error {
	if vm.flags&RequireNullFail != 0 && len(sigBytes) != 0 {
		return scriptError(ErrNullFail, "signature check failed on a non-null signature")
	}
	return nil
}

// validateNullDummy fails if OP_CHECKMULTISIG's extra stack argument is
// not an empty item, as REQUIRE_NULLDUMMY requires.
func (vm *Engine) validateNullDummy() error {
	if vm.flags&RequireNullDummy != 0 && len(vm.stack.At(-1)) != 0 {
		return scriptError(ErrNullDummy, "multisig dummy argument was not null")
	}
	return nil
}

// cleanupScriptCode returns scriptCode with sigBytes removed via
// find-and-delete, as pre-FORKID signature verification requires (the
// signature itself cannot appear in the subscript it signs). Once FORKID
// is active, either on the engine or the signature, the subscript is
// unmodified.
func (vm *Engine) cleanupScriptCode(sigBytes, scriptCode []byte) []byte {
	sighash := FromSigBytes(sigBytes)
	if vm.flags&EnableForkID != 0 || sighash.HasForkID() {
		return scriptCode
	}
	return findAndDelete(scriptCode, sigBytes)
}

// findAndDelete removes every occurrence of sub, pushed as a single data
// push, from script.
func findAndDelete(script, sub []byte) []byte {
	if len(sub) == 0 {
		return script
	}
	pushed := pushItem(sub)

	out := make([]byte, 0, len(script))
	i := 0
	for i < len(script) {
		if i+len(pushed) <= len(script) && bytesEqual(script[i:i+len(pushed)], pushed) {
			i += len(pushed)
			continue
		}
		out = append(out, script[i])
		i++
	}
	return out
}

// pushItem returns the canonical minimal-push encoding of item, used by
// find-and-delete to recognize exactly how a signature was pushed onto
// the stack.
func pushItem(item []byte) []byte {
	op := MinimalPushOpcode(item)
	switch {
	case op == OP_0:
		return []byte{byte(OP_0)}
	case op >= OP_1 && op <= OP_16:
		return []byte{byte(op)}
	case op == OP_1NEGATE:
		return []byte{byte(OP_1NEGATE)}
	case op == OP_PUSHDATA1:
		out := append([]byte{byte(OP_PUSHDATA1), byte(len(item))}, item...)
		return out
	case op == OP_PUSHDATA2:
		n := len(item)
		out := append([]byte{byte(OP_PUSHDATA2), byte(n), byte(n >> 8)}, item...)
		return out
	case op == OP_PUSHDATA4:
		n := len(item)
		out := append([]byte{byte(OP_PUSHDATA4), byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}, item...)
		return out
	default:
		return append([]byte{byte(len(item))}, item...)
	}
}

// checkSig verifies sigBytes against pubkeyBytes over scriptCode via the
// injected Transaction/Crypto collaborators. It returns false (rather
// than an error) for any malformed input, matching the reference
// interpreter's check_sig, which only ever returns a boolean so callers
// can apply NULLFAIL uniformly.
func (vm *Engine) checkSig(sigBytes, pubkeyBytes, scriptCode []byte) bool {
	if len(sigBytes) == 0 || vm.tx == nil {
		return false
	}

	hashType := FromSigBytes(sigBytes)
	derSig := sigBytes[:len(sigBytes)-1]

	msgHash, err := vm.tx.SignatureHash(vm.inputIndex, vm.value, scriptCode, hashType)
	if err != nil {
		return false
	}

	return vm.crypto.EcdsaVerifyDER(pubkeyBytes, derSig, msgHash)
}
