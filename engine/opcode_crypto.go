package engine

func registerCryptoOpcodes(table *[256]opcodeHandler) {
	table[OP_RIPEMD160] = handleHash(func(c Crypto, data []byte) []byte { return c.Ripemd160(data) })
	table[OP_SHA1] = handleHash(func(c Crypto, data []byte) []byte { return c.Sha1(data) })
	table[OP_SHA256] = handleHash(func(c Crypto, data []byte) []byte { return c.Sha256(data) })
	table[OP_HASH160] = handleHash(func(c Crypto, data []byte) []byte { return c.Hash160(data) })
	table[OP_HASH256] = handleHash(func(c Crypto, data []byte) []byte { return c.DoubleSha256(data) })

	table[OP_CODESEPARATOR] = handleCodeSeparator
	table[OP_CHECKSIG] = handleCheckSig
	table[OP_CHECKSIGVERIFY] = handleCheckSigVerify
	table[OP_CHECKMULTISIG] = handleCheckMultiSig
	table[OP_CHECKMULTISIGVERIFY] = handleCheckMultiSigVerify
}

func handleHash(hash func(Crypto, []byte) []byte) opcodeHandler {
	return func(vm *Engine, _ Opcode) error {
		if err := vm.requireStackDepth(1); err != nil {
			return err
		}
		return vm.stack.Set(-1, hash(vm.crypto, vm.stack.At(-1)))
	}
}

func handleCodeSeparator(vm *Engine, _ Opcode) error {
	vm.tokenizer.OnCodeSeparator()
	return nil
}

// handleCheckSig implements OP_CHECKSIG: pop pubkey then sig, push true or
// false depending on whether sig validly signs the current script_code
// (everything up to the last OP_CODESEPARATOR excluded, and, pre-FORKID,
// pushes of sig itself removed) under pubkey.
func handleCheckSig(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(2); err != nil {
		return err
	}
	pubkey := vm.stack.At(-1)
	sig := vm.stack.At(-2)

	if err := vm.validateSignature(sig); err != nil {
		return err
	}
	if err := vm.validatePubkey(pubkey); err != nil {
		return err
	}

	scriptCode := vm.cleanupScriptCode(sig, vm.tokenizer.ScriptCode())
	ok := vm.checkSig(sig, pubkey, scriptCode)
	if !ok {
		if err := vm.validateNullFail(sig); err != nil {
			return err
		}
	}

	if _, err := vm.stack.Pop(); err != nil {
		return err
	}
	return vm.stack.Set(-1, boolItem(ok))
}

func handleCheckSigVerify(vm *Engine, op Opcode) error {
	if err := handleCheckSig(vm, op); err != nil {
		return err
	}
	if !CastToBool(vm.stack.At(-1)) {
		return scriptError(ErrCheckSigVerifyFailed, "OP_CHECKSIGVERIFY failed")
	}
	_, err := vm.stack.Pop()
	return err
}

// handleCheckMultiSig implements OP_CHECKMULTISIG: verifies that each of
// sigCount signatures, taken in order, validates against some (not
// necessarily corresponding) remaining member of the pubkey list, in
// script order. An extra, historically vestigial stack item is consumed
// beneath the signatures, and must be empty under RequireNullDummy.
func handleCheckMultiSig(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(1); err != nil {
		return err
	}

	pubkeyCountBig, err := vm.toNumber(vm.stack.At(-1), 4)
	if err != nil {
		return err
	}
	pubkeyCount := int(pubkeyCountBig.Int64())
	if pubkeyCount < 0 || int64(pubkeyCount) > vm.limits.PubkeysPerMultisig {
		return scriptErrorf(ErrInvalidPublicKeyCount, "invalid number of public keys: %d", pubkeyCount)
	}
	if _, err := vm.stack.Pop(); err != nil {
		return err
	}
	if err := vm.bumpOpCount(int64(pubkeyCount)); err != nil {
		return err
	}

	if err := vm.requireStackDepth(pubkeyCount); err != nil {
		return err
	}
	pubkeys := make([][]byte, pubkeyCount)
	for i := 0; i < pubkeyCount; i++ {
		pubkeys[i] = vm.stack.At(-1)
		if _, err := vm.stack.Pop(); err != nil {
			return err
		}
	}

	if err := vm.requireStackDepth(1); err != nil {
		return err
	}
	sigCountBig, err := vm.toNumber(vm.stack.At(-1), 4)
	if err != nil {
		return err
	}
	sigCount := int(sigCountBig.Int64())
	if sigCount < 0 || sigCount > pubkeyCount {
		return scriptErrorf(ErrInvalidSignatureCount, "invalid number of signatures: %d", sigCount)
	}
	if _, err := vm.stack.Pop(); err != nil {
		return err
	}

	if err := vm.requireStackDepth(sigCount); err != nil {
		return err
	}
	sigs := make([][]byte, sigCount)
	for i := 0; i < sigCount; i++ {
		sigs[i] = vm.stack.At(-1)
		if _, err := vm.stack.Pop(); err != nil {
			return err
		}
	}

	// The extra, historically vestigial argument.
	if err := vm.requireStackDepth(1); err != nil {
		return err
	}
	if err := vm.validateNullDummy(); err != nil {
		return err
	}
	dummy, err := vm.stack.Pop()
	if err != nil {
		return err
	}

	ok := true
	pubkeyIdx := 0
	sigIdx := 0
	scriptCode := vm.tokenizer.ScriptCode()
	for _, sig := range sigs {
		scriptCode = vm.cleanupScriptCode(sig, scriptCode)
	}
	for sigIdx < len(sigs) {
		sig := sigs[sigIdx]
		if err := vm.validateSignature(sig); err != nil {
			return err
		}
		matched := false
		for pubkeyIdx < len(pubkeys) && !matched {
			pubkey := pubkeys[pubkeyIdx]
			if err := vm.validatePubkey(pubkey); err != nil {
				return err
			}
			pubkeyIdx++
			if vm.checkSig(sig, pubkey, scriptCode) {
				matched = true
			}
		}
		if !matched {
			ok = false
			break
		}
		// Not enough pubkeys left to match the remaining signatures.
		if len(pubkeys)-pubkeyIdx < len(sigs)-sigIdx-1 {
			ok = false
			break
		}
		sigIdx++
	}

	if !ok {
		for _, sig := range sigs {
			if err := vm.validateNullFail(sig); err != nil {
				return err
			}
		}
	}

	_ = dummy
	return vm.stack.PushBool(ok)
}

func handleCheckMultiSigVerify(vm *Engine, op Opcode) error {
	if err := handleCheckMultiSig(vm, op); err != nil {
		return err
	}
	if !CastToBool(vm.stack.At(-1)) {
		return scriptError(ErrCheckMultiSigVerifyFailed, "OP_CHECKMULTISIGVERIFY failed")
	}
	_, err := vm.stack.Pop()
	return err
}
