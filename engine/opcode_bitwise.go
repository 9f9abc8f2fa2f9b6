package engine

func registerBitwiseOpcodes(table *[256]opcodeHandler) {
	table[OP_INVERT] = handleInvert
	table[OP_AND] = handleBinaryBitop(func(a, b byte) byte { return a & b })
	table[OP_OR] = handleBinaryBitop(func(a, b byte) byte { return a | b })
	table[OP_XOR] = handleBinaryBitop(func(a, b byte) byte { return a ^ b })
	table[OP_EQUAL] = handleEqual
	table[OP_EQUALVERIFY] = handleEqualVerify
	table[OP_LSHIFT] = handleLShift
	table[OP_RSHIFT] = handleRShift
}

func handleInvert(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(1); err != nil {
		return err
	}
	x := vm.stack.At(-1)
	out := make([]byte, len(x))
	for i, b := range x {
		out[i] = b ^ 0xff
	}
	return vm.stack.Set(-1, out)
}

func handleBinaryBitop(op func(a, b byte) byte) opcodeHandler {
	return func(vm *Engine, _ Opcode) error {
		if err := vm.requireStackDepth(2); err != nil {
			return err
		}
		x1 := vm.stack.At(-2)
		x2 := vm.stack.At(-1)
		if len(x1) != len(x2) {
			return scriptError(ErrInvalidOperandSize, "operands to bitwise operator must have same size")
		}
		out := make([]byte, len(x1))
		for i := range x1 {
			out[i] = op(x1[i], x2[i])
		}
		if _, err := vm.stack.Pop(); err != nil {
			return err
		}
		return vm.stack.Set(-1, out)
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func handleEqual(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(2); err != nil {
		return err
	}
	a, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	b, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	return vm.stack.PushBool(bytesEqual(a, b))
}

func handleEqualVerify(vm *Engine, op Opcode) error {
	if err := handleEqual(vm, op); err != nil {
		return err
	}
	if !CastToBool(vm.stack.At(-1)) {
		return scriptError(ErrEqualVerifyFailed, "OP_EQUALVERIFY failed")
	}
	_, err := vm.stack.Pop()
	return err
}

// shiftLeft implements Bitcoin's logical left shift: the result has the
// same byte length as value regardless of count, with bits shifted out
// the top discarded and zeros shifted in at the bottom.
func shiftLeft(value []byte, count int) []byte {
	n := len(value)
	out := make([]byte, n)
	byteShift := count / 8
	bitShift := uint(count % 8)
	for i := 0; i < n; i++ {
		srcIdx := i + byteShift
		var lo, hi byte
		if srcIdx < n {
			lo = value[srcIdx]
		}
		if srcIdx+1 < n {
			hi = value[srcIdx+1]
		}
		if bitShift == 0 {
			out[i] = lo
		} else {
			out[i] = (lo << bitShift) | (hi >> (8 - bitShift))
		}
	}
	return out
}

// shiftRight implements Bitcoin's logical right shift, the mirror of
// shiftLeft.
func shiftRight(value []byte, count int) []byte {
	n := len(value)
	out := make([]byte, n)
	byteShift := count / 8
	bitShift := uint(count % 8)
	for i := 0; i < n; i++ {
		srcIdx := i - byteShift
		var lo, hi byte
		if srcIdx >= 0 {
			hi = value[srcIdx]
		}
		if srcIdx-1 >= 0 {
			lo = value[srcIdx-1]
		}
		if bitShift == 0 {
			out[i] = hi
		} else {
			out[i] = (hi >> bitShift) | (lo << (8 - bitShift))
		}
	}
	return out
}

func handleLShift(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(2); err != nil {
		return err
	}
	nBig, err := vm.toNumber(vm.stack.At(-1), 0)
	if err != nil {
		return err
	}
	n := int(nBig.Int64())
	if n < 0 {
		return scriptErrorf(ErrNegativeShiftCount, "invalid shift left of %d bits", n)
	}
	if _, err := vm.stack.Pop(); err != nil {
		return err
	}
	return vm.stack.Set(-1, shiftLeft(vm.stack.At(-1), n))
}

func handleRShift(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(2); err != nil {
		return err
	}
	nBig, err := vm.toNumber(vm.stack.At(-1), 0)
	if err != nil {
		return err
	}
	n := int(nBig.Int64())
	if n < 0 {
		return scriptErrorf(ErrNegativeShiftCount, "invalid shift right of %d bits", n)
	}
	if _, err := vm.stack.Pop(); err != nil {
		return err
	}
	return vm.stack.Set(-1, shiftRight(vm.stack.At(-1), n))
}
