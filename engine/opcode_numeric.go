package engine

import "math/big"

func registerNumericOpcodes(table *[256]opcodeHandler) {
	table[OP_1ADD] = handleUnary(func(x *big.Int) *big.Int { return new(big.Int).Add(x, big.NewInt(1)) })
	table[OP_1SUB] = handleUnary(func(x *big.Int) *big.Int { return new(big.Int).Sub(x, big.NewInt(1)) })
	table[OP_NEGATE] = handleUnary(func(x *big.Int) *big.Int { return new(big.Int).Neg(x) })
	table[OP_ABS] = handleUnary(func(x *big.Int) *big.Int { return new(big.Int).Abs(x) })
	table[OP_NOT] = handleUnary(func(x *big.Int) *big.Int { return boolBig(x.Sign() == 0) })
	table[OP_0NOTEQUAL] = handleUnary(func(x *big.Int) *big.Int { return boolBig(x.Sign() != 0) })

	table[OP_ADD] = handleBinary(func(a, b *big.Int) (*big.Int, error) { return new(big.Int).Add(a, b), nil })
	table[OP_SUB] = handleBinary(func(a, b *big.Int) (*big.Int, error) { return new(big.Int).Sub(a, b), nil })
	table[OP_MUL] = handleBinary(func(a, b *big.Int) (*big.Int, error) { return new(big.Int).Mul(a, b), nil })
	table[OP_DIV] = handleBinary(bitcoinDiv)
	table[OP_MOD] = handleBinary(bitcoinMod)
	table[OP_BOOLAND] = handleBinary(func(a, b *big.Int) (*big.Int, error) {
		return boolBig(a.Sign() != 0 && b.Sign() != 0), nil
	})
	table[OP_BOOLOR] = handleBinary(func(a, b *big.Int) (*big.Int, error) {
		return boolBig(a.Sign() != 0 || b.Sign() != 0), nil
	})
	table[OP_NUMEQUAL] = handleBinary(func(a, b *big.Int) (*big.Int, error) { return boolBig(a.Cmp(b) == 0), nil })
	table[OP_NUMEQUALVERIFY] = handleNumEqualVerify
	table[OP_NUMNOTEQUAL] = handleBinary(func(a, b *big.Int) (*big.Int, error) { return boolBig(a.Cmp(b) != 0), nil })
	table[OP_LESSTHAN] = handleBinary(func(a, b *big.Int) (*big.Int, error) { return boolBig(a.Cmp(b) < 0), nil })
	table[OP_GREATERTHAN] = handleBinary(func(a, b *big.Int) (*big.Int, error) { return boolBig(a.Cmp(b) > 0), nil })
	table[OP_LESSTHANOREQUAL] = handleBinary(func(a, b *big.Int) (*big.Int, error) { return boolBig(a.Cmp(b) <= 0), nil })
	table[OP_GREATERTHANOREQUAL] = handleBinary(func(a, b *big.Int) (*big.Int, error) { return boolBig(a.Cmp(b) >= 0), nil })
	table[OP_MIN] = handleBinary(func(a, b *big.Int) (*big.Int, error) {
		if a.Cmp(b) < 0 {
			return a, nil
		}
		return b, nil
	})
	table[OP_MAX] = handleBinary(func(a, b *big.Int) (*big.Int, error) {
		if a.Cmp(b) > 0 {
			return a, nil
		}
		return b, nil
	})
	table[OP_WITHIN] = handleWithin
}

func boolBig(v bool) *big.Int {
	if v {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

func handleUnary(op func(*big.Int) *big.Int) opcodeHandler {
	return func(vm *Engine, _ Opcode) error {
		if err := vm.requireStackDepth(1); err != nil {
			return err
		}
		value, err := vm.toNumber(vm.stack.At(-1), 0)
		if err != nil {
			return err
		}
		return vm.stack.Set(-1, IntToItem(op(value)))
	}
}

func handleBinary(op func(a, b *big.Int) (*big.Int, error)) opcodeHandler {
	return func(vm *Engine, _ Opcode) error {
		if err := vm.requireStackDepth(2); err != nil {
			return err
		}
		x1, err := vm.toNumber(vm.stack.At(-2), 0)
		if err != nil {
			return err
		}
		x2, err := vm.toNumber(vm.stack.At(-1), 0)
		if err != nil {
			return err
		}
		result, err := op(x1, x2)
		if err != nil {
			return err
		}
		if _, err := vm.stack.Pop(); err != nil {
			return err
		}
		return vm.stack.Set(-1, IntToItem(result))
	}
}

func handleNumEqualVerify(vm *Engine, op Opcode) error {
	if err := handleBinary(func(a, b *big.Int) (*big.Int, error) { return boolBig(a.Cmp(b) == 0), nil })(vm, op); err != nil {
		return err
	}
	if !CastToBool(vm.stack.At(-1)) {
		return scriptError(ErrNumEqualVerifyFailed, "OP_NUMEQUALVERIFY failed")
	}
	_, err := vm.stack.Pop()
	return err
}

// bitcoinDiv and bitcoinMod implement truncated (round-toward-zero)
// division and a remainder that takes the sign of the dividend -- Go's
// big.Int.Quo/Rem already use this convention, matching Bitcoin script's
// arithmetic exactly.
func bitcoinDiv(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, scriptError(ErrDivisionByZero, "division by zero")
	}
	return new(big.Int).Quo(a, b), nil
}

func bitcoinMod(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, scriptError(ErrDivisionByZero, "modulo by zero")
	}
	return new(big.Int).Rem(a, b), nil
}

func handleWithin(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(3); err != nil {
		return err
	}
	x := ItemToInt(vm.stack.At(-3))
	mn := ItemToInt(vm.stack.At(-2))
	mx := ItemToInt(vm.stack.At(-1))
	if _, err := vm.stack.Pop(); err != nil {
		return err
	}
	if _, err := vm.stack.Pop(); err != nil {
		return err
	}
	within := mn.Cmp(x) <= 0 && x.Cmp(mx) < 0
	return vm.stack.Set(-1, boolItem(within))
}
