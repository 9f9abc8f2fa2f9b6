package engine

func registerStackOpcodes(table *[256]opcodeHandler) {
	table[OP_TOALTSTACK] = handleToAltStack
	table[OP_FROMALTSTACK] = handleFromAltStack
	table[OP_DROP] = handleDrop
	table[OP_2DROP] = handle2Drop
	table[OP_DUP] = handleNDup(1)
	table[OP_2DUP] = handleNDup(2)
	table[OP_3DUP] = handleNDup(3)
	table[OP_OVER] = handleOver
	table[OP_2OVER] = handle2Over
	table[OP_2ROT] = handle2Rot
	table[OP_2SWAP] = handle2Swap
	table[OP_IFDUP] = handleIfDup
	table[OP_DEPTH] = handleDepth
	table[OP_NIP] = handleNip
	table[OP_PICK] = handlePickRoll
	table[OP_ROLL] = handlePickRoll
	table[OP_ROT] = handleRot
	table[OP_SWAP] = handleSwap
	table[OP_TUCK] = handleTuck
}

func handleToAltStack(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(1); err != nil {
		return err
	}
	item, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	return vm.altStack.PushByteArray(item)
}

func handleFromAltStack(vm *Engine, _ Opcode) error {
	if err := vm.requireAltStackDepth(1); err != nil {
		return err
	}
	item, err := vm.altStack.Pop()
	if err != nil {
		return err
	}
	return vm.stack.PushByteArray(item)
}

func handleDrop(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(1); err != nil {
		return err
	}
	_, err := vm.stack.Pop()
	return err
}

func handle2Drop(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(2); err != nil {
		return err
	}
	if _, err := vm.stack.Pop(); err != nil {
		return err
	}
	_, err := vm.stack.Pop()
	return err
}

func handleNDup(n int) opcodeHandler {
	return func(vm *Engine, _ Opcode) error {
		if err := vm.requireStackDepth(n); err != nil {
			return err
		}
		return vm.stack.Extend(-n, 0)
	}
}

func handleOver(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(2); err != nil {
		return err
	}
	return vm.stack.PushByteArray(vm.stack.At(-2))
}

func handle2Over(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(4); err != nil {
		return err
	}
	return vm.stack.Extend(-4, -2)
}

func handle2Rot(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(6); err != nil {
		return err
	}
	a, err := vm.stack.PopAt(-6)
	if err != nil {
		return err
	}
	b, err := vm.stack.PopAt(-5)
	if err != nil {
		return err
	}
	if err := vm.stack.PushByteArray(a); err != nil {
		return err
	}
	return vm.stack.PushByteArray(b)
}

func handle2Swap(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(4); err != nil {
		return err
	}
	a, err := vm.stack.PopAt(-4)
	if err != nil {
		return err
	}
	b, err := vm.stack.PopAt(-3)
	if err != nil {
		return err
	}
	if err := vm.stack.PushByteArray(a); err != nil {
		return err
	}
	return vm.stack.PushByteArray(b)
}

func handleIfDup(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(1); err != nil {
		return err
	}
	last := vm.stack.At(-1)
	if CastToBool(last) {
		return vm.stack.PushByteArray(last)
	}
	return nil
}

func handleDepth(vm *Engine, _ Opcode) error {
	return vm.stack.PushByteArray(IntToItem(bigFromInt(vm.stack.Len())))
}

func handleNip(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(2); err != nil {
		return err
	}
	_, err := vm.stack.PopAt(-2)
	return err
}

func handleTuck(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(2); err != nil {
		return err
	}
	return vm.stack.Insert(-2, vm.stack.At(-1))
}

func handlePickRoll(vm *Engine, op Opcode) error {
	if err := vm.requireStackDepth(2); err != nil {
		return err
	}
	nBig, err := vm.toNumber(vm.stack.At(-1), 0)
	if err != nil {
		return err
	}
	if _, err := vm.stack.Pop(); err != nil {
		return err
	}
	n := int(nBig.Int64())
	depth := vm.stack.Len()
	if n < 0 || n >= depth {
		return scriptErrorf(ErrInvalidStackOperation,
			"%s with argument %d used on stack with depth %d", op, n, depth)
	}
	if op == OP_PICK {
		return vm.stack.PushByteArray(vm.stack.At(-(n + 1)))
	}
	item, err := vm.stack.PopAt(-(n + 1))
	if err != nil {
		return err
	}
	return vm.stack.PushByteArray(item)
}

func handleRot(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(3); err != nil {
		return err
	}
	item, err := vm.stack.PopAt(-3)
	if err != nil {
		return err
	}
	return vm.stack.PushByteArray(item)
}

func handleSwap(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(2); err != nil {
		return err
	}
	item, err := vm.stack.PopAt(-2)
	if err != nil {
		return err
	}
	return vm.stack.PushByteArray(item)
}
