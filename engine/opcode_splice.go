package engine

import "math/big"

func registerSpliceOpcodes(table *[256]opcodeHandler) {
	table[OP_CAT] = handleCat
	table[OP_SPLIT] = handleSplit
	table[OP_NUM2BIN] = handleNum2Bin
	table[OP_BIN2NUM] = handleBin2Num
	table[OP_SIZE] = handleSize
}

func handleCat(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(2); err != nil {
		return err
	}
	x1 := vm.stack.At(-2)
	x2 := vm.stack.At(-1)
	item := make([]byte, 0, len(x1)+len(x2))
	item = append(item, x1...)
	item = append(item, x2...)
	if err := vm.validateItemSize(len(item)); err != nil {
		return err
	}
	if _, err := vm.stack.Pop(); err != nil {
		return err
	}
	return vm.stack.Set(-1, item)
}

func handleSplit(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(2); err != nil {
		return err
	}
	x := vm.stack.At(-2)
	nBig, err := vm.toNumber(vm.stack.At(-1), 0)
	if err != nil {
		return err
	}
	n := int(nBig.Int64())
	if n < 0 || n > len(x) {
		return scriptErrorf(ErrInvalidSplit,
			"cannot split item of length %d at position %d", len(x), n)
	}
	left := append([]byte(nil), x[:n]...)
	right := append([]byte(nil), x[n:]...)
	if err := vm.stack.Set(-2, left); err != nil {
		return err
	}
	return vm.stack.Set(-1, right)
}

func handleNum2Bin(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(2); err != nil {
		return err
	}
	sizeBig, err := vm.toNumber(vm.stack.At(-1), 0)
	if err != nil {
		return err
	}
	size := int(sizeBig.Int64())
	if size < 0 || int64(size) > int64(^uint32(0)>>1) {
		return scriptErrorf(ErrInvalidPushSize, "invalid size %d in OP_NUM2BIN operation", size)
	}
	if err := vm.validateItemSize(size); err != nil {
		return err
	}
	if _, err := vm.stack.Pop(); err != nil {
		return err
	}
	value := ItemToInt(vm.stack.At(-1))
	item, ok := IntToItemSize(value, size)
	if !ok {
		return scriptErrorf(ErrImpossibleEncoding,
			"value does not fit in %d bytes in OP_NUM2BIN operation", size)
	}
	return vm.stack.Set(-1, item)
}

func handleBin2Num(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(1); err != nil {
		return err
	}
	minimal := MinimalEncoding(vm.stack.At(-1))
	if err := vm.validateNumberLength(len(minimal), 0); err != nil {
		return err
	}
	return vm.stack.Set(-1, minimal)
}

func handleSize(vm *Engine, _ Opcode) error {
	if err := vm.requireStackDepth(1); err != nil {
		return err
	}
	size := len(vm.stack.At(-1))
	return vm.stack.PushByteArray(IntToItem(big.NewInt(int64(size))))
}
