package engine

// Standard Bitcoin consensus constants governing nLockTime/nSequence
// interpretation (BIP65, BIP68, BIP112).
const (
	lockTimeThreshold = 500_000_000

	sequenceFinal               = 0xffffffff
	sequenceLockTimeDisableFlag = 1 << 31
	sequenceLockTimeTypeFlag    = 1 << 22
	sequenceLockTimeMask        = 0x0000ffff
)

func registerLocktimeOpcodes(table *[256]opcodeHandler) {
	table[OP_CHECKLOCKTIMEVERIFY] = handleCheckLockTimeVerify
	table[OP_CHECKSEQUENCEVERIFY] = handleCheckSequenceVerify

	table[OP_NOP1] = handleUpgradeableNopOpcode
	table[OP_NOP4] = handleUpgradeableNopOpcode
	table[OP_NOP5] = handleUpgradeableNopOpcode
	table[OP_NOP6] = handleUpgradeableNopOpcode
	table[OP_NOP7] = handleUpgradeableNopOpcode
	table[OP_NOP8] = handleUpgradeableNopOpcode
	table[OP_NOP9] = handleUpgradeableNopOpcode
	table[OP_NOP10] = handleUpgradeableNopOpcode
}

func handleUpgradeableNopOpcode(vm *Engine, op Opcode) error {
	return vm.handleUpgradeableNop(op)
}

// handleCheckLockTimeVerify implements OP_CHECKLOCKTIMEVERIFY (BIP65): the
// top stack item is compared against the transaction's nLockTime without
// being popped. Both must be on the same side (block height or unix
// timestamp) of lockTimeThreshold, and the input must not be final.
func handleCheckLockTimeVerify(vm *Engine, op Opcode) error {
	if vm.flags&EnableCheckLockTimeVerify == 0 {
		return vm.handleUpgradeableNop(op)
	}
	if err := vm.requireStackDepth(1); err != nil {
		return err
	}

	locktime, err := vm.toNumber(vm.stack.At(-1), 5)
	if err != nil {
		return err
	}
	if locktime.Sign() < 0 {
		return scriptError(ErrLockTime, "negative locktime")
	}

	if vm.tx.InputSequence(vm.inputIndex) == sequenceFinal {
		return scriptError(ErrLockTime, "locktime requires a non-final input sequence")
	}

	txLockTime := int64(vm.tx.LockTime())
	wantsTime := locktime.Int64() >= lockTimeThreshold
	haveTime := txLockTime >= lockTimeThreshold
	if wantsTime != haveTime {
		return scriptError(ErrLockTime, "locktime type mismatch between script and transaction")
	}
	if locktime.Int64() > txLockTime {
		return scriptError(ErrLockTime, "locktime requirement not satisfied")
	}
	return nil
}

// handleCheckSequenceVerify implements OP_CHECKSEQUENCEVERIFY (BIP112):
// the top stack item is compared against the spending input's nSequence,
// both interpreted under BIP68 relative-locktime rules.
func handleCheckSequenceVerify(vm *Engine, op Opcode) error {
	if vm.flags&EnableCheckSequenceVerify == 0 {
		return vm.handleUpgradeableNop(op)
	}
	if err := vm.requireStackDepth(1); err != nil {
		return err
	}

	sequenceBig, err := vm.toNumber(vm.stack.At(-1), 5)
	if err != nil {
		return err
	}
	if sequenceBig.Sign() < 0 {
		return scriptError(ErrLockTime, "negative sequence")
	}
	sequence := sequenceBig.Int64()

	if sequence&sequenceLockTimeDisableFlag != 0 {
		return nil
	}

	if int32(vm.tx.Version()) < 2 {
		return scriptError(ErrLockTime, "CHECKSEQUENCEVERIFY requires transaction version 2 or later")
	}

	txSequence := int64(vm.tx.InputSequence(vm.inputIndex))
	if txSequence&sequenceLockTimeDisableFlag != 0 {
		return scriptError(ErrLockTime, "input sequence disables relative locktime")
	}

	wantsTime := sequence&sequenceLockTimeTypeFlag != 0
	haveTime := txSequence&sequenceLockTimeTypeFlag != 0
	if wantsTime != haveTime {
		return scriptError(ErrLockTime, "sequence type mismatch between script and transaction")
	}
	if sequence&sequenceLockTimeMask > txSequence&sequenceLockTimeMask {
		return scriptError(ErrLockTime, "sequence requirement not satisfied")
	}
	return nil
}
