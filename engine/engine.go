package engine

import "math/big"

// condition represents one open OP_IF/OP_NOTIF block on the condition
// stack. execute flips when OP_ELSE is seen; seenElse enforces the
// post-genesis rule that only one OP_ELSE is permitted per block.
type condition struct {
	opcode   Opcode
	execute  bool
	seenElse bool
}

// opcodeHandler implements one opcode. It is only invoked for opcodes
// the dispatch table has an explicit entry for; everything else falls
// through to invalidOpcode.
type opcodeHandler func(vm *Engine, op Opcode) error

var opcodeTable [256]opcodeHandler

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = invalidOpcode
	}
	registerControlOpcodes(&opcodeTable)
	registerStackOpcodes(&opcodeTable)
	registerSpliceOpcodes(&opcodeTable)
	registerBitwiseOpcodes(&opcodeTable)
	registerNumericOpcodes(&opcodeTable)
	registerCryptoOpcodes(&opcodeTable)
	registerLocktimeOpcodes(&opcodeTable)
}

func invalidOpcode(_ *Engine, op Opcode) error {
	return scriptErrorf(ErrInvalidOpcode, "invalid opcode %s", op)
}

// Engine evaluates scriptSig/scriptPubKey pairs against a single
// transaction input. It is driven entirely through the Transaction and
// Crypto collaborators supplied to NewEngine; it never parses a wire
// transaction format or calls into a signature library itself.
type Engine struct {
	limits *Limits
	flags  Flags
	tx     Transaction
	crypto Crypto

	inputIndex int
	value      int64

	stack    *Stack
	altStack *Stack

	conditions []condition
	execute    bool
	tokenizer  *scriptTokenizer
	finished   bool
	opCount    int64

	nonTopLevelReturnAfterGenesis bool

	// StepCallback, if set, is invoked once per opcode evaluated with a
	// snapshot of the engine's state. It exists for script debuggers
	// and is not used during normal verification.
	StepCallback func(StepInfo) error
}

// StepInfo is the snapshot handed to StepCallback after each opcode.
type StepInfo struct {
	Opcode   Opcode
	Stack    [][]byte
	AltStack [][]byte
}

// NewEngine creates an Engine for a single transaction input. flags are
// sanitized against limits.IsUTXOAfterGenesis before being stored.
func NewEngine(limits *Limits, flags Flags, tx Transaction, crypto Crypto, inputIndex int, value int64) *Engine {
	vm := &Engine{
		limits:     limits,
		flags:      flags.Sanitize(limits.IsUTXOAfterGenesis),
		tx:         tx,
		crypto:     crypto,
		inputIndex: inputIndex,
		value:      value,
	}
	vm.stack = NewStack(limits.StackMemoryUsage)
	vm.altStack = vm.stack.MakeChildStack()
	return vm
}

// Stack returns the main data stack, for callers that need to seed or
// inspect it directly (debug tooling, test fixtures).
func (vm *Engine) Stack() *Stack { return vm.stack }

// AltStack returns the alternate stack.
func (vm *Engine) AltStack() *Stack { return vm.altStack }

func (vm *Engine) bumpOpCount(n int64) error {
	vm.opCount += n
	if vm.opCount > vm.limits.OpsPerScript {
		return scriptErrorf(ErrTooManyOps, "op count exceeds the limit of %d", vm.limits.OpsPerScript)
	}
	return nil
}

func (vm *Engine) requireStackDepth(depth int) error {
	if vm.stack.Len() < depth {
		return scriptErrorf(ErrInvalidStackOperation,
			"stack depth %d less than required depth of %d", vm.stack.Len(), depth)
	}
	return nil
}

func (vm *Engine) requireAltStackDepth(depth int) error {
	if vm.altStack.Len() < depth {
		return scriptError(ErrInvalidStackOperation, "alt stack is empty")
	}
	return nil
}

func (vm *Engine) validateItemSize(size int) error {
	if int64(size) > vm.limits.ItemSize {
		return scriptErrorf(ErrInvalidPushSize,
			"item length %d exceeds the limit of %d bytes", size, vm.limits.ItemSize)
	}
	return nil
}

func (vm *Engine) validateMinimalPushOpcode(op Opcode, item []byte) error {
	if vm.flags&RequireMinimalPush == 0 {
		return nil
	}
	expected := MinimalPushOpcode(item)
	if op != expected {
		return scriptErrorf(ErrMinimalEncoding, "item not pushed with minimal opcode %s", expected)
	}
	return nil
}

func (vm *Engine) validateStackSize() error {
	if vm.limits.IsUTXOAfterGenesis {
		return nil
	}
	size := vm.stack.Len() + vm.altStack.Len()
	if size > maxStackElementsBeforeGenesis {
		return scriptErrorf(ErrStackSizeTooLarge,
			"combined stack size exceeds the limit of %d items", maxStackElementsBeforeGenesis)
	}
	return nil
}

func (vm *Engine) validateNumberLength(size int, limit int64) error {
	if limit == 0 {
		limit = vm.limits.ScriptNumLength
	}
	if int64(size) > limit {
		return scriptErrorf(ErrInvalidNumber,
			"number of length %d bytes exceeds the limit of %d bytes", size, limit)
	}
	return nil
}

// toNumber decodes item as a number, applying the script-num-length limit
// (or lengthLimit, if nonzero, for opcodes like OP_CHECKLOCKTIMEVERIFY and
// OP_CHECKMULTISIG's key/sig counts that impose a tighter cap) and the
// minimal-encoding requirement.
func (vm *Engine) toNumber(item []byte, lengthLimit int64) (*big.Int, error) {
	if err := vm.validateNumberLength(len(item), lengthLimit); err != nil {
		return nil, err
	}
	if vm.flags&RequireMinimalPush != 0 && !IsMinimallyEncoded(item) {
		return nil, scriptErrorf(ErrMinimalEncoding, "number is not minimally encoded: %x", item)
	}
	return ItemToInt(item), nil
}

func (vm *Engine) handleUpgradeableNop(op Opcode) error {
	if vm.flags&RejectUpgradeableNops != 0 {
		return scriptErrorf(ErrUpgradeableNop, "encountered upgradeable NOP %s", op)
	}
	return nil
}

// EvaluateScript runs script against the engine's current stack state,
// updating conditions/op-count/finished as it goes. It implements the
// reference interpreter's evaluate_script algorithm exactly, including
// its handling of OP_RETURN inside an unterminated conditional
// post-genesis (non_top_level_return_after_genesis): execution of every
// opcode except OP_RETURN itself is suppressed for the remainder of the
// script once that state is entered, but the script is not otherwise
// short-circuited: it is still tokenized to the end, op count is still
// bumped, and conditionals must still balance. Invalid opcodes in that
// remainder are skipped like any other non-OP_RETURN opcode and do not
// raise ErrInvalidOpcode.
func (vm *Engine) EvaluateScript(script []byte) error {
	if int64(len(script)) > vm.limits.ScriptSize {
		return scriptErrorf(ErrScriptTooLarge,
			"script length %d exceeds the limit of %d bytes", len(script), vm.limits.ScriptSize)
	}

	vm.opCount = 0
	vm.nonTopLevelReturnAfterGenesis = false
	vm.tokenizer = newScriptTokenizer(script)

	for vm.tokenizer.Next() {
		op := vm.tokenizer.Opcode()
		item := vm.tokenizer.Data()
		isPush := op <= OP_PUSHDATA4 || (op >= OP_1 && op <= OP_16) || op == OP_1NEGATE

		if isPush {
			if err := vm.validateItemSize(len(item)); err != nil {
				return err
			}
		}

		allConditionsTrue := true
		for _, c := range vm.conditions {
			if !c.execute {
				allConditionsTrue = false
				break
			}
		}
		vm.execute = allConditionsTrue && (!vm.nonTopLevelReturnAfterGenesis || op == OP_RETURN)

		// Pushitem and OP_RESERVED do not count towards op count.
		if op > OP_16 {
			if err := vm.bumpOpCount(1); err != nil {
				return err
			}
		}

		// OP_2MUL/OP_2DIV are disabled outright pre-genesis (even in
		// dead branches) and disabled post-genesis only if they would
		// actually execute.
		if op == OP_2MUL || op == OP_2DIV {
			if vm.execute || !vm.limits.IsUTXOAfterGenesis {
				return scriptErrorf(ErrDisabledOpcode, "%s is disabled", op)
			}
		}

		switch {
		case vm.execute && isPush:
			if err := vm.validateMinimalPushOpcode(op, item); err != nil {
				return err
			}
			if err := vm.stack.PushByteArray(item); err != nil {
				return err
			}
		case vm.execute || (op >= OP_IF && op <= OP_ENDIF):
			if err := opcodeTable[op](vm, op); err != nil {
				return err
			}
			if vm.finished {
				return nil
			}
		}

		if err := vm.validateStackSize(); err != nil {
			return err
		}

		if vm.StepCallback != nil {
			if err := vm.StepCallback(StepInfo{
				Opcode:   op,
				Stack:    vm.stack.Items(),
				AltStack: vm.altStack.Items(),
			}); err != nil {
				return err
			}
		}
	}

	if err := vm.tokenizer.Err(); err != nil {
		return err
	}

	if len(vm.conditions) > 0 {
		return scriptErrorf(ErrUnbalancedConditional,
			"unterminated %s at end of script", vm.conditions[len(vm.conditions)-1].opcode)
	}
	return nil
}

// VerifyScript evaluates scriptSig followed by scriptPubKey (and, for a
// P2SH output with EnableP2SH set, the embedded redeem script) and
// reports whether the combined evaluation succeeds. It implements the
// reference interpreter's verify_script algorithm, including the
// scriptSig/P2SH push-only requirements and the final clean-stack check.
func (vm *Engine) VerifyScript(scriptSig, scriptPubKey Script) (bool, error) {
	if vm.flags&RequirePushOnly != 0 && !scriptSig.IsPushOnly() {
		return false, scriptError(ErrPushOnly, "script_sig is not pushdata only")
	}

	isP2SH := vm.flags&EnableP2SH != 0 && scriptPubKey.IsP2SH()

	if err := vm.EvaluateScript(scriptSig.Bytes()); err != nil {
		return false, err
	}

	var stackCopy Snapshot
	if isP2SH {
		stackCopy = vm.stack.Snapshot()
	}

	if err := vm.EvaluateScript(scriptPubKey.Bytes()); err != nil {
		return false, err
	}
	if vm.stack.Len() == 0 || !CastToBool(vm.stack.At(-1)) {
		return false, nil
	}

	if isP2SH {
		if !scriptSig.IsPushOnly() {
			return false, scriptError(ErrPushOnly, "P2SH script_sig is not pushdata only")
		}
		vm.stack.Restore(stackCopy)
		redeemScript, err := vm.stack.Pop()
		if err != nil {
			return false, err
		}
		if err := vm.EvaluateScript(redeemScript); err != nil {
			return false, err
		}
		if vm.stack.Len() == 0 || !CastToBool(vm.stack.At(-1)) {
			return false, nil
		}
	}

	if vm.flags&RequireCleanStack != 0 && vm.stack.Len() != 1 {
		return false, scriptError(ErrCleanStack, "stack is not clean")
	}

	return true, nil
}
