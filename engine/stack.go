package engine

import "math/big"

// itemOverhead is the per-item bookkeeping cost charged against a stack's
// memory budget in addition to the raw byte length of the item, matching
// the reference interpreter's accounting for slice/object overhead so
// that MAX_STACK_MEMORY_USAGE_AFTER_GENESIS means the same thing here as
// it does upstream.
const itemOverhead = 32

// memoryMeter tracks the combined byte usage of a stack and every stack
// derived from it (the data stack and its alt stack share one budget, the
// way a single LimitedStack and its make_child_stack sibling do).
type memoryMeter struct {
	limit int64
	used  int64
}

func newMemoryMeter(limit int64) *memoryMeter {
	return &memoryMeter{limit: limit}
}

func (m *memoryMeter) reserve(n int) error {
	cost := int64(n) + itemOverhead
	if m.used+cost > m.limit {
		return scriptErrorf(ErrStackSizeTooLarge,
			"stack memory usage would exceed the limit of %d bytes", m.limit)
	}
	m.used += cost
	return nil
}

func (m *memoryMeter) release(n int) {
	m.used -= int64(n) + itemOverhead
}

// Stack is the bounded byte-slice stack the engine uses for both the main
// data stack and the alt stack. Every push/pop is charged against a
// shared memoryMeter so the combined footprint of both stacks can be
// capped in one place, mirroring how a main stack and its alt stack share
// a single memory budget.
type Stack struct {
	items []([]byte)
	meter *memoryMeter
}

// NewStack creates a standalone stack with its own memory budget.
func NewStack(memoryLimit int64) *Stack {
	return &Stack{meter: newMemoryMeter(memoryLimit)}
}

// MakeChildStack returns a new, empty Stack that shares s's memory meter.
func (s *Stack) MakeChildStack() *Stack {
	return &Stack{meter: s.meter}
}

// Len reports the number of items on the stack.
func (s *Stack) Len() int { return len(s.items) }

// PushByteArray pushes a raw item, charging its length against the
// shared memory budget.
func (s *Stack) PushByteArray(item []byte) error {
	if err := s.meter.reserve(len(item)); err != nil {
		return err
	}
	s.items = append(s.items, item)
	return nil
}

// PushInt pushes the sign-magnitude encoding of value.
func (s *Stack) PushInt(value *big.Int) error {
	return s.PushByteArray(IntToItem(value))
}

// PushBool pushes Bitcoin's canonical true ({0x01}) or false ({}) item.
func (s *Stack) PushBool(v bool) error {
	if v {
		return s.PushByteArray([]byte{0x01})
	}
	return s.PushByteArray(nil)
}

// Pop removes and returns the top item.
func (s *Stack) Pop() ([]byte, error) {
	if len(s.items) == 0 {
		return nil, scriptError(ErrInvalidStackOperation, "pop from empty stack")
	}
	n := len(s.items) - 1
	item := s.items[n]
	s.items = s.items[:n]
	s.meter.release(len(item))
	return item, nil
}

// PopInt pops the top item and interprets it as a number. No length limit
// or minimal-encoding check is applied.
func (s *Stack) PopInt() (*big.Int, error) {
	item, err := s.Pop()
	if err != nil {
		return nil, err
	}
	return ItemToInt(item), nil
}

// At returns the item at the given index, where -1 is the top of the
// stack (Python-slice-style negative indexing), matching the idiom the
// reference opcode handlers use throughout (state.stack[-1], state.stack[-2], ...).
func (s *Stack) At(index int) []byte {
	i := s.resolve(index)
	return s.items[i]
}

// Set overwrites the item at index.
func (s *Stack) Set(index int, item []byte) error {
	i := s.resolve(index)
	old := s.items[i]
	if err := s.meter.reserve(len(item)); err != nil {
		return err
	}
	s.meter.release(len(old))
	s.items[i] = item
	return nil
}

// Insert inserts item just before the element currently at index.
func (s *Stack) Insert(index int, item []byte) error {
	i := s.resolve(index)
	if err := s.meter.reserve(len(item)); err != nil {
		return err
	}
	s.items = append(s.items, nil)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = item
	return nil
}

// PopAt removes and returns the item at index (which may be negative).
func (s *Stack) PopAt(index int) ([]byte, error) {
	i := s.resolve(index)
	item := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.meter.release(len(item))
	return item, nil
}

// Extend appends a run of existing items (by value, no fresh memory
// charge beyond the duplicate copies, matching handle_nDUP/handle_2OVER
// style slice-extend semantics) taken from [from:to) of the current stack.
// A to of 0 means "through the top of the stack", so Extend(-n, 0) copies
// the top n items.
func (s *Stack) Extend(from, to int) error {
	lo := s.resolve(from)
	hi := s.resolveEnd(to)
	dup := make([][]byte, hi-lo)
	copy(dup, s.items[lo:hi])
	for _, item := range dup {
		if err := s.PushByteArray(item); err != nil {
			return err
		}
	}
	return nil
}

// resolve turns a Python-style index (negative counts from the end,
// 0-based from the start) into a slice index, panicking is never done:
// callers must call requireStackDepth before using negative indices derived
// from opcode operands.
func (s *Stack) resolve(index int) int {
	if index < 0 {
		return len(s.items) + index
	}
	return index
}

func (s *Stack) resolveEnd(index int) int {
	if index < 0 {
		return len(s.items) + index
	}
	if index == 0 {
		return len(s.items)
	}
	return index
}

// Snapshot captures the stack contents for later restoration (used by
// VerifyScript's P2SH handling, which must replay the post-scriptSig
// stack through the redeem script after first running scriptPubKey).
type Snapshot struct {
	items [][]byte
}

func (s *Stack) Snapshot() Snapshot {
	items := make([][]byte, len(s.items))
	copy(items, s.items)
	return Snapshot{items: items}
}

func (s *Stack) Restore(snap Snapshot) {
	for _, item := range s.items {
		s.meter.release(len(item))
	}
	s.items = make([][]byte, len(snap.items))
	copy(s.items, snap.items)
	for _, item := range s.items {
		// Snapshot contents were already charged once; re-reserve to
		// keep the meter consistent after Restore replaces the live
		// items wholesale.
		s.meter.used += int64(len(item)) + itemOverhead
	}
}

// Items returns the stack contents bottom-to-top, the same order a
// caller supplying an initial witness/stack state would use.
func (s *Stack) Items() [][]byte {
	out := make([][]byte, len(s.items))
	copy(out, s.items)
	return out
}

// SetItems replaces the stack wholesale with items (bottom-to-top).
func (s *Stack) SetItems(items [][]byte) error {
	for _, item := range s.items {
		s.meter.release(len(item))
	}
	s.items = nil
	for _, item := range items {
		if err := s.PushByteArray(item); err != nil {
			return err
		}
	}
	return nil
}
