package engine

import "encoding/binary"

// scriptTokenizer walks a script's byte stream one opcode at a time,
// decoding push-data length prefixes and handing back the opcode plus any
// data it pushes. It also tracks the position of the most recent
// OP_CODESEPARATOR so ScriptCode can return the subscript CHECKSIG
// verifies against.
type scriptTokenizer struct {
	script      []byte
	offset      int
	lastCodeSep int

	op   Opcode
	data []byte
	err  error
}

func newScriptTokenizer(script []byte) *scriptTokenizer {
	return &scriptTokenizer{script: script}
}

// Done reports whether the tokenizer has consumed the whole script
// without error.
func (t *scriptTokenizer) Done() bool {
	return t.err == nil && t.offset >= len(t.script)
}

// Err returns the error encountered by the most recent Next call, if any.
func (t *scriptTokenizer) Err() error { return t.err }

// Opcode returns the opcode most recently produced by Next.
func (t *scriptTokenizer) Opcode() Opcode { return t.op }

// Data returns the data most recently pushed, or nil if the last opcode
// was not a data push.
func (t *scriptTokenizer) Data() []byte { return t.data }

// Next decodes the next opcode. It returns false at the end of the
// script or on error; callers must check Err() to distinguish the two.
func (t *scriptTokenizer) Next() bool {
	if t.err != nil || t.offset >= len(t.script) {
		return false
	}

	op := Opcode(t.script[t.offset])
	n := t.offset + 1
	t.data = nil

	switch {
	case op > OP_16:
		t.op = op
	case op <= OP_PUSHDATA4:
		var dlen int
		switch {
		case op < OP_PUSHDATA1:
			dlen = int(op)
		case op == OP_PUSHDATA1:
			if n >= len(t.script) {
				t.err = scriptError(ErrTruncatedScript, "truncated OP_PUSHDATA1 length byte")
				return false
			}
			dlen = int(t.script[n])
			n++
		case op == OP_PUSHDATA2:
			if n+2 > len(t.script) {
				t.err = scriptError(ErrTruncatedScript, "truncated OP_PUSHDATA2 length")
				return false
			}
			dlen = int(binary.LittleEndian.Uint16(t.script[n : n+2]))
			n += 2
		default: // OP_PUSHDATA4
			if n+4 > len(t.script) {
				t.err = scriptError(ErrTruncatedScript, "truncated OP_PUSHDATA4 length")
				return false
			}
			dlen = int(binary.LittleEndian.Uint32(t.script[n : n+4]))
			n += 4
		}
		if dlen < 0 || n+dlen > len(t.script) {
			t.err = scriptError(ErrTruncatedScript, "truncated script push data")
			return false
		}
		t.op = op
		t.data = t.script[n : n+dlen]
		n += dlen
	case op >= OP_1:
		t.op = op
		t.data = []byte{byte(int(op) - int(OP_1) + 1)}
	case op == OP_1NEGATE:
		t.op = op
		t.data = []byte{0x81}
	default: // op == OP_RESERVED
		t.op = op
	}

	t.offset = n
	return true
}

// OnCodeSeparator records the current position as the start of the next
// CHECKSIG's script_code, exactly as OP_CODESEPARATOR does.
func (t *scriptTokenizer) OnCodeSeparator() {
	t.lastCodeSep = t.offset
}

// ScriptCode returns the subscript that signature checks verify against:
// everything in the script from the most recent OP_CODESEPARATOR (or the
// start, if none) to the end.
func (t *scriptTokenizer) ScriptCode() []byte {
	return t.script[t.lastCodeSep:]
}
