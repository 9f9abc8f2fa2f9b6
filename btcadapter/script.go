package btcadapter

import (
	"github.com/btcscriptvm/scriptvm/engine"
)

// Script implements engine.Script over a raw script byte slice.
type Script []byte

func (s Script) Bytes() []byte { return []byte(s) }

// IsPushOnly reports whether s contains only data-push opcodes, mirroring
// the reference interpreter's scriptSig-is-pushdata-only check.
func (s Script) IsPushOnly() bool {
	for i := 0; i < len(s); {
		op := engine.Opcode(s[i])
		switch {
		case op > engine.OP_16:
			return false
		case op <= engine.OP_PUSHDATA4:
			n, length, ok := pushDataLen(s, i)
			if !ok {
				return false
			}
			i += length + n
		default:
			i++
		}
	}
	return true
}

// pushDataLen returns the data length and the number of header bytes
// (opcode plus any length prefix) for the push opcode at s[i].
func pushDataLen(s []byte, i int) (dataLen, headerLen int, ok bool) {
	op := engine.Opcode(s[i])
	switch {
	case op < engine.OP_PUSHDATA1:
		return int(op), 1, i+1+int(op) <= len(s)
	case op == engine.OP_PUSHDATA1:
		if i+2 > len(s) {
			return 0, 0, false
		}
		n := int(s[i+1])
		return n, 2, i+2+n <= len(s)
	case op == engine.OP_PUSHDATA2:
		if i+3 > len(s) {
			return 0, 0, false
		}
		n := int(s[i+1]) | int(s[i+2])<<8
		return n, 3, i+3+n <= len(s)
	default: // OP_PUSHDATA4
		if i+5 > len(s) {
			return 0, 0, false
		}
		n := int(s[i+1]) | int(s[i+2])<<8 | int(s[i+3])<<16 | int(s[i+4])<<24
		return n, 5, i+5+n <= len(s)
	}
}

// IsP2SH reports whether s matches the BIP16 template
// OP_HASH160 <20 bytes> OP_EQUAL.
func (s Script) IsP2SH() bool {
	return len(s) == 23 &&
		s[0] == byte(engine.OP_HASH160) &&
		s[1] == 0x14 &&
		s[22] == byte(engine.OP_EQUAL)
}

var _ engine.Script = Script(nil)
