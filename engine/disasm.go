package engine

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// DisasmScript renders script as a space-separated ASM string, one token
// per opcode: data pushes render as their hex payload (or as a decimal
// literal for OP_1NEGATE/OP_1-OP_16/OP_0), everything else renders as its
// mnemonic. Malformed scripts render their valid prefix followed by
// "[error]".
func DisasmScript(script []byte) string {
	var words []string
	t := newScriptTokenizer(script)
	for t.Next() {
		words = append(words, opToAsmWord(t.Opcode(), t.Data()))
	}
	if t.Err() != nil {
		words = append(words, "[error]")
	}
	return strings.Join(words, " ")
}

func opToAsmWord(op Opcode, data []byte) string {
	switch {
	case op == OP_0:
		return "0"
	case op == OP_1NEGATE:
		return "-1"
	case op >= OP_1 && op <= OP_16:
		return strconv.Itoa(int(op) - int(OP_1) + 1)
	case op <= OP_PUSHDATA4:
		return hex.EncodeToString(data)
	default:
		return op.String()
	}
}
