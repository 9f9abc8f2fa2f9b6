package btcadapter

import (
	"math/big"

	"github.com/btcsuite/btcd/txscript"

	"github.com/btcscriptvm/scriptvm/engine"
)

// Builder assembles script bytes. It is a thin wrapper over
// txscript.NewScriptBuilder, grounded on original_source's
// push_item/push_int/push_and_drop_item(s) helpers: evaluation always goes
// through engine.VerifyScript, never through txscript's own interpreter.
// Nothing else in this module calls it.
type Builder struct {
	b *txscript.ScriptBuilder
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{b: txscript.NewScriptBuilder()}
}

// PushItem appends the minimal-push encoding of item.
func (b *Builder) PushItem(item []byte) *Builder {
	b.b.AddData(item)
	return b
}

// PushItems appends the minimal-push encoding of each item in order.
func (b *Builder) PushItems(items [][]byte) *Builder {
	for _, item := range items {
		b.PushItem(item)
	}
	return b
}

// PushInt appends the minimal-push encoding of value.
func (b *Builder) PushInt(value *big.Int) *Builder {
	return b.PushItem(engine.IntToItem(value))
}

// PushOpcode appends a single non-push opcode verbatim.
func (b *Builder) PushOpcode(op engine.Opcode) *Builder {
	b.b.AddOp(byte(op))
	return b
}

// Script returns the assembled script bytes.
func (b *Builder) Script() (Script, error) {
	s, err := b.b.Script()
	if err != nil {
		return nil, err
	}
	return Script(s), nil
}
