package btcadapter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcscriptvm/scriptvm/engine"
)

func TestScriptIsPushOnly(t *testing.T) {
	pushOnly := Script{0x01, 0xaa, byte(engine.OP_1)}
	require.True(t, pushOnly.IsPushOnly())

	notPushOnly := Script{0x01, 0xaa, byte(engine.OP_DUP)}
	require.False(t, notPushOnly.IsPushOnly())
}

func TestScriptIsP2SH(t *testing.T) {
	script := make(Script, 23)
	script[0] = byte(engine.OP_HASH160)
	script[1] = 0x14
	script[22] = byte(engine.OP_EQUAL)
	require.True(t, script.IsP2SH())

	require.False(t, Script{byte(engine.OP_DUP)}.IsP2SH())
}
