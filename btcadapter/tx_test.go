package btcadapter

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/btcscriptvm/scriptvm/engine"
)

func sampleMsgTx() *wire.MsgTx {
	return &wire.MsgTx{
		Version: 2,
		TxIn: []*wire.TxIn{
			{
				PreviousOutPoint: wire.OutPoint{Hash: chainhash.Hash{}, Index: 0},
				Sequence:         0xffffffff,
			},
		},
		TxOut: []*wire.TxOut{
			{Value: 5000, PkScript: []byte{byte(engine.OP_DUP)}},
		},
		LockTime: 0,
	}
}

func TestSignatureHashLegacyDeterministic(t *testing.T) {
	tx := NewTx(sampleMsgTx())
	scriptCode := []byte{byte(engine.OP_DUP), byte(engine.OP_HASH160)}

	h1, err := tx.SignatureHash(0, 5000, scriptCode, engine.SigHashAll)
	require.NoError(t, err)
	h2, err := tx.SignatureHash(0, 5000, scriptCode, engine.SigHashAll)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
	require.Len(t, h1, 32)
}

func TestSignatureHashForkIDDiffersFromLegacy(t *testing.T) {
	tx := NewTx(sampleMsgTx())
	scriptCode := []byte{byte(engine.OP_DUP)}

	legacy, err := tx.SignatureHash(0, 5000, scriptCode, engine.SigHashAll)
	require.NoError(t, err)

	forkID, err := tx.SignatureHash(0, 5000, scriptCode, engine.SigHashAll|engine.SigHashForkID)
	require.NoError(t, err)

	require.NotEqual(t, legacy, forkID)
}

func TestSignatureHashOutOfRangeInput(t *testing.T) {
	tx := NewTx(sampleMsgTx())
	_, err := tx.SignatureHash(5, 0, nil, engine.SigHashAll)
	require.Error(t, err)
}

func TestVersionAndLockTime(t *testing.T) {
	tx := NewTx(sampleMsgTx())
	require.EqualValues(t, 2, tx.Version())
	require.EqualValues(t, 0, tx.LockTime())
	require.EqualValues(t, 0xffffffff, tx.InputSequence(0))
}
