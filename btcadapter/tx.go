package btcadapter

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/btcscriptvm/scriptvm/engine"
)

// Tx implements engine.Transaction over a *wire.MsgTx, computing both the
// legacy pre-FORKID signature hash and the BIP143-style FORKID digest
// (the scheme BCH/BSV adopted instead of full segwit) depending on the
// sighash type's FORKID bit. original_source's Python reference leaves
// tx.signature_hash() entirely unspecified; this is the concrete
// implementation that makes the rest of the engine exercisable against
// real transaction bytes.
type Tx struct {
	msg *wire.MsgTx

	hashPrevouts *chainhash.Hash
	hashSequence *chainhash.Hash
	hashOutputs  *chainhash.Hash
}

// NewTx wraps msg. msg is not copied; callers must not mutate it while a
// Tx wrapping it is in use.
func NewTx(msg *wire.MsgTx) *Tx {
	return &Tx{msg: msg}
}

func (t *Tx) Version() int32 { return t.msg.Version }

func (t *Tx) LockTime() uint32 { return t.msg.LockTime }

func (t *Tx) InputSequence(inputIndex int) uint32 {
	return t.msg.TxIn[inputIndex].Sequence
}

// SignatureHash computes the digest an OP_CHECKSIG/OP_CHECKMULTISIG
// signature must verify against for the input at inputIndex.
func (t *Tx) SignatureHash(inputIndex int, value int64, scriptCode []byte, hashType engine.SigHashType) ([]byte, error) {
	if inputIndex < 0 || inputIndex >= len(t.msg.TxIn) {
		return nil, fmt.Errorf("btcadapter: input index %d out of range", inputIndex)
	}
	if hashType.HasForkID() {
		return t.forkIDSignatureHash(inputIndex, value, scriptCode, hashType)
	}
	return t.legacySignatureHash(inputIndex, scriptCode, hashType)
}

// legacySignatureHash implements the original, pre-FORKID sighash
// algorithm: a whole shallow-copied transaction, trimmed per hashType, is
// serialized and double-hashed along with the hash type.
func (t *Tx) legacySignatureHash(inputIndex int, scriptCode []byte, hashType engine.SigHashType) ([]byte, error) {
	base := hashType.BaseType()
	if base == engine.SigHashSingle && inputIndex >= len(t.msg.TxOut) {
		var hash chainhash.Hash
		hash[0] = 0x01
		return hash[:], nil
	}

	txCopy := t.msg.Copy()
	for i := range txCopy.TxIn {
		if i == inputIndex {
			txCopy.TxIn[i].SignatureScript = scriptCode
		} else {
			txCopy.TxIn[i].SignatureScript = nil
		}
	}

	switch base {
	case engine.SigHashNone:
		txCopy.TxOut = txCopy.TxOut[:0]
		for i := range txCopy.TxIn {
			if i != inputIndex {
				txCopy.TxIn[i].Sequence = 0
			}
		}
	case engine.SigHashSingle:
		txCopy.TxOut = txCopy.TxOut[:inputIndex+1]
		for i := 0; i < inputIndex; i++ {
			txCopy.TxOut[i].Value = -1
			txCopy.TxOut[i].PkScript = nil
		}
		for i := range txCopy.TxIn {
			if i != inputIndex {
				txCopy.TxIn[i].Sequence = 0
			}
		}
	}

	if hashType.HasAnyOneCanPay() {
		txCopy.TxIn = []*wire.TxIn{txCopy.TxIn[inputIndex]}
	}

	var buf bytes.Buffer
	if err := txCopy.SerializeNoWitness(&buf); err != nil {
		return nil, err
	}
	binary.Write(&buf, binary.LittleEndian, uint32(hashType))
	return chainhash.DoubleHashB(buf.Bytes()), nil
}

// forkIDSignatureHash implements the BIP143-derived digest used once
// SigHashForkID is set: a fixed-size preimage built from cached hashes of
// all prevouts/sequences/outputs plus this input's own fields, so that
// OP_CHECKMULTISIG's per-signature cost is O(1) hashing work instead of
// O(n) full-transaction reserialization.
func (t *Tx) forkIDSignatureHash(inputIndex int, value int64, scriptCode []byte, hashType engine.SigHashType) ([]byte, error) {
	base := hashType.BaseType()

	hashPrevouts := t.getHashPrevouts(hashType)
	hashSequence := t.getHashSequence(hashType, base)
	hashOutputs := t.getHashOutputs(hashType, base, inputIndex)

	in := t.msg.TxIn[inputIndex]

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(t.msg.Version))
	buf.Write(hashPrevouts[:])
	buf.Write(hashSequence[:])
	buf.Write(in.PreviousOutPoint.Hash[:])
	binary.Write(&buf, binary.LittleEndian, in.PreviousOutPoint.Index)
	wire.WriteVarBytes(&buf, 0, scriptCode)
	binary.Write(&buf, binary.LittleEndian, uint64(value))
	binary.Write(&buf, binary.LittleEndian, in.Sequence)
	buf.Write(hashOutputs[:])
	binary.Write(&buf, binary.LittleEndian, t.msg.LockTime)
	binary.Write(&buf, binary.LittleEndian, uint32(hashType))

	return chainhash.DoubleHashB(buf.Bytes()), nil
}

func (t *Tx) getHashPrevouts(hashType engine.SigHashType) chainhash.Hash {
	if hashType.HasAnyOneCanPay() {
		return chainhash.Hash{}
	}
	if t.hashPrevouts != nil {
		return *t.hashPrevouts
	}
	var buf bytes.Buffer
	for _, in := range t.msg.TxIn {
		buf.Write(in.PreviousOutPoint.Hash[:])
		binary.Write(&buf, binary.LittleEndian, in.PreviousOutPoint.Index)
	}
	h := chainhash.DoubleHashH(buf.Bytes())
	t.hashPrevouts = &h
	return h
}

func (t *Tx) getHashSequence(hashType engine.SigHashType, base engine.SigHashType) chainhash.Hash {
	if hashType.HasAnyOneCanPay() || base == engine.SigHashSingle || base == engine.SigHashNone {
		return chainhash.Hash{}
	}
	if t.hashSequence != nil {
		return *t.hashSequence
	}
	var buf bytes.Buffer
	for _, in := range t.msg.TxIn {
		binary.Write(&buf, binary.LittleEndian, in.Sequence)
	}
	h := chainhash.DoubleHashH(buf.Bytes())
	t.hashSequence = &h
	return h
}

func (t *Tx) getHashOutputs(hashType engine.SigHashType, base engine.SigHashType, inputIndex int) chainhash.Hash {
	switch {
	case base != engine.SigHashSingle && base != engine.SigHashNone:
		if t.hashOutputs != nil {
			return *t.hashOutputs
		}
		var buf bytes.Buffer
		for _, out := range t.msg.TxOut {
			binary.Write(&buf, binary.LittleEndian, uint64(out.Value))
			wire.WriteVarBytes(&buf, 0, out.PkScript)
		}
		h := chainhash.DoubleHashH(buf.Bytes())
		t.hashOutputs = &h
		return h
	case base == engine.SigHashSingle && inputIndex < len(t.msg.TxOut):
		var buf bytes.Buffer
		out := t.msg.TxOut[inputIndex]
		binary.Write(&buf, binary.LittleEndian, uint64(out.Value))
		wire.WriteVarBytes(&buf, 0, out.PkScript)
		return chainhash.DoubleHashH(buf.Bytes())
	default:
		return chainhash.Hash{}
	}
}

var _ engine.Transaction = (*Tx)(nil)
