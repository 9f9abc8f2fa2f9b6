package engine

import (
	"crypto/sha256"
	"testing"

	"golang.org/x/crypto/ripemd160"
)

// fakeCrypto implements Crypto using the standard library and
// golang.org/x/crypto, independent of btcadapter, so the engine package's
// own tests never import a sibling package.
type fakeCrypto struct{}

func (fakeCrypto) Ripemd160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}

func (fakeCrypto) Sha1(data []byte) []byte { return data }

func (c fakeCrypto) Sha256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

func (c fakeCrypto) Hash160(data []byte) []byte {
	return c.Ripemd160(c.Sha256(data))
}

func (c fakeCrypto) DoubleSha256(data []byte) []byte {
	return c.Sha256(c.Sha256(data))
}

func (fakeCrypto) EcdsaVerifyDER(pubKey, derSig, msgHash []byte) bool {
	return false
}

// fakeTx implements Transaction with fixed fields, enough to exercise
// OP_CHECKLOCKTIMEVERIFY/OP_CHECKSEQUENCEVERIFY without a real wire.MsgTx.
type fakeTx struct {
	version  int32
	lockTime uint32
	sequence uint32
}

func (f fakeTx) Version() int32                      { return f.version }
func (f fakeTx) LockTime() uint32                    { return f.lockTime }
func (f fakeTx) InputSequence(inputIndex int) uint32 { return f.sequence }
func (f fakeTx) SignatureHash(inputIndex int, value int64, scriptCode []byte, hashType SigHashType) ([]byte, error) {
	return nil, nil
}

// fakeScript implements Script over a raw byte slice, for VerifyScript
// tests that don't need btcadapter.
type fakeScript struct {
	bytes    []byte
	pushOnly bool
	isP2SH   bool
}

func (s fakeScript) Bytes() []byte    { return s.bytes }
func (s fakeScript) IsPushOnly() bool { return s.pushOnly }
func (s fakeScript) IsP2SH() bool     { return s.isP2SH }

func testLimits() *Limits {
	return NewLimits(DefaultPolicy(), true, true, false)
}

func newTestEngine(flags Flags) *Engine {
	return NewEngine(testLimits(), flags, fakeTx{}, fakeCrypto{}, 0, 0)
}

func TestEvaluateScriptArithmetic(t *testing.T) {
	t.Parallel()

	// OP_4 OP_3 OP_ADD OP_7 OP_EQUAL
	script := []byte{byte(OP_4), byte(OP_3), byte(OP_ADD), byte(OP_7), byte(OP_EQUAL)}
	vm := newTestEngine(0)
	if err := vm.EvaluateScript(script); err != nil {
		t.Fatal(err)
	}
	if vm.Stack().Len() != 1 || !CastToBool(vm.Stack().At(-1)) {
		t.Errorf("expected script to leave true on the stack")
	}
}

func TestEvaluateScriptDivisionByZero(t *testing.T) {
	t.Parallel()

	script := []byte{byte(OP_4), byte(OP_0), byte(OP_DIV)}
	vm := newTestEngine(0)
	err := vm.EvaluateScript(script)
	if err == nil {
		t.Fatal("expected division by zero to fail")
	}
	if se, ok := err.(*Error); !ok || se.Code != ErrDivisionByZero {
		t.Errorf("got %v, want ErrDivisionByZero", err)
	}
}

func TestEvaluateScriptIfElse(t *testing.T) {
	t.Parallel()

	// OP_0 OP_IF OP_1 OP_ELSE OP_2 OP_ENDIF
	script := []byte{byte(OP_0), byte(OP_IF), byte(OP_1), byte(OP_ELSE), byte(OP_2), byte(OP_ENDIF)}
	vm := newTestEngine(0)
	if err := vm.EvaluateScript(script); err != nil {
		t.Fatal(err)
	}
	if ItemToInt(vm.Stack().At(-1)).Int64() != 2 {
		t.Errorf("expected the else branch to execute")
	}
}

func TestEvaluateScriptUnbalancedConditional(t *testing.T) {
	t.Parallel()

	script := []byte{byte(OP_1), byte(OP_IF), byte(OP_1)}
	vm := newTestEngine(0)
	err := vm.EvaluateScript(script)
	if se, ok := err.(*Error); !ok || se.Code != ErrUnbalancedConditional {
		t.Errorf("got %v, want ErrUnbalancedConditional", err)
	}
}

func TestVerifyScriptP2PKHStyle(t *testing.T) {
	t.Parallel()

	preimage := []byte("hello")
	digest := fakeCrypto{}.Hash160(preimage)

	// scriptSig pushes the preimage; scriptPubKey is
	// OP_DUP OP_HASH160 <digest> OP_EQUALVERIFY.
	scriptSig := pushItem(preimage)
	scriptPubKey := append([]byte{byte(OP_DUP), byte(OP_HASH160)}, pushItem(digest)...)
	scriptPubKey = append(scriptPubKey, byte(OP_EQUALVERIFY), byte(OP_1))

	vm := newTestEngine(0)
	ok, err := vm.VerifyScript(
		fakeScript{bytes: scriptSig, pushOnly: true},
		fakeScript{bytes: scriptPubKey},
	)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected script to verify")
	}
}

func TestVerifyScriptCleanStackRequired(t *testing.T) {
	t.Parallel()

	scriptSig := pushItem([]byte{0x01})
	scriptPubKey := []byte{byte(OP_1)}

	vm := newTestEngine(RequireCleanStack | EnableP2SH)
	_, err := vm.VerifyScript(
		fakeScript{bytes: scriptSig, pushOnly: true},
		fakeScript{bytes: scriptPubKey},
	)
	if se, ok := err.(*Error); !ok || se.Code != ErrCleanStack {
		t.Errorf("got %v, want ErrCleanStack", err)
	}
}

func TestCheckLockTimeVerify(t *testing.T) {
	t.Parallel()

	script := append(pushItem(IntToItem(bigFromInt(500))), byte(OP_CHECKLOCKTIMEVERIFY))

	tx := fakeTx{lockTime: 1000, sequence: 0}
	// CLTV is only enforced for pre-genesis UTXOs; Sanitize clears it
	// otherwise.
	limits := NewLimits(DefaultPolicy(), false, false, false)
	vm := NewEngine(limits, EnableCheckLockTimeVerify, tx, fakeCrypto{}, 0, 0)
	if err := vm.EvaluateScript(script); err != nil {
		t.Fatalf("expected locktime to be satisfied: %v", err)
	}
}

func TestCheckLockTimeVerifyFailsOnFinalSequence(t *testing.T) {
	t.Parallel()

	script := append(pushItem(IntToItem(bigFromInt(500))), byte(OP_CHECKLOCKTIMEVERIFY))

	tx := fakeTx{lockTime: 1000, sequence: sequenceFinal}
	vm := NewEngine(NewLimits(DefaultPolicy(), false, false, false), EnableCheckLockTimeVerify, tx, fakeCrypto{}, 0, 0)
	err := vm.EvaluateScript(script)
	if se, ok := err.(*Error); !ok || se.Code != ErrLockTime {
		t.Errorf("got %v, want ErrLockTime", err)
	}
}
