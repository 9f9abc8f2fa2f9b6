package engine

// SigHashType is the byte appended to an ECDSA signature describing which
// parts of the transaction it commits to.
type SigHashType byte

const (
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashForkID       SigHashType = 0x40
	SigHashAnyOneCanPay SigHashType = 0x80

	sigHashMask = 0x1f
)

// FromSigBytes extracts the SigHashType byte trailing a DER-encoded
// signature. It returns 0 (undefined) if sig is empty.
func FromSigBytes(sig []byte) SigHashType {
	if len(sig) == 0 {
		return 0
	}
	return SigHashType(sig[len(sig)-1])
}

// BaseType returns the SigHashAll/None/Single component, stripping the
// FORKID and ANYONECANPAY modifier bits.
func (h SigHashType) BaseType() SigHashType {
	return h & sigHashMask
}

// IsDefined reports whether h's base type is one of ALL/NONE/SINGLE.
func (h SigHashType) IsDefined() bool {
	switch h.BaseType() {
	case SigHashAll, SigHashNone, SigHashSingle:
		return true
	default:
		return false
	}
}

// HasForkID reports whether the FORKID modifier bit is set.
func (h SigHashType) HasForkID() bool {
	return h&SigHashForkID != 0
}

// HasAnyOneCanPay reports whether the ANYONECANPAY modifier bit is set.
func (h SigHashType) HasAnyOneCanPay() bool {
	return h&SigHashAnyOneCanPay != 0
}
