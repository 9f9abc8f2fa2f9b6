package engine

// Flags is a bitfield of interpreter behaviors that vary by consensus
// epoch and by mempool/relay policy. Flags are sanitized (Sanitize) once
// at Engine construction so handlers never have to reason about
// contradictory combinations.
type Flags uint32

const (
	// RequireMinimalPush requires the most compact opcode for pushing
	// stack data, and minimal encoding of numbers.
	RequireMinimalPush Flags = 1 << iota
	// RequireMinimalIf requires the top of stack on OP_IF/OP_NOTIF to be
	// a canonical boolean item.
	RequireMinimalIf
	// RequireStrictDER enforces strict DER signature encoding.
	RequireStrictDER
	// RequireLowS enforces low-S signatures.
	RequireLowS
	// RequireStrictEncoding enforces sighash-byte and public-key
	// encoding checks.
	RequireStrictEncoding
	// RequireNullFail fails the script immediately if a failed
	// signature check did not use an empty signature.
	RequireNullFail
	// RequireNullDummy fails the script if OP_CHECKMULTISIG's extra
	// stack argument is not empty.
	RequireNullDummy
	// RejectUpgradeableNops fails the script if an upgradeable NOP is
	// encountered.
	RejectUpgradeableNops
	// EnableForkID marks FORKID-style (post BTC/BCH split) sighash
	// rules as active.
	EnableForkID
	// EnableCheckLockTimeVerify permits OP_CHECKLOCKTIMEVERIFY.
	EnableCheckLockTimeVerify
	// EnableCheckSequenceVerify permits OP_CHECKSEQUENCEVERIFY.
	EnableCheckSequenceVerify
	// EnableP2SH makes VerifyScript apply BIP16 pay-to-script-hash
	// handling.
	EnableP2SH
	// RequirePushOnly requires scriptSig to contain only data pushes.
	RequirePushOnly
	// RequireCleanStack requires exactly one item remain on the stack
	// when VerifyScript finishes.
	RequireCleanStack
)

// MandatoryVerifyFlags is the flag set new blocks must comply with.
const MandatoryVerifyFlags = RequireStrictEncoding | RequireLowS | RequireNullFail |
	EnableForkID | EnableP2SH

// StandardVerifyFlags is the flag set standard (relay/mempool-accepted)
// transactions must comply with; stricter than MandatoryVerifyFlags.
const StandardVerifyFlags = MandatoryVerifyFlags | RequireStrictDER | RequireMinimalPush |
	RequireNullDummy | RejectUpgradeableNops | RequireCleanStack |
	EnableCheckLockTimeVerify | EnableCheckSequenceVerify

// Sanitize resolves contradictions between flags so opcode handlers never
// see an inconsistent combination:
//
//   - FORKID implies strict sighash-byte encoding checks.
//   - CLEANSTACK is meaningless (and unenforceable) without P2SH, since a
//     P2SH scriptSig's leftover redeem-script push would otherwise always
//     violate it.
//   - A handful of features (CLTV, CSV, P2SH) only apply to pre-genesis
//     evaluation; post-genesis UTXOs disable them unconditionally.
func (f Flags) Sanitize(isUTXOAfterGenesis bool) Flags {
	if f&EnableForkID != 0 {
		f |= RequireStrictEncoding
	}

	if f&EnableP2SH == 0 {
		f &^= RequireCleanStack
	}

	if isUTXOAfterGenesis {
		f &^= EnableCheckLockTimeVerify | EnableCheckSequenceVerify | EnableP2SH
	}

	return f
}
