package engine

import "math"

// Policy holds the miner-tunable caps that apply to post-genesis,
// non-consensus (mempool/relay) script evaluation. Consensus evaluation
// ignores these in favor of the wider protocol-fixed limits; pre-genesis
// evaluation ignores these in favor of the narrower legacy limits.
type Policy struct {
	MaxScriptSize          int64
	MaxScriptNumLength     int64
	MaxStackMemoryUsage    int64
	MaxOpsPerScript        int64
	MaxPubkeysPerMultisig  int64
}

// DefaultPolicy mirrors the values a Bitcoin SV node ships as its default
// mempool policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxScriptSize:         10_000_000,
		MaxScriptNumLength:    maxScriptNumLengthAfterGenesis,
		MaxStackMemoryUsage:   10_000_000,
		MaxOpsPerScript:       500_000,
		MaxPubkeysPerMultisig: 4_294_967_295,
	}
}

const (
	maxScriptSizeBeforeGenesis        = 10_000
	maxScriptSizeAfterGenesis         = int64(math.MaxUint32)
	maxScriptNumLengthBeforeGenesis   = 4
	maxScriptNumLengthAfterGenesis    = 750_000
	maxScriptElementSizeBeforeGenesis = 520
	maxStackElementsBeforeGenesis     = 1_000
	maxStackMemoryUsageAfterGenesis   = math.MaxInt64
	maxOpsPerScriptBeforeGenesis      = 500
	maxOpsPerScriptAfterGenesis       = int64(math.MaxUint32)
	maxPubkeysBeforeGenesis           = 20
	maxPubkeysAfterGenesis            = int64(math.MaxUint32)
	maxItemSizeAfterGenesis           = int64(math.MaxUint64 >> 1) // practical ceiling, fits int64
)

// Limits is the fully-resolved set of numeric bounds that apply to one
// evaluation, derived from a Policy plus the genesis/consensus context by
// NewLimits. Unlike Policy, every field here is already the correct
// number to enforce directly.
type Limits struct {
	ScriptSize           int64
	ScriptNumLength      int64
	StackMemoryUsage     int64
	OpsPerScript         int64
	PubkeysPerMultisig   int64
	ItemSize             int64
	IsUTXOAfterGenesis   bool
}

// NewLimits derives the Limits to enforce for one script evaluation.
//
//   - isGenesisEnabled: the genesis upgrade is active at the spending
//     transaction's height.
//   - isUTXOAfterGenesis: the UTXO being spent was created at or after
//     the genesis activation height. Implies isGenesisEnabled.
//   - isConsensus: true for block validation (wide protocol-fixed
//     limits), false for mempool/relay policy (policy's tighter limits).
func NewLimits(policy Policy, isGenesisEnabled, isUTXOAfterGenesis, isConsensus bool) *Limits {
	return &Limits{
		ScriptSize:         maxScriptSizeRule(policy, isGenesisEnabled, isConsensus),
		ScriptNumLength:    maxScriptNumLengthRule(policy, isUTXOAfterGenesis, isConsensus),
		StackMemoryUsage:   maxStackMemoryUsageRule(policy, isUTXOAfterGenesis, isConsensus),
		OpsPerScript:       maxOpsPerScriptRule(policy, isGenesisEnabled, isConsensus),
		PubkeysPerMultisig: maxPubkeysPerMultisigRule(policy, isUTXOAfterGenesis, isConsensus),
		ItemSize:           maxItemSizeRule(isUTXOAfterGenesis),
		IsUTXOAfterGenesis: isUTXOAfterGenesis,
	}
}

func maxScriptSizeRule(policy Policy, isGenesisEnabled, isConsensus bool) int64 {
	if isGenesisEnabled {
		if isConsensus {
			return maxScriptSizeAfterGenesis
		}
		return policy.MaxScriptSize
	}
	return maxScriptSizeBeforeGenesis
}

func maxScriptNumLengthRule(policy Policy, isUTXOAfterGenesis, isConsensus bool) int64 {
	if isUTXOAfterGenesis {
		if isConsensus {
			return maxScriptNumLengthAfterGenesis
		}
		return policy.MaxScriptNumLength
	}
	return maxScriptNumLengthBeforeGenesis
}

func maxStackMemoryUsageRule(policy Policy, isUTXOAfterGenesis, isConsensus bool) int64 {
	if isUTXOAfterGenesis {
		if isConsensus {
			return maxStackMemoryUsageAfterGenesis
		}
		return policy.MaxStackMemoryUsage
	}
	// Before genesis the 1000-item stack-count limit binds instead.
	return math.MaxInt64
}

func maxOpsPerScriptRule(policy Policy, isGenesisEnabled, isConsensus bool) int64 {
	if isGenesisEnabled {
		if isConsensus {
			return maxOpsPerScriptAfterGenesis
		}
		return policy.MaxOpsPerScript
	}
	return maxOpsPerScriptBeforeGenesis
}

func maxPubkeysPerMultisigRule(policy Policy, isUTXOAfterGenesis, isConsensus bool) int64 {
	if isUTXOAfterGenesis {
		if isConsensus {
			return maxPubkeysAfterGenesis
		}
		return policy.MaxPubkeysPerMultisig
	}
	return maxPubkeysBeforeGenesis
}

func maxItemSizeRule(isUTXOAfterGenesis bool) int64 {
	if isUTXOAfterGenesis {
		return maxItemSizeAfterGenesis
	}
	return maxScriptElementSizeBeforeGenesis
}
