// Package engine implements a Bitcoin Script virtual machine: the stack
// machine that evaluates scriptSig/scriptPubKey pairs (and the inner P2SH
// redeem script) to decide whether a transaction input is authorized to
// spend the output it references.
//
// The package is deliberately self-contained: it never imports a
// transaction wire format, a hashing library, or a signature scheme
// directly. Instead it is driven entirely through the Script, Transaction
// and Crypto interfaces declared in interfaces.go. Concrete
// implementations of those interfaces, wired to real btcsuite/btcd types,
// live in github.com/btcscriptvm/scriptvm/btcadapter.
//
// The engine supports the two Bitcoin SV rule regimes that matter for
// script evaluation: the tight pre-genesis consensus rules and the looser
// post-genesis rules (consensus and policy). Which regime applies to a
// given UTXO is supplied by the caller via Limits, not inferred by the
// engine.
package engine
