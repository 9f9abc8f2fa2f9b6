// Package btcadapter wires the engine package's collaborator interfaces
// (engine.Script, engine.Transaction, engine.Crypto) to real Bitcoin
// primitives from the btcsuite stack, the way a node or wallet would.
package btcadapter

import (
	"crypto/sha1"
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ripemd160"

	"github.com/btcscriptvm/scriptvm/engine"
)

// Crypto implements engine.Crypto over btcec/v2 and golang.org/x/crypto.
type Crypto struct {
	log *logrus.Entry
}

// NewCrypto returns a Crypto. log may be nil, in which case a disabled
// logger is used (verification never logs on the success path regardless).
func NewCrypto(log *logrus.Entry) *Crypto {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
		log.Logger.SetOutput(discardWriter{})
	}
	return &Crypto{log: log}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func (c *Crypto) Ripemd160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}

func (c *Crypto) Sha1(data []byte) []byte {
	h := sha1.Sum(data)
	return h[:]
}

func (c *Crypto) Sha256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

func (c *Crypto) Hash160(data []byte) []byte {
	return c.Ripemd160(c.Sha256(data))
}

func (c *Crypto) DoubleSha256(data []byte) []byte {
	return chainhash.DoubleHashB(data)
}

// EcdsaVerifyDER parses pubKey and derSig and reports whether derSig is a
// valid signature over msgHash. Any parse failure is a verification
// failure, not an error, matching the reference interpreter's check_sig,
// which never distinguishes "malformed" from "doesn't verify".
func (c *Crypto) EcdsaVerifyDER(pubKey, derSig, msgHash []byte) bool {
	key, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		c.log.WithError(err).Debug("btcadapter: failed to parse public key")
		return false
	}

	sig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		c.log.WithError(err).Debug("btcadapter: failed to parse DER signature")
		return false
	}

	return sig.Verify(msgHash, key)
}

var _ engine.Crypto = (*Crypto)(nil)
