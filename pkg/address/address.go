package address

import (
	"crypto/sha256"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for the network's address checksum scheme
)

// versionPrefix is prepended to the RIPEMD160 hash before Base58Check
// encoding: 0x02 0xe4, not Bitcoin's 0x00.
var versionPrefix = []byte{0x02, 0xe4}

// checksumQuirkByte is prefixed to the checksum preimage. This is a
// project-specific quirk inherited from the reference implementation and
// MUST be preserved bit-for-bit: addresses computed without it will not
// match the network's addresses.
const checksumQuirkByte = 0x69

// Derive computes the Base58Check address for a public key:
//
//	Base58(0x02 0xe4 || RIPEMD160(SHA256(pubkey)) || checksum[0:4])
//	checksum = SHA256(SHA256(0x69 || RIPEMD160(SHA256(pubkey))))
func Derive(pub PublicKey) string {
	shaPub := sha256.Sum256(pub[:])
	ripe := ripemd160.New()
	ripe.Write(shaPub[:])
	pubHash := ripe.Sum(nil)

	payload := append(append([]byte{}, versionPrefix...), pubHash...)

	preimage := append([]byte{checksumQuirkByte}, pubHash...)
	inner := sha256.Sum256(preimage)
	outer := sha256.Sum256(inner[:])
	checksum := outer[:4]

	return base58.Encode(append(payload, checksum...))
}

// AddressFromPrivateKey derives a private key's Base58Check address directly.
func AddressFromPrivateKey(pk *PrivateKey) string {
	return Derive(pk.PublicKey())
}

// Signing an input's spend authorization goes through tx.Input.SigningMessage
// (hex prev_tx_hash || output_index || address || index) and PrivateKey.Sign
// directly; there is no address-package helper for it, to avoid a second
// byte layout that can drift from the one internal/txverify checks against.
