package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// KeyPair holds the ephemeral Ed25519 identity presented to the remote node
// during a pubsub handshake. It is generated fresh for every run, lives only
// in process memory, and must be wiped as soon as the handshake messages have
// been built.
type KeyPair struct {
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// GenerateKeyPair creates a new Ed25519 key pair from crypto/rand. Every call
// returns an independent key pair; nothing is cached or persisted. The error
// case corresponds to the system CSPRNG failing, which does not happen in
// normal operation.
func GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating identity key: %v", err)
	}

	return &KeyPair{
		Public:  pub,
		Private: priv,
	}, nil
}

// PublicKeyHex returns the hexadecimal representation of the public key.
func (k *KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(k.Public)
}

// Sign signs data with the private key.
func (k *KeyPair) Sign(data []byte) []byte {
	return ed25519.Sign(k.Private, data)
}

// Verify checks a signature produced by Sign against the public key.
func (k *KeyPair) Verify(data, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(k.Public, data, sig)
}

// Wipe zeroes the private key material. The key pair is unusable for signing
// afterwards.
func (k *KeyPair) Wipe() {
	for i := range k.Private {
		k.Private[i] = 0
	}
	k.Private = nil
}
