package net

import (
	"errors"

	"github.com/mosaicnetworks/handshake/src/keys"
	"github.com/mosaicnetworks/handshake/src/target"
)

var (
	// ErrNotConnected is returned by Handshake when Connect was not called
	// or did not succeed.
	ErrNotConnected = errors.New("transport is not connected")

	// ErrNoIdentity is returned by transports that require a node identity
	// when none is supplied.
	ErrNoIdentity = errors.New("no identity key pair")

	// ErrBadEnvelope indicates that the remote answered, but the response
	// does not conform to the expected handshake schema. The engine
	// translates it into a ProtocolMismatch outcome.
	ErrBadEnvelope = errors.New("malformed handshake response")
)

// Transport is implemented by the two connection variants, RPC and WS. The
// variant is selected by the CLI subcommand; the engine only sees this
// interface.
type Transport interface {
	// Connect opens the underlying channel to the target. A network-level
	// failure (refused connection, TLS failure, timeout) surfaces here.
	Connect(t *target.Target) error

	// Handshake performs a single request/response exchange over the open
	// channel and returns a human-readable detail string on success. The
	// key pair is required by the pubsub variant and ignored by the RPC
	// variant.
	Handshake(key *keys.KeyPair) (string, error)

	// Close releases the connection. It must be safe to call on every exit
	// path, including after a failed Connect.
	Close() error
}
