// Package keys implements the ephemeral identity used during a pubsub
// handshake.
//
// A node taking part in the cluster's gossip protocol identifies itself with
// an Ed25519 key pair. This tool only verifies connectivity, so it does not
// need a durable peer identity; every invocation generates a fresh key pair,
// uses it to frame the handshake message, and discards it. Nothing is ever
// written to disk.
package keys
