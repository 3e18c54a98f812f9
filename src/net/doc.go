// Package net implements the two transport variants used to handshake with a
// remote cluster node.
//
// The RPCTransport speaks request/response JSON-RPC over HTTP(S). The
// WSTransport opens a persistent WebSocket (WS/WSS) and exchanges a single
// subscription frame. Both satisfy the Transport interface consumed by the
// handshake engine: Connect establishes the channel, Handshake performs one
// exchange, and Close releases the connection on every exit path.
package net
