package net

import (
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/mosaicnetworks/handshake/src/common"
	"github.com/mosaicnetworks/handshake/src/target"
	"github.com/sirupsen/logrus"
)

const testTimeout = 3 * time.Second

// testTarget converts an httptest server URL into a Target.
func testTarget(t *testing.T, rawurl string, secure bool) *target.Target {
	u, err := url.Parse(rawurl)
	if err != nil {
		t.Fatal(err)
	}

	tgt, err := target.Parse(u.Host, secure)
	if err != nil {
		t.Fatal(err)
	}

	return tgt
}

// freeTarget returns a target on a port with no listener.
func freeTarget(t *testing.T) *target.Target {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	addr := ln.Addr().String()
	ln.Close()

	tgt, err := target.Parse(addr, false)
	if err != nil {
		t.Fatal(err)
	}

	return tgt
}

func TestRPCHandshake(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"version":"1.18.4","feature-set":1234}}`))
	}))
	defer server.Close()

	trans := NewRPCTransport(testTimeout, false, common.NewTestEntry(t, logrus.DebugLevel))
	defer trans.Close()

	if err := trans.Connect(testTarget(t, server.URL, false)); err != nil {
		t.Fatal(err)
	}

	detail, err := trans.Handshake(nil)
	if err != nil {
		t.Fatal(err)
	}

	if detail == "" {
		t.Fatal("detail should not be empty")
	}
}

func TestRPCHandshakeRemoteError(t *testing.T) {
	// A JSON-RPC error envelope is still a conformant response. The remote
	// answered and demonstrably speaks the protocol.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"Method not found"}}`))
	}))
	defer server.Close()

	trans := NewRPCTransport(testTimeout, false, common.NewTestEntry(t, logrus.DebugLevel))
	defer trans.Close()

	if err := trans.Connect(testTarget(t, server.URL, false)); err != nil {
		t.Fatal(err)
	}

	detail, err := trans.Handshake(nil)
	if err != nil {
		t.Fatal(err)
	}

	if detail != "remote error -32601: Method not found" {
		t.Fatalf("unexpected detail: %s", detail)
	}
}

func TestRPCHandshakeMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	trans := NewRPCTransport(testTimeout, false, common.NewTestEntry(t, logrus.DebugLevel))
	defer trans.Close()

	if err := trans.Connect(testTarget(t, server.URL, false)); err != nil {
		t.Fatal(err)
	}

	if _, err := trans.Handshake(nil); !errors.Is(err, ErrBadEnvelope) {
		t.Fatalf("expected ErrBadEnvelope, got %v", err)
	}
}

func TestRPCHandshakeBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer server.Close()

	trans := NewRPCTransport(testTimeout, false, common.NewTestEntry(t, logrus.DebugLevel))
	defer trans.Close()

	if err := trans.Connect(testTarget(t, server.URL, false)); err != nil {
		t.Fatal(err)
	}

	if _, err := trans.Handshake(nil); !errors.Is(err, ErrBadEnvelope) {
		t.Fatalf("expected ErrBadEnvelope, got %v", err)
	}
}

func TestRPCConnectRefused(t *testing.T) {
	trans := NewRPCTransport(testTimeout, false, common.NewTestEntry(t, logrus.DebugLevel))
	defer trans.Close()

	if err := trans.Connect(freeTarget(t)); err == nil {
		t.Fatal("Connect should fail when nothing is listening")
	}
}

func TestRPCHandshakeBeforeConnect(t *testing.T) {
	trans := NewRPCTransport(testTimeout, false, common.NewTestEntry(t, logrus.DebugLevel))

	if _, err := trans.Handshake(nil); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}
