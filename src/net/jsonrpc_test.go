package net

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/mosaicnetworks/handshake/src/keys"
)

func TestVersionRequest(t *testing.T) {
	raw, err := NewVersionRequest().Marshal()
	if err != nil {
		t.Fatal(err)
	}

	payload := string(raw)

	if !strings.Contains(payload, `"jsonrpc":"2.0"`) {
		t.Fatalf("missing jsonrpc version: %s", payload)
	}

	if !strings.Contains(payload, `"method":"getVersion"`) {
		t.Fatalf("missing method: %s", payload)
	}
}

func TestSubscribeRequestCarriesIdentity(t *testing.T) {
	key, err := keys.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	req := NewSubscribeRequest(key)

	if req.Method != MethodSubscribe {
		t.Fatalf("method should be %s, not %s", MethodSubscribe, req.Method)
	}

	if len(req.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(req.Params))
	}

	param, ok := req.Params[0].(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected param type %T", req.Params[0])
	}

	if param["identity"] != key.PublicKeyHex() {
		t.Fatal("identity should be the key pair's public key")
	}

	// The signature proves the caller holds the private half of the
	// advertised identity.
	sig, err := hex.DecodeString(param["signature"].(string))
	if err != nil {
		t.Fatal(err)
	}

	if !key.Verify([]byte(MethodSubscribe), sig) {
		t.Fatal("signature should verify against the advertised identity")
	}
}

func TestResponseValidate(t *testing.T) {
	good := [][]byte{
		[]byte(`{"jsonrpc":"2.0","id":1,"result":{"version":"1.18.4"}}`),
		[]byte(`{"jsonrpc":"2.0","id":1,"result":0}`),
		[]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"Method not found"}}`),
	}

	for _, raw := range good {
		resp := new(Response)
		if err := resp.Unmarshal(raw); err != nil {
			t.Fatalf("Unmarshal(%s): %v", raw, err)
		}
		if err := resp.Validate(); err != nil {
			t.Fatalf("Validate(%s): %v", raw, err)
		}
	}

	bad := [][]byte{
		[]byte(`{"jsonrpc":"1.0","id":1,"result":0}`), // wrong version
		[]byte(`{"jsonrpc":"2.0","id":1}`),            // neither result nor error
		[]byte(`{"id":1,"result":0}`),                 // missing version
	}

	for _, raw := range bad {
		resp := new(Response)
		if err := resp.Unmarshal(raw); err != nil {
			t.Fatalf("Unmarshal(%s): %v", raw, err)
		}
		if err := resp.Validate(); !errors.Is(err, ErrBadEnvelope) {
			t.Fatalf("Validate(%s) should fail with ErrBadEnvelope, got %v", raw, err)
		}
	}
}
