package net

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"reflect"

	"github.com/mosaicnetworks/handshake/src/keys"
	"github.com/ugorji/go/codec"
)

// JSON-RPC methods understood by the remote node.
const (
	MethodGetVersion = "getVersion"
	MethodSubscribe  = "slotSubscribe"
)

// handshakeID is the request id used for the single exchange of a run.
const handshakeID = 1

func jsonHandle() *codec.JsonHandle {
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	jh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	return jh
}

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

// NewVersionRequest builds the handshake payload for the RPC path: a version
// query which any live, protocol-compatible node answers.
func NewVersionRequest() *Request {
	return &Request{
		JSONRPC: "2.0",
		ID:      handshakeID,
		Method:  MethodGetVersion,
	}
}

// NewSubscribeRequest builds the hello frame for the pubsub path: a
// subscription request tagged with the caller's ephemeral identity. The
// signature covers the method name, so the remote can check that the caller
// holds the private half of the advertised key.
func NewSubscribeRequest(key *keys.KeyPair) *Request {
	return &Request{
		JSONRPC: "2.0",
		ID:      handshakeID,
		Method:  MethodSubscribe,
		Params: []interface{}{
			map[string]interface{}{
				"identity":  key.PublicKeyHex(),
				"signature": hex.EncodeToString(key.Sign([]byte(MethodSubscribe))),
			},
		},
	}
}

// Marshal - json encoding of Request
func (r *Request) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	enc := codec.NewEncoder(b, jsonHandle())

	if err := enc.Encode(r); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Response is a JSON-RPC 2.0 response envelope. Result is left untyped
// because the two handshake methods return different shapes; the handshake
// only cares that the envelope itself is well-formed.
type Response struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      uint64         `json:"id"`
	Result  interface{}    `json:"result"`
	Error   *ResponseError `json:"error"`
}

// ResponseError is the error member of a JSON-RPC 2.0 response.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Unmarshal - json decoding of Response
func (r *Response) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	dec := codec.NewDecoder(b, jsonHandle())

	if err := dec.Decode(r); err != nil {
		return err
	}

	return nil
}

// Validate checks that the response is a conformant JSON-RPC 2.0 envelope
// containing either a result or an error. Anything else means the remote
// does not speak the expected handshake protocol.
func (r *Response) Validate() error {
	if r.JSONRPC != "2.0" {
		return fmt.Errorf("%w: jsonrpc version %q", ErrBadEnvelope, r.JSONRPC)
	}

	if r.Result == nil && r.Error == nil {
		return fmt.Errorf("%w: neither result nor error present", ErrBadEnvelope)
	}

	return nil
}

// Detail returns a compact string describing the response, used in logs and
// in the outcome reported to the caller.
func (r *Response) Detail() string {
	if r.Error != nil {
		return fmt.Sprintf("remote error %d: %s", r.Error.Code, r.Error.Message)
	}

	raw, err := encodeValue(r.Result)
	if err != nil {
		return fmt.Sprintf("%v", r.Result)
	}

	return string(raw)
}

func encodeValue(v interface{}) ([]byte, error) {
	b := new(bytes.Buffer)
	enc := codec.NewEncoder(b, jsonHandle())

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
