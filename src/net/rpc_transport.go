package net

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"time"

	"github.com/mosaicnetworks/handshake/src/keys"
	"github.com/mosaicnetworks/handshake/src/target"
	"github.com/sirupsen/logrus"
)

// maxResponseBytes bounds how much of the response body is read. A handshake
// response is a small JSON document; anything bigger is not one.
const maxResponseBytes = 1 << 20

// RPCTransport is the request/response variant. It speaks JSON-RPC 2.0 over
// HTTP POST, or HTTPS when the target is secure. No persistent socket is
// held; each handshake is an independent request.
type RPCTransport struct {
	timeout    time.Duration
	skipVerify bool
	logger     *logrus.Entry

	url    string
	client *http.Client
}

// NewRPCTransport returns an RPC transport. The timeout applies separately
// to the connect probe and to the handshake request.
func NewRPCTransport(timeout time.Duration, skipVerify bool, logger *logrus.Entry) *RPCTransport {
	return &RPCTransport{
		timeout:    timeout,
		skipVerify: skipVerify,
		logger:     logger,
	}
}

// Connect implements the Transport interface. It builds the base URL from
// the target and probes the TCP endpoint, so that an unreachable node is
// reported as a connection failure rather than a failed exchange.
func (r *RPCTransport) Connect(t *target.Target) error {
	r.url = t.HTTPURL()

	conn, err := net.DialTimeout("tcp", t.String(), r.timeout)
	if err != nil {
		return err
	}
	conn.Close()

	r.client = &http.Client{
		Timeout: r.timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: r.skipVerify},
		},
	}

	r.logger.WithField("url", r.url).Debug("Connected to rpc endpoint")

	return nil
}

// Handshake implements the Transport interface. It POSTs a version query and
// validates the JSON-RPC envelope of the answer. The key pair is not used on
// this path.
func (r *RPCTransport) Handshake(_ *keys.KeyPair) (string, error) {
	if r.client == nil {
		return "", ErrNotConnected
	}

	payload, err := NewVersionRequest().Marshal()
	if err != nil {
		return "", err
	}

	r.logger.WithField("payload", string(payload)).Debug("Sending handshake request")

	resp, err := r.client.Post(r.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: HTTP status %s", ErrBadEnvelope, resp.Status)
	}

	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", err
	}

	envelope := new(Response)
	if err := envelope.Unmarshal(body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}

	if err := envelope.Validate(); err != nil {
		return "", err
	}

	return envelope.Detail(), nil
}

// Close implements the Transport interface.
func (r *RPCTransport) Close() error {
	if r.client != nil {
		r.client.CloseIdleConnections()
		r.client = nil
	}
	return nil
}
