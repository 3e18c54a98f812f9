package net

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mosaicnetworks/handshake/src/keys"
	"github.com/mosaicnetworks/handshake/src/target"
	"github.com/sirupsen/logrus"
)

// closeGracePeriod is how long Close waits for the close message to be
// written before tearing down the socket.
const closeGracePeriod = time.Second

// WSTransport is the pubsub variant. It upgrades the connection to a
// WebSocket (WSS when the target is secure), sends a single subscription
// hello frame carrying the node identity, and reads the first frame of the
// answer. It is a one-shot liveness check, not a persistent subscriber.
type WSTransport struct {
	timeout    time.Duration
	skipVerify bool
	logger     *logrus.Entry

	conn *websocket.Conn
}

// NewWSTransport returns a WebSocket transport. The timeout applies
// separately to the upgrade and to the frame exchange.
func NewWSTransport(timeout time.Duration, skipVerify bool, logger *logrus.Entry) *WSTransport {
	return &WSTransport{
		timeout:    timeout,
		skipVerify: skipVerify,
		logger:     logger,
	}
}

// Connect implements the Transport interface. It performs the HTTP Upgrade
// and keeps the socket open for the handshake.
func (w *WSTransport) Connect(t *target.Target) error {
	url := t.WSURL()

	dialer := &websocket.Dialer{
		HandshakeTimeout: w.timeout,
		TLSClientConfig:  &tls.Config{InsecureSkipVerify: w.skipVerify},
	}

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return err
	}

	w.conn = conn

	w.logger.WithField("url", url).Debug("Connected to websocket endpoint")

	return nil
}

// Handshake implements the Transport interface. It sends the subscription
// hello frame and validates the first frame of the response as a JSON-RPC
// envelope.
func (w *WSTransport) Handshake(key *keys.KeyPair) (string, error) {
	if w.conn == nil {
		return "", ErrNotConnected
	}

	if key == nil {
		return "", ErrNoIdentity
	}

	payload, err := NewSubscribeRequest(key).Marshal()
	if err != nil {
		return "", err
	}

	w.logger.WithField("payload", string(payload)).Debug("Sending hello frame")

	w.conn.SetWriteDeadline(time.Now().Add(w.timeout))
	if err := w.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return "", err
	}

	w.conn.SetReadDeadline(time.Now().Add(w.timeout))
	messageType, raw, err := w.conn.ReadMessage()
	if err != nil {
		return "", err
	}

	if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
		return "", fmt.Errorf("%w: unexpected frame type %d", ErrBadEnvelope, messageType)
	}

	envelope := new(Response)
	if err := envelope.Unmarshal(raw); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}

	if err := envelope.Validate(); err != nil {
		return "", err
	}

	return envelope.Detail(), nil
}

// Close implements the Transport interface. It attempts a clean close
// message before releasing the socket, and runs on every exit path so no
// connection is left dangling.
func (w *WSTransport) Close() error {
	if w.conn == nil {
		return nil
	}

	w.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeGracePeriod),
	)

	err := w.conn.Close()
	w.conn = nil

	return err
}
