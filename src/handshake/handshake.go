// Package handshake implements the engine that orchestrates a single
// handshake run: resolve the target, connect through the selected transport,
// exchange the handshake payload, and report a terminal outcome.
package handshake

import (
	"errors"
	"net"
	"time"

	"github.com/mosaicnetworks/handshake/src/keys"
	bnet "github.com/mosaicnetworks/handshake/src/net"
	"github.com/mosaicnetworks/handshake/src/target"
	"github.com/sirupsen/logrus"
)

// State tracks the progress of a handshake run.
type State int

const (
	Idle State = iota
	Resolving
	Connecting
	Handshaking
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Resolving:
		return "Resolving"
	case Connecting:
		return "Connecting"
	case Handshaking:
		return "Handshaking"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Outcome is the terminal result of a handshake run. It is the only value
// crossing back to the CLI, which maps Kind to the process exit code. No
// field is mutated after construction.
type Outcome struct {
	Succeeded bool
	Latency   time.Duration
	Detail    string
	Kind      ErrorKind
}

// Engine drives a single connect-then-exchange sequence against a remote
// node: one connection attempt and one handshake exchange per invocation,
// no retries. It is a point-in-time connectivity probe, not a resilient
// client.
type Engine struct {
	transport bnet.Transport
	needsKey  bool
	state     State
	logger    *logrus.Entry
}

// NewEngine returns an Engine bound to a transport. needsKey selects whether
// an ephemeral identity is generated before the handshake; the pubsub path
// requires one, the RPC path does not.
func NewEngine(transport bnet.Transport, needsKey bool, logger *logrus.Entry) *Engine {
	return &Engine{
		transport: transport,
		needsKey:  needsKey,
		state:     Idle,
		logger:    logger,
	}
}

// State returns the engine's current state.
func (e *Engine) State() State {
	return e.state
}

// Run executes the full handshake sequence against the raw ip:port address
// and returns the terminal outcome. The transport is released on every exit
// path.
func (e *Engine) Run(rawAddr string, secure bool) *Outcome {
	start := time.Now()

	e.setState(Resolving)

	t, err := target.Parse(rawAddr, secure)
	if err != nil {
		return e.fail(InvalidAddress, err, start)
	}

	e.setState(Connecting)

	if err := e.transport.Connect(t); err != nil {
		e.transport.Close()
		return e.fail(ConnectFailed, err, start)
	}
	defer e.transport.Close()

	var key *keys.KeyPair
	if e.needsKey {
		key, err = keys.GenerateKeyPair()
		if err != nil {
			return e.fail(IdentityGenerationFailed, err, start)
		}
		// The secret material is only needed to build the handshake
		// message. Zero it as soon as the exchange returns.
		defer key.Wipe()
	}

	e.setState(Handshaking)

	detail, err := e.transport.Handshake(key)
	if err != nil {
		return e.fail(classify(err), err, start)
	}

	e.setState(Succeeded)

	return &Outcome{
		Succeeded: true,
		Latency:   time.Since(start),
		Detail:    detail,
	}
}

func (e *Engine) setState(s State) {
	e.logger.Debugf("State %s => %s", e.state, s)
	e.state = s
}

func (e *Engine) fail(kind ErrorKind, err error, start time.Time) *Outcome {
	e.setState(Failed)

	e.logger.WithError(err).WithField("kind", kind).Error("Handshake failed")

	return &Outcome{
		Latency: time.Since(start),
		Detail:  err.Error(),
		Kind:    kind,
	}
}

// classify maps a handshake-phase error to an outcome kind. A malformed
// response is a protocol mismatch; a deadline expiry is a timeout; anything
// else is a connection-level failure.
func classify(err error) ErrorKind {
	if errors.Is(err, bnet.ErrBadEnvelope) {
		return ProtocolMismatch
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return Timeout
	}

	return ConnectFailed
}
