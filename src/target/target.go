package target

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ErrInvalidAddress is returned when the supplied address is not a
// syntactically valid IPv4 ip:port pair.
var ErrInvalidAddress = errors.New("invalid address")

// Target identifies the remote node of a handshake attempt. It is built once
// from CLI input and never mutated afterwards.
type Target struct {
	IP     string
	Port   uint16
	Secure bool
}

// Parse validates a raw "ip:port" string and returns the corresponding
// Target. The host segment must be a dotted-quad IPv4 address and the port an
// unsigned 16-bit integer. Validation is purely syntactic; there is no DNS
// resolution and no reachability check. The secure flag is carried through
// unchanged.
func Parse(raw string, secure bool) (*Target, error) {
	host, portStr, err := net.SplitHostPort(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, raw)
	}

	ip := net.ParseIP(host)
	if ip == nil || ip.To4() == nil || strings.Count(host, ".") != 3 {
		return nil, fmt.Errorf("%w: %s is not an IPv4 address", ErrInvalidAddress, host)
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: bad port %s", ErrInvalidAddress, portStr)
	}

	return &Target{
		IP:     ip.String(),
		Port:   uint16(port),
		Secure: secure,
	}, nil
}

// String returns the plain ip:port form of the target.
func (t *Target) String() string {
	return net.JoinHostPort(t.IP, strconv.Itoa(int(t.Port)))
}

// HTTPURL returns the base URL for the request/response transport. The
// scheme is https when the target is secure, http otherwise.
func (t *Target) HTTPURL() string {
	if t.Secure {
		return fmt.Sprintf("https://%s", t.String())
	}
	return fmt.Sprintf("http://%s", t.String())
}

// WSURL returns the base URL for the pubsub transport. The scheme is wss
// when the target is secure, ws otherwise.
func (t *Target) WSURL() string {
	if t.Secure {
		return fmt.Sprintf("wss://%s", t.String())
	}
	return fmt.Sprintf("ws://%s", t.String())
}
