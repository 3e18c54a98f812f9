package handshake

// ErrorKind classifies the terminal failure of a handshake run. Every kind
// maps to a distinct process exit code so scripts can tell failures apart.
type ErrorKind int

const (
	// None means the run succeeded.
	None ErrorKind = iota

	// InvalidAddress: the supplied address failed syntactic validation.
	// Detected before any I/O.
	InvalidAddress

	// ConnectFailed: socket or TLS-level failure, or timeout, while
	// establishing the transport.
	ConnectFailed

	// ProtocolMismatch: the transport connected but the remote's response
	// does not conform to the expected handshake schema.
	ProtocolMismatch

	// Timeout: the handshake exchange did not complete in time.
	Timeout

	// IdentityGenerationFailed: the system CSPRNG failed while generating
	// the ephemeral identity. Practically unreachable.
	IdentityGenerationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case None:
		return "none"
	case InvalidAddress:
		return "invalid-address"
	case ConnectFailed:
		return "connect-failed"
	case ProtocolMismatch:
		return "protocol-mismatch"
	case Timeout:
		return "timeout"
	case IdentityGenerationFailed:
		return "identity-generation-failed"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit code for the kind. 0 is success.
func (k ErrorKind) ExitCode() int {
	return int(k)
}
