package lifecycle

// State is the readiness of the embedded wallet engine.
type State int32

const (
	Uninitialized State = iota
	EngineStarting
	EngineReady
	WalletStarting
	WalletReady
	// Stopped is terminal.
	Stopped
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case EngineStarting:
		return "engine_starting"
	case EngineReady:
		return "engine_ready"
	case WalletStarting:
		return "wallet_starting"
	case WalletReady:
		return "wallet_ready"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// engineReady reports whether the engine finished bootstrapping in s.
func (s State) engineReady() bool {
	return s >= EngineReady && s < Stopped
}
