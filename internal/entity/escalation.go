package entity

// Escalation records what happened on the remote-upgrade path so the caller
// can surface a retry or upgrade prompt. It annotates a local result that was
// kept after a failed or denied escalation; on a successful escalation it is
// attached to the remote result instead.
type Escalation struct {
	Attempted bool `json:"attempted"`
	Succeeded bool `json:"succeeded"`

	// FailureCode is the gRPC code string of the failure ("ResourceExhausted",
	// "PermissionDenied", ...), empty on success.
	FailureCode string `json:"failure_code,omitempty"`
	Message     string `json:"message,omitempty"`

	// ActionRequired is true for failures the user can resolve themselves
	// (no active entitlement, quota exhausted); transient network failures
	// leave it false.
	ActionRequired bool `json:"action_required,omitempty"`
}
