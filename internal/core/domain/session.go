package domain

// SessionState is the lifecycle state of the single logical session.
type SessionState string

const (
	// StateAnonymous means no token is held.
	StateAnonymous SessionState = "anonymous"
	// StatePendingProfile means a token is held but the authoritative
	// profile has not been fetched yet; identity is provisional.
	StatePendingProfile SessionState = "pending_profile"
	// StateAuthenticated means token and confirmed (or snapshot) identity
	// are both present.
	StateAuthenticated SessionState = "authenticated"
)

// validSessionTransitions defines the allowed state machine moves. Logout
// and a 401 reset to anonymous from any state, so anonymous is always a
// valid target.
var validSessionTransitions = map[SessionState][]SessionState{
	StateAnonymous:      {StatePendingProfile},
	StatePendingProfile: {StateAuthenticated},
	StateAuthenticated:  {StatePendingProfile},
}

// CanTransitionTo reports whether moving from s to next is a legal step.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	if next == StateAnonymous {
		return true
	}
	for _, allowed := range validSessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Session is the read-only view of the current session handed to UI
// collaborators. The token itself is never serialized.
type Session struct {
	State         SessionState `json:"state"`
	Authenticated bool         `json:"authenticated"`
	User          *UserProfile `json:"user,omitempty"`
	Token         string       `json:"-"`
}
