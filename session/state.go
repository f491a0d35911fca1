package session

import "github.com/tripstack/amaws/header"

// State is the mutable session record of one conversation.
//
// Invariant: Authenticated is true iff SessionID, Sequence and
// SecurityToken are all present and non-empty. State is replaced
// wholesale from each response, never partially mutated from outside.
type State struct {
	SessionID     string
	Sequence      int
	SecurityToken string
	Authenticated bool
}

func (s State) view() header.SessionView {
	return header.SessionView{
		ID:            s.SessionID,
		Sequence:      s.Sequence,
		Token:         s.SecurityToken,
		Authenticated: s.Authenticated,
	}
}

// Status is a Handler's (present) state.
type Status int

const (
	// StatusUnauthenticated is the initial handler state. The next
	// Invoke carries username-token credentials.
	StatusUnauthenticated Status = iota
	// StatusStateful indicates an established stateful session whose
	// continuation frame is sent on every call.
	StatusStateful
	// StatusStateless indicates the handler authenticated once in
	// stateless mode. Terminal with respect to session fields: no
	// frame beyond message identity and addressing is sent again.
	StatusStateless
)

func (s Status) String() string {
	switch s {
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusStateful:
		return "stateful"
	case StatusStateless:
		return "stateless"
	default:
		return "unknown"
	}
}
