package header

import (
	"time"

	"github.com/tripstack/amaws/wsdl"
)

// SessionView is the builder's read-only view of the current session
// state. Authenticated is true only when ID, Sequence and Token are
// all present.
type SessionView struct {
	ID            string
	Sequence      int
	Token         string
	Authenticated bool
}

// Options are the per-call builder options
type Options struct {
	// EndSession requests session termination on this call
	EndSession bool
}

// Build assembles the header frame set for one outgoing call.
//
// Message identity, action and destination frames are always emitted.
// An unauthenticated call carries a username-token frame (plus a
// session start frame in stateful mode) and the hosted-user frame.
// An authenticated stateful call carries a session continuation frame,
// InSeries unless opts requests termination. An authenticated
// stateless call carries no further frames.
func Build(view SessionView, auth AuthParameters, stateful bool, meta wsdl.Metadata, opts Options, now time.Time) (Set, error) {
	set := Set{MessageID(), Action(meta.Action), To(meta.Endpoint)}
	switch {
	case !view.Authenticated:
		sec, err := UsernameToken(auth, now)
		if err != nil {
			return nil, err
		}
		set = append(set, sec)
		if stateful {
			set = append(set, Session("", 0, "", StatusStart))
		}
		set = append(set, HostedUser(auth))
	case stateful:
		status := StatusInSeries
		if opts.EndSession {
			status = StatusEnd
		}
		set = append(set, Session(view.ID, view.Sequence, view.Token, status))
	}
	return set, nil
}
