package session

import (
	"context"

	"github.com/tripstack/amaws/header"
)

// Reply is what a Transport returns for one successful call. The raw
// request and response text accompany the decoded result so faults
// and session data can be diagnosed offline.
type Reply struct {
	// Body is the transport-decoded result payload
	Body interface{}
	// RawRequest is the request message as sent on the wire
	RawRequest string
	// RawResponse is the response message as received on the wire
	RawResponse string
}

// Transport dispatches one call to the remote service. The session
// layer depends only on this contract, not on how body payloads are
// serialized. Implementations fail with a transport fault on network
// or protocol errors, and may return a non-nil Reply alongside the
// error to surface whatever raw exchange text is available for
// logging.
type Transport interface {
	Invoke(ctx context.Context, operation string, body interface{}, headers header.Set) (*Reply, error)
}
