package session

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/tripstack/amaws/header"
	"github.com/tripstack/amaws/wsdl"
	"github.com/tripstack/amaws/wserr"
	"github.com/tripstack/amaws/xmlutil"
)

// Config contains Handler configuration
type Config struct {
	// Auth holds the conversation's authentication parameters
	Auth header.AuthParameters
	// Stateful selects multi-call session mode. Set once; governs
	// whether session continuation frames are ever emitted.
	Stateful bool
	// Logger is the logging sink. Nil selects GlogSink.
	Logger Logger
}

// Options are per-Invoke options
type Options struct {
	// AsString returns the raw response text as the result body
	// instead of the transport's decoded result
	AsString bool
	// EndSession terminates the session on this call
	EndSession bool
}

// Result is the outcome of one Invoke
type Result struct {
	// Body is the transport-decoded result, or the raw response text
	// when Options.AsString was set
	Body interface{}
	// Raw is the raw response text
	Raw string
}

// New returns a new Handler driving calls through t, resolving
// operation metadata from the already-loaded description resolver.
func New(t Transport, resolver *wsdl.Resolver, config Config) *Handler {
	h := &Handler{
		Config:    &config,
		State:     &State{},
		transport: t,
		resolver:  resolver,
		meta:      map[string]wsdl.Metadata{},
		log:       config.Logger,
		now:       time.Now,
	}
	if h.log == nil {
		h.log = GlogSink{}
	}
	return h
}

// Handler orchestrates one logical conversation: it builds the header
// set for each call, dispatches it through the Transport and updates
// session state from the response.
//
// A Handler is not safe for concurrent use.
type Handler struct {
	Config *Config
	State  *State

	transport Transport
	resolver  *wsdl.Resolver
	meta      map[string]wsdl.Metadata
	log       Logger
	now       func() time.Time

	// stateless records that the first call of a stateless-mode
	// conversation completed. Never cleared once set.
	stateless bool
}

// operations this layer refuses before any network call
var unsupported = map[string]string{
	"Security_Authenticate":   "legacy explicit authentication flow is not supported",
	"PAY_GenerateVirtualCard": "payment flows are not supported",
	"PAY_DeleteVirtualCard":   "payment flows are not supported",
}

// Status returns the handler's present state
func (h *Handler) Status() Status {
	switch {
	case h.State.Authenticated && h.Config.Stateful:
		return StatusStateful
	case h.stateless:
		return StatusStateless
	default:
		return StatusUnauthenticated
	}
}

// Invoke dispatches one call for the named operation.
//
// Transport faults are logged with the raw request and response text
// and re-raised as a transport error; they are never retried here and
// leave the session state untouched. On success the session state is
// replaced from the response's session frame.
func (h *Handler) Invoke(ctx context.Context, operation string, body interface{}, opts Options) (*Result, error) {
	if reason, ok := unsupported[operation]; ok {
		return nil, wserr.NotImplemented(reason, wserr.WithOperation(operation))
	}
	meta := h.metadata(operation)

	// On an established stateful session the sequence number advances
	// exactly once per call, before header construction. The new value
	// is committed only through response extraction, so a fault never
	// leaves a half-advanced counter behind.
	view := h.State.view()
	if view.Authenticated && h.Config.Stateful {
		view.Sequence++
	} else if h.stateless {
		view.Authenticated = true
	}

	headers, err := header.Build(view, h.Config.Auth, h.Config.Stateful, meta,
		header.Options{EndSession: opts.EndSession}, h.now())
	if err != nil {
		return nil, err
	}
	h.log.Logf(LevelDebug, "invoke %s status=%s seq=%d", operation, h.Status(), view.Sequence)

	reply, err := h.transport.Invoke(ctx, operation, body, headers)
	if err != nil {
		rawReq, rawResp := exchangeText(reply)
		h.log.Logf(LevelError, "invoke %s transport fault: %v\nrequest: %s\nresponse: %s",
			operation, err, rawReq, rawResp)
		return nil, wserr.Transport("call failed",
			wserr.WithOperation(operation), wserr.WithCause(err), wserr.WithExchange(rawReq, rawResp))
	}

	h.updateState(operation, reply.RawResponse, opts)

	res := &Result{Body: reply.Body, Raw: reply.RawResponse}
	if opts.AsString {
		res.Body = reply.RawResponse
	}
	return res, nil
}

func (h *Handler) metadata(operation string) wsdl.Metadata {
	if m, ok := h.meta[operation]; ok {
		return m
	}
	m := h.resolver.Metadata(operation)
	h.meta[operation] = m
	return m
}

func (h *Handler) updateState(operation string, rawResponse string, opts Options) {
	if !h.Config.Stateful {
		// terminal for session purposes: authenticated once, session
		// fields never populated
		h.stateless = true
		return
	}
	if opts.EndSession {
		*h.State = State{}
		h.log.Logf(LevelInfo, "invoke %s ended session", operation)
		return
	}
	next := sessionFromResponse(rawResponse, h.log)
	wasAuthenticated := h.State.Authenticated
	*h.State = next
	switch {
	case next.Authenticated && !wasAuthenticated:
		h.log.Logf(LevelInfo, "invoke %s established session %s", operation, next.SessionID)
	case !next.Authenticated && wasAuthenticated:
		h.log.Logf(LevelInfo, "invoke %s lost session", operation)
	}
}

var xpSessionFrame = xpath.MustCompile(
	`//*[local-name()='Session' and namespace-uri()='` + header.NSSession + `']`)

// sessionFromResponse extracts the next session state from a response.
//
// A missing or malformed session frame yields an empty state rather
// than an error: the counterpart service is known to omit session data
// without signaling a protocol fault. A transaction status of "end"
// (any case) also yields an empty state; unrecognized status values
// are treated as session-continue.
func sessionFromResponse(rawResponse string, log Logger) State {
	doc, err := xmlquery.Parse(strings.NewReader(rawResponse))
	if err != nil {
		log.Logf(LevelError, "response is not well-formed XML: %v", err)
		return State{}
	}
	node := xmlquery.QuerySelector(doc, xpSessionFrame)
	if node == nil {
		return State{}
	}
	if strings.ToLower(strings.TrimSpace(node.SelectAttr("TransactionStatusCode"))) == "end" {
		return State{}
	}
	var st State
	if el := xmlutil.ChildElement(node, "SessionId"); el != nil {
		st.SessionID = strings.TrimSpace(el.InnerText())
	}
	if el := xmlutil.ChildElement(node, "SequenceNumber"); el != nil {
		if v := strings.TrimSpace(el.InnerText()); v != "" {
			n, convErr := strconv.Atoi(v)
			if convErr != nil {
				log.Logf(LevelError, "%v", wserr.ProtocolDecode("sequence number is not an integer", wserr.WithCause(convErr)))
			} else {
				st.Sequence = n
			}
		}
	}
	if el := xmlutil.ChildElement(node, "SecurityToken"); el != nil {
		st.SecurityToken = strings.TrimSpace(el.InnerText())
	}
	st.Authenticated = st.SessionID != "" && st.Sequence != 0 && st.SecurityToken != ""
	return st
}

func exchangeText(reply *Reply) (rawRequest, rawResponse string) {
	if reply == nil {
		return "", ""
	}
	return reply.RawRequest, reply.RawResponse
}
