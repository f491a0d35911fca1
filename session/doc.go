/*
Package session offers the client session and authentication state
handler for one logical web services conversation.

Applications construct a Handler with an injected Transport, a service
description Resolver and a Config, then call Invoke once per business
operation. The Handler decides per call whether to start, continue or
end the session, computes proof-of-possession credentials for the
first unauthenticated call, and updates its session state from every
response.

Handler execution overview

A Handler starts unauthenticated. The first Invoke carries a
WS-Security username token; the response's session frame (when
present) establishes the session identity, sequence counter and
security token. Subsequent calls on a stateful Handler carry a session
continuation frame with the sequence number incremented once per call.
An Invoke with EndSession set terminates the session and resets the
Handler, which may then start a new session. In stateless mode the
Handler authenticates once and never sends session frames.

A Handler serializes one logical conversation and must not be invoked
concurrently; callers needing parallel conversations use one Handler
per conversation or an external mutex. Timeouts and cancellation are
the Transport's concern, reached through the context passed to Invoke.
*/
package session
