/*
Package amaws is a client session layer for the Amadeus SOAP web services.

Doing the heavy lifting of session and authentication state handling,
WS-Security username-token credential computation and per-operation
WSDL metadata resolution, these libraries allow easy web services
client application development without hand-writing SOAP headers.

A session Handler drives one logical conversation with the service. For
every outgoing call it decides whether to start, continue or end the
session, builds the header frames the call needs (message identity,
addressing, authentication or session continuation), dispatches the
call through an injected Transport and updates its session state from
the response.

Both stateful (multi-call session with sequence numbering) and
stateless (re-authenticate once, then bare calls) conversation modes
are supported, selected at Handler construction.

See the session sub-directory for more information about Handler
objects and the Transport contract.
*/
package amaws
