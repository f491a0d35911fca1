/*
Package transport provides a SOAP 1.1 over HTTP transport.

The transport assembles an envelope from the header frame set and the
body payload, POSTs it to the service endpoint and hands back the
decoded body payload along with the raw request and response text the
session layer logs on faults. The session layer depends only on the
session.Transport contract, so alternative transports can be swapped
in for testing or other bindings.
*/
package transport
