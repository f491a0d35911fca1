/*
Package header builds the SOAP header frames of one outgoing call.

A HeaderSet is an ordered sequence of literal XML fragments: message
identity and addressing frames on every call, then either a
WS-Security username-token authentication frame (first, unauthenticated
call) or a session continuation frame (established stateful session).
Frames are rendered as literal fragments because the counterpart
service validates them syntactically against the WS-Security schema.

A Set is constructed fresh for every call and never mutated after
handoff to the Transport.
*/
package header

import (
	"encoding/xml"

	"github.com/tripstack/amaws/xmlutil"
)

// Namespace URIs of the header frames
const (
	NSAddressing   = "http://www.w3.org/2005/08/addressing"
	NSSecurityExt  = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	NSSecurityUtil = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"
	NSSession      = "http://xml.amadeus.com/2010/06/Session_v3"
	NSHostedUser   = "http://xml.amadeus.com/2010/06/Security_v1"
)

// WS-Security attribute value URIs of the username token
const (
	NonceEncodingType  = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-soap-message-security-1.0#Base64Binary"
	PasswordDigestType = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordDigest"
)

// Frame is one named SOAP header block, rendered as a literal XML
// fragment carrying its own namespace declarations.
type Frame struct {
	Name xml.Name
	XML  string
}

// Set is the ordered header frame sequence of one outgoing call
type Set []Frame

// Find returns the first frame with the given local name, or nil
func (s Set) Find(local string) *Frame {
	for i := range s {
		if s[i].Name.Local == local {
			return &s[i]
		}
	}
	return nil
}

// Has returns true if the set contains a frame with the given local name
func (s Set) Has(local string) bool { return s.Find(local) != nil }

func frame(local, space, fragment string) Frame {
	return Frame{Name: xmlutil.XMLName(local, space), XML: fragment}
}
