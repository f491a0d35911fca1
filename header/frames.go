package header

import (
	"encoding/base64"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/tripstack/amaws/digest"
	"github.com/tripstack/amaws/wserr"
	"github.com/tripstack/amaws/xmlutil"
)

// Status is the session continuation transaction status
type Status string

const (
	// StatusStart requests a new session on an unauthenticated call
	StatusStart Status = "Start"
	// StatusInSeries continues an established session
	StatusInSeries Status = "InSeries"
	// StatusEnd asks the counterpart to terminate the session
	StatusEnd Status = "End"
)

// AuthParameters are the immutable authentication parameters of one
// conversation, supplied at Handler construction.
type AuthParameters struct {
	// OfficeID is the office identifier the user signs in under
	OfficeID string
	// UserID is the authenticating user identifier
	UserID string
	// OriginatorTypeCode is the originator type code, e.g. "U"
	OriginatorTypeCode string
	// DutyCode is the agent duty code, e.g. "SU"
	DutyCode string
	// Password is the base64 at-rest representation of the secret.
	// It is decoded only while computing the password digest.
	Password string
	// NonceSeed is caller-provided nonce seed material
	NonceSeed []byte
}

func render(doc *etree.Document) string {
	s, _ := doc.WriteToString()
	return s
}

func addressingFrame(local, text string) Frame {
	doc := etree.NewDocument()
	el := doc.CreateElement("wsa:" + local)
	applyNamespaces(el, xmlutil.PrefixMap{"wsa": NSAddressing})
	el.SetText(text)
	return frame(local, NSAddressing, render(doc))
}

func applyNamespaces(el *etree.Element, m xmlutil.PrefixMap) {
	for _, a := range m.Attr() {
		el.CreateAttr("xmlns:"+a.Name.Local, a.Value)
	}
}

// MessageID returns a fresh message-identifier frame
func MessageID() Frame { return addressingFrame("MessageID", "urn:uuid:"+uuid.New().String()) }

// Action returns the action frame for the given SOAP action URI
func Action(uri string) Frame { return addressingFrame("Action", uri) }

// To returns the destination frame for the service endpoint
func To(endpoint string) Frame { return addressingFrame("To", endpoint) }

// UsernameToken returns the WS-Security authentication frame for an
// unauthenticated call, computing the nonce and password digest from
// auth at the given creation time.
func UsernameToken(auth AuthParameters, now time.Time) (Frame, error) {
	password, err := base64.StdEncoding.DecodeString(auth.Password)
	if err != nil {
		return Frame{}, wserr.Configuration("password is not valid base64", wserr.WithCause(err))
	}
	created := digest.Created(now)
	nonce := digest.Nonce(auth.NonceSeed, created)

	doc := etree.NewDocument()
	sec := doc.CreateElement("oas:Security")
	applyNamespaces(sec, xmlutil.PrefixMap{"oas": NSSecurityExt})
	tok := sec.CreateElement("oas:UsernameToken")
	applyNamespaces(tok, xmlutil.PrefixMap{"oas1": NSSecurityUtil})
	tok.CreateAttr("oas1:Id", "UsernameToken-1")
	tok.CreateElement("oas:Username").SetText(auth.UserID)
	nonceEl := tok.CreateElement("oas:Nonce")
	nonceEl.CreateAttr("EncodingType", NonceEncodingType)
	nonceEl.SetText(base64.StdEncoding.EncodeToString(nonce))
	passEl := tok.CreateElement("oas:Password")
	passEl.CreateAttr("Type", PasswordDigestType)
	passEl.SetText(digest.PasswordDigest(password, created, nonce))
	tok.CreateElement("oas1:Created").SetText(created)
	return frame("Security", NSSecurityExt, render(doc)), nil
}

// HostedUser returns the hosted-user frame identifying the office the
// call is made on behalf of. The POS sequence value is fixed at 1.
func HostedUser(auth AuthParameters) Frame {
	doc := etree.NewDocument()
	root := doc.CreateElement("AMA_SecurityHostedUser")
	root.CreateAttr("xmlns", NSHostedUser)
	user := root.CreateElement("UserID")
	user.CreateAttr("POS_Type", "1")
	user.CreateAttr("PseudoCityCode", auth.OfficeID)
	user.CreateAttr("AgentDutyCode", auth.DutyCode)
	user.CreateAttr("RequestorType", auth.OriginatorTypeCode)
	return frame("AMA_SecurityHostedUser", NSHostedUser, render(doc))
}

// Session returns a session continuation frame. A StatusStart frame
// carries no session identity; otherwise id, sequence and token are
// the current session fields.
func Session(id string, sequence int, token string, status Status) Frame {
	doc := etree.NewDocument()
	el := doc.CreateElement("awsse:Session")
	applyNamespaces(el, xmlutil.PrefixMap{"awsse": NSSession})
	el.CreateAttr("TransactionStatusCode", string(status))
	if status != StatusStart {
		el.CreateElement("awsse:SessionId").SetText(id)
		el.CreateElement("awsse:SequenceNumber").SetText(strconv.Itoa(sequence))
		el.CreateElement("awsse:SecurityToken").SetText(token)
	}
	return frame("Session", NSSession, render(doc))
}
