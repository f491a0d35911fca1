package transport

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/beevik/etree"
	"github.com/pkg/errors"

	"github.com/tripstack/amaws/header"
	"github.com/tripstack/amaws/session"
	"github.com/tripstack/amaws/wserr"
	"github.com/tripstack/amaws/xmlutil"
)

// NSEnvelope is the SOAP 1.1 envelope namespace
const NSEnvelope = "http://schemas.xmlsoap.org/soap/envelope/"

var (
	xpBody  = xpath.MustCompile(`//*[local-name()='Body' and namespace-uri()='` + NSEnvelope + `']`)
	xpFault = xpath.MustCompile(`//*[local-name()='Body']/*[local-name()='Fault']`)
)

// Option is a SOAP transport option
type Option func(*SOAP)

// WithHTTPClient sets the HTTP client used for calls
func WithHTTPClient(c *http.Client) Option { return func(s *SOAP) { s.client = c } }

// WithTimeout sets the per-call timeout of the default HTTP client
func WithTimeout(d time.Duration) Option { return func(s *SOAP) { s.client.Timeout = d } }

// NewSOAP returns a SOAP transport posting to endpoint
func NewSOAP(endpoint string, opts ...Option) *SOAP {
	s := &SOAP{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SOAP is a SOAP 1.1 HTTP transport implementing session.Transport
type SOAP struct {
	endpoint string
	client   *http.Client
}

var _ session.Transport = (*SOAP)(nil)

// Invoke posts one call to the service endpoint. The returned Reply
// carries the raw request text even when the call fails, so the
// session layer can log the full exchange.
func (s *SOAP) Invoke(ctx context.Context, operation string, body interface{}, headers header.Set) (*session.Reply, error) {
	payload, err := bodyText(body)
	if err != nil {
		return nil, err
	}
	env, err := Envelope(headers, payload)
	if err != nil {
		return nil, err
	}
	reply := &session.Reply{RawRequest: env}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(env))
	if err != nil {
		return reply, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	req.Header.Set("SOAPAction", frameText(headers.Find("Action")))

	resp, err := s.client.Do(req)
	if err != nil {
		return reply, errors.Wrapf(err, "posting %s", operation)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	reply.RawResponse = string(raw)
	if err != nil {
		return reply, errors.Wrap(err, "reading response")
	}
	if resp.StatusCode != http.StatusOK {
		return reply, errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	decoded, err := decodeBody(reply.RawResponse)
	if err != nil {
		return reply, err
	}
	reply.Body = decoded
	return reply, nil
}

// Envelope assembles a SOAP 1.1 envelope from the header frame set
// and the body payload fragment.
func Envelope(headers header.Set, body string) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	env := doc.CreateElement("soapenv:Envelope")
	for _, a := range (xmlutil.PrefixMap{"soapenv": NSEnvelope}).Attr() {
		env.CreateAttr(a.Name.Space+":"+a.Name.Local, a.Value)
	}
	hdr := env.CreateElement("soapenv:Header")
	for _, f := range headers {
		frag := etree.NewDocument()
		if err := frag.ReadFromString(f.XML); err != nil {
			return "", errors.Wrapf(err, "header frame %s", f.Name.Local)
		}
		hdr.AddChild(frag.Root())
	}
	bodyEl := env.CreateElement("soapenv:Body")
	if body != "" {
		frag := etree.NewDocument()
		if err := frag.ReadFromString(body); err != nil {
			return "", errors.Wrap(err, "body payload")
		}
		bodyEl.AddChild(frag.Root())
	}
	return doc.WriteToString()
}

// bodyText renders the opaque body payload to its wire fragment.
// Strings and byte slices pass through as literal XML; other values
// are marshalled with encoding/xml.
func bodyText(body interface{}) (string, error) {
	switch v := body.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		out, err := xml.Marshal(v)
		if err != nil {
			return "", errors.Wrap(err, "marshalling body")
		}
		return string(out), nil
	}
}

// decodeBody extracts the response payload: the first element child
// of the envelope Body, as literal XML. A SOAP Fault in the Body is a
// transport-level fault.
func decodeBody(rawResponse string) (string, error) {
	doc, err := xmlquery.Parse(strings.NewReader(rawResponse))
	if err != nil {
		return "", wserr.ProtocolDecode("response is not well-formed XML", wserr.WithCause(err))
	}
	if fault := xmlquery.QuerySelector(doc, xpFault); fault != nil {
		msg := "soap fault"
		if fs := xmlutil.ChildElement(fault, "faultstring"); fs != nil {
			msg = "soap fault: " + strings.TrimSpace(fs.InnerText())
		}
		return "", errors.New(msg)
	}
	bodyNode := xmlquery.QuerySelector(doc, xpBody)
	if bodyNode == nil {
		return "", wserr.ProtocolDecode("response carries no envelope Body")
	}
	for child := bodyNode.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child.OutputXML(true), nil
		}
	}
	return "", nil
}

func frameText(f *header.Frame) string {
	if f == nil {
		return ""
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(f.XML); err != nil || doc.Root() == nil {
		return ""
	}
	return strings.TrimSpace(doc.Root().Text())
}
