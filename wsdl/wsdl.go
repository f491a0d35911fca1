/*
Package wsdl answers point queries against a SOAP service description.

The description document is parsed and indexed once per Resolver
handle; a handle is read-only afterwards and safe for concurrent
queries. Only the narrow operation catalog queries the session layer
needs are offered: SOAP action URIs, message version strings and the
service endpoint address.
*/
package wsdl

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"

	"github.com/tripstack/amaws/wserr"
	"github.com/tripstack/amaws/xmlutil"
)

var (
	xpAddress           = xpath.MustCompile(`//*[local-name()='service']/*[local-name()='port']/*[local-name()='address']`)
	xpPortTypeOperation = xpath.MustCompile(`//*[local-name()='portType']/*[local-name()='operation']`)
	xpBindingOperation  = xpath.MustCompile(`//*[local-name()='binding']/*[local-name()='operation']`)
)

// Metadata holds the per-operation wire metadata the session layer
// attaches to an outgoing call.
type Metadata struct {
	// Action is the SOAP action URI, empty when the description
	// carries none for the operation.
	Action string
	// Endpoint is the service endpoint address.
	Endpoint string
	// Version is the operation message version, e.g. "4.1".
	Version string
}

// Resolver is an indexed service description handle.
type Resolver struct {
	endpoint string
	actions  map[string]string
	versions map[string]string
}

// Parse reads and indexes a service description document.
// It fails with a configuration error if the document cannot be parsed.
func Parse(r io.Reader) (*Resolver, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, wserr.Configuration("malformed service description", wserr.WithCause(err))
	}
	res := &Resolver{
		actions:  map[string]string{},
		versions: map[string]string{},
	}
	if addr := xmlquery.QuerySelector(doc, xpAddress); addr != nil {
		res.endpoint = strings.TrimSpace(addr.SelectAttr("location"))
	}
	// port type operations carry the versioned input message identifier
	for _, op := range xmlquery.QuerySelectorAll(doc, xpPortTypeOperation) {
		name := op.SelectAttr("name")
		if name == "" {
			continue
		}
		input := xmlutil.ChildElement(op, "input")
		if input == nil {
			continue
		}
		msg := input.SelectAttr("message")
		if i := strings.Index(msg, ":"); i >= 0 {
			msg = msg[i+1:]
		}
		if v := IdentifierVersion(msg); v != "" {
			res.versions[name] = v
		}
	}
	// binding operations carry the SOAP action URI
	for _, op := range xmlquery.QuerySelectorAll(doc, xpBindingOperation) {
		name := op.SelectAttr("name")
		if name == "" {
			continue
		}
		if soapOp := xmlutil.ChildElement(op, "operation"); soapOp != nil {
			if action := soapOp.SelectAttr("soapAction"); action != "" {
				res.actions[name] = action
			}
		}
	}
	return res, nil
}

// IdentifierVersion extracts the version from a versioned message
// identifier of the form Name_major_minor: the text after the second
// underscore, with remaining underscores replaced by dots.
// Returns "" when the identifier carries no version suffix.
func IdentifierVersion(identifier string) string {
	parts := strings.SplitN(identifier, "_", 3)
	if len(parts) < 3 {
		return ""
	}
	return strings.ReplaceAll(parts[2], "_", ".")
}

// Endpoint returns the service endpoint address, or "" if the
// description names none.
func (r *Resolver) Endpoint() string { return r.endpoint }

// ActionFor returns the SOAP action URI for the named operation, or ""
// when the description carries no action for it.
func (r *Resolver) ActionFor(operation string) string { return r.actions[operation] }

// VersionFor returns the message version string for the named
// operation, or "" when none is recorded.
func (r *Resolver) VersionFor(operation string) string { return r.versions[operation] }

// Operations returns the full operation catalog as a map from
// operation name to version string.
func (r *Resolver) Operations() map[string]string {
	out := make(map[string]string, len(r.versions))
	for name, version := range r.versions {
		out[name] = version
	}
	return out
}

// Metadata returns the wire metadata for one operation. Fields with no
// match in the description are empty; absence of action metadata is
// not an error since not all operations carry it.
func (r *Resolver) Metadata(operation string) Metadata {
	return Metadata{
		Action:   r.actions[operation],
		Endpoint: r.endpoint,
		Version:  r.versions[operation],
	}
}

// Loader resolves service description sources to Resolver handles,
// parsing each source at most once.
type Loader struct {
	mu    sync.Mutex
	cache map[string]*Resolver
	loads int
}

// NewLoader returns an empty Loader
func NewLoader() *Loader { return &Loader{cache: map[string]*Resolver{}} }

// Resolve returns the Resolver handle for the description at path,
// reading and indexing the file on first use only. Repeated calls with
// the same source return the identical handle.
func (l *Loader) Resolve(path string) (*Resolver, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if r, ok := l.cache[path]; ok {
		return r, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, wserr.Configuration("unreadable service description",
			wserr.WithCause(errors.Wrap(err, path)))
	}
	defer f.Close()
	l.loads++
	r, err := Parse(f)
	if err != nil {
		return nil, err
	}
	l.cache[path] = r
	return r, nil
}

// Loads returns the number of description parses performed
func (l *Loader) Loads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads
}
