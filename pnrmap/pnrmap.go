/*
Package pnrmap maps itinerary elements and segments to their wire
fragments.

Element kinds form a closed set: each kind has a typed constructor and
an exhaustive fragment rendering, so an unsupported kind fails with a
not-implemented error when constructed, never deep inside
serialization. Cross-reference ("tattoo") numbers come from an
explicit Tattoo generator passed through the renderers, keeping the
shared counter visible in signatures instead of ambient.
*/
package pnrmap

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/tripstack/amaws/wserr"
)

// Tattoo generates the per-message cross-reference numbers shared by
// elements and segments of one request body. Not safe for concurrent
// use; one generator serves one request.
type Tattoo struct {
	next int
}

// NewTattoo returns a generator whose first number is 1
func NewTattoo() *Tattoo { return &Tattoo{next: 1} }

// Next returns the next cross-reference number
func (t *Tattoo) Next() int {
	n := t.next
	t.next++
	return n
}

// Element is one itinerary element or segment of a request body.
// The set of implementations is closed; construct values through the
// package constructors.
type Element interface {
	// Fragment renders the element's wire fragment, drawing its
	// cross-reference number from seq.
	Fragment(seq *Tattoo) (string, error)

	element()
}

// Contact is an AP contact element carrying one freetext detail
type Contact struct {
	// Category is the contact category code, e.g. "P02" for a
	// mobile phone number
	Category string
	// Value is the contact freetext
	Value string
}

// ReceivedFrom is the RF element naming the requesting party
type ReceivedFrom struct {
	From string
}

// Ticketing is a TK ticketing arrangement element
type Ticketing struct {
	// Indicator is the ticketing arrangement code, e.g. "OK"
	Indicator string
}

// AirSegment is an itinerary air segment
type AirSegment struct {
	Company       string
	FlightNumber  string
	BookingClass  string
	Origin        string
	Destination   string
	DepartureDate string
}

// FormOfPayment would map an FP payment element. Payment flows are
// not carried by this layer, so construction fails.
func FormOfPayment(code string) (Element, error) {
	return nil, wserr.NotImplemented("form of payment elements are not supported")
}

func (Contact) element()      {}
func (ReceivedFrom) element() {}
func (Ticketing) element()    {}
func (AirSegment) element()   {}

func dataElement(seq *Tattoo, segmentName string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	root := doc.CreateElement("dataElementsIndiv")
	mgmt := root.CreateElement("elementManagementData")
	ref := mgmt.CreateElement("reference")
	ref.CreateElement("qualifier").SetText("OT")
	ref.CreateElement("number").SetText(strconv.Itoa(seq.Next()))
	mgmt.CreateElement("segmentName").SetText(segmentName)
	return doc, root
}

func render(doc *etree.Document) (string, error) { return doc.WriteToString() }

// Fragment implements Element
func (c Contact) Fragment(seq *Tattoo) (string, error) {
	doc, root := dataElement(seq, "AP")
	freetext := root.CreateElement("freetextData")
	detail := freetext.CreateElement("freetextDetail")
	detail.CreateElement("subjectQualifier").SetText("3")
	detail.CreateElement("type").SetText(c.Category)
	freetext.CreateElement("longFreetext").SetText(c.Value)
	return render(doc)
}

// Fragment implements Element
func (r ReceivedFrom) Fragment(seq *Tattoo) (string, error) {
	doc, root := dataElement(seq, "RF")
	root.CreateElement("freetextData").CreateElement("longFreetext").SetText(r.From)
	return render(doc)
}

// Fragment implements Element
func (tk Ticketing) Fragment(seq *Tattoo) (string, error) {
	doc, root := dataElement(seq, "TK")
	root.CreateElement("ticketElement").CreateElement("ticket").
		CreateElement("indicator").SetText(tk.Indicator)
	return render(doc)
}

// Fragment implements Element
func (a AirSegment) Fragment(seq *Tattoo) (string, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("itineraryInfo")
	mgmt := root.CreateElement("elementManagementItinerary")
	ref := mgmt.CreateElement("reference")
	ref.CreateElement("qualifier").SetText("ST")
	ref.CreateElement("number").SetText(strconv.Itoa(seq.Next()))
	mgmt.CreateElement("segmentName").SetText("AIR")
	travel := root.CreateElement("travelProduct")
	travel.CreateElement("product").CreateElement("depDate").SetText(a.DepartureDate)
	board := travel.CreateElement("boardpointDetail")
	board.CreateElement("cityCode").SetText(a.Origin)
	off := travel.CreateElement("offpointDetail")
	off.CreateElement("cityCode").SetText(a.Destination)
	company := travel.CreateElement("companyDetail")
	company.CreateElement("identification").SetText(a.Company)
	ident := travel.CreateElement("productDetails")
	ident.CreateElement("identification").SetText(a.FlightNumber)
	ident.CreateElement("classOfService").SetText(a.BookingClass)
	return render(doc)
}

// Fragments renders a mixed element/segment sequence with one shared
// cross-reference generator, preserving construction order.
func Fragments(seq *Tattoo, elements ...Element) ([]string, error) {
	out := make([]string, 0, len(elements))
	for _, e := range elements {
		frag, err := e.Fragment(seq)
		if err != nil {
			return nil, err
		}
		out = append(out, frag)
	}
	return out, nil
}
