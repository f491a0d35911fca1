package pnrmap

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"

	"github.com/tripstack/amaws/wserr"
	"github.com/tripstack/amaws/xmlutil"
)

func parse(t *testing.T, fragment string) *xmlquery.Node {
	t.Helper()
	doc, err := xmlquery.Parse(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("fragment: %v", err)
	}
	return xmlquery.FindOne(doc, `/*`)
}

func refNumber(t *testing.T, fragment string) string {
	t.Helper()
	n := xmlquery.FindOne(parse(t, fragment), `//reference/number`)
	if n == nil {
		t.Fatalf("fragment has no reference number: %s", fragment)
	}
	return n.InnerText()
}

func TestTattooSequence(t *testing.T) {
	a := assert.New(t)
	seq := NewTattoo()
	a.Equal(1, seq.Next())
	a.Equal(2, seq.Next())
	a.Equal(3, seq.Next())
}

func TestFragmentsShareOneGenerator(t *testing.T) {
	a := assert.New(t)
	frags, err := Fragments(NewTattoo(),
		ReceivedFrom{From: "web user"},
		AirSegment{Company: "SN", FlightNumber: "652", BookingClass: "Y", Origin: "BRU", Destination: "LIS", DepartureDate: "200117"},
		Contact{Category: "P02", Value: "+32 486 28 79 90"},
	)
	a.NoError(err)
	if a.Len(frags, 3) {
		// cross-reference numbering is strictly sequential across
		// mixed element and segment kinds, in construction order
		a.Equal("1", refNumber(t, frags[0]))
		a.Equal("2", refNumber(t, frags[1]))
		a.Equal("3", refNumber(t, frags[2]))
	}
}

func TestContactFragment(t *testing.T) {
	a := assert.New(t)
	frag, err := Contact{Category: "P02", Value: "+32 486 28 79 90"}.Fragment(NewTattoo())
	a.NoError(err)
	root := parse(t, frag)
	a.Equal("dataElementsIndiv", root.Data)
	a.Equal("AP", xmlquery.FindOne(root, `//segmentName`).InnerText())
	a.Equal("OT", xmlquery.FindOne(root, `//reference/qualifier`).InnerText())
	a.Equal("P02", xmlquery.FindOne(root, `//freetextDetail/type`).InnerText())
	a.Equal("+32 486 28 79 90", xmlquery.FindOne(root, `//longFreetext`).InnerText())
}

func TestAirSegmentFragment(t *testing.T) {
	a := assert.New(t)
	frag, err := AirSegment{
		Company: "SN", FlightNumber: "652", BookingClass: "Y",
		Origin: "BRU", Destination: "LIS", DepartureDate: "200117",
	}.Fragment(NewTattoo())
	a.NoError(err)
	root := parse(t, frag)
	a.Equal("itineraryInfo", root.Data)
	a.Equal("ST", xmlquery.FindOne(root, `//reference/qualifier`).InnerText())
	a.Equal("AIR", xmlquery.FindOne(root, `//segmentName`).InnerText())
	travel := xmlutil.ChildElement(root, "travelProduct")
	if a.NotNil(travel) {
		a.Equal("200117", xmlquery.FindOne(travel, `//product/depDate`).InnerText())
		a.Equal("BRU", xmlquery.FindOne(travel, `//boardpointDetail/cityCode`).InnerText())
		a.Equal("LIS", xmlquery.FindOne(travel, `//offpointDetail/cityCode`).InnerText())
		a.Equal("SN", xmlquery.FindOne(travel, `//companyDetail/identification`).InnerText())
	}
}

func TestFormOfPaymentNotImplemented(t *testing.T) {
	a := assert.New(t)
	e, err := FormOfPayment("CC")
	a.Nil(e)
	// refused at construction, not deep inside serialization
	a.True(wserr.IsKind(err, wserr.KindNotImplemented))
}

func TestTicketingFragment(t *testing.T) {
	a := assert.New(t)
	frags, err := Fragments(NewTattoo(), Ticketing{Indicator: "OK"})
	a.NoError(err)
	a.Len(frags, 1)
	a.Contains(frags[0], "<segmentName>TK</segmentName>")
}
