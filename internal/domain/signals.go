package domain

// Signal is one yes/no item of the findability checklist.
type Signal int

// Catalog order. Changing it changes the evidence output.
const (
	SignalContactPage Signal = iota
	SignalClearServicesPage
	SignalMapsListing
	SignalRecentUpdates
	SignalReviews
	SignalOnlineBooking
	SignalSchemaMarkup
	SignalNAPConsistent
	SignalLoadsFast
	SignalContentMatchesIntent

	// SignalCount is the number of signals in the catalog.
	SignalCount = int(iota)
)

var signalNames = [SignalCount]string{
	"contact page",
	"clear services page",
	"maps/GMB listing",
	"recent updates",
	"reviews/testimonials",
	"online booking/form",
	"basic schema markup",
	"NAP consistent",
	"loads fast",
	"content matches intent",
}

func (s Signal) String() string {
	if s < 0 || int(s) >= SignalCount {
		return "unknown"
	}
	return signalNames[s]
}

// Catalog returns the canonical signal names in order. The slice is a copy.
func Catalog() []string {
	out := make([]string, SignalCount)
	copy(out, signalNames[:])
	return out
}

// SignalSet holds the presence of every catalog signal.
type SignalSet struct {
	ContactPage          bool
	ClearServicesPage    bool
	MapsListing          bool
	RecentUpdates        bool
	Reviews              bool
	OnlineBooking        bool
	SchemaMarkup         bool
	NAPConsistent        bool
	LoadsFast            bool
	ContentMatchesIntent bool
}

// Vector returns the set as booleans aligned to catalog order.
func (s SignalSet) Vector() [SignalCount]bool {
	return [SignalCount]bool{
		s.ContactPage,
		s.ClearServicesPage,
		s.MapsListing,
		s.RecentUpdates,
		s.Reviews,
		s.OnlineBooking,
		s.SchemaMarkup,
		s.NAPConsistent,
		s.LoadsFast,
		s.ContentMatchesIntent,
	}
}

// Has reports whether sig is present. Unknown signals are never present.
func (s SignalSet) Has(sig Signal) bool {
	if sig < 0 || int(sig) >= SignalCount {
		return false
	}
	return s.Vector()[sig]
}

// Count returns the number of present signals.
func (s SignalSet) Count() int {
	n := 0
	for _, ok := range s.Vector() {
		if ok {
			n++
		}
	}
	return n
}

// Map returns the set keyed by canonical signal name.
func (s SignalSet) Map() map[string]bool {
	v := s.Vector()
	out := make(map[string]bool, SignalCount)
	for i, name := range signalNames {
		out[name] = v[i]
	}
	return out
}

// NormalizeSignals maps named inputs onto the catalog. Missing names are
// false and names outside the catalog are ignored.
func NormalizeSignals(in map[string]bool) SignalSet {
	return SignalSet{
		ContactPage:          in[signalNames[SignalContactPage]],
		ClearServicesPage:    in[signalNames[SignalClearServicesPage]],
		MapsListing:          in[signalNames[SignalMapsListing]],
		RecentUpdates:        in[signalNames[SignalRecentUpdates]],
		Reviews:              in[signalNames[SignalReviews]],
		OnlineBooking:        in[signalNames[SignalOnlineBooking]],
		SchemaMarkup:         in[signalNames[SignalSchemaMarkup]],
		NAPConsistent:        in[signalNames[SignalNAPConsistent]],
		LoadsFast:            in[signalNames[SignalLoadsFast]],
		ContentMatchesIntent: in[signalNames[SignalContentMatchesIntent]],
	}
}
