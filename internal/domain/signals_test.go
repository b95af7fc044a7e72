package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog(t *testing.T) {
	want := []string{
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
	assert.Equal(t, want, Catalog())
	assert.Len(t, Catalog(), SignalCount)

	c := Catalog()
	c[0] = "mutated"
	assert.Equal(t, "contact page", Catalog()[0])
}

func TestSignalString(t *testing.T) {
	assert.Equal(t, "contact page", SignalContactPage.String())
	assert.Equal(t, "NAP consistent", SignalNAPConsistent.String())
	assert.Equal(t, "content matches intent", SignalContentMatchesIntent.String())
	assert.Equal(t, "unknown", Signal(SignalCount).String())
	assert.Equal(t, "unknown", Signal(-1).String())
}

func TestNormalizeSignals(t *testing.T) {
	set := NormalizeSignals(map[string]bool{
		"maps/GMB listing": true,
		"loads fast":       true,
		"recent updates":   false,
		"not a signal":     true,
	})
	assert.Equal(t, SignalSet{MapsListing: true, LoadsFast: true}, set)
	assert.Equal(t, 2, set.Count())
	assert.True(t, set.Has(SignalMapsListing))
	assert.False(t, set.Has(SignalRecentUpdates))
	assert.False(t, set.Has(Signal(42)))

	v := set.Vector()
	assert.True(t, v[SignalMapsListing])
	assert.True(t, v[SignalLoadsFast])
	assert.False(t, v[SignalContactPage])

	assert.Equal(t, SignalSet{}, NormalizeSignals(nil))
}

func TestSignalSetMapRoundTrip(t *testing.T) {
	set := SignalSet{ContactPage: true, SchemaMarkup: true, ContentMatchesIntent: true}
	m := set.Map()
	assert.Len(t, m, SignalCount)
	assert.True(t, m["basic schema markup"])
	assert.False(t, m["loads fast"])
	assert.Equal(t, set, NormalizeSignals(m))
}
