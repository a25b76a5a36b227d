// internal/price/strategy.go
package price

import (
	"github.com/law-makers/pricetrack/internal/engine"
)

// Kind classifies how a probe's matches are treated.
type Kind int

const (
	// KindNarrow probes a known authoritative location; the first valid hit wins.
	KindNarrow Kind = iota

	// KindBroad collects every currency-shaped match as a candidate.
	KindBroad

	// KindSplit composes a price rendered as separate whole and fraction elements.
	KindSplit

	// KindInteractive clicks a secondary control and re-queries for offers.
	KindInteractive
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNarrow:
		return "narrow"
	case KindBroad:
		return "broad"
	case KindSplit:
		return "split"
	case KindInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// WaitTier selects which configured timeout bounds a probe.
type WaitTier int

const (
	WaitShort WaitTier = iota
	WaitLong
)

// String returns the string representation of the tier
func (w WaitTier) String() string {
	if w == WaitLong {
		return "long"
	}
	return "short"
}

// DefaultCurrencySymbol prefixes split prices rendered without a symbol element.
const DefaultCurrencySymbol = "$"

// Probe is one entry of the ordered extraction table.
type Probe struct {
	Name    string
	Kind    Kind
	Locator engine.Locator

	// Secondary is the fraction element for split probes and the offer
	// price locator re-queried after an interactive click.
	Secondary engine.Locator

	// Symbol optionally locates the currency symbol of a split price.
	Symbol engine.Locator

	Wait WaitTier
}

// DefaultProbes is the extraction table for Amazon-style product pages,
// tried in order.
var DefaultProbes = []Probe{
	{Name: "our-price", Kind: KindNarrow, Locator: engine.ID("priceblock_ourprice"), Wait: WaitShort},
	{Name: "deal-price", Kind: KindNarrow, Locator: engine.ID("priceblock_dealprice"), Wait: WaitShort},
	{Name: "buybox-price", Kind: KindNarrow, Locator: engine.ID("price_inside_buybox"), Wait: WaitShort},
	{Name: "price-to-pay", Kind: KindNarrow, Locator: engine.CSS("span.priceToPay span.a-offscreen"), Wait: WaitShort},
	{Name: "offscreen", Kind: KindBroad, Locator: engine.CSS("span.a-price span.a-offscreen"), Wait: WaitLong},
	{
		Name:      "split-price",
		Kind:      KindSplit,
		Locator:   engine.CSS("span.a-price-whole"),
		Secondary: engine.CSS("span.a-price-fraction"),
		Symbol:    engine.CSS("span.a-price-symbol"),
		Wait:      WaitShort,
	},
	{
		Name:      "buying-options",
		Kind:      KindInteractive,
		Locator:   engine.CSS("#buybox-see-all-buying-choices a, a[title='See All Buying Options']"),
		Secondary: engine.CSS("#aod-offer-list .a-price .a-offscreen, #aod-pinned-offer .a-price .a-offscreen"),
		Wait:      WaitLong,
	},
}
