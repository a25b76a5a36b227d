// internal/detect/detector.go
package detect

import (
	"strings"
)

// DefaultMarkers are robot-check phrases served in place of a product page.
// Matching is case-insensitive; entries are stored lowercase.
var DefaultMarkers = []string{
	"type the characters you see in this image",
	"enter the characters you see below",
	"robot check",
	"not a robot",
	"validatecaptcha",
	"captchacharacters",
}

// Detector recognises anti-automation interception pages.
type Detector struct {
	markers []string
}

// New returns a detector using DefaultMarkers plus any extra phrases.
func New(extra ...string) *Detector {
	markers := make([]string, 0, len(DefaultMarkers)+len(extra))
	markers = append(markers, DefaultMarkers...)
	for _, m := range extra {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			markers = append(markers, m)
		}
	}
	return &Detector{markers: markers}
}

// Match reports the first marker found in content.
func (d *Detector) Match(content string) (string, bool) {
	if content == "" {
		return "", false
	}

	lower := strings.ToLower(content)
	for _, m := range d.markers {
		if strings.Contains(lower, m) {
			return m, true
		}
	}

	return "", false
}

// Markers returns a copy of the configured marker list
func (d *Detector) Markers() []string {
	out := make([]string, len(d.markers))
	copy(out, d.markers)
	return out
}

var defaultDetector = New()

// IsInterception reports whether content is a robot-check page rather than
// the requested product page.
func IsInterception(content string) bool {
	_, ok := defaultDetector.Match(content)
	return ok
}
