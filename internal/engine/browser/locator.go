package browser

import (
	"fmt"
	"strings"

	"github.com/law-makers/pricetrack/internal/engine"
)

// CSSSelector renders an ID or CSS locator as a CSS selector.
func CSSSelector(loc engine.Locator) (string, error) {
	switch loc.Kind {
	case engine.ByID:
		return fmt.Sprintf("[id=%q]", loc.Value), nil
	case engine.ByCSS:
		return loc.Value, nil
	default:
		return "", fmt.Errorf("%w: %s has no CSS form", engine.ErrUnsupportedLocator, loc)
	}
}

// TextXPath returns an XPath selecting elements with a direct text node
// equal to label after whitespace normalisation.
func TextXPath(label string) string {
	return fmt.Sprintf("//*[text()[normalize-space(.)=%s]]", xpathLiteral(strings.TrimSpace(label)))
}

// xpathLiteral quotes s for XPath 1.0, which has no escape sequences.
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}

	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		quoted = append(quoted, `"`+p+`"`)
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
