package engine

import (
	"context"
	"fmt"
	"time"
)

// LocatorKind selects how a Locator value is interpreted by a provider.
type LocatorKind int

const (
	// ByID matches the element whose id attribute equals the value.
	ByID LocatorKind = iota

	// ByCSS matches every element selected by a CSS selector.
	ByCSS

	// ByText matches elements whose own text, trimmed, equals the value.
	ByText
)

// String returns the string representation of the locator kind
func (k LocatorKind) String() string {
	switch k {
	case ByID:
		return "id"
	case ByCSS:
		return "css"
	case ByText:
		return "text"
	default:
		return "unknown"
	}
}

// Locator is a rule used to find elements in the rendered DOM.
type Locator struct {
	Kind  LocatorKind
	Value string
}

// ID returns a locator matching an element identifier.
func ID(id string) Locator { return Locator{Kind: ByID, Value: id} }

// CSS returns a locator matching a CSS selector.
func CSS(selector string) Locator { return Locator{Kind: ByCSS, Value: selector} }

// Text returns a locator matching elements by their exact visible label.
func Text(label string) Locator { return Locator{Kind: ByText, Value: label} }

// IsZero reports whether the locator is unset.
func (l Locator) IsZero() bool { return l.Value == "" }

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.Kind, l.Value)
}

// Page is the rendered-DOM provider the price pipeline runs against.
//
// Implementations wrap one browser tab (or, for the static engine, one parsed
// document). Every wait is bounded by the timeout passed to the call.
type Page interface {
	// Navigate loads url and blocks until the initial load completes.
	Navigate(ctx context.Context, url string) error

	// Query waits up to timeout for at least one element matching loc and
	// returns the text content of every match in document order.
	// It returns ErrElementNotFound when the wait expires with no match.
	Query(ctx context.Context, loc Locator, timeout time.Duration) ([]string, error)

	// Content returns the full markup of the current document.
	Content(ctx context.Context) (string, error)

	// Screenshot captures the current viewport as PNG bytes.
	Screenshot(ctx context.Context) ([]byte, error)

	// ScriptClick waits up to timeout for the first element matching loc and
	// clicks it from script, skipping visibility and interactability checks.
	ScriptClick(ctx context.Context, loc Locator, timeout time.Duration) error
}

// Session is a browser session scoped to a single run.
// Close terminates the underlying browser and is safe to call once per session.
type Session interface {
	Page
	Close() error
}

// Launcher starts browser sessions.
type Launcher interface {
	// Launch starts a browser and returns a session with one open page.
	Launch(ctx context.Context) (Session, error)

	// Name returns the name of the provider implementation
	Name() string
}
