package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInterception(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"captcha prompt", "<p>Type the characters you see in this image:</p>", true},
		{"upper case", "<title>ROBOT CHECK</title>", true},
		{"mixed case", "Sorry, we just need to make sure you're Not A Robot.", true},
		{"captcha form", `<form method="get" action="/errors/validateCaptcha">`, true},
		{"enter characters", "Enter the characters you see below", true},
		{"product page", `<span id="productTitle">Widget</span><span class="a-offscreen">$19.99</span>`, false},
		{"robot product", "<span id=\"productTitle\">Robot Vacuum Cleaner</span>", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInterception(tt.content))
		})
	}
}

func TestDetector_Match(t *testing.T) {
	d := New("  Access Denied ", "")

	marker, ok := d.Match("<h1>access denied</h1>")
	assert.True(t, ok)
	assert.Equal(t, "access denied", marker)

	marker, ok = d.Match("<h1>Robot Check</h1>")
	assert.True(t, ok)
	assert.Equal(t, "robot check", marker)

	_, ok = d.Match("<h1>Deals of the day</h1>")
	assert.False(t, ok)

	assert.Len(t, d.Markers(), len(DefaultMarkers)+1)
}
