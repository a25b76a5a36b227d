package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/pricetrack/internal/engine"
)

func TestCSSSelector(t *testing.T) {
	sel, err := CSSSelector(engine.ID("productTitle"))
	require.NoError(t, err)
	assert.Equal(t, `[id="productTitle"]`, sel)

	sel, err = CSSSelector(engine.CSS("span.a-price span.a-offscreen"))
	require.NoError(t, err)
	assert.Equal(t, "span.a-price span.a-offscreen", sel)

	_, err = CSSSelector(engine.Text("Continue shopping"))
	assert.ErrorIs(t, err, engine.ErrUnsupportedLocator)
}

func TestTextXPath(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Continue shopping", `//*[text()[normalize-space(.)="Continue shopping"]]`},
		{` Say "hi" `, `//*[text()[normalize-space(.)='Say "hi"']]`},
		{`It's "x"`, `//*[text()[normalize-space(.)=concat("It's ", '"', "x", '"', "")]]`},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, TextXPath(tt.label))
		})
	}
}
