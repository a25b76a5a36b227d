package tracker

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/pricetrack/internal/diagnostics"
	"github.com/law-makers/pricetrack/internal/engine"
	"github.com/law-makers/pricetrack/internal/engine/static"
	"github.com/law-makers/pricetrack/internal/history"
	"github.com/law-makers/pricetrack/internal/ratelimit"
)

func storeServer(t *testing.T, product string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1>Deals</h1></body></html>`)
	})
	mux.HandleFunc("/dp/B0CGY3VF3K", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, product)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newStaticTracker(t *testing.T, server *httptest.Server, dir string) *Tracker {
	t.Helper()
	return New(Options{
		Launcher:  static.NewLauncher(server.Client(), "pricetrack-test"),
		Store:     history.NewCSVStore(filepath.Join(dir, "price_history.csv")),
		Capturer:  diagnostics.NewFileCapturer(dir, time.Second),
		Pacer:     ratelimit.NewHostPacer(time.Millisecond),
		ShortWait: 50 * time.Millisecond,
		LongWait:  100 * time.Millisecond,
	})
}

func TestStaticRun_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		priceHTML string
		wantText  string
		wantValue string
	}{
		{
			name:      "single offscreen span",
			priceHTML: `<span class="a-price"><span class="a-offscreen">$19.99</span></span>`,
			wantText:  "$19.99",
			wantValue: "19.99",
		},
		{
			name: "list and deal price",
			priceHTML: `<span class="a-price a-text-price"><span class="a-offscreen">$24.99</span></span>
				<span class="a-price"><span class="a-offscreen">$19.99</span></span>`,
			wantText:  "$19.99",
			wantValue: "19.99",
		},
		{
			name:      "narrow id wins",
			priceHTML: `<span id="priceblock_ourprice">$1,234.56</span><span class="a-price"><span class="a-offscreen">$9.00</span></span>`,
			wantText:  "$1,234.56",
			wantValue: "1234.56",
		},
		{
			name:      "split price",
			priceHTML: `<span class="a-price-symbol">$</span><span class="a-price-whole">42<span class="a-price-decimal">.</span></span><span class="a-price-fraction">50</span>`,
			wantText:  "$42.50",
			wantValue: "42.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			product := `<html><body><span id="productTitle"> LEGO Creator Forest Animals </span>` + tt.priceHTML + `</body></html>`
			server := storeServer(t, product)

			obs, err := newStaticTracker(t, server, dir).Run(context.Background(), server.URL+"/dp/B0CGY3VF3K")
			require.NoError(t, err)

			assert.Equal(t, "LEGO Creator Forest Animals", obs.Title)
			assert.Equal(t, tt.wantText, obs.PriceText)
			assert.Equal(t, tt.wantValue, obs.PriceValue.Decimal.String())

			raw, err := os.ReadFile(filepath.Join(dir, "price_history.csv"))
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
			require.Len(t, lines, 2)
			assert.Equal(t, "timestamp,title,price_text,price_value,url", lines[0])

			assert.NoFileExists(t, filepath.Join(dir, diagnostics.PageSourceFile))
		})
	}
}

func TestStaticRun_Blocked(t *testing.T) {
	dir := t.TempDir()
	server := storeServer(t, `<html><body><p>Enter the characters you see below</p>
		<form action="/errors/validateCaptcha"><input id="captchacharacters"></form>
		<span id="productTitle">Widget</span></body></html>`)

	_, err := newStaticTracker(t, server, dir).Run(context.Background(), server.URL+"/dp/B0CGY3VF3K")
	require.ErrorIs(t, err, ErrBlocked)

	var te *Error
	require.ErrorAs(t, err, &te)
	require.NotNil(t, te.Diagnostics)
	assert.Equal(t, []string{filepath.Join(dir, diagnostics.PageSourceFile)}, te.Diagnostics.Written())
	assert.ErrorIs(t, te.Diagnostics.ScreenshotErr, engine.ErrNotSupported)

	html, err := os.ReadFile(filepath.Join(dir, diagnostics.PageSourceFile))
	require.NoError(t, err)
	assert.Contains(t, string(html), "validateCaptcha")

	// The static engine cannot take screenshots; the page source is still saved.
	assert.NoFileExists(t, filepath.Join(dir, diagnostics.ScreenshotFile))
	assert.NoFileExists(t, filepath.Join(dir, "price_history.csv"))
}
