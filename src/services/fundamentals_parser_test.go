package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleQuotePage = `<!DOCTYPE html>
<html><body>
<div data-entity-type="quote">
  <div class="stats">
    <div><div class="label">Market cap</div><div class="value">12.95L Cr INR</div></div>
    <div><div class="label">P/E ratio</div><div class="value">18.69</div></div>
    <div><div class="label">EPS</div><div class="value">91.02</div></div>
    <div><div class="label">Dividend yield</div><div class="value">1.15%</div></div>
  </div>
</div>
</body></html>`

func TestParseExtractsPEAndEPS(t *testing.T) {
	f := quotePageParser{}.Parse(sampleQuotePage)

	assert.Equal(t, 18.69, f.PERatio)
	assert.Equal(t, 91.02, f.LatestEarnings)
}

func TestParseMissingPEYieldsZeroForThatFieldOnly(t *testing.T) {
	page := `<html><body><div>
	  <div>EPS</div><div>-3.05</div>
	</div></body></html>`

	f := quotePageParser{}.Parse(page)

	assert.Equal(t, 0.0, f.PERatio)
	assert.Equal(t, -3.05, f.LatestEarnings)
}

func TestParseUnparsableValueYieldsZero(t *testing.T) {
	page := `<html><body><div>
	  <div>P/E ratio</div><div>—</div>
	  <div>EPS</div><div>91.02</div>
	</div></body></html>`

	f := quotePageParser{}.Parse(page)

	assert.Equal(t, 0.0, f.PERatio)
	assert.Equal(t, 91.02, f.LatestEarnings)
}

func TestParseThousandsSeparators(t *testing.T) {
	page := `<html><body><div>
	  <div>P/E ratio</div><div>1,427.50</div>
	  <div>EPS</div><div>257.8 INR</div>
	</div></body></html>`

	f := quotePageParser{}.Parse(page)

	assert.Equal(t, 1427.5, f.PERatio)
	assert.Equal(t, 257.8, f.LatestEarnings)
}

func TestParseUnrelatedMarkup(t *testing.T) {
	f := quotePageParser{}.Parse(`<html><body><p>nothing here</p></body></html>`)

	assert.Equal(t, Fundamentals{}, f)
}

func TestParseLabelWrappedInSpans(t *testing.T) {
	page := `<html><body><div>
	  <div><span>P/E ratio</span></div><div><span>32.63</span></div>
	</div></body></html>`

	f := quotePageParser{}.Parse(page)

	assert.Equal(t, 32.63, f.PERatio)
}

func TestParseLeadingFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"18.69", 18.69, true},
		{" 91.02 ", 91.02, true},
		{"-3.05", -3.05, true},
		{"1,427.50", 1427.5, true},
		{"257.8 INR", 257.8, true},
		{"—", 0, false},
		{"", 0, false},
		{"N/A", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseLeadingFloat(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
