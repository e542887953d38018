package services

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// fundamentalsParser turns raw quote-page markup into a Fundamentals pair.
// The page scrape is inherently brittle: a layout change upstream degrades
// results to zeros instead of raising errors. Keeping the extraction behind
// this interface means a layout change touches exactly one file.
type fundamentalsParser interface {
	Parse(markup string) Fundamentals
}

// quotePageParser extracts the "P/E ratio" and "EPS" figures from the
// Google Finance quote page, where each statistic is rendered as a label
// element followed by a sibling element holding the value.
type quotePageParser struct{}

func (quotePageParser) Parse(markup string) Fundamentals {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return Fundamentals{}
	}

	var f Fundamentals
	var peFound, epsFound bool

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			label := strings.TrimSpace(nodeText(n))
			if !peFound && isPELabel(label) {
				if v, ok := siblingValue(n); ok {
					f.PERatio = v
					peFound = true
				}
			}
			if !epsFound && isEPSLabel(label) {
				if v, ok := siblingValue(n); ok {
					f.LatestEarnings = v
					epsFound = true
				}
			}
			if peFound && epsFound {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return f
}

func isPELabel(text string) bool {
	return text == "P/E ratio" || text == "P/E"
}

func isEPSLabel(text string) bool {
	return text == "EPS" || text == "Earnings per share"
}

// siblingValue parses the numeric text of the next element sibling.
func siblingValue(n *html.Node) (float64, bool) {
	for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		return parseLeadingFloat(nodeText(sib))
	}
	return 0, false
}

// nodeText concatenates all text under n.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}

// parseLeadingFloat reads the leading decimal number out of a display
// string such as "18.69", "-3.05" or "1,427.00", ignoring thousands
// separators and anything after the number.
func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")

	end := 0
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' || c == '.' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
