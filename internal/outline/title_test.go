package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heading(text string, page int, y, score float64) Heading {
	return Heading{Text: text, Page: page, Level: H1, YPercent: y, Score: score}
}

func TestResolveTitle(t *testing.T) {
	headings := []Heading{
		heading("Small Subtitle", 1, 0.20, 8),
		heading("Main Title", 1, 0.08, 20),
		heading("Later Section", 1, 0.60, 30),
		heading("Second Page", 2, 0.05, 40),
	}
	title, rest := ResolveTitle(headings, 0.4)

	assert.Equal(t, "Main Title", title)
	require.Len(t, rest, 3)
	for _, h := range rest {
		assert.NotEqual(t, "Main Title", h.Text)
	}
	// input untouched
	assert.Len(t, headings, 4)
	assert.Equal(t, "Main Title", headings[1].Text)
}

func TestResolveTitleSkipsNumberedHeadings(t *testing.T) {
	headings := []Heading{
		heading("1. Introduction", 1, 0.05, 30),
		heading("Report on Things", 1, 0.15, 10),
	}
	title, rest := ResolveTitle(headings, 0.4)
	assert.Equal(t, "Report on Things", title)
	require.Len(t, rest, 1)
	assert.Equal(t, "1. Introduction", rest[0].Text)
}

func TestResolveTitleAllowsLeadingYear(t *testing.T) {
	headings := []Heading{
		heading("2024 Annual Report", 1, 0.08, 20),
		heading("2.3. Data", 1, 0.20, 25),
		heading("3 Methods", 1, 0.30, 10),
	}
	title, rest := ResolveTitle(headings, 0.4)
	assert.Equal(t, "2024 Annual Report", title)
	require.Len(t, rest, 2)
	assert.Equal(t, "2.3. Data", rest[0].Text)
}

func TestResolveTitleTieGoesToFirst(t *testing.T) {
	title, _ := ResolveTitle([]Heading{
		heading("First", 1, 0.1, 10),
		heading("Second", 1, 0.2, 10),
	}, 0.4)
	assert.Equal(t, "First", title)
}

func TestResolveTitleNotFound(t *testing.T) {
	headings := []Heading{
		heading("1.1 Scope", 1, 0.05, 30),
		heading("Low On Page", 1, 0.40, 30),
		heading("Other Page", 2, 0.05, 30),
	}
	title, rest := ResolveTitle(headings, 0.4)
	assert.Empty(t, title)
	assert.Equal(t, headings, rest)

	title, rest = ResolveTitle(nil, 0.4)
	assert.Empty(t, title)
	assert.Empty(t, rest)
}
