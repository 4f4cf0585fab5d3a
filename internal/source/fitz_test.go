//go:build cgo && !nocgo

package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitzSourcePage(t *testing.T) {
	path := writeTestPDF(t, "Fixture Title", "Hello Outline")

	src, err := NewFitzSource(path)
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, 1, src.PageCount())

	page, err := src.Page(0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.InDelta(t, 612, page.Width, 1)
	assert.InDelta(t, 792, page.Height, 1)
	assert.Contains(t, pageText(page), "Hello Outline")

	require.NotEmpty(t, page.Blocks)
	require.NotEmpty(t, page.Blocks[0].Lines)
	span := page.Blocks[0].Lines[0].Spans[0]
	assert.InDelta(t, 24, span.Size, 0.5)

	meta := src.Metadata()
	assert.Equal(t, "Fixture Title", meta["title"])
	for k, v := range meta {
		assert.NotEmpty(t, v, k)
	}
}

func TestOpenFitzLoad(t *testing.T) {
	path := writeTestPDF(t, "Fixture Title", "Hello Outline")

	src, err := Open("", path)
	require.NoError(t, err)
	defer src.Close()

	doc, err := Load(context.Background(), src, path)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "Fixture Title", doc.Metadata["title"])
}
