package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html lang="en-US">
<head>
  <title>Jobs report disappoints in August</title>
  <meta property="og:type" content="article">
  <meta property="article:published_time" content="2024-09-06T08:30:00Z">
</head>
<body>
  <nav><a href="/home">Home</a></nav>
  <article>
    <h1>Jobs report disappoints</h1>
    <p>Job creation in the United States slowed in August, reviving fears of a recession
    among investors and policy makers watching the labor market closely.</p>
    <a href="/economy/markets">Markets</a>
    <a href="https://www.example.com/economy/fed">Fed coverage</a>
    <a href="https://other.org/syndicated">Syndicated</a>
    <a href="mailto:tips@example.com">Tips</a>
  </article>
  <footer>About us</footer>
</body>
</html>`

func TestExtract_Article(t *testing.T) {
	e := NewPageExtractor()

	page, err := e.Extract([]byte(articleHTML), "https://example.com/economy/jobs")
	require.NoError(t, err)

	assert.True(t, page.IsArticle)
	assert.Equal(t, "Jobs report disappoints in August", page.Title)
	assert.Contains(t, page.Body, "Job creation in the United States")
	assert.NotContains(t, page.Body, "About us", "footer text must be stripped")
	assert.Equal(t, "en", page.Language)

	require.NotNil(t, page.PublishedAt)
	want := time.Date(2024, 9, 6, 8, 30, 0, 0, time.UTC)
	assert.True(t, page.PublishedAt.Equal(want))

	assert.Contains(t, page.Links, "https://example.com/economy/markets")
	assert.Contains(t, page.Links, "https://www.example.com/economy/fed")
	assert.Contains(t, page.Links, "https://other.org/syndicated")
	for _, link := range page.Links {
		assert.NotContains(t, link, "mailto:")
	}
}

func TestExtract_NotAnArticle(t *testing.T) {
	e := NewPageExtractor()

	html := `<html><head><title>Site index</title></head>
	<body><ul><li><a href="/a">A</a></li><li><a href="/b">B</a></li></ul></body></html>`

	page, err := e.Extract([]byte(html), "https://example.com/")
	require.NoError(t, err)

	assert.False(t, page.IsArticle)
	assert.Nil(t, page.PublishedAt)
	assert.Len(t, page.Links, 2)
}

func TestExtract_LanguageFallbackDetection(t *testing.T) {
	e := NewPageExtractor()

	// No lang attribute: detection falls back to the body text.
	html := `<html><head><title>Economía</title></head>
	<body><article><p>La creación de empleo defrauda en Estados Unidos en agosto y aviva
	el fantasma de la recesión entre los inversores y los mercados financieros
	internacionales que siguen la evolución de la economía.</p></article></body></html>`

	page, err := e.Extract([]byte(html), "https://elpais.com/economia/articulo")
	require.NoError(t, err)
	assert.Equal(t, "es", page.Language)
}

func TestExtract_DateOnlyTimestamp(t *testing.T) {
	e := NewPageExtractor()

	html := `<html><head><title>T</title><meta name="date" content="2024-09-06"></head>
	<body><article><p>text</p></article></body></html>`

	page, err := e.Extract([]byte(html), "https://example.com/t")
	require.NoError(t, err)
	require.NotNil(t, page.PublishedAt)
	assert.Equal(t, 2024, page.PublishedAt.Year())
	assert.Equal(t, time.September, page.PublishedAt.Month())
}

func TestExtract_RelativeLinksResolved(t *testing.T) {
	e := NewPageExtractor()

	html := `<html><body><article>
	<a href="story-2">Next</a>
	<a href="../politics/story-3">Other section</a>
	</article></body></html>`

	page, err := e.Extract([]byte(html), "https://example.com/economy/story-1")
	require.NoError(t, err)

	assert.Contains(t, page.Links, "https://example.com/economy/story-2")
	assert.Contains(t, page.Links, "https://example.com/politics/story-3")
}
