package views

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	pages := []string{
		"books/index",
		"books/new-book",
		"books/update-book",
		"books/show-book",
		"books/delete-book",
		"page-not-found",
		"error",
	}
	for _, name := range pages {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestFormEscapesInput(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "books/new-book", map[string]any{
		"title":  "New Book",
		"book":   map[string]any{"Title": `<script>alert(1)</script>`, "Author": "", "Genre": "", "Year": ""},
		"errors": []string{`"Author" is required`},
	})
	require.NoError(t, err)

	html := buf.String()
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&#34;Author&#34; is required")
}

func TestStatic(t *testing.T) {
	f, err := Static().Open("stylesheets/style.css")
	require.NoError(t, err)
	defer f.Close()

	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}
