package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"portfolio.html", "admin.html", "auth.html", "status.html", "privacy.html", "toast", "admin-view"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestStaticHasStylesheet(t *testing.T) {
	_, err := fs.Stat(Static(), "site.css")
	assert.NoError(t, err)
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★☆☆", stars(3))
	assert.Equal(t, "☆☆☆☆☆", stars(-1))
	assert.Equal(t, "★★★★★", stars(9))
}

func TestSeq(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, seq(1, 5))
	assert.Empty(t, seq(3, 1))
}

func TestDict(t *testing.T) {
	m, err := dict("Name", "title", "Errors", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "title", m["Name"])

	_, err = dict("odd")
	assert.Error(t, err)

	_, err = dict(1, "x")
	assert.Error(t, err)
}

func TestInitial(t *testing.T) {
	tests := map[string]string{
		"zach":    "Z",
		"Élodie":  "É",
		"ñandú":   "Ñ",
		"  ada":   "A",
		"李雷":      "李",
		"":        "?",
		"\xffbad": "?",
	}
	for in, want := range tests {
		assert.Equal(t, want, initial(in), in)
	}
}
