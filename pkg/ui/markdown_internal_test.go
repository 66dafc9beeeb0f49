package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/brewadopt/pkg/discovery"
	"github.com/arthur-debert/brewadopt/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownRenderer_Glamour(t *testing.T) {
	buf := &bytes.Buffer{}
	r := newMarkdownRenderer(buf, "notty")

	apps := []*types.LocalApp{{
		OriginalName: "Firefox", Status: types.StatusAvailable,
		PackageType: types.PackageTypeCask, MatchedPackage: "firefox",
	}}
	require.NoError(t, r.RenderDiscovery(&discovery.Result{Apps: apps, Counts: types.CountByStatus(apps)}))

	out := buf.String()
	assert.Contains(t, out, "Application discovery")
	assert.Contains(t, out, "Firefox")
	assert.NotContains(t, out, "|---|")
}

func TestMdCell(t *testing.T) {
	assert.Equal(t, `a \| b`, mdCell("a | b"))
	assert.Equal(t, "one two", mdCell("one\ntwo"))
	assert.Empty(t, mdCode(""))
	assert.Equal(t, "`x`", mdCode("x"))
}

func TestLoadStyles(t *testing.T) {
	styles := DefaultStyles()
	for _, name := range []string{"Heading", "AppName", "Package", "Success", "Warning", "Error", "Muted"} {
		_, ok := styles[name]
		assert.True(t, ok, name)
	}
	assert.Equal(t, "plain", styles.Render("NoSuchStyle", "plain"))

	_, err := LoadStyles([]byte("styles:\n  Bad:\n    foreground: nope\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown color")

	_, err = LoadStyles([]byte("colors: [unclosed"))
	require.Error(t, err)
}

func TestSummaryLine_Singular(t *testing.T) {
	apps := []*types.LocalApp{{Status: types.StatusIgnored}}
	line := summaryLine(&discovery.Result{Apps: apps})
	assert.True(t, strings.HasPrefix(line, "1 app: "))
	assert.Contains(t, line, "1 ignored")
}
