package apps_test

import (
	"testing"

	"github.com/arthur-debert/brewadopt/pkg/apps"
	"github.com/stretchr/testify/assert"
)

func TestIgnoreList_Matches(t *testing.T) {
	il := apps.NewIgnoreList([]string{"bartender", "Google Chrome", "", "  "})

	assert.Equal(t, []string{"bartender", "google-chrome"}, il.Entries())

	assert.True(t, il.Matches("bartender"))
	assert.True(t, il.Matches("bartender-5"), "version-suffixed names are ignored")
	assert.True(t, il.Matches("google-chrome"))
	assert.True(t, il.Matches("google-chrome-canary"))

	assert.False(t, il.Matches("bartenderx"), "prefix must end at a hyphen")
	assert.False(t, il.Matches("google"))
	assert.False(t, il.Matches(""))
}

func TestIgnoreList_Nil(t *testing.T) {
	var il *apps.IgnoreList
	assert.False(t, il.Matches("anything"))
	assert.Zero(t, il.Len())
}

func TestIgnoreList_Dedup(t *testing.T) {
	il := apps.NewIgnoreList([]string{"Slack", "slack", "SLACK"})
	assert.Equal(t, 1, il.Len())
}
