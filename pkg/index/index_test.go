// Test Type: Unit Test
// Description: Catalog index construction and lookups

package index_test

import (
	"testing"

	"github.com/arthur-debert/brewadopt/pkg/index"
	"github.com/arthur-debert/brewadopt/pkg/types"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) []types.PackageRecord {
	t.Helper()
	var recs []types.PackageRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &recs))
	return recs
}

func tokens(recs []*types.PackageRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Token)
	}
	return out
}

const catalog = `[
	{"token":"visual-studio-code","name":["Microsoft Visual Studio Code","VS Code"],
	 "artifacts":[{"app":["Visual Studio Code.app"]},{"uninstall":[{"quit":"com.microsoft.VSCode"}]}]},
	{"token":"quitall","name":["Quit All","quit all","QUIT ALL"],"artifacts":[{"app":[{"target":"QuitAll.app"}]}]},
	{"token":"bartender","name":["Bartender"],"artifacts":[{"app":["Bartender 5.app"]},{"uninstall":[{"launchctl":["  ","com.surteesstudios.Bartender"]}]}]},
	{"token":"weird","name":["Weird"],"artifacts":[{"app":[42,{"source":"x"}]}]}
]`

func TestBuild_Maps(t *testing.T) {
	idx := index.Build(decode(t, catalog))

	assert.Equal(t, 4, idx.Len())

	assert.Equal(t, []string{"visual-studio-code"}, tokens(idx.LookupName("vs-code")))
	assert.Equal(t, []string{"visual-studio-code"}, tokens(idx.LookupName("microsoft-visual-studio-code")))
	assert.Empty(t, idx.LookupName("visual-studio-code"))

	assert.Equal(t, []string{"visual-studio-code"}, tokens(idx.LookupBundle("visual-studio-code")))
	assert.Equal(t, []string{"quitall"}, tokens(idx.LookupBundle("quitall")))
	assert.Equal(t, []string{"bartender"}, tokens(idx.LookupBundle("bartender-5")))

	assert.Equal(t, []string{"visual-studio-code"}, tokens(idx.LookupBundleID("com.microsoft.VSCode")))
	assert.Equal(t, []string{"bartender"}, tokens(idx.LookupBundleID("com.surteesstudios.Bartender")))
	assert.NotContains(t, idx.ByBundleIdentifier, "")

	rec, ok := idx.LookupToken("quitall")
	require.True(t, ok)
	assert.Equal(t, "quitall", rec.Token)
}

func TestBuild_AliasDedup(t *testing.T) {
	idx := index.Build(decode(t, catalog))

	// "Quit All", "quit all" and "QUIT ALL" share one key.
	assert.Len(t, idx.ByNormalizedName["quit-all"], 1)
}

func TestBuild_UnrecognizedBundlesNoted(t *testing.T) {
	idx := index.Build(decode(t, catalog))

	_, ok := idx.ByToken["weird"]
	assert.True(t, ok, "record with odd bundles is still indexed")
	assert.Len(t, idx.Notes, 2)
	assert.Contains(t, idx.Notes[0], "weird")
}

func TestBuild_CompactLookup(t *testing.T) {
	idx := index.Build(decode(t, catalog))

	assert.Equal(t, []string{"quitall"}, tokens(idx.LookupCompactName("quitall")))
	assert.Equal(t, []string{"visual-studio-code"}, tokens(idx.LookupCompactName("vs-code")))
	assert.Equal(t, []string{"visual-studio-code"}, tokens(idx.LookupCompactName("v-s-code")))
	assert.Empty(t, idx.LookupCompactName("nothing"))
}

func TestBuild_DuplicateTokens(t *testing.T) {
	recs := []types.PackageRecord{
		{Token: "dup", Names: types.StringList{"Old Name"}},
		{Token: "dup", Names: types.StringList{"New Name"}},
		{Token: "", Names: types.StringList{"Blank"}},
	}
	idx := index.Build(recs)

	require.Equal(t, 1, idx.Len())
	assert.Same(t, &recs[1], idx.ByToken["dup"])
	assert.Empty(t, idx.LookupName("old-name"))
	assert.Equal(t, []string{"dup"}, tokens(idx.LookupName("new-name")))
	assert.Empty(t, idx.LookupName("blank"))
	assert.Len(t, idx.Notes, 2)
}

func TestBuild_Empty(t *testing.T) {
	idx := index.Build(nil)
	assert.Zero(t, idx.Len())
	assert.Empty(t, idx.LookupCompactName("x"))
}

func TestBuild_TokenUniqueInEveryList(t *testing.T) {
	recs := decode(t, catalog)
	recs = append(recs, types.PackageRecord{
		Token: "code-alt",
		Names: types.StringList{"VS Code", "VS  Code", "vs-code"},
		Artifacts: []types.Artifact{
			{Apps: []types.AppBundle{
				{Shape: types.BundleShapeFilename, Filename: "Visual Studio Code.app"},
				{Shape: types.BundleShapeTarget, Filename: "visual studio code.app"},
			}},
		},
	})
	idx := index.Build(recs)

	for _, m := range []map[string][]*types.PackageRecord{idx.ByNormalizedName, idx.ByAppBundle, idx.ByBundleIdentifier} {
		for key, list := range m {
			seen := map[string]bool{}
			for _, r := range list {
				assert.False(t, seen[r.Token], "token %s repeated under %s", r.Token, key)
				seen[r.Token] = true
			}
		}
	}
	assert.Equal(t, []string{"visual-studio-code", "code-alt"}, tokens(idx.LookupName("vs-code")))
}

func TestIndex_Names(t *testing.T) {
	idx := index.Build(decode(t, catalog))
	assert.Equal(t, []string{"bartender", "microsoft-visual-studio-code", "quit-all", "vs-code", "weird"}, idx.Names())
}
