package testutil

import (
	"testing"

	"github.com/arthur-debert/brewadopt/pkg/types"
	json "github.com/goccy/go-json"
)

// CatalogBuilder assembles a cask catalog fluently:
//
//	recs := testutil.NewCatalog().
//		Cask("visual-studio-code", "Microsoft Visual Studio Code", "VS Code").
//		App("Visual Studio Code.app").
//		Quit("com.microsoft.VSCode").
//		Build()
type CatalogBuilder struct {
	records []types.PackageRecord
}

// NewCatalog starts an empty catalog.
func NewCatalog() *CatalogBuilder {
	return &CatalogBuilder{}
}

// Cask starts a new record. Later calls apply to it.
func (b *CatalogBuilder) Cask(token string, names ...string) *CatalogBuilder {
	rec := types.PackageRecord{Token: token}
	if len(names) > 0 {
		rec.Names = types.StringList(names)
	}
	b.records = append(b.records, rec)
	return b
}

func (b *CatalogBuilder) current() *types.PackageRecord {
	if len(b.records) == 0 {
		panic("testutil: call Cask before adding fields")
	}
	return &b.records[len(b.records)-1]
}

// Desc sets the description and homepage of the current record.
func (b *CatalogBuilder) Desc(desc, homepage string) *CatalogBuilder {
	rec := b.current()
	rec.Description = desc
	rec.Homepage = homepage
	return b
}

// App adds an "app" artifact with bare filename bundles.
func (b *CatalogBuilder) App(filenames ...string) *CatalogBuilder {
	a := types.Artifact{}
	for _, f := range filenames {
		a.Apps = append(a.Apps, types.AppBundle{Shape: types.BundleShapeFilename, Filename: f})
	}
	rec := b.current()
	rec.Artifacts = append(rec.Artifacts, a)
	return b
}

// AppTarget adds an "app" artifact in {"target": filename} form.
func (b *CatalogBuilder) AppTarget(filename string) *CatalogBuilder {
	rec := b.current()
	rec.Artifacts = append(rec.Artifacts, types.Artifact{
		Apps: []types.AppBundle{{Shape: types.BundleShapeTarget, Filename: filename}},
	})
	return b
}

// Quit adds an uninstall artifact with quit identifiers.
func (b *CatalogBuilder) Quit(ids ...string) *CatalogBuilder {
	rec := b.current()
	rec.Artifacts = append(rec.Artifacts, types.Artifact{
		Uninstall: []types.UninstallDirective{{Quit: types.StringList(ids)}},
	})
	return b
}

// Build returns the records.
func (b *CatalogBuilder) Build() []types.PackageRecord {
	return append([]types.PackageRecord(nil), b.records...)
}

// JSON encodes the records as a catalog document.
func (b *CatalogBuilder) JSON(t testing.TB) []byte {
	t.Helper()
	data, err := json.Marshal(b.records)
	if err != nil {
		t.Fatalf("Failed to encode catalog: %v", err)
	}
	return data
}
