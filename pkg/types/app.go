package types

// AppStatus is the classification a discovery run assigns to a local app.
type AppStatus string

const (
	// StatusPending marks an app that still needs resolving. It never
	// leaves a completed run.
	StatusPending          AppStatus = "pending"
	StatusIgnored          AppStatus = "ignored"
	StatusAlreadyInstalled AppStatus = "already-installed"
	StatusAvailable        AppStatus = "available"
	StatusUnavailable      AppStatus = "unavailable"
)

// AllStatuses lists the terminal statuses in display order.
var AllStatuses = []AppStatus{
	StatusAvailable,
	StatusAlreadyInstalled,
	StatusUnavailable,
	StatusIgnored,
}

// PackageType distinguishes Homebrew casks from formulae.
type PackageType string

const (
	PackageTypeCask    PackageType = "cask"
	PackageTypeFormula PackageType = "formula"
)

// LocalApp is an application bundle found on disk. The scanner fills the
// identity fields; the discovery orchestrator fills the result fields.
type LocalApp struct {
	OriginalName   string `json:"name" yaml:"name"`
	NormalizedName string `json:"normalized_name" yaml:"normalized_name"`
	// PackageName is the independently derived package-name guess, e.g.
	// "bartender" for "Bartender 5".
	PackageName string `json:"package_name,omitempty" yaml:"package_name,omitempty"`
	BundlePath  string `json:"bundle_path" yaml:"bundle_path"`
	BundleID    string `json:"bundle_id,omitempty" yaml:"bundle_id,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`

	Status         AppStatus    `json:"status" yaml:"status"`
	PackageType    PackageType  `json:"package_type,omitempty" yaml:"package_type,omitempty"`
	MatchedPackage string       `json:"matched_package,omitempty" yaml:"matched_package,omitempty"`
	Description    string       `json:"description,omitempty" yaml:"description,omitempty"`
	Homepage       string       `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Error          string       `json:"error,omitempty" yaml:"error,omitempty"`
	Match          *MatchResult `json:"match,omitempty" yaml:"match,omitempty"`
}

// LookupNames returns the names the app can be known by in the package
// manager: its normalized name followed by its package-name variant when
// that differs.
func (a *LocalApp) LookupNames() []string {
	names := []string{a.NormalizedName}
	if a.PackageName != "" && a.PackageName != a.NormalizedName {
		names = append(names, a.PackageName)
	}
	return names
}

// MarkAvailable records a resolved package on the app.
func (a *LocalApp) MarkAvailable(pkgType PackageType, name, description, homepage string) {
	a.Status = StatusAvailable
	a.PackageType = pkgType
	a.MatchedPackage = name
	a.Description = description
	a.Homepage = homepage
	a.Error = ""
}

// MarkUnavailable records that no package could be found for the app.
// reason is empty for a clean miss and carries the probe error otherwise.
func (a *LocalApp) MarkUnavailable(reason string) {
	a.Status = StatusUnavailable
	a.PackageType = ""
	a.MatchedPackage = ""
	a.Error = reason
}

// CountByStatus tallies apps per status.
func CountByStatus(apps []*LocalApp) map[AppStatus]int {
	counts := make(map[AppStatus]int, len(AllStatuses))
	for _, app := range apps {
		counts[app.Status]++
	}
	return counts
}

// FilterByStatus returns the apps whose status is s, in input order.
func FilterByStatus(apps []*LocalApp, s AppStatus) []*LocalApp {
	var out []*LocalApp
	for _, app := range apps {
		if app.Status == s {
			out = append(out, app)
		}
	}
	return out
}
