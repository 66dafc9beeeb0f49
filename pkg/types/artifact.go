package types

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// BundleShape tags the JSON shape an app-bundle declaration arrived in.
type BundleShape int

const (
	// BundleShapeUnrecognized is any shape the index does not understand.
	// The raw JSON is kept so the record still round-trips.
	BundleShapeUnrecognized BundleShape = iota
	// BundleShapeFilename is a bare string: "Visual Studio Code.app".
	BundleShapeFilename
	// BundleShapeTarget is an object: {"target": "Visual Studio Code.app"}.
	BundleShapeTarget
)

// String returns the shape name used in diagnostics.
func (s BundleShape) String() string {
	switch s {
	case BundleShapeFilename:
		return "filename"
	case BundleShapeTarget:
		return "target"
	default:
		return "unrecognized"
	}
}

// AppBundle is one entry of an "app" artifact.
type AppBundle struct {
	Shape    BundleShape
	Filename string
	Raw      json.RawMessage
}

// UnmarshalJSON never fails; unknown shapes become BundleShapeUnrecognized.
func (b *AppBundle) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*b = AppBundle{}

	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		b.Shape = BundleShapeFilename
		b.Filename = name
		return nil
	}

	var obj struct {
		Target *string `json:"target"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Target != nil {
		b.Shape = BundleShapeTarget
		b.Filename = *obj.Target
		return nil
	}

	b.Shape = BundleShapeUnrecognized
	b.Raw = compactRaw(data)
	return nil
}

// MarshalJSON writes the bundle back in the shape it was read in.
func (b AppBundle) MarshalJSON() ([]byte, error) {
	switch b.Shape {
	case BundleShapeFilename:
		return json.Marshal(b.Filename)
	case BundleShapeTarget:
		return json.Marshal(map[string]string{"target": b.Filename})
	default:
		if len(b.Raw) == 0 {
			return []byte("null"), nil
		}
		return b.Raw, nil
	}
}

// UninstallDirective carries the identifiers an uninstall stanza uses to
// stop the app. Both fields accept a string or a list in the catalog.
type UninstallDirective struct {
	Quit      StringList `json:"quit,omitempty"`
	Launchctl StringList `json:"launchctl,omitempty"`
}

// Artifact is one element of a record's "artifacts" array. Only the "app"
// and "uninstall" kinds are modelled; other kinds are dropped. A
// non-object element is kept verbatim in Raw.
type Artifact struct {
	Apps      []AppBundle
	Uninstall []UninstallDirective
	Raw       json.RawMessage
}

// UnmarshalJSON never fails, so one odd artifact cannot sink a record.
func (a *Artifact) UnmarshalJSON(data []byte) error {
	*a = Artifact{}

	var kinds map[string]json.RawMessage
	if err := json.Unmarshal(data, &kinds); err != nil {
		a.Raw = compactRaw(data)
		return nil
	}

	if v, ok := kinds["app"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err == nil {
			for _, item := range items {
				var b AppBundle
				_ = b.UnmarshalJSON(item)
				a.Apps = append(a.Apps, b)
			}
		} else {
			// "app": "Foo.app" without the surrounding array
			var b AppBundle
			_ = b.UnmarshalJSON(v)
			a.Apps = append(a.Apps, b)
		}
	}

	if v, ok := kinds["uninstall"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err == nil {
			for _, item := range items {
				var d UninstallDirective
				if err := json.Unmarshal(item, &d); err == nil {
					a.Uninstall = append(a.Uninstall, d)
				}
			}
		}
	}

	return nil
}

// MarshalJSON writes the modelled kinds back as a single object.
func (a Artifact) MarshalJSON() ([]byte, error) {
	if len(a.Raw) > 0 {
		return a.Raw, nil
	}
	out := make(map[string]interface{}, 2)
	if len(a.Apps) > 0 {
		out["app"] = a.Apps
	}
	if len(a.Uninstall) > 0 {
		out["uninstall"] = a.Uninstall
	}
	return json.Marshal(out)
}
