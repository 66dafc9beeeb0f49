package types

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// PackageRecord is one cask entry from the Homebrew catalog. Field names
// follow the Homebrew JSON API. Records are never mutated after decoding.
type PackageRecord struct {
	Token       string     `json:"token"`
	Names       StringList `json:"name"`
	Description string     `json:"desc,omitempty"`
	Homepage    string     `json:"homepage,omitempty"`
	Artifacts   []Artifact `json:"artifacts,omitempty"`
}

// UnmarshalJSON decodes a record leniently. Only the token is mandatory;
// mistyped optional fields decode to their zero value instead of failing
// the record. Empty lists decode to nil.
func (r *PackageRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("package record is not an object: %w", err)
	}

	var token string
	if err := json.Unmarshal(raw["token"], &token); err != nil || token == "" {
		return fmt.Errorf("package record has no string token")
	}

	out := PackageRecord{Token: token}
	if v, ok := raw["name"]; ok {
		_ = out.Names.UnmarshalJSON(v)
	}
	out.Description = lenientString(raw["desc"])
	out.Homepage = lenientString(raw["homepage"])

	if v, ok := raw["artifacts"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err == nil && len(items) > 0 {
			out.Artifacts = make([]Artifact, 0, len(items))
			for _, item := range items {
				var a Artifact
				_ = a.UnmarshalJSON(item)
				out.Artifacts = append(out.Artifacts, a)
			}
		}
	}

	*r = out
	return nil
}

// AppBundles returns every app-bundle declaration across the record's
// artifacts, in catalog order.
func (r *PackageRecord) AppBundles() []AppBundle {
	var out []AppBundle
	for _, a := range r.Artifacts {
		out = append(out, a.Apps...)
	}
	return out
}

// BundleIdentifiers returns the quit and launchctl identifiers declared by
// the record's uninstall directives, in catalog order.
func (r *PackageRecord) BundleIdentifiers() []string {
	var out []string
	for _, a := range r.Artifacts {
		for _, u := range a.Uninstall {
			out = append(out, u.Quit...)
			out = append(out, u.Launchctl...)
		}
	}
	return out
}

// StringList accepts either a single JSON string or an array of strings.
// Non-string array members and other shapes are dropped. An empty list
// decodes to nil so decoded records survive a cache round trip unchanged.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	switch data[0] {
	case '"':
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*s = StringList{one}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make(StringList, 0, len(items))
		for _, item := range items {
			var v string
			if err := json.Unmarshal(item, &v); err == nil {
				out = append(out, v)
			}
		}
		if len(out) == 0 {
			out = nil
		}
		*s = out
	default:
		*s = nil
	}
	return nil
}

// compactRaw returns data without insignificant whitespace, matching what
// the encoder writes back for a json.RawMessage.
func compactRaw(data []byte) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	}
	return json.RawMessage(buf.Bytes())
}

func lenientString(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ""
	}
	return s
}
