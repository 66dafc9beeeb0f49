package apps

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/afero"
)

const (
	plistBundleIdentifier = "CFBundleIdentifier"
	plistShortVersion     = "CFBundleShortVersionString"
)

var binaryPlistMagic = []byte("bplist")

// bundleInfo is the subset of Info.plist the scanner records.
type bundleInfo struct {
	Identifier string
	Version    string
}

// errBinaryPlist marks an Info.plist stored in the binary format, which the
// scanner does not decode.
type errBinaryPlist struct{}

func (errBinaryPlist) Error() string { return "binary property list" }

// readBundleInfo reads <bundle>/Contents/Info.plist.
func readBundleInfo(fsys afero.Fs, bundlePath string) (bundleInfo, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(bundlePath, "Contents", "Info.plist"))
	if err != nil {
		return bundleInfo{}, err
	}
	return parseInfoPlist(data)
}

// parseInfoPlist extracts bundle metadata from an XML property list. Keys
// are looked up in the top-level dict only.
func parseInfoPlist(data []byte) (bundleInfo, error) {
	if bytes.HasPrefix(data, binaryPlistMagic) {
		return bundleInfo{}, errBinaryPlist{}
	}

	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(data); err != nil {
		return bundleInfo{}, err
	}

	dict := doc.FindElement("./plist/dict")
	if dict == nil {
		return bundleInfo{}, nil
	}

	var info bundleInfo
	children := dict.ChildElements()
	for i := 0; i+1 < len(children); i++ {
		if children[i].Tag != "key" {
			continue
		}
		value := children[i+1]
		if value.Tag != "string" {
			continue
		}
		switch strings.TrimSpace(children[i].Text()) {
		case plistBundleIdentifier:
			info.Identifier = strings.TrimSpace(value.Text())
		case plistShortVersion:
			info.Version = strings.TrimSpace(value.Text())
		}
	}
	return info, nil
}
