// Package apps finds application bundles on disk and derives the names the
// matcher works with.
//
// Three name forms are used throughout brewadopt:
//
//   - the normalized name: "Visual Studio Code" becomes "visual-studio-code"
//   - the compact name: the normalized name with hyphens removed
//   - the package-name variant: the normalized name without a trailing
//     version, so "Bartender 5" becomes "bartender"
//
// The Scanner lists "*.app" directories through an afero filesystem so it
// can be exercised against memory filesystems in tests.
package apps
