// Package types defines the data shared by every stage of a discovery run:
// the local applications found on disk (LocalApp), the cask catalog entries
// they are matched against (PackageRecord and its Artifact union), and the
// ranked candidates a match attempt produces (MatchCandidate, MatchResult).
package types
