// Package testutil provides fixtures for testing brewadopt components.
//
// Key components:
//   - TestEnvironment: isolated paths and an afero filesystem per test
//   - CatalogBuilder: declarative cask catalog setup
//   - FakeRunner: scripted brew command results
//   - ErrorFS: afero wrapper that injects errors for chosen paths
//
// All fixture data is defined inline in the tests that use it.
package testutil
