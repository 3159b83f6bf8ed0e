// Package testing provides shared test helpers for atlasctl packages.
//
// Builders construct desired-state specs fluently; fixtures wire an
// atlas.MockClient to an in-memory project so that writes made by one pass
// are visible to the next.
//
// Import it under an alias to avoid clashing with the standard library:
//
//	import testutil "github.com/imamik/atlasctl/internal/testing"
package testing
