// Package ptr provides helpers for optional fields held as pointers.
package ptr

// To returns a pointer to v.
func To[T any](v T) *T { return &v }
