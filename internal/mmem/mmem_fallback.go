//go:build !unix

// Package mmem provides platform-specific helpers for anonymous memory mappings.
package mmem

import "fmt"

// Map allocates from the Go heap when anonymous mappings are not available.
func Map(n int) ([]byte, func() error, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("mmem: invalid mapping size %d", n)
	}
	return make([]byte, n), func() error { return nil }, nil
}
