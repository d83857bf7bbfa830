// Package testutil provides testing utilities for the spatial grids.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random points and boxes and for
// computing brute-force query ground truth.
package testutil
