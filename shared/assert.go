//go:build !noassert

package shared

const assertionsEnabled = true
