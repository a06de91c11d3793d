//go:build noassert

package shared

const assertionsEnabled = false
