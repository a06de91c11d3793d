package shared

import (
	"cmp"
	"unsafe"
)

// Compare orders handles by the address of their resource, never by the
// resource's value. Empty and nil handles sort first and compare equal to
// each other. The order is stable for as long as the resources are alive,
// which makes it usable as the key order of ordered containers.
//
// Distinct zero-size values may share an address in Go, so handles to
// zero-size resources can compare equal without sharing a count cell.
func Compare[T any](a, b *Handle[T]) int {
	return cmp.Compare(addr(a.resource()), addr(b.resource()))
}

// Less reports whether a sorts before b by resource identity.
func Less[T any](a, b *Handle[T]) bool {
	return Compare(a, b) < 0
}

func addr[T any](p *T) uintptr {
	return uintptr(unsafe.Pointer(p))
}
