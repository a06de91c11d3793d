package shared

import (
	"fmt"

	"github.com/ritprem/ritprem/errors"
)

// At returns element index of a slice resource. It is only available when
// the handle's release policy implements Indexer (ArrayFreeStore does);
// other policies yield a KindUnsupported error. The failure policy runs
// first, as for Deref.
//
// No bounds checking is done beyond the Go runtime's own: an index outside
// the slice panics. Callers that need a checked lookup should keep a
// length alongside or use a container type instead.
func At[E any](h *Handle[[]E], index int) (*E, error) {
	release := h.binding().release
	ix, ok := release.(Indexer[[]E, E])
	if !ok {
		return nil, errors.Unsupported(errors.PhaseIndex,
			fmt.Sprintf("release policy %T has no element accessor", release))
	}

	p := h.resource()
	if err := h.failurePolicy().CheckPointer(p); err != nil {
		return nil, err
	}
	return ix.ElementAt(p, index), nil
}
