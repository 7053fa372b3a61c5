// Package fetcher defines the contract between the scheduler and the
// external tile-fetching transport (spec.md §6). The transport itself —
// HTTP clients, on-disk tile stores, whatever actually resolves a tile
// id to bytes — is out of scope (spec.md §1); this package only pins
// down the shape of the boundary.
package fetcher

import (
	"terratile/residency"
	"terratile/tile"
)

// Requester is the outbound half of the contract: the scheduler calls
// RequestQuads whenever the update pass finds ids in the working set that
// are not yet in the RAM cache. A Requester implementation owns whatever
// transport actually resolves ids to bytes and eventually calls back into
// the scheduler's ReceiveQuads.
type Requester interface {
	RequestQuads(ids []tile.ID)
}

// RequesterFunc adapts a plain function to a Requester.
type RequesterFunc func(ids []tile.ID)

// RequestQuads implements Requester.
func (f RequesterFunc) RequestQuads(ids []tile.ID) {
	f(ids)
}

// CompressionAware is implemented by fetchers that can honor the
// renderer's negotiated compressed ortho format (spec.md §4.F: "the
// fetcher must compress ortho according to preferred_compression_algorithm").
// A Requester that does not implement this interface is assumed to always
// deliver uncompressed ortho bytes.
type CompressionAware interface {
	SetPreferredCompression(format residency.CompressedFormat)
}
