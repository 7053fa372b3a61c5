package residency

import (
	"bytes"
	"image"

	"terratile/math32"
	"terratile/tile"
)

// GPUTile is the decoded form of one child tile's payload: ready to place
// into the renderer's texture arrays. The type can carry ortho either as a
// decoded color raster (Ortho) or as raw compressed-texture bytes
// (OrthoCompressed); OrthoFormat says which. Decoder.DecodeQuad fills only
// the decoded form.
// Height is always a raw uint16 raster, since R16Uint has no compressed
// or filtered variant worth carrying (see HeightFormat).
type GPUTile struct {
	ID     tile.ID
	AABB   math32.Box3
	Ortho  image.Image
	Height []uint16
	// OrthoCompressed holds the raw compressed bytes instead of Ortho
	// when OrthoFormat is a compressed format; Ortho is nil in that case.
	OrthoCompressed []byte
	OrthoFormat     CompressedFormat
}

// GPUQuad groups up to four decoded GPUTiles sharing a parent, mirroring
// tile.Quad but in GPU-ready form. The parent ID is the GPU shadow cache
// key.
type GPUQuad struct {
	ID     tile.ID
	NTiles int
	Tiles  [4]GPUTile
}

// Decoder builds GPUQuads from tile.Quads, substituting default payloads
// for missing or malformed bytes (spec.md §7: missing payload and
// decoding failure are both silent, graceful-degradation paths, never
// propagated errors).
type Decoder struct {
	aabb          tile.AABBDecorator
	defaultOrtho  []byte
	defaultHeight []byte
	onDecodeFail  func(id tile.ID, layer string, err error)
}

// NewDecoder builds a Decoder. defaultOrtho and defaultHeight are the
// scheduler's once-built default blobs (solid white JPEG, solid black
// PNG); onDecodeFail, if non-nil, is called for logging when a decode
// falls back to a default — it must not return an error itself, since
// fallback is not a failure at this layer.
func NewDecoder(aabbDec tile.AABBDecorator, defaultOrtho, defaultHeight []byte, onDecodeFail func(id tile.ID, layer string, err error)) *Decoder {
	return &Decoder{
		aabb:          aabbDec,
		defaultOrtho:  defaultOrtho,
		defaultHeight: defaultHeight,
		onDecodeFail:  onDecodeFail,
	}
}

// DecodeQuad converts a tile.Quad into a GPUQuad, decoding (or
// substituting defaults for) each child's ortho and height payload.
// Ortho bytes are always decoded as an image (JPEG or PNG) and OrthoFormat
// is set to FormatNone; OrthoCompressed is never filled, so compressed-
// texture bytes fail to decode and are replaced by the default ortho.
func (d *Decoder) DecodeQuad(q tile.Quad) GPUQuad {
	out := GPUQuad{ID: q.ID, NTiles: q.NTiles}
	for i := 0; i < q.NTiles; i++ {
		out.Tiles[i] = d.decodeTile(q.Tiles[i])
	}
	return out
}

func (d *Decoder) decodeTile(t tile.Tile) GPUTile {
	gt := GPUTile{
		ID:   t.ID,
		AABB: d.aabb.AABB(t.ID),
	}

	orthoBytes := t.Ortho
	if orthoBytes == nil {
		orthoBytes = d.defaultOrtho
	}
	img, _, err := image.Decode(bytes.NewReader(orthoBytes))
	if err != nil {
		d.fail(t.ID, "ortho", err)
		img, _, _ = image.Decode(bytes.NewReader(d.defaultOrtho))
	}
	gt.Ortho = img
	gt.OrthoFormat = FormatNone

	heightBytes := t.Height
	if heightBytes == nil {
		heightBytes = d.defaultHeight
	}
	h, err := decodeHeight(heightBytes)
	if err != nil {
		d.fail(t.ID, "height", err)
		h, _ = decodeHeight(d.defaultHeight)
	}
	gt.Height = h

	return gt
}

func (d *Decoder) fail(id tile.ID, layer string, err error) {
	if d.onDecodeFail != nil {
		d.onDecodeFail(id, layer, err)
	}
}

// decodeHeight decodes a height raster PNG (a grayscale 16-bit PNG is the
// default encoding used for the synthetic default-height blob and is
// accepted for fetched payloads too) into a flat row-major uint16 slice.
func decodeHeight(b []byte) ([]uint16, error) {
	img, err := decodePNG(b)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	out := make([]uint16, bounds.Dx()*bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g, _, _, _ := img.At(x, y).RGBA()
			out[i] = uint16(g)
			i++
		}
	}
	return out, nil
}
