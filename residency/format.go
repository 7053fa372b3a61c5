// Package residency defines the texture residency protocol between the
// scheduler and the renderer (spec.md §4.F): the payload-to-GPU-tile
// decoding step, the compressed-format capability negotiation, and the
// renderer contract the scheduler calls out to.
package residency

import (
	"github.com/cogentcore/webgpu/wgpu"
	"terratile/tile"
)

// CompressedFormat is the negotiated compressed-texture capability of the
// renderer's GPU device. It is typed as wgpu.TextureFormat, the same
// vocabulary the teacher's gpu.TextureFormat uses for its own texture
// descriptors, even though this package never opens a device itself — it
// only carries the value far enough for the fetcher to compress to it.
type CompressedFormat = wgpu.TextureFormat

// The concrete formats the fetcher may be asked to deliver, mirroring
// gl_engine/Texture.cpp's per-platform compressed_texture_format switch:
// BC1 (S3TC/DXT1) on desktop, ETC2 on mobile/GLES, falling back to
// uncompressed RGBA8 where no compressed path is available.
const (
	FormatBC1RGBA CompressedFormat = wgpu.TextureFormatBC1RGBAUnorm
	FormatETC2RGB CompressedFormat = wgpu.TextureFormatETC2RGB8Unorm
	FormatNone    CompressedFormat = wgpu.TextureFormatRGBA8Unorm
)

// HeightFormat is the fixed format of the height raster: a single-channel
// 16-bit unsigned integer. R16Uint textures are nearest-filter only —
// gl_engine/Texture.cpp:setParams asserts this for the same reason: there
// is no meaningful linear interpolation of raw elevation samples without
// first converting to a filterable format. Compressed-format mipmaps are
// likewise unsupported; GPUTile carries the raw raster uncompressed.
const HeightFormat CompressedFormat = wgpu.TextureFormatR16Uint

// Renderer is the contract the scheduler calls into (spec.md §6). The
// scheduler never opens a GPU device itself; it only queries capability
// and emits residency deltas.
type Renderer interface {
	// CompressedFormatCapability reports the compressed ortho format the
	// device accepts, or FormatNone if the device has no compressed path.
	CompressedFormatCapability() CompressedFormat

	// PreferredCompressionAlgorithm reports the format the scheduler
	// should forward to the fetcher so pre-compressed blobs arrive ready
	// to upload. It is usually, but not necessarily, the same value as
	// CompressedFormatCapability.
	PreferredCompressionAlgorithm() CompressedFormat

	// GPUQuadsUpdated delivers the residency delta: added carries newly
	// decoded GPU tile quads to place in the next free array slots,
	// removed carries ids whose slots the renderer should free.
	GPUQuadsUpdated(added []GPUQuad, removed []tile.ID)
}
