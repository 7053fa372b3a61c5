package residency

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
)

// defaultTileSize is the pixel edge length of the synthetic default
// tiles. It is small because the default tile is a flat color; there is
// nothing for a larger raster to add.
const defaultTileSize = 2

// BuildDefaultOrtho encodes a solid white square as JPEG, mirroring
// gl_engine/Texture.cpp's default ortho texture: no corpus dependency
// covers encoding a one-color bitmap to bytes, so this one path uses the
// standard library directly (see DESIGN.md).
func BuildDefaultOrtho() []byte {
	img := image.NewRGBA(image.Rect(0, 0, defaultTileSize, defaultTileSize))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < defaultTileSize; y++ {
		for x := 0; x < defaultTileSize; x++ {
			img.Set(x, y, white)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		panic("residency: failed to encode default ortho tile: " + err.Error())
	}
	return buf.Bytes()
}

// BuildDefaultHeight encodes a solid black (zero-elevation) 16-bit
// grayscale square as PNG, mirroring gl_engine/Texture.cpp's default
// height texture.
func BuildDefaultHeight() []byte {
	img := image.NewGray16(image.Rect(0, 0, defaultTileSize, defaultTileSize))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic("residency: failed to encode default height tile: " + err.Error())
	}
	return buf.Bytes()
}

// decodePNG decodes b as a PNG image. Kept as a thin wrapper (rather than
// calling png.Decode inline) so the height-raster decode path has one
// seam to adjust if a different elevation encoding is added later.
func decodePNG(b []byte) (image.Image, error) {
	return png.Decode(bytes.NewReader(b))
}
