package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"tileworld/internal/terrain"
	"tileworld/internal/world"
)

// MapImage stitches the surface of every tile into one image. Pixel (x, y)
// shows global coordinate (y, x).
func MapImage(m *world.Map) *image.RGBA {
	s := m.Space()
	img := image.NewRGBA(image.Rect(0, 0, s.Width(), s.Depth()))
	for z := 0; z < s.Depth(); z++ {
		for x := 0; x < s.Width(); x++ {
			c, _ := m.Surface(world.Coord{Z: z, X: x})
			img.SetRGBA(x, z, c)
		}
	}
	return img
}

// TileImage returns the surface of one tile in global orientation, so that
// pixel (0, 0) is the tile cell nearest the map origin.
func TileImage(t *terrain.Tile) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Depth))
	for py := 0; py < t.Depth; py++ {
		for px := 0; px < t.Width; px++ {
			img.SetRGBA(px, py, t.Texture[t.Index(t.Depth-1-py, t.Width-1-px)])
		}
	}
	return img
}

// PreviewOptions configures Preview.
type PreviewOptions struct {
	// Scale is the pixel size of one cell. Values below 1 are treated as 1.
	Scale int
	// Labels draws settlement names next to their markers.
	Labels bool
	// FontSize is the label size in pixels. Defaults to 12.
	FontSize float64
}

var (
	markerColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	labelColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// Preview renders the map scaled up with a marker on every settlement and,
// optionally, its name.
func Preview(m *world.Map, settlements []world.Settlement, opts PreviewOptions) (*image.RGBA, error) {
	scale := max(opts.Scale, 1)
	base := MapImage(m)
	b := base.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), base, b, xdraw.Src, nil)

	half := max(scale, 2)
	for _, s := range settlements {
		cx, cy := s.Coord.X*scale+scale/2, s.Coord.Z*scale+scale/2
		r := image.Rect(cx-half/2, cy-half/2, cx+half/2+1, cy+half/2+1)
		xdraw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(markerColor), image.Point{}, xdraw.Src)
	}
	if !opts.Labels || len(settlements) == 0 {
		return dst, nil
	}

	f, err := goRegular()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	size := opts.FontSize
	if size <= 0 {
		size = 12
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(labelColor), Face: face}
	for _, s := range settlements {
		d.Dot = fixed.P(s.Coord.X*scale+scale+half, s.Coord.Z*scale+scale/2+int(size)/3)
		d.DrawString(s.Name)
	}
	return dst, nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
