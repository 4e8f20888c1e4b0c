package render

import (
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"tileworld/internal/world"
)

func generate(t testing.TB) *world.Result {
	t.Helper()
	cfg := world.DefaultConfig(17)
	cfg.Log = slog.New(slog.DiscardHandler)
	cfg.TilesDeep, cfg.TilesWide = 2, 3
	cfg.TileDepth, cfg.TileWidth = 8, 6
	cfg.Settlements.Count = 2
	cfg.Settlements.MinRadius = 2
	res, err := world.Generate(cfg, world.NewRand(17))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return res
}

func TestMapImageMatchesSurface(t *testing.T) {
	res := generate(t)
	img := MapImage(res.Map)
	if b := img.Bounds(); b.Dx() != 18 || b.Dy() != 16 {
		t.Fatalf("expected 18x16 image, got %v", b)
	}
	for z := 0; z < 16; z++ {
		for x := 0; x < 18; x++ {
			want, _ := res.Map.Surface(world.Coord{Z: z, X: x})
			if got := img.RGBAAt(x, z); got != want {
				t.Fatalf("pixel (%d, %d): expected %v, got %v", x, z, want, got)
			}
		}
	}
}

func TestTileImageGlobalOrientation(t *testing.T) {
	res := generate(t)
	tl := res.Map.Tile(1, 2)
	img := TileImage(tl)
	for py := 0; py < tl.Depth; py++ {
		for px := 0; px < tl.Width; px++ {
			want, _ := res.Map.Surface(world.Coord{Z: tl.Row*tl.Depth + py, X: tl.Col*tl.Width + px})
			if got := img.RGBAAt(px, py); got != want {
				t.Fatalf("pixel (%d, %d): expected %v, got %v", px, py, want, got)
			}
		}
	}
}

func TestPreviewScalesAndMarks(t *testing.T) {
	res := generate(t)
	img, err := Preview(res.Map, res.Settlements, PreviewOptions{Scale: 4})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 72 || b.Dy() != 64 {
		t.Fatalf("expected 72x64 image, got %v", b)
	}
	want, _ := res.Map.Surface(world.Coord{Z: 0, X: 0})
	// Settlements stay inside the margins, so the corner is never marked.
	if got := img.RGBAAt(1, 1); got != want {
		t.Errorf("expected scaled pixel %v, got %v", want, got)
	}
	for _, s := range res.Settlements {
		if got := img.RGBAAt(s.Coord.X*4+2, s.Coord.Z*4+2); got != markerColor {
			t.Errorf("expected a marker at %v, got %v", s.Coord, got)
		}
	}

	labelled, err := Preview(res.Map, res.Settlements, PreviewOptions{Scale: 4, Labels: true})
	if err != nil {
		t.Fatalf("Preview with labels: %v", err)
	}
	if len(res.Settlements) > 0 && string(labelled.Pix) == string(img.Pix) {
		t.Errorf("expected labels to change the image")
	}
}

func TestWritePNG(t *testing.T) {
	res := generate(t)
	path := filepath.Join(t.TempDir(), "map.png")
	if err := WritePNG(path, MapImage(res.Map)); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 18 || b.Dy() != 16 {
		t.Errorf("expected 18x16 image, got %v", b)
	}
}

func TestTileMesh(t *testing.T) {
	res := generate(t)
	tl := res.Map.Tile(0, 0)
	m := TileMesh(tl, 1)
	if len(m.Positions) != 48 || len(m.UVs) != 48 {
		t.Fatalf("expected 48 vertices, got %d", len(m.Positions))
	}
	if len(m.Indices) != 7*5*6 {
		t.Fatalf("expected %d indices, got %d", 7*5*6, len(m.Indices))
	}
	for i, p := range m.Positions {
		if p.Y() != tl.Elevation[i] {
			t.Fatalf("vertex %d: expected y %v, got %v", i, tl.Elevation[i], p.Y())
		}
	}
	// Cell 0 sits at the far corner.
	if p := m.Positions[0]; p.X() != 5 || p.Z() != 7 {
		t.Errorf("expected cell 0 at (5, 7), got %v", p)
	}
	lo, hi := m.Bounds()
	if lo.X() != 0 || lo.Z() != 0 || hi.X() != 5 || hi.Z() != 7 {
		t.Errorf("unexpected bounds %v %v", lo, hi)
	}
	for k := 0; k < len(m.Indices); k += 3 {
		a, b, c := m.Positions[m.Indices[k]], m.Positions[m.Indices[k+1]], m.Positions[m.Indices[k+2]]
		flat := func(v mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{v.X(), 0, v.Z()} }
		if n := flat(b).Sub(flat(a)).Cross(flat(c).Sub(flat(a))); n.Y() <= 0 {
			t.Fatalf("triangle %d faces down", k/3)
		}
	}
	if got := len(m.Interleaved()); got != 48*5 {
		t.Errorf("expected %d floats, got %d", 48*5, got)
	}
}

func TestTileMeshEdgesMeet(t *testing.T) {
	res := generate(t)
	left, right := TileMesh(res.Map.Tile(0, 0), 2), TileMesh(res.Map.Tile(0, 1), 2)
	_, hiLeft := left.Bounds()
	loRight, _ := right.Bounds()
	if hiLeft.X() != loRight.X() {
		t.Errorf("expected tiles to share an edge, got %v and %v", hiLeft.X(), loRight.X())
	}
}
