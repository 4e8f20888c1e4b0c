package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"tileworld/internal/terrain"
)

// Mesh is the triangle mesh of one tile. Positions and UVs are indexed by
// tile cell, so Elevation[i] lifts Positions[i].
type Mesh struct {
	Positions []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// TileMesh builds the mesh of t with spacing world units between vertices.
// Vertex grids run from the far corner inward: cell 0 sits at the tile's
// maximum x and z. Neighbouring tiles overlap by one vertex row, matching
// the shared noise samples along their edges.
func TileMesh(t *terrain.Tile, spacing float32) Mesh {
	n := t.Depth * t.Width
	m := Mesh{
		Positions: make([]mgl32.Vec3, n),
		UVs:       make([]mgl32.Vec2, n),
	}
	originX := float32(t.Col*(t.Width-1)) * spacing
	originZ := float32(t.Row*(t.Depth-1)) * spacing
	for lz := 0; lz < t.Depth; lz++ {
		for lx := 0; lx < t.Width; lx++ {
			i := t.Index(lz, lx)
			px, pz := t.Width-1-lx, t.Depth-1-lz
			m.Positions[i] = mgl32.Vec3{
				originX + float32(px)*spacing,
				t.Elevation[i],
				originZ + float32(pz)*spacing,
			}
			// Texel centres of TileImage.
			m.UVs[i] = mgl32.Vec2{
				(float32(px) + 0.5) / float32(t.Width),
				(float32(pz) + 0.5) / float32(t.Depth),
			}
		}
	}

	if t.Depth < 2 || t.Width < 2 {
		return m
	}
	m.Indices = make([]uint32, 0, (t.Depth-1)*(t.Width-1)*6)
	at := func(pz, px int) uint32 { return uint32(t.Index(t.Depth-1-pz, t.Width-1-px)) }
	for pz := 0; pz < t.Depth-1; pz++ {
		for px := 0; px < t.Width-1; px++ {
			a, b := at(pz, px), at(pz, px+1)
			c, d := at(pz+1, px), at(pz+1, px+1)
			// Counter-clockwise seen from above.
			m.Indices = append(m.Indices, a, c, b, b, c, d)
		}
	}
	return m
}

// Interleaved packs positions and UVs as x, y, z, u, v per vertex.
func (m Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Positions)*5)
	for i, p := range m.Positions {
		uv := m.UVs[i]
		out = append(out, p.X(), p.Y(), p.Z(), uv.X(), uv.Y())
	}
	return out
}

// Bounds returns the minimum and maximum corners of the mesh.
func (m Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Positions) == 0 {
		return lo, hi
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return lo, hi
}
