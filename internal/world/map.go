package world

import (
	"fmt"
	"image/color"

	"tileworld/internal/terrain"
)

// Map aggregates the tiles of one generation run into a single addressable
// grid. It is built once and never partially rebuilt; the only later
// mutation is river painting.
type Map struct {
	space TileSpace
	// tiles is row-major by tile row and column.
	tiles []*terrain.Tile
}

// Space returns the coordinate space of the map.
func (m *Map) Space() TileSpace { return m.space }

// Tiles returns every tile in row-major order.
func (m *Map) Tiles() []*terrain.Tile { return m.tiles }

// Tile returns the tile at the given tile row and column, or nil.
func (m *Map) Tile(row, col int) *terrain.Tile {
	if row < 0 || col < 0 || row >= m.space.tilesDeep || col >= m.space.tilesWide {
		return nil
	}
	return m.tiles[row*m.space.tilesWide+col]
}

// Cell resolves a global coordinate to its tile and cell index.
func (m *Map) Cell(c Coord) (*terrain.Tile, int, error) {
	tc, err := m.space.ToTile(c)
	if err != nil {
		return nil, 0, err
	}
	t := m.Tile(tc.TileRow, tc.TileCol)
	return t, t.Index(tc.LocalZ, tc.LocalX), nil
}

// Height returns the raw height noise value at c.
func (m *Map) Height(c Coord) (float64, error) {
	t, i, err := m.Cell(c)
	if err != nil {
		return 0, err
	}
	return t.Height.Values[i], nil
}

// HeightType returns the height category at c.
func (m *Map) HeightType(c Coord) (terrain.Category, error) {
	t, i, err := m.Cell(c)
	if err != nil {
		return terrain.Category{}, err
	}
	return t.HeightTypes[i], nil
}

// Biome returns the biome at c, or nil when c is water.
func (m *Map) Biome(c Coord) (*terrain.Biome, error) {
	t, i, err := m.Cell(c)
	if err != nil {
		return nil, err
	}
	return t.Biomes[i], nil
}

// Elevation returns the vertex elevation at c.
func (m *Map) Elevation(c Coord) (float32, error) {
	t, i, err := m.Cell(c)
	if err != nil {
		return 0, err
	}
	return t.Elevation[i], nil
}

// IsWater reports whether c is classified as water.
func (m *Map) IsWater(c Coord) (bool, error) {
	t, i, err := m.Cell(c)
	if err != nil {
		return false, err
	}
	return t.IsWater(i), nil
}

// PaintRiver marks c as river in its tile's texture.
func (m *Map) PaintRiver(c Coord, col color.RGBA) error {
	t, i, err := m.Cell(c)
	if err != nil {
		return err
	}
	t.PaintRiver(i, col)
	return nil
}

// Surface returns the colour of c as currently shown.
func (m *Map) Surface(c Coord) (color.RGBA, error) {
	t, i, err := m.Cell(c)
	if err != nil {
		return color.RGBA{}, err
	}
	return t.Texture[i], nil
}

// SetMode recolours every tile for another visualization mode.
func (m *Map) SetMode(mode terrain.Mode) {
	for _, t := range m.tiles {
		t.SetMode(mode)
	}
}

// placement returns where the tile at row, col sits. Noise and gradient
// offsets step by stepZ and stepX world units per tile, so with one less
// than the vertex count neighbouring tiles share their edge samples. The
// heat gradient runs from 1 at both outer edges to 0 halfway across.
func (s TileSpace) placement(row, col int, stepZ, stepX float64) terrain.Placement {
	span := float64(s.tilesDeep-1)*stepZ + float64(s.tileDepth-1)
	half := max(span, 1) / 2
	return terrain.Placement{
		Row: row, Col: col,
		Depth: s.tileDepth, Width: s.tileWidth,
		OffsetX:         -float64(col) * stepX,
		OffsetZ:         -float64(row) * stepZ,
		GradientOffsetZ: float64(row) * stepZ,
		CenterZ:         half,
		MaxDistanceZ:    half,
	}
}

// buildTiles builds every tile of the space in row-major order.
func buildTiles(s TileSpace, p *terrain.Params, stepZ, stepX float64) (*Map, error) {
	m := &Map{space: s, tiles: make([]*terrain.Tile, 0, s.tilesDeep*s.tilesWide)}
	for row := 0; row < s.tilesDeep; row++ {
		for col := 0; col < s.tilesWide; col++ {
			t, err := terrain.Build(p, s.placement(row, col, stepZ, stepX))
			if err != nil {
				return nil, fmt.Errorf("build tile (%d, %d): %w", row, col, err)
			}
			m.tiles = append(m.tiles, t)
		}
	}
	return m, nil
}
