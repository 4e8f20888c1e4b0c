package world

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned by Generate and its helpers when the
	// configuration cannot produce a world. Terrain and noise validation
	// errors are wrapped alongside it.
	ErrInvalidConfiguration = errors.New("invalid world configuration")
	// ErrOutOfBounds is returned when a coordinate lies outside the map.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

// Coord is a global cell coordinate spanning every tile of the map.
type Coord struct {
	Z, X int
}

// String formats c as (z, x).
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Z, c.X)
}

// TileCoord addresses a cell by its tile and its index within that tile's
// vertex grid.
type TileCoord struct {
	TileRow, TileCol int
	LocalZ, LocalX   int
}

// TileSpace translates between global coordinates and tile-local ones.
// Tile vertex grids are authored from the far corner inward, so the local
// index runs opposite to the global one within each tile.
type TileSpace struct {
	tilesDeep, tilesWide int
	tileDepth, tileWidth int
}

// NewTileSpace returns the coordinate space of a tilesDeep x tilesWide grid
// of tiles with tileDepth x tileWidth vertices each.
func NewTileSpace(tilesDeep, tilesWide, tileDepth, tileWidth int) (TileSpace, error) {
	if tilesDeep <= 0 || tilesWide <= 0 {
		return TileSpace{}, fmt.Errorf("%w: tile grid %dx%d must be positive", ErrInvalidConfiguration, tilesDeep, tilesWide)
	}
	if tileDepth <= 0 || tileWidth <= 0 {
		return TileSpace{}, fmt.Errorf("%w: tile vertices %dx%d must be positive", ErrInvalidConfiguration, tileDepth, tileWidth)
	}
	return TileSpace{tilesDeep: tilesDeep, tilesWide: tilesWide, tileDepth: tileDepth, tileWidth: tileWidth}, nil
}

// Tiles returns the number of tile rows and columns.
func (s TileSpace) Tiles() (rows, cols int) { return s.tilesDeep, s.tilesWide }

// TileSize returns the vertex dimensions of one tile.
func (s TileSpace) TileSize() (depth, width int) { return s.tileDepth, s.tileWidth }

// Depth returns the number of global rows.
func (s TileSpace) Depth() int { return s.tilesDeep * s.tileDepth }

// Width returns the number of global columns.
func (s TileSpace) Width() int { return s.tilesWide * s.tileWidth }

// Contains reports whether c lies inside the map.
func (s TileSpace) Contains(c Coord) bool {
	return c.Z >= 0 && c.X >= 0 && c.Z < s.Depth() && c.X < s.Width()
}

// Index returns the flat row-major index of c. c must be inside the map.
func (s TileSpace) Index(c Coord) int { return c.Z*s.Width() + c.X }

// ToTile translates a global coordinate into its tile and local index.
func (s TileSpace) ToTile(c Coord) (TileCoord, error) {
	if !s.Contains(c) {
		return TileCoord{}, fmt.Errorf("%w: %v outside %dx%d map", ErrOutOfBounds, c, s.Depth(), s.Width())
	}
	return TileCoord{
		TileRow: c.Z / s.tileDepth,
		TileCol: c.X / s.tileWidth,
		LocalZ:  s.tileDepth - c.Z%s.tileDepth - 1,
		LocalX:  s.tileWidth - c.X%s.tileWidth - 1,
	}, nil
}

// ToGlobal is the inverse of ToTile.
func (s TileSpace) ToGlobal(tc TileCoord) (Coord, error) {
	if tc.TileRow < 0 || tc.TileRow >= s.tilesDeep || tc.TileCol < 0 || tc.TileCol >= s.tilesWide ||
		tc.LocalZ < 0 || tc.LocalZ >= s.tileDepth || tc.LocalX < 0 || tc.LocalX >= s.tileWidth {
		return Coord{}, fmt.Errorf("%w: tile coordinate %+v", ErrOutOfBounds, tc)
	}
	return Coord{
		Z: tc.TileRow*s.tileDepth + s.tileDepth - tc.LocalZ - 1,
		X: tc.TileCol*s.tileWidth + s.tileWidth - tc.LocalX - 1,
	}, nil
}

// Neighbors appends the in-bounds axis-aligned neighbours of c to dst in
// the fixed order z-1, z+1, x-1, x+1.
func (s TileSpace) Neighbors(c Coord, dst []Coord) []Coord {
	for _, n := range [4]Coord{{c.Z - 1, c.X}, {c.Z + 1, c.X}, {c.Z, c.X - 1}, {c.Z, c.X + 1}} {
		if s.Contains(n) {
			dst = append(dst, n)
		}
	}
	return dst
}
