//go:build gl

package glview

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"tileworld/internal/render"
	"tileworld/internal/terrain"
	"tileworld/internal/world"
)

// tileMesh holds the GPU resources of one tile.
type tileMesh struct {
	tile          *terrain.Tile
	vao, vbo, ebo uint32
	texture       uint32
	count         int32
}

// Viewer draws the tiles of a world map as textured height meshes. It must
// be created and used on the goroutine owning the GL context.
type Viewer struct {
	Camera *Camera
	// HeightShade darkens low ground by up to this fraction.
	HeightShade float32

	shader *Shader
	tiles  []tileMesh
}

// New uploads a mesh and texture for every tile of m. spacing is the world
// distance between neighbouring vertices.
func New(m *world.Map, spacing float32, width, height int) (*Viewer, error) {
	shader, err := NewShader(vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	v := &Viewer{shader: shader, HeightShade: 0.35}

	var lo, hi mgl32.Vec3
	for i, t := range m.Tiles() {
		mesh := render.TileMesh(t, spacing)
		v.tiles = append(v.tiles, upload(t, mesh))
		tLo, tHi := mesh.Bounds()
		if i == 0 {
			lo, hi = tLo, tHi
			continue
		}
		for k := 0; k < 3; k++ {
			lo[k], hi[k] = min(lo[k], tLo[k]), max(hi[k], tHi[k])
		}
	}
	center := lo.Add(hi).Mul(0.5)
	v.Camera = NewCamera(width, height, center, hi.Sub(lo).Len())
	return v, nil
}

func upload(t *terrain.Tile, mesh render.Mesh) tileMesh {
	tm := tileMesh{tile: t, count: int32(len(mesh.Indices))}
	vertices := mesh.Interleaved()

	gl.GenVertexArrays(1, &tm.vao)
	gl.BindVertexArray(tm.vao)

	gl.GenBuffers(1, &tm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &tm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	// position: location 0, 3 floats; uv: location 1, 2 floats
	stride := int32(5 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	tm.texture = uploadTexture(render.TileImage(t))
	return tm
}

// Refresh re-uploads every tile texture, for example after a mode change.
func (v *Viewer) Refresh() {
	for _, tm := range v.tiles {
		updateTexture(tm.texture, render.TileImage(tm.tile))
	}
}

// Resize updates the viewport and the camera aspect ratio.
func (v *Viewer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	v.Camera.AspectRatio = float32(width) / float32(max(height, 1))
}

// Draw renders every tile.
func (v *Viewer) Draw() {
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.53, 0.72, 0.9, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	v.shader.Use()
	v.shader.SetMatrix4("proj", v.Camera.ProjectionMatrix())
	v.shader.SetMatrix4("view", v.Camera.ViewMatrix())
	v.shader.SetFloat("heightShade", v.HeightShade)
	v.shader.SetInt("surface", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	for _, tm := range v.tiles {
		gl.BindTexture(gl.TEXTURE_2D, tm.texture)
		gl.BindVertexArray(tm.vao)
		gl.DrawElements(gl.TRIANGLES, tm.count, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

// Delete releases every GPU resource.
func (v *Viewer) Delete() {
	for _, tm := range v.tiles {
		gl.DeleteVertexArrays(1, &tm.vao)
		gl.DeleteBuffers(1, &tm.vbo)
		gl.DeleteBuffers(1, &tm.ebo)
		gl.DeleteTextures(1, &tm.texture)
	}
	v.tiles = nil
	v.shader.Delete()
}
