// Package render is a small headless preview renderer for in-memory scenes.
// It projects each registered mesh through the scene camera, rasterizes flat
// shaded triangles into a supersampled z-buffered framebuffer, and encodes
// the result as WebP. It exists so a staged scene can be eyeballed without
// any host application attached.
package render

import (
	"fmt"
	"image"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/chazu/cardstock/pkg/scene"
)

// Options controls the preview output.
type Options struct {
	Size        int        // output edge length in pixels
	Supersample int        // render at Size*Supersample and downscale
	Background  [3]float32 // linear background color
}

// DefaultOptions returns a 512px preview with 2x supersampling over a dark
// neutral backdrop.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Supersample: 2,
		Background:  [3]float32{0.12, 0.12, 0.13},
	}
}

// Render draws every object in the scene from its camera.
func Render(s *scene.Scene, opts Options) (*image.NRGBA, error) {
	if s.Camera == nil {
		return nil, fmt.Errorf("render: scene has no camera")
	}
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}

	renderSize := opts.Size * opts.Supersample
	v := newView(*s.Camera, renderSize)
	fb := newFrameBuffer(renderSize, renderSize, opts.Background)

	for _, obj := range s.Objects {
		drawObject(fb, v, s, obj)
	}

	img := resolve(fb)
	if opts.Supersample > 1 {
		img = downscale(img, opts.Size)
	}
	return img, nil
}

// drawObject rasterizes one mesh with its material's shading.
func drawObject(fb *frameBuffer, v view, s *scene.Scene, obj scene.Object) {
	mesh := obj.Mesh
	if mesh.IsEmpty() {
		return
	}
	cfg := newShadeConfig(s, obj.Material, v.pos)

	numVerts := mesh.VertexCount()
	world := make([]vec3, numVerts)
	px := make([]float32, numVerts)
	py := make([]float32, numVerts)
	pz := make([]float32, numVerts)
	visible := make([]bool, numVerts)

	for i := 0; i < numVerts; i++ {
		world[i] = vec3{mesh.Vertices[i*3], mesh.Vertices[i*3+1], mesh.Vertices[i*3+2]}
		px[i], py[i], pz[i], visible[i] = v.project(v.toCamera(world[i]))
	}

	numTris := mesh.TriangleCount()
	for t := 0; t < numTris; t++ {
		i0 := mesh.Indices[t*3+0]
		i1 := mesh.Indices[t*3+1]
		i2 := mesh.Indices[t*3+2]
		if !visible[i0] || !visible[i1] || !visible[i2] {
			continue
		}

		a, b, c := world[i0], world[i1], world[i2]
		normal := b.sub(a).cross(c.sub(a)).normalize()
		if normal == (vec3{}) {
			continue
		}
		centroid := a.add(b).add(c).scale(1.0 / 3.0)
		rgb := cfg.shade(centroid, normal)

		fb.rasterTriangle(
			[3]float32{px[i0], px[i1], px[i2]},
			[3]float32{py[i0], py[i1], py[i2]},
			[3]float32{pz[i0], pz[i1], pz[i2]},
			rgb,
		)
	}
}

// resolve converts the linear framebuffer to a display-ready NRGBA image.
func resolve(fb *frameBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	for i := 0; i < fb.width*fb.height; i++ {
		img.Pix[i*4+0] = tonemap(fb.color[i*3+0])
		img.Pix[i*4+1] = tonemap(fb.color[i*3+1])
		img.Pix[i*4+2] = tonemap(fb.color[i*3+2])
		img.Pix[i*4+3] = 255
	}
	return img
}

// downscale resamples the supersampled frame to the output size.
func downscale(img *image.NRGBA, size int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// WriteWebP encodes the image losslessly to path.
func WriteWebP(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer f.Close()
	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("render: webp encode: %w", err)
	}
	return nil
}
