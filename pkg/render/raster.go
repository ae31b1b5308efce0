package render

import "github.com/chewxy/math32"

// frameBuffer holds the rendering target as flat slices.
type frameBuffer struct {
	width  int
	height int
	color  []float32 // linear RGB interleaved, len = W*H*3
	zbuf   []float32 // depth per pixel, +inf = empty
}

func newFrameBuffer(w, h int, background [3]float32) *frameBuffer {
	n := w * h
	zbuf := make([]float32, n)
	for i := range zbuf {
		zbuf[i] = math32.Inf(1)
	}
	color := make([]float32, n*3)
	for i := 0; i < n; i++ {
		color[i*3+0] = background[0]
		color[i*3+1] = background[1]
		color[i*3+2] = background[2]
	}
	return &frameBuffer{width: w, height: h, color: color, zbuf: zbuf}
}

// rasterTriangle fills one projected triangle with a constant (flat shaded)
// linear color, depth-tested against the z-buffer. Nearer depth wins.
//
// Hot path: no allocation in the pixel loop.
func (fb *frameBuffer) rasterTriangle(px, py, pz [3]float32, rgb [3]float32) {
	x0, y0, z0 := px[0], py[0], pz[0]
	x1, y1, z1 := px[1], py[1], pz[1]
	x2, y2, z2 := px[2], py[2], pz[2]

	minX := int(math32.Min(math32.Min(x0, x1), x2))
	maxX := int(math32.Max(math32.Max(x0, x1), x2)) + 1
	minY := int(math32.Min(math32.Min(y0, y1), y2))
	maxY := int(math32.Max(math32.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.width {
		maxX = fb.width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.height {
		maxY = fb.height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float32(sy) + 0.5 - y2
		rowOff := sy * fb.width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float32(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z >= fb.zbuf[zIdx] {
				continue
			}
			fb.zbuf[zIdx] = z

			ci := zIdx * 3
			fb.color[ci+0] = rgb[0]
			fb.color[ci+1] = rgb[1]
			fb.color[ci+2] = rgb[2]
		}
	}
}
