package render

import (
	"github.com/chewxy/math32"

	"github.com/chazu/cardstock/pkg/scene"
)

// vec3 is a float32 world/camera space vector.
type vec3 [3]float32

func (a vec3) sub(b vec3) vec3 { return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (a vec3) add(b vec3) vec3 { return vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a vec3) scale(s float32) vec3 {
	return vec3{a[0] * s, a[1] * s, a[2] * s}
}
func (a vec3) dot(b vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
func (a vec3) cross(b vec3) vec3 {
	return vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
func (a vec3) length() float32 { return math32.Sqrt(a.dot(a)) }
func (a vec3) normalize() vec3 {
	l := a.length()
	if l < 1e-12 {
		return vec3{}
	}
	return a.scale(1 / l)
}

// mat3 is a row-major 3x3 rotation matrix.
type mat3 [3][3]float32

func (m mat3) mulVec(v vec3) vec3 {
	return vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

func (m mat3) mul(n mat3) mat3 {
	var out mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return out
}

func (m mat3) transpose() mat3 {
	var out mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

func rotX(rad float32) mat3 {
	c, s := math32.Cos(rad), math32.Sin(rad)
	return mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

func rotY(rad float32) mat3 {
	c, s := math32.Cos(rad), math32.Sin(rad)
	return mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}

func rotZ(rad float32) mat3 {
	c, s := math32.Cos(rad), math32.Sin(rad)
	return mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

func deg2rad(deg float32) float32 { return deg * math32.Pi / 180 }

// view converts world coordinates to camera space and projects to pixels.
// The camera convention matches the staging host: a camera with zero
// rotation looks along -Z with +Y up, and Euler XYZ rotations orient it.
type view struct {
	worldToCam mat3 // transpose of the camera orientation
	pos        vec3
	focal      float32 // 1 / tan(fov/2)
	size       float32 // framebuffer edge in pixels
}

func newView(c scene.Camera, sizePx int) view {
	orient := rotZ(deg2rad(float32(c.RotationDeg.Z))).
		mul(rotY(deg2rad(float32(c.RotationDeg.Y)))).
		mul(rotX(deg2rad(float32(c.RotationDeg.X))))

	fov := float32(c.FOVDeg)
	if fov <= 0 {
		fov = float32(scene.DefaultFOV)
	}

	return view{
		worldToCam: orient.transpose(),
		pos:        vec3{float32(c.Position.X), float32(c.Position.Y), float32(c.Position.Z)},
		focal:      1 / math32.Tan(deg2rad(fov)/2),
		size:       float32(sizePx),
	}
}

// toCamera transforms a world-space point into camera space.
// In camera space the view direction is -Z, so visible points have z < 0.
func (v view) toCamera(p vec3) vec3 {
	return v.worldToCam.mulVec(p.sub(v.pos))
}

// project maps a camera-space point to pixel coordinates plus depth.
// Depth grows away from the camera; points behind the camera report ok=false.
func (v view) project(cam vec3) (px, py, depth float32, ok bool) {
	depth = -cam[2]
	if depth < 1e-4 {
		return 0, 0, 0, false
	}
	sx := v.focal * cam[0] / depth
	sy := v.focal * cam[1] / depth
	px = (sx*0.5 + 0.5) * v.size
	py = (0.5 - sy*0.5) * v.size
	return px, py, depth, true
}
