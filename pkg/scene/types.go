// Package scene defines the boundary with the hosting 3D environment.
// The geometry core only ever talks to the narrow Host interface, so it can
// be built and tested headlessly; the in-memory Scene implementation doubles
// as the test host and the input to the preview renderer.
package scene

// Vec3 is a 3D vector in world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Camera is a perspective camera placement.
type Camera struct {
	Position    Vec3    `json:"position"`
	RotationDeg Vec3    `json:"rotation_deg"` // Euler XYZ, degrees
	FOVDeg      float64 `json:"fov_deg"`
}

// DefaultFOV is used when a camera does not specify a field of view.
const DefaultFOV = 39.6 // degrees, 50mm lens equivalent

// LightKind enumerates supported light types.
type LightKind int

const (
	LightArea LightKind = iota
)

func (k LightKind) String() string {
	switch k {
	case LightArea:
		return "area"
	default:
		return "unknown"
	}
}

// Light is a light placement. Energy is in host units (watts for area lights).
type Light struct {
	Name     string    `json:"name"`
	Kind     LightKind `json:"kind"`
	Position Vec3      `json:"position"`
	Energy   float64   `json:"energy"`
	Size     float64   `json:"size"` // edge length for area lights
}
