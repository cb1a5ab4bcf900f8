// Package lighting implements the deferred resolve stage: per-light BRDF
// evaluation over the G-buffer, ambient combination and tone mapping.
package lighting

import "deferred-pbr-renderer/internal/mathutil"

// MaxLights is the build-time capacity of each light array.
const MaxLights = 64

// DirectionalLight illuminates every surface from one direction.
// Color carries RGB intensity; the fourth component is reserved.
type DirectionalLight struct {
	Direction mathutil.Vec3
	Color     mathutil.Vec4
}

// PointLight radiates from a position with inverse-square falloff.
type PointLight struct {
	Position mathutil.Vec3
	Color    mathutil.Vec4
}

// SpotLight is modeled in the data layer (position, direction, cutoff
// angle cosine, color) but has no resolve logic yet — a designed extension
// point.
type SpotLight struct {
	Position  mathutil.Vec3
	Direction mathutil.Vec3
	CutOff    float64
	Color     mathutil.Vec4
}

// DirectionalArray is a fixed-capacity sequence with an explicit active
// count. Slots at index ≥ Count are never read by the resolver; the
// producer must keep Count ≤ MaxLights.
type DirectionalArray struct {
	Count  int
	Lights [MaxLights]DirectionalLight
}

// Add appends a light, reporting false when the array is full.
func (a *DirectionalArray) Add(l DirectionalLight) bool {
	if a.Count >= MaxLights {
		return false
	}
	a.Lights[a.Count] = l
	a.Count++
	return true
}

// PointArray is the fixed-capacity point light sequence.
type PointArray struct {
	Count  int
	Lights [MaxLights]PointLight
}

func (a *PointArray) Add(l PointLight) bool {
	if a.Count >= MaxLights {
		return false
	}
	a.Lights[a.Count] = l
	a.Count++
	return true
}

// SpotArray is the fixed-capacity spot light sequence.
type SpotArray struct {
	Count  int
	Lights [MaxLights]SpotLight
}

func (a *SpotArray) Add(l SpotLight) bool {
	if a.Count >= MaxLights {
		return false
	}
	a.Lights[a.Count] = l
	a.Count++
	return true
}

// Lights bundles the three per-frame light arrays.
type Lights struct {
	Directional DirectionalArray
	Point       PointArray
	Spot        SpotArray
}
