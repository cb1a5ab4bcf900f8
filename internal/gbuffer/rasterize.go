package gbuffer

import (
	"math"

	"deferred-pbr-renderer/internal/mathutil"
	"deferred-pbr-renderer/internal/texture"
)

// rasterizeTriangle fills the G-buffer for one clip-space triangle with
// perspective-correct attribute interpolation and a less-than depth test.
//
// This is the HOT PATH — no allocation in the inner loop. Triangles
// touching the near plane (w ≤ ε) are dropped rather than clipped.
func (g *GBuffer) rasterizeTriangle(v0, v1, v2 shadedVertex, set texture.Set, smp texture.Sampler) {
	const wEps = 1e-6
	if v0.clip[3] <= wEps || v1.clip[3] <= wEps || v2.clip[3] <= wEps {
		return
	}

	invW0 := 1 / v0.clip[3]
	invW1 := 1 / v1.clip[3]
	invW2 := 1 / v2.clip[3]

	// NDC → screen. y flips so row 0 is the top of the image.
	w, h := float64(g.W), float64(g.H)
	x0 := (v0.clip[0]*invW0*0.5 + 0.5) * w
	y0 := (0.5 - v0.clip[1]*invW0*0.5) * h
	z0 := v0.clip[2] * invW0
	x1 := (v1.clip[0]*invW1*0.5 + 0.5) * w
	y1 := (0.5 - v1.clip[1]*invW1*0.5) * h
	z1 := v1.clip[2] * invW1
	x2 := (v2.clip[0]*invW2*0.5 + 0.5) * w
	y2 := (0.5 - v2.clip[1]*invW2*0.5) * h
	z2 := v2.clip[2] * invW2

	// Barycentric setup. Front faces wind counter-clockwise in NDC, which
	// is clockwise after the y flip; degenerate and back-facing triangles
	// are rejected by the determinant sign.
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 {
		return
	}
	invDet := 1.0 / det

	// Bounding box clamped to the viewport
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1
	if minX < 0 {
		minX = 0
	}
	if maxX >= g.W {
		maxX = g.W - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= g.H {
		maxY = g.H - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	hasNormalMap := set.Normal != nil

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			b0 := (dy12*dsx + dx21*dsy) * invDet
			b1 := (dy20*dsx + dx02*dsy) * invDet
			b2 := 1.0 - b0 - b1

			if b0 < -0.001 || b1 < -0.001 || b2 < -0.001 {
				continue
			}

			// NDC depth is affine in screen space
			z := b0*z0 + b1*z1 + b2*z2
			zIdx := sy*g.W + sx
			if z >= g.Depth[zIdx] {
				continue
			}

			// Perspective-correct weights
			pw0 := b0 * invW0
			pw1 := b1 * invW1
			pw2 := b2 * invW2
			norm := 1 / (pw0 + pw1 + pw2)
			pw0 *= norm
			pw1 *= norm
			pw2 *= norm

			u := pw0*v0.uv[0] + pw1*v1.uv[0] + pw2*v2.uv[0]
			v := pw0*v0.uv[1] + pw1*v1.uv[1] + pw2*v2.uv[1]

			worldPos := mathutil.Vec3{
				pw0*v0.world[0] + pw1*v1.world[0] + pw2*v2.world[0],
				pw0*v0.world[1] + pw1*v1.world[1] + pw2*v2.world[1],
				pw0*v0.world[2] + pw1*v1.world[2] + pw2*v2.world[2],
			}

			normal := interpDir(v0.normal, v1.normal, v2.normal, pw0, pw1, pw2)
			if hasNormalMap {
				// Decode [0,1] → [-1,1] and rotate through TBN
				m := smp.SampleRGB(set.Normal, u, v)
				m = m.Scale(2).Sub(mathutil.Splat(1))
				t := interpDir(v0.tangent, v1.tangent, v2.tangent, pw0, pw1, pw2)
				bt := interpDir(v0.bitan, v1.bitan, v2.bitan, pw0, pw1, pw2)
				normal = t.Scale(m[0]).Add(bt.Scale(m[1])).Add(normal.Scale(m[2])).Normalize()
			}

			albedo := smp.SampleRGB(set.Albedo, u, v)
			mra := smp.SampleRGB(set.MRA, u, v)

			g.writeTexel(sx, sy, albedo, worldPos, normal, mra[0], mra[1], mra[2], z)
		}
	}
}

func interpDir(a, b, c mathutil.Vec3, wa, wb, wc float64) mathutil.Vec3 {
	return mathutil.Vec3{
		wa*a[0] + wb*b[0] + wc*c[0],
		wa*a[1] + wb*b[1] + wc*c[1],
		wa*a[2] + wb*b[2] + wc*c[2],
	}.Normalize()
}
