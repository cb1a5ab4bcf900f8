package cubemap

import "deferred-pbr-renderer/internal/dispatch"

// ProjectOptions control the parallel dispatch of the projection pass.
type ProjectOptions struct {
	BlockSize int // block edge in texels, 0 = dispatch.DefaultBlockSize
	Workers   int // 0 = NumCPU
}

// Project resamples an equirectangular panorama into a cube map of the
// given face size. Exact geometric resampling: each output texel is one
// bilinear read of the source at the texel direction's equirect uv, no
// additional filtering. Texels are written disjointly, so blocks run in
// parallel without locks.
func Project(pano *Panorama, size int, opts ProjectOptions) *CubeMap {
	out := New(size)
	dispatch.Run3D(size, size, FaceCount, opts.BlockSize, opts.Workers, func(b dispatch.Block) {
		for y := b.Y0; y < b.Y1; y++ {
			for x := b.X0; x < b.X1; x++ {
				dir := TexelDirection(b.Layer, x, y, size)
				u, v := DirectionToEquirectUV(dir)
				out.Set(b.Layer, x, y, pano.Sample(u, v))
			}
		}
	})
	return out
}
