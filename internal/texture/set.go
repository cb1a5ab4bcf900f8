package texture

// Set is one material's texture bundle: albedo (sRGB-decoded), optional
// tangent-space normal map, and metallic/roughness/AO packed into the RGB
// channels of one image.
type Set struct {
	Albedo *Image
	Normal *Image // nil when the material has no normal map
	MRA    *Image
}

// Array is the texture array the geometry pass indexes by each draw's
// texture index.
type Array []Set

// ConstantSet builds a Set from scalar material parameters.
func ConstantSet(r, g, b, metallic, roughness, ao float64) Set {
	return Set{
		Albedo: Constant(r, g, b, 1),
		MRA:    Constant(metallic, roughness, ao, 1),
	}
}
