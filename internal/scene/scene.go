// Package scene describes renderable scenes: a YAML document naming camera,
// lights, materials and draws, built into the typed inputs the pipeline
// passes consume.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"deferred-pbr-renderer/internal/gbuffer"
	"deferred-pbr-renderer/internal/lighting"
	"deferred-pbr-renderer/internal/mathutil"
	"deferred-pbr-renderer/internal/texture"
)

// Scene is the YAML scene document.
type Scene struct {
	Camera      CameraDef     `yaml:"camera"`
	Environment string        `yaml:"environment"` // equirect panorama path, optional
	AmbientIBL  bool          `yaml:"ambient_from_environment"`
	Lights      LightsDef     `yaml:"lights"`
	Materials   []MaterialDef `yaml:"materials"`
	Draws       []DrawDef     `yaml:"draws"`
}

// CameraDef positions the camera and sets the projection.
type CameraDef struct {
	Position [3]float64 `yaml:"position"`
	LookAt   [3]float64 `yaml:"look_at"`
	Up       [3]float64 `yaml:"up"`
	FOV      float64    `yaml:"fov"`  // vertical, degrees
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
}

// LightsDef lists the scene lights per variant.
type LightsDef struct {
	Directional []DirectionalDef `yaml:"directional"`
	Point       []PointDef       `yaml:"point"`
	Spot        []SpotDef        `yaml:"spot"`
}

type DirectionalDef struct {
	Direction [3]float64 `yaml:"direction"`
	Color     [3]float64 `yaml:"color"`
}

type PointDef struct {
	Position [3]float64 `yaml:"position"`
	Color    [3]float64 `yaml:"color"`
}

type SpotDef struct {
	Position  [3]float64 `yaml:"position"`
	Direction [3]float64 `yaml:"direction"`
	CutOff    float64    `yaml:"cutoff"` // degrees
	Color     [3]float64 `yaml:"color"`
}

// MaterialDef is either scalar parameters or texture map paths.
type MaterialDef struct {
	Name      string     `yaml:"name"`
	Albedo    [3]float64 `yaml:"albedo"`
	Metallic  float64    `yaml:"metallic"`
	Roughness float64    `yaml:"roughness"`
	AO        float64    `yaml:"ao"`
	AlbedoMap string     `yaml:"albedo_map"`
	NormalMap string     `yaml:"normal_map"`
	MRAMap    string     `yaml:"mra_map"`
}

// DrawDef instances a mesh with a transform and a material.
type DrawDef struct {
	Mesh      string     `yaml:"mesh"` // sphere, cube or plane
	Material  string     `yaml:"material"`
	Translate [3]float64 `yaml:"translate"`
	Rotate    [3]float64 `yaml:"rotate"` // Euler XYZ, degrees
	Scale     [3]float64 `yaml:"scale"`
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	return &s, nil
}

// Draw is one built draw call.
type Draw struct {
	Mesh   *gbuffer.Mesh
	Params gbuffer.DrawParams
}

// Built holds everything the pipeline needs for one frame of this scene.
type Built struct {
	Camera   gbuffer.Camera
	Lights   lighting.Lights
	Textures texture.Array
	Draws    []Draw
}

// Build resolves the scene into pipeline inputs. aspect is width/height of
// the target viewport; cache dedupes texture loads across materials.
func (s *Scene) Build(aspect float64, cache *texture.Cache) (*Built, error) {
	b := &Built{}

	b.Camera = s.buildCamera(aspect)

	if err := s.buildLights(&b.Lights); err != nil {
		return nil, err
	}

	matIndex := make(map[string]int, len(s.Materials))
	for i, m := range s.Materials {
		set, err := m.build(cache)
		if err != nil {
			return nil, err
		}
		b.Textures = append(b.Textures, set)
		matIndex[m.Name] = i
	}

	meshes := make(map[string]*gbuffer.Mesh)
	for _, d := range s.Draws {
		mesh, ok := meshes[d.Mesh]
		if !ok {
			var err error
			mesh, err = BuildMesh(d.Mesh)
			if err != nil {
				return nil, err
			}
			meshes[d.Mesh] = mesh
		}

		idx, ok := matIndex[d.Material]
		if !ok {
			return nil, fmt.Errorf("scene: draw references unknown material %q", d.Material)
		}

		model := d.modelMatrix()
		b.Draws = append(b.Draws, Draw{
			Mesh: mesh,
			Params: gbuffer.DrawParams{
				Model:        model,
				NormalMatrix: model.NormalMatrix(),
				TextureIndex: idx,
			},
		})
	}

	return b, nil
}

func (s *Scene) buildCamera(aspect float64) gbuffer.Camera {
	c := s.Camera
	up := mathutil.Vec3(c.Up)
	if up.Len() < 1e-9 {
		up = mathutil.Vec3{0, 1, 0}
	}
	fov := c.FOV
	if fov <= 0 {
		fov = 60
	}
	near, far := c.Near, c.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = 100
	}

	eye := mathutil.Vec3(c.Position)
	view := mathutil.LookAt(eye, mathutil.Vec3(c.LookAt), up)
	proj := mathutil.Perspective(mathutil.Deg2Rad(fov), aspect, near, far)
	return gbuffer.Camera{
		ViewProj: mathutil.Mat4Mul(proj, view),
		Position: eye,
	}
}

func (s *Scene) buildLights(out *lighting.Lights) error {
	for _, l := range s.Lights.Directional {
		if !out.Directional.Add(lighting.DirectionalLight{
			Direction: mathutil.Vec3(l.Direction).Normalize(),
			Color:     colorVec4(l.Color),
		}) {
			return fmt.Errorf("scene: more than %d directional lights", lighting.MaxLights)
		}
	}
	for _, l := range s.Lights.Point {
		if !out.Point.Add(lighting.PointLight{
			Position: mathutil.Vec3(l.Position),
			Color:    colorVec4(l.Color),
		}) {
			return fmt.Errorf("scene: more than %d point lights", lighting.MaxLights)
		}
	}
	for _, l := range s.Lights.Spot {
		if !out.Spot.Add(lighting.SpotLight{
			Position:  mathutil.Vec3(l.Position),
			Direction: mathutil.Vec3(l.Direction).Normalize(),
			CutOff:    mathutil.Deg2Rad(l.CutOff),
			Color:     colorVec4(l.Color),
		}) {
			return fmt.Errorf("scene: more than %d spot lights", lighting.MaxLights)
		}
	}
	return nil
}

func (m MaterialDef) build(cache *texture.Cache) (texture.Set, error) {
	ao := m.AO
	if ao <= 0 {
		ao = 1
	}
	set := texture.ConstantSet(m.Albedo[0], m.Albedo[1], m.Albedo[2], m.Metallic, m.Roughness, ao)

	var err error
	if m.AlbedoMap != "" {
		if set.Albedo, err = cache.Load(m.AlbedoMap, true); err != nil {
			return texture.Set{}, err
		}
	}
	if m.NormalMap != "" {
		if set.Normal, err = cache.Load(m.NormalMap, false); err != nil {
			return texture.Set{}, err
		}
	}
	if m.MRAMap != "" {
		if set.MRA, err = cache.Load(m.MRAMap, false); err != nil {
			return texture.Set{}, err
		}
	}
	return set, nil
}

func (d DrawDef) modelMatrix() mathutil.Mat4 {
	scale := mathutil.Vec3(d.Scale)
	if scale.Len() < 1e-12 {
		scale = mathutil.Vec3{1, 1, 1}
	}
	rot := mathutil.Mat3Mul(
		mathutil.RotZ(mathutil.Deg2Rad(d.Rotate[2])),
		mathutil.Mat3Mul(
			mathutil.RotY(mathutil.Deg2Rad(d.Rotate[1])),
			mathutil.RotX(mathutil.Deg2Rad(d.Rotate[0])),
		),
	)
	return mathutil.Mat4Mul(
		mathutil.Translation(mathutil.Vec3(d.Translate)),
		mathutil.Mat4Mul(mathutil.FromMat3(rot), mathutil.Scaling(scale)),
	)
}

func colorVec4(c [3]float64) mathutil.Vec4 {
	return mathutil.Vec4{c[0], c[1], c[2], 0}
}
