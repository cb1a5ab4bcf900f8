package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"deferred-pbr-renderer/internal/mathutil"
	"deferred-pbr-renderer/internal/texture"
)

const sceneYAML = `
camera:
  position: [0, 2, 8]
  look_at: [0, 0, 0]
  fov: 45
environment: sky.png
ambient_from_environment: true
lights:
  directional:
    - direction: [0, -1, 0]
      color: [1, 0.9, 0.8]
  point:
    - position: [3, 3, 3]
      color: [10, 10, 10]
materials:
  - name: gold
    albedo: [1, 0.77, 0.34]
    metallic: 1
    roughness: 0.2
  - name: rubber
    albedo: [0.2, 0.2, 0.2]
    roughness: 0.9
draws:
  - mesh: sphere
    material: gold
    translate: [-1.5, 0, 0]
  - mesh: sphere
    material: rubber
    translate: [1.5, 0, 0]
    scale: [0.5, 0.5, 0.5]
`

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	s, err := Load(writeScene(t, sceneYAML))
	if err != nil {
		t.Fatal(err)
	}
	if s.Camera.FOV != 45 {
		t.Errorf("fov = %v, want 45", s.Camera.FOV)
	}
	if s.Environment != "sky.png" || !s.AmbientIBL {
		t.Errorf("environment = %q ibl %v", s.Environment, s.AmbientIBL)
	}
	if len(s.Lights.Directional) != 1 || len(s.Lights.Point) != 1 {
		t.Errorf("lights = %d dir %d point", len(s.Lights.Directional), len(s.Lights.Point))
	}
	if len(s.Materials) != 2 || s.Materials[0].Name != "gold" {
		t.Errorf("materials parsed wrong: %+v", s.Materials)
	}
	if len(s.Draws) != 2 || s.Draws[1].Scale != [3]float64{0.5, 0.5, 0.5} {
		t.Errorf("draws parsed wrong: %+v", s.Draws)
	}
}

func TestBuild(t *testing.T) {
	s, err := Load(writeScene(t, sceneYAML))
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Build(16.0/9, texture.NewCache())
	if err != nil {
		t.Fatal(err)
	}

	if b.Camera.Position != (mathutil.Vec3{0, 2, 8}) {
		t.Errorf("camera position = %v", b.Camera.Position)
	}
	if b.Lights.Directional.Count != 1 || b.Lights.Point.Count != 1 {
		t.Errorf("light counts = %d/%d", b.Lights.Directional.Count, b.Lights.Point.Count)
	}
	if got := b.Lights.Directional.Lights[0].Direction.Len(); math.Abs(got-1) > 1e-12 {
		t.Errorf("directional direction not normalized: |d| = %v", got)
	}
	if len(b.Textures) != 2 || len(b.Draws) != 2 {
		t.Fatalf("built %d textures, %d draws", len(b.Textures), len(b.Draws))
	}

	// Identical meshes are shared between draws
	if b.Draws[0].Mesh != b.Draws[1].Mesh {
		t.Error("sphere mesh not deduplicated")
	}

	// Translate moves the model-space origin
	got := b.Draws[0].Params.Model.MulPoint(mathutil.Vec3{0, 0, 0})
	if got.Sub(mathutil.Vec3{-1.5, 0, 0}).Len() > 1e-12 {
		t.Errorf("draw 0 origin maps to %v, want (-1.5,0,0)", got)
	}

	// Scale applies before translate
	got = b.Draws[1].Params.Model.MulPoint(mathutil.Vec3{1, 0, 0})
	if got.Sub(mathutil.Vec3{2, 0, 0}).Len() > 1e-12 {
		t.Errorf("draw 1 unit x maps to %v, want (2,0,0)", got)
	}
}

func TestBuild_UnknownMaterial(t *testing.T) {
	s := &Scene{
		Draws: []DrawDef{{Mesh: "cube", Material: "missing"}},
	}
	if _, err := s.Build(1, texture.NewCache()); err == nil {
		t.Error("expected error for unknown material")
	}
}

func TestBuildMesh_Unknown(t *testing.T) {
	if _, err := BuildMesh("torus"); err == nil {
		t.Error("expected error for unknown mesh")
	}
}

func TestSphere_Geometry(t *testing.T) {
	m := Sphere(8, 12)

	for i, v := range m.Vertices {
		if math.Abs(v.Position.Len()-1) > 1e-12 {
			t.Fatalf("vertex %d not on unit sphere: |p| = %v", i, v.Position.Len())
		}
		if v.Normal.Sub(v.Position).Len() > 1e-12 {
			t.Fatalf("vertex %d normal != position", i)
		}
		if math.Abs(v.Normal.Dot(v.Tangent)) > 1e-9 {
			t.Fatalf("vertex %d tangent not orthogonal to normal", i)
		}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]].Position
		b := m.Vertices[m.Indices[i+1]].Position
		c := m.Vertices[m.Indices[i+2]].Position
		cross := b.Sub(a).Cross(c.Sub(a))
		if cross.Len() < 1e-9 {
			continue // pole cap degenerates
		}
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		if cross.Dot(centroid) <= 0 {
			t.Fatalf("triangle %d winds inward", i/3)
		}
	}
}

func TestCube_Geometry(t *testing.T) {
	m := Cube()
	if len(m.Vertices) != 24 || len(m.Indices) != 36 {
		t.Fatalf("cube has %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		va := m.Vertices[m.Indices[i]]
		b := m.Vertices[m.Indices[i+1]].Position
		c := m.Vertices[m.Indices[i+2]].Position
		cross := b.Sub(va.Position).Cross(c.Sub(va.Position))
		if cross.Dot(va.Normal) <= 0 {
			t.Fatalf("triangle %d winds against its face normal", i/3)
		}
	}
}

func TestPlane_Geometry(t *testing.T) {
	m := Plane()
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]].Position
		b := m.Vertices[m.Indices[i+1]].Position
		c := m.Vertices[m.Indices[i+2]].Position
		cross := b.Sub(a).Cross(c.Sub(a))
		if cross[1] <= 0 {
			t.Fatalf("triangle %d does not face +Y", i/3)
		}
	}
}

func TestDefault(t *testing.T) {
	s := Default()
	if len(s.Draws) == 0 || len(s.Materials) == 0 {
		t.Fatal("default scene empty")
	}
	if _, err := s.Build(16.0/9, texture.NewCache()); err != nil {
		t.Fatalf("default scene does not build: %v", err)
	}
}
