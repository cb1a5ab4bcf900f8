package scene

import "fmt"

// Default returns a built-in showcase scene: a 5×5 sphere grid sweeping
// metallic and roughness over a matte ground plane, lit by four point
// lights and one directional fill. Used when no scene file is given.
func Default() *Scene {
	s := &Scene{
		Camera: CameraDef{
			Position: [3]float64{0, 4, 14},
			LookAt:   [3]float64{0, 2.5, 0},
			FOV:      45,
			Near:     0.1,
			Far:      100,
		},
		Lights: LightsDef{
			Directional: []DirectionalDef{
				{Direction: [3]float64{-0.3, -1, -0.2}, Color: [3]float64{0.08, 0.08, 0.08}},
			},
			Point: []PointDef{
				{Position: [3]float64{-6, 6, 6}, Color: [3]float64{120, 120, 120}},
				{Position: [3]float64{6, 6, 6}, Color: [3]float64{120, 120, 120}},
				{Position: [3]float64{-6, 1, 6}, Color: [3]float64{60, 60, 60}},
				{Position: [3]float64{6, 1, 6}, Color: [3]float64{60, 60, 60}},
			},
		},
	}

	const n = 5
	for row := 0; row < n; row++ {
		metallic := float64(row) / float64(n-1)
		for col := 0; col < n; col++ {
			roughness := 0.05 + 0.9*float64(col)/float64(n-1)
			name := fmt.Sprintf("m%dr%d", row, col)
			s.Materials = append(s.Materials, MaterialDef{
				Name:      name,
				Albedo:    [3]float64{0.6, 0.1, 0.1},
				Metallic:  metallic,
				Roughness: roughness,
				AO:        1,
			})
			s.Draws = append(s.Draws, DrawDef{
				Mesh:      "sphere",
				Material:  name,
				Translate: [3]float64{float64(col-n/2) * 2.2, float64(row)*2.2 + 0.5, 0},
				Scale:     [3]float64{1, 1, 1},
			})
		}
	}

	s.Materials = append(s.Materials, MaterialDef{
		Name:      "ground",
		Albedo:    [3]float64{0.5, 0.5, 0.5},
		Metallic:  0,
		Roughness: 0.9,
		AO:        1,
	})
	s.Draws = append(s.Draws, DrawDef{
		Mesh:      "plane",
		Material:  "ground",
		Translate: [3]float64{0, -0.6, 0},
		Scale:     [3]float64{20, 1, 20},
	})

	return s
}
