package shaders

import (
	"fmt"
	"log/slog"

	"skyscape/gpu"
)

// Programs is every compiled program the renderer uses.
type Programs struct {
	TerrainLit   *gpu.Program
	TerrainDepth *gpu.Program
	TerrainCloud *gpu.Program
	MeshLit      *gpu.Program
	MeshDepth    *gpu.Program
	MeshCloud    *gpu.Program
	Sky          *gpu.Program
	Sun          *gpu.Program
	Raymarch     *gpu.Program
	CloudBlend   *gpu.Program
	Bright       *gpu.Program
	Blur         *gpu.Program
	Blend        *gpu.Program
	Grade        *gpu.Program
	Composite    *gpu.Program
}

func terrainStages(fragment string) []gpu.Stage {
	return []gpu.Stage{
		gpu.Vertex(terrainVertex),
		gpu.TessControl(terrainControl),
		gpu.TessEvaluation(terrainEvaluation),
		gpu.Fragment(fragment),
	}
}

// Compile builds every program. Any failure releases what was built and
// is fatal to startup.
func Compile() (*Programs, error) {
	p := &Programs{}
	builds := []struct {
		name   string
		dst    **gpu.Program
		stages []gpu.Stage
	}{
		{"terrain-lit", &p.TerrainLit, terrainStages(litFragment)},
		{"terrain-depth", &p.TerrainDepth, terrainStages(depthFragment)},
		{"terrain-cloud-depth", &p.TerrainCloud, terrainStages(cloudDepthFragment)},
		{"mesh-lit", &p.MeshLit, []gpu.Stage{gpu.Vertex(meshVertex), gpu.Fragment(litFragment)}},
		{"mesh-depth", &p.MeshDepth, []gpu.Stage{gpu.Vertex(meshVertex), gpu.Fragment(depthFragment)}},
		{"mesh-cloud-depth", &p.MeshCloud, []gpu.Stage{gpu.Vertex(meshVertex), gpu.Fragment(cloudDepthFragment)}},
		{"sky", &p.Sky, []gpu.Stage{gpu.Vertex(meshVertex), gpu.Fragment(skyFragment)}},
		{"sun", &p.Sun, []gpu.Stage{gpu.Vertex(meshVertex), gpu.Fragment(sunFragment)}},
		{"raymarch", &p.Raymarch, []gpu.Stage{gpu.Vertex(meshVertex), gpu.Fragment(raymarchFragment)}},
		{"cloud-blend", &p.CloudBlend, []gpu.Stage{gpu.Vertex(fullScreenVertex), gpu.Fragment(cloudBlendFragment)}},
		{"bright", &p.Bright, []gpu.Stage{gpu.Vertex(fullScreenVertex), gpu.Fragment(brightFragment)}},
		{"blur", &p.Blur, []gpu.Stage{gpu.Vertex(fullScreenVertex), gpu.Fragment(blurFragment)}},
		{"blend", &p.Blend, []gpu.Stage{gpu.Vertex(fullScreenVertex), gpu.Fragment(blendFragment)}},
		{"grade", &p.Grade, []gpu.Stage{gpu.Vertex(fullScreenVertex), gpu.Fragment(gradeFragment)}},
		{"composite", &p.Composite, []gpu.Stage{gpu.Vertex(fullScreenVertex), gpu.Fragment(compositeFragment)}},
	}
	for _, b := range builds {
		prog, err := gpu.NewProgram(b.name, b.stages...)
		if err != nil {
			p.Release()
			return nil, fmt.Errorf("compile programs: %w", err)
		}
		*b.dst = prog
	}
	slog.Debug("shader programs compiled", "count", len(builds))
	return p, nil
}

// Release deletes every built program.
func (p *Programs) Release() {
	for _, prog := range []*gpu.Program{
		p.TerrainLit, p.TerrainDepth, p.TerrainCloud,
		p.MeshLit, p.MeshDepth, p.MeshCloud,
		p.Sky, p.Sun, p.Raymarch, p.CloudBlend,
		p.Bright, p.Blur, p.Blend, p.Grade, p.Composite,
	} {
		if prog != nil {
			prog.Release()
		}
	}
}
