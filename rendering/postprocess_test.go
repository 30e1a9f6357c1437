package rendering

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyscape/core"
)

func TestLayoutDivisors(t *testing.T) {
	l := Layout(1920, 1080)
	assert.Equal(t, Size{1920, 1080}, l[TargetSource])
	assert.Equal(t, Size{320, 180}, l[TargetBloomBright])
	assert.Equal(t, Size{240, 135}, l[TargetBloomBlur1])
	assert.Equal(t, Size{240, 135}, l[TargetBloomBlur4])
	assert.Equal(t, Size{1920, 1080}, l[TargetBloomBlended])
	assert.Equal(t, Size{240, 135}, l[TargetSunBright])
	assert.Equal(t, Size{120, 67}, l[TargetSunBlur1])
	assert.Equal(t, Size{120, 67}, l[TargetSunBlur10])
	assert.Len(t, l, int(targetCount))
}

func TestLayoutNeverZero(t *testing.T) {
	l := Layout(10, 5)
	for id, s := range l {
		assert.GreaterOrEqual(t, s.Width, 1, id.String())
		assert.GreaterOrEqual(t, s.Height, 1, id.String())
	}
}

func TestTargetsInIDOrder(t *testing.T) {
	for i, s := range Targets() {
		assert.Equal(t, TargetID(i), s.ID)
	}
	assert.Equal(t, "cloud-depth", TargetCloudDepth.String())
	assert.Equal(t, FormatLinearDepth, Targets()[TargetCloudDepth].Format)
}

func TestPlanChains(t *testing.T) {
	plan := PlanPostProcess(1280, 720)
	layout := Layout(1280, 720)

	// 1 sun bright + 10 blurs + blend, 1 bright + 4 blurs + blend, 1 grade.
	require.Len(t, plan, 19)
	assert.Equal(t, OpSunBrightFilter, plan[0].Op)
	assert.Equal(t, []TargetID{TargetSunSphere}, plan[0].Inputs)

	for i := 1; i <= 10; i++ {
		s := plan[i]
		assert.Equal(t, OpBlur, s.Op)
		assert.Equal(t, plan[i-1].Output, s.Inputs[0], "blur %d reads the previous step", i)
	}
	assert.Equal(t, Step{Op: OpBlend, Inputs: []TargetID{TargetCloudBlended, TargetSunBlur10},
		Output: TargetSunBlended, Size: layout[TargetSunBlended]}, plan[11])

	assert.Equal(t, OpBrightFilter, plan[12].Op)
	assert.Equal(t, []TargetID{TargetCloudBlended}, plan[12].Inputs)
	assert.Equal(t, []TargetID{TargetSunBlended, TargetBloomBlur4}, plan[17].Inputs)
	assert.Equal(t, TargetBloomBlended, plan[17].Output)

	last := plan[len(plan)-1]
	assert.Equal(t, OpColorGrade, last.Op)
	assert.Equal(t, TargetColorGraded, last.Output)

	for _, s := range plan {
		assert.Equal(t, layout[s.Output], s.Size, "step %s sized by its output", s.Op)
	}
}

type recordingPost struct {
	calls []string
	steps []Step
}

func (r *recordingPost) BeginFullScreen() { r.calls = append(r.calls, "begin") }
func (r *recordingPost) RunStep(s Step) {
	r.calls = append(r.calls, s.Op.String())
	r.steps = append(r.steps, s)
}
func (r *recordingPost) EndFullScreen() { r.calls = append(r.calls, "end") }

func TestRunPostProcessWrapsDepthState(t *testing.T) {
	r := &recordingPost{}
	grade := core.DefaultSceneParameters().Post
	RunPostProcess(r, PlanPostProcess(800, 600), grade)
	assert.Equal(t, "begin", r.calls[0])
	assert.Equal(t, "end", r.calls[len(r.calls)-1])
	assert.Equal(t, grade, r.steps[len(r.steps)-1].Grade)
	assert.Equal(t, core.PostParams{}, r.steps[0].Grade)
}

func TestGradeIdentity(t *testing.T) {
	p := core.PostParams{Brightness: 1, Contrast: 1, Saturation: 1}
	c := mgl32.Vec3{0.2, 0.5, 0.7}
	got := Grade(c, p)
	for i := range c {
		assert.InDelta(t, c[i], got[i], 1e-6)
	}
}

func TestGradeStages(t *testing.T) {
	c := mgl32.Vec3{0.2, 0.4, 0.6}

	desat := Grade(c, core.PostParams{Brightness: 1, Contrast: 1, Saturation: 0})
	assert.InDelta(t, desat[0], desat[1], 1e-6)
	assert.InDelta(t, desat[1], desat[2], 1e-6)

	flat := Grade(c, core.PostParams{Brightness: 1, Contrast: 0, Saturation: 1})
	assert.InDelta(t, 0.5, flat[0], 1e-6)

	tinted := Grade(c, core.PostParams{Tint: mgl32.Vec3{1, 0, 0}, TintStrength: 1, Brightness: 1, Contrast: 1, Saturation: 1})
	assert.InDelta(t, 1, tinted[0], 1e-6)
	assert.InDelta(t, 0, tinted[1], 1e-6)

	bright := Grade(c, core.PostParams{Brightness: 10, Contrast: 1, Saturation: 1})
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, bright, "output is clamped")
}

func TestBrightPass(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{}, BrightPass(mgl32.Vec3{0.1, 0.1, 0.1}, 0.8))
	white := mgl32.Vec3{1, 1, 1}
	assert.Equal(t, white, BrightPass(white, 0.8))
}

func TestGaussianKernelNormalised(t *testing.T) {
	w := BlurKernel()
	require.Len(t, w, blurRadius+1)
	sum := w[0]
	for i := 1; i < len(w); i++ {
		sum += 2 * w[i]
		assert.Less(t, w[i], w[i-1])
	}
	assert.InDelta(t, 1, sum, 1e-5)
}
