package rendering

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"skyscape/core"
)

// Op is a full-screen filter.
type Op int

const (
	// OpBrightFilter keeps the bright parts of the scene.
	OpBrightFilter Op = iota
	// OpSunBrightFilter is the bright filter tuned for the sun disc.
	OpSunBrightFilter
	// OpBlur is a two-dimensional Gaussian blur sized to its output.
	OpBlur
	// OpBlend adds its second input on top of its first.
	OpBlend
	// OpColorGrade applies tint, brightness, contrast and saturation.
	OpColorGrade
)

func (o Op) String() string {
	switch o {
	case OpBrightFilter:
		return "bright-filter"
	case OpSunBrightFilter:
		return "sun-bright-filter"
	case OpBlur:
		return "blur"
	case OpBlend:
		return "blend"
	case OpColorGrade:
		return "color-grade"
	default:
		return "unknown"
	}
}

const (
	sceneBrightThreshold = 0.8
	sunBrightThreshold   = 0.3

	// BrightKnee is the half width of the bright filter's soft threshold.
	BrightKnee = 0.1

	blurRadius = 4
	blurSigma  = 2.0
)

// Step is one full-screen draw: read Inputs, write Output. Size is the output
// target's size, used as the blur texel scale and the viewport.
type Step struct {
	Op        Op
	Inputs    []TargetID
	Output    TargetID
	Size      Size
	Threshold float32
	Grade     core.PostParams
}

// PostExecutor draws full-screen steps. BeginFullScreen disables depth
// testing; EndFullScreen restores it and rebinds the back buffer.
type PostExecutor interface {
	BeginFullScreen()
	RunStep(s Step)
	EndFullScreen()
}

// PlanPostProcess builds the fixed post-processing chain for a screen size:
// the sun glow chain, the scene bloom chain blended over the glow, then
// color grading into TargetColorGraded.
func PlanPostProcess(width, height int) []Step {
	layout := Layout(width, height)
	var plan []Step
	add := func(op Op, out TargetID, threshold float32, in ...TargetID) {
		plan = append(plan, Step{Op: op, Inputs: in, Output: out, Size: layout[out], Threshold: threshold})
	}

	add(OpSunBrightFilter, TargetSunBright, sunBrightThreshold, TargetSunSphere)
	prev := TargetSunBright
	for i := 0; i < sunBlurCount; i++ {
		next := TargetSunBlur1 + TargetID(i)
		add(OpBlur, next, 0, prev)
		prev = next
	}
	add(OpBlend, TargetSunBlended, 0, TargetCloudBlended, prev)

	add(OpBrightFilter, TargetBloomBright, sceneBrightThreshold, TargetCloudBlended)
	prev = TargetBloomBright
	for i := 0; i < bloomBlurCount; i++ {
		next := TargetBloomBlur1 + TargetID(i)
		add(OpBlur, next, 0, prev)
		prev = next
	}
	add(OpBlend, TargetBloomBlended, 0, TargetSunBlended, prev)

	add(OpColorGrade, TargetColorGraded, 0, TargetBloomBlended)
	return plan
}

// RunPostProcess executes plan with grade applied to the color grading step.
func RunPostProcess(exec PostExecutor, plan []Step, grade core.PostParams) {
	exec.BeginFullScreen()
	for _, s := range plan {
		if s.Op == OpColorGrade {
			s.Grade = grade
		}
		exec.RunStep(s)
	}
	exec.EndFullScreen()
}

var rec709 = mgl32.Vec3{0.2126, 0.7152, 0.0722}

// Luminance is Rec. 709 relative luminance.
func Luminance(c mgl32.Vec3) float32 {
	return c.Dot(rec709)
}

// BrightPass keeps c in proportion to how far its luminance clears
// threshold, with a soft knee.
func BrightPass(c mgl32.Vec3, threshold float32) mgl32.Vec3 {
	return c.Mul(smoothstep(threshold-BrightKnee, threshold+BrightKnee, Luminance(c)))
}

// Grade applies tint, brightness, contrast and saturation in that order and
// clamps the result to [0, 1].
func Grade(c mgl32.Vec3, p core.PostParams) mgl32.Vec3 {
	c = core.LerpVec3(c, p.Tint, p.TintStrength)
	c = c.Mul(p.Brightness)
	half := mgl32.Vec3{0.5, 0.5, 0.5}
	c = c.Sub(half).Mul(p.Contrast).Add(half)
	lum := Luminance(c)
	grey := mgl32.Vec3{lum, lum, lum}
	c = grey.Add(c.Sub(grey).Mul(p.Saturation))
	return core.ClampVec3(c, 0, 1)
}

// GaussianKernel returns normalised weights for offsets 0..radius of a
// symmetric kernel.
func GaussianKernel(radius int, sigma float32) []float32 {
	if radius < 0 {
		radius = 0
	}
	w := make([]float32, radius+1)
	var sum float32
	for i := range w {
		w[i] = math32.Exp(-float32(i*i) / (2 * sigma * sigma))
		if i == 0 {
			sum += w[i]
		} else {
			sum += 2 * w[i]
		}
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// BlurKernel is the kernel used by OpBlur.
func BlurKernel() []float32 { return GaussianKernel(blurRadius, blurSigma) }

func smoothstep(edge0, edge1, x float32) float32 {
	if edge1 <= edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := core.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
