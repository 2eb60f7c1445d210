package generate

// Stage is one step of the four-stage pipeline indicator.
type Stage struct {
	Num    int
	Label  string
	Done   bool
	Active bool
}

var stageLabels = [...]string{
	"Classify Intent",
	"ICP Match",
	"Channel Decision",
	"Generate Copy",
}

// Stages derives the pipeline indicator from request state. The backend
// returns only a final answer, never intermediate stage events, so the
// display is a pure function of (inProgress, hasResult): stage one is active
// while a request is out, and every stage completes at once when the result
// lands.
func Stages(inProgress, hasResult bool) []Stage {
	out := make([]Stage, len(stageLabels))
	for i, label := range stageLabels {
		out[i] = Stage{
			Num:   i + 1,
			Label: label,
			Done:  hasResult,
		}
	}
	if inProgress && !hasResult {
		out[0].Active = true
	}
	return out
}
