package svgoptimize

import (
	"time"

	"github.com/benoitkugler/svgo/svgtree"
)

// stepStringify is the plugin name used for the serialization steps.
const stepStringify = "stringify"

// Step measures one plugin run (or one serialization).
// Sizes are the lengths of the compact serialization, in bytes.
type Step struct {
	Plugin  string
	Pass    int
	Before  int
	After   int
	Elapsed time.Duration
}

// Round measures one pass.
type Round struct {
	Before int
	After  int
}

// PluginSummary aggregates the steps of one plugin.
type PluginSummary struct {
	Diff    int
	Elapsed time.Duration
}

// Stats records the effect of each plugin during an optimization.
type Stats struct {
	// Steps is only filled when Config.Stats is set.
	Steps  []Step
	Rounds []Round
	// Passes is the number of passes actually run.
	Passes int
}

func size(root *svgtree.Root) int {
	return len(svgtree.Stringify(root, svgtree.StringifyOptions{}))
}

// Visit implements svgplugins.Recorder.
func (st *Stats) Visit(plugin string, root *svgtree.Root, v *svgtree.Visitor) {
	start := time.Now()
	before := size(root)
	svgtree.Visit(root, v)
	after := size(root)
	st.Steps = append(st.Steps, Step{Plugin: plugin, Pass: st.Passes - 1, Before: before, After: after, Elapsed: time.Since(start)})
}

func (st *Stats) startPass(input string) {
	st.Passes++
	st.Rounds = append(st.Rounds, Round{Before: len(input)})
}

// stringify serializes the tree, ending the current pass.
// The serialization is recorded as a step when withSteps is true.
func (st *Stats) stringify(root *svgtree.Root, opts svgtree.StringifyOptions, withSteps bool) string {
	if !withSteps {
		out := svgtree.Stringify(root, opts)
		st.Rounds[len(st.Rounds)-1].After = len(out)
		return out
	}
	start := time.Now()
	before := size(root)
	out := svgtree.Stringify(root, opts)
	st.Steps = append(st.Steps, Step{Plugin: stepStringify, Pass: st.Passes - 1, Before: before, After: len(out), Elapsed: time.Since(start)})
	st.Rounds[len(st.Rounds)-1].After = len(out)
	return out
}

// PerPlugin sums the steps of each plugin, over all passes.
func (st *Stats) PerPlugin() map[string]PluginSummary {
	out := make(map[string]PluginSummary)
	for _, step := range st.Steps {
		s := out[step.Plugin]
		s.Diff += step.After - step.Before
		s.Elapsed += step.Elapsed
		out[step.Plugin] = s
	}
	return out
}

// Diff returns the size variation between the input and the
// smallest output, negative when the document shrinks.
func (st *Stats) Diff() int {
	if len(st.Rounds) == 0 {
		return 0
	}
	best := st.Rounds[0].After
	for _, r := range st.Rounds[1:] {
		best = min(best, r.After)
	}
	return best - st.Rounds[0].Before
}

// Elapsed returns the total time spent in plugins and serialization.
func (st *Stats) Elapsed() time.Duration {
	var total time.Duration
	for _, step := range st.Steps {
		total += step.Elapsed
	}
	return total
}
