package ssr

import (
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

// minifier is a single, process-wide *minify.M, built lazily on first use.
// Grounded on the teacher's html_minify.go, which does the same thing for
// the same reason: minify.New() registers a table of MIME-type minifiers
// and is meant to be built once and reused, not once per call.
var (
	minifierOnce sync.Once
	minifierInst *minify.M
)

func minifier() *minify.M {
	minifierOnce.Do(func() {
		minifierInst = minify.New()
		minifierInst.AddFunc("text/html", html.Minify)
	})
	return minifierInst
}

// CompileOption customizes a single Compile call.
type CompileOption func(*compileOptions)

type compileOptions struct {
	minifyStatics bool
}

// WithMinify runs each static HTML fragment through a whitespace/comment
// minifier before compilation. It is opt-in and off by default: minifying
// a fragment in isolation (rather than the whole joined template) can
// alter whitespace immediately adjacent to a hole in ways a template
// author may not expect, e.g. collapsing a space that was meaningful only
// once a dynamic value filled the adjacent hole. Enable it for templates
// you've verified render the same either way.
func WithMinify() CompileOption {
	return func(o *compileOptions) { o.minifyStatics = true }
}

func applyMinify(statics []string) ([]string, error) {
	m := minifier()
	out := make([]string, len(statics))
	for i, s := range statics {
		min, err := m.String("text/html", s)
		if err != nil {
			return nil, err
		}
		out[i] = min
	}
	return out, nil
}
