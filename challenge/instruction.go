package challenge

import (
	"strings"

	"github.com/lixenwraith/warpcheck/shape"
)

// Instruction placeholders expanded against round parameters
const (
	PlaceholderColor  = "{color}"
	PlaceholderKind   = "{kind}"
	PlaceholderColors = "{colors}"
	PlaceholderKinds  = "{kinds}"
)

// Expand fills instruction placeholders from the session parameters
// Unknown braces are left as written
func (s *Session) Expand(template string) string {
	if !strings.Contains(template, "{") {
		return template
	}
	p := &s.Params

	colors := make([]string, len(p.ColorSequence))
	for i, c := range p.ColorSequence {
		colors[i] = shape.ColorOf(c).Name
	}
	kinds := make([]string, len(p.KindSequence))
	for i, k := range p.KindSequence {
		kinds[i] = k.String()
	}

	r := strings.NewReplacer(
		PlaceholderColor, shape.ColorOf(p.Color).Name,
		PlaceholderKind, p.Kind.String(),
		PlaceholderColors, strings.Join(colors, ", "),
		PlaceholderKinds, strings.Join(kinds, ", "),
	)
	return r.Replace(template)
}
