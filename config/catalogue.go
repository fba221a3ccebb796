package config

var defaultInstructions = map[string]string{
	"size-ascending":     "Click the circles from smallest to largest",
	"size-descending":    "Click the circles from largest to smallest",
	"left-to-right":      "Click the circles from left to right",
	"right-to-left":      "Click the circles from right to left",
	"top-to-bottom":      "Click the circles from top to bottom",
	"diagonal":           "Click the circles from the top-left corner outward",
	"radial-out":         "Click the circles from the center outward",
	"radial-in":          "Click the circles from the edge inward",
	"color-sequence":     "Click the colors in this order: {colors}",
	"rainbow-order":      "Click the colors in rainbow order",
	"numbered-dots":      "Click the shapes in numeric order of their dots",
	"shape-sequence":     "Click the shapes in this order: {kinds}",
	"color-match":        "Click every {color} shape",
	"shape-match":        "Click every {kind}",
	"even-numbers":       "Click every shape with an even number of dots",
	"odd-numbers":        "Click every shape with an odd number of dots",
	"avoid-color":        "Click the shapes that are not {color}",
	"avoid-shape":        "Click every shape except the {kind}s",
	"dashed-only":        "Click only the shapes with dashed outlines",
	"double-border-only": "Click only the shapes with a double border",
}
