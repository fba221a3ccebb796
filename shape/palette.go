package shape

// Color is a palette entry, components in [0, 1]
type Color struct {
	Name    string
	R, G, B float64
}

// Inverse returns the complementary color
func (c Color) Inverse() Color {
	return Color{Name: c.Name, R: 1 - c.R, G: 1 - c.G, B: 1 - c.B}
}

// Palette indices follow rainbow order, RainbowOrder challenges rely on it
const (
	ColorRed = iota
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorViolet
	ColorCount
)

// Palette is the shared color table
var Palette = [ColorCount]Color{
	{Name: "red", R: 0.92, G: 0.22, B: 0.24},
	{Name: "orange", R: 0.98, G: 0.58, B: 0.16},
	{Name: "yellow", R: 0.97, G: 0.88, B: 0.22},
	{Name: "green", R: 0.24, G: 0.74, B: 0.34},
	{Name: "blue", R: 0.22, G: 0.46, B: 0.92},
	{Name: "violet", R: 0.62, G: 0.32, B: 0.86},
}

// ColorOf returns the palette entry for index i, wrapping out-of-range values
func ColorOf(i int) Color {
	if i < 0 {
		i = -i
	}
	return Palette[i%ColorCount]
}
