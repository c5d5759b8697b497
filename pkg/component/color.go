package component

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB value, optionally bound to one of the sixteen named colors.
// Named colors keep their name through serialization; arbitrary RGB values are
// written as #rrggbb.
type Color struct {
	r, g, b uint8
	name    string
}

// NamedColor describes one of the sixteen legacy palette entries.
type NamedColor struct {
	Name string
	Code rune
	Hex  string
}

// Palette lists the named colors in legacy code order (0-9, a-f).
var Palette = []NamedColor{
	{"black", '0', "#000000"},
	{"dark_blue", '1', "#0000aa"},
	{"dark_green", '2', "#00aa00"},
	{"dark_aqua", '3', "#00aaaa"},
	{"dark_red", '4', "#aa0000"},
	{"dark_purple", '5', "#aa00aa"},
	{"gold", '6', "#ffaa00"},
	{"gray", '7', "#aaaaaa"},
	{"dark_gray", '8', "#555555"},
	{"blue", '9', "#5555ff"},
	{"green", 'a', "#55ff55"},
	{"aqua", 'b', "#55ffff"},
	{"red", 'c', "#ff5555"},
	{"light_purple", 'd', "#ff55ff"},
	{"yellow", 'e', "#ffff55"},
	{"white", 'f', "#ffffff"},
}

var (
	namedByName = make(map[string]Color, len(Palette))
	namedByCode = make(map[rune]Color, len(Palette))
	codeByName  = make(map[string]rune, len(Palette))
)

// Named colors, usable as literals when building styles.
var (
	Black       Color
	DarkBlue    Color
	DarkGreen   Color
	DarkAqua    Color
	DarkRed     Color
	DarkPurple  Color
	Gold        Color
	Gray        Color
	DarkGray    Color
	Blue        Color
	Green       Color
	Aqua        Color
	Red         Color
	LightPurple Color
	Yellow      Color
	White       Color
)

func init() {
	for _, nc := range Palette {
		c, err := colorful.Hex(nc.Hex)
		if err != nil {
			panic("component: invalid palette entry " + nc.Name)
		}
		r, g, b := c.RGB255()
		col := Color{r: r, g: g, b: b, name: nc.Name}
		namedByName[nc.Name] = col
		namedByCode[nc.Code] = col
		codeByName[nc.Name] = nc.Code
	}
	Black, DarkBlue, DarkGreen, DarkAqua = namedByName["black"], namedByName["dark_blue"], namedByName["dark_green"], namedByName["dark_aqua"]
	DarkRed, DarkPurple, Gold, Gray = namedByName["dark_red"], namedByName["dark_purple"], namedByName["gold"], namedByName["gray"]
	DarkGray, Blue, Green, Aqua = namedByName["dark_gray"], namedByName["blue"], namedByName["green"], namedByName["aqua"]
	Red, LightPurple, Yellow, White = namedByName["red"], namedByName["light_purple"], namedByName["yellow"], namedByName["white"]
}

// RGB returns an unnamed color.
func RGB(r, g, b uint8) Color {
	return Color{r: r, g: g, b: b}
}

// ParseColor accepts a palette name ("red", "dark_aqua") or a hex value
// ("#ff8800"). Names are case-insensitive.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil || len(s) != 7 {
			return Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		r, g, b := c.RGB255()
		return Color{r: r, g: g, b: b}, nil
	}
	if c, ok := namedByName[strings.ToLower(s)]; ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}

// ColorByCode returns the palette color for a legacy code (0-9, a-f).
func ColorByCode(code rune) (Color, bool) {
	if code >= 'A' && code <= 'F' {
		code += 'a' - 'A'
	}
	c, ok := namedByCode[code]
	return c, ok
}

// RGB255 returns the channel values.
func (c Color) RGB255() (r, g, b uint8) {
	return c.r, c.g, c.b
}

// Name returns the palette name, or "" for arbitrary RGB values.
func (c Color) Name() string {
	return c.name
}

// IsNamed reports whether the color is a palette entry.
func (c Color) IsNamed() bool {
	return c.name != ""
}

// Code returns the legacy code of a named color.
func (c Color) Code() (rune, bool) {
	if c.name == "" {
		return 0, false
	}
	code, ok := codeByName[c.name]
	return code, ok
}

// Hex returns the #rrggbb form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

// String returns the name for palette colors and the hex form otherwise.
func (c Color) String() string {
	if c.name != "" {
		return c.name
	}
	return c.Hex()
}

// Nearest returns the palette color closest to c in CIE Lab space.
// Named colors return themselves.
func (c Color) Nearest() Color {
	if c.name != "" {
		return c
	}
	target := c.colorful()
	best, bestDist := Color{}, math.Inf(1)
	for _, nc := range Palette {
		candidate := namedByName[nc.Name]
		if d := target.DistanceLab(candidate.colorful()); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.r) / 255, G: float64(c.g) / 255, B: float64(c.b) / 255}
}
