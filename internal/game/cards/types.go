package cards

import (
	"fmt"
	"strings"
)

// Color identifies the stack a card belongs to. Values are ordered alphabetically.
type Color int

const (
	ColorBlue Color = iota
	ColorGreen
	ColorPurple
	ColorRed
	ColorYellow
	// ColorNone marks achievement cards that never sit on a board.
	ColorNone Color = -1
)

// Colors lists the five board colors in board order.
var Colors = []Color{ColorBlue, ColorGreen, ColorPurple, ColorRed, ColorYellow}

var colorNames = map[Color]string{
	ColorBlue:   "blue",
	ColorGreen:  "green",
	ColorPurple: "purple",
	ColorRed:    "red",
	ColorYellow: "yellow",
	ColorNone:   "none",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("COLOR_%d", int(c))
}

// ParseColor converts a catalog token into a Color.
func ParseColor(token string) (Color, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	for _, c := range Colors {
		if colorNames[c] == token {
			return c, nil
		}
	}
	return ColorNone, fmt.Errorf("color must be blue, green, purple, red, or yellow, got %q", token)
}

// Icon is one of the six symbol kinds printed in a card's slots.
type Icon int

const (
	IconCrown Icon = iota
	IconLeaf
	IconLightbulb
	IconCastle
	IconFactory
	IconClock
	// IconBlank is the hex slot that carries no symbol.
	IconBlank
	// IconNone is used where no icon applies, e.g. an achievement's effect type.
	IconNone Icon = -1
)

// Icons lists the six countable icon kinds.
var Icons = []Icon{IconCrown, IconLeaf, IconLightbulb, IconCastle, IconFactory, IconClock}

var iconNames = map[Icon]string{
	IconCrown:     "crown",
	IconLeaf:      "leaf",
	IconLightbulb: "lightbulb",
	IconCastle:    "castle",
	IconFactory:   "factory",
	IconClock:     "clock",
	IconBlank:     "",
	IconNone:      "none",
}

func (i Icon) String() string {
	if i == IconBlank {
		return "blank"
	}
	if name, ok := iconNames[i]; ok {
		return name
	}
	return fmt.Sprintf("ICON_%d", int(i))
}

// ParseIcon converts a catalog token into an Icon. The empty token is the blank slot.
func ParseIcon(token string) (Icon, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return IconBlank, nil
	}
	for _, i := range Icons {
		if iconNames[i] == token {
			return i, nil
		}
	}
	return IconNone, fmt.Errorf("icon must be crown, leaf, lightbulb, castle, factory, or clock, got %q", token)
}

// CardID identifies a card. Card names are unique within a catalog.
type CardID string

const (
	// MinAge and MaxAge bound the draw piles.
	MinAge = 1
	MaxAge = 10
)

// Card is a single Innovation card. Cards are shared by pointer; a card instance
// lives in exactly one pile at a time.
type Card struct {
	ID         CardID
	Name       string
	Color      Color
	Age        int
	EffectType Icon
	Icons      [4]Icon
	Texts      []string

	// Special achievements only.
	Criteria    string
	Alternative string
}

// Count returns how many of the four slots show icon.
func (c *Card) Count(icon Icon) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, slot := range c.Icons {
		if slot == icon {
			n++
		}
	}
	return n
}

// Has reports whether any slot shows icon.
func (c *Card) Has(icon Icon) bool {
	return c.Count(icon) > 0
}

// IsAchievement reports whether the card is a special achievement marker.
func (c *Card) IsAchievement() bool {
	return c.Color == ColorNone
}

func (c *Card) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.Name
}
