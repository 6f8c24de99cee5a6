package writing

import (
	"errors"
	"fmt"
	"strings"
)

// Style identifies one of the supported writing disciplines. Every prompt,
// analysis and leaderboard row is tagged with exactly one style.
type Style string

const (
	StyleProfessional Style = "professional"
	StyleCreative     Style = "creative"
	StyleMarketing    Style = "marketing"
	StyleAcademic     Style = "academic"
)

// StyleFilterAll is the leaderboard filter token for the cross-style view.
// It is never a valid Style for prompts, analysis or persisted games.
const StyleFilterAll = "all"

// ErrInvalidStyle indicates input outside the supported style set.
var ErrInvalidStyle = errors.New("writing: invalid style")

// Styles lists every supported style in display order.
func Styles() []Style {
	return []Style{StyleProfessional, StyleCreative, StyleMarketing, StyleAcademic}
}

// ParseStyle validates raw input and returns the canonical Style.
func ParseStyle(rawInput string) (Style, error) {
	normalized := Style(strings.ToLower(strings.TrimSpace(rawInput)))
	switch normalized {
	case StyleProfessional, StyleCreative, StyleMarketing, StyleAcademic:
		return normalized, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStyle, rawInput)
}

// String returns the lowercase style tag.
func (s Style) String() string {
	return string(s)
}
