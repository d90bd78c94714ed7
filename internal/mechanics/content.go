package mechanics

import "github.com/playroot/daily-arcade-go/internal/config"

// symbolSets holds the themed vocabulary for each element type. Slice order
// is the canonical order used by ordering mechanics (numeric for numbers,
// alphabetical for words, spectrum for colors, ascending value for math),
// and it is frozen: reordering changes generated content for every seed.
var symbolSets = map[config.Element][]string{
	config.ElementWord: {
		"apple", "beach", "candle", "dream", "ember", "forest", "garden",
		"harbor", "island", "jungle", "kettle", "lantern", "meadow", "night",
		"ocean", "pepper", "quartz", "river", "stone", "thunder", "umbrella",
		"violet", "winter", "yellow", "zephyr",
	},
	config.ElementColor: {
		"red", "orange", "yellow", "green", "teal", "blue", "purple", "pink",
	},
	config.ElementShape: {
		"circle", "square", "triangle", "diamond", "star", "hexagon", "heart", "cross",
	},
	config.ElementNumber: {
		"1", "2", "3", "4", "5", "6", "7", "8", "9",
	},
	config.ElementEmoji: {
		"🍎", "🍌", "🍇", "🍓", "🍊", "🥝", "🍒", "🍉", "🐙", "🦊", "🐸", "🦋",
	},
	config.ElementDirection: {
		"up", "down", "left", "right",
	},
	config.ElementMath: {
		"1+1", "2+2", "3+3", "2×4", "3×3", "5+6", "3×4", "4×4", "5×4", "5×5",
	},
	config.ElementPattern: {
		"●○", "○●", "●●", "○○", "●○●", "○●○", "●●○", "○○●",
	},
}

// Symbols returns the vocabulary for an element. Callers must not mutate
// the returned slice.
func Symbols(e config.Element) []string {
	return symbolSets[e]
}

// canonicalRank maps each symbol of an element to its position in the
// canonical order.
func canonicalRank(e config.Element) map[string]int {
	set := symbolSets[e]
	rank := make(map[string]int, len(set))
	for i, s := range set {
		rank[s] = i
	}
	return rank
}
