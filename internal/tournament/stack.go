package tournament

import (
	"regexp"
	"strconv"
	"strings"
)

// Stack text arrives from the recognizer in several shapes: "1,500",
// "12.5K", "750", "85.5 BB". Chip patterns are tried in order and the first
// match wins; the BB pattern is matched independently.
var (
	thousandsPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})+`)
	kSuffixPattern   = regexp.MustCompile(`(\d+\.?\d*)\s*[Kk]`)
	plainPattern     = regexp.MustCompile(`\d+`)
	bbPattern        = regexp.MustCompile(`(\d+\.?\d*)\s*[Bb][Bb]`)
)

// ParseStack extracts a chip count and a big-blind-relative size from stack
// text. Either result may be nil; unparseable text is not an error, it just
// leaves the fields unset so a bad read never looks like a zero stack.
func ParseStack(text string) (chips *int, bbSize *float64) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	if match := bbPattern.FindStringSubmatch(trimmed); match != nil {
		if value, err := strconv.ParseFloat(match[1], 64); err == nil {
			bbSize = &value
		}
	}

	if match := thousandsPattern.FindString(trimmed); match != "" {
		if value, err := strconv.Atoi(strings.ReplaceAll(match, ",", "")); err == nil {
			chips = &value
			return chips, bbSize
		}
	}

	if match := kSuffixPattern.FindStringSubmatch(trimmed); match != nil {
		if value, err := strconv.ParseFloat(match[1], 64); err == nil {
			count := int(value * 1000)
			chips = &count
			return chips, bbSize
		}
	}

	// A bare number inside a BB reading is the blind count, not a chip
	// stack.
	if bbSize == nil {
		if match := plainPattern.FindString(trimmed); match != "" {
			if value, err := strconv.Atoi(match); err == nil {
				chips = &value
			}
		}
	}

	return chips, bbSize
}

var nameCleaner = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// CleanName strips recognizer noise from a player name, keeping only
// alphanumerics and underscores. Returns "" for names too short to trust.
func CleanName(text string) string {
	cleaned := nameCleaner.ReplaceAllString(strings.TrimSpace(text), "")
	if len(cleaned) <= 2 {
		return ""
	}
	return cleaned
}

// sitting-out indicators seen in name or stack regions
func looksSittingOut(name, stack string) bool {
	lowerName := strings.ToLower(name)
	lowerStack := strings.ToLower(stack)

	if strings.Contains(lowerStack, "sitting") && strings.Contains(lowerStack, "out") {
		return true
	}
	if strings.Contains(lowerName, "sitting") && strings.Contains(lowerName, "out") {
		return true
	}
	if strings.TrimSpace(name) != "" && strings.TrimSpace(stack) == "" {
		return true
	}
	return strings.Contains(lowerName, "away") || strings.Contains(lowerName, "afk")
}
