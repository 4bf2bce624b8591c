package signup

import "strconv"

// tenEmoji is the dedicated keycap-ten glyph; Discord has no "10️⃣"
// composed from a keycap sequence.
const tenEmoji = "🔟"

// SlotIndex converts a reaction emoji to a zero-based slot index.
// Keycap digits "1️⃣".."9️⃣" map to 0..8 and "🔟" maps to 9. Anything
// else is not a slot index.
func SlotIndex(emoji string) (int, bool) {
	if emoji == tenEmoji {
		return 9, true
	}
	digits := ""
	for _, r := range emoji {
		if r < '0' || r > '9' {
			break
		}
		digits += string(r)
	}
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// SlotEmoji returns the reaction emoji for a zero-based slot index.
func SlotEmoji(index int) string {
	if index == 9 {
		return tenEmoji
	}
	return string(rune('1'+index)) + "️⃣"
}
