package signup

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/usmaclub/signup-bot/pkg/models"
)

// NoSignups is the field body shown for an empty roster.
const NoSignups = "no one signed up"

// tableSize is how many players fill one table.
const tableSize = 4

const roleEmbedColor = 0x3498db

// TableStatus partitions a signup count into full tables of four and
// the number of extra signups needed to fill the next table.
func TableStatus(count int) (full, need int) {
	full = count / tableSize
	if rem := count % tableSize; rem != 0 {
		need = tableSize - rem
	}
	return full, need
}

func tablesLine(count int) string {
	full, need := TableStatus(count)
	if need == 0 {
		return fmt.Sprintf("🪑 Tables: %d (full)", full)
	}
	return fmt.Sprintf("🪑 Tables: %d, ❗ %d more needed for a table", full, need)
}

func slotFieldValue(names []string) string {
	if len(names) == 0 {
		return NoSignups
	}
	return strings.Join(names, "\n") + "\n" + tablesLine(len(names))
}

// BuildEventEmbed renders the summary embed for an event: one field per
// slot in original order, titled with the slot's keycap emoji and label.
func BuildEventEmbed(name string, slots []string, rosters map[string][]string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📅 Event: " + name,
		Description: "React with an emoji to sign up.",
	}
	for i, slot := range slots {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   SlotEmoji(i) + " " + slot,
			Value:  slotFieldValue(rosters[slot]),
			Inline: true,
		})
	}
	return embed
}

// BuildRoleEmbed renders the role-selection embed from the configured
// role table.
func BuildRoleEmbed(entries []models.RoleEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🎭 Pick your roles",
		Description: "React with an emoji to add or remove a role.",
		Color:       roleEmbedColor,
	}
	for _, entry := range entries {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   entry.Emoji + " " + entry.Role,
			Value:  entry.Description,
			Inline: false,
		})
	}
	return embed
}
