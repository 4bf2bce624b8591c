package signup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usmaclub/signup-bot/pkg/models"
)

func TestTableStatus(t *testing.T) {
	tests := []struct {
		count    int
		wantFull int
		wantNeed int
	}{
		{count: 0, wantFull: 0, wantNeed: 0},
		{count: 1, wantFull: 0, wantNeed: 3},
		{count: 4, wantFull: 1, wantNeed: 0},
		{count: 5, wantFull: 1, wantNeed: 3},
		{count: 7, wantFull: 1, wantNeed: 1},
		{count: 8, wantFull: 2, wantNeed: 0},
	}

	for _, tt := range tests {
		full, need := TableStatus(tt.count)
		assert.Equal(t, tt.wantFull, full, "count=%d", tt.count)
		assert.Equal(t, tt.wantNeed, need, "count=%d", tt.count)
	}
}

func TestBuildEventEmbed(t *testing.T) {
	rosters := map[string][]string{
		"18:00": {},
		"19:30": {"Ann", "Bob", "Cid", "Dee"},
		"21:00": {"Ann", "Bob", "Cid", "Dee", "Eve"},
	}

	embed := BuildEventEmbed("Club Night", []string{"18:00", "19:30", "21:00"}, rosters)

	assert.Equal(t, "📅 Event: Club Night", embed.Title)
	require.Len(t, embed.Fields, 3)

	assert.Equal(t, "1️⃣ 18:00", embed.Fields[0].Name)
	assert.Equal(t, NoSignups, embed.Fields[0].Value)

	assert.Equal(t, "2️⃣ 19:30", embed.Fields[1].Name)
	assert.Contains(t, embed.Fields[1].Value, "Ann\nBob\nCid\nDee")
	assert.Contains(t, embed.Fields[1].Value, "Tables: 1 (full)")

	assert.Equal(t, "3️⃣ 21:00", embed.Fields[2].Name)
	assert.Contains(t, embed.Fields[2].Value, "Tables: 1, ❗ 3 more needed for a table")
}

func TestBuildEventEmbedPreservesSlotOrder(t *testing.T) {
	slots := []string{"22:00", "16:00", "19:00"}
	embed := BuildEventEmbed("Night", slots, map[string][]string{})

	require.Len(t, embed.Fields, 3)
	for i, slot := range slots {
		assert.Equal(t, SlotEmoji(i)+" "+slot, embed.Fields[i].Name)
	}
}

func TestBuildRoleEmbed(t *testing.T) {
	entries := []models.RoleEntry{
		{Emoji: "🎮", Role: "Ranked games", Description: "Ranked club sessions"},
		{Emoji: "🎲", Role: "Casual games", Description: "Relaxed games"},
	}

	embed := BuildRoleEmbed(entries)

	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "🎮 Ranked games", embed.Fields[0].Name)
	assert.Equal(t, "Ranked club sessions", embed.Fields[0].Value)
	assert.False(t, embed.Fields[0].Inline)
	assert.Equal(t, "🎲 Casual games", embed.Fields[1].Name)
}
