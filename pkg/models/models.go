package models

// RoleMessageName is the sentinel tracked-message name used for the
// role-selection message.
const RoleMessageName = "rolemsg"

// Rosters maps event name -> slot label -> signed-up display names,
// kept in signup order with no duplicates per slot.
type Rosters map[string]map[string][]string

// TrackedMessage binds a sent Discord message to the event (or role
// selection) content it renders. Slots is a snapshot of the slot labels
// at creation time; its length bounds the numeric-emoji indices the
// message accepts.
type TrackedMessage struct {
	Name      string   `json:"name"`
	Slots     []string `json:"slots"`
	ChannelID string   `json:"channel_id"`
}

// IsRoleMessage reports whether this tracked message is the role-selection message.
func (m TrackedMessage) IsRoleMessage() bool {
	return m.Name == RoleMessageName
}

// State is the full persisted document. Messages is keyed by the
// Discord message ID string.
type State struct {
	Events   Rosters                   `json:"events"`
	Messages map[string]TrackedMessage `json:"messages"`
}

// NewState returns an empty state with both maps allocated.
func NewState() *State {
	return &State{
		Events:   Rosters{},
		Messages: map[string]TrackedMessage{},
	}
}

// RoleEntry maps one emoji on the role-selection message to a guild
// role name and the description shown in the embed.
type RoleEntry struct {
	Emoji       string `yaml:"emoji"`
	Role        string `yaml:"role"`
	Description string `yaml:"description"`
}
