package mocks

import (
	"errors"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/usmaclub/signup-bot/internal/domain/contract"
)

var _ contract.Session = (*SessionMock)(nil)

// SessionMock is a hand-maintained fake of contract.Session. It records
// every call and lets tests preload members, roles and fetchable
// messages or inject errors.
type SessionMock struct {
	mu     sync.Mutex
	nextID int

	SentEmbeds   []*discordgo.MessageEmbed
	SentEmbedIDs []string
	Replies      []string
	EditedEmbeds map[string]*discordgo.MessageEmbed
	Reactions    map[string][]string
	Deleted      []string
	RoleAdds     []string
	RoleRemoves  []string

	Members  map[string]*discordgo.Member  // key guildID|userID
	Roles    map[string][]*discordgo.Role  // key guildID
	Messages map[string]*discordgo.Message // key channelID|messageID

	SendErr error
	EditErr error
}

func NewSessionMock() *SessionMock {
	return &SessionMock{
		EditedEmbeds: map[string]*discordgo.MessageEmbed{},
		Reactions:    map[string][]string{},
		Members:      map[string]*discordgo.Member{},
		Roles:        map[string][]*discordgo.Role{},
		Messages:     map[string]*discordgo.Message{},
	}
}

func (m *SessionMock) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return nil, m.SendErr
	}
	m.Replies = append(m.Replies, content)
	return &discordgo.Message{ID: m.newID(), ChannelID: channelID, Content: content}, nil
}

func (m *SessionMock) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return nil, m.SendErr
	}
	id := m.newID()
	m.SentEmbeds = append(m.SentEmbeds, embed)
	m.SentEmbedIDs = append(m.SentEmbedIDs, id)
	return &discordgo.Message{ID: id, ChannelID: channelID, Embeds: []*discordgo.MessageEmbed{embed}}, nil
}

func (m *SessionMock) ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EditErr != nil {
		return nil, m.EditErr
	}
	m.EditedEmbeds[messageID] = embed
	return &discordgo.Message{ID: messageID, ChannelID: channelID, Embeds: []*discordgo.MessageEmbed{embed}}, nil
}

func (m *SessionMock) ChannelMessage(channelID, messageID string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.Messages[channelID+"|"+messageID]
	if !ok {
		return nil, errors.New("message not found")
	}
	return msg, nil
}

func (m *SessionMock) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, messageID)
	return nil
}

func (m *SessionMock) MessageReactionAdd(channelID, messageID, emojiID string, _ ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reactions[messageID] = append(m.Reactions[messageID], emojiID)
	return nil
}

func (m *SessionMock) GuildMember(guildID, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.Members[guildID+"|"+userID]
	if !ok {
		return nil, errors.New("member not found")
	}
	return member, nil
}

func (m *SessionMock) GuildRoles(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	roles, ok := m.Roles[guildID]
	if !ok {
		return nil, errors.New("guild not found")
	}
	return roles, nil
}

func (m *SessionMock) GuildMemberRoleAdd(guildID, userID, roleID string, _ ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RoleAdds = append(m.RoleAdds, guildID+"|"+userID+"|"+roleID)
	return nil
}

func (m *SessionMock) GuildMemberRoleRemove(guildID, userID, roleID string, _ ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RoleRemoves = append(m.RoleRemoves, guildID+"|"+userID+"|"+roleID)
	return nil
}

func (m *SessionMock) newID() string {
	m.nextID++
	return strconv.Itoa(m.nextID)
}
