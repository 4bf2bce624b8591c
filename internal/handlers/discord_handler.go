package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/usmaclub/signup-bot/internal/commands"
	"github.com/usmaclub/signup-bot/internal/config"
	"github.com/usmaclub/signup-bot/internal/domain/contract"
	"github.com/usmaclub/signup-bot/internal/scheduler"
	"github.com/usmaclub/signup-bot/internal/signup"
)

// DiscordHandler routes gateway events (reactions, message commands)
// to the signup service.
type DiscordHandler struct {
	session   contract.Session
	svc       *signup.Service
	cfg       *config.Config
	botUserID string

	now func() time.Time
}

func New(session contract.Session, svc *signup.Service, cfg *config.Config) *DiscordHandler {
	return &DiscordHandler{
		session: session,
		svc:     svc,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (h *DiscordHandler) OnReady(_ *discordgo.Session, r *discordgo.Ready) {
	h.botUserID = r.User.ID
	log.Printf("handlers: logged in as %s", r.User.Username)
}

func (h *DiscordHandler) OnReactionAdd(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
	h.HandleReaction(r.MessageReaction, true)
}

func (h *DiscordHandler) OnReactionRemove(_ *discordgo.Session, r *discordgo.MessageReactionRemove) {
	h.HandleReaction(r.MessageReaction, false)
}

// HandleReaction decides whether a reaction toggles a role or a roster
// signup. The two are mutually exclusive: an emoji present in the role
// table is always a role toggle, whatever message it was placed on.
func (h *DiscordHandler) HandleReaction(r *discordgo.MessageReaction, add bool) {
	if r.UserID == h.botUserID {
		return
	}
	emoji := r.Emoji.Name

	if entry, ok := h.svc.RoleFor(emoji); ok {
		h.toggleRole(r.GuildID, r.UserID, entry.Role, add)
		return
	}

	tracked, ok := h.svc.Tracked(r.MessageID)
	if !ok {
		return
	}
	index, ok := signup.SlotIndex(emoji)
	if !ok || index >= len(tracked.Slots) {
		return
	}

	member, err := h.session.GuildMember(r.GuildID, r.UserID)
	if err != nil {
		return
	}

	if _, err := h.svc.ToggleSignup(r.MessageID, index, displayName(member), add); err != nil {
		log.Printf("handlers: %v", err)
	}
}

func (h *DiscordHandler) toggleRole(guildID, userID, roleName string, add bool) {
	roleID, ok := h.findRole(guildID, roleName)
	if !ok {
		return
	}
	var err error
	if add {
		err = h.session.GuildMemberRoleAdd(guildID, userID, roleID)
	} else {
		err = h.session.GuildMemberRoleRemove(guildID, userID, roleID)
	}
	if err != nil {
		log.Printf("handlers: failed to toggle role %s for %s: %v", roleName, userID, err)
	}
}

func (h *DiscordHandler) findRole(guildID, name string) (string, bool) {
	roles, err := h.session.GuildRoles(guildID)
	if err != nil {
		return "", false
	}
	for _, role := range roles {
		if role.Name == name {
			return role.ID, true
		}
	}
	return "", false
}

func displayName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User == nil {
		return ""
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}
	return m.User.Username
}

func (h *DiscordHandler) OnMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == h.botUserID || m.Author.Bot {
		return
	}
	cmd, ok := commands.Parse(h.cfg.CommandPrefix, m.Content)
	if !ok {
		return
	}

	switch cmd.Type {
	case commands.CmdEvent:
		h.handleEvent(m, cmd)
	case commands.CmdRoleMsg:
		h.handleRoleMsg(m)
	case commands.CmdAutoEvent:
		h.handleAutoEvent(m, cmd)
	case commands.CmdPing:
		h.reply(m.ChannelID, "Alive, may the tiles guide you to victory")
	}
}

func (h *DiscordHandler) handleEvent(m *discordgo.MessageCreate, cmd *commands.Command) {
	if !h.hasOrganizerRole(m.GuildID, m.Member, m.Author.ID) {
		return
	}
	if len(cmd.Args) == 0 {
		h.reply(m.ChannelID, "❌ Provide an event name and its times.")
		return
	}
	name, times := cmd.Args[0], cmd.Args[1:]
	if len(times) == 0 {
		h.reply(m.ChannelID, "❌ Provide the times.")
		return
	}
	if _, err := h.svc.PostEventMessage(m.ChannelID, name, times); err != nil {
		log.Printf("handlers: %v", err)
		h.reply(m.ChannelID, "❌ Could not create the event.")
	}
}

func (h *DiscordHandler) handleRoleMsg(m *discordgo.MessageCreate) {
	if !h.isAdmin(m.GuildID, m.Member, m.Author.ID) {
		return
	}
	updated, err := h.svc.PostRoleMessage(m.ChannelID)
	switch {
	case err != nil:
		log.Printf("handlers: %v", err)
		h.reply(m.ChannelID, "⚠️ Could not write the role message: "+err.Error())
	case updated:
		h.reply(m.ChannelID, "✅ Updated the existing role message.")
	default:
		h.reply(m.ChannelID, "✅ Created a new role message.")
	}
}

// handleAutoEvent force-triggers a recurrence rule: the argument is
// matched against weekday fragments in the simple table first, then as
// a substring of advanced rule names; with no argument today's weekday
// is tried against the simple table.
func (h *DiscordHandler) handleAutoEvent(m *discordgo.MessageCreate, cmd *commands.Command) {
	if !h.isAdmin(m.GuildID, m.Member, m.Author.ID) {
		return
	}

	h.svc.CleanupOldEvents()

	if h.cfg.AutoChannelID == "" {
		h.reply(m.ChannelID, "❌ No auto-events channel configured.")
		return
	}

	arg := strings.Join(cmd.Args, " ")
	now := h.now().UTC()

	if arg != "" {
		if day, ok := scheduler.WeekdayFromName(arg); ok {
			if rule, ok := h.simpleRuleFor(day); ok {
				h.publishRule(m.ChannelID, scheduler.EventName(rule.Name, now, day), rule.Times)
				return
			}
		}
		for _, rule := range h.cfg.Tables.ScheduledEvents {
			if !strings.Contains(strings.ToLower(rule.Name), strings.ToLower(arg)) {
				continue
			}
			name := rule.Name
			if day, ok := scheduler.WeekdayFromName(rule.Name); ok {
				name = scheduler.EventName(rule.Name, now, day)
			}
			h.publishRule(m.ChannelID, name, rule.Times)
			return
		}
	} else if rule, ok := h.simpleRuleFor(now.Weekday()); ok {
		h.publishRule(m.ChannelID, scheduler.EventName(rule.Name, now, now.Weekday()), rule.Times)
		return
	}

	h.reply(m.ChannelID, "❌ No matching event to create. Check the day or event name.")
}

func (h *DiscordHandler) simpleRuleFor(day time.Weekday) (config.SimpleRule, bool) {
	for _, rule := range h.cfg.Tables.AutoEvents {
		if ruleDay, ok := scheduler.WeekdayFromName(rule.Weekday); ok && ruleDay == day {
			return rule, true
		}
	}
	return config.SimpleRule{}, false
}

func (h *DiscordHandler) publishRule(replyChannelID, name string, times []string) {
	if _, err := h.svc.PostEventMessage(h.cfg.AutoChannelID, name, times); err != nil {
		log.Printf("handlers: %v", err)
		h.reply(replyChannelID, "❌ Could not create the event.")
		return
	}
	h.reply(replyChannelID, "✅ Created event: "+name)
}

func (h *DiscordHandler) reply(channelID, text string) {
	if _, err := h.session.ChannelMessageSend(channelID, text); err != nil {
		log.Printf("handlers: failed to reply in %s: %v", channelID, err)
	}
}

func (h *DiscordHandler) hasOrganizerRole(guildID string, member *discordgo.Member, userID string) bool {
	member = h.resolveMember(guildID, member, userID)
	if member == nil {
		return false
	}
	roleID, ok := h.findRole(guildID, h.cfg.OrganizerRole)
	if !ok {
		return false
	}
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}

func (h *DiscordHandler) isAdmin(guildID string, member *discordgo.Member, userID string) bool {
	member = h.resolveMember(guildID, member, userID)
	if member == nil {
		return false
	}
	roles, err := h.session.GuildRoles(guildID)
	if err != nil {
		return false
	}
	byID := make(map[string]*discordgo.Role, len(roles))
	for _, role := range roles {
		byID[role.ID] = role
	}
	for _, id := range member.Roles {
		if role, ok := byID[id]; ok && role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}
	return false
}

func (h *DiscordHandler) resolveMember(guildID string, member *discordgo.Member, userID string) *discordgo.Member {
	if member != nil {
		return member
	}
	fetched, err := h.session.GuildMember(guildID, userID)
	if err != nil {
		return nil
	}
	return fetched
}
