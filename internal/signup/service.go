package signup

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/usmaclub/signup-bot/internal/domain/contract"
	"github.com/usmaclub/signup-bot/internal/store"
	"github.com/usmaclub/signup-bot/pkg/models"
)

// maxSlots bounds an event's time slots by the available keycap emoji.
const maxSlots = 10

const cleanupAge = 7 * 24 * time.Hour

// Service owns the roster state. All mutation goes through its mutex,
// so reaction handlers, commands and the scheduler never interleave a
// read-modify-write on the maps.
type Service struct {
	mu      sync.Mutex
	state   *models.State
	store   *store.Store
	session contract.Session
	roles   []models.RoleEntry

	now func() time.Time
}

func New(state *models.State, st *store.Store, session contract.Session, roles []models.RoleEntry) *Service {
	return &Service{
		state:   state,
		store:   st,
		session: session,
		roles:   roles,
		now:     time.Now,
	}
}

// RoleFor looks up the role table entry for an emoji. Role toggling
// always takes precedence over roster signup for a matching emoji.
func (s *Service) RoleFor(emoji string) (models.RoleEntry, bool) {
	for _, entry := range s.roles {
		if entry.Emoji == emoji {
			return entry, true
		}
	}
	return models.RoleEntry{}, false
}

// Roles returns the configured role table in order.
func (s *Service) Roles() []models.RoleEntry {
	return s.roles
}

// Tracked returns the tracked-message record for a message ID.
func (s *Service) Tracked(messageID string) (models.TrackedMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.state.Messages[messageID]
	return msg, ok
}

// CreateEvent initializes an empty roster per slot, overwriting any
// prior event of the same name.
func (s *Service) CreateEvent(name string, slots []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createEventLocked(name, slots)
}

func (s *Service) createEventLocked(name string, slots []string) error {
	if len(slots) == 0 {
		return fmt.Errorf("event %q needs at least one time slot", name)
	}
	if len(slots) > maxSlots {
		return fmt.Errorf("event %q has %d slots, at most %d are supported", name, len(slots), maxSlots)
	}
	rosters := make(map[string][]string, len(slots))
	for _, slot := range slots {
		rosters[slot] = []string{}
	}
	s.state.Events[name] = rosters
	return nil
}

// PostEventMessage creates the event, posts its embed, attaches one
// numbered reaction per slot and tracks the message. Returns the new
// message ID.
func (s *Service) PostEventMessage(channelID, name string, slots []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.createEventLocked(name, slots); err != nil {
		return "", err
	}

	embed := BuildEventEmbed(name, slots, s.state.Events[name])
	msg, err := s.session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return "", fmt.Errorf("failed to post event message: %w", err)
	}

	for i := range slots {
		if err := s.session.MessageReactionAdd(channelID, msg.ID, SlotEmoji(i)); err != nil {
			log.Printf("signup: failed to add reaction %d on %s: %v", i+1, msg.ID, err)
		}
	}

	s.state.Messages[msg.ID] = models.TrackedMessage{
		Name:      name,
		Slots:     append([]string(nil), slots...),
		ChannelID: channelID,
	}
	s.saveLocked()

	return msg.ID, nil
}

// ToggleSignup adds or removes a display name on the slot roster of a
// tracked message. Adding a present name or removing an absent one is a
// no-op with no save or re-render. Reports whether the roster changed.
func (s *Service) ToggleSignup(messageID string, slotIndex int, displayName string, add bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracked, ok := s.state.Messages[messageID]
	if !ok {
		return false, nil
	}
	if slotIndex < 0 || slotIndex >= len(tracked.Slots) {
		return false, nil
	}
	slot := tracked.Slots[slotIndex]

	rosters, ok := s.state.Events[tracked.Name]
	if !ok {
		rosters = map[string][]string{}
		s.state.Events[tracked.Name] = rosters
	}

	names := rosters[slot]
	pos := -1
	for i, n := range names {
		if n == displayName {
			pos = i
			break
		}
	}

	switch {
	case add && pos < 0:
		rosters[slot] = append(names, displayName)
	case !add && pos >= 0:
		rosters[slot] = append(names[:pos], names[pos+1:]...)
	default:
		return false, nil
	}

	s.saveLocked()
	return true, s.updateEventMessageLocked(messageID)
}

// UpdateEventMessage rebuilds the embed of a tracked event message and
// pushes the edit. A fetch or edit failure is returned, it means the
// message or channel vanished.
func (s *Service) UpdateEventMessage(messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateEventMessageLocked(messageID)
}

func (s *Service) updateEventMessageLocked(messageID string) error {
	tracked, ok := s.state.Messages[messageID]
	if !ok {
		return nil
	}
	embed := BuildEventEmbed(tracked.Name, tracked.Slots, s.state.Events[tracked.Name])
	if _, err := s.session.ChannelMessageEditEmbed(tracked.ChannelID, messageID, embed); err != nil {
		return fmt.Errorf("failed to update event message %s: %w", messageID, err)
	}
	return nil
}

// PostRoleMessage posts the role-selection message, or edits the
// existing one in place. Reports whether an existing message was
// updated.
func (s *Service) PostRoleMessage(channelID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	embed := BuildRoleEmbed(s.roles)

	for id, tracked := range s.state.Messages {
		if !tracked.IsRoleMessage() {
			continue
		}
		if _, err := s.session.ChannelMessageEditEmbed(tracked.ChannelID, id, embed); err != nil {
			return true, fmt.Errorf("failed to update role message %s: %w", id, err)
		}
		return true, nil
	}

	msg, err := s.session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return false, fmt.Errorf("failed to post role message: %w", err)
	}
	for _, entry := range s.roles {
		if err := s.session.MessageReactionAdd(channelID, msg.ID, entry.Emoji); err != nil {
			log.Printf("signup: failed to add role reaction %s on %s: %v", entry.Emoji, msg.ID, err)
		}
	}

	s.state.Messages[msg.ID] = models.TrackedMessage{
		Name:      models.RoleMessageName,
		Slots:     []string{},
		ChannelID: channelID,
	}
	s.saveLocked()

	return false, nil
}

// CleanupOldEvents re-fetches every tracked message and drops the
// message, its event and its tracking entry once the message is seven
// days old. Messages that cannot be fetched are left alone. Returns how
// many entries were removed.
func (s *Service) CleanupOldEvents() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	removed := 0
	for id, tracked := range s.state.Messages {
		msg, err := s.session.ChannelMessage(tracked.ChannelID, id)
		if err != nil {
			continue
		}
		if now.Sub(msg.Timestamp) < cleanupAge {
			continue
		}
		if err := s.session.ChannelMessageDelete(tracked.ChannelID, id); err != nil {
			log.Printf("signup: failed to delete old message %s: %v", id, err)
		}
		delete(s.state.Events, tracked.Name)
		delete(s.state.Messages, id)
		removed++
	}
	if removed > 0 {
		log.Printf("signup: cleaned up %d old messages", removed)
		s.saveLocked()
	}
	return removed
}

func (s *Service) saveLocked() {
	if err := s.store.Save(s.state); err != nil {
		log.Printf("signup: %v", err)
	}
}
