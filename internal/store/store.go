package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/usmaclub/signup-bot/pkg/models"
)

// Store persists the full bot state as one JSON document on disk.
// Writes are whole-file and synchronous; there is no locking beyond the
// single-process assumption.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the state file. A missing file yields an empty state; an
// unreadable or unparsable file is logged and also yields an empty
// state so the bot can start. Malformed message entries are skipped
// individually.
func (s *Store) Load() *models.State {
	state := models.NewState()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("store: failed to read %s: %v", s.path, err)
		}
		return state
	}

	var raw struct {
		Events   models.Rosters                   `json:"events"`
		Messages map[string]models.TrackedMessage `json:"messages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("store: failed to parse %s: %v", s.path, err)
		return state
	}

	if raw.Events != nil {
		state.Events = raw.Events
	}
	for id, msg := range raw.Messages {
		if _, err := strconv.ParseUint(id, 10, 64); err != nil {
			log.Printf("store: skipping message entry with bad id %q", id)
			continue
		}
		if msg.ChannelID == "" {
			log.Printf("store: skipping message entry %s without channel", id)
			continue
		}
		if msg.Slots == nil {
			msg.Slots = []string{}
		}
		state.Messages[id] = msg
	}

	log.Printf("store: loaded %d events, %d messages", len(state.Events), len(state.Messages))
	return state
}

// Save writes the state back to disk. Failures are returned so callers
// can log them; in-memory state is always kept, the next save retries
// from it.
func (s *Store) Save(state *models.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	log.Printf("store: saved %d events, %d messages to %s", len(state.Events), len(state.Messages), s.path)
	return nil
}
