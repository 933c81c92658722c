package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spec-kit/ticket-bot/internal/domain"
)

// State is the full persisted state of the bot. The JSON keys match the data
// file written by earlier deployments of this bot.
type State struct {
	TicketCount    int    `json:"ticket_count"`
	SupportRoleID  string `json:"support_role"`
	PanelChannelID string `json:"panel_channel_id"`
	PanelMessageID string `json:"panel_message_id"`
}

// Store owns the persisted ticket state. All mutations go through the store
// and are written to disk before they are considered effective; in particular
// a ticket number is persisted before it is handed out. Interaction handlers
// run on separate goroutines, so every read-modify-write holds the mutex for
// the whole increment-then-persist sequence.
//
// The data file is exclusively owned by this process. Concurrent external
// writers are not supported.
type Store struct {
	mu    sync.Mutex
	path  string
	state State
}

// Open loads the state file at path, returning a zeroed state when the file
// does not exist yet. Malformed content is an error: the caller is expected to
// treat it as fatal rather than silently resetting the counter.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, &s.state); err != nil {
		return nil, fmt.Errorf("state file %s is not valid JSON: %w", path, err)
	}
	if s.state.TicketCount < 0 {
		return nil, fmt.Errorf("state file %s: ticket_count %d is negative", path, s.state.TicketCount)
	}
	return s, nil
}

// AllocateTicketNumber increments the ticket counter, persists it, and returns
// the new value. This is the only generator of ticket numbers; a returned
// number is never produced again, and the counter is never decremented even
// when the caller later fails to create the backing channel.
func (s *Store) AllocateTicketNumber() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.TicketCount++
	if err := s.saveLocked(); err != nil {
		// The in-memory increment stands: treating the number as consumed
		// keeps the counter monotonic across a transient write failure.
		return 0, fmt.Errorf("persist ticket count %d: %w", s.state.TicketCount, err)
	}
	return s.state.TicketCount, nil
}

// SetSupportRole records the role permitted to view and close any ticket.
func (s *Store) SetSupportRole(roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SupportRoleID = roleID
	return s.saveLocked()
}

// SetPanel records the location of the most recently posted panel message.
// Last write wins.
func (s *Store) SetPanel(channelID, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.PanelChannelID = channelID
	s.state.PanelMessageID = messageID
	return s.saveLocked()
}

// TicketCount returns the number of tickets allocated so far.
func (s *Store) TicketCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TicketCount
}

// SupportRoleID returns the configured support role, or "" when unset.
func (s *Store) SupportRoleID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SupportRoleID
}

// Panel returns the recorded panel reference; fields are "" when no panel has
// been posted.
func (s *Store) Panel() domain.Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Panel{ChannelID: s.state.PanelChannelID, MessageID: s.state.PanelMessageID}
}

// Path returns the location of the backing data file.
func (s *Store) Path() string {
	return s.path
}

// Ping verifies the data file location is still reachable.
func (s *Store) Ping() error {
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

// saveLocked serializes the full state to the data file. Callers must hold mu.
// The write goes through a temp file and rename so a crash mid-write cannot
// leave a truncated state file behind.
func (s *Store) saveLocked() error {
	raw, err := json.MarshalIndent(&s.state, "", "    ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".ticket_data-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
