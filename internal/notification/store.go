package notification

import (
	"sort"
	"sync"
	"time"
)

// Store is the authoritative in-memory collection of all notification and
// configuration records for the process lifetime. It is the only component
// that mutates either record type; callers receive copies.
type Store struct {
	mu            sync.RWMutex
	notifications map[string]*Notification
	configs       map[string]Config
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		notifications: make(map[string]*Notification),
		configs:       make(map[string]Config),
	}
}

// SaveBatch appends the given records to the store. Records are cloned on
// the way in so later caller mutations cannot reach stored state.
func (s *Store) SaveBatch(batch []*Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range batch {
		if n == nil || n.ID == "" {
			continue
		}
		s.notifications[n.ID] = n.Clone()
	}
}

// Get retrieves a copy of a notification by id.
func (s *Store) Get(id string) (*Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

// ForUser returns copies of all of a user's notifications, newest first.
func (s *Store) ForUser(userID string) []*Notification {
	return s.collect(func(n *Notification) bool {
		return n.UserID == userID
	})
}

// UnreadForUser returns copies of a user's unread notifications, newest first.
func (s *Store) UnreadForUser(userID string) []*Notification {
	return s.collect(func(n *Notification) bool {
		return n.UserID == userID && !n.IsRead
	})
}

// UnreadCount returns the number of unread notifications owned by userID.
func (s *Store) UnreadCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count
}

// StatsForUser summarizes a user's notifications by read state and type.
func (s *Store) StatsForUser(userID string) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{ByType: make(map[Type]int)}
	for _, n := range s.notifications {
		if n.UserID != userID {
			continue
		}
		stats.Total++
		if !n.IsRead {
			stats.Unread++
		}
		stats.ByType[n.Type]++
	}
	return stats
}

// MarkRead transitions one notification to read at the given time.
// Returns false if the id is unknown or the record is already read; the
// transition is monotonic and ReadAt is never rewritten.
func (s *Store) MarkRead(id string, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return false
	}
	return n.markRead(at)
}

// MarkAllRead transitions every unread notification owned by userID to read
// at the given time and returns how many records changed.
func (s *Store) MarkAllRead(userID string, at time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for _, n := range s.notifications {
		if n.UserID == userID && n.markRead(at) {
			changed++
		}
	}
	return changed
}

// Delete removes a notification unconditionally. Returns false for an
// unknown id.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifications[id]; !ok {
		return false
	}
	delete(s.notifications, id)
	return true
}

// DeleteAllRead removes every read notification owned by userID and returns
// the number removed.
func (s *Store) DeleteAllRead(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, n := range s.notifications {
		if n.UserID == userID && n.IsRead {
			delete(s.notifications, id)
			removed++
		}
	}
	return removed
}

// DeleteReadBefore removes read notifications created before the cutoff.
// An empty userID applies the sweep globally. Unread records are never
// touched regardless of age.
func (s *Store) DeleteReadBefore(cutoff time.Time, userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, n := range s.notifications {
		if userID != "" && n.UserID != userID {
			continue
		}
		if n.IsRead && n.CreatedAt.Before(cutoff) {
			delete(s.notifications, id)
			removed++
		}
	}
	return removed
}

// Config returns a user's delivery configuration, if one exists.
func (s *Store) Config(userID string) (Config, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.configs[userID]
	return cfg, ok
}

// SetConfig stores a user's delivery configuration, replacing any existing
// record for the same user.
func (s *Store) SetConfig(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.configs[cfg.UserID] = cfg
}

// SeedConfigs creates a full-enablement default configuration for every
// listed user identifier that has none. Existing configurations are never
// overwritten, so re-seeding is idempotent. Returns the number of
// configurations created.
func (s *Store) SeedConfigs(userIDs []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded := 0
	for _, userID := range userIDs {
		if userID == "" {
			continue
		}
		if _, ok := s.configs[userID]; ok {
			continue
		}
		s.configs[userID] = DefaultConfig(userID)
		seeded++
	}
	return seeded
}

// Snapshot returns copies of the full current state for persistence.
// Notifications are ordered newest first for a stable on-disk layout.
func (s *Store) Snapshot() ([]*Notification, []Config) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := make([]*Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		notifications = append(notifications, n.Clone())
	}
	sortNewestFirst(notifications)

	configs := make([]Config, 0, len(s.configs))
	for _, cfg := range s.configs {
		configs = append(configs, cfg)
	}
	sort.Slice(configs, func(i, j int) bool {
		return configs[i].UserID < configs[j].UserID
	})

	return notifications, configs
}

// Restore replaces the store contents with a loaded snapshot. Records are
// cloned on the way in, like SaveBatch. Records with an inconsistent read
// state are normalized so the ReadAt invariant holds from the first query
// onward.
func (s *Store) Restore(notifications []*Notification, configs []Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = make(map[string]*Notification, len(notifications))
	for _, n := range notifications {
		if n == nil || n.ID == "" {
			continue
		}
		record := n.Clone()
		if !record.IsRead {
			record.ReadAt = nil
		} else if record.ReadAt == nil {
			at := record.CreatedAt
			record.ReadAt = &at
		}
		s.notifications[record.ID] = record
	}

	s.configs = make(map[string]Config, len(configs))
	for _, cfg := range configs {
		if cfg.UserID == "" {
			continue
		}
		s.configs[cfg.UserID] = cfg
	}
}

// collect returns copies of all notifications matching the predicate,
// newest first.
func (s *Store) collect(match func(*Notification) bool) []*Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*Notification
	for _, n := range s.notifications {
		if match(n) {
			results = append(results, n.Clone())
		}
	}
	sortNewestFirst(results)
	return results
}

// sortNewestFirst orders notifications by creation time descending.
func sortNewestFirst(notifications []*Notification) {
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
}
