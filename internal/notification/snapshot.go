package notification

import (
	"encoding/json"
	"errors"
	"os"
)

// Persisted snapshot layout: two keys in the local key-value store, each a
// JSON array. Timestamps round-trip as RFC 3339 strings via encoding/json.
const (
	keyNotifications = "notifications"
	keyConfigs       = "notificationConfigs"
)

// SnapshotStore is the durable storage the service persists its state to.
// *kvstore.Store satisfies it.
type SnapshotStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// loadSnapshot reads both snapshot keys and restores them into the store.
// Any read or decode failure degrades to an empty slice for that key: a
// broken snapshot must never prevent the service from starting. Missing
// keys are the normal first-run case and are not logged as failures.
func (s *Service) loadSnapshot() {
	if s.kv == nil {
		return
	}

	var notifications []*Notification
	if data, err := s.kv.Get(keyNotifications); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read notification snapshot, starting empty", "error", err)
			s.metrics.SnapshotFailure("load")
		}
	} else if err := json.Unmarshal(data, &notifications); err != nil {
		s.logger.Warn("corrupt notification snapshot, starting empty", "error", err)
		s.metrics.SnapshotFailure("load")
		notifications = nil
	}

	var configs []Config
	if data, err := s.kv.Get(keyConfigs); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read config snapshot, starting with defaults", "error", err)
			s.metrics.SnapshotFailure("load")
		}
	} else if err := json.Unmarshal(data, &configs); err != nil {
		s.logger.Warn("corrupt config snapshot, starting with defaults", "error", err)
		s.metrics.SnapshotFailure("load")
		configs = nil
	}

	s.store.Restore(notifications, configs)
}

// persist serializes the full current state to the snapshot store. Failures
// are logged and counted, never raised: the in-memory state remains
// authoritative for the rest of the process lifetime.
func (s *Service) persist() {
	if s.kv == nil {
		return
	}

	notifications, configs := s.store.Snapshot()

	if data, err := json.Marshal(notifications); err != nil {
		s.logger.Error("failed to encode notification snapshot", "error", err)
		s.metrics.SnapshotFailure("save")
	} else if err := s.kv.Set(keyNotifications, data); err != nil {
		s.logger.Error("failed to write notification snapshot", "error", err)
		s.metrics.SnapshotFailure("save")
	}

	if data, err := json.Marshal(configs); err != nil {
		s.logger.Error("failed to encode config snapshot", "error", err)
		s.metrics.SnapshotFailure("save")
	} else if err := s.kv.Set(keyConfigs, data); err != nil {
		s.logger.Error("failed to write config snapshot", "error", err)
		s.metrics.SnapshotFailure("save")
	}
}
