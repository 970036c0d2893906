package notification

import (
	"log/slog"
	"time"

	"github.com/hrsuite/hrhub/internal/observability"
)

// Default retention for read notifications removed by CleanOld.
const DefaultRetentionDays = 30

// ServiceConfig holds the configuration for the notification service.
type ServiceConfig struct {
	// Debug enables debug logging for the service
	Debug bool
	// RetentionDays is the age threshold for cleaning up read notifications
	RetentionDays int
	// SeedUsers lists the user identifiers to seed default configs for
	SeedUsers []string
}

// DefaultServiceConfig returns a default configuration.
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		RetentionDays: DefaultRetentionDays,
	}
}

// Service is the notification center: it owns the store, gates creation
// through per-user delivery configuration, manages read state and persists a
// snapshot after every mutation. Construct one instance at process start and
// hand it to every consumer; there is no ambient singleton.
//
// All operations are synchronous; persistence is an inline local write.
type Service struct {
	store     *Store
	kv        SnapshotStore
	logger    *slog.Logger
	metrics   *observability.Metrics
	config    *ServiceConfig
	retention time.Duration
}

// NewService creates a notification service backed by kv. A nil kv runs the
// service memory-only, which tests use. Loading the snapshot, seeding
// default configs for the configured users and writing the seeded state back
// all happen here, so the service is fully usable on return even when the
// snapshot was missing or corrupt.
func NewService(config *ServiceConfig, kv SnapshotStore) *Service {
	if config == nil {
		config = DefaultServiceConfig()
	}
	retentionDays := config.RetentionDays
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}

	s := &Service{
		store:     NewStore(),
		kv:        kv,
		logger:    getLogger(config.Debug),
		config:    config,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
	SetDebugLevel(config.Debug)

	s.loadSnapshot()
	seeded := s.store.SeedConfigs(config.SeedUsers)
	s.persist()

	s.logger.Info("notification service initialized",
		"retention_days", retentionDays,
		"seeded_configs", seeded,
		"persistent", kv != nil,
		"debug", config.Debug)

	return s
}

// SetMetrics attaches a metrics integration. Call after construction;
// a nil metrics handle disables recording.
func (s *Service) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Create fans a creation request out to one notification per recipient that
// passes the delivery filter, appends them in one batch and persists once.
// Recipients whose configuration filters the request out are skipped
// silently: no record, no error. Returns the records actually created,
// which may be empty.
func (s *Service) Create(params CreateParams) []*Notification {
	var created []*Notification

	for _, userID := range params.UserIDs {
		if userID == "" {
			continue
		}
		if !s.shouldDeliver(userID, params.Type, params.Module) {
			s.metrics.NotificationSuppressed(string(params.Type))
			if s.config.Debug {
				s.logger.Debug("notification suppressed by user config",
					"user", userID,
					"type", params.Type,
					"module", params.Module)
			}
			continue
		}

		n := New(userID, params.Type, params.Title, params.Message).
			WithModule(params.Module, params.ModuleID).
			WithRedirect(params.RedirectURL)
		if len(params.Metadata) > 0 {
			for k, v := range params.Metadata {
				n.WithMetadata(k, v)
			}
		}
		created = append(created, n)
		s.metrics.NotificationCreated(string(params.Type))
	}

	if len(created) > 0 {
		s.store.SaveBatch(created)
		s.persist()
	}

	if s.config.Debug {
		s.logger.Debug("creation request processed",
			"recipients", len(params.UserIDs),
			"created", len(created),
			"type", params.Type)
	}

	return created
}

// shouldDeliver gates creation of a notification for one recipient. A user
// with no configuration is fail-open and receives everything.
func (s *Service) shouldDeliver(userID string, typ Type, module Module) bool {
	cfg, ok := s.store.Config(userID)
	if !ok {
		return true
	}
	return cfg.Allows(typ, module)
}

// Get retrieves a notification by id.
func (s *Service) Get(id string) (*Notification, bool) {
	return s.store.Get(id)
}

// MarkAsRead marks one notification read, recording the read timestamp.
// Unknown ids and already-read records are no-ops. Returns whether the
// record changed.
func (s *Service) MarkAsRead(id string) bool {
	changed := s.store.MarkRead(id, time.Now())
	if changed {
		s.metrics.NotificationsRead(1)
		s.persist()
	}
	return changed
}

// MarkAllAsRead marks every unread notification owned by userID as read and
// persists once for the whole batch. Returns the number of records changed.
func (s *Service) MarkAllAsRead(userID string) int {
	changed := s.store.MarkAllRead(userID, time.Now())
	if changed > 0 {
		s.metrics.NotificationsRead(changed)
		s.persist()
	}
	return changed
}

// Delete removes a notification unconditionally. Unknown ids are a no-op.
func (s *Service) Delete(id string) bool {
	removed := s.store.Delete(id)
	if removed {
		s.metrics.NotificationsDeleted("explicit", 1)
		s.persist()
	}
	return removed
}

// DeleteAllRead removes every read notification owned by userID. Returns
// the number removed.
func (s *Service) DeleteAllRead(userID string) int {
	removed := s.store.DeleteAllRead(userID)
	if removed > 0 {
		s.metrics.NotificationsDeleted("bulk", removed)
		s.persist()
	}
	return removed
}

// CleanOld removes read notifications older than the retention window.
// An empty userID sweeps globally. Unread notifications are never removed.
func (s *Service) CleanOld(userID string) int {
	cutoff := time.Now().Add(-s.retention)
	removed := s.store.DeleteReadBefore(cutoff, userID)
	if removed > 0 {
		s.metrics.NotificationsDeleted("cleanup", removed)
		s.persist()
	}
	s.logger.Info("old notification cleanup finished",
		"user", userID,
		"removed", removed,
		"cutoff", cutoff)
	return removed
}

// UserNotifications returns all of a user's notifications, newest first.
func (s *Service) UserNotifications(userID string) []*Notification {
	return s.store.ForUser(userID)
}

// UserUnread returns a user's unread notifications, newest first.
func (s *Service) UserUnread(userID string) []*Notification {
	return s.store.UnreadForUser(userID)
}

// UserUnreadCount returns how many unread notifications a user has.
func (s *Service) UserUnreadCount(userID string) int {
	return s.store.UnreadCount(userID)
}

// UserStats summarizes a user's notifications by read state and type.
func (s *Service) UserStats(userID string) Stats {
	return s.store.StatsForUser(userID)
}

// UserConfig returns a user's delivery configuration, if one exists.
func (s *Service) UserConfig(userID string) (Config, bool) {
	return s.store.Config(userID)
}

// UpdateUserConfig applies a partial configuration update. A user with no
// stored configuration starts from the full-enablement default before the
// patch is applied, matching the seeding behavior for first-seen users.
func (s *Service) UpdateUserConfig(userID string, patch ConfigPatch) Config {
	cfg, ok := s.store.Config(userID)
	if !ok {
		cfg = DefaultConfig(userID)
	}

	if patch.EmailEnabled != nil {
		cfg.EmailEnabled = *patch.EmailEnabled
	}
	if patch.EnabledTypes != nil {
		cfg.EnabledTypes = *patch.EnabledTypes
	}
	if patch.EnabledModules != nil {
		cfg.EnabledModules = *patch.EnabledModules
	}
	if patch.Email != nil {
		cfg.Email = *patch.Email
	}

	s.store.SetConfig(cfg)
	s.persist()
	return cfg
}

// SeedDefaultConfigs creates default configurations for user identifiers not
// yet known. Idempotent; existing configurations are never overwritten.
func (s *Service) SeedDefaultConfigs(userIDs []string) int {
	seeded := s.store.SeedConfigs(userIDs)
	if seeded > 0 {
		s.persist()
	}
	return seeded
}

// SeedUsers returns the configured seed user identifiers, used as the
// broadcast audience by NotifyAll.
func (s *Service) SeedUsers() []string {
	return s.config.SeedUsers
}
