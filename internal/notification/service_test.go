package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestService builds a memory-only service with logging silenced.
func newTestService(t *testing.T, config *ServiceConfig) *Service {
	t.Helper()
	svc := NewService(config, nil)
	svc.logger = discardLogger()
	return svc
}

// assertReadInvariant verifies ReadAt is set iff IsRead for all of a user's
// notifications.
func assertReadInvariant(t *testing.T, svc *Service, userID string) {
	t.Helper()
	for _, n := range svc.UserNotifications(userID) {
		if n.IsRead {
			require.NotNil(t, n.ReadAt, "read notification %s must have ReadAt", n.ID)
		} else {
			require.Nil(t, n.ReadAt, "unread notification %s must not have ReadAt", n.ID)
		}
	}
}

func TestServiceCreateFansOut(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	created := svc.Create(CreateParams{
		UserIDs: []string{"u1", "u2"},
		Type:    TypeInfo,
		Title:   "Title",
		Message: "Message",
	})
	require.Len(t, created, 2, "One record per recipient")

	for _, n := range created {
		require.NotEmpty(t, n.ID)
		require.False(t, n.IsRead)
		require.Nil(t, n.ReadAt)
		require.False(t, n.CreatedAt.IsZero())
	}
	require.NotEqual(t, created[0].ID, created[1].ID, "Each record gets its own id")

	require.Len(t, svc.UserNotifications("u1"), 1)
	require.Len(t, svc.UserNotifications("u2"), 1)
}

func TestServiceCreateEmptyRecipients(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	created := svc.Create(CreateParams{
		Type:    TypeInfo,
		Title:   "Title",
		Message: "Message",
	})
	require.Empty(t, created, "Empty recipient list yields an empty result, not an error")
}

func TestServiceCreateMetadataIsolatedPerRecipient(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	created := svc.Create(CreateParams{
		UserIDs:  []string{"u1", "u2"},
		Type:     TypeInfo,
		Title:    "T",
		Message:  "M",
		Metadata: map[string]any{"key": "value"},
	})
	require.Len(t, created, 2)

	created[0].Metadata["key"] = "mutated"
	require.Equal(t, "value", created[1].Metadata["key"], "Recipients must not share a metadata map")
}

func TestServiceDeliveryFiltering(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	svc.store.SetConfig(Config{
		UserID:         "u1",
		EnabledTypes:   []Type{TypeSuccess},
		EnabledModules: []Module{ModuleEmployees},
	})

	// Disabled type: zero records
	created := svc.Create(CreateParams{
		UserIDs: []string{"u1"},
		Type:    TypeWarning,
		Title:   "T",
		Message: "M",
	})
	require.Empty(t, created, "Disabled type must be suppressed")

	// Enabled type and module: one record
	created = svc.Create(CreateParams{
		UserIDs: []string{"u1"},
		Type:    TypeSuccess,
		Title:   "T",
		Message: "M",
		Module:  ModuleEmployees,
	})
	require.Len(t, created, 1)

	// Enabled type, disabled module: suppressed
	created = svc.Create(CreateParams{
		UserIDs: []string{"u1"},
		Type:    TypeSuccess,
		Title:   "T",
		Message: "M",
		Module:  ModuleVacations,
	})
	require.Empty(t, created, "Disabled module must be suppressed")

	// Enabled type, no module tag: only the type gate applies
	created = svc.Create(CreateParams{
		UserIDs: []string{"u1"},
		Type:    TypeSuccess,
		Title:   "T",
		Message: "M",
	})
	require.Len(t, created, 1, "Absent module passes the module gate")
}

func TestServiceFailOpenWithoutConfig(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	created := svc.Create(CreateParams{
		UserIDs: []string{"unconfigured"},
		Type:    TypeExpiration,
		Title:   "T",
		Message: "M",
		Module:  ModuleReports,
	})
	require.Len(t, created, 1, "A user with no config receives everything")
}

func TestServiceBroadcastPartialSuppression(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	svc.store.SetConfig(Config{
		UserID:         "u1",
		EnabledTypes:   []Type{TypeInfo}, // requested type disabled
		EnabledModules: AllModules(),
	})

	created := svc.Create(CreateParams{
		UserIDs: []string{"u1", "u2"},
		Type:    TypeWarning,
		Title:   "T",
		Message: "M",
	})
	require.Len(t, created, 1, "Only the unfiltered recipient gets a record")
	require.Equal(t, "u2", created[0].UserID)
}

func TestServiceMarkAsReadIdempotent(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	created := svc.Create(CreateParams{
		UserIDs: []string{"u1"},
		Type:    TypeInfo,
		Title:   "T",
		Message: "M",
	})
	require.Len(t, created, 1)
	id := created[0].ID

	require.True(t, svc.MarkAsRead(id))
	first, ok := svc.Get(id)
	require.True(t, ok)
	require.True(t, first.IsRead)
	require.NotNil(t, first.ReadAt)
	assertReadInvariant(t, svc, "u1")

	// Second call: same end state, ReadAt untouched
	require.False(t, svc.MarkAsRead(id))
	second, ok := svc.Get(id)
	require.True(t, ok)
	require.True(t, second.ReadAt.Equal(*first.ReadAt), "Repeated MarkAsRead must not change ReadAt")

	// Unknown id is a no-op
	require.False(t, svc.MarkAsRead("no-such-id"))
}

func TestServiceUnreadCountMatchesUnreadList(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	created := svc.Create(CreateParams{
		UserIDs: []string{"u1", "u1", "u1"},
		Type:    TypeInfo,
		Title:   "T",
		Message: "M",
	})
	require.Len(t, created, 3)

	require.Equal(t, len(svc.UserUnread("u1")), svc.UserUnreadCount("u1"))

	svc.MarkAsRead(created[0].ID)
	require.Equal(t, len(svc.UserUnread("u1")), svc.UserUnreadCount("u1"))

	svc.MarkAllAsRead("u1")
	require.Equal(t, 0, svc.UserUnreadCount("u1"))
	require.Empty(t, svc.UserUnread("u1"))
}

func TestServiceSortOrderNewestFirst(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	base := time.Now()

	n1 := New("u1", TypeInfo, "first", "m")
	n1.CreatedAt = base
	n2 := New("u1", TypeInfo, "second", "m")
	n2.CreatedAt = base.Add(time.Minute)
	n3 := New("u1", TypeInfo, "third", "m")
	n3.CreatedAt = base.Add(2 * time.Minute)

	// Insert out of order
	svc.store.SaveBatch([]*Notification{n2, n3, n1})

	all := svc.UserNotifications("u1")
	require.Len(t, all, 3)
	require.Equal(t, n3.ID, all[0].ID, "Newest notification comes first")
	require.Equal(t, n2.ID, all[1].ID)
	require.Equal(t, n1.ID, all[2].ID)

	unread := svc.UserUnread("u1")
	require.Len(t, unread, 3)
	require.Equal(t, n3.ID, unread[0].ID, "Unread list follows the same ordering")
}

func TestServiceMarkAllAsReadScenario(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	for _, typ := range []Type{TypeInfo, TypeSuccess, TypeWarning} {
		svc.Create(CreateParams{
			UserIDs: []string{"u1"},
			Type:    typ,
			Title:   "T",
			Message: "M",
		})
	}

	changed := svc.MarkAllAsRead("u1")
	require.Equal(t, 3, changed)
	require.Equal(t, 0, svc.UserUnreadCount("u1"))

	stats := svc.UserStats("u1")
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 0, stats.Unread)
	assertReadInvariant(t, svc, "u1")
}

func TestServiceStatsByType(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	for _, typ := range []Type{TypeInfo, TypeInfo, TypeSuccess} {
		svc.Create(CreateParams{
			UserIDs: []string{"u1"},
			Type:    typ,
			Title:   "T",
			Message: "M",
		})
	}
	svc.Create(CreateParams{
		UserIDs: []string{"u2"},
		Type:    TypeError,
		Title:   "T",
		Message: "M",
	})

	stats := svc.UserStats("u1")
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 3, stats.Unread)
	require.Equal(t, 2, stats.ByType[TypeInfo])
	require.Equal(t, 1, stats.ByType[TypeSuccess])
	require.NotContains(t, stats.ByType, TypeError, "Types with zero occurrences are absent, not zero")
	require.NotContains(t, stats.ByType, TypeWarning)
}

func TestServiceDeleteAllReadScenario(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	created := svc.Create(CreateParams{
		UserIDs: []string{"u1", "u1", "u1"},
		Type:    TypeInfo,
		Title:   "T",
		Message: "M",
	})
	require.Len(t, created, 3)

	svc.MarkAsRead(created[0].ID)
	svc.MarkAsRead(created[1].ID)

	removed := svc.DeleteAllRead("u1")
	require.Equal(t, 2, removed)

	remaining := svc.UserNotifications("u1")
	require.Len(t, remaining, 1, "Exactly the unread notification is left")
	require.Equal(t, created[2].ID, remaining[0].ID)
	require.False(t, remaining[0].IsRead)
}

func TestServiceCleanOld(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	oldRead := New("u1", TypeInfo, "old read", "m")
	oldRead.CreatedAt = time.Now().Add(-40 * 24 * time.Hour)
	oldUnread := New("u1", TypeInfo, "old unread", "m")
	oldUnread.CreatedAt = time.Now().Add(-40 * 24 * time.Hour)
	fresh := New("u1", TypeInfo, "fresh", "m")
	svc.store.SaveBatch([]*Notification{oldRead, oldUnread, fresh})
	svc.MarkAsRead(oldRead.ID)
	svc.MarkAsRead(fresh.ID)

	removed := svc.CleanOld("")
	require.Equal(t, 1, removed, "Only read notifications past retention are removed")

	_, ok := svc.Get(oldRead.ID)
	require.False(t, ok)
	_, ok = svc.Get(oldUnread.ID)
	require.True(t, ok, "Unread notifications survive cleanup regardless of age")
	_, ok = svc.Get(fresh.ID)
	require.True(t, ok)
}

func TestServiceUpdateUserConfigPatch(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &ServiceConfig{SeedUsers: []string{"u1"}})

	enabled := []Type{TypeError, TypeWarning}
	cfg := svc.UpdateUserConfig("u1", ConfigPatch{EnabledTypes: &enabled})
	require.Equal(t, enabled, cfg.EnabledTypes)
	require.Equal(t, AllModules(), cfg.EnabledModules, "Unpatched fields keep their value")
	require.False(t, cfg.EmailEnabled)

	email := true
	cfg = svc.UpdateUserConfig("u1", ConfigPatch{EmailEnabled: &email})
	require.True(t, cfg.EmailEnabled)
	require.Equal(t, enabled, cfg.EnabledTypes, "Earlier patch survives later patches")

	// Unknown user starts from the full-enablement default
	cfg = svc.UpdateUserConfig("new-user", ConfigPatch{EmailEnabled: &email})
	require.Equal(t, AllTypes(), cfg.EnabledTypes)
	require.True(t, cfg.EmailEnabled)
}

func TestServiceSeedDefaultConfigs(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &ServiceConfig{SeedUsers: []string{"a@x", "b@x"}})

	_, ok := svc.UserConfig("a@x")
	require.True(t, ok, "Construction seeds the configured users")
	_, ok = svc.UserConfig("b@x")
	require.True(t, ok)

	seeded := svc.SeedDefaultConfigs([]string{"a@x", "c@x"})
	require.Equal(t, 1, seeded)
	_, ok = svc.UserConfig("c@x")
	require.True(t, ok)
}
