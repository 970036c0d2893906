// Package notification implements the notification center of the HR Hub
// suite: an in-memory, snapshot-persisted log of per-user notifications with
// per-user delivery configuration, read-state tracking and derived views.
package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type categorizes a notification.
type Type string

const (
	// TypeInfo is a general informational notification
	TypeInfo Type = "info"
	// TypeSuccess indicates a completed or approved action
	TypeSuccess Type = "success"
	// TypeWarning indicates something that needs attention
	TypeWarning Type = "warning"
	// TypeError indicates a failed or rejected action
	TypeError Type = "error"
	// TypeApproval indicates an item approved by a manager
	TypeApproval Type = "approval"
	// TypeRequest indicates an incoming request awaiting action
	TypeRequest Type = "request"
	// TypeReminder indicates a scheduled reminder
	TypeReminder Type = "reminder"
	// TypeExpiration indicates an expiring document or deadline
	TypeExpiration Type = "expiration"
)

// AllTypes returns every known notification type.
func AllTypes() []Type {
	return []Type{
		TypeInfo, TypeSuccess, TypeWarning, TypeError,
		TypeApproval, TypeRequest, TypeReminder, TypeExpiration,
	}
}

// Valid reports whether t is a known notification type.
func (t Type) Valid() bool {
	switch t {
	case TypeInfo, TypeSuccess, TypeWarning, TypeError,
		TypeApproval, TypeRequest, TypeReminder, TypeExpiration:
		return true
	}
	return false
}

// Module tags a notification to a functional area of the suite, used for
// delivery filtering and deep-linking from the notification panel.
type Module string

const (
	ModuleDashboard   Module = "dashboard"
	ModuleEmployees   Module = "employees"
	ModuleDepartments Module = "departments"
	ModuleReports     Module = "reports"
	ModuleConfig      Module = "config"
	ModulePermissions Module = "permissions"
	ModuleVacations   Module = "vacations"
	ModuleAttendance  Module = "attendance"
)

// AllModules returns every known module tag.
func AllModules() []Module {
	return []Module{
		ModuleDashboard, ModuleEmployees, ModuleDepartments, ModuleReports,
		ModuleConfig, ModulePermissions, ModuleVacations, ModuleAttendance,
	}
}

// Valid reports whether m is a known module tag.
func (m Module) Valid() bool {
	switch m {
	case ModuleDashboard, ModuleEmployees, ModuleDepartments, ModuleReports,
		ModuleConfig, ModulePermissions, ModuleVacations, ModuleAttendance:
		return true
	}
	return false
}

// Notification is a single notification record owned by one user.
//
// Invariant: ReadAt is non-nil if and only if IsRead is true, and the read
// state only ever transitions unread to read.
type Notification struct {
	// ID is the unique identifier, never reused
	ID string `json:"id"`
	// UserID identifies the recipient (an email in practice)
	UserID string `json:"userId"`
	// Type categorizes the notification
	Type Type `json:"type"`
	// Title is a short summary
	Title string `json:"title"`
	// Message provides the details
	Message string `json:"message"`
	// Module optionally tags the originating functional area
	Module Module `json:"module,omitempty"`
	// ModuleID optionally identifies the module record (e.g. employee id)
	ModuleID string `json:"moduleId,omitempty"`
	// RedirectURL optionally points the panel at a deep-link target
	RedirectURL string `json:"redirectUrl,omitempty"`
	// IsRead tracks whether the recipient has seen the notification
	IsRead bool `json:"isRead"`
	// CreatedAt is the creation timestamp
	CreatedAt time.Time `json:"createdAt"`
	// ReadAt is set when the notification is marked read
	ReadAt *time.Time `json:"readAt,omitempty"`
	// Metadata is an opaque key-value bag, not interpreted here
	Metadata map[string]any `json:"metadata,omitempty"`
}

// New creates an unread notification for userID with a fresh ID and the
// current time as creation timestamp.
func New(userID string, typ Type, title, message string) *Notification {
	return &Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// WithModule sets the module tag and module record id for chaining.
func (n *Notification) WithModule(module Module, moduleID string) *Notification {
	n.Module = module
	n.ModuleID = moduleID
	return n
}

// WithRedirect sets the deep-link target for chaining.
func (n *Notification) WithRedirect(url string) *Notification {
	n.RedirectURL = url
	return n
}

// WithMetadata adds a metadata entry for chaining.
func (n *Notification) WithMetadata(key string, value any) *Notification {
	if n.Metadata == nil {
		n.Metadata = make(map[string]any)
	}
	n.Metadata[key] = value
	return n
}

// markRead transitions the notification to read at the given time.
// Returns false without touching ReadAt if the notification is already read.
func (n *Notification) markRead(at time.Time) bool {
	if n.IsRead {
		return false
	}
	n.IsRead = true
	n.ReadAt = &at
	return true
}

// Clone returns a copy safe to hand to callers. The metadata map is copied
// one level deep; values are opaque to this package and never mutated by it.
func (n *Notification) Clone() *Notification {
	if n == nil {
		return nil
	}
	clone := *n
	if n.ReadAt != nil {
		at := *n.ReadAt
		clone.ReadAt = &at
	}
	if n.Metadata != nil {
		clone.Metadata = make(map[string]any, len(n.Metadata))
		for k, v := range n.Metadata {
			clone.Metadata[k] = v
		}
	}
	return &clone
}

// Config holds one user's delivery configuration. A user with no Config is
// fail-open: every notification is delivered.
type Config struct {
	// UserID identifies the user this configuration belongs to
	UserID string `json:"userId"`
	// EmailEnabled flags email forwarding; delivery itself is out of scope
	EmailEnabled bool `json:"emailNotifications"`
	// EnabledTypes lists the notification types the user accepts
	EnabledTypes []Type `json:"enabledTypes"`
	// EnabledModules lists the module tags the user accepts
	EnabledModules []Module `json:"enabledModules"`
	// Email optionally overrides the forwarding address
	Email string `json:"email,omitempty"`
}

// DefaultConfig returns the full-enablement configuration seeded for a user
// identifier the first time it is seen.
func DefaultConfig(userID string) Config {
	return Config{
		UserID:         userID,
		EmailEnabled:   false,
		EnabledTypes:   AllTypes(),
		EnabledModules: AllModules(),
		Email:          userID,
	}
}

// Allows reports whether a notification of the given type and module tag
// should be delivered under this configuration. An empty module means the
// notification carries no module tag and only the type gate applies.
func (c *Config) Allows(typ Type, module Module) bool {
	typeEnabled := false
	for _, t := range c.EnabledTypes {
		if t == typ {
			typeEnabled = true
			break
		}
	}
	if !typeEnabled {
		return false
	}
	if module == "" {
		return true
	}
	for _, m := range c.EnabledModules {
		if m == module {
			return true
		}
	}
	return false
}

// ConfigPatch describes a partial configuration update. Nil fields are left
// untouched; non-nil fields replace the stored value wholesale.
type ConfigPatch struct {
	EmailEnabled   *bool     `json:"emailNotifications,omitempty"`
	EnabledTypes   *[]Type   `json:"enabledTypes,omitempty"`
	EnabledModules *[]Module `json:"enabledModules,omitempty"`
	Email          *string   `json:"email,omitempty"`
}

// CreateParams is the creation request accepted by the service. A request
// fans out to one delivery-filter evaluation per recipient.
type CreateParams struct {
	// UserIDs lists the recipients
	UserIDs []string `json:"userIds"`
	// Type categorizes the notification
	Type Type `json:"type"`
	// Title is a short summary
	Title string `json:"title"`
	// Message provides the details
	Message string `json:"message"`
	// Module optionally tags the originating functional area
	Module Module `json:"module,omitempty"`
	// ModuleID optionally identifies the module record
	ModuleID string `json:"moduleId,omitempty"`
	// RedirectURL optionally points at a deep-link target
	RedirectURL string `json:"redirectUrl,omitempty"`
	// Metadata is copied through to every created record
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Stats summarizes one user's notifications. ByType only contains types with
// at least one occurrence.
type Stats struct {
	Total  int          `json:"total"`
	Unread int          `json:"unread"`
	ByType map[Type]int `json:"byType"`
}
