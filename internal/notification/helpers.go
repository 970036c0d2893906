package notification

import "fmt"

// Domain notifier entry points. Business actions elsewhere in the suite call
// these as side effects; each is a thin wrapper over Create so every one of
// them goes through the delivery filter and batch persistence.

// NotifyNewEmployee notifies the given recipients that an employee record
// was created, deep-linking to the employee editor when an id is known.
func (s *Service) NotifyNewEmployee(recipients []string, employeeName, departmentName, employeeID string) []*Notification {
	redirect := "/employees"
	if employeeID != "" {
		redirect = fmt.Sprintf("/employees/edit/%s", employeeID)
	}
	return s.Create(CreateParams{
		UserIDs:     recipients,
		Type:        TypeInfo,
		Title:       "New Employee Registered",
		Message:     fmt.Sprintf("%s has been registered in the %s department", employeeName, departmentName),
		Module:      ModuleEmployees,
		ModuleID:    employeeID,
		RedirectURL: redirect,
	})
}

// NotifyPermissionRequest notifies the given recipients about a new
// permission request awaiting review.
func (s *Service) NotifyPermissionRequest(recipients []string, employeeName, permissionType, permissionID string) []*Notification {
	redirect := "/permissions"
	if permissionID != "" {
		redirect = fmt.Sprintf("/permissions/%s", permissionID)
	}
	return s.Create(CreateParams{
		UserIDs:     recipients,
		Type:        TypeRequest,
		Title:       "New Permission Request",
		Message:     fmt.Sprintf("%s has requested a permission of type: %s", employeeName, permissionType),
		Module:      ModulePermissions,
		ModuleID:    permissionID,
		RedirectURL: redirect,
	})
}

// NotifyApproval tells a user that their request was approved.
func (s *Service) NotifyApproval(userID, title, message, redirectURL string) []*Notification {
	return s.Create(CreateParams{
		UserIDs:     []string{userID},
		Type:        TypeSuccess,
		Title:       title,
		Message:     message,
		RedirectURL: redirectURL,
	})
}

// NotifyRejection tells a user that their request was rejected.
func (s *Service) NotifyRejection(userID, title, message, redirectURL string) []*Notification {
	return s.Create(CreateParams{
		UserIDs:     []string{userID},
		Type:        TypeError,
		Title:       title,
		Message:     message,
		RedirectURL: redirectURL,
	})
}

// NotifyReminder sends a reminder, optionally tagged with a module.
func (s *Service) NotifyReminder(userID, title, message string, module Module) []*Notification {
	return s.Create(CreateParams{
		UserIDs: []string{userID},
		Type:    TypeReminder,
		Title:   title,
		Message: message,
		Module:  module,
	})
}

// NotifyExpiration warns a user about an expiring document or deadline.
func (s *Service) NotifyExpiration(userID, title, message string, module Module) []*Notification {
	return s.Create(CreateParams{
		UserIDs: []string{userID},
		Type:    TypeExpiration,
		Title:   title,
		Message: message,
		Module:  module,
	})
}

// NotifyWarning sends a warning notification to one user.
func (s *Service) NotifyWarning(userID, title, message string) []*Notification {
	return s.Create(CreateParams{
		UserIDs: []string{userID},
		Type:    TypeWarning,
		Title:   title,
		Message: message,
	})
}

// NotifyAll broadcasts to every configured seed user. Per-user delivery
// configuration still applies to each recipient.
func (s *Service) NotifyAll(title, message string, typ Type) []*Notification {
	if typ == "" {
		typ = TypeInfo
	}
	return s.Create(CreateParams{
		UserIDs: s.SeedUsers(),
		Type:    typ,
		Title:   title,
		Message: message,
	})
}

// CreateSamples seeds a welcome set of notifications for a new user.
func (s *Service) CreateSamples(userID string) []*Notification {
	samples := []CreateParams{
		{
			UserIDs: []string{userID},
			Type:    TypeInfo,
			Title:   "Welcome to HR Hub",
			Message: "This is your notification center for the HR suite",
			Module:  ModuleDashboard,
		},
		{
			UserIDs:     []string{userID},
			Type:        TypeSuccess,
			Title:       "Request Approved",
			Message:     "Your vacation request has been approved",
			Module:      ModuleVacations,
			RedirectURL: "/vacations",
		},
		{
			UserIDs: []string{userID},
			Type:    TypeWarning,
			Title:   "Pending Documentation",
			Message: "You have documents left to complete",
			Module:  ModuleEmployees,
		},
		{
			UserIDs: []string{userID},
			Type:    TypeReminder,
			Title:   "Attendance Reminder",
			Message: "Don't forget to clock in today",
			Module:  ModuleAttendance,
		},
	}

	var created []*Notification
	for _, sample := range samples {
		created = append(created, s.Create(sample)...)
	}
	return created
}
