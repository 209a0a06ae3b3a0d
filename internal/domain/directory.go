package domain

import "time"

// DirectoryEntry is a roster record describing a known system actor.
type DirectoryEntry struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	Department  string      `json:"department"`
	AccessLevel AccessTier  `json:"accessLevel"`
	Status      ActorStatus `json:"status"`
	LastLogin   *time.Time  `json:"lastLogin,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Account is the credential-bearing record behind an Actor and its DirectoryEntry.
type Account struct {
	ID            string
	Username      string
	Name          string
	Email         string
	Role          string
	Department    string
	AccessLevel   AccessTier
	Permissions   PermissionSet
	Status        ActorStatus
	CanDelete     bool
	RequiresTwoFA bool
	SecretHash    string
	LastLogin     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Actor projects the account into a session actor.
func (a Account) Actor() Actor {
	actor := Actor{
		ID:            a.ID,
		Username:      a.Username,
		Name:          a.Name,
		Role:          a.Role,
		Department:    a.Department,
		AccessLevel:   a.AccessLevel,
		Permissions:   a.Permissions.Clone(),
		Status:        a.Status,
		CanDelete:     a.CanDelete,
		RequiresTwoFA: a.RequiresTwoFA,
	}
	if a.LastLogin != nil {
		ts := *a.LastLogin
		actor.LastLogin = &ts
	}
	return actor
}

// Entry projects the account into a roster record.
func (a Account) Entry() DirectoryEntry {
	entry := DirectoryEntry{
		ID:          a.ID,
		Username:    a.Username,
		Name:        a.Name,
		Email:       a.Email,
		Role:        a.Role,
		Department:  a.Department,
		AccessLevel: a.AccessLevel,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
	}
	if a.LastLogin != nil {
		ts := *a.LastLogin
		entry.LastLogin = &ts
	}
	return entry
}

// ApplyEntry copies the roster-editable fields of entry onto the account.
func (a *Account) ApplyEntry(entry DirectoryEntry) {
	a.Username = entry.Username
	a.Name = entry.Name
	a.Email = entry.Email
	a.Role = entry.Role
	a.Department = entry.Department
	a.AccessLevel = entry.AccessLevel
	a.Status = entry.Status
}

// MergeEntry overlays the roster-editable fields of entry onto the actor.
func (a Actor) MergeEntry(entry DirectoryEntry) Actor {
	out := a.Clone()
	out.Username = entry.Username
	out.Name = entry.Name
	out.Role = entry.Role
	out.Department = entry.Department
	out.AccessLevel = entry.AccessLevel
	out.Status = entry.Status
	return out
}
