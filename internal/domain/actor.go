package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrIncompleteActor reports a record missing its identity, tier or status.
var ErrIncompleteActor = errors.New("incomplete actor record")

// ActorStatus marks whether an account may sign in.
type ActorStatus string

const (
	ActorStatusActive   ActorStatus = "active"
	ActorStatusInactive ActorStatus = "inactive"
)

// ParseActorStatus validates a raw status value.
func ParseActorStatus(raw string) (ActorStatus, error) {
	switch ActorStatus(raw) {
	case ActorStatusActive, ActorStatusInactive:
		return ActorStatus(raw), nil
	}
	return "", fmt.Errorf("unknown actor status %q", raw)
}

func (s *ActorStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	status, err := ParseActorStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Actor is the signed-in user. Its JSON form is the persisted session record.
type Actor struct {
	ID            string        `json:"id"`
	Username      string        `json:"username"`
	Name          string        `json:"name"`
	Role          string        `json:"role"`
	Department    string        `json:"department"`
	AccessLevel   AccessTier    `json:"accessLevel"`
	Permissions   PermissionSet `json:"permissions"`
	Status        ActorStatus   `json:"status"`
	CanDelete     bool          `json:"canDelete"`
	RequiresTwoFA bool          `json:"requiresTwoFA"`
	LastLogin     *time.Time    `json:"lastLogin,omitempty"`
}

// Clone returns a deep copy.
func (a Actor) Clone() Actor {
	out := a
	out.Permissions = a.Permissions.Clone()
	if a.LastLogin != nil {
		ts := *a.LastLogin
		out.LastLogin = &ts
	}
	return out
}

// Equal compares two actors field by field.
func (a Actor) Equal(other Actor) bool {
	if a.ID != other.ID || a.Username != other.Username || a.Name != other.Name ||
		a.Role != other.Role || a.Department != other.Department ||
		a.AccessLevel != other.AccessLevel || a.Status != other.Status ||
		a.CanDelete != other.CanDelete || a.RequiresTwoFA != other.RequiresTwoFA {
		return false
	}
	if !a.Permissions.Equal(other.Permissions) {
		return false
	}
	switch {
	case a.LastLogin == nil && other.LastLogin == nil:
		return true
	case a.LastLogin == nil || other.LastLogin == nil:
		return false
	}
	return a.LastLogin.Equal(*other.LastLogin)
}

// IsActive reports whether the actor may sign in.
func (a Actor) IsActive() bool {
	return a.Status == ActorStatusActive
}

// Validate reports whether a decoded record describes a real actor. Fields absent
// from the JSON never reach their UnmarshalJSON, so they are checked here.
func (a Actor) Validate() error {
	if a.ID == "" || a.Username == "" {
		return ErrIncompleteActor
	}
	if _, err := ParseAccessTier(string(a.AccessLevel)); err != nil {
		return fmt.Errorf("%w: %v", ErrIncompleteActor, err)
	}
	if _, err := ParseActorStatus(string(a.Status)); err != nil {
		return fmt.Errorf("%w: %v", ErrIncompleteActor, err)
	}
	return nil
}
