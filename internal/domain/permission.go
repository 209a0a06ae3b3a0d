package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPermission is returned when a token is not part of the permission vocabulary.
var ErrUnknownPermission = errors.New("unknown permission")

// Permission is a fine-grained capability checked against the signed-in actor.
type Permission string

const (
	PermissionContacts       Permission = "contacts"
	PermissionDeals          Permission = "deals"
	PermissionReports        Permission = "reports"
	PermissionAnalytics      Permission = "analytics"
	PermissionCalendar       Permission = "calendar"
	PermissionDocuments      Permission = "documents"
	PermissionAdmin          Permission = "admin"
	PermissionSystemConfig   Permission = "system_config"
	PermissionUserManagement Permission = "user_management"
)

// AllAccessToken is the serialized form of the all-access grant.
const AllAccessToken = "all_access"

var knownPermissions = map[Permission]struct{}{
	PermissionContacts:       {},
	PermissionDeals:          {},
	PermissionReports:        {},
	PermissionAnalytics:      {},
	PermissionCalendar:       {},
	PermissionDocuments:      {},
	PermissionAdmin:          {},
	PermissionSystemConfig:   {},
	PermissionUserManagement: {},
}

// ParsePermission converts a token into a Permission.
func ParsePermission(token string) (Permission, error) {
	p := Permission(token)
	if _, ok := knownPermissions[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPermission, token)
	}
	return p, nil
}

// PermissionSet is either the all-access grant or an explicit set of permissions.
// An all-access set may still list explicit permissions; they never change the outcome.
type PermissionSet struct {
	allAccess bool
	granted   map[Permission]struct{}
}

// AllAccess returns a set satisfying every permission check.
func AllAccess(extra ...Permission) PermissionSet {
	set := Permissions(extra...)
	set.allAccess = true
	return set
}

// Permissions returns an explicit set.
func Permissions(perms ...Permission) PermissionSet {
	set := PermissionSet{granted: make(map[Permission]struct{}, len(perms))}
	for _, p := range perms {
		set.granted[p] = struct{}{}
	}
	return set
}

// ParsePermissionSet builds a set from raw tokens, rejecting unknown ones.
func ParsePermissionSet(tokens []string) (PermissionSet, error) {
	set := PermissionSet{granted: make(map[Permission]struct{}, len(tokens))}
	for _, token := range tokens {
		if token == AllAccessToken {
			set.allAccess = true
			continue
		}
		p, err := ParsePermission(token)
		if err != nil {
			return PermissionSet{}, err
		}
		set.granted[p] = struct{}{}
	}
	return set, nil
}

// IsAllAccess reports whether the set carries the all-access grant.
func (s PermissionSet) IsAllAccess() bool {
	return s.allAccess
}

// Allows reports whether p is granted.
func (s PermissionSet) Allows(p Permission) bool {
	if s.allAccess {
		return true
	}
	_, ok := s.granted[p]
	return ok
}

// AllowsToken checks a raw token. All-access grants every token, including
// ones outside the vocabulary; otherwise unknown tokens are denied.
func (s PermissionSet) AllowsToken(token string) bool {
	if s.allAccess {
		return true
	}
	p, err := ParsePermission(token)
	if err != nil {
		return false
	}
	return s.Allows(p)
}

// Tokens returns the serialized tokens, all_access first, the rest sorted.
func (s PermissionSet) Tokens() []string {
	tokens := make([]string, 0, len(s.granted)+1)
	for p := range s.granted {
		tokens = append(tokens, string(p))
	}
	sort.Strings(tokens)
	if s.allAccess {
		tokens = append([]string{AllAccessToken}, tokens...)
	}
	return tokens
}

// Clone returns an independent copy.
func (s PermissionSet) Clone() PermissionSet {
	out := PermissionSet{allAccess: s.allAccess, granted: make(map[Permission]struct{}, len(s.granted))}
	for p := range s.granted {
		out.granted[p] = struct{}{}
	}
	return out
}

// Equal compares two sets.
func (s PermissionSet) Equal(other PermissionSet) bool {
	if s.allAccess != other.allAccess || len(s.granted) != len(other.granted) {
		return false
	}
	for p := range s.granted {
		if _, ok := other.granted[p]; !ok {
			return false
		}
	}
	return true
}

func (s PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Tokens())
}

func (s *PermissionSet) UnmarshalJSON(data []byte) error {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	parsed, err := ParsePermissionSet(tokens)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
