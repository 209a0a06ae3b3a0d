// Package access decides which access tiers may open which views.
package access

import "github.com/sq-invest/crm-service/internal/domain"

// View names a gated screen, tab or administrative action.
type View string

const (
	ViewSettings         View = "settings"
	ViewSettingsUsers    View = "settings.users"
	ViewSettingsRoles    View = "settings.roles"
	ViewSettingsSystem   View = "settings.system"
	ViewSettingsSecurity View = "settings.security"
	ViewSettingsAudit    View = "settings.audit"
	ViewDirectoryEdit    View = "directory.edit"
	ViewDirectoryDelete  View = "directory.delete"
)

var policy = map[View][]domain.AccessTier{
	ViewSettings:         {domain.AccessTierBoard, domain.AccessTierManagement, domain.AccessTierAdministration},
	ViewSettingsUsers:    {domain.AccessTierBoard, domain.AccessTierAdministration},
	ViewSettingsRoles:    {domain.AccessTierBoard},
	ViewSettingsSystem:   {domain.AccessTierBoard, domain.AccessTierAdministration},
	ViewSettingsSecurity: {domain.AccessTierBoard, domain.AccessTierAdministration},
	ViewSettingsAudit:    {domain.AccessTierBoard, domain.AccessTierAdministration},
	ViewDirectoryEdit:    {domain.AccessTierBoard, domain.AccessTierAdministration},
	ViewDirectoryDelete:  {domain.AccessTierBoard},
}

// Allowed reports whether tier may open view. Unknown views are denied.
func Allowed(view View, tier domain.AccessTier) bool {
	for _, t := range policy[view] {
		if t == tier {
			return true
		}
	}
	return false
}

// Known reports whether view is part of the policy table.
func Known(view View) bool {
	_, ok := policy[view]
	return ok
}

// Tiers returns the tiers allowed to open view.
func Tiers(view View) []domain.AccessTier {
	return append([]domain.AccessTier(nil), policy[view]...)
}
