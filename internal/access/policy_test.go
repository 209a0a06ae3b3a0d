package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sq-invest/crm-service/internal/domain"
)

func TestSettingsGate(t *testing.T) {
	assert.True(t, Allowed(ViewSettings, domain.AccessTierBoard))
	assert.True(t, Allowed(ViewSettings, domain.AccessTierManagement))
	assert.True(t, Allowed(ViewSettings, domain.AccessTierAdministration))
	assert.False(t, Allowed(ViewSettings, domain.AccessTierSales))
	assert.False(t, Allowed(ViewSettings, domain.AccessTierTechnicalOperations))
}

func TestRolesTabIsBoardOnly(t *testing.T) {
	for _, tier := range domain.AccessTiers() {
		assert.Equal(t, tier == domain.AccessTierBoard, Allowed(ViewSettingsRoles, tier), tier)
	}
}

func TestDirectoryActions(t *testing.T) {
	assert.True(t, Allowed(ViewDirectoryEdit, domain.AccessTierAdministration))
	assert.False(t, Allowed(ViewDirectoryDelete, domain.AccessTierAdministration))
	assert.True(t, Allowed(ViewDirectoryDelete, domain.AccessTierBoard))
	assert.False(t, Allowed(ViewDirectoryEdit, domain.AccessTierManagement))
}

func TestUnknownViewDenied(t *testing.T) {
	assert.False(t, Known(View("reports.secret")))
	for _, tier := range domain.AccessTiers() {
		assert.False(t, Allowed(View("reports.secret"), tier))
	}
}
