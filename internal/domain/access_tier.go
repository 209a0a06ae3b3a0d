package domain

import (
	"encoding/json"
	"fmt"
)

// AccessTier is the coarse role classification used to gate whole views.
type AccessTier string

const (
	AccessTierBoard               AccessTier = "board"
	AccessTierManagement          AccessTier = "management"
	AccessTierSales               AccessTier = "sales"
	AccessTierAdministration      AccessTier = "administration"
	AccessTierTechnicalOperations AccessTier = "technical_operations"
)

// AccessTiers lists every tier.
func AccessTiers() []AccessTier {
	return []AccessTier{
		AccessTierBoard,
		AccessTierManagement,
		AccessTierSales,
		AccessTierAdministration,
		AccessTierTechnicalOperations,
	}
}

// ParseAccessTier validates a raw tier value.
func ParseAccessTier(raw string) (AccessTier, error) {
	for _, tier := range AccessTiers() {
		if string(tier) == raw {
			return tier, nil
		}
	}
	return "", fmt.Errorf("unknown access tier %q", raw)
}

func (t *AccessTier) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	tier, err := ParseAccessTier(raw)
	if err != nil {
		return err
	}
	*t = tier
	return nil
}
