package dto

import "github.com/sq-invest/crm-service/internal/domain"

// DirectoryEntryRequest payload for PUT /directory/:id.
type DirectoryEntryRequest struct {
	Username    string `json:"username" validate:"required,max=64"`
	Name        string `json:"name" validate:"required,max=120"`
	Email       string `json:"email" validate:"omitempty,email"`
	Role        string `json:"role" validate:"max=120"`
	Department  string `json:"department" validate:"max=120"`
	AccessLevel string `json:"accessLevel" validate:"required,oneof=board management sales administration technical_operations"`
	Status      string `json:"status" validate:"required,oneof=active inactive"`
}

// Entry converts the request into a roster record for id.
func (r DirectoryEntryRequest) Entry(id string) domain.DirectoryEntry {
	return domain.DirectoryEntry{
		ID:          id,
		Username:    r.Username,
		Name:        r.Name,
		Email:       r.Email,
		Role:        r.Role,
		Department:  r.Department,
		AccessLevel: domain.AccessTier(r.AccessLevel),
		Status:      domain.ActorStatus(r.Status),
	}
}
