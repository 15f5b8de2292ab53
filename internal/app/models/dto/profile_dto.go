package dto

import "github.com/adisharma/clubhub/internal/app/models"

// ProfileRequest carries optional profile fields for create and update.
// Omitted fields are never written to storage.
type ProfileRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	RollNo     string   `json:"rollNo"`
	Year       string   `json:"year"`
	Branch     string   `json:"branch"`
	Mobile     string   `json:"mobile"`
	IsGuest    *bool    `json:"isGuest"`
	AdminClubs []string `json:"adminClubs"`
}

// Patch converts the request into the service-level profile patch
func (r *ProfileRequest) Patch() *models.ProfilePatch {
	return &models.ProfilePatch{
		Name:       r.Name,
		Email:      r.Email,
		Role:       models.RoleType(r.Role),
		RollNo:     r.RollNo,
		Year:       r.Year,
		Branch:     r.Branch,
		Mobile:     r.Mobile,
		IsGuest:    r.IsGuest,
		AdminClubs: r.AdminClubs,
	}
}
