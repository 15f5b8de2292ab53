package dto

import "github.com/adisharma/clubhub/internal/app/models"

// TeamMemberInfo identifies one team member
type TeamMemberInfo struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Member converts the request into the model shape
func (m *TeamMemberInfo) Member() models.TeamMember {
	return models.TeamMember{
		UserID: m.ID,
		Name:   m.Name,
		Email:  m.Email,
	}
}

// CreateTeamRequest creates a team with its creator as sole member
type CreateTeamRequest struct {
	Name    string         `json:"name" binding:"required"`
	Creator TeamMemberInfo `json:"creator" binding:"required"`
}

// JoinTeamRequest adds a member to an existing team
type JoinTeamRequest struct {
	Member TeamMemberInfo `json:"member" binding:"required"`
}

// TeamIDResponse returns the id of a newly created team
type TeamIDResponse struct {
	ID string `json:"id"`
}
