package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adisharma/clubhub/internal/app/models"
	"github.com/adisharma/clubhub/internal/pkg/apperrors"
)

// TeamStore is the team persistence boundary
type TeamStore interface {
	Insert(ctx context.Context, team *models.Team) (string, error)
	FindByID(ctx context.Context, clubID, eventID, id string) (*models.Team, error)
	AddMember(ctx context.Context, clubID, eventID, id string, member models.TeamMember) (bool, error)
	SearchByNamePrefix(ctx context.Context, clubID, eventID, text string) ([]models.Team, error)
}

// TeamService manages teams for team-based events
type TeamService interface {
	Create(ctx context.Context, clubID, eventID, name string, creator models.TeamMember) (string, error)
	Join(ctx context.Context, clubID, eventID, teamID string, member models.TeamMember) error
	Search(ctx context.Context, clubID, eventID, text string) ([]models.Team, error)
}

// teamServiceImpl implements TeamService
type teamServiceImpl struct {
	teams  TeamStore
	logger zerolog.Logger
}

// NewTeamService creates a new TeamService
func NewTeamService(teams TeamStore, logger zerolog.Logger) TeamService {
	return &teamServiceImpl{
		teams:  teams,
		logger: logger,
	}
}

// Create writes a new team with the creator as its sole initial member
// and returns the team id.
func (s *teamServiceImpl) Create(ctx context.Context, clubID, eventID, name string, creator models.TeamMember) (string, error) {
	if name == "" {
		return "", apperrors.NewValidationError("team name is required")
	}
	if creator.UserID == "" {
		return "", apperrors.NewValidationError("team creator is required")
	}

	team := &models.Team{
		EventID:   eventID,
		ClubID:    clubID,
		Name:      name,
		Members:   []models.TeamMember{creator},
		CreatedBy: creator.UserID,
	}
	id, err := s.teams.Insert(ctx, team)
	if err != nil {
		return "", fmt.Errorf("create team failed: %w", err)
	}
	return id, nil
}

// Join adds a member to a team. Joining a team the member already
// belongs to is a silent no-op; joining a missing team is an error.
// The append is a single guarded update, so concurrent joins cannot
// drop each other.
func (s *teamServiceImpl) Join(ctx context.Context, clubID, eventID, teamID string, member models.TeamMember) error {
	if member.UserID == "" {
		return apperrors.NewValidationError("member id is required")
	}

	matched, err := s.teams.AddMember(ctx, clubID, eventID, teamID, member)
	if err != nil {
		return fmt.Errorf("join team failed: %w", err)
	}
	if matched {
		return nil
	}

	// No document matched: either the team is missing or the member is
	// already on it.
	team, err := s.teams.FindByID(ctx, clubID, eventID, teamID)
	if err != nil {
		return fmt.Errorf("join team failed: %w", err)
	}
	if team == nil {
		return apperrors.New(apperrors.ErrTeamNotFound, "team not found")
	}
	return nil
}

// Search returns the event's teams whose name starts with the given
// text, case-sensitively.
func (s *teamServiceImpl) Search(ctx context.Context, clubID, eventID, text string) ([]models.Team, error) {
	return s.teams.SearchByNamePrefix(ctx, clubID, eventID, text)
}
