package services

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/adisharma/clubhub/internal/app/repositories"
	"github.com/adisharma/clubhub/internal/pkg/auth"
)

var errMissingSession = errors.New("no session user")

// Services holds all the service instances
type Services struct {
	Auth          AuthService
	Profiles      ProfileService
	Registrations RegistrationService
	Teams         TeamService
}

// NewServices wires all services over the repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, logger zerolog.Logger) *Services {
	return &Services{
		Auth:          NewAuthService(repos.Accounts, repos.Tokens, jwtService, logger.With().Str("service", "auth").Logger()),
		Profiles:      NewProfileService(repos.Profiles, logger.With().Str("service", "profile").Logger()),
		Registrations: NewRegistrationService(repos.Registrations, repos.Payments, logger.With().Str("service", "registration").Logger()),
		Teams:         NewTeamService(repos.Teams, logger.With().Str("service", "team").Logger()),
	}
}
