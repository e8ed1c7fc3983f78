package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"hackhive/internal/models"
	"hackhive/internal/pkg"
	"hackhive/internal/repository"
)

const DefaultMaxMembers = 4

// TeamService enforces team membership rules: one leader per team, the
// member cap checked at join time, no duplicate membership.
type TeamService struct {
	repo *repository.Repository
}

func NewTeamService(repo *repository.Repository) *TeamService {
	return &TeamService{repo: repo}
}

// CreateTeam binds the team to an existing hackathon and makes the creator
// its leader in the same transaction.
func (s *TeamService) CreateTeam(ctx context.Context, team *models.Team, creatorID uuid.UUID) (*models.Team, error) {
	if _, err := repository.GetCompetition[models.Hackathon](ctx, s.repo, team.HackathonID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, pkg.NotFound("hackathon")
		}
		return nil, err
	}
	if team.MaxMembers <= 0 {
		team.MaxMembers = DefaultMaxMembers
	}

	leader := &models.TeamMember{
		UserID: creatorID,
		Role:   models.TeamRoleLeader,
	}
	if err := s.repo.CreateTeam(ctx, team, leader); err != nil {
		return nil, err
	}
	team.Members = []models.TeamMember{*leader}
	return team, nil
}

// JoinTeam checks the cap before inserting; the unique (team, user) index
// backstops a concurrent duplicate join.
func (s *TeamService) JoinTeam(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMember, error) {
	team, err := s.repo.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, pkg.NotFound("team")
		}
		return nil, err
	}

	count, err := s.repo.CountTeamMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if count >= int64(team.MaxMembers) {
		return nil, pkg.ErrTeamFull
	}

	member := &models.TeamMember{
		TeamID: teamID,
		UserID: userID,
		Role:   models.TeamRoleMember,
	}
	if err := s.repo.AddTeamMember(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, pkg.ErrAlreadyMember
		}
		return nil, err
	}
	return member, nil
}

// LeaderID returns the team's leader, or uuid.Nil when the team has none.
func (s *TeamService) LeaderID(team *models.Team) uuid.UUID {
	for _, m := range team.Members {
		if m.Role == models.TeamRoleLeader {
			return m.UserID
		}
	}
	return uuid.Nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, teamID uuid.UUID) error {
	return s.repo.DeleteTeam(ctx, teamID)
}
