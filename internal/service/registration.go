package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"hackhive/internal/metrics"
	"hackhive/internal/models"
	"hackhive/internal/pkg"
	"hackhive/internal/repository"
)

// Activity points awarded alongside the triggering write.
const (
	PointsRegistration = 10
	PointsSubmission   = 25
	PointsForumPost    = 5
)

// RegistrationService owns the participation ledger flow: the insert and the
// point award commit together, and the storage layer's unique constraint is
// what turns a concurrent duplicate into ALREADY_REGISTERED.
type RegistrationService struct {
	repo *repository.Repository
}

func NewRegistrationService(repo *repository.Repository) *RegistrationService {
	return &RegistrationService{repo: repo}
}

func (s *RegistrationService) Register(ctx context.Context, kind string, resourceID, userID uuid.UUID) (*models.Participant, error) {
	participant := &models.Participant{
		Kind:       kind,
		ResourceID: resourceID,
		UserID:     userID,
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.CreateParticipant(ctx, participant); err != nil {
			return err
		}
		return tx.AwardPoints(ctx, userID, PointsRegistration)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, pkg.ErrAlreadyRegistered
		}
		return nil, err
	}
	metrics.Registrations.Inc()
	return participant, nil
}

// Submit records a participant's entry. Only registered participants may
// submit, and at most once per competition.
func (s *RegistrationService) Submit(ctx context.Context, submission *models.Submission) (*models.Submission, error) {
	registered, err := s.repo.IsRegistered(ctx, submission.Kind, submission.ResourceID, submission.UserID)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, pkg.ErrNotRegistered
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.CreateSubmission(ctx, submission); err != nil {
			return err
		}
		return tx.AwardPoints(ctx, submission.UserID, PointsSubmission)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, pkg.ErrAlreadySubmitted
		}
		return nil, err
	}
	metrics.Submissions.Inc()
	return submission, nil
}
