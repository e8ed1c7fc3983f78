package repository

import (
	"context"

	"github.com/google/uuid"

	"hackhive/internal/models"
)

// The registration ledger. Uniqueness of the (kind, resource, user) pair is
// enforced by the composite index; a duplicate insert comes back as
// ErrDuplicate and the caller maps it to the domain denial. Counts are live
// aggregates, never cached.

func (r *Repository) CreateParticipant(ctx context.Context, p *models.Participant) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *Repository) CountParticipants(ctx context.Context, kind string, resourceID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("kind = ? AND resource_id = ?", kind, resourceID).
		Count(&n).Error
	return n, err
}

func (r *Repository) CountSubmissions(ctx context.Context, kind string, resourceID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("kind = ? AND resource_id = ?", kind, resourceID).
		Count(&n).Error
	return n, err
}

type resourceCount struct {
	ResourceID uuid.UUID
	N          int64
}

func (r *Repository) countByResource(ctx context.Context, model any, kind string, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []resourceCount
	err := r.db.WithContext(ctx).
		Model(model).
		Select("resource_id, COUNT(*) as n").
		Where("kind = ? AND resource_id IN ?", kind, ids).
		Group("resource_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ResourceID] = row.N
	}
	return out, nil
}

func (r *Repository) ParticipantCounts(ctx context.Context, kind string, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	return r.countByResource(ctx, &models.Participant{}, kind, ids)
}

func (r *Repository) SubmissionCounts(ctx context.Context, kind string, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	return r.countByResource(ctx, &models.Submission{}, kind, ids)
}

func (r *Repository) IsRegistered(ctx context.Context, kind string, resourceID, userID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("kind = ? AND resource_id = ? AND user_id = ?", kind, resourceID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *Repository) ListParticipants(ctx context.Context, kind string, resourceID uuid.UUID) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.WithContext(ctx).
		Where("kind = ? AND resource_id = ?", kind, resourceID).
		Order("registered_at asc").
		Find(&participants).Error
	return participants, err
}

func (r *Repository) CreateSubmission(ctx context.Context, s *models.Submission) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *Repository) ListSubmissions(ctx context.Context, kind string, resourceID uuid.UUID) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Where("kind = ? AND resource_id = ?", kind, resourceID).
		Order("created_at asc").
		Find(&submissions).Error
	return submissions, err
}
