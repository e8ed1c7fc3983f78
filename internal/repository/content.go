package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hackhive/internal/models"
)

type ContentFilter struct {
	Search     string
	Category   string
	Type       string
	Difficulty string
	Sort       string
}

func (f ContentFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Search != "" {
		p := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", p, p)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	switch f.Sort {
	case "rating":
		return q.Order("rating desc")
	default:
		return q.Order("created_at desc")
	}
}

func (r *Repository) ListTutorials(ctx context.Context, f ContentFilter) ([]models.Tutorial, error) {
	f.Type = ""
	var tutorials []models.Tutorial
	err := f.apply(r.db.WithContext(ctx).Model(&models.Tutorial{})).Find(&tutorials).Error
	return tutorials, err
}

func (r *Repository) GetTutorial(ctx context.Context, id uuid.UUID) (*models.Tutorial, error) {
	var tutorial models.Tutorial
	err := r.db.WithContext(ctx).First(&tutorial, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &tutorial, nil
}

func (r *Repository) CreateTutorial(ctx context.Context, t *models.Tutorial) error {
	return translate(r.db.WithContext(ctx).Create(t).Error)
}

func (r *Repository) SaveTutorial(ctx context.Context, t *models.Tutorial) error {
	return translate(r.db.WithContext(ctx).Save(t).Error)
}

func (r *Repository) DeleteTutorial(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Tutorial{}, "id = ?", id).Error)
}

func (r *Repository) ListResources(ctx context.Context, f ContentFilter) ([]models.LearningResource, error) {
	f.Difficulty = ""
	var resources []models.LearningResource
	err := f.apply(r.db.WithContext(ctx).Model(&models.LearningResource{})).Find(&resources).Error
	return resources, err
}

func (r *Repository) GetResource(ctx context.Context, id uuid.UUID) (*models.LearningResource, error) {
	var resource models.LearningResource
	err := r.db.WithContext(ctx).First(&resource, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &resource, nil
}

func (r *Repository) CreateResource(ctx context.Context, res *models.LearningResource) error {
	return translate(r.db.WithContext(ctx).Create(res).Error)
}

func (r *Repository) SaveResource(ctx context.Context, res *models.LearningResource) error {
	return translate(r.db.WithContext(ctx).Save(res).Error)
}

func (r *Repository) DeleteResource(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&models.LearningResource{}, "id = ?", id).Error)
}

func (r *Repository) CreateMentorship(ctx context.Context, m *models.Mentorship) error {
	return translate(r.db.WithContext(ctx).Create(m).Error)
}

func (r *Repository) GetMentorship(ctx context.Context, id uuid.UUID) (*models.Mentorship, error) {
	var mentorship models.Mentorship
	err := r.db.WithContext(ctx).First(&mentorship, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &mentorship, nil
}

// ListMentorshipsForUser returns mentorships where the user is either side.
func (r *Repository) ListMentorshipsForUser(ctx context.Context, userID uuid.UUID) ([]models.Mentorship, error) {
	var mentorships []models.Mentorship
	err := r.db.WithContext(ctx).
		Where("mentor_id = ? OR mentee_id = ?", userID, userID).
		Order("created_at desc").
		Find(&mentorships).Error
	return mentorships, err
}

func (r *Repository) SaveMentorship(ctx context.Context, m *models.Mentorship) error {
	return translate(r.db.WithContext(ctx).Save(m).Error)
}

func (r *Repository) DeleteMentorship(ctx context.Context, id uuid.UUID) error {
	return r.Transaction(ctx, func(tx *Repository) error {
		if err := tx.db.Delete(&models.Mentorship{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.db.Delete(&models.MentorshipSession{}, "mentorship_id = ?", id).Error
	})
}

func (r *Repository) CreateMentorshipSession(ctx context.Context, s *models.MentorshipSession) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *Repository) ListMentorshipSessions(ctx context.Context, mentorshipID uuid.UUID) ([]models.MentorshipSession, error) {
	var sessions []models.MentorshipSession
	err := r.db.WithContext(ctx).
		Where("mentorship_id = ?", mentorshipID).
		Order("scheduled_at asc").
		Find(&sessions).Error
	return sessions, err
}

func (r *Repository) CountMentorshipSessions(ctx context.Context, mentorshipID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.MentorshipSession{}).
		Where("mentorship_id = ?", mentorshipID).
		Count(&n).Error
	return n, err
}
