package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hackhive/internal/models"
)

// CompetitionFilter carries the list-endpoint query surface. LabelColumn is
// the kind-specific domain label (theme, category, platform); both it and
// Table come from the handler's kind spec, never from request input.
type CompetitionFilter struct {
	Kind        string
	Table       string
	LabelColumn string

	Search     string
	Label      string
	Difficulty string
	Status     string
	Sort       string
}

func ListCompetitions[T any, PT models.CompetitionPtr[T]](ctx context.Context, r *Repository, f CompetitionFilter) ([]T, error) {
	q := r.db.WithContext(ctx).Model(PT(new(T)))

	if f.Search != "" {
		p := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			fmt.Sprintf("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(%s) LIKE ?", f.LabelColumn),
			p, p, p,
		)
	}
	if f.Label != "" {
		q = q.Where(f.LabelColumn+" = ?", f.Label)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	switch f.Sort {
	case "date":
		q = q.Order("start_date asc")
	case "prize":
		q = q.Order("prize desc")
	case "participants":
		q = q.Order(fmt.Sprintf(
			"(SELECT COUNT(*) FROM participants p WHERE p.kind = '%s' AND p.resource_id = %s.id) DESC",
			f.Kind, f.Table,
		))
	default:
		q = q.Order("created_at desc")
	}

	var items []T
	err := q.Find(&items).Error
	return items, err
}

func GetCompetition[T any, PT models.CompetitionPtr[T]](ctx context.Context, r *Repository, id uuid.UUID) (PT, error) {
	item := PT(new(T))
	err := r.db.WithContext(ctx).First(item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func HostCompetitions[T any, PT models.CompetitionPtr[T]](ctx context.Context, r *Repository, hostID uuid.UUID) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).
		Model(PT(new(T))).
		Where("host_id = ?", hostID).
		Order("created_at desc").
		Find(&items).Error
	return items, err
}

func (r *Repository) CreateCompetition(ctx context.Context, item models.Competition) error {
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

func (r *Repository) SaveCompetition(ctx context.Context, item models.Competition) error {
	return translate(r.db.WithContext(ctx).Save(item).Error)
}

// DeleteCompetition removes the row together with its ledger and submission
// rows in one transaction.
func DeleteCompetition[T any](ctx context.Context, r *Repository, kind string, id uuid.UUID) error {
	return r.Transaction(ctx, func(tx *Repository) error {
		if err := tx.db.Delete(new(T), "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.db.Delete(&models.Participant{}, "kind = ? AND resource_id = ?", kind, id).Error; err != nil {
			return err
		}
		return tx.db.Delete(&models.Submission{}, "kind = ? AND resource_id = ?", kind, id).Error
	})
}
