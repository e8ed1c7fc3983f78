package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hackhive/internal/models"
)

func (r *Repository) CreateForum(ctx context.Context, f *models.Forum) error {
	return translate(r.db.WithContext(ctx).Create(f).Error)
}

func (r *Repository) ListForums(ctx context.Context, search, category string) ([]models.Forum, error) {
	q := r.db.WithContext(ctx).Model(&models.Forum{})
	if search != "" {
		p := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", p, p)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var forums []models.Forum
	err := q.Order("created_at desc").Find(&forums).Error
	return forums, err
}

// GetForum loads the thread with its replies and bumps the view counter.
func (r *Repository) GetForum(ctx context.Context, id uuid.UUID) (*models.Forum, error) {
	var forum models.Forum
	err := r.db.WithContext(ctx).Preload("Replies").First(&forum, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	err = r.db.WithContext(ctx).
		Model(&models.Forum{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return nil, err
	}
	forum.Views++
	return &forum, nil
}

func (r *Repository) DeleteForum(ctx context.Context, id uuid.UUID) error {
	return r.Transaction(ctx, func(tx *Repository) error {
		if err := tx.db.Delete(&models.Forum{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.db.Delete(&models.ForumReply{}, "forum_id = ?", id).Error
	})
}

func (r *Repository) CreateForumReply(ctx context.Context, reply *models.ForumReply) error {
	return translate(r.db.WithContext(ctx).Create(reply).Error)
}

func (r *Repository) ReplyCounts(ctx context.Context, forumIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(forumIDs))
	if len(forumIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		ForumID uuid.UUID
		N       int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.ForumReply{}).
		Select("forum_id, COUNT(*) as n").
		Where("forum_id IN ?", forumIDs).
		Group("forum_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ForumID] = row.N
	}
	return out, nil
}

func (r *Repository) CreateTeam(ctx context.Context, team *models.Team, leader *models.TeamMember) error {
	return r.Transaction(ctx, func(tx *Repository) error {
		if err := tx.db.Create(team).Error; err != nil {
			return translate(err)
		}
		leader.TeamID = team.ID
		return translate(tx.db.Create(leader).Error)
	})
}

func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).Preload("Members").First(&team, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &team, nil
}

func (r *Repository) ListTeams(ctx context.Context, hackathonID uuid.UUID) ([]models.Team, error) {
	q := r.db.WithContext(ctx).Preload("Members")
	if hackathonID != uuid.Nil {
		q = q.Where("hackathon_id = ?", hackathonID)
	}
	var teams []models.Team
	err := q.Order("created_at desc").Find(&teams).Error
	return teams, err
}

func (r *Repository) CountTeamMembers(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("team_id = ?", teamID).
		Count(&n).Error
	return n, err
}

func (r *Repository) AddTeamMember(ctx context.Context, member *models.TeamMember) error {
	return translate(r.db.WithContext(ctx).Create(member).Error)
}

func (r *Repository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	return r.Transaction(ctx, func(tx *Repository) error {
		if err := tx.db.Delete(&models.Team{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.db.Delete(&models.TeamMember{}, "team_id = ?", id).Error
	})
}

func (r *Repository) CreateStory(ctx context.Context, s *models.SuccessStory) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *Repository) GetStory(ctx context.Context, id uuid.UUID) (*models.SuccessStory, error) {
	var story models.SuccessStory
	err := r.db.WithContext(ctx).First(&story, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &story, nil
}

func (r *Repository) ListStories(ctx context.Context, search string) ([]models.SuccessStory, error) {
	q := r.db.WithContext(ctx).Model(&models.SuccessStory{})
	if search != "" {
		p := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", p, p)
	}
	var stories []models.SuccessStory
	err := q.Order("created_at desc").Find(&stories).Error
	return stories, err
}

func (r *Repository) SaveStory(ctx context.Context, s *models.SuccessStory) error {
	return translate(r.db.WithContext(ctx).Save(s).Error)
}

func (r *Repository) DeleteStory(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&models.SuccessStory{}, "id = ?", id).Error)
}

func (r *Repository) LikeStory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.SuccessStory{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1")).Error
}
