package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleHost  Role = "HOST"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleHost, RoleAdmin:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
	DifficultyExpert       Difficulty = "EXPERT"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	}
	return false
}

type CompetitionStatus string

const (
	StatusUpcoming  CompetitionStatus = "UPCOMING"
	StatusOngoing   CompetitionStatus = "ONGOING"
	StatusCompleted CompetitionStatus = "COMPLETED"
	StatusCancelled CompetitionStatus = "CANCELLED"
)

func (s CompetitionStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type MentorshipStatus string

const (
	MentorshipPending   MentorshipStatus = "PENDING"
	MentorshipActive    MentorshipStatus = "ACTIVE"
	MentorshipCompleted MentorshipStatus = "COMPLETED"
	MentorshipCancelled MentorshipStatus = "CANCELLED"
)

func (s MentorshipStatus) Valid() bool {
	switch s {
	case MentorshipPending, MentorshipActive, MentorshipCompleted, MentorshipCancelled:
		return true
	}
	return false
}

type TeamRole string

const (
	TeamRoleLeader TeamRole = "LEADER"
	TeamRoleMember TeamRole = "MEMBER"
)

type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	Name           string         `gorm:"not null" json:"name"`
	TempPassword   string         `gorm:"-" json:"-"`
	PasswordHash   string         `gorm:"not null" json:"-"`
	Bio            string         `json:"bio"`
	AvatarURL      string         `json:"avatarUrl"`
	Skills         StringList     `gorm:"type:text" json:"skills"`
	SocialLinks    datatypes.JSON `json:"socialLinks,omitempty"`
	Level          int            `gorm:"default:1" json:"level"`
	Points         int            `gorm:"default:0" json:"points"`
	Role           Role           `gorm:"type:varchar(16);default:'USER'" json:"role"`
	IsHostApproved bool           `gorm:"default:false" json:"isHostApproved"`
	IsActive       bool           `gorm:"default:true" json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.TempPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.TempPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.PasswordHash = string(hashed)
		u.TempPassword = ""
	}
	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// HostInfo is the public slice of a user attached to resource responses.
type HostInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
}

func (u *User) Public() *HostInfo {
	return &HostInfo{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}

// CompetitionBase carries the fields shared by every competition-like
// resource. Aggregates (host, counts, relations) are filled in by handlers
// at read time, never persisted.
type CompetitionBase struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string            `gorm:"not null" json:"title"`
	Description     string            `gorm:"type:text;not null" json:"description"`
	Difficulty      Difficulty        `gorm:"type:varchar(16);not null" json:"difficulty"`
	StartDate       time.Time         `gorm:"not null" json:"startDate"`
	EndDate         time.Time         `gorm:"not null" json:"endDate"`
	Prize           string            `json:"prize"`
	MaxParticipants int               `json:"maxParticipants"`
	Tags            StringList        `gorm:"type:text" json:"tags"`
	Status          CompetitionStatus `gorm:"type:varchar(16);default:'UPCOMING'" json:"status"`
	HostID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"hostId"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`

	Host             *HostInfo     `gorm:"-" json:"host,omitempty"`
	ParticipantCount int64         `gorm:"-" json:"participantCount"`
	SubmissionCount  int64         `gorm:"-" json:"submissionCount"`
	Featured         bool          `gorm:"-" json:"featured"`
	Participants     []Participant `gorm:"-" json:"participants,omitempty"`
	Submissions      []Submission  `gorm:"-" json:"submissions,omitempty"`
}

func (b *CompetitionBase) Base() *CompetitionBase { return b }

func (b *CompetitionBase) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Competition is satisfied by every competition-like model.
type Competition interface {
	Base() *CompetitionBase
}

// CompetitionPtr constrains generic stores and handlers to pointer types of
// competition-like models.
type CompetitionPtr[T any] interface {
	*T
	Competition
}

type Hackathon struct {
	CompetitionBase
	Theme     string     `gorm:"not null" json:"theme"`
	TechStack StringList `gorm:"type:text" json:"techStack"`
}

type AIChallenge struct {
	CompetitionBase
	Category string `gorm:"not null" json:"category"`
	Dataset  string `json:"dataset"`
}

func (AIChallenge) TableName() string { return "ai_challenges" }

type WebContest struct {
	CompetitionBase
	Category  string     `gorm:"not null" json:"category"`
	TechStack StringList `gorm:"type:text" json:"techStack"`
}

type MobileInnovation struct {
	CompetitionBase
	Platform string `gorm:"not null" json:"platform"`
}

type Conference struct {
	CompetitionBase
	Category string     `gorm:"not null" json:"category"`
	Location string     `json:"location"`
	Speakers StringList `gorm:"type:text" json:"speakers"`
}

// Participant is the registration ledger row. The composite unique index is
// the only guard against double registration; a concurrent duplicate insert
// is rejected by the database, not by an application check.
type Participant struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Kind         string    `gorm:"not null;uniqueIndex:idx_participant_pair" json:"kind"`
	ResourceID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participant_pair" json:"resourceId"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participant_pair" json:"userId"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registeredAt"`

	User *HostInfo `gorm:"-" json:"user,omitempty"`
}

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Submission struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Kind       string    `gorm:"not null;uniqueIndex:idx_submission_pair" json:"kind"`
	ResourceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_submission_pair" json:"resourceId"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_submission_pair" json:"userId"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	RepoURL    string    `json:"repoUrl"`
	Likes      int       `gorm:"default:0" json:"likes"`
	Views      int       `gorm:"default:0" json:"views"`
	IsWinner   bool      `gorm:"default:false" json:"isWinner"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Tutorial struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Content     string     `gorm:"type:text" json:"content"`
	Category    string     `gorm:"not null" json:"category"`
	Difficulty  Difficulty `gorm:"type:varchar(16);not null" json:"difficulty"`
	Duration    string     `json:"duration"`
	Topics      StringList `gorm:"type:text" json:"topics"`
	Rating      float64    `gorm:"default:0" json:"rating"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"authorId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Author *HostInfo `gorm:"-" json:"author,omitempty"`
}

func (t *Tutorial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type LearningResource struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	URL         string     `json:"url"`
	Type        string     `gorm:"not null" json:"type"`
	Category    string     `gorm:"not null" json:"category"`
	Tags        StringList `gorm:"type:text" json:"tags"`
	Rating      float64    `gorm:"default:0" json:"rating"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"authorId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Author *HostInfo `gorm:"-" json:"author,omitempty"`
}

func (LearningResource) TableName() string { return "resources" }

func (r *LearningResource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Mentorship struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	MentorID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"mentorId"`
	MenteeID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"menteeId"`
	Topic     string           `gorm:"not null" json:"topic"`
	Message   string           `gorm:"type:text" json:"message"`
	Status    MentorshipStatus `gorm:"type:varchar(16);default:'PENDING'" json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`

	SessionCount int64               `gorm:"-" json:"sessionCount"`
	Sessions     []MentorshipSession `gorm:"-" json:"sessions,omitempty"`
}

func (m *Mentorship) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type MentorshipSession struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MentorshipID uuid.UUID  `gorm:"type:uuid;not null;index" json:"mentorshipId"`
	ScheduledAt  time.Time  `gorm:"not null" json:"scheduledAt"`
	Duration     PGInterval `gorm:"type:text" json:"duration"`
	Notes        string     `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (s *MentorshipSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Forum struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Category  string     `gorm:"not null" json:"category"`
	Tags      StringList `gorm:"type:text" json:"tags"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"authorId"`
	Views     int        `gorm:"default:0" json:"views"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	Author     *HostInfo    `gorm:"-" json:"author,omitempty"`
	ReplyCount int64        `gorm:"-" json:"replyCount"`
	Replies    []ForumReply `gorm:"foreignKey:ForumID" json:"replies,omitempty"`
}

func (f *Forum) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type ForumReply struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ForumID   uuid.UUID `gorm:"type:uuid;not null;index" json:"forumId"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"authorId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *ForumReply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Team struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	MaxMembers  int       `gorm:"default:4" json:"maxMembers"`
	HackathonID uuid.UUID `gorm:"type:uuid;not null;index" json:"hackathonId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type TeamMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_member_pair" json:"teamId"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_member_pair" json:"userId"`
	Role     TeamRole  `gorm:"type:varchar(16);not null" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type SuccessStory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Outcome   string    `json:"outcome"`
	Likes     int       `gorm:"default:0" json:"likes"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Author *HostInfo `gorm:"-" json:"author,omitempty"`
}

func (s *SuccessStory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
