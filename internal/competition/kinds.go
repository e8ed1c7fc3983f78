package competition

import (
	"github.com/gin-gonic/gin"

	"hackhive/internal/models"
	"hackhive/internal/notify"
	"hackhive/internal/repository"
	"hackhive/internal/service"
)

// Set holds one handler per competition kind, all sharing the same gate,
// ledger and response shape.
type Set struct {
	Hackathons        *Handler[models.Hackathon, *models.Hackathon]
	AIChallenges      *Handler[models.AIChallenge, *models.AIChallenge]
	WebContests       *Handler[models.WebContest, *models.WebContest]
	MobileInnovations *Handler[models.MobileInnovation, *models.MobileInnovation]
	Conferences       *Handler[models.Conference, *models.Conference]
}

func NewSet(repo *repository.Repository, reg *service.RegistrationService, announcer notify.Announcer, featuredThreshold int) *Set {
	return &Set{
		Hackathons: NewHandler[models.Hackathon](repo, reg,
			Spec{Kind: "hackathon", Path: "hackathons", Table: "hackathons", LabelField: "theme"},
			func(h *models.Hackathon, in *Input) {
				h.Theme = in.Theme
				h.TechStack = in.TechStack
			},
			announcer, featuredThreshold),

		AIChallenges: NewHandler[models.AIChallenge](repo, reg,
			Spec{Kind: "ai challenge", Path: "ai-challenges", Table: "ai_challenges", LabelField: "category"},
			func(ch *models.AIChallenge, in *Input) {
				ch.Category = in.Category
				ch.Dataset = in.Dataset
			},
			announcer, featuredThreshold),

		WebContests: NewHandler[models.WebContest](repo, reg,
			Spec{Kind: "web contest", Path: "web-contests", Table: "web_contests", LabelField: "category"},
			func(w *models.WebContest, in *Input) {
				w.Category = in.Category
				w.TechStack = in.TechStack
			},
			announcer, featuredThreshold),

		MobileInnovations: NewHandler[models.MobileInnovation](repo, reg,
			Spec{Kind: "mobile innovation", Path: "mobile-innovations", Table: "mobile_innovations", LabelField: "platform"},
			func(m *models.MobileInnovation, in *Input) {
				m.Platform = in.Platform
			},
			announcer, featuredThreshold),

		Conferences: NewHandler[models.Conference](repo, reg,
			Spec{Kind: "conference", Path: "conferences", Table: "conferences", LabelField: "category"},
			func(cf *models.Conference, in *Input) {
				cf.Category = in.Category
				cf.Location = in.Location
				cf.Speakers = in.Speakers
			},
			announcer, featuredThreshold),
	}
}

func (s *Set) RegisterRoutes(api, host *gin.RouterGroup) {
	s.Hackathons.RegisterRoutes(api, host)
	s.AIChallenges.RegisterRoutes(api, host)
	s.WebContests.RegisterRoutes(api, host)
	s.MobileInnovations.RegisterRoutes(api, host)
	s.Conferences.RegisterRoutes(api, host)
}
