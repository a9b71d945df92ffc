package handler

import (
	"time"

	"github.com/msomdec/trainer-streaks/internal/domain"
	"github.com/msomdec/trainer-streaks/internal/service"
)

// UserDTO is the JSON representation of a trainer.
type UserDTO struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
}

// ClientDTO is the JSON representation of a client. The device token is
// never exposed.
type ClientDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	CanPush    bool   `json:"canPush"`
	DateJoined string `json:"dateJoined"`
	CreatedAt  string `json:"createdAt"`
}

func toClientDTO(c *domain.Client) ClientDTO {
	return ClientDTO{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		CanPush:    c.DeviceToken != "",
		DateJoined: c.DateJoined.Format(time.RFC3339),
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
}

func toClientDTOs(clients []domain.Client) []ClientDTO {
	dtos := make([]ClientDTO, len(clients))
	for i := range clients {
		dtos[i] = toClientDTO(&clients[i])
	}
	return dtos
}

// SessionDTO is the JSON representation of a training session.
type SessionDTO struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"clientId"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt"`
}

func toSessionDTO(s *domain.TrainingSession) SessionDTO {
	return SessionDTO{
		ID:        s.ID,
		ClientID:  s.ClientID,
		Date:      s.Date.Format(time.RFC3339),
		Status:    s.Status,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}

// ProgressDTO is the JSON representation of a progress entry.
type ProgressDTO struct {
	ID        int64   `json:"id"`
	ClientID  int64   `json:"clientId"`
	Date      string  `json:"date"`
	Weight    float64 `json:"weight"`
	Notes     string  `json:"notes"`
	CreatedAt string  `json:"createdAt"`
}

func toProgressDTO(e *domain.ProgressEntry) ProgressDTO {
	return ProgressDTO{
		ID:        e.ID,
		ClientID:  e.ClientID,
		Date:      e.Date.Format(time.RFC3339),
		Weight:    e.Weight,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

// StreakDTO is the JSON representation of a derived streak.
type StreakDTO struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	CurrentCount     int     `json:"currentCount"`
	BestCount        int     `json:"bestCount"`
	IsActive         bool    `json:"isActive"`
	LastActivityDate *string `json:"lastActivityDate"`
	StartDate        *string `json:"startDate"`
	CanRecover       bool    `json:"canRecover"`
	Recovered        bool    `json:"recovered"`
}

func toStreakDTO(s *domain.Streak) StreakDTO {
	dto := StreakDTO{
		ID:           s.ID,
		Type:         string(s.Type),
		CurrentCount: s.CurrentCount,
		BestCount:    s.BestCount,
		IsActive:     s.EffectivelyActive(),
		CanRecover:   s.CanRecover,
		Recovered:    s.Recovered,
	}
	if s.LastActivityDate != nil {
		t := s.LastActivityDate.Format(time.RFC3339)
		dto.LastActivityDate = &t
	}
	if s.StartDate != nil {
		t := s.StartDate.Format(time.DateOnly)
		dto.StartDate = &t
	}
	return dto
}

func toStreakDTOs(streaks []domain.Streak) []StreakDTO {
	dtos := make([]StreakDTO, len(streaks))
	for i := range streaks {
		dtos[i] = toStreakDTO(&streaks[i])
	}
	return dtos
}

// BadgeDTO is the JSON representation of an evaluated badge.
type BadgeDTO struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Icon               string  `json:"icon"`
	Category           string  `json:"category"`
	Requirement        string  `json:"requirement"`
	Threshold          float64 `json:"threshold"`
	IsUnlocked         bool    `json:"isUnlocked"`
	Progress           int     `json:"progress"`
	AchievedDate       *string `json:"achievedDate"`
	UnlockInstructions string  `json:"unlockInstructions"`
}

func toBadgeDTO(b *domain.Badge) BadgeDTO {
	dto := BadgeDTO{
		ID:                 b.ID,
		Name:               b.Name,
		Icon:               b.Icon,
		Category:           string(b.Category),
		Requirement:        b.Requirement,
		Threshold:          b.Threshold,
		IsUnlocked:         b.IsUnlocked,
		Progress:           b.Progress,
		UnlockInstructions: b.UnlockInstructions,
	}
	if b.AchievedDate != nil {
		t := b.AchievedDate.Format(time.RFC3339)
		dto.AchievedDate = &t
	}
	return dto
}

func toBadgeDTOs(badges []domain.Badge) []BadgeDTO {
	dtos := make([]BadgeDTO, len(badges))
	for i := range badges {
		dtos[i] = toBadgeDTO(&badges[i])
	}
	return dtos
}

// CelebrationDTO is the JSON representation of a pending milestone celebration.
type CelebrationDTO struct {
	StreakID string `json:"streakId"`
	Count    int    `json:"count"`
	Tier     string `json:"tier"`
	Message  string `json:"message"`
	XP       int    `json:"xp"`
}

func toCelebrationDTOs(celebrations []domain.Celebration) []CelebrationDTO {
	dtos := make([]CelebrationDTO, len(celebrations))
	for i, c := range celebrations {
		dtos[i] = CelebrationDTO{
			StreakID: c.StreakID,
			Count:    c.Count,
			Tier:     c.Tier,
			Message:  c.Message,
			XP:       c.XP,
		}
	}
	return dtos
}

// StatsDTO is the JSON representation of a client's aggregate statistics.
type StatsDTO struct {
	TotalSessions   int     `json:"totalSessions"`
	TotalWeightLoss float64 `json:"totalWeightLoss"`
	LongestStreak   int     `json:"longestStreak"`
	ProgressEntries int     `json:"progressEntries"`
	BadgesEarned    int     `json:"badgesEarned"`
}

// GamificationDTO is the JSON representation of a client's full gamification view.
type GamificationDTO struct {
	Client       ClientDTO        `json:"client"`
	Streaks      []StreakDTO      `json:"streaks"`
	TopStreak    StreakDTO        `json:"topStreak"`
	HasStreak    bool             `json:"hasStreak"`
	Celebrations []CelebrationDTO `json:"celebrations"`
	Stats        StatsDTO         `json:"stats"`
	Badges       []BadgeDTO       `json:"badges"`
	NextBadge    *BadgeDTO        `json:"nextBadge"`
}

func toGamificationDTO(g *service.ClientGamification) GamificationDTO {
	dto := GamificationDTO{
		Client:       toClientDTO(g.Client),
		Streaks:      toStreakDTOs(g.Streaks),
		TopStreak:    toStreakDTO(&g.TopStreak),
		HasStreak:    g.HasStreak,
		Celebrations: toCelebrationDTOs(g.Celebrations),
		Stats: StatsDTO{
			TotalSessions:   g.Stats.TotalSessions,
			TotalWeightLoss: g.Stats.TotalWeightLoss,
			LongestStreak:   g.Stats.LongestStreak,
			ProgressEntries: g.Stats.ProgressEntries,
			BadgesEarned:    g.Stats.BadgesEarned,
		},
		Badges: toBadgeDTOs(g.Badges),
	}
	if g.NextBadge != nil {
		b := toBadgeDTO(g.NextBadge)
		dto.NextBadge = &b
	}
	return dto
}
