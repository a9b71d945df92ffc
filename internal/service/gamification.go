package service

import (
	"context"
	"fmt"
	"time"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

// ClientGamification is everything the client dashboard shows about
// streaks, celebrations and badges.
type ClientGamification struct {
	Client       *domain.Client
	Streaks      []domain.Streak
	TopStreak    domain.Streak
	HasStreak    bool // False when TopStreak is the placeholder
	Celebrations []domain.Celebration
	Stats        ClientStats
	Badges       []domain.Badge
	NextBadge    *domain.Badge
}

// GamificationService derives a client's gamification view from their records.
type GamificationService struct {
	clients      *ClientService
	recovery     *RecoveryService
	celebrations *CelebrationService
	badges       *BadgeService
	loc          *time.Location
	now          func() time.Time
}

// NewGamificationService creates a new GamificationService.
func NewGamificationService(clients *ClientService, recovery *RecoveryService, celebrations *CelebrationService, badges *BadgeService, loc *time.Location) *GamificationService {
	return &GamificationService{
		clients:      clients,
		recovery:     recovery,
		celebrations: celebrations,
		badges:       badges,
		loc:          loc,
		now:          time.Now,
	}
}

// WithClock overrides the time source for this service and its collaborators.
func (s *GamificationService) WithClock(now func() time.Time) *GamificationService {
	s.now = now
	s.recovery.WithClock(now)
	s.badges.WithClock(now)
	return s
}

type clientRecords struct {
	client   *domain.Client
	sessions []domain.TrainingSession
	entries  []domain.ProgressEntry
	streaks  []domain.Streak
}

func (s *GamificationService) load(ctx context.Context, trainerID, clientID int64) (*clientRecords, error) {
	client, err := s.clients.Get(ctx, trainerID, clientID)
	if err != nil {
		return nil, err
	}
	sessions, entries, err := s.clients.History(ctx, clientID)
	if err != nil {
		return nil, err
	}
	recovered, err := s.recovery.RecoveredDays(ctx,
		StreakID(clientID, domain.StreakTypeSessionAttendance),
		StreakID(clientID, domain.StreakTypeProgressLogging),
	)
	if err != nil {
		return nil, err
	}
	return &clientRecords{
		client:   client,
		sessions: sessions,
		entries:  entries,
		streaks:  BuildStreaks(clientID, sessions, entries, recovered, s.now(), s.loc),
	}, nil
}

// Streaks derives the client's streaks after verifying ownership.
func (s *GamificationService) Streaks(ctx context.Context, trainerID, clientID int64) ([]domain.Streak, error) {
	rec, err := s.load(ctx, trainerID, clientID)
	if err != nil {
		return nil, err
	}
	return rec.streaks, nil
}

// ForClient builds the full gamification view for a client.
func (s *GamificationService) ForClient(ctx context.Context, trainerID, clientID int64) (*ClientGamification, error) {
	rec, err := s.load(ctx, trainerID, clientID)
	if err != nil {
		return nil, err
	}
	streaks := rec.streaks

	view := &ClientGamification{Client: rec.client, Streaks: streaks}
	if top := TopStreak(streaks); top != nil {
		view.TopStreak, view.HasStreak = *top, true
	} else {
		view.TopStreak = PlaceholderStreak(clientID)
	}

	for i := range streaks {
		c, err := s.celebrations.Pending(ctx, &streaks[i])
		if err != nil {
			return nil, err
		}
		if c != nil {
			view.Celebrations = append(view.Celebrations, *c)
		}
	}

	view.Stats = AggregateStats(rec.sessions, rec.entries, streaks)
	view.Badges, err = s.badges.Evaluate(ctx, clientID, view.Stats)
	if err != nil {
		return nil, err
	}
	view.NextBadge = NextBadge(view.Badges)
	for _, b := range view.Badges {
		if b.IsUnlocked {
			view.Stats.BadgesEarned++
		}
	}
	return view, nil
}

// Recover applies the one-time recovery to the client's streak of the given type.
func (s *GamificationService) Recover(ctx context.Context, trainerID, clientID int64, streakType domain.StreakType) (*domain.Streak, bool, error) {
	streaks, err := s.Streaks(ctx, trainerID, clientID)
	if err != nil {
		return nil, false, err
	}
	for i := range streaks {
		if streaks[i].Type != streakType {
			continue
		}
		ok, err := s.recovery.Recover(ctx, &streaks[i])
		if err != nil {
			return nil, false, err
		}
		return &streaks[i], ok, nil
	}
	// No history of this type: nothing to recover.
	return nil, false, nil
}

// Dismiss records the celebration currently shown for one of the client's
// streaks as seen. Dismissing a milestone the streak is not on is a no-op.
func (s *GamificationService) Dismiss(ctx context.Context, trainerID, clientID int64, streakID string, count int) (bool, error) {
	rec, err := s.load(ctx, trainerID, clientID)
	if err != nil {
		return false, err
	}
	if err := checkStreakID(clientID, streakID); err != nil {
		return false, err
	}
	var streak *domain.Streak
	for i := range rec.streaks {
		if rec.streaks[i].ID == streakID {
			streak = &rec.streaks[i]
		}
	}
	return s.celebrations.Dismiss(ctx, streak, count)
}

// Share shares a milestone celebration for one of the client's streaks.
func (s *GamificationService) Share(ctx context.Context, trainerID, clientID int64, streakID string, count int) (ShareResult, error) {
	client, err := s.clients.Get(ctx, trainerID, clientID)
	if err != nil {
		return ShareResult{}, err
	}
	if err := checkStreakID(clientID, streakID); err != nil {
		return ShareResult{}, err
	}
	c, ok := NewCelebration(streakID, count)
	if !ok {
		return ShareResult{}, fmt.Errorf("%w: %d is not a milestone", domain.ErrInvalidInput, count)
	}
	return s.celebrations.Share(ctx, client, c), nil
}

func checkStreakID(clientID int64, streakID string) error {
	for _, t := range []domain.StreakType{domain.StreakTypeSessionAttendance, domain.StreakTypeProgressLogging} {
		if streakID == StreakID(clientID, t) {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown streak %q", domain.ErrInvalidInput, streakID)
}
