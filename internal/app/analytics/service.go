package analytics

import (
	"fmt"
	"math"
	"time"

	"flowboard/internal/app/activity"
	"flowboard/internal/app/board"
)

const (
	throughputWindow   = 7 * 24 * time.Hour
	upcomingWindowDays = 7
	upcomingLimit      = 10
	recentActivityMax  = 15
)

type Service interface {
	// GetBoardMetrics computes the four board metrics from scratch. A nil
	// boardID resolves to the requester's default board.
	GetBoardMetrics(userID uint64, boardID *uint64) (*BoardMetrics, error)
	GetDashboard(userID uint64) (*Dashboard, error)
}

type service struct {
	repo        Repository
	boardSvc    board.Service
	activitySvc activity.Service
	now         func() time.Time
}

func NewService(repo Repository, boardSvc board.Service, activitySvc activity.Service) Service {
	return &service{
		repo:        repo,
		boardSvc:    boardSvc,
		activitySvc: activitySvc,
		now:         time.Now,
	}
}

func (s *service) GetBoardMetrics(userID uint64, boardID *uint64) (*BoardMetrics, error) {
	var b *board.Board
	var err error
	if boardID != nil {
		b, err = s.boardSvc.GetBoard(userID, *boardID)
	} else {
		b, err = s.boardSvc.DefaultBoard(userID)
	}
	if err != nil {
		return nil, err
	}

	samples, err := s.repo.GetCycleSamples(b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cycle samples: %w", err)
	}

	completed, err := s.repo.CountDone(b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	throughput, err := s.repo.CountCompletedSince(b.ID, s.now().Add(-throughputWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count throughput: %w", err)
	}

	wip, err := s.repo.CountWIP(b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count WIP: %w", err)
	}

	return &BoardMetrics{
		AvgCycleTime:   avgCycleDays(samples),
		Throughput:     throughput,
		WIPCount:       wip,
		CompletedCount: completed,
	}, nil
}

// avgCycleDays averages whole-day cycle times, skipping samples whose
// completion is not strictly after their start. Zero usable samples yield 0.
func avgCycleDays(samples []CycleSample) float64 {
	totalDays := 0
	count := 0
	for _, smp := range samples {
		if !smp.CompletedAt.After(smp.StartedAt) {
			continue
		}
		totalDays += int(smp.CompletedAt.Sub(smp.StartedAt).Hours() / 24)
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Round(float64(totalDays)/float64(count)*10) / 10
}

func (s *service) GetDashboard(userID uint64) (*Dashboard, error) {
	summaries, err := s.repo.GetBoardSummaries(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get board summaries: %w", err)
	}

	boardIDs := make([]uint64, 0, len(summaries))
	for _, bs := range summaries {
		boardIDs = append(boardIDs, bs.ID)
	}

	dash := &Dashboard{
		Boards:         summaries,
		UpcomingTasks:  nil,
		OverdueTasks:   nil,
		RecentActivity: nil,
	}
	if len(boardIDs) == 0 {
		return dash, nil
	}

	now := s.now()

	dash.Stats.TotalTasks, err = s.repo.CountTasks(boardIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	dash.Stats.CompletedThisWeek, err = s.repo.CountCompletedSinceAcross(boardIDs, startOfWeek(now))
	if err != nil {
		return nil, fmt.Errorf("failed to count weekly completions: %w", err)
	}

	dash.Stats.InProgress, err = s.repo.CountWIPAcross(boardIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count WIP: %w", err)
	}

	dash.OverdueTasks, err = s.repo.GetOverdueTasks(boardIDs, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get overdue tasks: %w", err)
	}
	dash.Stats.OverdueTasks = int64(len(dash.OverdueTasks))

	dash.UpcomingTasks, err = s.repo.GetUpcomingTasks(boardIDs, now, now.AddDate(0, 0, upcomingWindowDays), upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming tasks: %w", err)
	}

	dash.RecentActivity, err = s.activitySvc.GetRecentByBoardIDs(boardIDs, recentActivityMax)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}

	return dash, nil
}

// startOfWeek truncates to the most recent Monday at midnight.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}
