package analytics

import (
	"time"

	"flowboard/internal/app/activity"
	"flowboard/internal/app/board"
	"flowboard/internal/app/task"
)

// BoardMetrics is the point-in-time snapshot for one board. Nothing here is
// cached or maintained incrementally; every request recomputes from the
// tasks table.
type BoardMetrics struct {
	AvgCycleTime   float64 `json:"avgCycleTime"`
	Throughput     int64   `json:"throughput"`
	WIPCount       int64   `json:"wipCount"`
	CompletedCount int64   `json:"completedCount"`
}

// CycleSample is one done task's lifecycle timestamps.
type CycleSample struct {
	StartedAt   time.Time
	CompletedAt time.Time
}

type BoardSummary struct {
	board.Board     `gorm:"embedded"`
	DoneTasksCount  int64 `json:"done_tasks_count"`
	TotalTasksCount int64 `json:"total_tasks_count"`
}

type DashboardStats struct {
	TotalTasks        int64 `json:"totalTasks"`
	CompletedThisWeek int64 `json:"completedThisWeek"`
	OverdueTasks      int64 `json:"overdueTasks"`
	InProgress        int64 `json:"inProgress"`
}

type Dashboard struct {
	Boards         []BoardSummary       `json:"boards"`
	Stats          DashboardStats       `json:"stats"`
	UpcomingTasks  []*task.Task         `json:"upcomingTasks"`
	OverdueTasks   []*task.Task         `json:"overdueTasks"`
	RecentActivity []*activity.Activity `json:"recentActivity"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
