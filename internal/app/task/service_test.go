package task

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"flowboard/internal/app/activity"
	"flowboard/internal/app/board"
	"flowboard/internal/apperr"
	"flowboard/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Test fakes ---

type fakeBoardService struct {
	boards map[uint64]*board.Board
	nextID uint64
}

func newFakeBoardService(boards ...*board.Board) *fakeBoardService {
	f := &fakeBoardService{boards: make(map[uint64]*board.Board)}
	for _, b := range boards {
		f.boards[b.ID] = b
		if b.ID > f.nextID {
			f.nextID = b.ID
		}
	}
	return f
}

func (f *fakeBoardService) ListBoards(userID uint64) ([]*board.Board, error) {
	var out []*board.Board
	for _, b := range f.boards {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBoardService) CreateBoard(userID uint64, req board.CreateBoardRequest) (*board.Board, error) {
	panic("not used")
}

func (f *fakeBoardService) GetBoard(userID, boardID uint64) (*board.Board, error) {
	b, ok := f.boards[boardID]
	if !ok {
		return nil, apperr.NotFound("board")
	}
	if b.UserID != userID {
		return nil, apperr.Forbidden("board access")
	}
	return b, nil
}

func (f *fakeBoardService) UpdateBoard(userID, boardID uint64, req board.UpdateBoardRequest) (*board.Board, error) {
	panic("not used")
}

func (f *fakeBoardService) UpdateSettings(userID, boardID uint64, req board.SettingsRequest) (*board.Board, error) {
	panic("not used")
}

func (f *fakeBoardService) DeleteBoard(userID, boardID uint64) error {
	panic("not used")
}

func (f *fakeBoardService) DefaultBoard(userID uint64) (*board.Board, error) {
	boards, _ := f.ListBoards(userID)
	if len(boards) == 0 {
		return nil, apperr.NotFound("board")
	}
	return boards[0], nil
}

func (f *fakeBoardService) EnsureDefaultBoard(userID uint64) (*board.Board, error) {
	if b, err := f.DefaultBoard(userID); err == nil {
		return b, nil
	}
	f.nextID++
	b := &board.Board{ID: f.nextID, UserID: userID, Title: "Personal", ThemeColor: "#4A90E2"}
	f.boards[b.ID] = b
	return b, nil
}

func (f *fakeBoardService) CanModify(b *board.Board, userID uint64) bool {
	return b != nil && b.UserID == userID
}

type fakeRepo struct {
	tasks      map[uint64]*Task
	activities []*activity.Activity
	nextID     uint64
	updates    int
}

func newFakeRepo(tasks ...*Task) *fakeRepo {
	f := &fakeRepo{tasks: make(map[uint64]*Task)}
	for _, t := range tasks {
		f.tasks[t.ID] = t
		if t.ID > f.nextID {
			f.nextID = t.ID
		}
	}
	return f
}

func (f *fakeRepo) GetByID(id uint64) (*Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeRepo) GetByBoardID(boardID uint64) ([]*Task, error) {
	var out []*Task
	for _, t := range f.tasks {
		if t.BoardID == boardID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) List(boardIDs []uint64, q ListQuery) ([]*Task, int64, error) {
	allowed := make(map[uint64]bool)
	for _, id := range boardIDs {
		allowed[id] = true
	}
	var out []*Task
	for _, t := range f.tasks {
		if allowed[t.BoardID] {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) CreateWithActivity(t *Task, a *activity.Activity) error {
	f.nextID++
	t.ID = f.nextID
	f.tasks[t.ID] = t
	if a != nil {
		a.TaskID = t.ID
		f.activities = append(f.activities, a)
	}
	return nil
}

func (f *fakeRepo) UpdateWithActivity(t *Task, a *activity.Activity) error {
	f.tasks[t.ID] = t
	f.updates++
	if a != nil {
		a.TaskID = t.ID
		f.activities = append(f.activities, a)
	}
	return nil
}

func (f *fakeRepo) Delete(t *Task) error {
	delete(f.tasks, t.ID)
	return nil
}

func (f *fakeRepo) activitiesFor(taskID uint64) []*activity.Activity {
	var out []*activity.Activity
	for _, a := range f.activities {
		if a.TaskID == taskID {
			out = append(out, a)
		}
	}
	return out
}

type fakeActivityService struct {
	repo *fakeRepo
}

func (f *fakeActivityService) GetActivitiesByTaskID(taskID uint64) ([]*activity.Activity, error) {
	acts := f.repo.activitiesFor(taskID)
	// newest first
	out := make([]*activity.Activity, 0, len(acts))
	for i := len(acts) - 1; i >= 0; i-- {
		out = append(out, acts[i])
	}
	return out, nil
}

func (f *fakeActivityService) GetRecentByBoardIDs(boardIDs []uint64, limit int) ([]*activity.Activity, error) {
	return nil, nil
}

func newTestService(repo *fakeRepo, boards *fakeBoardService, now time.Time) *service {
	return &service{
		repo:        repo,
		boardSvc:    boards,
		activitySvc: &fakeActivityService{repo: repo},
		eventBus:    utils.NewEventBus(),
		logger:      zap.NewNop().Sugar(),
		cachePrefix: "tasks:board",
		now:         func() time.Time { return now },
	}
}

func strPtr(s string) *string          { return &s }
func statusPtr(s Status) *Status       { return &s }
func priorityPtr(p Priority) *Priority { return &p }

// --- Create ---

func TestCreateTaskWritesCreatedActivity(t *testing.T) {
	boards := newFakeBoardService(&board.Board{ID: 1, UserID: 10})
	repo := newFakeRepo()
	svc := newTestService(repo, boards, time.Now())

	boardID := uint64(1)
	created, err := svc.CreateTask(context.Background(), 10, CreateTaskRequest{
		Title:    "Write report",
		Priority: PriorityHigh,
		Status:   StatusTodo,
		BoardID:  &boardID,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected generated task ID")
	}
	if created.StartedAt != nil || created.CompletedAt != nil {
		t.Error("new task must have nil lifecycle timestamps")
	}

	acts := repo.activitiesFor(created.ID)
	if len(acts) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(acts))
	}
	a := acts[0]
	if a.Type != activity.TypeCreated {
		t.Errorf("activity type = %q, want created", a.Type)
	}
	if a.Description != "Task created" {
		t.Errorf("description = %q", a.Description)
	}
	if a.Properties.Created == nil {
		t.Fatal("created payload missing")
	}
	if a.Properties.Created.Title != "Write report" {
		t.Errorf("payload title = %q", a.Properties.Created.Title)
	}
}

func TestCreateTaskForbiddenOnUnownedBoard(t *testing.T) {
	boards := newFakeBoardService(&board.Board{ID: 1, UserID: 99})
	repo := newFakeRepo()
	svc := newTestService(repo, boards, time.Now())

	boardID := uint64(1)
	_, err := svc.CreateTask(context.Background(), 10, CreateTaskRequest{
		Title:    "Sneaky",
		Priority: PriorityLow,
		Status:   StatusTodo,
		BoardID:  &boardID,
	})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.tasks) != 0 || len(repo.activities) != 0 {
		t.Error("nothing should be persisted on a forbidden create")
	}
}

func TestCreateTaskFallsBackToDefaultBoard(t *testing.T) {
	boards := newFakeBoardService()
	repo := newFakeRepo()
	svc := newTestService(repo, boards, time.Now())

	created, err := svc.CreateTask(context.Background(), 10, CreateTaskRequest{
		Title:    "First ever",
		Priority: PriorityMedium,
		Status:   StatusTodo,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	b, err := boards.DefaultBoard(10)
	if err != nil {
		t.Fatalf("default board was not created: %v", err)
	}
	if b.Title != "Personal" {
		t.Errorf("fallback board title = %q, want Personal", b.Title)
	}
	if created.BoardID != b.ID {
		t.Errorf("task landed on board %d, want %d", created.BoardID, b.ID)
	}
}

// --- Update: moved branch ---

func TestMoveToInProgressStampsStartedAtOnce(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	boards := newFakeBoardService(&board.Board{ID: 1, UserID: 10})
	repo := newFakeRepo(&Task{ID: 5, BoardID: 1, Title: "T", Priority: PriorityLow, Status: StatusTodo})
	svc := newTestService(repo, boards, now)

	updated, err := svc.UpdateTask(context.Background(), 10, 5, UpdateTaskRequest{Status: statusPtr(StatusInProgress)})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.StartedAt == nil || !updated.StartedAt.Equal(now) {
		t.Fatalf("started_at = %v, want %v", updated.StartedAt, now)
	}

	// A later non-status update must not touch the stamp.
	svc.now = func() time.Time { return now.Add(48 * time.Hour) }
	updated, err = svc.UpdateTask(context.Background(), 10, 5, UpdateTaskRequest{Title: strPtr("Renamed")})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if !updated.StartedAt.Equal(now) {
		t.Errorf("started_at changed on a field update: %v", updated.StartedAt)
	}

	// Leaving and re-entering in-progress must not re-stamp either.
	if _, err := svc.UpdateTask(context.Background(), 10, 5, UpdateTaskRequest{Status: statusPtr(StatusInReview)}); err != nil {
		t.Fatal(err)
	}
	updated, err = svc.UpdateTask(context.Background(), 10, 5, UpdateTaskRequest{Status: statusPtr(StatusInProgress)})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.StartedAt.Equal(now) {
		t.Errorf("started_at re-stamped on re-entry: %v", updated.StartedAt)
	}
}

func TestMoveToDoneStampsCompletedAtOnce(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	boards := newFakeBoardService(&board.Board{ID: 1, UserID: 10})
	repo := newFakeRepo(&Task{ID: 5, BoardID: 1, Title: "T", Priority: PriorityLow, Status: StatusInReview})
	svc := newTestService(repo, boards, now)

	updated, err := svc.UpdateTask(context.Background(), 10, 5, UpdateTaskRequest{Status: statusPtr(StatusDone)})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.CompletedAt == nil || !updated.CompletedAt.Equal(now) {
		t.Fatalf("completed_at = %v, want %v", updated.CompletedAt, now)
	}
	if len(repo.activitiesFor(5)) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(repo.activitiesFor(5)))
	}

	// Re-submitting done is a no-op: no new activity, no re-stamp.
	svc.now = func() time.Time { return now.Add(time.Hour) }
	updated, err = svc.UpdateTask(context.Background(), 10, 5, UpdateTaskRequest{Status: statusPtr(StatusDone)})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.CompletedAt.Equal(now) {
		t.Errorf("completed_at re-stamped: %v", updated.CompletedAt)
	}
	if len(repo.activitiesFor(5)) != 1 {
		t.Errorf("duplicate activity on repeated done: %d", len(repo.activitiesFor(5)))
	}
}

func TestStatusChangeTakesPrecedenceOverFieldChanges(t *testing.T) {
	boards := newFakeBoardService(&board.Board{ID: 1, UserID: 10})
	repo := newFakeRepo(&Task{ID: 5, BoardID: 1, Title: "Old", Priority: PriorityLow, Status: StatusTodo})
	svc := newTestService(repo, boards, time.Now())

	updated, err := svc.UpdateTask(context.Background(), 10, 5, UpdateTaskRequest{
		Title:  strPtr("New"),
		Status: statusPtr(StatusInProgress),
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Title != "New" {
		t.Errorf("title not applied in moved branch: %q", updated.Title)
	}

	acts := repo.activitiesFor(5)
	if len(acts) != 1 {
		t.Fatalf("expected exactly 1 activity, got %d", len(acts))
	}
	a := acts[0]
	if a.Type != activity.TypeMoved {
		t.Errorf("activity type = %q, want moved", a.Type)
	}
	if a.Description != "Moved from todo to in-progress" {
		t.Errorf("description = %q", a.Description)
	}
	if a.Properties.Moved == nil || a.Properties.Moved.From != "todo" || a.Properties.Moved.To != "in-progress" {
		t.Errorf("moved payload = %+v", a.Properties.Moved)
	}
}

// --- Update: updated branch ---

func TestUpdatedDescriptionPriorityOrder(t *testing.T) {
	cases := []struct {
		name string
		req  UpdateTaskRequest
		want string
	}{
		{
			name: "title wins",
			req: UpdateTaskRequest{
				Title:       strPtr("New title"),
				Priority:    priorityPtr(PriorityHigh),
				Description: strPtr("New desc"),
			},
			want: "Updated title",
		},
		{
			name: "priority beats description",
			req: UpdateTaskRequest{
				Priority:    priorityPtr(PriorityHigh),
				Description: strPtr("New desc"),
			},
			want: "Changed priority to high",
		},
		{
			name: "description alone",
			req:  UpdateTaskRequest{Description: strPtr("New desc")},
			want: "Updated description",
		},
		{
			name: "generic fallback",
			req:  UpdateTaskRequest{DueDate: timePtr(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))},
			want: "Task updated",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			boards := newFakeBoardService(&board.Board{ID: 1, UserID: 10})
			repo := newFakeRepo(&Task{ID: 5, BoardID: 1, Title: "Old", Priority: PriorityLow, Status: StatusTodo})
			svc := newTestService(repo, boards, time.Now())

			if _, err := svc.UpdateTask(context.Background(), 10, 5, tc.req); err != nil {
				t.Fatalf("UpdateTask: %v", err)
			}

			acts := repo.activitiesFor(5)
			if len(acts) != 1 {
				t.Fatalf("expected 1 activity, got %d", len(acts))
			}
			if acts[0].Type != activity.TypeUpdated {
				t.Errorf("activity type = %q, want updated", acts[0].Type)
			}
			if acts[0].Description != tc.want {
				t.Errorf("description = %q, want %q", acts[0].Description, tc.want)
			}
		})
	}
}

func TestUpdatedPayloadCarriesAllChangedFields(t *testing.T) {
	boards := newFakeBoardService(&board.Board{ID: 1, UserID: 10})
	repo := newFakeRepo(&Task{ID: 5, BoardID: 1, Title: "Old", Priority: PriorityLow, Status: StatusTodo})
	svc := newTestService(repo, boards, time.Now())

	if _, err := svc.UpdateTask(context.Background(), 10, 5, UpdateTaskRequest{
		Title:    strPtr("New"),
		Priority: priorityPtr(PriorityHigh),
	}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	acts := repo.activitiesFor(5)
	if len(acts) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(acts))
	}
	p := acts[0].Properties.Updated
	if p == nil {
		t.Fatal("updated payload missing")
	}
	if p.Title == nil || *p.Title != "New" {
		t.Errorf("payload title = %v", p.Title)
	}
	if p.Priority == nil || *p.Priority != "high" {
		t.Errorf("payload priority = %v", p.Priority)
	}
	if p.Description != nil {
		t.Errorf("unchanged description leaked into payload: %v", *p.Description)
	}
}

func TestNoOpUpdateWritesNothing(t *testing.T) {
	boards := newFakeBoardService(&board.Board{ID: 1, UserID: 10})
	repo := newFakeRepo(&Task{ID: 5, BoardID: 1, Title: "Same", Priority: PriorityLow, Status: StatusTodo})
	svc := newTestService(repo, boards, time.Now())

	if _, err := svc.UpdateTask(context.Background(), 10, 5, UpdateTaskRequest{
		Title:  strPtr("Same"),
		Status: statusPtr(StatusTodo),
	}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	if repo.updates != 0 {
		t.Errorf("no-op update hit the repository %d times", repo.updates)
	}
	if len(repo.activities) != 0 {
		t.Errorf("no-op update wrote %d activities", len(repo.activities))
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	boards := newFakeBoardService(&board.Board{ID: 1, UserID: 10})
	repo := newFakeRepo()
	svc := newTestService(repo, boards, time.Now())

	_, err := svc.UpdateTask(context.Background(), 10, 404, UpdateTaskRequest{Title: strPtr("X")})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTaskForbiddenForNonOwner(t *testing.T) {
	boards := newFakeBoardService(&board.Board{ID: 1, UserID: 99})
	repo := newFakeRepo(&Task{ID: 5, BoardID: 1, Title: "T", Priority: PriorityLow, Status: StatusTodo})
	svc := newTestService(repo, boards, time.Now())

	_, err := svc.UpdateTask(context.Background(), 10, 5, UpdateTaskRequest{Title: strPtr("X")})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// --- Delete ---

func TestDeleteTaskRemovesTask(t *testing.T) {
	boards := newFakeBoardService(&board.Board{ID: 1, UserID: 10})
	repo := newFakeRepo(&Task{ID: 5, BoardID: 1, Title: "T", Priority: PriorityLow, Status: StatusTodo})
	svc := newTestService(repo, boards, time.Now())

	if err := svc.DeleteTask(context.Background(), 10, 5); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := repo.GetByID(5); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Error("task still present after delete")
	}
}

func TestDeleteTaskForbiddenForNonOwner(t *testing.T) {
	boards := newFakeBoardService(&board.Board{ID: 1, UserID: 99})
	repo := newFakeRepo(&Task{ID: 5, BoardID: 1, Title: "T", Priority: PriorityLow, Status: StatusTodo})
	svc := newTestService(repo, boards, time.Now())

	if err := svc.DeleteTask(context.Background(), 10, 5); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.tasks) != 1 {
		t.Error("task deleted despite forbidden")
	}
}

// --- Activities ---

func TestGetTaskActivitiesNewestFirst(t *testing.T) {
	boards := newFakeBoardService(&board.Board{ID: 1, UserID: 10})
	repo := newFakeRepo(&Task{ID: 5, BoardID: 1, Title: "T", Priority: PriorityLow, Status: StatusTodo})
	svc := newTestService(repo, boards, time.Now())

	ctx := context.Background()
	if _, err := svc.UpdateTask(ctx, 10, 5, UpdateTaskRequest{Status: statusPtr(StatusInProgress)}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateTask(ctx, 10, 5, UpdateTaskRequest{Title: strPtr("Renamed")}); err != nil {
		t.Fatal(err)
	}

	acts, err := svc.GetTaskActivities(10, 5)
	if err != nil {
		t.Fatalf("GetTaskActivities: %v", err)
	}
	if len(acts) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(acts))
	}
	if acts[0].Type != activity.TypeUpdated || acts[1].Type != activity.TypeMoved {
		t.Errorf("activities not newest-first: %q then %q", acts[0].Type, acts[1].Type)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
