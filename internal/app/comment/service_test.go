package comment

import (
	"context"
	"errors"
	"testing"

	"flowboard/internal/app/activity"
	"flowboard/internal/app/task"
	"flowboard/internal/apperr"
	"flowboard/internal/utils"

	"gorm.io/gorm"
)

// --- Test fakes ---

// fakeTaskService grants access to task 1 (board 1) for user 10 only.
type fakeTaskService struct{}

func (fakeTaskService) GetTask(userID, taskID uint64) (*task.Task, error) {
	if taskID != 1 {
		return nil, apperr.NotFound("task")
	}
	if userID != 10 {
		return nil, apperr.Forbidden("board access")
	}
	return &task.Task{ID: 1, BoardID: 1, Title: "T", Priority: task.PriorityLow, Status: task.StatusTodo}, nil
}

func (fakeTaskService) CreateTask(ctx context.Context, userID uint64, req task.CreateTaskRequest) (*task.Task, error) {
	panic("not used")
}

func (fakeTaskService) UpdateTask(ctx context.Context, userID, taskID uint64, req task.UpdateTaskRequest) (*task.Task, error) {
	panic("not used")
}

func (fakeTaskService) DeleteTask(ctx context.Context, userID, taskID uint64) error {
	panic("not used")
}

func (fakeTaskService) GetTasksByBoardID(ctx context.Context, userID, boardID uint64) ([]*task.Task, error) {
	panic("not used")
}

func (fakeTaskService) ListTasks(ctx context.Context, userID uint64, q task.ListQuery) ([]*task.Task, int64, error) {
	panic("not used")
}

func (fakeTaskService) GetTaskActivities(userID, taskID uint64) ([]*activity.Activity, error) {
	panic("not used")
}

type fakeRepo struct {
	comments map[uint64]*Comment
	nextID   uint64
}

func newFakeRepo(comments ...*Comment) *fakeRepo {
	f := &fakeRepo{comments: make(map[uint64]*Comment)}
	for _, cm := range comments {
		f.comments[cm.ID] = cm
		if cm.ID > f.nextID {
			f.nextID = cm.ID
		}
	}
	return f
}

func (f *fakeRepo) GetByID(id uint64) (*Comment, error) {
	cm, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cm, nil
}

func (f *fakeRepo) GetByTaskID(taskID uint64) ([]*Comment, error) {
	var out []*Comment
	for _, cm := range f.comments {
		if cm.TaskID == taskID {
			out = append(out, cm)
		}
	}
	return out, nil
}

func (f *fakeRepo) Create(cm *Comment) error {
	f.nextID++
	cm.ID = f.nextID
	f.comments[cm.ID] = cm
	return nil
}

func (f *fakeRepo) Delete(cm *Comment) error {
	delete(f.comments, cm.ID)
	return nil
}

func newTestService(repo *fakeRepo) *service {
	return &service{repo: repo, taskSvc: fakeTaskService{}, eventBus: utils.NewEventBus()}
}

// --- Tests ---

func TestCreateCommentOnOwnedTask(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	cm, err := svc.CreateComment(10, 1, CreateCommentRequest{Content: "Looks good"})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if cm.ID == 0 {
		t.Error("expected generated comment ID")
	}
	if cm.UserID != 10 || cm.TaskID != 1 {
		t.Errorf("comment = %+v", cm)
	}
}

func TestCreateCommentForbiddenOnUnownedTask(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.CreateComment(11, 1, CreateCommentRequest{Content: "Sneaky"})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.comments) != 0 {
		t.Error("comment persisted despite forbidden")
	}
}

func TestListCommentsChecksTaskAccess(t *testing.T) {
	repo := newFakeRepo(&Comment{ID: 1, TaskID: 1, UserID: 10, Content: "Hi"})
	svc := newTestService(repo)

	comments, err := svc.ListComments(10, 1)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("got %d comments, want 1", len(comments))
	}

	if _, err := svc.ListComments(11, 1); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-owner, got %v", err)
	}
	if _, err := svc.ListComments(10, 404); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	repo := newFakeRepo(&Comment{ID: 1, TaskID: 1, UserID: 10, Content: "Mine"})
	svc := newTestService(repo)

	// Not the author, even though user 11 might see the task.
	if err := svc.DeleteComment(11, 1); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.comments) != 1 {
		t.Error("comment deleted despite forbidden")
	}

	if err := svc.DeleteComment(10, 1); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	if len(repo.comments) != 0 {
		t.Error("comment still present after author delete")
	}
}

func TestDeleteCommentNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	if err := svc.DeleteComment(10, 404); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
