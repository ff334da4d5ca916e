package tag

import (
	"errors"
	"sort"
	"testing"

	"flowboard/internal/app/board"
	"flowboard/internal/apperr"

	"gorm.io/gorm"
)

type fakeBoardService struct {
	boards map[uint64]*board.Board
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
	panic("not used")
}

func (f *fakeBoardService) EnsureDefaultBoard(userID uint64) (*board.Board, error) {
	panic("not used")
}

func (f *fakeBoardService) CanModify(b *board.Board, userID uint64) bool {
	return b != nil && b.UserID == userID
}

type fakeRepo struct {
	tags   map[uint64]*Tag
	nextID uint64
}

func newFakeRepo(tags ...*Tag) *fakeRepo {
	f := &fakeRepo{tags: make(map[uint64]*Tag)}
	for _, t := range tags {
		f.tags[t.ID] = t
		if t.ID > f.nextID {
			f.nextID = t.ID
		}
	}
	return f
}

func (f *fakeRepo) GetByID(id uint64) (*Tag, error) {
	t, ok := f.tags[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeRepo) GetByBoardID(boardID uint64) ([]*Tag, error) {
	return f.GetByBoardIDs([]uint64{boardID})
}

func (f *fakeRepo) GetByBoardIDs(boardIDs []uint64) ([]*Tag, error) {
	allowed := make(map[uint64]bool)
	for _, id := range boardIDs {
		allowed[id] = true
	}
	var out []*Tag
	for _, t := range f.tags {
		if allowed[t.BoardID] {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) Create(t *Tag) error {
	f.nextID++
	t.ID = f.nextID
	f.tags[t.ID] = t
	return nil
}

func (f *fakeRepo) Delete(t *Tag) error {
	delete(f.tags, t.ID)
	return nil
}

func uint64Ptr(v uint64) *uint64 { return &v }

func TestListTagsForBoard(t *testing.T) {
	boards := &fakeBoardService{boards: map[uint64]*board.Board{
		1: {ID: 1, UserID: 10},
		2: {ID: 2, UserID: 10},
	}}
	repo := newFakeRepo(
		&Tag{ID: 1, BoardID: 1, Name: "bug", Color: "#FF0000"},
		&Tag{ID: 2, BoardID: 2, Name: "docs", Color: "#00FF00"},
	)
	svc := &service{repo: repo, boardSvc: boards}

	tags, err := svc.ListTags(10, uint64Ptr(1))
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "bug" {
		t.Errorf("tags = %+v", tags)
	}
}

func TestListTagsAcrossAllBoards(t *testing.T) {
	boards := &fakeBoardService{boards: map[uint64]*board.Board{
		1: {ID: 1, UserID: 10},
		2: {ID: 2, UserID: 10},
		3: {ID: 3, UserID: 99},
	}}
	repo := newFakeRepo(
		&Tag{ID: 1, BoardID: 1, Name: "bug", Color: "#FF0000"},
		&Tag{ID: 2, BoardID: 2, Name: "docs", Color: "#00FF00"},
		&Tag{ID: 3, BoardID: 3, Name: "other-user", Color: "#0000FF"},
	)
	svc := &service{repo: repo, boardSvc: boards}

	tags, err := svc.ListTags(10, nil)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(tags))
	}
	if tags[0].Name != "bug" || tags[1].Name != "docs" {
		t.Errorf("tags = %+v", tags)
	}
}

func TestListTagsForbiddenBoard(t *testing.T) {
	boards := &fakeBoardService{boards: map[uint64]*board.Board{1: {ID: 1, UserID: 99}}}
	svc := &service{repo: newFakeRepo(), boardSvc: boards}

	if _, err := svc.ListTags(10, uint64Ptr(1)); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateTagOnOwnedBoard(t *testing.T) {
	boards := &fakeBoardService{boards: map[uint64]*board.Board{1: {ID: 1, UserID: 10}}}
	repo := newFakeRepo()
	svc := &service{repo: repo, boardSvc: boards}

	tg, err := svc.CreateTag(10, CreateTagRequest{BoardID: 1, Name: "bug", Color: "#FF0000"})
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if tg.ID == 0 || tg.BoardID != 1 {
		t.Errorf("tag = %+v", tg)
	}
}

func TestDeleteTagOwnershipViaBoard(t *testing.T) {
	boards := &fakeBoardService{boards: map[uint64]*board.Board{1: {ID: 1, UserID: 10}}}
	repo := newFakeRepo(&Tag{ID: 5, BoardID: 1, Name: "bug", Color: "#FF0000"})
	svc := &service{repo: repo, boardSvc: boards}

	if err := svc.DeleteTag(11, 5); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteTag(10, 5); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := svc.DeleteTag(10, 5); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
