package service

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwell/inkwell/internal/model"
)

// Input validation runs before any repository or cache access, so these
// paths are testable without backing stores.

func TestPostService_Create_BlankTitle(t *testing.T) {
	t.Parallel()

	svc := NewPostService(nil, nil, 10, nil)
	sub := &model.Subject{UserID: 1}

	cases := map[string]CreatePostInput{
		"empty title":      {Title: "", Text: "body"},
		"whitespace title": {Title: "   ", Text: "body"},
	}

	for name, input := range cases {
		if _, err := svc.Create(context.Background(), sub, input); !errors.Is(err, ErrTitleRequired) {
			t.Errorf("%s: expected ErrTitleRequired, got %v", name, err)
		}
	}
}

func TestPostService_Create_BlankText(t *testing.T) {
	t.Parallel()

	svc := NewPostService(nil, nil, 10, nil)
	sub := &model.Subject{UserID: 1}

	cases := map[string]CreatePostInput{
		"empty text":      {Title: "title", Text: ""},
		"whitespace text": {Title: "title", Text: " \n\t "},
	}

	for name, input := range cases {
		if _, err := svc.Create(context.Background(), sub, input); !errors.Is(err, ErrTextRequired) {
			t.Errorf("%s: expected ErrTextRequired, got %v", name, err)
		}
	}
}

func TestPostService_List_InvalidPage(t *testing.T) {
	t.Parallel()

	svc := NewPostService(nil, nil, 10, nil)

	for _, page := range []int{0, -1, -100} {
		if _, err := svc.List(context.Background(), page, ""); !errors.Is(err, ErrInvalidPage) {
			t.Errorf("page %d: expected ErrInvalidPage, got %v", page, err)
		}
	}
}

func TestPostService_PageSize(t *testing.T) {
	t.Parallel()

	svc := NewPostService(nil, nil, 25, nil)
	if svc.PageSize() != 25 {
		t.Errorf("expected page size 25, got %d", svc.PageSize())
	}
}
