package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orenolabs/academy-board/models"
)

func TestListUnknownBoard(t *testing.T) {
	posts := new(mockPostRepo)
	svc := NewListing(posts)

	_, err := svc.List("announcements", "", 1)

	assert.True(t, errors.Is(err, ErrValidation))
	posts.AssertNotCalled(t, "ListPage")
}

func TestListReviewMergesPinnedAndPage(t *testing.T) {
	posts := new(mockPostRepo)
	pinned := []models.Post{{ID: 7, Board: models.BoardReview, IsPinned: true}}
	page := []models.Post{{ID: 5, Board: models.BoardReview}, {ID: 4, Board: models.BoardReview}}

	posts.On("ListPinned", models.BoardReview).Return(pinned, nil)
	posts.On("ListPage", models.BoardReview, "", true, 0, PageSize).Return(page, int64(12), nil)

	svc := NewListing(posts)
	result, err := svc.List(models.BoardReview, "", 1)
	require.NoError(t, err)

	assert.Equal(t, pinned, result.Pinned)
	assert.Equal(t, page, result.Items)
	assert.Equal(t, int64(12), result.Total)
	assert.Equal(t, 2, result.TotalPages)
	posts.AssertExpectations(t)
}

func TestListFAQSkipsPinnedQuery(t *testing.T) {
	posts := new(mockPostRepo)
	posts.On("ListPage", models.BoardFAQ, "", false, 0, PageSize).
		Return([]models.Post{{ID: 1, Board: models.BoardFAQ}}, int64(1), nil)

	svc := NewListing(posts)
	result, err := svc.List(models.BoardFAQ, "", 1)
	require.NoError(t, err)

	assert.Empty(t, result.Pinned)
	assert.Len(t, result.Items, 1)
	posts.AssertNotCalled(t, "ListPinned")
	posts.AssertExpectations(t)
}

func TestListKeywordTrimmedAndPassedThrough(t *testing.T) {
	posts := new(mockPostRepo)
	posts.On("ListPage", models.BoardFAQ, "refund", false, 0, PageSize).
		Return([]models.Post{}, int64(0), nil)

	svc := NewListing(posts)
	_, err := svc.List(models.BoardFAQ, "  refund  ", 1)
	require.NoError(t, err)
	posts.AssertExpectations(t)
}

func TestListPageClampAndOffset(t *testing.T) {
	posts := new(mockPostRepo)
	// page 0 clamps to 1
	posts.On("ListPage", models.BoardFAQ, "", false, 0, PageSize).
		Return([]models.Post{}, int64(0), nil).Once()
	// page 3 offsets by 20
	posts.On("ListPage", models.BoardFAQ, "", false, 20, PageSize).
		Return([]models.Post{}, int64(0), nil).Once()

	svc := NewListing(posts)

	result, err := svc.List(models.BoardFAQ, "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)

	result, err = svc.List(models.BoardFAQ, "", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Page)
	posts.AssertExpectations(t)
}

func TestListOutOfRangePageIsEmptyNotError(t *testing.T) {
	posts := new(mockPostRepo)
	posts.On("ListPinned", models.BoardReview).Return([]models.Post{}, nil)
	posts.On("ListPage", models.BoardReview, "", true, 990, PageSize).
		Return(nil, int64(12), nil)

	svc := NewListing(posts)
	result, err := svc.List(models.BoardReview, "", 100)
	require.NoError(t, err)

	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(12), result.Total)
	assert.Equal(t, 2, result.TotalPages)
}

func TestListTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		pages int
	}{
		{0, 0},
		{1, 1},
		{10, 1},
		{11, 2},
		{20, 2},
		{21, 3},
	}
	for _, tc := range cases {
		posts := new(mockPostRepo)
		posts.On("ListPage", models.BoardFAQ, "", false, 0, PageSize).
			Return([]models.Post{}, tc.total, nil)

		result, err := NewListing(posts).List(models.BoardFAQ, "", 1)
		require.NoError(t, err)
		assert.Equal(t, tc.pages, result.TotalPages, "total=%d", tc.total)
	}
}

func TestListPinnedFailureAbortsWholeCall(t *testing.T) {
	posts := new(mockPostRepo)
	posts.On("ListPinned", models.BoardReview).Return(nil, errors.New("connection reset"))

	result, err := NewListing(posts).List(models.BoardReview, "", 1)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.False(t, errors.Is(err, ErrValidation))
	posts.AssertNotCalled(t, "ListPage")
}

func TestListPageFailureAbortsWholeCall(t *testing.T) {
	posts := new(mockPostRepo)
	posts.On("ListPinned", models.BoardReview).Return([]models.Post{{ID: 7}}, nil)
	posts.On("ListPage", models.BoardReview, "", true, 0, PageSize).
		Return(nil, int64(0), errors.New("connection reset"))

	result, err := NewListing(posts).List(models.BoardReview, "", 1)

	// A pinned-only partial page must never be reported as success.
	assert.Error(t, err)
	assert.Nil(t, result)
}
