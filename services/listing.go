package services

import (
	"strings"

	"github.com/orenolabs/academy-board/models"
	"github.com/orenolabs/academy-board/repository"
)

// PageSize is fixed for both boards.
const PageSize = 10

// BoardPage is the display-ready result of a board listing. Pinned posts are
// returned in full on every page and are not counted toward Total/TotalPages.
type BoardPage struct {
	Pinned     []models.Post `json:"pinned,omitempty"`
	Items      []models.Post `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

// Listing performs keyword-filtered, paginated board retrieval and the
// pinned+normal merge for the review board.
type Listing struct {
	posts repository.PostRepository
}

// NewListing creates a Listing over the given post store.
func NewListing(posts repository.PostRepository) *Listing {
	return &Listing{posts: posts}
}

// List returns one page of board posts, newest first. A whitespace-only
// keyword means no filter. Pages are 1-based; a page beyond the last yields an
// empty Items slice. Any store failure aborts the whole call — a pinned-only
// partial result is never reported as success.
func (s *Listing) List(board, keyword string, page int) (*BoardPage, error) {
	if !models.ValidBoard(board) {
		return nil, validationf("unknown board %q", board)
	}
	keyword = strings.TrimSpace(keyword)
	if page < 1 {
		page = 1
	}

	result := &BoardPage{Page: page, PageSize: PageSize}

	// Only the review board has a pinned group; it also has to be kept out of
	// the paginated channel so the two never overlap.
	excludePinned := board == models.BoardReview
	if excludePinned {
		pinned, err := s.posts.ListPinned(board)
		if err != nil {
			return nil, mapStoreErr("list pinned posts", err)
		}
		result.Pinned = pinned
	}

	offset := (page - 1) * PageSize
	items, total, err := s.posts.ListPage(board, keyword, excludePinned, offset, PageSize)
	if err != nil {
		return nil, mapStoreErr("list posts", err)
	}
	if items == nil {
		items = []models.Post{}
	}

	result.Items = items
	result.Total = total
	result.TotalPages = int((total + PageSize - 1) / PageSize)
	return result, nil
}
