package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/orenolabs/academy-board/models"
)

// commentCountSelect attaches the denormalized comment count to each row in a
// single round trip; counting never happens application-side.
const commentCountSelect = "posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

// PostRepository is the Entity Store surface for posts.
type PostRepository interface {
	// ListPinned returns every pinned post of a board, newest first.
	ListPinned(board string) ([]models.Post, error)
	// ListPage returns one page of posts ordered newest first, plus the total
	// count of rows matching the filter. An empty keyword means no filter;
	// excludePinned removes the pinned group from both page and count.
	ListPage(board, keyword string, excludePinned bool, offset, limit int) ([]models.Post, int64, error)
	Get(board string, id uint) (*models.Post, error)
	Create(post *models.Post) error
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a gorm-backed PostRepository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) ListPinned(board string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Model(&models.Post{}).
		Select(commentCountSelect).
		Where("board = ? AND is_pinned = ?", board, true).
		Order("created_at DESC").
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListPage(board, keyword string, excludePinned bool, offset, limit int) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{}).Where("board = ?", board)
	if excludePinned {
		query = query.Where("is_pinned = ?", false)
	}
	if keyword != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := query.
		Select(commentCountSelect).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Get(board string, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Where("board = ?", board).
		Preload("Author").
		Preload("Attachments").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).Updates(fields).Error
}

func (r *postRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}
