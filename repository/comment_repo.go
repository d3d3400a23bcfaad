package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/orenolabs/academy-board/models"
)

// CommentRepository is the Entity Store surface for comments.
type CommentRepository interface {
	// ListByPost returns a post's comments oldest first.
	ListByPost(postID uint) ([]models.Comment, error)
	Get(id uint) (*models.Comment, error)
	Create(comment *models.Comment) error
	Delete(id uint) error
	DeleteByPost(postID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a gorm-backed CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ListByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Preload("Author").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Get(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

func (r *commentRepository) DeleteByPost(postID uint) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.Comment{}).Error
}
