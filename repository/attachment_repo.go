package repository

import (
	"gorm.io/gorm"

	"github.com/orenolabs/academy-board/models"
)

// AttachmentRepository is the Entity Store surface for attachment records.
type AttachmentRepository interface {
	ListByPost(postID uint) ([]models.Attachment, error)
	Create(att *models.Attachment) error
	DeleteByPost(postID uint) error
}

type attachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository returns a gorm-backed AttachmentRepository.
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) ListByPost(postID uint) ([]models.Attachment, error) {
	var atts []models.Attachment
	if err := r.db.Where("post_id = ?", postID).Find(&atts).Error; err != nil {
		return nil, err
	}
	return atts, nil
}

func (r *attachmentRepository) Create(att *models.Attachment) error {
	return r.db.Create(att).Error
}

func (r *attachmentRepository) DeleteByPost(postID uint) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.Attachment{}).Error
}
