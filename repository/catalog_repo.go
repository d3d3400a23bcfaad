package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/orenolabs/academy-board/models"
)

// CatalogRepository is the read-mostly Entity Store surface for courses,
// books, and course bookmarks.
type CatalogRepository interface {
	ListCourses(keyword string, offset, limit int) ([]models.Course, int64, error)
	GetCourse(id uint) (*models.Course, error)
	ListBooks(keyword string, offset, limit int) ([]models.Book, int64, error)
	GetBook(id uint) (*models.Book, error)
	// ToggleBookmark flips the bookmark for (userID, courseID) and reports
	// whether the course is bookmarked afterwards.
	ToggleBookmark(userID string, courseID uint) (bool, error)
	ListBookmarks(userID string) ([]models.Bookmark, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository returns a gorm-backed CatalogRepository.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListCourses(keyword string, offset, limit int) ([]models.Course, int64, error) {
	query := r.db.Model(&models.Course{})
	if keyword != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *catalogRepository) GetCourse(id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *catalogRepository) ListBooks(keyword string, offset, limit int) ([]models.Book, int64, error) {
	query := r.db.Model(&models.Book{})
	if keyword != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []models.Book
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&books).Error; err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *catalogRepository) GetBook(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *catalogRepository) ToggleBookmark(userID string, courseID uint) (bool, error) {
	var existing models.Bookmark
	err := r.db.First(&existing, "user_id = ? AND course_id = ?", userID, courseID).Error
	if err == nil {
		if err := r.db.Delete(&models.Bookmark{}, existing.ID).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := r.db.Create(&models.Bookmark{UserID: userID, CourseID: courseID}).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *catalogRepository) ListBookmarks(userID string) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Course").
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}
