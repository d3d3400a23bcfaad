package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/orenolabs/academy-board/models"
)

// ProfileRepository is the Entity Store surface for profiles.
type ProfileRepository interface {
	Get(id string) (*models.Profile, error)
	GetByEmail(email string) (*models.Profile, error)
	GetByProvider(provider, providerID string) (*models.Profile, error)
	Create(profile *models.Profile) error
	UpdateFields(id string, fields map[string]interface{}) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a gorm-backed ProfileRepository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByProvider(provider, providerID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "provider = ? AND provider_id = ?", provider, providerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

func (r *profileRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.Profile{}).Where("id = ?", id).Updates(fields).Error
}
