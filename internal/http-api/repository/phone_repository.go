package repository

import (
	"context"

	"userapi/internal/http-api/models"

	"gorm.io/gorm"
)

// PhoneRepository handles database operations for the phones owned by a user
type PhoneRepository interface {
	FindByUserID(ctx context.Context, userID string) ([]models.Phone, error)
	ReplaceForUser(ctx context.Context, userID string, phones []models.Phone) error
}

// phoneRepository is the GORM implementation of PhoneRepository
type phoneRepository struct {
	db *gorm.DB
}

func NewPhoneRepository(db *gorm.DB) PhoneRepository {
	return &phoneRepository{db: db}
}

func (r *phoneRepository) FindByUserID(ctx context.Context, userID string) ([]models.Phone, error) {
	var phones []models.Phone
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&phones).Error; err != nil {
		return nil, err
	}
	return phones, nil
}

// ReplaceForUser deletes every phone of the user and inserts the given list
// as new rows. Run it inside a transaction together with the user write.
func (r *phoneRepository) ReplaceForUser(ctx context.Context, userID string, phones []models.Phone) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&models.Phone{}).Error; err != nil {
		return err
	}
	if len(phones) == 0 {
		return nil
	}

	rows := make([]models.Phone, len(phones))
	for i, p := range phones {
		rows[i] = models.Phone{
			UserID:      userID,
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		}
	}
	return db.Create(&rows).Error
}
