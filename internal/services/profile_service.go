package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gingerhq/ginger-backend/internal/dto"
	"github.com/gingerhq/ginger-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) GetUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// UpdateProfile replaces the profile fields. A blank star sign is derived
// from the birthday.
func (s *ProfileService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	interests := req.Interests
	if interests == nil {
		interests = []string{}
	}
	raw, err := json.Marshal(interests)
	if err != nil {
		return nil, fmt.Errorf("failed to encode interests: %w", err)
	}

	sign := req.StarSign
	if sign == "" {
		sign = StarSignForBirthday(req.Birthday)
	}

	updates := map[string]interface{}{
		"first_name": req.FirstName,
		"birthday":   req.Birthday,
		"star_sign":  sign,
		"location":   req.Location,
		"interests":  datatypes.JSON(raw),
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
