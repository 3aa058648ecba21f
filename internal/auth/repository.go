package auth

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	UpdatePasswordHash(userID uint, hash string) error
	TouchLastLogin(userID uint, at time.Time) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(user *User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.db.Create(user).Error
}

// Emails are stored lower-cased, lookups normalize the same way.
func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.First(&user, userID).Error
	return user, err
}

func (r *repository) UpdatePasswordHash(userID uint, hash string) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Update("password_hash", hash).Error
}

func (r *repository) TouchLastLogin(userID uint, at time.Time) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Update("last_login_at", at).Error
}
