package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role defines allowed roles in the system. Roles are not hierarchical:
// an admin does not implicitly pass a restaurant_owner check.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
	RoleOwner  Role = "restaurant_owner"
)

// Valid reports whether r is one of the three enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleOwner:
		return true
	}
	return false
}

type User struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Name               string    `json:"name" gorm:"not null"`
	Email              string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash       string    `json:"-" gorm:"not null"`
	Address            string    `json:"address"`
	PhoneNumber        string    `json:"phone_number"`
	PaymentInformation string    `json:"payment_information"`
	Role               Role      `json:"role" gorm:"not null"`
	Orders             []Order   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BeforeSave enforces the user's field invariants on every write path,
// independent of whatever handler issued the write.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(u.Name) == "" {
		return invalid("name", "is required")
	}
	if u.Email == "" {
		return invalid("email", "is required")
	}
	if !strings.Contains(u.Email, "@") {
		return invalid("email", "invalid format")
	}
	if u.PasswordHash == "" {
		return invalid("password", "is required")
	}
	if u.PhoneNumber != "" && len(u.PhoneNumber) < 10 {
		return invalid("phone_number", "must be at least 10 digits")
	}
	if !u.Role.Valid() {
		return invalid("role", "must be admin, client or restaurant_owner")
	}
	return nil
}

// CreateUser validates and persists a new user. The email must be unique
// process-wide; a duplicate fails with ErrDuplicateEmail and creates no row.
func CreateUser(db *gorm.DB, user *User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmail
		}
		return tx.Create(user).Error
	})
}

// FindUser fetches a user by id, mapping gorm's miss to ErrNotFound.
func FindUser(db *gorm.DB, id uint) (*User, error) {
	var user User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail fetches a user by email for login.
func FindUserByEmail(db *gorm.DB, email string) (*User, error) {
	var user User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user and, in the same transaction, every order the
// user placed and every item of those orders. A failure partway through
// leaves the store untouched.
func DeleteUser(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		orderIDs := tx.Model(&Order{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// UserProfile is the outward shape of a user. The credential field has no
// place here: no read path may return, serialize or log it.
type UserProfile struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Address            string `json:"address"`
	PhoneNumber        string `json:"phone_number"`
	PaymentInformation string `json:"payment_information"`
	Role               Role   `json:"role"`
}

// Profile shapes the user for API responses.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Address:            u.Address,
		PhoneNumber:        u.PhoneNumber,
		PaymentInformation: u.PaymentInformation,
		Role:               u.Role,
	}
}
