package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        int       `json:"price" gorm:"not null"`
	Image        string    `json:"image" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (m *MenuItem) BeforeSave(tx *gorm.DB) error {
	if m.Name == "" {
		return invalid("name", "is required")
	}
	if m.Price < 1 {
		return invalid("price", "must be positive")
	}
	if m.Image == "" {
		return invalid("image", "must be present")
	}
	return nil
}

// MenuItemPatch carries a partial update for a menu item.
type MenuItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
	Image       *string `json:"image"`
}

// CreateMenuItem validates and persists a new menu item for a restaurant.
// The restaurant must exist.
func CreateMenuItem(db *gorm.DB, item *MenuItem) error {
	if _, err := FindRestaurant(db, item.RestaurantID); err != nil {
		return err
	}
	return db.Create(item).Error
}

// FindMenuItem fetches a menu item by id.
func FindMenuItem(db *gorm.DB, id uint) (*MenuItem, error) {
	var item MenuItem
	if err := db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ListMenuItems returns the menu of a restaurant.
func ListMenuItems(db *gorm.DB, restaurantID uint) ([]MenuItem, error) {
	var items []MenuItem
	if err := db.Where("restaurant_id = ?", restaurantID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateMenuItem applies a partial update. An invariant violation aborts
// the write, leaving the stored row unchanged.
func UpdateMenuItem(db *gorm.DB, id uint, patch MenuItemPatch) (*MenuItem, error) {
	item, err := FindMenuItem(db, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Image != nil {
		item.Image = *patch.Image
	}
	if err := db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem removes a menu item and every order item referencing it,
// in one transaction.
func DeleteMenuItem(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var item MenuItem
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("menu_item_id = ?", id).Delete(&OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}
