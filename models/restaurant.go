package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Restaurant struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"not null"`
	Address   string     `json:"address"`
	Cuisine   string     `json:"cuisine"`
	Menu      string     `json:"menu"` // free-text menu summary
	Rating    string     `json:"rating"`
	Reviews   string     `json:"reviews"`
	MenuItems []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	Orders    []Order    `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (r *Restaurant) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name", "is required")
	}
	return nil
}

// RestaurantPatch carries a partial update: only fields present in the
// request body are set, and only those are applied.
type RestaurantPatch struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Cuisine *string `json:"cuisine"`
	Menu    *string `json:"menu"`
	Rating  *string `json:"rating"`
	Reviews *string `json:"reviews"`
}

// CreateRestaurant validates and persists a new restaurant.
func CreateRestaurant(db *gorm.DB, restaurant *Restaurant) error {
	return db.Create(restaurant).Error
}

// FindRestaurant fetches a restaurant by id.
func FindRestaurant(db *gorm.DB, id uint) (*Restaurant, error) {
	var restaurant Restaurant
	if err := db.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

// ListRestaurants returns all restaurants.
func ListRestaurants(db *gorm.DB) ([]Restaurant, error) {
	var restaurants []Restaurant
	if err := db.Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

// UpdateRestaurant applies a partial update, leaving absent fields at
// their prior value.
func UpdateRestaurant(db *gorm.DB, id uint, patch RestaurantPatch) (*Restaurant, error) {
	restaurant, err := FindRestaurant(db, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		restaurant.Name = *patch.Name
	}
	if patch.Address != nil {
		restaurant.Address = *patch.Address
	}
	if patch.Cuisine != nil {
		restaurant.Cuisine = *patch.Cuisine
	}
	if patch.Menu != nil {
		restaurant.Menu = *patch.Menu
	}
	if patch.Rating != nil {
		restaurant.Rating = *patch.Rating
	}
	if patch.Reviews != nil {
		restaurant.Reviews = *patch.Reviews
	}
	if err := db.Save(restaurant).Error; err != nil {
		return nil, err
	}
	return restaurant, nil
}

// DeleteRestaurant removes a restaurant and its whole subtree in one
// transaction: menu items, orders, and the order items hanging off either.
func DeleteRestaurant(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var restaurant Restaurant
		if err := tx.First(&restaurant, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		orderIDs := tx.Model(&Order{}).Select("id").Where("restaurant_id = ?", id)
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&OrderItem{}).Error; err != nil {
			return err
		}
		itemIDs := tx.Model(&MenuItem{}).Select("id").Where("restaurant_id = ?", id)
		if err := tx.Where("menu_item_id IN (?)", itemIDs).Delete(&OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&restaurant).Error
	})
}

// RestaurantSummary is the public read shape: no nested menu or orders.
type RestaurantSummary struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Cuisine string `json:"cuisine"`
	Menu    string `json:"menu"`
	Rating  string `json:"rating"`
	Reviews string `json:"reviews"`
}

// Summary shapes the restaurant for its public read endpoints.
func (r *Restaurant) Summary() RestaurantSummary {
	return RestaurantSummary{
		ID:      r.ID,
		Name:    r.Name,
		Address: r.Address,
		Cuisine: r.Cuisine,
		Menu:    r.Menu,
		Rating:  r.Rating,
		Reviews: r.Reviews,
	}
}
