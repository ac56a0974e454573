package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the states of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"
)

// validTransitions is the authoritative state machine: a Pending order can
// complete or cancel, terminal states stay put.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusCompleted, StatusCancelled},
}

// CanTransition checks whether an order may move between two states.
func CanTransition(from, to OrderStatus) error {
	for _, next := range validTransitions[from] {
		if next == to {
			return nil
		}
	}
	return invalid("status", fmt.Sprintf("cannot move from %s to %s", from, to))
}

type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	UserID          uint        `json:"user_id" gorm:"not null"`
	RestaurantID    uint        `json:"restaurant_id" gorm:"not null"`
	Status          OrderStatus `json:"status" gorm:"not null"`
	TotalPrice      int         `json:"total_price" gorm:"not null"`
	DeliveryTime    time.Time   `json:"delivery_time"`
	DeliveryAddress string      `json:"delivery_address" gorm:"not null"`
	Items           []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (o *Order) BeforeSave(tx *gorm.DB) error {
	if o.TotalPrice < 1 {
		return invalid("total_price", "must be positive")
	}
	if o.DeliveryAddress == "" {
		return invalid("delivery_address", "is required")
	}
	switch o.Status {
	case StatusPending, StatusCompleted, StatusCancelled:
	default:
		return invalid("status", "unknown status")
	}
	return nil
}

type OrderItem struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	OrderID    uint `json:"order_id" gorm:"not null"`
	MenuItemID uint `json:"menu_item_id" gorm:"not null"`
	Quantity   int  `json:"quantity" gorm:"not null"`
	Price      int  `json:"price" gorm:"not null"` // snapshot price at time of order
}

func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	if i.Price < 1 {
		return invalid("price", "must be positive")
	}
	if i.Quantity < 1 {
		return invalid("quantity", "must be at least 1")
	}
	return nil
}

// OrderLine describes one requested menu item when placing an order.
type OrderLine struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// CreateOrder persists an order and its items in one transaction. Status
// is forced to Pending regardless of input, and the delivery time defaults
// to one hour after creation when unset.
func CreateOrder(db *gorm.DB, order *Order, lines []OrderLine) error {
	order.Status = StatusPending
	if order.DeliveryTime.IsZero() {
		order.DeliveryTime = time.Now().Add(time.Hour)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := FindRestaurant(tx, order.RestaurantID); err != nil {
			return err
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, line := range lines {
			item, err := FindMenuItem(tx, line.MenuItemID)
			if err != nil {
				return err
			}
			if item.RestaurantID != order.RestaurantID {
				return invalid("menu_item_id", "does not belong to this restaurant")
			}
			orderItem := OrderItem{
				OrderID:    order.ID,
				MenuItemID: item.ID,
				Quantity:   line.Quantity,
				Price:      item.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, orderItem)
		}
		return nil
	})
}

// ListUserOrders returns the orders a user has placed.
func ListUserOrders(db *gorm.DB, userID uint) ([]Order, error) {
	var orders []Order
	if err := db.Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListRestaurantOrders returns the orders placed at a restaurant.
func ListRestaurantOrders(db *gorm.DB, restaurantID uint) ([]Order, error) {
	var orders []Order
	if err := db.Where("restaurant_id = ?", restaurantID).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order through the state machine.
func UpdateOrderStatus(db *gorm.DB, id uint, to OrderStatus) (*Order, error) {
	var order Order
	if err := db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := CanTransition(order.Status, to); err != nil {
		return nil, err
	}
	order.Status = to
	if err := db.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderSummary is the read shape used by the order listing endpoints.
type OrderSummary struct {
	ID              uint        `json:"id"`
	Status          OrderStatus `json:"status"`
	TotalPrice      int         `json:"total_price"`
	DeliveryTime    time.Time   `json:"delivery_time"`
	DeliveryAddress string      `json:"delivery_address"`
}

// Summary shapes the order for listing responses.
func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		ID:              o.ID,
		Status:          o.Status,
		TotalPrice:      o.TotalPrice,
		DeliveryTime:    o.DeliveryTime,
		DeliveryAddress: o.DeliveryAddress,
	}
}
