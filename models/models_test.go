package models

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&User{}, &Restaurant{}, &MenuItem{}, &Order{}, &OrderItem{}))
	return db
}

func newUser(email string, role Role) *User {
	return &User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		Role:         role,
	}
}

func TestCreateUserValidation(t *testing.T) {
	db := openTestDB(t)

	tests := []struct {
		name   string
		mutate func(*User)
	}{
		{"missing email", func(u *User) { u.Email = "" }},
		{"email without at sign", func(u *User) { u.Email = "ana.example.com" }},
		{"missing name", func(u *User) { u.Name = "" }},
		{"missing password hash", func(u *User) { u.PasswordHash = "" }},
		{"short phone number", func(u *User) { u.PhoneNumber = "12345" }},
		{"unknown role", func(u *User) { u.Role = "superuser" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newUser("valid@example.com", RoleClient)
			tt.mutate(u)
			err := CreateUser(db, u)
			require.Error(t, err)
			assert.True(t, IsValidation(err))

			var count int64
			db.Model(&User{}).Count(&count)
			assert.Zero(t, count, "failed validation must not create a row")
		})
	}
}

func TestCreateUserAcceptsOptionalFields(t *testing.T) {
	db := openTestDB(t)

	u := newUser("ana@x.com", RoleClient)
	u.PhoneNumber = "0712345678"
	u.Address = "12 Main St"
	u.PaymentInformation = "visa **** 4242"
	require.NoError(t, CreateUser(db, u))
	assert.NotZero(t, u.ID)
}

func TestDuplicateEmail(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, CreateUser(db, newUser("ana@x.com", RoleClient)))
	err := CreateUser(db, newUser("ana@x.com", RoleOwner))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	db.Model(&User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUserProfileExcludesCredential(t *testing.T) {
	u := newUser("ana@x.com", RoleClient)
	profile := u.Profile()
	assert.Equal(t, "ana@x.com", profile.Email)
	// The profile type has no credential field at all; spot-check the
	// struct does not leak it through some other string field.
	assert.NotContains(t, []string{profile.Name, profile.Address, profile.PaymentInformation}, u.PasswordHash)
}

func TestMenuItemPriceBounds(t *testing.T) {
	db := openTestDB(t)
	restaurant := &Restaurant{Name: "Mama's"}
	require.NoError(t, CreateRestaurant(db, restaurant))

	for _, price := range []int{0, -1, -100} {
		item := &MenuItem{RestaurantID: restaurant.ID, Name: "Ugali", Price: price, Image: "ugali.png"}
		err := CreateMenuItem(db, item)
		require.Error(t, err, "price %d must be rejected", price)
		assert.True(t, IsValidation(err))
	}

	item := &MenuItem{RestaurantID: restaurant.ID, Name: "Ugali", Price: 1, Image: "ugali.png"}
	require.NoError(t, CreateMenuItem(db, item))
}

func TestMenuItemImageRequired(t *testing.T) {
	db := openTestDB(t)
	restaurant := &Restaurant{Name: "Mama's"}
	require.NoError(t, CreateRestaurant(db, restaurant))

	item := &MenuItem{RestaurantID: restaurant.ID, Name: "Ugali", Price: 5}
	err := CreateMenuItem(db, item)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestMenuItemUpdateViolationKeepsPriorState(t *testing.T) {
	db := openTestDB(t)
	restaurant := &Restaurant{Name: "Mama's"}
	require.NoError(t, CreateRestaurant(db, restaurant))
	item := &MenuItem{RestaurantID: restaurant.ID, Name: "Ugali", Price: 5, Image: "ugali.png"}
	require.NoError(t, CreateMenuItem(db, item))

	bad := -3
	_, err := UpdateMenuItem(db, item.ID, MenuItemPatch{Price: &bad})
	require.Error(t, err)

	stored, err := FindMenuItem(db, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Price, "aborted write must leave prior state")
}

func TestRestaurantPartialUpdate(t *testing.T) {
	db := openTestDB(t)
	restaurant := &Restaurant{Name: "Mama's", Address: "12 Main St", Cuisine: "Swahili"}
	require.NoError(t, CreateRestaurant(db, restaurant))

	name := "New"
	updated, err := UpdateRestaurant(db, restaurant.ID, RestaurantPatch{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "12 Main St", updated.Address, "absent fields stay untouched")
	assert.Equal(t, "Swahili", updated.Cuisine)
}

func TestUpdateRestaurantNotFound(t *testing.T) {
	db := openTestDB(t)
	name := "New"
	_, err := UpdateRestaurant(db, 99, RestaurantPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderForcesPendingAndDefaults(t *testing.T) {
	db := openTestDB(t)
	user := newUser("ana@x.com", RoleClient)
	require.NoError(t, CreateUser(db, user))
	restaurant := &Restaurant{Name: "Mama's"}
	require.NoError(t, CreateRestaurant(db, restaurant))

	before := time.Now()
	order := &Order{
		UserID:          user.ID,
		RestaurantID:    restaurant.ID,
		Status:          StatusCompleted, // caller cannot choose the initial status
		TotalPrice:      20,
		DeliveryAddress: "12 Main St",
	}
	require.NoError(t, CreateOrder(db, order, nil))

	assert.Equal(t, StatusPending, order.Status)
	assert.WithinRange(t, order.DeliveryTime, before.Add(time.Hour), time.Now().Add(time.Hour))
}

func TestCreateOrderValidation(t *testing.T) {
	db := openTestDB(t)
	user := newUser("ana@x.com", RoleClient)
	require.NoError(t, CreateUser(db, user))
	restaurant := &Restaurant{Name: "Mama's"}
	require.NoError(t, CreateRestaurant(db, restaurant))

	order := &Order{UserID: user.ID, RestaurantID: restaurant.ID, TotalPrice: 0, DeliveryAddress: "12 Main St"}
	err := CreateOrder(db, order, nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	order = &Order{UserID: user.ID, RestaurantID: 99, TotalPrice: 10, DeliveryAddress: "12 Main St"}
	assert.ErrorIs(t, CreateOrder(db, order, nil), ErrNotFound)
}

func TestCreateOrderWithItemsIsAtomic(t *testing.T) {
	db := openTestDB(t)
	user := newUser("ana@x.com", RoleClient)
	require.NoError(t, CreateUser(db, user))
	restaurant := &Restaurant{Name: "Mama's"}
	require.NoError(t, CreateRestaurant(db, restaurant))
	item := &MenuItem{RestaurantID: restaurant.ID, Name: "Ugali", Price: 5, Image: "ugali.png"}
	require.NoError(t, CreateMenuItem(db, item))

	// One good line and one referencing a missing item: nothing persists.
	order := &Order{UserID: user.ID, RestaurantID: restaurant.ID, TotalPrice: 10, DeliveryAddress: "12 Main St"}
	lines := []OrderLine{
		{MenuItemID: item.ID, Quantity: 2},
		{MenuItemID: 999, Quantity: 1},
	}
	require.Error(t, CreateOrder(db, order, lines))

	var orders, orderItems int64
	db.Model(&Order{}).Count(&orders)
	db.Model(&OrderItem{}).Count(&orderItems)
	assert.Zero(t, orders)
	assert.Zero(t, orderItems)

	// The same order without the bad line persists with its item.
	order = &Order{UserID: user.ID, RestaurantID: restaurant.ID, TotalPrice: 10, DeliveryAddress: "12 Main St"}
	require.NoError(t, CreateOrder(db, order, lines[:1]))
	require.Len(t, order.Items, 1)
	assert.Equal(t, 5, order.Items[0].Price, "order item snapshots the menu price")
}

// seedSubtree builds a user, restaurant, menu item, order and order item
// wired together, for the cascade tests.
func seedSubtree(t *testing.T, db *gorm.DB) (*User, *Restaurant, *MenuItem, *Order) {
	t.Helper()
	user := newUser("ana@x.com", RoleClient)
	require.NoError(t, CreateUser(db, user))
	restaurant := &Restaurant{Name: "Mama's"}
	require.NoError(t, CreateRestaurant(db, restaurant))
	item := &MenuItem{RestaurantID: restaurant.ID, Name: "Ugali", Price: 5, Image: "ugali.png"}
	require.NoError(t, CreateMenuItem(db, item))
	order := &Order{UserID: user.ID, RestaurantID: restaurant.ID, TotalPrice: 10, DeliveryAddress: "12 Main St"}
	require.NoError(t, CreateOrder(db, order, []OrderLine{{MenuItemID: item.ID, Quantity: 2}}))
	return user, restaurant, item, order
}

func TestDeleteRestaurantCascades(t *testing.T) {
	db := openTestDB(t)
	_, restaurant, _, _ := seedSubtree(t, db)

	require.NoError(t, DeleteRestaurant(db, restaurant.ID))

	var menuItems, orders, orderItems int64
	db.Model(&MenuItem{}).Where("restaurant_id = ?", restaurant.ID).Count(&menuItems)
	db.Model(&Order{}).Where("restaurant_id = ?", restaurant.ID).Count(&orders)
	db.Model(&OrderItem{}).Count(&orderItems)
	assert.Zero(t, menuItems, "no menu item may outlive its restaurant")
	assert.Zero(t, orders, "no order may outlive its restaurant")
	assert.Zero(t, orderItems, "no order item may survive the subtree")
}

func TestDeleteUserCascades(t *testing.T) {
	db := openTestDB(t)
	user, _, _, _ := seedSubtree(t, db)

	require.NoError(t, DeleteUser(db, user.ID))

	var orders, orderItems int64
	db.Model(&Order{}).Where("user_id = ?", user.ID).Count(&orders)
	db.Model(&OrderItem{}).Count(&orderItems)
	assert.Zero(t, orders)
	assert.Zero(t, orderItems)

	_, err := FindUser(db, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMenuItemCascades(t *testing.T) {
	db := openTestDB(t)
	_, _, item, order := seedSubtree(t, db)

	require.NoError(t, DeleteMenuItem(db, item.ID))

	var orderItems int64
	db.Model(&OrderItem{}).Where("menu_item_id = ?", item.ID).Count(&orderItems)
	assert.Zero(t, orderItems)

	// The order itself survives a menu item delete.
	var orders int64
	db.Model(&Order{}).Where("id = ?", order.ID).Count(&orders)
	assert.Equal(t, int64(1), orders)
}

func TestDeleteUserNotFound(t *testing.T) {
	db := openTestDB(t)
	assert.ErrorIs(t, DeleteUser(db, 42), ErrNotFound)
}

func TestOrderStatusTransitions(t *testing.T) {
	db := openTestDB(t)
	_, _, _, order := seedSubtree(t, db)

	updated, err := UpdateOrderStatus(db, order.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)

	// Terminal states stay put.
	_, err = UpdateOrderStatus(db, order.ID, StatusCancelled)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
