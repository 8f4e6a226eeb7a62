// Package pagetest carries the shared fixtures for exercising pagekit
// adapters against real stores: a deterministic dataset, seeders for the
// supported backends, a gin application wiring the pagination routes, and an
// HTTP test suite that walks them. Adapter integration tests compose these
// instead of redefining their own worlds.
package pagetest

import (
	"github.com/brianvoe/gofakeit/v7"
)

// User is the primary fixture entity. Orders hang off it for the
// relationship routes; flat routes strip them.
type User struct {
	ID     int     `json:"id" gorm:"primaryKey" bson:"id"`
	Name   string  `json:"name" bson:"name"`
	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:UserID" bson:"orders,omitempty"`
}

// Order belongs to a User. IDs are sequential across the whole dataset, so
// they stay unique when stores flatten the relationship.
type Order struct {
	ID     int    `json:"id" gorm:"primaryKey" bson:"id"`
	UserID int    `json:"userId" gorm:"index" bson:"userId"`
	Name   string `json:"name" bson:"name"`
}

// Dataset is the generated fixture world.
type Dataset struct {
	Users []User
}

const (
	// DefaultDatasetSize keeps pagination walks multi-page at the default
	// page sizes without slowing seeding down.
	DefaultDatasetSize = 100

	datasetSeed = 11
)

// NewDataset generates size users with 1..10 orders each. Generation is
// seeded, so every call with the same size yields the same world; seeders
// and in-memory backends can be built independently and still agree.
func NewDataset(size int) Dataset {
	faker := gofakeit.New(datasetSeed)

	users := make([]User, 0, size)
	orderID := 0
	for id := 1; id <= size; id++ {
		user := User{
			ID:   id,
			Name: faker.Name(),
		}

		n := faker.Number(1, 10)
		for j := 0; j < n; j++ {
			orderID++
			user.Orders = append(user.Orders, Order{
				ID:     orderID,
				UserID: id,
				Name:   faker.ProductName(),
			})
		}

		users = append(users, user)
	}

	return Dataset{Users: users}
}

// FlatUsers returns the users without their orders, in id order.
func (d Dataset) FlatUsers() []User {
	users := make([]User, 0, len(d.Users))
	for _, u := range d.Users {
		u.Orders = nil
		users = append(users, u)
	}

	return users
}

// Orders returns every order of every user, in id order.
func (d Dataset) Orders() []Order {
	var orders []Order
	for _, u := range d.Users {
		orders = append(orders, u.Orders...)
	}

	return orders
}
