package models

import (
	"time"
)

// Customer is a registered customer of the food ordering app
type Customer struct {
	ID            int64     `json:"-" gorm:"primaryKey;autoIncrement"`
	UUID          string    `json:"id" gorm:"column:uuid;size:200;uniqueIndex;not null"`
	FirstName     string    `json:"firstName" gorm:"column:first_name;size:30;not null"`
	LastName      string    `json:"lastName" gorm:"column:last_name;size:30"`
	Email         string    `json:"emailAddress" gorm:"column:email;size:50;uniqueIndex:customer_email_key;not null"`
	ContactNumber string    `json:"contactNumber" gorm:"column:contact_number;size:30;uniqueIndex:customer_contact_number_key;not null"`
	Password      string    `json:"-" gorm:"column:password;size:255;not null"` // bcrypt hash, salt included
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Customer) TableName() string {
	return "customer"
}
