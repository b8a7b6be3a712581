package model

import "time"

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

type Registration struct {
	ID                    string    `db:"id" json:"id"`
	FullName              string    `db:"full_name" json:"full_name"`
	Email                 string    `db:"email" json:"email"`
	Phone                 string    `db:"phone" json:"phone"`
	Category              string    `db:"category" json:"category"`
	Organization          string    `db:"organization" json:"organization,omitempty"`
	Designation           string    `db:"designation" json:"designation,omitempty"`
	Address               string    `db:"address" json:"address,omitempty"`
	AccommodationRequired bool      `db:"accommodation_required" json:"accommodation_required"`
	RoomType              string    `db:"room_type" json:"room_type,omitempty"`
	CheckInDate           string    `db:"check_in_date" json:"check_in_date,omitempty"`
	CheckOutDate          string    `db:"check_out_date" json:"check_out_date,omitempty"`
	Amount                int64     `db:"amount" json:"amount"`
	PaymentStatus         string    `db:"payment_status" json:"payment_status"`
	OrderID               *string   `db:"order_id" json:"order_id"`
	PaymentID             *string   `db:"payment_id" json:"payment_id"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
}

type ContactMessage struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
