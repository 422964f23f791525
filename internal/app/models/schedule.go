package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SlotStatus string

const (
	SlotStatusOpen           SlotStatus = "open"
	SlotStatusPendingPayment SlotStatus = "pending_payment"
	SlotStatusBooked         SlotStatus = "booked"
)

// Slot is a single bookable interval inside a practitioner's day schedule.
// Owner, order id and transaction id are only ever present outside the open
// state; the repository's conditional updates keep them consistent with the
// status field.
type Slot struct {
	ID            string     `bson:"id" json:"id"`
	From          string     `bson:"from" json:"from"`
	To            string     `bson:"to" json:"to"`
	Status        SlotStatus `bson:"status" json:"status"`
	BookedBy      string     `bson:"booked_by,omitempty" json:"booked_by,omitempty"`
	OrderID       string     `bson:"order_id,omitempty" json:"order_id,omitempty"`
	TransactionID string     `bson:"transaction_id,omitempty" json:"transaction_id,omitempty"`
	Price         float64    `bson:"price,omitempty" json:"price,omitempty"`
	ReservedAt    *time.Time `bson:"reserved_at,omitempty" json:"reserved_at,omitempty"`
}

// PractitionerSchedule holds the ordered slot collection for one practitioner
// on one calendar date.
type PractitionerSchedule struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PractitionerID string             `bson:"practitioner_id" json:"practitioner_id"`
	Date           string             `bson:"date" json:"date"`
	TimeSlots      []Slot             `bson:"time_slots" json:"time_slots"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// Appointment is a booked-slot view derived from schedules.
type Appointment struct {
	ScheduleID     string `json:"schedule_id"`
	PractitionerID string `json:"practitioner_id"`
	Date           string `json:"date"`
	SlotID         string `json:"slot_id"`
	From           string `json:"from"`
	To             string `json:"to"`
	BookedBy       string `json:"booked_by"`
	Price          float64 `json:"price"`
}
