package models

import "time"

// Payment status values for a donation. A donation starts Pending and moves to
// Successful or Failed exactly once; terminal states are never overwritten.
const (
	DonationPending    = "pending"
	DonationSuccessful = "successful"
	DonationFailed     = "failed"
)

// Donation type values accepted from the donation form.
const (
	DonationOneTime   = "one_time"
	DonationMonthly   = "monthly"
	DonationQuarterly = "quarterly"
	DonationAnnual    = "annual"
)

type Donation struct {
	ID               string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	DonorName        string    `gorm:"size:100;not null" json:"donor_name"`
	DonorEmail       string    `gorm:"size:191;not null;index" json:"donor_email"`
	DonorPhone       *string   `gorm:"size:20" json:"donor_phone,omitempty"`
	Amount           float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency         string    `gorm:"size:3;not null;default:'GHS'" json:"currency"`
	DonationType     string    `gorm:"type:enum('one_time','monthly','quarterly','annual');not null;default:'one_time'" json:"donation_type"`
	Designation      string    `gorm:"size:100" json:"designation"`
	Anonymous        bool      `gorm:"default:false" json:"anonymous"`
	PaymentStatus    string    `gorm:"type:enum('pending','successful','failed');not null;default:'pending';index" json:"payment_status"`
	PaymentReference *string   `gorm:"type:varchar(191)" json:"payment_reference,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Donation) TableName() string {
	return "donations"
}

// DonationReceipt is created once when a donation reaches successful and is
// immutable afterwards. The unique index on DonationID guarantees at most one
// receipt per donation even under duplicate webhook delivery.
type DonationReceipt struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DonationID    string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"donation_id"`
	ReceiptNumber string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"receipt_number"`
	GeneratedAt   time.Time `gorm:"not null" json:"generated_at"`
}

func (DonationReceipt) TableName() string {
	return "donation_receipts"
}
