package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"hoperise/middleware"
	"hoperise/models"
	"hoperise/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// PaymentGateway is the payment provider boundary. The production
// implementation is utils.PaystackClient; tests substitute a stub.
type PaymentGateway interface {
	InitializeTransaction(ctx context.Context, email string, amount float64, currency, donationID string) (*utils.PaystackInitResult, error)
	VerifyTransaction(ctx context.Context, reference string) (*utils.PaystackVerifyResult, error)
}

// ReceiptMailer delivers the confirmation email. Failures are logged and never
// roll back a committed donation or receipt.
type ReceiptMailer interface {
	SendReceiptEmail(to, donorName, receiptNumber string, amount float64, currency string) error
}

// errDonationUnknown reports a confirmation for a donation id that matches no
// row. The webhook turns it into a client error instead of acknowledging.
var errDonationUnknown = errors.New("unknown donation")

// DonationController handles the donation payment confirmation flow.
type DonationController struct {
	DB      *gorm.DB
	Gateway PaymentGateway
	Mailer  ReceiptMailer
}

func NewDonationController(db *gorm.DB, gateway PaymentGateway, mailer ReceiptMailer) *DonationController {
	return &DonationController{DB: db, Gateway: gateway, Mailer: mailer}
}

type createDonationRequest struct {
	DonorName    string  `json:"donor_name" validate:"required,nameok"`
	DonorEmail   string  `json:"donor_email" validate:"required,email"`
	DonorPhone   string  `json:"donor_phone" validate:"phone"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	DonationType string  `json:"donation_type" validate:"oneof=one_time|monthly|quarterly|annual"`
	Designation  string  `json:"designation"`
	Anonymous    bool    `json:"anonymous"`
}

// minDonationAmount reads the configured floor from settings, falling back to
// the MIN_DONATION_AMOUNT env var and finally 1.00.
func (c *DonationController) minDonationAmount() float64 {
	var setting models.Setting
	if err := c.DB.First(&setting).Error; err == nil && setting.MinDonationAmount > 0 {
		return setting.MinDonationAmount
	}
	if s := os.Getenv("MIN_DONATION_AMOUNT"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			return v
		}
	}
	return 1.00
}

// CreateDonation records a pending donation and opens a checkout with the
// payment gateway. The donation id travels in the transaction metadata so the
// webhook can find the row later.
func (c *DonationController) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	min := c.minDonationAmount()
	if req.Amount < min {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Donation amount is below the minimum",
		})
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "GHS"
	}
	donationType := req.DonationType
	if donationType == "" {
		donationType = models.DonationOneTime
	}

	donation := models.Donation{
		ID:            uuid.NewString(),
		DonorName:     req.DonorName,
		DonorEmail:    strings.ToLower(strings.TrimSpace(req.DonorEmail)),
		Amount:        utils.RoundFloat(req.Amount, 2),
		Currency:      currency,
		DonationType:  donationType,
		Designation:   req.Designation,
		Anonymous:     req.Anonymous,
		PaymentStatus: models.DonationPending,
	}
	if req.DonorPhone != "" {
		phone := req.DonorPhone
		donation.DonorPhone = &phone
	}

	if err := c.DB.Create(&donation).Error; err != nil {
		log.Printf("[donations] create failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Could not record donation",
		})
		return
	}

	init, err := c.Gateway.InitializeTransaction(r.Context(), donation.DonorEmail, donation.Amount, donation.Currency, donation.ID)
	if err != nil {
		log.Printf("[donations] gateway initialize failed for %s: %v", donation.ID, err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{
			Success: false,
			Message: "Payment could not be started. Please try again later.",
		})
		return
	}

	ref := init.Reference
	if err := c.DB.Model(&models.Donation{}).Where("id = ?", donation.ID).
		Update("payment_reference", ref).Error; err != nil {
		log.Printf("[donations] storing reference for %s failed: %v", donation.ID, err)
	}
	donation.PaymentReference = &ref

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Donation created",
		Data: map[string]interface{}{
			"donation":          donation,
			"authorization_url": init.AuthorizationURL,
			"access_code":       init.AccessCode,
		},
	})
}

// GetDonation returns a donation with its receipt when one exists.
func (c *DonationController) GetDonation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var donation models.Donation
	if err := c.DB.First(&donation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Donation not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load donation"})
		return
	}

	data := map[string]interface{}{"donation": donation}
	var receipt models.DonationReceipt
	if err := c.DB.First(&receipt, "donation_id = ?", donation.ID).Error; err == nil {
		data["receipt"] = receipt
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: data})
}

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		Status    string `json:"status"`
		Metadata  struct {
			DonationID string `json:"donation_id"`
		} `json:"metadata"`
	} `json:"data"`
}

// PaystackWebhook authenticates and applies payment callbacks. The signature
// check runs over the exact raw body bytes before any parsing; a mismatch
// never mutates state.
func (c *DonationController) PaystackWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Could not read body"})
		return
	}

	secret := os.Getenv("PAYSTACK_SECRET_KEY")
	signature := r.Header.Get("X-Paystack-Signature")
	if !utils.ValidPaystackSignature(secret, body, signature) {
		log.Printf("[webhook] signature mismatch from %s", r.RemoteAddr)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid signature"})
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid payload"})
		return
	}

	switch event.Event {
	case "charge.success":
		donationID := event.Data.Metadata.DonationID
		if donationID == "" {
			log.Printf("[webhook] charge.success missing donation_id, reference=%s", event.Data.Reference)
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Missing donation id"})
			return
		}
		if err := c.markDonationSuccessful(donationID, event.Data.Reference); err != nil {
			if errors.Is(err, errDonationUnknown) {
				log.Printf("[webhook] charge.success for unknown donation %s, reference=%s", donationID, event.Data.Reference)
				utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Unknown donation"})
				return
			}
			log.Printf("[webhook] charge.success for %s failed: %v", donationID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not process event"})
			return
		}

	case "charge.failed":
		donationID := event.Data.Metadata.DonationID
		if donationID == "" {
			// Failure notifications are best-effort
			log.Printf("[webhook] charge.failed without donation_id, reference=%s", event.Data.Reference)
			break
		}
		if err := c.markDonationFailed(donationID, event.Data.Reference); err != nil {
			log.Printf("[webhook] charge.failed for %s failed: %v", donationID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not process event"})
			return
		}

	default:
		log.Printf("[webhook] ignoring event %q", event.Event)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK"})
}

// markDonationSuccessful applies the pending -> successful transition and
// issues the receipt. The update is a compare-and-set on the current status so
// duplicate deliveries are safe no-ops and never mint a second receipt.
func (c *DonationController) markDonationSuccessful(donationID, reference string) error {
	var donation models.Donation
	var receiptNumber string
	transitioned := false

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Donation{}).
			Where("id = ? AND payment_status = ?", donationID, models.DonationPending).
			Updates(map[string]interface{}{
				"payment_status":    models.DonationSuccessful,
				"payment_reference": reference,
				"updated_at":        time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Either the donation is already terminal (duplicate delivery,
			// safe no-op) or the id matches nothing we ever issued. Only the
			// former is acknowledged; a row is never created here.
			err := tx.First(&donation, "id = ?", donationID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errDonationUnknown
			}
			return err
		}
		transitioned = true

		if err := tx.First(&donation, "id = ?", donationID).Error; err != nil {
			return err
		}

		// Receipt numbers carry a uniqueness constraint; retry on collision.
		var lastErr error
		for attempt := 0; attempt < 3; attempt++ {
			receiptNumber = utils.GenerateReceiptNumber()
			receipt := models.DonationReceipt{
				DonationID:    donationID,
				ReceiptNumber: receiptNumber,
				GeneratedAt:   time.Now(),
			}
			lastErr = tx.Create(&receipt).Error
			if lastErr == nil {
				return nil
			}
		}
		return lastErr
	})
	if err != nil {
		return err
	}

	if transitioned && c.Mailer != nil {
		if mailErr := c.Mailer.SendReceiptEmail(donation.DonorEmail, donation.DonorName, receiptNumber, donation.Amount, donation.Currency); mailErr != nil {
			log.Printf("[webhook] receipt email for %s failed: %v", donationID, mailErr)
		}
	}
	return nil
}

// markDonationFailed applies the pending -> failed transition. Terminal states
// are never overwritten.
func (c *DonationController) markDonationFailed(donationID, reference string) error {
	res := c.DB.Model(&models.Donation{}).
		Where("id = ? AND payment_status = ?", donationID, models.DonationPending).
		Updates(map[string]interface{}{
			"payment_status":    models.DonationFailed,
			"payment_reference": reference,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		log.Printf("[webhook] charge.failed for %s matched no pending donation", donationID)
	}
	return nil
}

// ReconcileCron re-checks pending donations against the gateway. Intended to
// be hit by a scheduler; protected by the X-CRON-KEY header.
func (c *DonationController) ReconcileCron(w http.ResponseWriter, r *http.Request) {
	cronKey := os.Getenv("CRON_KEY")
	if cronKey == "" || r.Header.Get("X-CRON-KEY") != cronKey {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	cutoff := time.Now().Add(-10 * time.Minute)
	var pending []models.Donation
	if err := c.DB.Where("payment_status = ? AND payment_reference IS NOT NULL AND created_at < ?", models.DonationPending, cutoff).
		Limit(100).Find(&pending).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load pending donations"})
		return
	}

	settled, failed := 0, 0
	for _, d := range pending {
		if d.PaymentReference == nil {
			continue
		}
		result, err := c.Gateway.VerifyTransaction(r.Context(), *d.PaymentReference)
		if err != nil {
			log.Printf("[reconcile] verify %s failed: %v", d.ID, err)
			continue
		}
		switch {
		case utils.IsPaystackSuccessStatus(result.Status):
			if err := c.markDonationSuccessful(d.ID, result.Reference); err != nil {
				log.Printf("[reconcile] settle %s failed: %v", d.ID, err)
				continue
			}
			settled++
		case result.Status == "failed" || result.Status == "abandoned":
			if err := c.markDonationFailed(d.ID, result.Reference); err != nil {
				log.Printf("[reconcile] fail %s failed: %v", d.ID, err)
				continue
			}
			failed++
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Reconciliation complete",
		Data: map[string]interface{}{
			"checked": len(pending),
			"settled": settled,
			"failed":  failed,
		},
	})
}
