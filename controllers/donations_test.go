package controllers

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hoperise/models"
	"hoperise/utils"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "sk_test_hoperise"

// newTestDB opens an in-memory database and creates the donation tables. The
// schema is created by hand because the MySQL enum column types in the model
// tags do not migrate onto sqlite.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	stmts := []string{
		`CREATE TABLE donations (
			id TEXT PRIMARY KEY,
			donor_name TEXT NOT NULL,
			donor_email TEXT NOT NULL,
			donor_phone TEXT,
			amount REAL NOT NULL,
			currency TEXT NOT NULL DEFAULT 'GHS',
			donation_type TEXT NOT NULL DEFAULT 'one_time',
			designation TEXT,
			anonymous BOOLEAN DEFAULT 0,
			payment_status TEXT NOT NULL DEFAULT 'pending',
			payment_reference TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE donation_receipts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			donation_id TEXT NOT NULL UNIQUE,
			receipt_number TEXT NOT NULL UNIQUE,
			generated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE settings (
			id INTEGER PRIMARY KEY,
			org_name TEXT,
			tagline TEXT,
			logo TEXT,
			contact_email TEXT,
			contact_phone TEXT,
			address TEXT,
			min_donation_amount REAL DEFAULT 1,
			receipt_prefix TEXT DEFAULT 'HRF',
			maintenance BOOLEAN DEFAULT 0,
			link_facebook TEXT,
			link_twitter TEXT,
			link_instagram TEXT
		)`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

type stubGateway struct {
	initResult   *utils.PaystackInitResult
	initErr      error
	verifyResult *utils.PaystackVerifyResult
	verifyErr    error
	verifyCalls  int
}

func (s *stubGateway) InitializeTransaction(ctx context.Context, email string, amount float64, currency, donationID string) (*utils.PaystackInitResult, error) {
	if s.initErr != nil {
		return nil, s.initErr
	}
	if s.initResult != nil {
		return s.initResult, nil
	}
	return &utils.PaystackInitResult{
		AuthorizationURL: "https://checkout.paystack.com/abc123",
		AccessCode:       "abc123",
		Reference:        "REF-" + donationID[:8],
	}, nil
}

func (s *stubGateway) VerifyTransaction(ctx context.Context, reference string) (*utils.PaystackVerifyResult, error) {
	s.verifyCalls++
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return s.verifyResult, nil
}

type stubMailer struct {
	sent []string
	err  error
}

func (m *stubMailer) SendReceiptEmail(to, donorName, receiptNumber string, amount float64, currency string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, receiptNumber)
	return nil
}

func signBody(body []byte) string {
	mac := hmac.New(sha512.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func insertPendingDonation(t *testing.T, db *gorm.DB) models.Donation {
	t.Helper()
	d := models.Donation{
		ID:            uuid.NewString(),
		DonorName:     "Ama Mensah",
		DonorEmail:    "a@b.com",
		Amount:        100,
		Currency:      "GHS",
		DonationType:  models.DonationOneTime,
		PaymentStatus: models.DonationPending,
	}
	if err := db.Create(&d).Error; err != nil {
		t.Fatalf("insert donation: %v", err)
	}
	return d
}

func deliverWebhook(c *DonationController, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/paystack", strings.NewReader(string(body)))
	req.Header.Set("X-Paystack-Signature", signature)
	rr := httptest.NewRecorder()
	c.PaystackWebhook(rr, req)
	return rr
}

func successEvent(donationID, reference string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"event": "charge.success",
		"data": map[string]interface{}{
			"reference": reference,
			"amount":    10000,
			"currency":  "GHS",
			"status":    "success",
			"metadata":  map[string]string{"donation_id": donationID},
		},
	})
	return body
}

func TestWebhook_ChargeSuccess(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)
	db := newTestDB(t)
	mailer := &stubMailer{}
	c := NewDonationController(db, &stubGateway{}, mailer)

	d := insertPendingDonation(t, db)
	body := successEvent(d.ID, "REF123")

	rr := deliverWebhook(c, body, signBody(body))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	var got models.Donation
	if err := db.First(&got, "id = ?", d.ID).Error; err != nil {
		t.Fatalf("reload donation: %v", err)
	}
	if got.PaymentStatus != models.DonationSuccessful {
		t.Fatalf("expected status successful, got %s", got.PaymentStatus)
	}
	if got.PaymentReference == nil || *got.PaymentReference != "REF123" {
		t.Fatalf("expected reference REF123, got %v", got.PaymentReference)
	}

	var receipts []models.DonationReceipt
	if err := db.Find(&receipts, "donation_id = ?", d.ID).Error; err != nil {
		t.Fatalf("load receipts: %v", err)
	}
	if len(receipts) != 1 {
		t.Fatalf("expected exactly one receipt, got %d", len(receipts))
	}
	year := fmt.Sprintf("%d", time.Now().Year())
	if !strings.HasPrefix(receipts[0].ReceiptNumber, "HRF-"+year+"-") {
		t.Fatalf("unexpected receipt number format: %s", receipts[0].ReceiptNumber)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != receipts[0].ReceiptNumber {
		t.Fatalf("expected one receipt email with number %s, got %v", receipts[0].ReceiptNumber, mailer.sent)
	}
}

func TestWebhook_ChargeFailed(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)
	db := newTestDB(t)
	c := NewDonationController(db, &stubGateway{}, &stubMailer{})

	d := insertPendingDonation(t, db)
	body, _ := json.Marshal(map[string]interface{}{
		"event": "charge.failed",
		"data": map[string]interface{}{
			"reference": "REF456",
			"metadata":  map[string]string{"donation_id": d.ID},
		},
	})

	rr := deliverWebhook(c, body, signBody(body))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var got models.Donation
	db.First(&got, "id = ?", d.ID)
	if got.PaymentStatus != models.DonationFailed {
		t.Fatalf("expected status failed, got %s", got.PaymentStatus)
	}

	var receiptCount int64
	db.Model(&models.DonationReceipt{}).Count(&receiptCount)
	if receiptCount != 0 {
		t.Fatalf("expected no receipts, got %d", receiptCount)
	}
}

func TestWebhook_DuplicateDeliveryIsIdempotent(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)
	db := newTestDB(t)
	mailer := &stubMailer{}
	c := NewDonationController(db, &stubGateway{}, mailer)

	d := insertPendingDonation(t, db)
	body := successEvent(d.ID, "REF123")
	sig := signBody(body)

	if rr := deliverWebhook(c, body, sig); rr.Code != http.StatusOK {
		t.Fatalf("first delivery: expected 200, got %d", rr.Code)
	}
	if rr := deliverWebhook(c, body, sig); rr.Code != http.StatusOK {
		t.Fatalf("second delivery: expected 200, got %d", rr.Code)
	}

	var got models.Donation
	db.First(&got, "id = ?", d.ID)
	if got.PaymentStatus != models.DonationSuccessful {
		t.Fatalf("expected status successful, got %s", got.PaymentStatus)
	}

	var receiptCount int64
	db.Model(&models.DonationReceipt{}).Where("donation_id = ?", d.ID).Count(&receiptCount)
	if receiptCount != 1 {
		t.Fatalf("expected exactly one receipt after duplicate delivery, got %d", receiptCount)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one receipt email after duplicate delivery, got %d", len(mailer.sent))
	}
}

func TestWebhook_TamperedBodyRejected(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)
	db := newTestDB(t)
	c := NewDonationController(db, &stubGateway{}, &stubMailer{})

	d := insertPendingDonation(t, db)
	original := successEvent(d.ID, "REF123")
	sig := signBody(original)

	tampered := []byte(strings.Replace(string(original), "10000", "99999", 1))
	rr := deliverWebhook(c, tampered, sig)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered body, got %d", rr.Code)
	}

	var got models.Donation
	db.First(&got, "id = ?", d.ID)
	if got.PaymentStatus != models.DonationPending {
		t.Fatalf("donation must remain pending after rejected webhook, got %s", got.PaymentStatus)
	}
	var receiptCount int64
	db.Model(&models.DonationReceipt{}).Count(&receiptCount)
	if receiptCount != 0 {
		t.Fatalf("expected no receipts after rejected webhook, got %d", receiptCount)
	}
}

func TestWebhook_MissingSignatureRejected(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)
	db := newTestDB(t)
	c := NewDonationController(db, &stubGateway{}, &stubMailer{})

	d := insertPendingDonation(t, db)
	body := successEvent(d.ID, "REF123")

	rr := deliverWebhook(c, body, "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing signature, got %d", rr.Code)
	}
	var got models.Donation
	db.First(&got, "id = ?", d.ID)
	if got.PaymentStatus != models.DonationPending {
		t.Fatalf("donation must remain pending, got %s", got.PaymentStatus)
	}
}

func TestWebhook_SuccessWithoutDonationIDIsMalformed(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)
	db := newTestDB(t)
	c := NewDonationController(db, &stubGateway{}, &stubMailer{})

	body, _ := json.Marshal(map[string]interface{}{
		"event": "charge.success",
		"data": map[string]interface{}{
			"reference": "REF789",
			"metadata":  map[string]string{},
		},
	})
	rr := deliverWebhook(c, body, signBody(body))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for success event without donation id, got %d", rr.Code)
	}
}

func TestWebhook_SuccessForUnknownDonationRejected(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)
	db := newTestDB(t)
	mailer := &stubMailer{}
	c := NewDonationController(db, &stubGateway{}, mailer)

	body := successEvent("no-such-donation-id", "REF321")
	rr := deliverWebhook(c, body, signBody(body))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown donation id, got %d (%s)", rr.Code, rr.Body.String())
	}

	var donationCount, receiptCount int64
	db.Model(&models.Donation{}).Count(&donationCount)
	db.Model(&models.DonationReceipt{}).Count(&receiptCount)
	if donationCount != 0 || receiptCount != 0 {
		t.Fatalf("unknown donation id must not create rows, got %d donations %d receipts", donationCount, receiptCount)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("expected no receipt email, got %v", mailer.sent)
	}
}

func TestWebhook_FailedWithoutDonationIDIsTolerated(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)
	db := newTestDB(t)
	c := NewDonationController(db, &stubGateway{}, &stubMailer{})

	body, _ := json.Marshal(map[string]interface{}{
		"event": "charge.failed",
		"data":  map[string]interface{}{"reference": "REF000"},
	})
	rr := deliverWebhook(c, body, signBody(body))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for failed event without donation id, got %d", rr.Code)
	}
}

func TestWebhook_UnknownEventAcknowledged(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)
	db := newTestDB(t)
	c := NewDonationController(db, &stubGateway{}, &stubMailer{})

	d := insertPendingDonation(t, db)
	body, _ := json.Marshal(map[string]interface{}{
		"event": "subscription.create",
		"data":  map[string]interface{}{"reference": "SUB1"},
	})
	rr := deliverWebhook(c, body, signBody(body))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown event, got %d", rr.Code)
	}
	var got models.Donation
	db.First(&got, "id = ?", d.ID)
	if got.PaymentStatus != models.DonationPending {
		t.Fatalf("unknown event must not change state, got %s", got.PaymentStatus)
	}
}

func TestWebhook_MailerFailureDoesNotUnwindState(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)
	db := newTestDB(t)
	mailer := &stubMailer{err: fmt.Errorf("smtp down")}
	c := NewDonationController(db, &stubGateway{}, mailer)

	d := insertPendingDonation(t, db)
	body := successEvent(d.ID, "REF123")
	rr := deliverWebhook(c, body, signBody(body))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 even when email fails, got %d", rr.Code)
	}

	var got models.Donation
	db.First(&got, "id = ?", d.ID)
	if got.PaymentStatus != models.DonationSuccessful {
		t.Fatalf("expected status successful, got %s", got.PaymentStatus)
	}
	var receiptCount int64
	db.Model(&models.DonationReceipt{}).Where("donation_id = ?", d.ID).Count(&receiptCount)
	if receiptCount != 1 {
		t.Fatalf("expected one receipt despite email failure, got %d", receiptCount)
	}
}

func TestCreateDonation(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)
	db := newTestDB(t)
	c := NewDonationController(db, &stubGateway{}, &stubMailer{})

	payload := `{"donor_name":"Ama Mensah","donor_email":"a@b.com","amount":100,"currency":"GHS"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/donations", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	c.CreateDonation(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rr.Code, rr.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Donation         models.Donation `json:"donation"`
			AuthorizationURL string          `json:"authorization_url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data.AuthorizationURL == "" {
		t.Fatalf("expected success with authorization url, got %s", rr.Body.String())
	}
	if resp.Data.Donation.PaymentStatus != models.DonationPending {
		t.Fatalf("new donation must be pending, got %s", resp.Data.Donation.PaymentStatus)
	}

	var count int64
	db.Model(&models.Donation{}).Where("payment_status = ?", models.DonationPending).Count(&count)
	if count != 1 {
		t.Fatalf("expected one pending donation, got %d", count)
	}
}

func TestCreateDonation_BelowMinimumRejected(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)
	db := newTestDB(t)
	c := NewDonationController(db, &stubGateway{}, &stubMailer{})

	payload := `{"donor_name":"Ama Mensah","donor_email":"a@b.com","amount":0.5}`
	req := httptest.NewRequest(http.MethodPost, "/v1/donations", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	c.CreateDonation(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for amount below minimum, got %d", rr.Code)
	}
	var count int64
	db.Model(&models.Donation{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no donation rows, got %d", count)
	}
}

func TestReconcileCron(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)
	t.Setenv("CRON_KEY", "cron-secret")
	db := newTestDB(t)

	gw := &stubGateway{verifyResult: &utils.PaystackVerifyResult{Status: "success", Reference: "REFOLD"}}
	c := NewDonationController(db, gw, &stubMailer{})

	d := insertPendingDonation(t, db)
	ref := "REFOLD"
	old := time.Now().Add(-1 * time.Hour)
	db.Model(&models.Donation{}).Where("id = ?", d.ID).
		Updates(map[string]interface{}{"payment_reference": ref, "created_at": old})

	req := httptest.NewRequest(http.MethodPost, "/v1/cron/reconcile", nil)
	req.Header.Set("X-CRON-KEY", "cron-secret")
	rr := httptest.NewRecorder()
	c.ReconcileCron(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	if gw.verifyCalls != 1 {
		t.Fatalf("expected one verify call, got %d", gw.verifyCalls)
	}

	var got models.Donation
	db.First(&got, "id = ?", d.ID)
	if got.PaymentStatus != models.DonationSuccessful {
		t.Fatalf("expected reconciled donation to be successful, got %s", got.PaymentStatus)
	}
	var receiptCount int64
	db.Model(&models.DonationReceipt{}).Where("donation_id = ?", d.ID).Count(&receiptCount)
	if receiptCount != 1 {
		t.Fatalf("expected one receipt after reconcile, got %d", receiptCount)
	}
}

func TestReconcileCron_RequiresKey(t *testing.T) {
	t.Setenv("CRON_KEY", "cron-secret")
	db := newTestDB(t)
	c := NewDonationController(db, &stubGateway{}, &stubMailer{})

	req := httptest.NewRequest(http.MethodPost, "/v1/cron/reconcile", nil)
	rr := httptest.NewRecorder()
	c.ReconcileCron(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cron key, got %d", rr.Code)
	}
}
