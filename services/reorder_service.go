// services/reorder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"smartbuild-backend/models"
	"smartbuild-backend/stores"
)

// ReorderAlertService scans for low-stock variants once a day and texts
// the shop owner so a purchase order can be raised.
type ReorderAlertService struct {
	db      *gorm.DB
	catalog stores.CatalogStore
	client  *twilio.RestClient
	from    string
	to      string
}

func NewReorderAlertService(db *gorm.DB, catalog stores.CatalogStore) *ReorderAlertService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReorderAlertService{
		db:      db,
		catalog: catalog,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_PHONE_NUMBER"),
		to:   os.Getenv("ALERT_PHONE_NUMBER"),
	}
}

// Enabled reports whether alerting is configured. Without Twilio
// credentials the scheduler is not started.
func (s *ReorderAlertService) Enabled() bool {
	return os.Getenv("TWILIO_ACCOUNT_SID") != "" && s.from != "" && s.to != ""
}

func (s *ReorderAlertService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendLowStockAlerts()
	})

	c.Start()
	log.Println("Reorder alert scheduler started")
}

func (s *ReorderAlertService) SendLowStockAlerts() {
	log.Println("Starting low-stock alert processing...")

	variants, err := s.catalog.ListLowStockVariants()
	if err != nil {
		log.Printf("Failed to fetch low-stock variants: %v", err)
		return
	}
	if len(variants) == 0 {
		log.Println("No low-stock variants, nothing to alert")
		return
	}

	for _, variant := range variants {
		product, err := s.catalog.GetProduct(variant.ProductID)
		if err != nil {
			log.Printf("Variant %s: failed to load product: %v", variant.ID, err)
			continue
		}

		message := fmt.Sprintf(
			"Low stock: %s (%s) is down to %d units (threshold %d). Consider reordering.",
			product.Name, variant.Details(), variant.QuantityInStock, variant.LowStockThreshold,
		)

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(s.to)
		params.SetFrom(s.from)
		params.SetBody(message)

		resp, err := s.client.Api.CreateMessage(params)
		status := "sent"
		errorMsg := ""

		if err != nil {
			log.Printf("Failed to send alert for variant %s: %v", variant.ID, err)
			status = "failed"
			errorMsg = err.Error()
		} else if resp.Sid != nil {
			log.Printf("Alert sent for variant %s, SID: %s", variant.ID, *resp.Sid)
		} else {
			log.Printf("Alert sent for variant %s, but no SID returned", variant.ID)
		}

		alertLog := models.ReorderAlertLog{
			ProductID:    product.ID,
			VariantID:    variant.ID,
			Message:      message,
			Status:       status,
			ErrorMessage: errorMsg,
			Channel:      "sms",
			SentAt:       time.Now(),
		}

		if err := s.db.Create(&alertLog).Error; err != nil {
			log.Printf("Failed to log alert for variant %s: %v", variant.ID, err)
		}
	}

	log.Println("Low-stock alert processing completed")
}
