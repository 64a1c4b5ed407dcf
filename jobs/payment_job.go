package jobs

import (
	"log"
	"time"

	"github.com/kiptoo5489/learnhub/models"
	"gorm.io/gorm"
)

const stalePaymentAge = 24 * time.Hour

// ReportStalePayments returns a cron func that logs payments stuck in
// "pending". A client that abandons checkout never calls the verify step, so
// these rows accumulate; the job surfaces them for operator follow-up but
// never changes their status.
func ReportStalePayments(db *gorm.DB) func() {
	return func() {
		log.Println("Running job: ReportStalePayments...")

		cutoff := time.Now().Add(-stalePaymentAge)

		var stale []models.Payment
		err := db.
			Where("status = ? AND created_at < ?", "pending", cutoff).
			Find(&stale).Error
		if err != nil {
			log.Printf("Error checking for stale payments: %v", err)
			return
		}

		if len(stale) == 0 {
			log.Println("No stale pending payments found.")
			return
		}

		for _, p := range stale {
			log.Printf("Stale pending payment %s (user %s, course %s, created %s)",
				p.ID, p.UserID, p.CourseID, p.CreatedAt.Format(time.RFC3339))
		}
		log.Printf("Found %d stale pending payment(s).", len(stale))
	}
}
