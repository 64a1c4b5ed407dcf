package utils

import (
	"math/rand"
	"time"

	"github.com/kiptoo5489/learnhub/models"
	"gorm.io/gorm"
)

const serialLength = 10
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCertificateSerial returns a serial number not yet used by any
// certificate. Printed on the rendered certificate for manual verification.
func GenerateCertificateSerial(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, serialLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		serial := string(b)

		var cert models.Certificate
		err := tx.Where("serial_number = ?", serial).First(&cert).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return serial, nil
			}
			return "", err
		}
	}
}
