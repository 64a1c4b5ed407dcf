package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/kiptoo5489/learnhub/configs"
	"github.com/kiptoo5489/learnhub/models"
	"github.com/kiptoo5489/learnhub/utils"
	"gorm.io/gorm"
)

type CertificateService struct {
	db *gorm.DB
}

func NewCertificateService(db *gorm.DB) *CertificateService {
	return &CertificateService{db: db}
}

// Issue creates the certificate for an enrollment that just hit 100%
// progress. Issuance is idempotent per (user, course): a second call returns
// the existing record with created=false. The row is written with a
// deterministic artifact path; callers kick off RenderAndUpload once the
// surrounding transaction has committed.
func (s *CertificateService) Issue(tx *gorm.DB, user models.User, course models.Course) (*models.Certificate, bool, error) {
	var existing models.Certificate
	err := tx.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	serial, err := utils.GenerateCertificateSerial(tx)
	if err != nil {
		return nil, false, err
	}

	cert := models.Certificate{
		UserID:         user.ID,
		CourseID:       course.ID,
		SerialNumber:   serial,
		CertificateURL: fmt.Sprintf("/certificates/%s-%s.pdf", user.ID, course.ID),
	}
	if err := tx.Create(&cert).Error; err != nil {
		return nil, false, err
	}

	return &cert, true, nil
}

// RenderAndUpload builds the PDF artifact and swaps the certificate's URL to
// the uploaded copy. Must only run after the issuing transaction committed,
// otherwise the URL update can race the commit and match zero rows.
func (s *CertificateService) RenderAndUpload(cert models.Certificate, user models.User, course models.Course) {
	htmlData, err := generateCertificateHTML(user.Username, course.Title, cert.SerialNumber)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, user.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	if err := s.db.Model(&models.Certificate{}).Where("id = ?", cert.ID).
		Update("certificate_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to update certificate URL for %s: %v", cert.ID, err)
		return
	}

	log.Printf("✅ Generated and uploaded certificate %s for user %s.", cert.SerialNumber, user.ID)
}

func generateCertificateHTML(studentName, courseTitle, serial string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		CourseTitle    string
		SerialNumber   string
		CompletionDate string
	}{
		StudentName:    studentName,
		CourseTitle:    courseTitle,
		SerialNumber:   serial,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, userID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", userID, uuid.New().String()),
		Folder:       "learnhub_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
