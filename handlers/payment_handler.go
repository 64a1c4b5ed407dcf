package handlers

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kiptoo5489/learnhub/middleware"
	"github.com/kiptoo5489/learnhub/models"
	"github.com/kiptoo5489/learnhub/notifications"
	"github.com/kiptoo5489/learnhub/payments"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	db       *gorm.DB
	checkout *payments.CheckoutClient
	intents  *payments.IntentClient
}

func NewPaymentHandler(db *gorm.DB, checkout *payments.CheckoutClient, intents *payments.IntentClient) *PaymentHandler {
	return &PaymentHandler{db: db, checkout: checkout, intents: intents}
}

// minorUnits converts a decimal course price into integer minor currency
// units.
func minorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

type CreateOrderRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
}

func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courseID, _ := uuid.Parse(req.CourseID)
	var course models.Course
	if err := h.db.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	receipt := fmt.Sprintf("rcpt_%d", time.Now().UnixMilli())
	order, err := h.checkout.CreateOrder(minorUnits(course.Price), "INR", receipt)
	if err != nil {
		log.Printf("🔥 Checkout CreateOrder API call failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Order creation failed"})
	}

	payment := models.Payment{
		UserID:          userID,
		CourseID:        course.ID,
		Amount:          course.Price,
		Currency:        order.Currency,
		Provider:        "razorpay",
		ProviderOrderID: &order.ID,
		Status:          "pending",
	}
	if err := h.db.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	return c.JSON(fiber.Map{
		"order_id": order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
	})
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// VerifyPayment checks the gateway signature, marks the payment completed and
// enrolls the buyer. A payment that is already completed acknowledges without
// creating a second enrollment.
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if !h.checkout.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid signature"})
	}

	var payment models.Payment
	if err := h.db.Where("provider_order_id = ?", req.OrderID).First(&payment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found"})
	}

	if payment.Status == "completed" {
		return c.JSON(fiber.Map{"success": true, "message": "Payment already processed"})
	}

	if err := h.completePayment(&payment, req.PaymentID); err != nil {
		log.Printf("🔥 Failed to complete payment %s: %v", payment.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process payment"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Payment verified successfully"})
}

type CreateIntentRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
}

func (h *PaymentHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courseID, _ := uuid.Parse(req.CourseID)
	var course models.Course
	if err := h.db.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	intent, err := h.intents.CreateIntent(minorUnits(course.Price), "usd", map[string]string{
		"course_id": course.ID.String(),
		"user_id":   userID.String(),
	})
	if err != nil {
		log.Printf("🔥 CreateIntent API call failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment intent"})
	}

	payment := models.Payment{
		UserID:          userID,
		CourseID:        course.ID,
		Amount:          course.Price,
		Currency:        intent.Currency,
		Provider:        "stripe",
		ProviderOrderID: &intent.ID,
		Status:          "pending",
	}
	if err := h.db.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	return c.JSON(fiber.Map{
		"client_secret": intent.ClientSecret,
		"amount":        intent.Amount,
		"currency":      intent.Currency,
	})
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

// ConfirmPayment re-fetches the intent from the gateway; only a "succeeded"
// status completes the payment and enrolls the buyer.
func (h *PaymentHandler) ConfirmPayment(c *fiber.Ctx) error {
	var req ConfirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	intent, err := h.intents.RetrieveIntent(req.PaymentIntentID)
	if err != nil {
		log.Printf("🔥 RetrieveIntent API call failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve payment intent"})
	}
	if intent.Status != "succeeded" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment not completed"})
	}

	var payment models.Payment
	if err := h.db.Where("provider_order_id = ?", req.PaymentIntentID).First(&payment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found"})
	}

	if payment.Status == "completed" {
		return c.JSON(fiber.Map{"success": true, "message": "Payment already processed"})
	}

	if err := h.completePayment(&payment, intent.ID); err != nil {
		log.Printf("🔥 Failed to complete payment %s: %v", payment.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process payment"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// completePayment flips the payment to completed and creates the enrollment
// in one transaction, then notifies the buyer.
func (h *PaymentHandler) completePayment(payment *models.Payment, providerTxnID string) error {
	err := h.db.Transaction(func(tx *gorm.DB) error {
		payment.Status = "completed"
		payment.ProviderTxnID = &providerTxnID
		if err := tx.Save(payment).Error; err != nil {
			return err
		}

		enrollment := models.Enrollment{
			UserID:   payment.UserID,
			CourseID: payment.CourseID,
			Progress: 0,
		}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		return err
	}

	go func() {
		var user models.User
		var course models.Course
		if err := h.db.First(&user, "id = ?", payment.UserID).Error; err != nil {
			return
		}
		if err := h.db.First(&course, "id = ?", payment.CourseID).Error; err != nil {
			return
		}
		notifications.SendEnrollmentConfirmation(user.Username, user.Email, course.Title)
	}()

	return nil
}
