package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"

	"github.com/ManuelReschke/PayBridge/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/PayBridge/internal/pkg/razorpay"
)

const (
	msgNoSignature      = "No signature provided"
	msgInvalidSignature = "Invalid signature"
	msgNoDeviceID       = "No device ID found"
	msgNoAmount         = "No payment amount found"
	msgSuccess          = "Webhook received and processed successfully"
	msgInternalError    = "Internal server error"
)

// PaymentForwarder hands a verified payment to the device store without blocking.
type PaymentForwarder interface {
	Forward(amount decimal.Decimal, deviceID string)
}

type WebhookController struct {
	secret    string
	forwarder PaymentForwarder
	counters  counter.Recorder
}

func NewWebhookController(secret string, forwarder PaymentForwarder, counters counter.Recorder) *WebhookController {
	if counters == nil {
		counters = counter.Noop{}
	}
	return &WebhookController{
		secret:    secret,
		forwarder: forwarder,
		counters:  counters,
	}
}

// HandleRazorpayWebhook verifies and forwards a Razorpay payment notification.
// The 200 answer is sent as soon as the forward is dispatched; a failing write to the
// device store is not visible to Razorpay.
func (wc *WebhookController) HandleRazorpayWebhook(c *fiber.Ctx) error {
	wc.counters.Incr(counter.OutcomeReceived)

	signature := strings.TrimSpace(c.Get(razorpay.SignatureHeader))
	if signature == "" {
		wc.counters.Incr(counter.OutcomeSignatureMissing)
		log.Warn("[Webhook] No signature provided")
		return c.Status(fiber.StatusUnauthorized).SendString(msgNoSignature)
	}

	// BodyRaw: the bytes exactly as received, never a re-encoding.
	rawBody := c.BodyRaw()
	if !razorpay.VerifySignature(rawBody, signature, wc.secret) {
		wc.counters.Incr(counter.OutcomeSignatureInvalid)
		log.Warnf("[Webhook] Invalid signature from %s", c.IP())
		return c.Status(fiber.StatusUnauthorized).SendString(msgInvalidSignature)
	}

	log.Debugf("[Webhook] Received webhook payload: %s", rawBody)

	notification, err := razorpay.ParsePaymentNotification(rawBody)
	switch {
	case errors.Is(err, razorpay.ErrMissingDeviceID):
		wc.counters.Incr(counter.OutcomeDeviceMissing)
		log.Warn("[Webhook] No device ID found in webhook payload")
		return c.Status(fiber.StatusBadRequest).SendString(msgNoDeviceID)
	case errors.Is(err, razorpay.ErrMissingAmount):
		wc.counters.Incr(counter.OutcomeAmountMissing)
		log.Warn("[Webhook] No payment amount found in webhook payload")
		return c.Status(fiber.StatusBadRequest).SendString(msgNoAmount)
	case err != nil:
		wc.counters.Incr(counter.OutcomeMalformed)
		log.Errorf("[Webhook] Error processing webhook: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString(msgInternalError)
	}

	amount := notification.Amount()
	log.Infof("[Webhook] Payment %s (%s) received: %s %s for device %s",
		notification.PaymentID, notification.Event, amount.String(), notification.Currency, notification.DeviceID)

	wc.forwarder.Forward(amount, notification.DeviceID)
	wc.counters.Incr(counter.OutcomeAccepted)

	return c.Status(fiber.StatusOK).SendString(msgSuccess)
}
