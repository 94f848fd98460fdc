package razorpay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMalformedPayload = errors.New("malformed webhook payload")
	ErrMissingDeviceID  = errors.New("webhook payload missing device id")
	ErrMissingAmount    = errors.New("webhook payload missing payment amount")
)

// DeviceNoteKey is the key in payment notes that names the receiving device.
const DeviceNoteKey = "device"

// PaymentNotification is the part of a payment webhook this service acts on.
type PaymentNotification struct {
	Event            string
	PaymentID        string
	Currency         string
	AmountMinorUnits decimal.Decimal
	DeviceID         string
}

// Amount converts the minor-unit amount (paise for INR) to major units.
// The division is exact; no rounding is applied.
func (n *PaymentNotification) Amount() decimal.Decimal {
	return n.AmountMinorUnits.Shift(-2)
}

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload *struct {
		Payment *struct {
			Entity *paymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type paymentEntity struct {
	ID       string          `json:"id"`
	Amount   *json.Number    `json:"amount"`
	Currency string          `json:"currency"`
	Notes    json.RawMessage `json:"notes"`
}

// ParsePaymentNotification extracts amount and device id from a payment webhook body.
// Structural problems wrap ErrMalformedPayload; a missing device id or amount returns
// ErrMissingDeviceID or ErrMissingAmount, checked in that order.
func ParsePaymentNotification(payload []byte) (*PaymentNotification, error) {
	var raw webhookEnvelope
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if raw.Payload == nil || raw.Payload.Payment == nil || raw.Payload.Payment.Entity == nil {
		return nil, fmt.Errorf("%w: payload.payment.entity not present", ErrMalformedPayload)
	}
	entity := raw.Payload.Payment.Entity

	deviceID, err := deviceFromNotes(entity.Notes)
	if err != nil {
		return nil, err
	}
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	if entity.Amount == nil || entity.Amount.String() == "" {
		return nil, ErrMissingAmount
	}
	amount, err := decimal.NewFromString(entity.Amount.String())
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q: %v", ErrMalformedPayload, entity.Amount.String(), err)
	}

	return &PaymentNotification{
		Event:            strings.TrimSpace(raw.Event),
		PaymentID:        strings.TrimSpace(entity.ID),
		Currency:         strings.TrimSpace(entity.Currency),
		AmountMinorUnits: amount,
		DeviceID:         deviceID,
	}, nil
}

// Razorpay sends notes as an object, but as an empty array when no notes were set.
func deviceFromNotes(notes json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(notes)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", nil
	}

	var values map[string]any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&values); err != nil {
		return "", fmt.Errorf("%w: notes: %v", ErrMalformedPayload, err)
	}

	switch v := values[DeviceNoteKey].(type) {
	case string:
		return strings.TrimSpace(v), nil
	case json.Number:
		return v.String(), nil
	default:
		return "", nil
	}
}
