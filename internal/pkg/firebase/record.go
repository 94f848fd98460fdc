package firebase

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ForwardRecord is the document stored at devices/{deviceId}/payment.
type ForwardRecord struct {
	Timestamp int64 // epoch milliseconds
	Value     decimal.Decimal
}

func NewForwardRecord(now time.Time, value decimal.Decimal) ForwardRecord {
	return ForwardRecord{Timestamp: now.UnixMilli(), Value: value}
}

// MarshalJSON writes value as a JSON number; devices read it as one.
func (r ForwardRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Timestamp int64       `json:"timestamp"`
		Value     json.Number `json:"value"`
	}{
		Timestamp: r.Timestamp,
		Value:     json.Number(r.Value.String()),
	})
}
