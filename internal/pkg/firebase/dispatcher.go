package firebase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ManuelReschke/PayBridge/internal/pkg/metrics/counter"
)

// Dispatcher forwards payments in background goroutines. Forward returns at once;
// the outcome of the write is only logged and counted, never reported to the caller.
// There is no retry and no queue: a failed write is dropped.
type Dispatcher struct {
	client   *Client
	timeout  time.Duration
	counters counter.Recorder
	now      func() time.Time

	wg sync.WaitGroup
}

func NewDispatcher(client *Client, timeout time.Duration, counters counter.Recorder) *Dispatcher {
	if counters == nil {
		counters = counter.Noop{}
	}
	return &Dispatcher{
		client:   client,
		timeout:  timeout,
		counters: counters,
		now:      time.Now,
	}
}

// Forward starts the write of amount to the payment record of deviceID. The goroutine
// is detached from any request context and bounded by the dispatcher timeout.
func (d *Dispatcher) Forward(amount decimal.Decimal, deviceID string) {
	forwardID := uuid.New().String()
	record := NewForwardRecord(d.now(), amount)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.send(forwardID, deviceID, record)
	}()
}

func (d *Dispatcher) send(forwardID, deviceID string, record ForwardRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	body, err := d.client.PutPayment(ctx, deviceID, record)
	if err != nil {
		d.counters.Incr(counter.OutcomeForwardFailed)
		log.Errorf("[Firebase] Error sending data for device %s (forward %s): %s", deviceID, forwardID, describeError(err))
		return
	}

	d.counters.Incr(counter.OutcomeForwarded)
	log.Infof("[Firebase] Data sent for device %s successfully (forward %s): %s", deviceID, forwardID, strings.TrimSpace(string(body)))
}

// Wait blocks until all started forwards finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Prefer what the database said over the transport error.
func describeError(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if body := strings.TrimSpace(string(statusErr.Body)); body != "" {
			return body
		}
	}
	return err.Error()
}
