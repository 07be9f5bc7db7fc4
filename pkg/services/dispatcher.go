package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/navarrastar/appointment-intake/pkg/clients/webhook"
	"github.com/navarrastar/appointment-intake/pkg/config"
	"github.com/navarrastar/appointment-intake/pkg/logging"
	"github.com/navarrastar/appointment-intake/pkg/metrics"
	"github.com/navarrastar/appointment-intake/pkg/models"
	"github.com/navarrastar/appointment-intake/pkg/utils"
)

// Destination names used in logs and metrics
const (
	DestinationPrimary = "primary"
	DestinationCRM     = "crm"
	DestinationSlack   = "slack"
)

// Dispatcher delivers a normalized appointment request to the required
// inbox and then to the optional CRM and chat webhooks.
type Dispatcher struct {
	destinations config.DestinationConfig
	client       webhook.Client
	logger       *logging.Logger
	metrics      *metrics.IntakeMetrics
}

// NewDispatcher creates a dispatcher for the given destinations
func NewDispatcher(destinations config.DestinationConfig, client webhook.Client, logger *logging.Logger, m *metrics.IntakeMetrics) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		destinations: destinations,
		client:       client,
		logger:       logger,
		metrics:      m,
	}
}

// Dispatch sends p to the inbox and, only once that succeeded, to both
// optional destinations. Only the inbox can fail the call: it returns
// ErrPrimaryNotConfigured or a *PrimaryDeliveryError. Optional destination
// failures are reported in the returned Forwarding.
func (d *Dispatcher) Dispatch(ctx context.Context, p models.NormalizedAppointmentPayload) (models.Forwarding, error) {
	if !d.destinations.PrimaryConfigured() {
		return models.Forwarding{}, ErrPrimaryNotConfigured
	}

	if err := d.deliverPrimary(ctx, p); err != nil {
		return models.Forwarding{}, err
	}

	// The inbox already has the request; a caller disconnect must not
	// abort the optional forwards.
	forwardCtx := context.WithoutCancel(ctx)

	var crm, slack models.ForwardingResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		crm = d.forward(forwardCtx, DestinationCRM, d.destinations.CRMEndpoint, p, RenderCRMMessage)
	}()
	go func() {
		defer wg.Done()
		slack = d.forward(forwardCtx, DestinationSlack, d.destinations.SlackEndpoint, p, RenderChatMessage)
	}()
	wg.Wait()

	return models.Forwarding{CRM: crm, Slack: slack}, nil
}

func (d *Dispatcher) deliverPrimary(ctx context.Context, p models.NormalizedAppointmentPayload) error {
	start := time.Now()
	err := d.client.PostJSON(ctx, d.destinations.PrimaryEndpoint, RenderPrimaryFields(p))
	if err != nil {
		d.metrics.ObserveDelivery(DestinationPrimary, metrics.StatusFailed, time.Since(start))
		d.logger.Error("appointment inbox delivery failed",
			"error", err,
			"phone_hash", utils.ShortHash(p.PhoneDigits),
		)
		return &PrimaryDeliveryError{Detail: truncate(err.Error()), Err: err}
	}

	d.metrics.ObserveDelivery(DestinationPrimary, metrics.StatusSent, time.Since(start))
	return nil
}

// forward makes one attempt at an optional destination. It never returns an
// error: every failure, including a panic in rendering or transport, is
// folded into the ForwardingResult.
func (d *Dispatcher) forward(
	ctx context.Context,
	name, endpoint string,
	p models.NormalizedAppointmentPayload,
	render func(models.NormalizedAppointmentPayload) any,
) (result models.ForwardingResult) {
	if endpoint == "" {
		d.metrics.ObserveDelivery(name, metrics.StatusDisabled, 0)
		return models.ForwardingResult{}
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = d.failed(name, fmt.Errorf("panic: %v", r), p, start)
		}
	}()

	if err := d.client.PostJSON(ctx, endpoint, render(p)); err != nil {
		return d.failed(name, err, p, start)
	}

	d.metrics.ObserveDelivery(name, metrics.StatusSent, time.Since(start))
	return models.ForwardingResult{Enabled: true, Sent: true}
}

func (d *Dispatcher) failed(name string, err error, p models.NormalizedAppointmentPayload, start time.Time) models.ForwardingResult {
	d.metrics.ObserveDelivery(name, metrics.StatusFailed, time.Since(start))
	d.logger.Warn("optional destination delivery failed",
		"destination", name,
		"error", err,
		"phone_hash", utils.ShortHash(p.PhoneDigits),
	)

	detail := truncate(err.Error())
	if detail == "" {
		detail = "delivery failed"
	}
	return models.ForwardingResult{Enabled: true, Sent: false, Error: detail}
}
