package services

import (
	"context"
	"errors"
	"time"

	"github.com/navarrastar/appointment-intake/pkg/attribution"
	"github.com/navarrastar/appointment-intake/pkg/logging"
	"github.com/navarrastar/appointment-intake/pkg/metrics"
	"github.com/navarrastar/appointment-intake/pkg/models"
	"github.com/navarrastar/appointment-intake/pkg/utils"
	"github.com/navarrastar/appointment-intake/pkg/validation"
)

// IntakeService defines the interface for handling appointment requests
type IntakeService interface {
	Submit(ctx context.Context, raw []byte, referer string) (*models.SubmissionResult, error)
}

// Option configures an intake service
type Option func(*intakeServiceImpl)

// WithClock overrides the clock used to stamp submissions
func WithClock(now func() time.Time) Option {
	return func(s *intakeServiceImpl) {
		s.now = now
	}
}

type intakeServiceImpl struct {
	validator  *validation.Validator
	dispatcher *Dispatcher
	logger     *logging.Logger
	metrics    *metrics.IntakeMetrics
	now        func() time.Time
}

// NewIntakeService creates a new intake service
func NewIntakeService(
	validator *validation.Validator,
	dispatcher *Dispatcher,
	logger *logging.Logger,
	m *metrics.IntakeMetrics,
	opts ...Option,
) IntakeService {
	if logger == nil {
		logger = logging.Default()
	}
	s := &intakeServiceImpl{
		validator:  validator,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    m,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs one appointment request through the whole workflow. Nothing
// leaves the process until validation has passed. The returned error is a
// *validation.Error, ErrPrimaryNotConfigured or a *PrimaryDeliveryError.
func (s *intakeServiceImpl) Submit(ctx context.Context, raw []byte, referer string) (*models.SubmissionResult, error) {
	req, err := s.validator.Validate(raw)
	if err != nil {
		s.metrics.ObserveSubmission(metrics.OutcomeInvalid)
		s.logger.Info("appointment request rejected", "error", err)
		return nil, err
	}

	sourceURL := ResolveSourceURL(req.SourceURL, referer)
	attr := attribution.Resolve(sourceURL, req.UTMParams)
	payload := Normalize(req, sourceURL, attr, s.now())

	phoneHash := utils.ShortHash(payload.PhoneDigits)
	s.logger.Info("processing appointment request",
		"phone_hash", phoneHash,
		"appointment_type", payload.AppointmentType,
		"emergency", payload.Emergency,
	)

	forwarding, err := s.dispatcher.Dispatch(ctx, payload)
	if err != nil {
		if errors.Is(err, ErrPrimaryNotConfigured) {
			s.metrics.ObserveSubmission(metrics.OutcomeMisconfigured)
			s.logger.Error("appointment inbox is not configured")
		} else {
			s.metrics.ObserveSubmission(metrics.OutcomeFailed)
		}
		return nil, err
	}

	s.metrics.ObserveSubmission(metrics.OutcomeAccepted)
	s.logger.Info("appointment request delivered",
		"phone_hash", phoneHash,
		"crm_sent", forwarding.CRM.Sent,
		"slack_sent", forwarding.Slack.Sent,
	)

	return &models.SubmissionResult{Payload: payload, Forwarding: forwarding}, nil
}
