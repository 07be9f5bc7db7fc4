package services

import (
	"strings"
	"time"

	"github.com/navarrastar/appointment-intake/pkg/attribution"
	"github.com/navarrastar/appointment-intake/pkg/models"
	"github.com/navarrastar/appointment-intake/pkg/utils"
)

// TimestampLayout renders submission times as ISO-8601 UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// ResolveSourceURL picks the caller-supplied URL, else the referring page,
// else "".
func ResolveSourceURL(explicit, referer string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}
	return strings.TrimSpace(referer)
}

// Normalize builds the delivery-ready payload from a validated request.
// The request is not modified; slices and maps are copied.
func Normalize(req models.AppointmentRequest, resolvedSourceURL string, attr attribution.Map, submittedAt time.Time) models.NormalizedAppointmentPayload {
	digits, _ := utils.PhoneDigits(req.Phone)

	days := make([]string, len(req.PreferredDays))
	copy(days, req.PreferredDays)

	var utm map[string]string
	if len(req.UTMParams) > 0 {
		utm = make(map[string]string, len(req.UTMParams))
		for k, v := range req.UTMParams {
			utm[k] = v
		}
	}

	merged := make(map[string]string, len(attr))
	for k, v := range attr {
		merged[k] = v
	}

	return models.NormalizedAppointmentPayload{
		Emergency:          req.IsEmergency(),
		AppointmentType:    req.AppointmentType,
		PreferredDays:      days,
		PreferredTimeOfDay: req.PreferredTimeOfDay,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Phone:              req.Phone,
		Email:              req.Email,
		InsuranceStatus:    req.InsuranceStatus,
		AdditionalNotes:    req.AdditionalNotes,
		SourceURL:          req.SourceURL,
		UTMParams:          utm,
		PhoneDigits:        digits,
		ResolvedSourceURL:  resolvedSourceURL,
		Attribution:        merged,
		SubmittedAt:        submittedAt.UTC().Format(TimestampLayout),
	}
}
