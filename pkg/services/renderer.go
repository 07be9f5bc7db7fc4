package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/navarrastar/appointment-intake/pkg/attribution"
	"github.com/navarrastar/appointment-intake/pkg/models"
)

// ChatMessageType tags messages sent to the chat webhook.
const ChatMessageType = "appointment_request"

// RenderInboxSummary renders the line-per-field block shown verbatim in the
// office inbox. Field order and fallbacks must not change.
func RenderInboxSummary(p models.NormalizedAppointmentPayload) string {
	days := make([]string, 0, len(p.PreferredDays))
	for _, day := range p.PreferredDays {
		days = append(days, models.WeekdayLabel(day))
	}

	insurance := "Not provided"
	if p.InsuranceStatus != "" {
		insurance = models.InsuranceLabel(p.InsuranceStatus)
	}
	source := "Unknown"
	if p.ResolvedSourceURL != "" {
		source = p.ResolvedSourceURL
	}
	notes := "None"
	if p.AdditionalNotes != "" {
		notes = p.AdditionalNotes
	}

	lines := []string{
		"Name: " + p.FullName(),
		"Email: " + p.Email,
		"Phone: " + p.PhoneDigits,
		"Appointment Type: " + models.AppointmentTypeLabel(p.AppointmentType),
		"Urgent: " + yesNo(p.Emergency),
		"Preferred Days: " + strings.Join(days, ", "),
		"Preferred Time: " + models.TimeOfDayLabel(p.PreferredTimeOfDay),
		"Insurance: " + insurance,
		"Source URL: " + source,
		"Attribution: " + serializeAttribution(p.Attribution),
		"Submitted At: " + p.SubmittedAt,
		"Notes: " + notes,
	}
	return strings.Join(lines, "\n")
}

// RenderSubject derives the inbox subject line from the appointment type.
func RenderSubject(p models.NormalizedAppointmentPayload) string {
	subject := fmt.Sprintf("New appointment request: %s - %s", models.AppointmentTypeLabel(p.AppointmentType), p.FullName())
	if p.Emergency {
		return "URGENT: " + subject
	}
	return subject
}

// RenderPrimaryFields maps the payload onto the inbox form endpoint's field names.
func RenderPrimaryFields(p models.NormalizedAppointmentPayload) map[string]string {
	fields := map[string]string{
		"first_name":       p.FirstName,
		"last_name":        p.LastName,
		"email":            p.Email,
		"phone":            p.PhoneDigits,
		"appointment_type": p.AppointmentType,
		"urgent":           yesNo(p.Emergency),
		"preferred_days":   strings.Join(p.PreferredDays, ", "),
		"preferred_time":   p.PreferredTimeOfDay,
		"insurance_status": p.InsuranceStatus,
		"additional_notes": p.AdditionalNotes,
		"source_url":       p.ResolvedSourceURL,
		"submitted_at":     p.SubmittedAt,
		"message":          RenderInboxSummary(p),
		"_replyto":         p.Email,
		"_subject":         RenderSubject(p),
	}
	for _, key := range attribution.Keys {
		fields[key] = p.Attribution[key]
	}
	return fields
}

type crmMessage struct {
	Destination string `json:"destination"`
	models.NormalizedAppointmentPayload
}

// RenderCRMMessage wraps the payload with the CRM destination marker.
func RenderCRMMessage(p models.NormalizedAppointmentPayload) any {
	return crmMessage{Destination: "crm", NormalizedAppointmentPayload: p}
}

type chatMessage struct {
	Text string `json:"text"`
	Type string `json:"type"`
	models.NormalizedAppointmentPayload
}

// RenderChatMessage puts the inbox summary in the chat message text and
// carries the payload fields alongside it.
func RenderChatMessage(p models.NormalizedAppointmentPayload) any {
	header := "New appointment request"
	if p.Emergency {
		header = ":rotating_light: URGENT appointment request"
	}
	return chatMessage{
		Text:                         header + "\n" + RenderInboxSummary(p),
		Type:                         ChatMessageType,
		NormalizedAppointmentPayload: p,
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func serializeAttribution(attr map[string]string) string {
	if len(attr) == 0 {
		return "{}"
	}
	// Map keys are sorted by encoding/json.
	raw, err := json.Marshal(attr)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
