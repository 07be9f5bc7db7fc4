package models

import "strings"

// Represents the appointment request coming from the public booking form.
// Field values are final once validated; normalization builds a new payload.
type AppointmentRequest struct {
	Emergency          *bool             `json:"emergency" binding:"required"`
	AppointmentType    string            `json:"appointmentType" binding:"required,oneof=cleaning exam emergency cosmetic implants orthodontics other"`
	PreferredDays      []string          `json:"preferredDays" binding:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday"`
	PreferredTimeOfDay string            `json:"preferredTimeOfDay" binding:"required,oneof=morning afternoon evening any"`
	FirstName          string            `json:"firstName" binding:"required,min=1,max=40"`
	LastName           string            `json:"lastName" binding:"required,min=1,max=40"`
	Phone              string            `json:"phone" binding:"required,phone10"`
	Email              string            `json:"email" binding:"required,email"`
	InsuranceStatus    string            `json:"insuranceStatus,omitempty" binding:"omitempty,oneof=insured uninsured unsure"`
	AdditionalNotes    string            `json:"additionalNotes,omitempty" binding:"omitempty,max=300"`
	SourceURL          string            `json:"sourceUrl,omitempty" binding:"omitempty,http_url"`
	UTMParams          map[string]string `json:"utmParams,omitempty"`
}

// IsEmergency reports the urgency flag, treating an unset flag as false
func (r AppointmentRequest) IsEmergency() bool {
	return r.Emergency != nil && *r.Emergency
}

// NormalizedAppointmentPayload is the delivery-ready record built once per request
type NormalizedAppointmentPayload struct {
	Emergency          bool              `json:"emergency"`
	AppointmentType    string            `json:"appointmentType"`
	PreferredDays      []string          `json:"preferredDays"`
	PreferredTimeOfDay string            `json:"preferredTimeOfDay"`
	FirstName          string            `json:"firstName"`
	LastName           string            `json:"lastName"`
	Phone              string            `json:"phone"`
	Email              string            `json:"email"`
	InsuranceStatus    string            `json:"insuranceStatus,omitempty"`
	AdditionalNotes    string            `json:"additionalNotes,omitempty"`
	SourceURL          string            `json:"sourceUrl,omitempty"`
	UTMParams          map[string]string `json:"utmParams,omitempty"`
	PhoneDigits        string            `json:"phoneDigits"`
	ResolvedSourceURL  string            `json:"resolvedSourceUrl"`
	Attribution        map[string]string `json:"attribution"`
	SubmittedAt        string            `json:"submittedAt"`
}

// FullName joins first and last name
func (p NormalizedAppointmentPayload) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// ForwardingResult reports the outcome of one optional destination.
// Error is only set when the destination is enabled and the send failed.
type ForwardingResult struct {
	Enabled bool   `json:"enabled"`
	Sent    bool   `json:"sent"`
	Error   string `json:"error,omitempty"`
}

// Forwarding groups the optional destination outcomes of one request
type Forwarding struct {
	CRM   ForwardingResult `json:"crm"`
	Slack ForwardingResult `json:"slack"`
}

// SubmissionResult is produced once the primary delivery has succeeded
type SubmissionResult struct {
	Payload    NormalizedAppointmentPayload
	Forwarding Forwarding
}
