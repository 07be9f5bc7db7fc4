package models

import "strings"

var appointmentTypeLabels = map[string]string{
	"cleaning":     "Cleaning",
	"exam":         "Exam",
	"emergency":    "Emergency Visit",
	"cosmetic":     "Cosmetic Consultation",
	"implants":     "Implant Consultation",
	"orthodontics": "Orthodontics",
	"other":        "Other",
}

var timeOfDayLabels = map[string]string{
	"morning":   "Morning",
	"afternoon": "Afternoon",
	"evening":   "Evening",
	"any":       "Any Time",
}

var insuranceLabels = map[string]string{
	"insured":   "Insured",
	"uninsured": "Uninsured",
	"unsure":    "Not Sure",
}

// AppointmentTypeLabel returns the display name of an appointment type
func AppointmentTypeLabel(value string) string {
	return lookupLabel(appointmentTypeLabels, value)
}

// TimeOfDayLabel returns the display name of a preferred time of day
func TimeOfDayLabel(value string) string {
	return lookupLabel(timeOfDayLabels, value)
}

// InsuranceLabel returns the display name of an insurance status
func InsuranceLabel(value string) string {
	return lookupLabel(insuranceLabels, value)
}

// WeekdayLabel capitalizes a weekday value ("monday" -> "Monday")
func WeekdayLabel(value string) string {
	if value == "" {
		return ""
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

func lookupLabel(labels map[string]string, value string) string {
	if label, ok := labels[value]; ok {
		return label
	}
	return value
}
