package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/navarrastar/appointment-intake/pkg/config"
	"github.com/navarrastar/appointment-intake/pkg/logging"
	"github.com/navarrastar/appointment-intake/pkg/models"
)

const (
	inboxURL = "https://inbox.example/f/appointments"
	crmURL   = "https://crm.example/hooks/leads"
	slackURL = "https://hooks.slack.example/services/T000/B000"
)

var fixedNow = time.Date(2026, 3, 9, 14, 30, 5, 123000000, time.FixedZone("EST", -5*60*60))

type postedCall struct {
	endpoint string
	body     map[string]any
}

// fakeClient records every post and fails or panics per endpoint.
type fakeClient struct {
	mu     sync.Mutex
	calls  []postedCall
	errs   map[string]error
	panics map[string]bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{errs: map[string]error{}, panics: map[string]bool{}}
}

func (f *fakeClient) PostJSON(_ context.Context, endpoint string, payload any) error {
	raw, _ := json.Marshal(payload)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	f.mu.Lock()
	f.calls = append(f.calls, postedCall{endpoint: endpoint, body: body})
	f.mu.Unlock()

	if f.panics[endpoint] {
		panic("connection pool exploded")
	}
	return f.errs[endpoint]
}

func (f *fakeClient) callsTo(endpoint string) []postedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []postedCall
	for _, c := range f.calls {
		if c.endpoint == endpoint {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeClient) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func allDestinations() config.DestinationConfig {
	return config.DestinationConfig{PrimaryEndpoint: inboxURL, CRMEndpoint: crmURL, SlackEndpoint: slackURL}
}

func quietLogger() *logging.Logger {
	return logging.New("error")
}

func samplePayload() models.NormalizedAppointmentPayload {
	return models.NormalizedAppointmentPayload{
		Emergency:          true,
		AppointmentType:    "emergency",
		PreferredDays:      []string{"monday", "thursday"},
		PreferredTimeOfDay: "afternoon",
		FirstName:          "Jane",
		LastName:           "Doe",
		Phone:              "(555) 123-4567",
		Email:              "jane@example.com",
		InsuranceStatus:    "insured",
		AdditionalNotes:    "Chipped molar",
		PhoneDigits:        "5551234567",
		ResolvedSourceURL:  "https://smiles.example/book?utm_source=google",
		Attribution:        map[string]string{"utm_source": "google", "utm_medium": "cpc"},
		SubmittedAt:        "2026-03-09T19:30:05.123Z",
	}
}
