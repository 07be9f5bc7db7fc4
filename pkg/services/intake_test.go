package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navarrastar/appointment-intake/pkg/config"
	"github.com/navarrastar/appointment-intake/pkg/validation"
)

func requestBody(t *testing.T, overrides map[string]any) []byte {
	t.Helper()
	body := map[string]any{
		"emergency":          false,
		"appointmentType":    "exam",
		"preferredDays":      []string{"friday"},
		"preferredTimeOfDay": "any",
		"firstName":          "Sam",
		"lastName":           "Rivera",
		"phone":              "555.987.6543",
		"email":              "sam@example.com",
	}
	for k, v := range overrides {
		body[k] = v
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return raw
}

func newTestIntake(dest config.DestinationConfig, client *fakeClient) IntakeService {
	return NewIntakeService(
		validation.New(),
		NewDispatcher(dest, client, quietLogger(), nil),
		quietLogger(),
		nil,
		WithClock(func() time.Time { return fixedNow }),
	)
}

func TestSubmit_Success(t *testing.T) {
	client := newFakeClient()

	result, err := newTestIntake(allDestinations(), client).Submit(context.Background(), requestBody(t, map[string]any{
		"sourceUrl": "https://smiles.example/?utm_source=google&utm_campaign=spring",
		"utmParams": map[string]string{"utm_source": "newsletter"},
	}), "https://ignored.example")

	require.NoError(t, err)
	assert.Equal(t, "5559876543", result.Payload.PhoneDigits)
	assert.Equal(t, "https://smiles.example/?utm_source=google&utm_campaign=spring", result.Payload.ResolvedSourceURL)
	assert.Equal(t, map[string]string{"utm_source": "newsletter", "utm_campaign": "spring"}, result.Payload.Attribution)
	assert.Equal(t, "2026-03-09T19:30:05.123Z", result.Payload.SubmittedAt)
	assert.True(t, result.Forwarding.CRM.Sent)
	assert.True(t, result.Forwarding.Slack.Sent)
}

func TestSubmit_FallsBackToReferer(t *testing.T) {
	client := newFakeClient()

	result, err := newTestIntake(allDestinations(), client).Submit(context.Background(), requestBody(t, nil), "https://smiles.example/implants?utm_medium=social")

	require.NoError(t, err)
	assert.Equal(t, "https://smiles.example/implants?utm_medium=social", result.Payload.ResolvedSourceURL)
	assert.Equal(t, map[string]string{"utm_medium": "social"}, result.Payload.Attribution)
}

func TestSubmit_NoSourceNoAttribution(t *testing.T) {
	result, err := newTestIntake(allDestinations(), newFakeClient()).Submit(context.Background(), requestBody(t, nil), "")

	require.NoError(t, err)
	assert.Equal(t, "", result.Payload.ResolvedSourceURL)
	assert.Empty(t, result.Payload.Attribution)
}

func TestSubmit_ValidationFailureMakesNoCalls(t *testing.T) {
	client := newFakeClient()

	_, err := newTestIntake(allDestinations(), client).Submit(context.Background(), requestBody(t, map[string]any{"email": "sam.example.com"}), "")

	var vErr *validation.Error
	require.True(t, errors.As(err, &vErr))
	assert.Zero(t, client.total())
}

func TestSubmit_PrimaryNotConfigured(t *testing.T) {
	client := newFakeClient()

	_, err := newTestIntake(config.DestinationConfig{CRMEndpoint: crmURL}, client).Submit(context.Background(), requestBody(t, nil), "")

	assert.ErrorIs(t, err, ErrPrimaryNotConfigured)
	assert.Zero(t, client.total())
}
