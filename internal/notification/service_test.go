package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/potluck-rsvp-backend/internal/guest"
	"github.com/sharath018/potluck-rsvp-backend/internal/testutil"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func sampleEvent() SubmissionEvent {
	catID := uuid.New()
	g := guest.Guest{
		ID:             uuid.New(),
		GuestName:      "Anna",
		Contact:        "anna@example.ch",
		Coming:         true,
		AttendeesCount: 2,
		CreatedAt:      time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	items := []guest.ContributionItem{
		{CategoryID: &catID, ItemTitle: "Couscous"},
		{ItemTitle: ""},
	}
	return NewSubmissionEvent(g, items, map[uuid.UUID]string{catID: "Salate"})
}

func newTestService(t *testing.T, ch Channel, recipient string) (Service, Repository) {
	t.Helper()
	repo := NewRepository(testutil.NewDB(t, &NotificationLog{}))
	return NewService(repo, ch, recipient, time.UTC), repo
}

func TestNewSubmissionEvent(t *testing.T) {
	ev := sampleEvent()
	require.Len(t, ev.Items, 2)
	assert.Equal(t, "Salate", ev.Items[0].Category)
	assert.Empty(t, ev.Items[1].Category)
	assert.Equal(t, "Neue Anmeldung: Anna (2)", ev.Subject())

	body := ev.Body(time.UTC)
	assert.Contains(t, body, "Kommt: Ja")
	assert.Contains(t, body, "  - Couscous (Salate)")
	assert.Contains(t, body, "  - Überraschung")
	assert.Contains(t, body, "01.05.2026 10:00")
}

func TestSubmissionEvent_Declining(t *testing.T) {
	ev := NewSubmissionEvent(guest.Guest{GuestName: "Ben", Coming: false}, nil, nil)
	assert.Equal(t, "Absage: Ben", ev.Subject())
	body := ev.Body(nil)
	assert.Contains(t, body, "Kommt: Nein")
	assert.NotContains(t, body, "Mitbringsel")
}

func TestNotifySubmission_SendsAndLogs(t *testing.T) {
	ch := new(mockChannel)
	ch.On("Send", "orga@example.ch", "Neue Anmeldung: Anna (2)", mock.AnythingOfType("string")).Return(nil).Once()
	svc, repo := newTestService(t, ch, "orga@example.ch")

	require.NoError(t, svc.NotifySubmission(context.Background(), sampleEvent()))
	ch.AssertExpectations(t)

	logs, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, StatusSent, logs[0].Status)
	assert.Nil(t, logs[0].Error)
}

func TestNotifySubmission_FailureIsRecorded(t *testing.T) {
	ch := new(mockChannel)
	ch.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	svc, _ := newTestService(t, ch, "orga@example.ch")

	err := svc.NotifySubmission(context.Background(), sampleEvent())
	assert.Error(t, err)

	logs, err := svc.RecentLogs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, StatusFailed, logs[0].Status)
	require.NotNil(t, logs[0].Error)
	assert.Equal(t, "smtp down", *logs[0].Error)
}

func TestNotifySubmission_WithoutRecipientIsSkipped(t *testing.T) {
	ch := new(mockChannel)
	svc, repo := newTestService(t, ch, "")

	require.NoError(t, svc.NotifySubmission(context.Background(), sampleEvent()))
	ch.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)

	logs, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, StatusSkipped, logs[0].Status)
}

func TestPublish_AcceptsEventValuesOnly(t *testing.T) {
	ch := new(mockChannel)
	ch.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	svc, _ := newTestService(t, ch, "orga@example.ch")

	ev := sampleEvent()
	require.NoError(t, svc.Publish(context.Background(), ev.GuestID.String(), ev))
	require.NoError(t, svc.Publish(context.Background(), ev.GuestID.String(), &ev))
	assert.Error(t, svc.Publish(context.Background(), "x", map[string]string{}))
	ch.AssertNumberOfCalls(t, "Send", 2)
}

type limitRecorder struct {
	Repository
	limits []int
}

func (r *limitRecorder) ListRecent(_ context.Context, limit int) ([]NotificationLog, error) {
	r.limits = append(r.limits, limit)
	return nil, nil
}

func TestRecentLogs_DefaultAndCap(t *testing.T) {
	repo := &limitRecorder{}
	svc := NewService(repo, nil, "", time.UTC)

	for _, limit := range []int{0, -1, 10, 200, 500} {
		_, err := svc.RecentLogs(context.Background(), limit)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{50, 50, 10, 200, 200}, repo.limits)
}
