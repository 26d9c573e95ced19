package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

func newBroadcastServiceForTest(t *testing.T) (BroadcastService, *fakeVisitorRepo, *fakeTemplateRepo, *fakeQueueRepo) {
	t.Helper()
	visitorRepo := newFakeVisitorRepo()
	templateRepo := newFakeTemplateRepo()
	queueRepo := newFakeQueueRepo()
	svc := NewBroadcastService(visitorRepo, templateRepo, queueRepo, zerolog.Nop())
	return svc, visitorRepo, templateRepo, queueRepo
}

func TestScheduleBroadcastToAllVisitors(t *testing.T) {
	svc, visitorRepo, templateRepo, queueRepo := newBroadcastServiceForTest(t)

	template := domain.Template{Name: "Easter", Message: "Happy Easter, {{name}}!", TriggerType: domain.TriggerScheduled}
	require.NoError(t, templateRepo.Create(context.Background(), &template))

	for _, phone := range []string{"08011110001", "08011110002"} {
		require.NoError(t, visitorRepo.Create(context.Background(), &domain.Visitor{Name: "V", Phone: phone}))
	}

	report, err := svc.Schedule(context.Background(), ScheduleBroadcastInput{
		TemplateID: template.ID,
		Target:     TargetAll,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count)
	assert.NotEqual(t, uuid.Nil, report.BatchID)

	pending, err := queueRepo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, item := range pending {
		// the raw template body is stored; the processor re-renders at
		// dispatch time
		assert.Equal(t, "Happy Easter, {{name}}!", item.Message)
		require.NotNil(t, item.BatchID)
		assert.Equal(t, report.BatchID, *item.BatchID)
		assert.WithinDuration(t, time.Now(), item.ScheduledFor, time.Minute)
	}
}

func TestScheduleBroadcastHonorsScheduledAt(t *testing.T) {
	svc, visitorRepo, templateRepo, queueRepo := newBroadcastServiceForTest(t)

	template := domain.Template{Name: "Vigil", Message: "Join us tonight", TriggerType: domain.TriggerScheduled}
	require.NoError(t, templateRepo.Create(context.Background(), &template))
	require.NoError(t, visitorRepo.Create(context.Background(), &domain.Visitor{Name: "V", Phone: "08011110001"}))

	at := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	report, err := svc.Schedule(context.Background(), ScheduleBroadcastInput{
		TemplateID:  template.ID,
		Target:      TargetAll,
		ScheduledAt: &at,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count)

	pending, err := queueRepo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].ScheduledFor.Equal(at))

	// not due yet
	due, err := queueRepo.ListDue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestScheduleBroadcastDateRangeFilters(t *testing.T) {
	svc, visitorRepo, templateRepo, queueRepo := newBroadcastServiceForTest(t)

	template := domain.Template{Name: "Follow up", Message: "We miss you", TriggerType: domain.TriggerScheduled}
	require.NoError(t, templateRepo.Create(context.Background(), &template))

	old := &domain.Visitor{Name: "Old", Phone: "08011110001", CreatedAt: time.Now().AddDate(0, -2, 0)}
	recent := &domain.Visitor{Name: "Recent", Phone: "08011110002", CreatedAt: time.Now().AddDate(0, 0, -3)}
	require.NoError(t, visitorRepo.Create(context.Background(), old))
	require.NoError(t, visitorRepo.Create(context.Background(), recent))

	start := time.Now().AddDate(0, 0, -7)
	report, err := svc.Schedule(context.Background(), ScheduleBroadcastInput{
		TemplateID: template.ID,
		Target:     TargetDateRange,
		StartDate:  &start,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count)

	pending, err := queueRepo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, recent.ID, pending[0].VisitorID)
}

func TestScheduleBroadcastEmptyTargetSet(t *testing.T) {
	svc, _, templateRepo, queueRepo := newBroadcastServiceForTest(t)

	template := domain.Template{Name: "Follow up", Message: "We miss you", TriggerType: domain.TriggerScheduled}
	require.NoError(t, templateRepo.Create(context.Background(), &template))

	report, err := svc.Schedule(context.Background(), ScheduleBroadcastInput{
		TemplateID: template.ID,
		Target:     TargetDateRange,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Count)

	pending, err := queueRepo.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestScheduleBroadcastUnknownTemplate(t *testing.T) {
	svc, _, _, _ := newBroadcastServiceForTest(t)

	_, err := svc.Schedule(context.Background(), ScheduleBroadcastInput{TemplateID: 99, Target: TargetAll})
	assert.ErrorIs(t, err, types.ErrNotFound)
}
