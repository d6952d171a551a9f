package notification

import (
	"testing"
	"time"

	"github.com/Scalium-Tech/aligned/internal/infrastructure/localstore"
	"github.com/Scalium-Tech/aligned/pkg/logger"
	"github.com/stretchr/testify/assert"
)

type recordingDeliverer struct {
	delivered []string
}

func (d *recordingDeliverer) Deliver(userID, title, body string) error {
	d.delivered = append(d.delivered, userID+": "+body)
	return nil
}

func TestCheckDueDeliversAtScheduledMinute(t *testing.T) {
	store := localstore.NewMemoryStore()
	deliverer := &recordingDeliverer{}
	svc := NewService(store, deliverer, logger.NewLogger())

	svc.SetSchedule("u1", Schedule{Enabled: true, Hour: 9, Minute: 30, Message: "Plan your day"})

	at := time.Date(2025, 6, 15, 9, 30, 12, 0, time.UTC)
	assert.True(t, svc.CheckDue("u1", at))
	assert.Len(t, deliverer.delivered, 1)
	assert.Equal(t, "u1: Plan your day", deliverer.delivered[0])
}

func TestCheckDueIdempotentWithinLogicalMinute(t *testing.T) {
	store := localstore.NewMemoryStore()
	deliverer := &recordingDeliverer{}
	svc := NewService(store, deliverer, logger.NewLogger())

	svc.SetSchedule("u1", Schedule{Enabled: true, Hour: 9, Minute: 30})

	at := time.Date(2025, 6, 15, 9, 30, 5, 0, time.UTC)
	assert.True(t, svc.CheckDue("u1", at))
	// Re-invoked 40 seconds later, still the same logical minute.
	assert.False(t, svc.CheckDue("u1", at.Add(40*time.Second)))
	assert.Len(t, deliverer.delivered, 1)

	// The next day's occurrence delivers again.
	assert.True(t, svc.CheckDue("u1", at.AddDate(0, 0, 1)))
	assert.Len(t, deliverer.delivered, 2)
}

func TestCheckDueIgnoresDisabledAndOffSchedule(t *testing.T) {
	store := localstore.NewMemoryStore()
	deliverer := &recordingDeliverer{}
	svc := NewService(store, deliverer, logger.NewLogger())

	svc.SetSchedule("u1", Schedule{Enabled: false, Hour: 9, Minute: 30})
	assert.False(t, svc.CheckDue("u1", time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)))

	svc.SetSchedule("u1", Schedule{Enabled: true, Hour: 9, Minute: 30})
	assert.False(t, svc.CheckDue("u1", time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)))
	assert.Empty(t, deliverer.delivered)
}

func TestRunDueCoversRegisteredUsers(t *testing.T) {
	store := localstore.NewMemoryStore()
	deliverer := &recordingDeliverer{}
	svc := NewService(store, deliverer, logger.NewLogger())

	svc.SetSchedule("u1", Schedule{Enabled: true, Hour: 7, Minute: 0})
	svc.SetSchedule("u2", Schedule{Enabled: true, Hour: 7, Minute: 0})
	svc.SetSchedule("u3", Schedule{Enabled: true, Hour: 20, Minute: 0})

	svc.RunDue(time.Date(2025, 6, 15, 7, 0, 0, 0, time.UTC))
	assert.Len(t, deliverer.delivered, 2)
}

func TestRunDueSurvivesRestart(t *testing.T) {
	store := localstore.NewMemoryStore()

	first := NewService(store, &recordingDeliverer{}, logger.NewLogger())
	first.SetSchedule("u1", Schedule{Enabled: true, Hour: 7, Minute: 0})
	first.SetSchedule("u2", Schedule{Enabled: true, Hour: 7, Minute: 0})

	// A fresh instance over the same store finds the persisted index.
	deliverer := &recordingDeliverer{}
	second := NewService(store, deliverer, logger.NewLogger())
	second.RunDue(time.Date(2025, 6, 15, 7, 0, 0, 0, time.UTC))

	assert.Len(t, deliverer.delivered, 2)
}
