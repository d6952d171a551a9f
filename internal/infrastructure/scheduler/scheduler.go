package scheduler

import (
	"time"

	"github.com/Scalium-Tech/aligned/internal/domain/events"
	"github.com/Scalium-Tech/aligned/internal/domain/notification"
	"github.com/Scalium-Tech/aligned/pkg/config"
	"github.com/Scalium-Tech/aligned/pkg/logger"
	"go.uber.org/zap"
)

type Scheduler struct {
	bus       events.Bus
	reminders notification.Service
	cfg       config.RemindersConfig
	logger    *logger.Logger
}

func NewScheduler(bus events.Bus, reminders notification.Service, cfg config.RemindersConfig, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		bus:       bus,
		reminders: reminders,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *Scheduler) Start() {
	if s.cfg.Enabled {
		go s.runReminderTicks()
	}

	// Calculate time until next midnight
	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	timeUntilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Scheduler initialized",
		zap.Time("current_time", now),
		zap.Time("next_rollover", nextMidnight),
		zap.Duration("time_until_rollover", timeUntilMidnight),
		zap.Bool("reminders_enabled", s.cfg.Enabled),
	)

	go func() {
		// Wait until first midnight
		time.Sleep(timeUntilMidnight)

		s.announceRollover()

		// Then run every 24 hours
		ticker := time.NewTicker(24 * time.Hour)
		for range ticker.C {
			s.announceRollover()
		}
	}()
}

// announceRollover publishes the day boundary so listeners can refresh
// streak and score views. Streaks themselves are recomputed on read, so
// nothing is mutated here.
func (s *Scheduler) announceRollover() {
	startTime := time.Now()

	s.logger.Info("Announcing day rollover", zap.Time("start_time", startTime))

	s.bus.Publish(events.Event{
		EventType: events.EventTypeDayRollover,
		Timestamp: startTime,
	})

	s.logger.Info("Completed day rollover",
		zap.Time("end_time", time.Now()),
		zap.Duration("duration", time.Since(startTime)),
	)
}

// runReminderTicks drives the reminder service on the configured interval.
func (s *Scheduler) runReminderTicks() {
	interval := s.cfg.CheckInterval
	if interval <= 0 {
		interval = time.Minute
	}

	s.reminders.RunDue(time.Now())

	ticker := time.NewTicker(interval)
	for range ticker.C {
		s.reminders.RunDue(time.Now())
	}
}
