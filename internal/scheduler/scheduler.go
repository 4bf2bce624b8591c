package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/usmaclub/signup-bot/internal/config"
	"github.com/usmaclub/signup-bot/internal/signup"
)

// hourStamp identifies one wall-clock hour for the dedup guard.
const hourStamp = "2006-01-02-15"

// Scheduler runs the hourly tick: the 7-day cleanup sweep plus both
// recurrence tables. A rule that already fired within the current hour
// is skipped, so overlapping ticks cannot publish duplicates (a restart
// mid-hour still can, the guard is in-memory only).
type Scheduler struct {
	svc  *signup.Service
	cfg  *config.Config
	cron *cron.Cron

	mu    sync.Mutex
	fired map[string]string // rule key -> hour stamp of last firing

	now func() time.Time
}

func New(svc *signup.Service, cfg *config.Config) *Scheduler {
	return &Scheduler{
		svc:   svc,
		cfg:   cfg,
		cron:  cron.New(cron.WithLocation(time.UTC)),
		fired: map[string]string{},
		now:   time.Now,
	}
}

// Start runs one tick immediately, then every hour on the hour.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 * * * *", s.tick); err != nil {
		return err
	}
	s.cron.Start()
	go s.tick()
	log.Println("scheduler: started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("scheduler: stopped")
}

func (s *Scheduler) tick() {
	s.svc.CleanupOldEvents()

	if s.cfg.AutoChannelID == "" {
		return
	}
	now := s.now().UTC()
	stamp := now.Format(hourStamp)

	for _, rule := range s.cfg.Tables.AutoEvents {
		if !SimpleDue(rule, s.cfg.Tables.PublishHour, now) {
			continue
		}
		day, _ := WeekdayFromName(rule.Weekday)
		s.publish("auto:"+rule.Weekday, stamp, EventName(rule.Name, now, day), rule.Times)
	}

	for _, rule := range s.cfg.Tables.ScheduledEvents {
		if !AdvancedDue(rule, now) {
			continue
		}
		name := rule.Name
		if day, ok := AnchorWeekday(rule); ok {
			name = EventName(rule.Name, now, day)
		}
		s.publish("sched:"+rule.Name, stamp, name, rule.Times)
	}
}

func (s *Scheduler) publish(key, stamp, name string, times []string) {
	s.mu.Lock()
	if s.fired[key] == stamp {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if _, err := s.svc.PostEventMessage(s.cfg.AutoChannelID, name, times); err != nil {
		log.Printf("scheduler: failed to publish %s: %v", name, err)
		return
	}

	s.mu.Lock()
	s.fired[key] = stamp
	s.mu.Unlock()
	log.Printf("scheduler: published %s", name)
}
