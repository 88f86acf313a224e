package alerts

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/finpilot/finai-service/internal/config"
	"github.com/finpilot/finai-service/internal/repository"
)

// Scheduler periodically checks budgets and emails users whose
// spending exceeds a category budget
type Scheduler struct {
	repo   *repository.Repository
	sender *Sender
	cfg    *config.Config
	log    *logrus.Logger
	cron   *cron.Cron
}

// NewScheduler creates a budget alert scheduler
func NewScheduler(repo *repository.Repository, sender *Sender, cfg *config.Config, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		repo:   repo,
		sender: sender,
		cfg:    cfg,
		log:    log,
		cron:   cron.New(),
	}
}

// Start schedules the alert job. A missing SMTP configuration disables
// alerts without failing startup.
func (s *Scheduler) Start() error {
	if !s.cfg.SMTPConfigured() {
		s.log.Info("SMTP not configured, budget alerts disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.AlertCron, s.run); err != nil {
		return fmt.Errorf("failed to schedule budget alerts: %w", err)
	}
	s.cron.Start()
	s.log.Infof("Budget alerts scheduled: %s", s.cfg.AlertCron)
	return nil
}

// Stop halts the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) run() {
	overspent, err := s.repo.OverspentBudgets()
	if err != nil {
		s.log.Errorf("Budget alert check failed: %v", err)
		return
	}

	for _, ob := range overspent {
		if err := s.sender.SendBudgetAlert(ob.Email, ob.Username, ob.Category, ob.BudgetAmount, ob.SpentAmount); err != nil {
			// Already logged by the sender; keep notifying the rest
			continue
		}
	}
	s.log.Infof("Budget alert check completed: %d overspent budgets", len(overspent))
}
