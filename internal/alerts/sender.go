package alerts

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/finpilot/finai-service/internal/config"
	"github.com/finpilot/finai-service/internal/utils"
)

// Sender handles sending alert emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendBudgetAlert notifies a user that a category budget is overspent
func (s *Sender) SendBudgetAlert(to, username, category string, budgetAmount, spentAmount float64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Budget Alert: %s", category)

	over := spentAmount - budgetAmount
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your spending in %s has exceeded its budget.\n"+
			"Budgeted: %s\n"+
			"Spent: %s\n"+
			"Over by: %s\n\n"+
			"Consider trimming this category or adjusting the budget.\n"+
			"\nBest regards,\nFinAI",
		username, category,
		utils.FormatINR(budgetAmount),
		utils.FormatINR(spentAmount),
		utils.FormatINR(over),
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send budget alert to %s: %v", to, err)
		return fmt.Errorf("failed to send budget alert: %w", err)
	}

	s.logger.Infof("Budget alert sent to %s: %s", to, e.Subject)
	return nil
}
