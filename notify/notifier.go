package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// jobTimeout bounds a single notification run, completion call included.
const jobTimeout = 2 * time.Minute

// Sender is the orchestrator surface the notifier needs.
type Sender interface {
	Send(ctx context.Context, userID, input string) (string, error)
}

// Job is one named, time-triggered notification.
type Job struct {
	Name      string
	Spec      string // standard 5-field cron expression
	Prompt    string
	Subject   string
	Recipient string
}

// Notifier schedules jobs on a single background cron runner. Job execution
// never blocks the serving path and never surfaces errors to it.
type Notifier struct {
	cron   *cron.Cron
	sender Sender
	mailer Mailer
	logger *zap.Logger
}

func New(sender Sender, mailer Mailer, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		cron:   cron.New(),
		sender: sender,
		mailer: mailer,
		logger: logger,
	}
}

// Add registers a job with the cron runner.
func (n *Notifier) Add(job Job) error {
	if job.Name == "" || job.Spec == "" || job.Recipient == "" {
		return fmt.Errorf("job needs a name, cron spec, and recipient")
	}

	_, err := n.cron.AddFunc(job.Spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		n.Fire(ctx, job)
	})
	if err != nil {
		return fmt.Errorf("schedule job %s: %w", job.Name, err)
	}

	n.logger.Info("notification job registered",
		zap.String("job", job.Name),
		zap.String("cron", job.Spec),
		zap.String("recipient", job.Recipient),
	)
	return nil
}

// Fire runs one job immediately. All failures are logged and swallowed.
func (n *Notifier) Fire(ctx context.Context, job Job) {
	// Each job converses as its own synthetic user so scheduled prompts
	// never pollute a real user's history.
	userID := "notifier:" + job.Name

	body, err := n.sender.Send(ctx, userID, job.Prompt)
	if err != nil {
		n.logger.Error("notification completion failed",
			zap.String("job", job.Name),
			zap.Error(err),
		)
		return
	}

	if err := n.mailer.Send(job.Subject, body, job.Recipient); err != nil {
		n.logger.Error("notification mail delivery failed",
			zap.String("job", job.Name),
			zap.String("recipient", job.Recipient),
			zap.Error(err),
		)
		return
	}

	n.logger.Info("notification sent",
		zap.String("job", job.Name),
		zap.String("recipient", job.Recipient),
	)
}

// Start launches the background runner.
func (n *Notifier) Start() {
	n.cron.Start()
}

// Stop halts the runner and waits for any in-flight job.
func (n *Notifier) Stop() {
	ctx := n.cron.Stop()
	<-ctx.Done()
}
