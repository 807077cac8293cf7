// Package reminders emails users about follow-ups due in the next day.
package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/tomlhennessy/job-tracker/internal/jobs"
	"github.com/tomlhennessy/job-tracker/internal/shared/telemetry"
)

const dueWindow = 24 * time.Hour

// Service finds jobs whose follow-up falls inside the due window and
// sends one reminder per job.
type Service struct {
	jobs   *jobs.Service
	mailer Mailer
	now    func() time.Time
}

func NewService(jobSvc *jobs.Service, mailer Mailer) *Service {
	return &Service{jobs: jobSvc, mailer: mailer, now: time.Now}
}

// NewServiceWithClock injects a clock for tests.
func NewServiceWithClock(jobSvc *jobs.Service, mailer Mailer, now func() time.Time) *Service {
	return &Service{jobs: jobSvc, mailer: mailer, now: now}
}

// SendDue emails the user about each job due for a follow-up within
// the next 24 hours and returns how many reminders went out. A failed
// send is logged and skipped; the rest still go out.
func (s *Service) SendDue(ctx context.Context, userID, email string) (int, error) {
	from := s.now().UTC()
	due, err := s.jobs.FollowUpsDue(ctx, userID, from, from.Add(dueWindow))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, job := range due {
		subject := fmt.Sprintf("Follow-up reminder: %s at %s", job.Position, job.Company)
		body := fmt.Sprintf(
			"Hi,\n\nThis is a reminder to follow up on your application for %s at %s. You planned to check in on %s.\n\nGood luck!",
			job.Position, job.Company, job.FollowUpDate.Format("Monday, 2 January 2006"),
		)
		if err := s.mailer.Send(ctx, email, subject, body); err != nil {
			telemetry.Error("reminders.send_failed", map[string]any{
				"jobId": job.ID,
				"error": err.Error(),
			})
			continue
		}
		sent++
	}
	return sent, nil
}
