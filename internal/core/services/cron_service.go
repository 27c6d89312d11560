package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// sweepTimeout bounds a single overdue sweep
const sweepTimeout = 2 * time.Minute

// CronService runs scheduled background jobs
type CronService struct {
	cron      *cron.Cron
	borrowing BorrowingReader
}

// NewCronService creates a scheduler with the overdue sweep registered at schedule
func NewCronService(borrowing BorrowingReader, schedule string) (*CronService, error) {
	s := &CronService{
		cron:      cron.New(cron.WithLocation(time.Local)),
		borrowing: borrowing,
	}

	if _, err := s.cron.AddFunc(schedule, s.runOverdueSweep); err != nil {
		return nil, fmt.Errorf("invalid overdue scan schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins running scheduled jobs in the background
func (s *CronService) Start() {
	s.cron.Start()
	log.Println("⏰ Cron service started")
}

// Stop halts the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("⏰ Cron service stopped")
}

func (s *CronService) runOverdueSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.OverdueSweep(ctx); err != nil {
		log.Printf("❌ Overdue sweep failed: %v", err)
	}
}

// OverdueSweep logs every overdue loan and returns how many were found
func (s *CronService) OverdueSweep(ctx context.Context) (int, error) {
	list, err := s.borrowing.ListOverdue(ctx)
	if err != nil {
		return 0, err
	}

	for _, bp := range list {
		email, title := "N/A", "N/A"
		if bp.Borrower != nil {
			email = bp.Borrower.Email
		}
		if bp.Book != nil {
			title = bp.Book.Title
		}
		log.Printf("⚠️ Overdue loan #%d: %q borrowed by %s, due %s",
			bp.ID, title, email, bp.DueDate.Format("2006-01-02"))
	}

	log.Printf("📋 Overdue sweep completed: %d overdue loan(s)", len(list))
	return len(list), nil
}
