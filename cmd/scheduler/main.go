package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/Akanael21/FriendlyBanks/internal/config"
	"github.com/Akanael21/FriendlyBanks/internal/repository"
	"github.com/Akanael21/FriendlyBanks/internal/service"
)

func main() {
	log.Println("Starting scheduler...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	loanRepo := repository.NewLoanRepository(db)
	contributionRepo := repository.NewContributionRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	governanceRepo := repository.NewGovernanceRepository(db)
	contributionService := service.NewContributionService(contributionRepo, memberRepo, cfg.ContributionPolicy())
	governanceService := service.NewGovernanceService(governanceRepo)

	c := cron.New(cron.WithLocation(location))
	setupCronJobs(c, loanRepo, contributionService, governanceService)

	c.Start()
	log.Println("Scheduler started")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, loanRepo repository.LoanRepository, contributions *service.ContributionService, governance *service.GovernanceService) {
	// Daily sweep for approved loans past their due date with an outstanding
	// balance. Overdue loans are surfaced to the committee, which may turn
	// them into sanction proposals.
	_, err := c.AddFunc("0 1 * * *", func() {
		flagOverdueLoans(loanRepo)
	})
	if err != nil {
		log.Fatalf("Error scheduling overdue loan sweep: %v", err)
	}

	// Daily close of governance proposals whose voting window ended: the
	// tally is settled under each proposal's required majority.
	_, err = c.AddFunc("30 1 * * *", func() {
		closeExpiredVotes(governance)
	})
	if err != nil {
		log.Fatalf("Error scheduling vote close sweep: %v", err)
	}

	// Monthly Berry score recalculation, re-deriving every member's score
	// from the contribution ledger. Runs on the 1st at 02:00.
	_, err = c.AddFunc("0 2 1 * *", func() {
		recalculateBerryScores(contributions)
	})
	if err != nil {
		log.Fatalf("Error scheduling berry recalculation: %v", err)
	}

	log.Println("Cron jobs scheduled")
}

func flagOverdueLoans(loanRepo repository.LoanRepository) {
	log.Println("Running overdue loan sweep...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	loans, err := loanRepo.ListOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("Overdue loan sweep failed: %v", err)
		return
	}

	for _, loan := range loans {
		log.Printf("Overdue loan %d: member %d owes %s since %s",
			loan.ID, loan.MemberID, loan.RemainingBalance.String(),
			loan.DueDate.Format("2006-01-02"))
	}
	log.Printf("Overdue loan sweep done, %d loan(s) flagged", len(loans))
}

func closeExpiredVotes(governance *service.GovernanceService) {
	log.Println("Running vote close sweep...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	closed, err := governance.CloseExpiredVotes(ctx, time.Now())
	if err != nil {
		log.Printf("Vote close sweep failed: %v", err)
		return
	}

	log.Printf("Vote close sweep done, %d proposal(s) settled", closed)
}

func recalculateBerryScores(contributions *service.ContributionService) {
	log.Println("Running berry score recalculation...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	updated, err := contributions.RecalculateBerryScores(ctx)
	if err != nil {
		log.Printf("Berry score recalculation failed: %v", err)
		return
	}

	log.Printf("Berry score recalculation done, %d member(s) updated", updated)
}
