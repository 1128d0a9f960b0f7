// Package digest runs the scheduled seller digest: once per schedule it
// aggregates every seller's listings and mails each seller a summary.
package digest

import (
	"github.com/bkaya/campus-market/internal/repository"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Mailer sends a single seller digest message.
type Mailer interface {
	SendListingDigest(to, username string, listings int, total float64) error
}

// Digest schedules and runs the seller summary job
type Digest struct {
	repo   *repository.Repository
	mailer Mailer
	log    *logrus.Logger
	cron   *cron.Cron
}

// New initializes the digest job
func New(repo *repository.Repository, mailer Mailer, log *logrus.Logger) *Digest {
	return &Digest{
		repo:   repo,
		mailer: mailer,
		log:    log,
		cron:   cron.New(),
	}
}

// Start registers the job under the given cron spec and starts the scheduler.
func (d *Digest) Start(spec string) error {
	if _, err := d.cron.AddFunc(spec, d.Run); err != nil {
		return err
	}
	d.cron.Start()
	d.log.Infof("Seller digest scheduled: %s", spec)
	return nil
}

// Stop halts the scheduler; a run already in progress finishes.
func (d *Digest) Stop() {
	d.cron.Stop()
}

// Run sends one digest email per seller. Individual send failures are logged
// and skipped so one bad address never blocks the rest.
func (d *Digest) Run() {
	summaries, err := d.repo.SellerSummaries()
	if err != nil {
		d.log.Errorf("Seller digest aborted: %v", err)
		return
	}

	sent := 0
	for _, s := range summaries {
		if err := d.mailer.SendListingDigest(s.Email, s.Username, s.Listings, s.Total); err != nil {
			continue
		}
		sent++
	}
	d.log.Infof("Seller digest finished: %d/%d emails sent", sent, len(summaries))
}
