package poller

import (
	"context"
	"fmt"
	"log"
	"time"

	"pavilion-status-backend/config"
	"pavilion-status-backend/internal/booking"
	"pavilion-status-backend/internal/catalog"
	"pavilion-status-backend/internal/feed"
	"pavilion-status-backend/internal/metrics"
	"pavilion-status-backend/internal/notification"
	"pavilion-status-backend/internal/watch"
)

// Service drives the two polling cycles against the availability feed:
// a slow full-snapshot refresh that resets the status store, and a fast
// delta poll that feeds the reconciler and turns detected changes on
// watched pavilions into notifications. The cycles run independently; a
// failure in one never stalls the other.
type Service struct {
	cfg        *config.Config
	feed       *feed.Client
	store      *catalog.Store
	reconciler *catalog.Reconciler
	registry   *watch.Registry
	links      *booking.LinkBuilder
	pool       *notification.WorkerPool
	metrics    *metrics.Metrics
}

// NewService wires the polling service.
func NewService(
	cfg *config.Config,
	feedClient *feed.Client,
	store *catalog.Store,
	reconciler *catalog.Reconciler,
	registry *watch.Registry,
	links *booking.LinkBuilder,
	pool *notification.WorkerPool,
	met *metrics.Metrics,
) *Service {
	return &Service{
		cfg:        cfg,
		feed:       feedClient,
		store:      store,
		reconciler: reconciler,
		registry:   registry,
		links:      links,
		pool:       pool,
		metrics:    met,
	}
}

// Run starts the worker pool and both polling loops, blocking until the
// context is cancelled.
func (s *Service) Run(ctx context.Context) {
	log.Println("Starting sync service...")
	s.pool.Start(ctx)

	go s.runLoop(ctx, "snapshot", s.cfg.Feed.SnapshotInterval, s.RefreshOnce)
	s.runLoop(ctx, "delta", s.cfg.Feed.DeltaInterval, s.PollDeltaOnce)
}

// runLoop executes cycle immediately and then on every interval tick
// until the context is cancelled.
func (s *Service) runLoop(ctx context.Context, name string, interval time.Duration, cycle func(context.Context)) {
	cycle(ctx)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("%s loop shutting down", name)
			return
		case <-timer.C:
			cycle(ctx)
			timer.Reset(interval)
		}
	}
}

// RefreshOnce performs one full snapshot refresh. The snapshot is a hard
// reset of the status store and deliberately produces no notifications.
func (s *Service) RefreshOnce(ctx context.Context) {
	pavilions, err := s.feed.FetchSnapshot(ctx)
	if err != nil {
		log.Printf("Error fetching snapshot: %v", err)
		s.metrics.IncFetchErrors()
		return
	}
	if len(pavilions) == 0 {
		// An empty snapshot would wipe all known state; treat it as an
		// upstream hiccup and keep what we have.
		log.Println("Snapshot contained no pavilions, keeping current state")
		return
	}

	s.store.ReplaceAll(pavilions)
	s.metrics.IncSnapshotRefreshes()
	s.metrics.SetKnownPavilions(s.store.Len())
	log.Printf("Snapshot refresh complete: %d pavilions", len(pavilions))
}

// PollDeltaOnce performs one delta poll cycle: fetch, reconcile, and
// dispatch notifications for changes on watched pavilions.
func (s *Service) PollDeltaOnce(ctx context.Context) {
	delta, err := s.feed.FetchDelta(ctx)
	if err != nil {
		log.Printf("Error fetching delta: %v", err)
		s.metrics.IncFetchErrors()
		return
	}
	s.metrics.IncDeltaPolls()

	changes := s.reconciler.ApplyDelta(delta)
	if len(changes) == 0 {
		return
	}
	s.metrics.AddChangesDetected(len(changes))

	watched := s.registry.WatchedSet()
	ticketIDs := s.registry.TicketIDs(s.cfg.Notify.DefaultSubscriber)

	for _, change := range changes {
		if _, ok := watched[change.Code]; !ok {
			continue
		}
		s.pool.Dispatch(s.buildMessage(change, ticketIDs))
		s.metrics.IncNotificationsDispatched()
	}
}

// buildMessage turns a change record into the structured notification
// payload: pavilion title, severity color, and the slot/status/link
// fields.
func (s *Service) buildMessage(change catalog.ChangeRecord, ticketIDs []string) notification.Message {
	name := s.store.Name(change.Code)
	link := s.links.TicketURL(change.Code, ticketIDs)

	return notification.Message{
		Title: fmt.Sprintf("%s (%s)", name, change.Code),
		Color: change.New.Color(),
		Fields: []notification.Field{
			{Title: "Time Slot", Value: formatSlot(change.Slot), Short: true},
			{Title: "Current Status", Value: change.New.Label(), Short: true},
			{Title: "Book URL", Value: fmt.Sprintf("<%s|Link>", link), Short: true},
		},
	}
}

// formatSlot renders an HHMM slot code as HH:MM. Other shapes pass
// through unchanged.
func formatSlot(slot string) string {
	if len(slot) == 4 {
		return slot[:2] + ":" + slot[2:]
	}
	return slot
}
