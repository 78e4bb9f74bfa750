package booking

import (
	"log"
	"net/url"
	"strings"
	"time"

	"pavilion-status-backend/config"
)

// LinkBuilder constructs ticket booking deep links for a pavilion. The
// link carries the caller's ticket IDs plus the entrance date for "today"
// in the venue's timezone.
type LinkBuilder struct {
	cfg *config.BookingConfig
	loc *time.Location
	now func() time.Time
}

// NewLinkBuilder creates a builder. An unknown timezone falls back to UTC.
func NewLinkBuilder(cfg *config.BookingConfig) *LinkBuilder {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("Warning: failed to load timezone %q, using UTC: %v", cfg.Timezone, err)
		loc = time.UTC
	}
	return &LinkBuilder{cfg: cfg, loc: loc, now: time.Now}
}

// TicketURL builds the booking link for a pavilion code. The id parameter
// is omitted entirely when the caller has no ticket IDs.
func (b *LinkBuilder) TicketURL(code string, ticketIDs []string) string {
	params := url.Values{}
	if len(ticketIDs) > 0 {
		params.Set("id", strings.Join(ticketIDs, ","))
	}
	params.Set("event_id", code)
	params.Set("screen_id", b.cfg.ScreenID)
	params.Set("lottery", b.cfg.Lottery)
	params.Set("entrance_date", b.now().In(b.loc).Format("20060102"))

	return b.cfg.BaseURL + "?" + params.Encode()
}
