package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
	"portfolio-api/pkg/logger"

	"github.com/juju/clock"
	"github.com/juju/collections/set"
)

const (
	// UnknownIP is recorded when no proxy header carries the client address
	UnknownIP = "0.0.0.0"
	// DefaultPage is recorded when the request body names no page
	DefaultPage = "/"
	// HistogramDays is the length of the daily visit histogram
	HistogramDays = 30

	dateLayout = "2006-01-02"
)

// visitorService records page views and aggregates them for the dashboard
type visitorService struct {
	repo       repository.VisitorRepository
	geo        GeoLocator
	clock      clock.Clock
	logger     *logger.Logger
	queryLimit int
}

// NewVisitorService creates a new visitor service. geo may be nil.
func NewVisitorService(repo repository.VisitorRepository, geo GeoLocator, clk clock.Clock, logger *logger.Logger, queryLimit int) VisitorService {
	if clk == nil {
		clk = clock.WallClock
	}
	return &visitorService{
		repo:       repo,
		geo:        geo,
		clock:      clk,
		logger:     logger,
		queryLimit: queryLimit,
	}
}

// IsInternalIP reports whether ip is loopback or in the 192.168/16 or 10/8 ranges.
// Matching is textual so it also applies to malformed header values.
func IsInternalIP(ip string) bool {
	return ip == "127.0.0.1" ||
		ip == "::1" ||
		strings.HasPrefix(ip, "192.168.") ||
		strings.HasPrefix(ip, "10.")
}

// RecordVisit stores one visit. Geolocation failures are logged and ignored.
func (s *visitorService) RecordVisit(ctx context.Context, visit domain.Visit) (*domain.VisitResult, error) {
	if IsInternalIP(visit.IPAddress) {
		s.logger.WithField("ip", visit.IPAddress).Debug("Skipping internal IP")
		return &domain.VisitResult{Skipped: true}, nil
	}

	page := visit.Page
	if page == "" {
		page = DefaultPage
	}

	record := &domain.VisitRecord{
		IPAddress: visit.IPAddress,
		UserAgent: visit.UserAgent,
		PageURL:   page,
		VisitedAt: s.clock.Now().UTC(),
	}

	if s.geo != nil {
		geo, err := s.geo.Lookup(ctx, visit.IPAddress)
		if err != nil {
			s.logger.WithError(err).WithField("ip", visit.IPAddress).Warn("Geolocation lookup failed")
		} else if geo != nil {
			record.Country = geo.Country
			record.City = geo.City
			record.Region = geo.Region
			record.Latitude = geo.Latitude
			record.Longitude = geo.Longitude
		}
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record visit: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"visit_id": record.ID,
		"page":     record.PageURL,
	}).Debug("Visit recorded")

	return &domain.VisitResult{Record: record}, nil
}

// GetStats reads at most queryLimit recent records, so totals are capped too.
func (s *visitorService) GetStats(ctx context.Context) (*domain.VisitorStats, error) {
	records, err := s.repo.ListRecent(ctx, s.queryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list visit records: %w", err)
	}

	return BuildVisitorStats(records, s.clock.Now()), nil
}

// BuildVisitorStats aggregates records into totals and a daily histogram
// ending on the UTC day of now.
func BuildVisitorStats(records []*domain.VisitRecord, now time.Time) *domain.VisitorStats {
	if records == nil {
		records = []*domain.VisitRecord{}
	}

	ips := set.NewStrings()
	countries := set.NewStrings()
	perDay := make(map[string]int)

	for _, record := range records {
		ips.Add(record.IPAddress)
		if record.Country != nil && *record.Country != "" {
			countries.Add(*record.Country)
		}
		perDay[record.VisitedAt.UTC().Format(dateLayout)]++
	}

	today := now.UTC()
	histogram := make([]domain.DailyVisits, 0, HistogramDays)
	for i := HistogramDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(dateLayout)
		histogram = append(histogram, domain.DailyVisits{Date: date, Visits: perDay[date]})
	}

	return &domain.VisitorStats{
		TotalVisits: len(records),
		UniqueIPs:   ips.Size(),
		Countries:   countries.SortedValues(),
		Last30Days:  histogram,
		Visitors:    records,
	}
}
