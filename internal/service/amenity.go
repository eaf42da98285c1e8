package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"petcareapi/internal/model"
	"petcareapi/internal/places"
	"petcareapi/internal/repository"
)

// staleAfter is how long a cached place-search result stays usable.
const staleAfter = 24 * time.Hour

// PlaceSearcher is the slice of the places client the amenity service needs.
type PlaceSearcher interface {
	SearchNearby(ctx context.Context, lat, lng float64, radius int, keyword string) ([]places.Place, error)
	SearchText(ctx context.Context, query string, lat, lng float64, radius int, placeType string) ([]places.Place, error)
}

// AmenityService defines the place-search use cases backed by the external
// API plus a 24-hour local cache.
type AmenityService interface {
	// SearchNearby evicts stale cache entries, fans out one proximity search
	// per keyword, and returns the deduplicated union. Results are persisted
	// through the cache writer off the request path.
	SearchNearby(ctx context.Context, lat, lng float64, radius int, keywords []string) ([]places.Place, error)

	// SearchByKeyword is SearchNearby's text-search counterpart: one query
	// per place type.
	SearchByKeyword(ctx context.Context, keyword string, lat, lng float64, radius int, types []string) ([]places.Place, error)

	// FilterLocations returns the cached place ids matching the filters.
	// Ids are queried in batches; openNowMode "open_now" keeps only places
	// open right now, "24_hours" additionally requires a round-the-clock
	// opening period.
	FilterLocations(ctx context.Context, placeIDs []string, minRating *float64, openNowMode string) ([]string, error)
}

// CacheWriter persists search results asynchronously. Completion is
// observable through Wait, so shutdown and tests can flush pending writes.
type CacheWriter struct {
	locations repository.LocationRepository
	amenities repository.AmenityRepository
	timeout   time.Duration

	wg sync.WaitGroup
}

// NewCacheWriter constructs a writer with a per-write timeout.
func NewCacheWriter(locations repository.LocationRepository, amenities repository.AmenityRepository) *CacheWriter {
	return &CacheWriter{locations: locations, amenities: amenities, timeout: 10 * time.Second}
}

// Save schedules one place for persistence and returns immediately.
func (w *CacheWriter) Save(p places.Place) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.persist(p)
	}()
}

// Wait blocks until every scheduled write has finished.
func (w *CacheWriter) Wait() {
	w.wg.Wait()
}

// persist stores the location first so the amenity row can reference it.
// Failures are logged, not propagated; the cache is best-effort.
func (w *CacheWriter) persist(p places.Place) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	locID, err := w.locations.SaveOrUpdate(ctx, &model.Location{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Address:   p.Vicinity,
	})
	if err != nil {
		logCacheError("save location", p.ID, err)
		return
	}

	a := &model.Amenity{
		AmenityID:     p.ID,
		Name:          p.Name,
		OpenNow:       p.OpenNow,
		OpeningHours:  p.OpeningHours,
		ContactNumber: p.PhoneNumber,
		Website:       p.Website,
		Rating:        p.Rating,
		Photo:         p.PhotoBase64,
		LocationID:    locID,
		CachedAt:      time.Now().UTC(),
	}
	if err := w.amenities.Upsert(ctx, a); err != nil {
		logCacheError("save amenity", p.ID, err)
	}
}

func logCacheError(op, placeID string, err error) {
	entry := map[string]any{
		"ts":       time.Now().UTC().Format(time.RFC3339Nano),
		"level":    "error",
		"msg":      "amenity cache write failed",
		"op":       op,
		"place_id": placeID,
		"error":    err.Error(),
	}
	b, _ := json.Marshal(entry)
	os.Stderr.Write(append(b, '\n'))
}

type amenityService struct {
	searcher  PlaceSearcher
	amenities repository.AmenityRepository
	writer    *CacheWriter
}

// NewAmenityService constructs a new AmenityService.
func NewAmenityService(searcher PlaceSearcher, amenities repository.AmenityRepository, writer *CacheWriter) AmenityService {
	return &amenityService{searcher: searcher, amenities: amenities, writer: writer}
}

func (s *amenityService) SearchNearby(ctx context.Context, lat, lng float64, radius int, keywords []string) ([]places.Place, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: at least one keyword is required", ErrValidation)
	}
	if err := s.evictStale(ctx); err != nil {
		return nil, err
	}

	var all []places.Place
	for _, kw := range keywords {
		res, err := s.searcher.SearchNearby(ctx, lat, lng, radius, kw)
		if err != nil {
			return nil, fmt.Errorf("%w: nearby search: %v", ErrUpstream, err)
		}
		all = append(all, res...)
	}
	return s.finish(all), nil
}

func (s *amenityService) SearchByKeyword(ctx context.Context, keyword string, lat, lng float64, radius int, types []string) ([]places.Place, error) {
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword is required", ErrValidation)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: at least one type is required", ErrValidation)
	}
	if err := s.evictStale(ctx); err != nil {
		return nil, err
	}

	var all []places.Place
	for _, typ := range types {
		res, err := s.searcher.SearchText(ctx, keyword, lat, lng, radius, typ)
		if err != nil {
			return nil, fmt.Errorf("%w: text search: %v", ErrUpstream, err)
		}
		all = append(all, res...)
	}
	return s.finish(all), nil
}

func (s *amenityService) evictStale(ctx context.Context) error {
	if _, err := s.amenities.DeleteStale(ctx, time.Now().Add(-staleAfter)); err != nil {
		return fmt.Errorf("evict stale amenities: %w", err)
	}
	return nil
}

// finish deduplicates by place id (first occurrence wins) and hands each
// unique result to the cache writer.
func (s *amenityService) finish(all []places.Place) []places.Place {
	seen := make(map[string]struct{}, len(all))
	unique := make([]places.Place, 0, len(all))
	for _, p := range all {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		unique = append(unique, p)
	}
	for _, p := range unique {
		s.writer.Save(p)
	}
	return unique
}

func (s *amenityService) FilterLocations(ctx context.Context, placeIDs []string, minRating *float64, openNowMode string) ([]string, error) {
	if len(placeIDs) == 0 {
		return nil, fmt.Errorf("%w: placeIds list cannot be empty", ErrValidation)
	}
	openNow := openNowMode == "open_now" || openNowMode == "24_hours"

	ids := make([]string, 0, len(placeIDs))
	for start := 0; start < len(placeIDs); start += repository.AmenityFilterBatchSize {
		end := start + repository.AmenityFilterBatchSize
		if end > len(placeIDs) {
			end = len(placeIDs)
		}
		batch, err := s.amenities.FilterByIDs(ctx, placeIDs[start:end], minRating, openNow)
		if err != nil {
			return nil, err
		}
		for _, a := range batch {
			if openNowMode == "24_hours" && !open24Hours(a.OpeningHours) {
				continue
			}
			ids = append(ids, a.AmenityID)
		}
	}
	return ids, nil
}

// open24Hours reports whether any period spans the literal full day.
func open24Hours(hours []model.OpeningPeriod) bool {
	for _, h := range hours {
		if h.Open != nil && h.Close != nil && h.Open.Time == "0000" && h.Close.Time == "2359" {
			return true
		}
	}
	return false
}
