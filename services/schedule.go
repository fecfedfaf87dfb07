package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/autoservice/garage-api/models"
	"gorm.io/gorm"
)

// DateLayout is the format of the day filter
const DateLayout = "2006-01-02"

// ScheduleService answers "which orders start on day D" in a reference timezone
type ScheduleService struct {
	db    *gorm.DB
	cache ScheduleCache
	loc   *time.Location
}

// NewScheduleService creates a schedule service. cache may be nil; loc nil means UTC.
func NewScheduleService(db *gorm.DB, cache ScheduleCache, loc *time.Location) *ScheduleService {
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleService{db: db, cache: cache, loc: loc}
}

// Location returns the reference timezone
func (s *ScheduleService) Location() *time.Location {
	return s.loc
}

// DayBounds returns [start, end) of the calendar day in the reference timezone
func (s *ScheduleService) DayBounds(date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationError("INVALID_DATE", fmt.Sprintf("date must be YYYY-MM-DD, got %q", date))
	}
	return day, day.AddDate(0, 0, 1), nil
}

// ListForDay returns the orders created on date, or every order when date is empty,
// oldest first with their related rows attached where they still exist.
func (s *ScheduleService) ListForDay(ctx context.Context, date string) ([]models.Order, error) {
	query := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Car.CarModel").
		Preload("Employee").
		Preload("Box").
		Preload("Lines", orderLinesByService).
		Preload("Lines.Service", includeDeleted).
		Order("create_date ASC").
		Order("id ASC")

	if date != "" {
		start, end, err := s.DayBounds(date)
		if err != nil {
			return nil, err
		}
		date = start.Format(DateLayout)
		query = query.Where("create_date >= ? AND create_date < ?", start.UTC(), end.UTC())
	}

	// The key is taken before the database read and reused for the write-back
	cacheKey := ""
	if s.cache != nil {
		key, err := s.cache.Key(ctx, date)
		if err != nil {
			log.Printf("Schedule cache unavailable, reading database: %v", err)
		} else {
			cacheKey = key
		}
	}

	if cacheKey != "" {
		orders, ok, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			log.Printf("Schedule cache read failed, falling back to database: %v", err)
		} else if ok {
			return orders, nil
		}
	}

	orders := []models.Order{}
	if err := query.Find(&orders).Error; err != nil {
		return nil, InternalError("Failed to load schedule", err)
	}

	if cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, orders); err != nil {
			log.Printf("Schedule cache write failed: %v", err)
		}
	}

	return orders, nil
}
