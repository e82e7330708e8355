package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"gorm.io/gorm"

	"boardingpass-service/internal/domain/entity"
	"boardingpass-service/internal/domain/repository"
)

// ErrReferenceNotFound is returned when no reference row exists for a code
var ErrReferenceNotFound = errors.New("reference data not found")

// airlineRow maps m_airlines
type airlineRow struct {
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"column:code;unique"`
	Name      string         `gorm:"column:name"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (airlineRow) TableName() string {
	return "m_airlines"
}

// timezoneRow maps m_timezone_list
type timezoneRow struct {
	ID          uint   `gorm:"primaryKey"`
	AirportCode string `gorm:"column:airportcode;unique"`
	AirportName string `gorm:"column:airport_name"`
	CityName    string `gorm:"column:cityname"`
	TzName      string `gorm:"column:tzname"`
}

func (timezoneRow) TableName() string {
	return "m_timezone_list"
}

// codeCache remembers lookups by code, misses included.
type codeCache[T any] struct {
	mu      sync.RWMutex
	entries map[string]*T
}

func (c *codeCache[T]) get(code string) (*T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[code]
	return v, ok
}

func (c *codeCache[T]) put(code string, v *T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]*T)
	}
	c.entries[code] = v
}

// GormAirlineRepository implements the AirlineRepository interface
type GormAirlineRepository struct {
	db    *gorm.DB
	cache codeCache[entity.Airline]
}

// NewGormAirlineRepository creates a new GORM airline repository
func NewGormAirlineRepository(db *gorm.DB) repository.AirlineRepository {
	return &GormAirlineRepository{db: db}
}

// GetByCode finds an airline by IATA code
func (r *GormAirlineRepository) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if cached, ok := r.cache.get(code); ok {
		if cached == nil {
			return nil, ErrReferenceNotFound
		}
		return cached, nil
	}

	var row airlineRow
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.cache.put(code, nil)
		return nil, ErrReferenceNotFound
	}
	if err != nil {
		return nil, err
	}

	airline := &entity.Airline{ID: row.ID, Code: row.Code, Name: row.Name}
	r.cache.put(code, airline)
	return airline, nil
}

// GormTimezoneRepository implements the TimezoneRepository interface
type GormTimezoneRepository struct {
	db    *gorm.DB
	cache codeCache[entity.Timezone]
}

// NewGormTimezoneRepository creates a new GORM timezone repository
func NewGormTimezoneRepository(db *gorm.DB) repository.TimezoneRepository {
	return &GormTimezoneRepository{db: db}
}

// GetByAirportCode finds the timezone of an airport
func (r *GormTimezoneRepository) GetByAirportCode(ctx context.Context, code string) (*entity.Timezone, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if cached, ok := r.cache.get(code); ok {
		if cached == nil {
			return nil, ErrReferenceNotFound
		}
		return cached, nil
	}

	var row timezoneRow
	err := r.db.WithContext(ctx).Where("airportcode = ?", code).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.cache.put(code, nil)
		return nil, ErrReferenceNotFound
	}
	if err != nil {
		return nil, err
	}

	tz := &entity.Timezone{
		ID:          row.ID,
		AirportCode: row.AirportCode,
		AirportName: row.AirportName,
		CityName:    row.CityName,
		TzName:      row.TzName,
	}
	r.cache.put(code, tz)
	return tz, nil
}
