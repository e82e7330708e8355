package bcbp

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDayOfYear(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		today time.Time
		want  time.Time
	}{
		{"recent past stays in this year", "183", today, date(2026, time.July, 2)},
		{"today", "289", today, date(2026, time.October, 16)},
		{"near future stays in this year", "350", today, date(2026, time.December, 16)},
		{"far future rolls back", "350", date(2026, time.January, 10), date(2025, time.December, 16)},
		{"exactly 180 days ahead is kept", "190", date(2026, time.January, 10), date(2026, time.July, 9)},
		{"181 days ahead rolls back", "191", date(2026, time.January, 10), date(2025, time.July, 10)},
		{"far past is not rolled forward", "002", date(2026, time.December, 30), date(2026, time.January, 2)},
		{"day 366 in a leap year", "366", date(2024, time.December, 1), date(2024, time.December, 31)},
		{"day 366 after a leap year", "366", date(2025, time.January, 5), date(2024, time.December, 31)},
		{"time of day on today is ignored", "001", time.Date(2026, time.January, 1, 23, 59, 0, 0, time.UTC), date(2026, time.January, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDayOfYear(tt.code, tt.today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDayOfYear_Invalid(t *testing.T) {
	for _, code := range []string{"", "1", "12", "1234", "000", "367", "999", "A12", " 12", "-12"} {
		t.Run(fmt.Sprintf("%q", code), func(t *testing.T) {
			_, err := ResolveDayOfYear(code, today)
			assert.ErrorIs(t, err, ErrInvalidDateCode)
		})
	}

	// 2026 and 2025 are both common years.
	_, err := ResolveDayOfYear("366", today)
	assert.ErrorIs(t, err, ErrInvalidDateCode)
}

func TestResolveDayOfYear_Day366(t *testing.T) {
	tests := []struct {
		name    string
		today   time.Time
		want    time.Time
		wantErr bool
	}{
		{"no leap year this year or last", today, time.Time{}, true},
		{"leap year is this year", date(2024, time.December, 1), date(2024, time.December, 31), false},
		{"leap year was last year", date(2025, time.January, 5), date(2024, time.December, 31), false},
		{"leap year late in the previous year", date(2029, time.March, 1), date(2028, time.December, 31), false},
		{"leap year two years back is out of reach", date(2030, time.March, 1), time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDayOfYear("366", tt.today)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDateCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDayOfYear_Properties(t *testing.T) {
	refs := []time.Time{
		date(2023, time.January, 1),
		date(2024, time.February, 29),
		date(2024, time.December, 31),
		date(2025, time.June, 30),
		date(2026, time.July, 4),
		today,
	}
	for _, ref := range refs {
		for day := 1; day <= 366; day++ {
			code := fmt.Sprintf("%03d", day)
			got, err := ResolveDayOfYear(code, ref)
			if day == 366 && err != nil {
				continue
			}
			require.NoError(t, err, "code %s ref %s", code, ref)

			assert.Equal(t, day, got.YearDay(), "code %s ref %s", code, ref)
			diff := ref.Year() - got.Year()
			assert.True(t, diff == 0 || diff == 1, "code %s ref %s resolved to %s", code, ref, got)

			if day < 366 {
				assert.False(t, got.Sub(ref) > rollbackThreshold, "code %s ref %s resolved to %s", code, ref, got)
			}
		}
	}
}

func TestResolveTimeOfDay(t *testing.T) {
	tests := []struct {
		name     string
		extended string
		hour     int
		minute   int
		ok       bool
	}{
		{"twelve character details", "326J001A0025", 0, 0, false},
		{"thirteen character details", "326J001A00250", 0, 0, false},
		{"time present", "326J001A002501430", 14, 30, true},
		{"midnight is a real time", "326J001A002500000", 0, 0, true},
		{"hour out of range", "326J001A002502430", 0, 0, false},
		{"minute out of range", "326J001A002501260", 0, 0, false},
		{"not numeric", "326J001A00250AB30", 0, 0, false},
		{"too short for a time", "326J001A0025014", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m, ok := ResolveTimeOfDay(tt.extended)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.hour, h)
			assert.Equal(t, tt.minute, m)
		})
	}
}

func TestResolveDeparture(t *testing.T) {
	block := LegBlock{Details: "326J001A00250", Extended: "326J001A002500715"}
	dep, known, err := ResolveDeparture(block, today)
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, time.Date(2026, time.November, 22, 7, 15, 0, 0, time.UTC), *dep)

	block = LegBlock{Details: "326J001A0025", Extended: "326J001A0025"}
	dep, known, err = ResolveDeparture(block, today)
	require.NoError(t, err)
	assert.False(t, known)
	assert.Equal(t, date(2026, time.November, 22), *dep)

	block = LegBlock{Details: "000J001A0025", Extended: "000J001A0025"}
	dep, known, err = ResolveDeparture(block, today)
	assert.ErrorIs(t, err, ErrInvalidDateCode)
	assert.Nil(t, dep)
	assert.False(t, known)
}
