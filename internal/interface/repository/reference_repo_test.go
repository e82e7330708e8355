package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"boardingpass-service/internal/domain/entity"
)

func TestCodeCache(t *testing.T) {
	var c codeCache[entity.Airline]

	_, ok := c.get("UA")
	assert.False(t, ok)

	c.put("UA", &entity.Airline{Code: "UA", Name: "United Airlines"})
	c.put("ZZ", nil)

	got, ok := c.get("UA")
	assert.True(t, ok)
	assert.Equal(t, "United Airlines", got.Name)

	miss, ok := c.get("ZZ")
	assert.True(t, ok)
	assert.Nil(t, miss)
}

func TestReferenceTableNames(t *testing.T) {
	assert.Equal(t, "m_airlines", airlineRow{}.TableName())
	assert.Equal(t, "m_timezone_list", timezoneRow{}.TableName())
}
