package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPaginationNormalize(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		p := PaginationParams{}
		p.Normalize()
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, "_id", p.SortBy)
	})

	t.Run("LimitCapped", func(t *testing.T) {
		p := PaginationParams{Page: 2, Limit: 500}
		p.Normalize()
		assert.Equal(t, 10, p.Limit)
	})

	t.Run("ValidValuesKept", func(t *testing.T) {
		p := PaginationParams{Page: 3, Limit: 25, SortBy: "name"}
		p.Normalize()
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 25, p.Limit)
		assert.Equal(t, "name", p.SortBy)
	})
}

func TestPaginationSkipAndSort(t *testing.T) {
	p := PaginationParams{Page: 3, Limit: 20, SortBy: "name", Order: "desc"}
	assert.Equal(t, int64(40), p.GetSkip())
	assert.Equal(t, bson.D{{Key: "name", Value: -1}}, p.Sort())

	p.Order = "asc"
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, p.Sort())
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse([]string{"a", "b"}, 42, PaginationParams{Page: 2, Limit: 10})
	assert.Equal(t, int64(42), resp.Total)
	assert.Equal(t, 5, resp.TotalPages)
	assert.True(t, resp.HasNext)
	assert.True(t, resp.HasPrevious)

	last := NewPaginatedResponse([]string{"z"}, 42, PaginationParams{Page: 5, Limit: 10})
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrevious)
}
