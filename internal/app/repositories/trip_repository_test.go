package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryWhere(t *testing.T, category string) (string, []interface{}) {
	t.Helper()

	pred := categoryPredicate(category, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, pred)

	sql, args, err := pred.ToSql()
	require.NoError(t, err)
	return sql, args
}

// The category filter runs in SQL so pagination totals count matching rows.
// Each category's condition mirrors the derived classification: past wins
// over the count-driven categories, a missing cap is never full, a
// non-positive minimum is never met.
func TestCategoryPredicate(t *testing.T) {
	t.Run("empty category means no predicate", func(t *testing.T) {
		assert.Nil(t, categoryPredicate("", time.Now()))
	})

	t.Run("past matches completed or ended trips", func(t *testing.T) {
		sql, args := categoryWhere(t, "past")
		assert.Equal(t, "(t.status = ? OR t.end_date < ?)", sql)
		assert.Len(t, args, 2)
	})

	t.Run("full excludes past and requires a reached cap", func(t *testing.T) {
		sql, _ := categoryWhere(t, "full")
		assert.Contains(t, sql, "t.status <> ?")
		assert.Contains(t, sql, "t.end_date >= ?")
		assert.Contains(t, sql, "t.accepted_participants >= t.max_participants")
		assert.Contains(t, sql, "t.max_participants > 0")
	})

	t.Run("viable requires room and a met minimum", func(t *testing.T) {
		sql, _ := categoryWhere(t, "viable")
		assert.Contains(t, sql, "t.max_participants IS NULL OR t.max_participants <= 0 OR t.accepted_participants < t.max_participants")
		assert.Contains(t, sql, "t.min_participants > 0 AND t.accepted_participants >= t.min_participants")
	})

	t.Run("below minimum requires room and an unmet minimum", func(t *testing.T) {
		sql, _ := categoryWhere(t, "below_minimum")
		assert.Contains(t, sql, "t.max_participants IS NULL OR t.max_participants <= 0 OR t.accepted_participants < t.max_participants")
		assert.Contains(t, sql, "t.min_participants <= 0 OR t.accepted_participants < t.min_participants")
	})
}
