package receiving

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateFEFO(t *testing.T) {
	t.Run("rejects expired stock", func(t *testing.T) {
		result := ValidateFEFO(time.Now().AddDate(0, 0, -1), 6)
		assert.False(t, result.Valid)
		assert.Negative(t, result.DaysRemaining)
	})

	t.Run("rejects stock expiring inside the policy window", func(t *testing.T) {
		result := ValidateFEFO(time.Now().AddDate(0, 3, 0), 6)
		assert.False(t, result.Valid)
		assert.Positive(t, result.DaysRemaining)
	})

	t.Run("accepts stock with enough shelf life", func(t *testing.T) {
		result := ValidateFEFO(time.Now().AddDate(1, 0, 0), 6)
		assert.True(t, result.Valid)
	})

	t.Run("non-positive policy falls back to default", func(t *testing.T) {
		// Seven months out passes the six month default
		result := ValidateFEFO(time.Now().AddDate(0, 7, 0), 0)
		assert.True(t, result.Valid)
	})
}
