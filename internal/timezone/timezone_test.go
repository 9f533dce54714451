package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, "UTC", Location("UTC").String())
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))

	// fuso inválido cai no padrão
	assert.Equal(t, Location(DefaultTimezone).String(), Location("Mars/Olympus").String())
}

func TestFixedClock(t *testing.T) {
	ts := time.Date(2030, time.January, 1, 9, 0, 0, 0, time.UTC)
	var c Clock = FixedClock(ts)
	assert.True(t, ts.Equal(c.Now()))
}
