package league_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhagedorn/dartliga/internal/league"
)

func TestJoinAndParseCheckouts(t *testing.T) {
	values := []int{120, 36, 80}
	joined := league.JoinCheckouts(values)
	assert.Equal(t, "120, 36, 80", joined)
	assert.Equal(t, values, league.ParseCheckouts(joined))
}

func TestJoinCheckoutsEmpty(t *testing.T) {
	assert.Equal(t, "", league.JoinCheckouts(nil))
	assert.Nil(t, league.ParseCheckouts(""))
	assert.Nil(t, league.ParseCheckouts("   "))
}

func TestParseCheckoutsDropsInvalidTokens(t *testing.T) {
	assert.Equal(t, []int{40, 57}, league.ParseCheckouts("40, zero, -3, 0, 57"))
}
