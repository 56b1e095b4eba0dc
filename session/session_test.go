package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveThreadID_Deterministic(t *testing.T) {
	first := DeriveThreadID("+15551234567")
	second := DeriveThreadID("+15551234567")
	assert.Equal(t, first, second)
}

func TestDeriveThreadID_DistinctInputs(t *testing.T) {
	assert.NotEqual(t, DeriveThreadID("+15551234567"), DeriveThreadID("+15557654321"))
}

func TestDeriveThreadID_IsVersion5UUID(t *testing.T) {
	id, err := uuid.Parse(DeriveThreadID("+15551234567"))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())
}

func TestDeriveThreadID_MatchesDNSNamespace(t *testing.T) {
	want := uuid.NewSHA1(uuid.NameSpaceDNS, []byte("+15551234567")).String()
	assert.Equal(t, want, DeriveThreadID("+15551234567"))
}
