package xpaddr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckAvailability(t *testing.T) {
	a := CheckAvailability()
	require.True(t, a.Available)
	require.Equal(t, CurveModule, a.Name)
	require.Equal(t, a, CheckAvailability())

	b, err := json.Marshal(a)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	require.Contains(t, m, "available")
	require.Contains(t, m, "name")
	require.Contains(t, m, "version")
}

func TestSelfTest(t *testing.T) {
	require.True(t, selfTest())
	require.Nil(t, moduleVersion("example.com/not/a/dependency"))
}
