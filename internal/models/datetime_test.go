package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	d, err := ParseDateTime("2025-11-08 16:46:32")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-08 16:46:32", d.String())

	// HTML datetime-local input, with and without seconds.
	d, err = ParseDateTime("2025-11-08T16:46")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-08 16:46:00", d.String())

	d, err = ParseDateTime("2025-11-08T16:46:32")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-08 16:46:32", d.String())

	_, err = ParseDateTime("08/11/2025")
	assert.Error(t, err)
}

func TestDateTimeJSONRoundTrip(t *testing.T) {
	d, err := ParseDateTime("2025-11-08 10:00:00")
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-11-08 10:00:00"`, string(raw))

	var decoded DateTime
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Equal(d.Time))
}

func TestDateTimeZeroMarshalsNull(t *testing.T) {
	raw, err := json.Marshal(DateTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}
