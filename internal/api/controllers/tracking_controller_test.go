package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTrackEventsSingleObject(t *testing.T) {
	events, err := decodeTrackEvents([]byte(`{"slug":"go-routines"}`))

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "go-routines", events[0].Slug)
}

func TestDecodeTrackEventsArray(t *testing.T) {
	events, err := decodeTrackEvents([]byte(`[{"slug":"a"},{"slug":"b"}]`))

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[1].Slug)
}

func TestDecodeTrackEventsRejectsMissingSlug(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"blank slug", `{"slug":""}`},
		{"blank slug in array", `[{"slug":"ok"},{"slug":""}]`},
		{"empty array", `[]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeTrackEvents([]byte(tc.body))
			assert.Error(t, err)
		})
	}
}

func TestDecodeTrackEventsRejectsMalformedJSON(t *testing.T) {
	_, err := decodeTrackEvents([]byte(`{"slug":`))
	assert.Error(t, err)
}
