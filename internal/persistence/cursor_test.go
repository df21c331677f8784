package persistence

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/ftracker/internal/domain"
)

func TestCursorTokenRestoresPosition(t *testing.T) {
	cursor := &domain.Cursor{
		ProcessedAt: time.Date(2026, time.April, 2, 9, 15, 0, 123456789, time.UTC),
		ID:          "6a2f6f36-0c0c-4c1e-9b5b-8f0f8c1d2e3f",
	}

	decoded, err := DecodeCursor(EncodeCursor(cursor))
	require.NoError(t, err)
	require.True(t, cursor.ProcessedAt.Equal(decoded.ProcessedAt))
	require.Equal(t, cursor.ID, decoded.ID)
}

func TestCursorEmpty(t *testing.T) {
	require.Empty(t, EncodeCursor(nil))

	decoded, err := DecodeCursor("  ")
	require.NoError(t, err)
	require.Nil(t, decoded)
}

func TestDecodeCursorRejectsMalformedTokens(t *testing.T) {
	for _, token := range []string{
		"%%%",
		base64.RawURLEncoding.EncodeToString([]byte("no-separator")),
		base64.RawURLEncoding.EncodeToString([]byte("yesterday|id")),
		base64.RawURLEncoding.EncodeToString([]byte("2026-04-02T09:15:00Z|")),
	} {
		_, err := DecodeCursor(token)
		require.Error(t, err, token)
	}
}
