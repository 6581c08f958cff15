package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vikoba/vikoba_backend/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 6, 14, 10, 30, 0, 123456789, time.UTC)
	id := "a3f1c2d4-0000-4000-8000-000000000001"

	token := pagination.EncodeToken(createdAt, id)
	gotCreatedAt, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotCreatedAt))
	assert.Equal(t, id, gotID)
}

func TestDecodeTokenGarbage(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!")
	assert.Error(t, err)
}

func TestDecodeTokenMissingSeparator(t *testing.T) {
	token := pagination.EncodeToken(time.Now(), "")
	// Valid shape still decodes; a token with no separator at all must not.
	_, _, err := pagination.DecodeToken(token)
	assert.NoError(t, err)

	_, _, err = pagination.DecodeToken("aGVsbG8=") // "hello"
	assert.Error(t, err)
}
