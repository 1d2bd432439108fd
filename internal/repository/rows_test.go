package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeValue_UUID(t *testing.T) {
	raw := [16]byte{0x55, 0x0e, 0x84, 0x00, 0xe2, 0x9b, 0x41, 0xd4, 0xa7, 0x16, 0x44, 0x66, 0x55, 0x44, 0x00, 0x00}

	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", normalizeValue(raw))
}

func TestNormalizeValue_Array(t *testing.T) {
	raw := []any{[16]byte{}, int32(4), "text"}

	assert.Equal(t, []any{"00000000-0000-0000-0000-000000000000", int32(4), "text"}, normalizeValue(raw))
}

func TestNormalizeValue_PassThrough(t *testing.T) {
	for _, v := range []any{nil, int64(1), "abc", true, []byte("bytes"), 1.5} {
		assert.Equal(t, v, normalizeValue(v))
	}
}

func TestNormalizeRows_KeepsOrderAndColumns(t *testing.T) {
	records := []map[string]any{
		{"id": int64(2), "first_name": "Bea", "token": [16]byte{1}},
		{"id": int64(1), "first_name": "Al", "token": nil},
	}

	got := normalizeRows(records)

	assert.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0]["id"])
	assert.Equal(t, "01000000-0000-0000-0000-000000000000", got[0]["token"])
	assert.Equal(t, int64(1), got[1]["id"])
	assert.Nil(t, got[1]["token"])
	assert.ElementsMatch(t, []string{"id", "first_name", "token"}, keys(got[1]))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
