// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package dedup

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Empty(t *testing.T) {
	for _, blob := range []string{"", "  ", "{}", `{"x.com":{}}`, `{"x.com":null}`} {
		d, err := decode([]byte(blob))
		require.NoError(t, err, blob)
		assert.Empty(t, d, blob)
	}
}

func TestDecode_RecordShapes(t *testing.T) {
	blob := `{
		"x.com": {
			"aaa": {"ts": 1700000000000, "origin": "42", "sim": 12345},
			"bbb": {"ts": 1700000000001, "origin": null, "sim": null},
			"ccc": 1700000000002,
			"ddd": null
		}
	}`
	d, err := decode([]byte(blob))
	require.NoError(t, err)
	require.Len(t, d["x.com"], 3)

	assert.Equal(t, Record{
		Timestamp:      time.UnixMilli(1700000000000),
		Origin:         "42",
		Fingerprint:    12345,
		HasFingerprint: true,
	}, d["x.com"]["aaa"])
	assert.Equal(t, Record{Timestamp: time.UnixMilli(1700000000001)}, d["x.com"]["bbb"])
	assert.Equal(t, Record{Timestamp: time.UnixMilli(1700000000002)}, d["x.com"]["ccc"], "bare number is a legacy timestamp")
}

func TestDecode_ZeroFingerprintIsPresent(t *testing.T) {
	d, err := decode([]byte(`{"s":{"k":{"ts":1,"origin":null,"sim":0}}}`))
	require.NoError(t, err)
	assert.True(t, d["s"]["k"].HasFingerprint)
	assert.Zero(t, d["s"]["k"].Fingerprint)
}

func TestDecode_Malformed(t *testing.T) {
	for _, blob := range []string{
		"{",
		"[]",
		`{"x.com": 5}`,
		`{"x.com": {"k": "yesterday"}}`,
		`{"x.com": {"k": {"ts": "soon"}}}`,
	} {
		_, err := decode([]byte(blob))
		assert.Error(t, err, blob)
	}
}

func TestEncode_Layout(t *testing.T) {
	d := data{
		"x.com": {
			"aaa": {Timestamp: time.UnixMilli(1700000000000), Origin: "42", Fingerprint: 7, HasFingerprint: true},
			"bbb": {Timestamp: time.UnixMilli(1700000000001)},
		},
	}
	blob, err := encode(d)
	require.NoError(t, err)

	var generic map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(blob, &generic))
	assert.Equal(t, map[string]any{"ts": float64(1700000000000), "origin": "42", "sim": float64(7)}, generic["x.com"]["aaa"])
	assert.Equal(t, map[string]any{"ts": float64(1700000000001), "origin": nil, "sim": nil}, generic["x.com"]["bbb"],
		"absent origin and fingerprint persist as null")
}

func TestEncodeDecode_PreservesRecords(t *testing.T) {
	d := data{
		"global": {"k1": {Timestamp: time.UnixMilli(5), Origin: "o", Fingerprint: 0xffffffff, HasFingerprint: true}},
		"x.com":  {"k2": {Timestamp: time.UnixMilli(6)}},
	}
	blob, err := encode(d)
	require.NoError(t, err)
	back, err := decode(blob)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}
