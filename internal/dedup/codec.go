// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package dedup

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// wireRecord is the persisted shape of a Record.
type wireRecord struct {
	TS     int64   `json:"ts"`
	Origin *string `json:"origin"`
	Sim    *uint32 `json:"sim"`
}

// data is the in-memory store: scope -> exact key -> record.
type data map[string]map[string]Record

// encode serializes d as {scope: {key: {ts, origin, sim}}}.
func encode(d data) ([]byte, error) {
	wire := make(map[string]map[string]wireRecord, len(d))
	for scope, records := range d {
		out := make(map[string]wireRecord, len(records))
		for key, r := range records {
			w := wireRecord{TS: r.Timestamp.UnixMilli()}
			if r.Origin != "" {
				origin := r.Origin
				w.Origin = &origin
			}
			if r.HasFingerprint {
				sim := r.Fingerprint
				w.Sim = &sim
			}
			out[key] = w
		}
		wire[scope] = out
	}
	return json.Marshal(wire)
}

// decode parses a persisted blob. An empty blob decodes to an empty store.
// A record stored as a bare number is a legacy timestamp-only record. Any
// other malformed content fails the whole blob.
func decode(blob []byte) (data, error) {
	d := make(data)
	if len(bytes.TrimSpace(blob)) == 0 {
		return d, nil
	}

	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("decode store: %w", err)
	}

	for scope, records := range raw {
		if len(records) == 0 {
			continue
		}
		out := make(map[string]Record, len(records))
		for key, msg := range records {
			r, ok, err := decodeRecord(msg)
			if err != nil {
				return nil, fmt.Errorf("decode record %s/%s: %w", scope, key, err)
			}
			if ok {
				out[key] = r
			}
		}
		d[scope] = out
	}
	return d, nil
}

func decodeRecord(msg json.RawMessage) (Record, bool, error) {
	trimmed := bytes.TrimSpace(msg)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		return Record{}, false, nil
	case trimmed[0] == '{':
		var w wireRecord
		if err := json.Unmarshal(trimmed, &w); err != nil {
			return Record{}, false, err
		}
		r := Record{Timestamp: time.UnixMilli(w.TS)}
		if w.Origin != nil {
			r.Origin = *w.Origin
		}
		if w.Sim != nil {
			r.Fingerprint = *w.Sim
			r.HasFingerprint = true
		}
		return r, true, nil
	default:
		var ts float64
		if err := json.Unmarshal(trimmed, &ts); err != nil {
			return Record{}, false, err
		}
		return Record{Timestamp: time.UnixMilli(int64(ts))}, true, nil
	}
}
