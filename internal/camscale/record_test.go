package camscale

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_MarshalJSONUsesColumns(t *testing.T) {
	records, err := NewParser(BravosV1, nil).Parse("PVT-1.pdf", calibrationReport("2023-10-23 06:23:15"))
	require.NoError(t, err)
	rec := records[1]

	decode := func(r Record) map[string]any {
		data, err := json.Marshal(r)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	m := decode(rec)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	want := append([]string(nil), Columns...)
	sort.Strings(keys)
	sort.Strings(want)
	assert.Equal(t, want, keys)
	assert.Equal(t, "D-778", m["DummySN"])
	assert.Equal(t, "PostCalibration", m["MeasureType"])
	assert.Nil(t, m["currentCalDateTime"])
	assert.Nil(t, m["days_from_cal"])

	rec.Attribution = &Attribution{CurrentCalDateTime: rec.Datetime, CalTime: rec.Time}
	m = decode(rec)
	assert.Equal(t, "2023-10-23 06:23:15", m["currentCalDateTime"])
	assert.Equal(t, 0.0, m["days_from_cal"])

	// Pointers and slices share the encoding
	data, err := json.Marshal([]*Record{&rec})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"DummySN":"D-778"`)
}
