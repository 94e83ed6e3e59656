package pipeline_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/farm-location-etl/internal/domain"
	"github.com/couchcryptid/farm-location-etl/internal/pipeline"
)

func TestProfileTransformer_WithMockFixtures(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.June, 1, 6, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	raws := readFixture[[]domain.RawProfile](t, "raw_profiles.json")
	expected := readFixture[[]domain.Profile](t, "normalized_profiles.json")
	require.Len(t, raws, 14)
	require.Len(t, expected, 13)

	want := make(map[string]domain.Profile, len(expected))
	for _, p := range expected {
		want[p.ID] = p
	}

	transformer := pipeline.NewTransformer("haryana", "sonipat", slog.Default())
	sources := map[string]int{}
	var rejected []string

	for _, rp := range raws {
		payload, err := json.Marshal(rp)
		require.NoError(t, err)

		got, err := transformer.Transform(context.Background(), domain.RawEvent{Key: []byte(rp.ID), Value: payload})
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrUnknownCode)
			rejected = append(rejected, rp.ID)
			continue
		}

		exp, ok := want[rp.ID]
		require.True(t, ok, "unexpected normalized profile %s", rp.ID)
		if diff := cmp.Diff(exp, got); diff != "" {
			t.Errorf("profile %s mismatch (-want +got):\n%s", rp.ID, diff)
		}
		sources[got.LocationSource]++
	}

	assert.Equal(t, []string{"farm-012"}, rejected)
	assert.Equal(t, map[string]int{
		domain.SourceComposed: 4,
		domain.SourceParsed:   4,
		domain.SourceResolved: 3,
		domain.SourceNone:     2,
	}, sources)
}

func TestMockFixtures_ComposeParseAgree(t *testing.T) {
	for _, p := range readFixture[[]domain.Profile](t, "normalized_profiles.json") {
		if p.LocationSource == domain.SourceNone {
			continue
		}
		composed, err := p.Address.Compose()
		require.NoError(t, err, p.ID)
		assert.Equal(t, p.Location, composed, p.ID)
	}
}

func readFixture[T any](t *testing.T, name string) T {
	t.Helper()

	path := filepath.Join("..", "..", "data", "mock", name)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var v T
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}
