package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canpulse/internal/config"
	"canpulse/internal/shared/testutil"
)

func TestEngine_FetchAndExtract(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	var requested string
	fetcher := FetcherFunc(func(ctx context.Context, url string) (string, error) {
		requested = url
		return testutil.CalendarHTML(
			testutil.Fixture{ID: "1", HomeTeam: "Maroc", AwayTeam: "Comores", HomeScore: "2", AwayScore: "0"},
			testutil.Fixture{ID: "2", HomeTeam: "Mali", AwayTeam: "Zambie", HomeScore: "1", AwayScore: "1"},
		), nil
	})

	matches, err := NewEngine(fetcher, nil, logger).FetchAndExtract(context.Background(), "https://example.test/calendar")
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/calendar", requested)
	require.Len(t, matches, 2)
	assert.False(t, matches[0].IsDraw)
	assert.True(t, matches[1].IsDraw)
	assert.True(t, logs.ContainsMessage("Fixtures extracted"))
}

func TestEngine_SourceUnavailable(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	cause := errors.New("net::ERR_NAME_NOT_RESOLVED")
	fetcher := FetcherFunc(func(context.Context, string) (string, error) {
		return "", cause
	})

	_, err := NewEngine(fetcher, nil, logger).FetchAndExtract(context.Background(), "https://example.test")

	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, cause)
	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "https://example.test", srcErr.URL)
}

func TestEngine_TimeoutIsSourceUnavailable(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	fetcher := FetcherFunc(func(ctx context.Context, url string) (string, error) {
		<-ctx.Done()
		return "", &SourceError{URL: url, Err: ctx.Err()}
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEngine(fetcher, nil, logger).FetchAndExtract(ctx, "https://example.test")

	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_ExtractionEmpty(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	fetcher := FetcherFunc(func(context.Context, string) (string, error) {
		return "<html><body>blocked</body></html>", nil
	})

	matches, err := NewEngine(fetcher, nil, logger).FetchAndExtract(context.Background(), "https://example.test")

	assert.ErrorIs(t, err, ErrExtractionEmpty)
	assert.Nil(t, matches)
	assert.True(t, logs.ContainsMessage("No fixtures extracted"))
}

func TestNewChromeFetcher_Defaults(t *testing.T) {
	f := NewChromeFetcher(config.ScraperConfig{}, nil)

	assert.NotEmpty(t, f.cfg.UserAgent)
	assert.Equal(t, ".Opta-TeamName", f.cfg.MarkerSelector)
	assert.Positive(t, f.cfg.NavigationTimeout)
	assert.Positive(t, f.cfg.SelectorTimeout)
}
