package query

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

func TestParseDefaults(t *testing.T) {
	q, err := Parse(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, SortByCreatedAt, q.SortBy)
	assert.Equal(t, SortDesc, q.SortDir)
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.Empty(t, q.Text)
	assert.Empty(t, q.Category)
	assert.Empty(t, q.Severity)
	assert.Nil(t, q.MinScore)
	assert.Zero(t, q.Days)
}

func TestParseValidInput(t *testing.T) {
	raw := url.Values{}
	raw.Set("q", "latency")
	raw.Set("category", "Ops")
	raw.Set("severity", "High")
	raw.Set("minScore", "42.5")
	raw.Set("days", "7")
	raw.Set("sortBy", "score")
	raw.Set("sortDir", "asc")
	raw.Set("page", "3")
	raw.Set("pageSize", "500")

	q, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "latency", q.Text)
	assert.Equal(t, domain.CategoryOps, q.Category)
	assert.Equal(t, domain.SeverityHigh, q.Severity)
	require.NotNil(t, q.MinScore)
	assert.Equal(t, 42.5, *q.MinScore)
	assert.Equal(t, 7, q.Days)
	assert.Equal(t, SortByScore, q.SortBy)
	assert.Equal(t, SortAsc, q.SortDir)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 500, q.PageSize)
}

func TestParseUnknownKeysIgnored(t *testing.T) {
	raw := url.Values{}
	raw.Set("wat", "anything")
	raw.Set("category", "Fraud")

	q, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryFraud, q.Category)
}

func TestParseEmptyValuesAreAbsent(t *testing.T) {
	raw := url.Values{}
	raw.Set("category", "")
	raw.Set("minScore", "")
	raw.Set("days", "")

	q, err := Parse(raw)
	require.NoError(t, err)
	assert.Empty(t, q.Category)
	assert.Nil(t, q.MinScore)
	assert.Zero(t, q.Days)
}

func TestParseAggregatesAllFailures(t *testing.T) {
	raw := url.Values{}
	raw.Set("category", "Gardening")
	raw.Set("severity", "Extreme")
	raw.Set("minScore", "banana")
	raw.Set("days", "14")
	raw.Set("sortBy", "impact")
	raw.Set("sortDir", "sideways")
	raw.Set("page", "0")
	raw.Set("pageSize", "-5")

	_, err := Parse(raw)
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, len(verr.Fields))
	for i, fe := range verr.Fields {
		fields[i] = fe.Field
	}
	assert.ElementsMatch(t, []string{"category", "severity", "minScore", "days", "sortBy", "sortDir", "page", "pageSize"}, fields)
}

func TestParseBounds(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		ok    bool
	}{
		{"minScore at lower bound", "minScore", "0", true},
		{"minScore at upper bound", "minScore", "100", true},
		{"minScore below range", "minScore", "-1", false},
		{"minScore above range", "minScore", "100.5", false},
		{"minScore infinity", "minScore", "Inf", false},
		{"days 30", "days", "30", true},
		{"days 31", "days", "31", false},
		{"pageSize at maximum", "pageSize", "500", true},
		{"pageSize over maximum", "pageSize", "501", false},
		{"page huge but positive", "page", "99999", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := url.Values{}
			raw.Set(tc.key, tc.value)
			_, err := Parse(raw)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseNeverReturnsPartialQuery(t *testing.T) {
	raw := url.Values{}
	raw.Set("category", "Fraud")
	raw.Set("days", "14")

	q, err := Parse(raw)
	require.Error(t, err)
	assert.Equal(t, Query{}, q)
}
