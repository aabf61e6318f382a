package http

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/core"
)

func TestParseRangeQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     url.Values
		wantStart *core.Date
		wantEnd   *core.Date
		wantErr   string
	}{
		{
			name:  "no parameters",
			query: url.Values{},
		},
		{
			name:      "both ends",
			query:     url.Values{"start": {"2011-01-01"}, "end": {"2011-12-31"}},
			wantStart: datePtr(2011, 1, 1),
			wantEnd:   datePtr(2011, 12, 31),
		},
		{
			name:      "only start, surrounding spaces",
			query:     url.Values{"start": {" 2012-06-01 "}},
			wantStart: datePtr(2012, 6, 1),
		},
		{
			name:    "malformed start",
			query:   url.Values{"start": {"01/02/2011"}},
			wantErr: "start must be a date",
		},
		{
			name:    "impossible end",
			query:   url.Values{"end": {"2011-02-30"}},
			wantErr: "end must be a date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ParseRangeQuery(tt.query)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func datePtr(y int, m time.Month, d int) *core.Date {
	v := core.NewDate(y, m, d)
	return &v
}
