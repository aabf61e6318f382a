package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/core"
	"bikeshare/internal/log"
)

const dayCSV = `instant,dteday,season,yr,mnth,holiday,weekday,workingday,weather_situation,registered,casual,count_cr
2,2011-01-02,Springer,0,Jan,0,0,0,2,670,131,801
1,2011-01-01,Springer,0,Jan,0,6,0,2,654,331,985
`

const hourCSV = `instant,dteday,season,hr,count_cr
1,2011-01-01,1,0,16
2,2011-01-01,1,1,40
3,2011-01-02,1,0,17
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestSourceLoad(t *testing.T) {
	dir := t.TempDir()
	src := New(writeFile(t, dir, "day_fix.csv", dayCSV), writeFile(t, dir, "hour_fix.csv", hourCSV), ',', log.Discard())

	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Daily(), 2)
	assert.Equal(t, core.NewDate(2011, time.January, 1), ds.Daily()[0].Date)
	assert.EqualValues(t, 985, ds.Daily()[0].Count)
	assert.Equal(t, core.SeasonSpring, ds.Daily()[0].Season)
	assert.Len(t, ds.Hourly(), 3)

	b, ok := ds.Bounds()
	require.True(t, ok)
	assert.Equal(t, core.NewDate(2011, time.January, 2), b.End)
}

func TestSourceSemicolonDelimiter(t *testing.T) {
	dir := t.TempDir()
	hour := "dteday;hr;cnt\n2011-01-01;3;9\n"
	df, err := ReadFrame(writeFile(t, dir, "hour.csv", hour), ';')
	require.NoError(t, err)
	assert.Equal(t, []string{"dteday", "hr", "cnt"}, df.Names())
	assert.Equal(t, []string{"2011-01-01"}, df.Col("dteday").Records())
}

func TestSourceMissingFile(t *testing.T) {
	dir := t.TempDir()
	src := New(filepath.Join(dir, "nope.csv"), writeFile(t, dir, "hour.csv", hourCSV), ',', log.Discard())
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSourceBadValue(t *testing.T) {
	dir := t.TempDir()
	bad := "dteday,hr,cnt\n2011-01-01,noon,9\n"
	src := New(writeFile(t, dir, "day.csv", dayCSV), writeFile(t, dir, "hour.csv", bad), ',', log.Discard())
	_, err := src.Load(context.Background())

	var dfe *core.DataFormatError
	require.ErrorAs(t, err, &dfe)
	assert.Equal(t, "hour", dfe.Column)
	assert.Equal(t, "noon", dfe.Value)
}

func TestSourceHeaderOnlyTable(t *testing.T) {
	dir := t.TempDir()
	day := "instant,dteday,season,yr,mnth,holiday,weekday,workingday,weather_situation,registered,casual,count_cr\n"
	src := New(writeFile(t, dir, "day.csv", day), writeFile(t, dir, "hour.csv", hourCSV), ',', log.Discard())

	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds.Daily())
	assert.Len(t, ds.Hourly(), 3)
}

func TestReadFrameHeaderOnly(t *testing.T) {
	df, err := ReadFrame(writeFile(t, t.TempDir(), "hour.csv", "dteday;hr;cnt\n"), ';')
	require.NoError(t, err)
	assert.Equal(t, []string{"dteday", "hr", "cnt"}, df.Names())
	assert.Zero(t, df.Nrow())
}

func TestReadFrameEmptyFile(t *testing.T) {
	_, err := ReadFrame(writeFile(t, t.TempDir(), "hour.csv", ""), ',')
	var dfe *core.DataFormatError
	require.ErrorAs(t, err, &dfe)
	assert.ErrorIs(t, err, core.ErrEmptyTable)
}
