package google

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"bikeshare/internal/core"
	"bikeshare/internal/dataset"
)

// parseValues turns a Values.Get response into a frame. The API drops
// trailing empty cells and rows, which FrameFromRecords pads back.
func parseValues(sheet string, values [][]interface{}) (dataframe.DataFrame, error) {
	records := make([][]string, 0, len(values))
	for _, row := range values {
		records = append(records, toStrings(row))
	}
	df, err := dataset.FrameFromRecords(records)
	if err != nil {
		return dataframe.DataFrame{}, &core.DataFormatError{Source: sheet, Err: err}
	}
	return df, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
