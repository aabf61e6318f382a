package export

import (
	"fmt"
	"io"

	"bikeshare/internal/aggregate"
)

// WriteCSV writes one derived table with a header row.
func WriteCSV(w io.Writer, t aggregate.Tables, name string) error {
	df, err := Frame(t, name)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("write %s csv: %w", name, err)
	}
	return nil
}
