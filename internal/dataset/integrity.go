package dataset

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"bikeshare/internal/core"
)

// CheckIntegrity collects every daily row whose count_cr differs from
// registered + casual. The rows are still loaded; callers only log this.
func CheckIntegrity(daily []core.DailyRecord) error {
	var result *multierror.Error
	for _, r := range daily {
		if !r.Consistent() {
			result = multierror.Append(result, fmt.Errorf("%s: count_cr %d != registered %d + casual %d",
				r.Date, r.Count, r.Registered, r.Casual))
		}
	}
	return result.ErrorOrNil()
}
