// Package testutil provides common utility functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/mortgage-calc/pkg/datetime"
	"github.com/iwvelando/mortgage-calc/pkg/loans"
)

// FindPeriod finds the schedule period due on date (YYYY-MM-DD).
// Returns a pointer to the period if found, nil otherwise.
func FindPeriod(schedule []loans.Period, date string) *loans.Period {
	for i := range schedule {
		if datetime.Format(schedule[i].Date) == date {
			return &schedule[i]
		}
	}
	return nil
}

// WriteConfig writes contents to a file named name in a fresh temporary
// directory and returns its path.
func WriteConfig(t testing.TB, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
