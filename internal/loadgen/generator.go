package loadgen

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// generateJobs spreads n unique participants round-robin over names.
// Names are sorted so a run is reproducible for a given directory.
func generateJobs(runID string, names []string, n int, domain string) []Job {
	if len(names) == 0 || n <= 0 {
		return nil
	}
	if domain == "" {
		domain = DefaultEmailDomain
	}

	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = Job{
			Activity: sorted[i%len(sorted)],
			Email:    fmt.Sprintf("%s-%s@%s", shortID(runID), uuid.NewString(), domain),
		}
	}
	return jobs
}

// newRunID returns an identifier that tags every email of one run.
func newRunID() string {
	return uuid.NewString()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
