package loadgen

import "slices"

// verifyRosters counts jobs whose presence in directory differs from want,
// plus emails listed more than once in any roster.
func verifyRosters(directory map[string]ActivityView, jobs []Job, want bool) int {
	mismatches := 0
	for _, job := range jobs {
		a, ok := directory[job.Activity]
		if !ok {
			mismatches++
			continue
		}
		if slices.Contains(a.Participants, job.Email) != want {
			mismatches++
		}
	}

	for _, a := range directory {
		seen := make(map[string]struct{}, len(a.Participants))
		for _, email := range a.Participants {
			if _, dup := seen[email]; dup {
				mismatches++
			}
			seen[email] = struct{}{}
		}
	}
	return mismatches
}
