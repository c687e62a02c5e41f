package scheduler

import "fmt"

// Validate audits the engine's registries for broken invariants:
// duplicate (course, activity) slot pairs, chosen slots overlapping each
// other, and slots whose course left the catalog (reported, not failed —
// slot references are weak by contract).
// Returns false and a report for inconsistent state.
func Validate(m *CourseManager) (bool, string) {
	var message string
	var valid bool = true
	var hasDuplicate bool = false
	var hasOverlap bool = false
	staleCount := 0

	m.mu.RLock()
	defer m.mu.RUnlock()

	for email, t := range m.timetables {
		seen := make(map[string]bool)
		for _, s := range t.Slots() {
			key := fmt.Sprintf("%s#%d", s.CourseCode, s.ActivityID)
			if seen[key] {
				valid = false
				hasDuplicate = true
				message += fmt.Sprintf("- Duplicate slot %s in timetable of %s\n", key, email)
			}
			seen[key] = true
			if _, ok := m.courses[s.CourseCode]; !ok {
				staleCount++
			}
		}
		chosen := t.ChosenSlots()
		for i, a := range chosen {
			for _, b := range chosen[i+1:] {
				if a.Day == b.Day && a.Start < b.End && a.End > b.Start {
					valid = false
					hasOverlap = true
					message += fmt.Sprintf("- Chosen slots %s#%d and %s#%d overlap for %s\n",
						a.CourseCode, a.ActivityID, b.CourseCode, b.ActivityID, email)
				}
			}
		}
	}

	if staleCount > 0 {
		message += fmt.Sprintf("- %d slots reference withdrawn courses\n", staleCount)
	}

	if hasOverlap {
		message = "[FAIL]: Chosen slot overlap check.\n" + message
	} else {
		message = "[  OK]: Chosen slot overlap check.\n" + message
	}
	if hasDuplicate {
		message = "[FAIL]: Duplicate slot check.\n" + message
	} else {
		message = "[  OK]: Duplicate slot check.\n" + message
	}

	return valid, message
}
