package hermes

import "strings"

const (
	SubjectUniversityCreatedAll = "allocator.university.*.created"
	SubjectUniversityUpdatedAll = "allocator.university.*.updated"
	SubjectWeightsUpdated       = "allocator.weights.updated"

	StreamName     = "ALLOCATOR_EVENTS"
	StreamSubjects = "allocator.>"
	StreamMaxAge   = "720h" // 30 days
)

func SubjectUniversityCreated(id string) string { return "allocator.university." + id + ".created" }
func SubjectUniversityUpdated(id string) string { return "allocator.university." + id + ".updated" }
func SubjectResultComputed(id string) string    { return "allocator.result." + id + ".computed" }

// UniversityIDFromSubject extracts the id token from a university lifecycle subject.
func UniversityIDFromSubject(subject string) (string, bool) {
	parts := strings.Split(subject, ".")
	if len(parts) != 4 || parts[0] != "allocator" || parts[1] != "university" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}
