package hermes

import (
	"testing"
)

func TestUniversitySubjects(t *testing.T) {
	id := "7b6c1c5e-0000-4000-8000-000000000001"
	if got := SubjectUniversityCreated(id); got != "allocator.university."+id+".created" {
		t.Errorf("unexpected subject %s", got)
	}
	if got := SubjectResultComputed(id); got != "allocator.result."+id+".computed" {
		t.Errorf("unexpected subject %s", got)
	}
}

func TestUniversityIDFromSubject(t *testing.T) {
	tests := []struct {
		subject string
		want    string
		ok      bool
	}{
		{"allocator.university.abc.created", "abc", true},
		{"allocator.university.abc.updated", "abc", true},
		{"allocator.weights.updated", "", false},
		{"allocator.result.abc.computed", "", false},
		{"allocator.university..updated", "", false},
		{"swarm.task.abc.created", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			got, ok := UniversityIDFromSubject(tt.subject)
			if got != tt.want || ok != tt.ok {
				t.Errorf("UniversityIDFromSubject(%q) = %q, %v; want %q, %v", tt.subject, got, ok, tt.want, tt.ok)
			}
		})
	}
}
