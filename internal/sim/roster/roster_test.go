package roster

import (
	"math/rand"
	"testing"
)

func TestNewStudent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 1; i <= 50; i++ {
		name, stats := NewStudent(rng, i)
		if name == "" {
			t.Fatalf("empty student name")
		}
		if stats.GPA < 2.8 || stats.GPA > 4.0 {
			t.Fatalf("gpa out of range: %v", stats.GPA)
		}
		if len(stats.Skills) < 2 || len(stats.Skills) > 5 {
			t.Fatalf("skills = %d, want 2..5", len(stats.Skills))
		}
		seen := map[string]bool{}
		for _, s := range stats.Skills {
			if seen[s] {
				t.Fatalf("duplicate skill %q", s)
			}
			seen[s] = true
		}
		if stats.ExperienceYears < 0 || stats.ExperienceYears > 5 {
			t.Fatalf("experience = %d", stats.ExperienceYears)
		}
		if stats.Energy < 40 || stats.Energy > 100 {
			t.Fatalf("energy = %d", stats.Energy)
		}
		if stats.Company != "" || len(stats.Requirements) != 0 {
			t.Fatalf("student got recruiter attributes: %+v", stats)
		}
	}
}

func TestNewRecruiter(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 1; i <= 50; i++ {
		name, stats := NewRecruiter(rng, i)
		if name == "" || stats.Company == "" {
			t.Fatalf("incomplete recruiter: %q %+v", name, stats)
		}
		if len(stats.Requirements) < 1 || len(stats.Requirements) > 3 {
			t.Fatalf("requirements = %d, want 1..3", len(stats.Requirements))
		}
		if stats.ExperienceRequired < 0 || stats.ExperienceRequired > 4 {
			t.Fatalf("experience required = %d", stats.ExperienceRequired)
		}
		if stats.GPA != 0 || len(stats.Skills) != 0 {
			t.Fatalf("recruiter got student attributes: %+v", stats)
		}
	}
}
