// Package roster generates plausible attendee names and stat bags at
// agent-creation time. The simulation core never calls this; the host
// uses it to seed the floor and may overwrite stats wholesale (e.g.
// from a parsed resume).
package roster

import (
	"fmt"
	"math/rand"

	"careerfair.ai/internal/sim/world"
)

var firstNames = []string{
	"Ava", "Ben", "Chloe", "Dev", "Elena", "Felix", "Grace", "Hassan",
	"Iris", "Jun", "Kira", "Leo", "Maya", "Noah", "Priya", "Quinn",
	"Rosa", "Sam", "Tara", "Wei",
}

var skillPool = []string{
	"Python", "Go", "SQL", "Java", "C++", "JavaScript", "React",
	"Kubernetes", "Terraform", "Rust", "Machine Learning", "Statistics",
}

var companyPool = []string{
	"Google", "Meta", "Amazon", "Microsoft", "Stripe", "Figma",
	"Jane Street", "Citadel", "Two Sigma", "Notion", "Ramp",
	"Initech", "Globex",
}

func NewStudent(rng *rand.Rand, n int) (string, world.Stats) {
	name := fmt.Sprintf("%s S%d", firstNames[rng.Intn(len(firstNames))], n)
	years := rng.Intn(6)
	var companies []string
	for i := 0; i < years && i < 3; i++ {
		if rng.Float64() < 0.5 {
			companies = append(companies, companyPool[rng.Intn(len(companyPool))])
		}
	}
	return name, world.Stats{
		GPA:             2.8 + rng.Float64()*1.2,
		Skills:          pickSkills(rng, 2+rng.Intn(4)),
		ExperienceYears: years,
		Companies:       companies,
		Networking:      rng.Intn(8),
		Energy:          40 + rng.Intn(61),
	}
}

func NewRecruiter(rng *rand.Rand, n int) (string, world.Stats) {
	company := companyPool[rng.Intn(len(companyPool))]
	name := fmt.Sprintf("%s R%d", firstNames[rng.Intn(len(firstNames))], n)
	return name, world.Stats{
		Company:            company,
		Requirements:       pickSkills(rng, 1+rng.Intn(3)),
		ExperienceRequired: rng.Intn(5),
	}
}

func pickSkills(rng *rand.Rand, n int) []string {
	perm := rng.Perm(len(skillPool))
	if n > len(perm) {
		n = len(perm)
	}
	out := make([]string, 0, n)
	for _, i := range perm[:n] {
		out = append(out, skillPool[i])
	}
	return out
}
