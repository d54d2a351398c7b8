package world

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func TestSkillsScore(t *testing.T) {
	approx := func(got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("skills = %v, want %v", got, want)
		}
	}

	// Full requirement match, no surplus skills, GPA bonus.
	student := Stats{GPA: 3.8, Skills: []string{"Python", "SQL"}, ExperienceYears: 5}
	recruiter := Stats{Requirements: []string{"Python", "SQL"}}
	approx(skillsScore(student, recruiter), 78) // 70 + (3.8-3.0)*10

	// No requirements listed: flat neutral score.
	approx(skillsScore(student, Stats{}), 60)

	// Surplus skills bonus is capped at 15.
	wide := Stats{GPA: 3.0, Skills: []string{"a", "b", "c", "d", "e", "f", "g"}}
	approx(skillsScore(wide, Stats{Requirements: []string{"a"}}), 70+15)

	// Low GPA never subtracts.
	poor := Stats{GPA: 2.0, Skills: []string{"Python"}}
	approx(skillsScore(poor, Stats{Requirements: []string{"Python"}}), 70)

	// No overlap at all.
	approx(skillsScore(Stats{GPA: 3.0, Skills: []string{"Rust"}}, Stats{Requirements: []string{"Python", "SQL"}}), 0)
}

func TestExperienceScore(t *testing.T) {
	approx := func(got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("experience = %v, want %v", got, want)
		}
	}

	approx(experienceScore(Stats{ExperienceYears: 0}), 30)
	approx(experienceScore(Stats{ExperienceYears: 2}), 52)
	// Years alone cap at 85.
	approx(experienceScore(Stats{ExperienceYears: 10}), 85)
	// Name-brand employers add past the cap, up to 100 overall.
	approx(experienceScore(Stats{ExperienceYears: 10, Companies: []string{"Google", "Stripe"}}), 95)
	approx(experienceScore(Stats{ExperienceYears: 10, Companies: []string{"Initech"}}), 85)
}

func TestClassifyPersonality(t *testing.T) {
	check := func(s Stats, wantType PersonalityType, wantConf float64) {
		t.Helper()
		pt, conf := ClassifyPersonality(s)
		if pt != wantType || math.Abs(conf-wantConf) > 1e-9 {
			t.Fatalf("classify(%+v) = %s/%v, want %s/%v", s, pt, conf, wantType, wantConf)
		}
	}

	// Quant alumni win regardless of everything else.
	check(Stats{Companies: []string{"Jane Street"}, ExperienceYears: 5, GPA: 4.0}, PersonalitySnarky, 0.9)
	check(Stats{ExperienceYears: 4}, PersonalityProfessional, 0.8)
	check(Stats{ExperienceYears: 10}, PersonalityProfessional, 0.95) // confidence cap
	check(Stats{ExperienceYears: 0, GPA: 3.6}, PersonalityGenuine, 0.8)
	check(Stats{ExperienceYears: 2, GPA: 3.9}, PersonalityCasual, 0.5)
	check(Stats{}, PersonalityCasual, 0.5)
}

func TestOfferProbability(t *testing.T) {
	approx := func(got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("offer p = %v, want %v", got, want)
		}
	}

	// Band bases with neutral luck and no experience.
	approx(offerProbability(90, 0, 100), 0.40)
	approx(offerProbability(80, 0, 100), 0.20)
	approx(offerProbability(70, 0, 100), 0.10)
	approx(offerProbability(50, 0, 100), 0.02)

	// Zero luck halves the probability.
	approx(offerProbability(90, 0, 0), 0.20)
	// Experience multiplies it back up.
	approx(offerProbability(90, 5, 100), 0.60)
	// And the result stays a probability.
	if p := offerProbability(100, 50, 100); p != 1 {
		t.Fatalf("offer p = %v, want clamp at 1", p)
	}
}

func TestCalculateInteractionScore(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	student := &Agent{ID: 1, Kind: KindStudent, Stats: Stats{
		GPA:             3.8,
		Skills:          []string{"Python", "SQL"},
		ExperienceYears: 5,
		Companies:       []string{"Google"},
		Networking:      5,
		Energy:          80,
	}}
	recruiter := &Agent{ID: 2, Kind: KindRecruiter, Stats: Stats{
		Company:      "Initech",
		Requirements: []string{"Python", "SQL"},
	}}
	conv := &Conversation{
		ID:           "C000001",
		Participants: [2]int{1, 2},
		Type:         TypeStudentRecruiter,
		Duration:     8 * time.Second,
	}
	for i := 0; i < 6; i++ {
		conv.AddMessage()
	}

	res := CalculateInteractionScore(rng, student, recruiter, conv)

	for name, v := range map[string]float64{
		"composite":   res.Composite,
		"experience":  res.Experience,
		"networking":  res.Networking,
		"skills":      res.Skills,
		"energy":      res.Energy,
		"luck":        res.Luck,
		"personality": res.Personality,
	} {
		if v < 0 || v > 100 {
			t.Fatalf("%s = %v out of [0,100]", name, v)
		}
	}

	// Deterministic components.
	if res.Experience != 90 { // 85 cap + Google
		t.Fatalf("experience = %v, want 90", res.Experience)
	}
	if res.Skills != 78 {
		t.Fatalf("skills = %v, want 78", res.Skills)
	}
	if res.Energy != 80 {
		t.Fatalf("energy = %v, want 80", res.Energy)
	}
	if res.PersonalityType != PersonalityProfessional {
		t.Fatalf("personality type = %s, want %s", res.PersonalityType, PersonalityProfessional)
	}
	if res.OfferProbability <= 0 || res.OfferProbability > 1 {
		t.Fatalf("offer probability = %v", res.OfferProbability)
	}

	// Side effects on the student's counters.
	if student.Stats.RecruitersSpokenTo != 1 {
		t.Fatalf("RecruitersSpokenTo = %d, want 1", student.Stats.RecruitersSpokenTo)
	}
	if res.Offer && student.Stats.JobOffers != 1 {
		t.Fatalf("offer made but JobOffers = %d", student.Stats.JobOffers)
	}
	if !res.Offer && student.Stats.JobOffers != 0 {
		t.Fatalf("no offer but JobOffers = %d", student.Stats.JobOffers)
	}
}

func TestCalculateInteractionScore_MessageMultiplierCaps(t *testing.T) {
	// With every component pinned, more messages can only help, and the
	// multiplier saturates at 5 extra messages.
	base := func(messages int) float64 {
		rng := rand.New(rand.NewSource(3))
		student := &Agent{ID: 1, Kind: KindStudent, Stats: Stats{GPA: 3.5, Energy: 50}}
		recruiter := &Agent{ID: 2, Kind: KindRecruiter}
		conv := &Conversation{Participants: [2]int{1, 2}, Type: TypeStudentRecruiter}
		for i := 0; i < messages; i++ {
			conv.AddMessage()
		}
		return CalculateInteractionScore(rng, student, recruiter, conv).Composite
	}

	short, long, longer := base(1), base(5), base(9)
	if !(short < long) {
		t.Fatalf("message bonus missing: %v vs %v", short, long)
	}
	if math.Abs(long/short-1.2) > 1e-9 {
		t.Fatalf("multiplier at 5 messages = %v, want 1.2", long/short)
	}
	if longer != long {
		t.Fatalf("multiplier not capped: %v vs %v", longer, long)
	}
}
