package world

import "math/rand"

// PersonalityType buckets a student for the recruiter-preference model.
type PersonalityType string

const (
	PersonalitySnarky       PersonalityType = "SNARKY"
	PersonalityProfessional PersonalityType = "PROFESSIONAL"
	PersonalityGenuine      PersonalityType = "GENUINE"
	PersonalityCasual       PersonalityType = "CASUAL"
)

// ScoreResult carries the six component scores (each in [0,100]), the
// weighted composite, and the offer decision.
type ScoreResult struct {
	Composite   float64
	Experience  float64
	Networking  float64
	Skills      float64
	Energy      float64
	Luck        float64
	Personality float64

	PersonalityType  PersonalityType
	OfferProbability float64
	Offer            bool
}

// Component weights for the composite score.
const (
	weightExperience  = 0.20
	weightNetworking  = 0.20
	weightSkills      = 0.25
	weightEnergy      = 0.10
	weightLuck        = 0.15
	weightPersonality = 0.10
)

// Employers whose alumni read as battle-hardened (and a little snarky).
var quantEmployers = map[string]bool{
	"Jane Street":          true,
	"Citadel":              true,
	"Two Sigma":            true,
	"Hudson River Trading": true,
	"Jump Trading":         true,
	"DE Shaw":              true,
}

// Employers that count toward the experience component's name-brand bonus.
var notableEmployers = map[string]bool{
	"Jane Street":          true,
	"Citadel":              true,
	"Two Sigma":            true,
	"Hudson River Trading": true,
	"Jump Trading":         true,
	"DE Shaw":              true,
	"Google":               true,
	"Meta":                 true,
	"Amazon":               true,
	"Microsoft":            true,
	"Apple":                true,
	"Netflix":              true,
	"Stripe":               true,
}

// CalculateInteractionScore converts a student/recruiter pairing plus
// the finished conversation into a composite score and a probabilistic
// job-offer decision. Its only side effects are the two counters on the
// student's stats bag.
func CalculateInteractionScore(rng *rand.Rand, student, recruiter *Agent, conv *Conversation) ScoreResult {
	var r ScoreResult

	r.Experience = experienceScore(student.Stats)
	r.Networking = networkingScore(rng, student.Stats, conv.Duration.Seconds())
	r.Skills = skillsScore(student.Stats, recruiter.Stats)
	r.Energy = clamp100(float64(student.Stats.Energy))
	r.Luck = rng.Float64() * 100

	pt, confidence := ClassifyPersonality(student.Stats)
	r.PersonalityType = pt
	r.Personality = personalityScore(rng, pt, confidence, recruiter.Stats.Company)

	sum := r.Experience*weightExperience +
		r.Networking*weightNetworking +
		r.Skills*weightSkills +
		r.Energy*weightEnergy +
		r.Luck*weightLuck +
		r.Personality*weightPersonality

	mult := 1 + float64(conv.Messages()-1)*0.05
	if mult > 1.2 {
		mult = 1.2
	}
	r.Composite = clamp100(sum * mult)

	r.OfferProbability = offerProbability(r.Composite, student.Stats.ExperienceYears, r.Luck)
	r.Offer = rng.Float64() < r.OfferProbability

	student.Stats.RecruitersSpokenTo++
	if r.Offer {
		student.Stats.JobOffers++
	}
	return r
}

func experienceScore(s Stats) float64 {
	score := 30 + float64(s.ExperienceYears)*11
	if score > 85 {
		score = 85
	}
	for _, c := range s.Companies {
		if notableEmployers[c] {
			score += 5
		}
	}
	return clamp100(score)
}

func networkingScore(rng *rand.Rand, s Stats, seconds float64) float64 {
	score := 20 + float64(s.Networking)*10
	lengthBonus := 2 * seconds
	if lengthBonus > 20 {
		lengthBonus = 20
	}
	score += lengthBonus
	score += rng.Float64() * 10 // recruiter visibility
	return clamp100(score)
}

func skillsScore(s Stats, r Stats) float64 {
	if len(r.Requirements) == 0 {
		return 60
	}
	match := matchingSkills(s.Skills, r.Requirements)
	score := float64(match) / float64(len(r.Requirements)) * 70

	if extra := len(s.Skills) - len(r.Requirements); extra > 0 {
		bonus := float64(extra) * 3
		if bonus > 15 {
			bonus = 15
		}
		score += bonus
	}
	if gpaBonus := (s.GPA - 3.0) * 10; gpaBonus > 0 {
		score += gpaBonus
	}
	return clamp100(score)
}

// ClassifyPersonality is priority-ordered; the first rule that matches
// wins.
func ClassifyPersonality(s Stats) (PersonalityType, float64) {
	for _, c := range s.Companies {
		if quantEmployers[c] {
			return PersonalitySnarky, 0.9
		}
	}
	if s.ExperienceYears >= 3 {
		conf := 0.6 + float64(s.ExperienceYears)*0.05
		if conf > 0.95 {
			conf = 0.95
		}
		return PersonalityProfessional, conf
	}
	if s.ExperienceYears <= 1 && s.GPA >= 3.5 {
		return PersonalityGenuine, 0.8
	}
	return PersonalityCasual, 0.5
}

// Base preference weight a recruiter assigns each personality type,
// before company culture scaling.
var basePersonalityWeights = map[PersonalityType]float64{
	PersonalityProfessional: 0.80,
	PersonalityGenuine:      0.70,
	PersonalityCasual:       0.50,
	PersonalitySnarky:       0.40,
}

// Company-culture multipliers over the base weights.
var cultureWeights = map[string]map[PersonalityType]float64{
	"quant": {
		PersonalitySnarky:       1.50,
		PersonalityProfessional: 1.10,
		PersonalityGenuine:      0.80,
		PersonalityCasual:       0.70,
	},
	"startup": {
		PersonalityCasual:       1.30,
		PersonalityGenuine:      1.20,
		PersonalitySnarky:       1.00,
		PersonalityProfessional: 0.90,
	},
	"corporate": {
		PersonalityProfessional: 1.20,
		PersonalityGenuine:      1.00,
		PersonalityCasual:       0.80,
		PersonalitySnarky:       0.60,
	},
}

var companyCulture = map[string]string{
	"Jane Street":          "quant",
	"Citadel":              "quant",
	"Two Sigma":            "quant",
	"Hudson River Trading": "quant",
	"Jump Trading":         "quant",
	"DE Shaw":              "quant",
	"Stripe":               "startup",
	"Figma":                "startup",
	"Notion":               "startup",
	"Ramp":                 "startup",
}

func cultureFor(company string) map[PersonalityType]float64 {
	if kind, ok := companyCulture[company]; ok {
		return cultureWeights[kind]
	}
	return cultureWeights["corporate"]
}

func personalityScore(rng *rand.Rand, pt PersonalityType, confidence float64, company string) float64 {
	weight := basePersonalityWeights[pt] * cultureFor(company)[pt]
	// Each recruiter's taste wobbles a little: perturb by up to +/-15%.
	weight *= 1 + (rng.Float64()*0.30 - 0.15)

	confMod := 0.8 + 0.4*confidence // [0.8, 1.2]
	score := weight * 100 * confMod
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func offerProbability(composite float64, experienceYears int, luck float64) float64 {
	var base float64
	switch {
	case composite >= 85:
		base = 0.40
	case composite >= 75:
		base = 0.20
	case composite >= 65:
		base = 0.10
	default:
		base = 0.02
	}
	p := base
	p *= 1 + float64(experienceYears)*0.1
	p *= 0.5 + (luck/100)*0.5
	if p > 1 {
		p = 1
	}
	return p
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
