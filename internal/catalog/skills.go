package catalog

import "strings"

// SkillCategory groups skill chips for tinting.
type SkillCategory int

const (
	SkillOther SkillCategory = iota
	SkillCloud
	SkillDevelopment
	SkillResearch
)

func (c SkillCategory) String() string {
	switch c {
	case SkillCloud:
		return "cloud"
	case SkillDevelopment:
		return "development"
	case SkillResearch:
		return "research"
	default:
		return "other"
	}
}

var (
	cloudSkills = []string{
		"aws", "azure", "gcp", "google cloud", "cloud computing", "terraform",
		"kubernetes", "docker", "devops", "ci/cd", "jenkins", "ansible",
	}
	developmentSkills = []string{
		"java", "python", "javascript", "react", "node.js", "spring", "flask",
		"api", "microservices", "database", "sql", "mongodb",
	}
	researchSkills = []string{
		"research", "publications", "innovation", "optimization", "algorithms",
		"data science", "neural networks", "machine learning",
	}
)

// ClassifySkill matches by case-insensitive substring; cloud wins over development,
// development over research.
func ClassifySkill(skill string) SkillCategory {
	s := strings.ToLower(skill)
	switch {
	case containsAny(s, cloudSkills):
		return SkillCloud
	case containsAny(s, developmentSkills):
		return SkillDevelopment
	case containsAny(s, researchSkills):
		return SkillResearch
	default:
		return SkillOther
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
