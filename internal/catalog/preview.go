package catalog

import (
	"fmt"
	"strings"
)

// PreviewKind tags the variant carried by a Preview.
type PreviewKind int

const (
	PreviewNone PreviewKind = iota
	PreviewProfile
	PreviewEducation
	PreviewCertification
	PreviewExperience
	PreviewProject
	PreviewEvent
)

func (k PreviewKind) String() string {
	switch k {
	case PreviewProfile:
		return "profile"
	case PreviewEducation:
		return "education"
	case PreviewCertification:
		return "certification"
	case PreviewExperience:
		return "experience"
	case PreviewProject:
		return "project"
	case PreviewEvent:
		return "event"
	default:
		return "none"
	}
}

func (k PreviewKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Preview is a tagged union. Exactly the pointer matching Kind is non-nil.
type Preview struct {
	Kind          PreviewKind    `json:"kind" yaml:"kind"`
	Profile       *Profile       `json:"profile,omitempty" yaml:"profile,omitempty"`
	Education     *Education     `json:"education,omitempty" yaml:"education,omitempty"`
	Certification *Certification `json:"certification,omitempty" yaml:"certification,omitempty"`
	Experience    *Experience    `json:"experience,omitempty" yaml:"experience,omitempty"`
	Project       *Project       `json:"project,omitempty" yaml:"project,omitempty"`
	Event         *Event         `json:"event,omitempty" yaml:"event,omitempty"`
}

type PersonalInfo struct {
	FullName        string `json:"fullName" yaml:"fullName"`
	Title           string `json:"title" yaml:"title"`
	Location        string `json:"location" yaml:"location"`
	YearsExperience string `json:"yearsExperience,omitempty" yaml:"yearsExperience,omitempty"`
	Education       string `json:"education,omitempty" yaml:"education,omitempty"`
	CurrentRole     string `json:"currentRole,omitempty" yaml:"currentRole,omitempty"`
}

type Contact struct {
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty" yaml:"github,omitempty"`
}

type Stat struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

type Profile struct {
	Title       string        `json:"title,omitempty" yaml:"title,omitempty"`
	Banner      string        `json:"banner,omitempty" yaml:"banner,omitempty"`
	Info        *PersonalInfo `json:"personalInfo,omitempty" yaml:"personalInfo,omitempty"`
	Summary     string        `json:"summary,omitempty" yaml:"summary,omitempty"`
	Contact     *Contact      `json:"contact,omitempty" yaml:"contact,omitempty"`
	Stats       []Stat        `json:"stats,omitempty" yaml:"stats,omitempty"`
	Interests   []string      `json:"interests,omitempty" yaml:"interests,omitempty"`
	DownloadURL string        `json:"downloadUrl,omitempty" yaml:"downloadUrl,omitempty"`
}

type PublicationRef struct {
	Title      string `json:"title" yaml:"title"`
	Conference string `json:"conference" yaml:"conference"`
	Year       string `json:"year" yaml:"year"`
}

type Education struct {
	Degree       string           `json:"degree" yaml:"degree"`
	Field        string           `json:"field,omitempty" yaml:"field,omitempty"`
	Institution  string           `json:"institution" yaml:"institution"`
	Location     string           `json:"location,omitempty" yaml:"location,omitempty"`
	Duration     string           `json:"duration,omitempty" yaml:"duration,omitempty"`
	Status       string           `json:"status,omitempty" yaml:"status,omitempty"`
	Banner       string           `json:"banner,omitempty" yaml:"banner,omitempty"`
	Overview     string           `json:"overview,omitempty" yaml:"overview,omitempty"`
	Courses      []string         `json:"courses,omitempty" yaml:"courses,omitempty"`
	Achievements []string         `json:"achievements,omitempty" yaml:"achievements,omitempty"`
	Publications []PublicationRef `json:"publications,omitempty" yaml:"publications,omitempty"`
}

type Certification struct {
	Title           string   `json:"title" yaml:"title"`
	Issuer          string   `json:"issuer" yaml:"issuer"`
	IssueDate       string   `json:"issueDate,omitempty" yaml:"issueDate,omitempty"`
	ExpiryDate      string   `json:"expiryDate,omitempty" yaml:"expiryDate,omitempty"`
	CredentialID    string   `json:"credentialId,omitempty" yaml:"credentialId,omitempty"`
	Banner          string   `json:"banner,omitempty" yaml:"banner,omitempty"`
	Description     []string `json:"description,omitempty" yaml:"description,omitempty"`
	Skills          []string `json:"skills,omitempty" yaml:"skills,omitempty"`
	VerificationURL string   `json:"verificationUrl,omitempty" yaml:"verificationUrl,omitempty"`
	Status          string   `json:"status,omitempty" yaml:"status,omitempty"`
}

type Experience struct {
	Title       string   `json:"title" yaml:"title"`
	Company     string   `json:"company" yaml:"company"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty"`
	Duration    string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Banner      string   `json:"banner,omitempty" yaml:"banner,omitempty"`
	Description []string `json:"description,omitempty" yaml:"description,omitempty"`
	Skills      []string `json:"skills,omitempty" yaml:"skills,omitempty"`
}

type Project struct {
	Title        string   `json:"title" yaml:"title"`
	Organization string   `json:"organization" yaml:"organization"`
	Duration     string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	Summary      string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Skills       []string `json:"skills,omitempty" yaml:"skills,omitempty"`
	GitHubURL    string   `json:"githubUrl,omitempty" yaml:"githubUrl,omitempty"`
	Ongoing      bool     `json:"ongoing,omitempty" yaml:"ongoing,omitempty"`
	Status       string   `json:"status,omitempty" yaml:"status,omitempty"`
}

// Event covers both attended events and authored publications.
type Event struct {
	Title       string   `json:"title" yaml:"title"`
	Publication bool     `json:"publication" yaml:"publication"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Conference  string   `json:"conference,omitempty" yaml:"conference,omitempty"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty"`
	Date        string   `json:"date,omitempty" yaml:"date,omitempty"`
	Duration    string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	Status      string   `json:"status,omitempty" yaml:"status,omitempty"`
	Banner      string   `json:"banner,omitempty" yaml:"banner,omitempty"`
	Abstract    string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Highlights  []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Authors     []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Topics      []string `json:"topics,omitempty" yaml:"topics,omitempty"`
}

// rawContent is the untagged record shape found in catalog YAML.
type rawContent struct {
	Title        string        `yaml:"title"`
	Banner       string        `yaml:"banner"`
	PersonalInfo *PersonalInfo `yaml:"personalInfo"`
	Summary      string        `yaml:"summary"`
	Contact      *Contact      `yaml:"contact"`
	Stats        []Stat        `yaml:"stats"`
	Interests    []string      `yaml:"interests"`
	DownloadURL  string        `yaml:"downloadUrl"`

	Degree       string           `yaml:"degree"`
	Field        string           `yaml:"field"`
	Institution  string           `yaml:"institution"`
	Overview     string           `yaml:"overview"`
	Courses      []string         `yaml:"courses"`
	Achievements []string         `yaml:"achievements"`
	Publications []PublicationRef `yaml:"publications"`

	Issuer          string `yaml:"issuer"`
	IssueDate       string `yaml:"issueDate"`
	ExpiryDate      string `yaml:"expiryDate"`
	CredentialID    string `yaml:"credentialId"`
	VerificationURL string `yaml:"verificationUrl"`

	Company string `yaml:"company"`
	Type    string `yaml:"type"`

	Organization string `yaml:"organization"`
	GitHubURL    string `yaml:"githubUrl"`
	Ongoing      bool   `yaml:"ongoing"`

	EventType       string   `yaml:"eventType"`
	PublicationType string   `yaml:"publicationType"`
	Conference      string   `yaml:"conference"`
	Date            string   `yaml:"date"`
	Abstract        string   `yaml:"abstract"`
	Authors         []string `yaml:"authors"`
	Topics          []string `yaml:"topics"`
	Keywords        []string `yaml:"keywords"`

	Location    string   `yaml:"location"`
	Duration    string   `yaml:"duration"`
	Status      string   `yaml:"status"`
	Description []string `yaml:"description"`
	Skills      []string `yaml:"skills"`
}

func (r *rawContent) empty() bool {
	if r == nil {
		return true
	}
	return r.Title == "" && r.Summary == "" && r.PersonalInfo == nil && r.Contact == nil &&
		len(r.Stats) == 0 && len(r.Interests) == 0 && r.DownloadURL == ""
}

// classify picks a preview kind from field presence. Order matters: event records
// carry a location and some project-like fields, education records carry publications.
func classify(r *rawContent) (PreviewKind, bool) {
	switch {
	case r == nil:
		return PreviewNone, false
	case r.PublicationType != "":
		return PreviewEvent, true
	case r.EventType != "":
		return PreviewEvent, false
	case r.Degree != "":
		return PreviewEducation, false
	case r.Issuer != "":
		return PreviewCertification, false
	case r.Company != "":
		return PreviewExperience, false
	case r.Organization != "":
		return PreviewProject, false
	case !r.empty():
		return PreviewProfile, false
	default:
		return PreviewNone, false
	}
}

func parseKind(s string) (PreviewKind, bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "profile":
		return PreviewProfile, false, nil
	case "education":
		return PreviewEducation, false, nil
	case "certification":
		return PreviewCertification, false, nil
	case "experience":
		return PreviewExperience, false, nil
	case "project":
		return PreviewProject, false, nil
	case "event":
		return PreviewEvent, false, nil
	case "publication":
		return PreviewEvent, true, nil
	case "none":
		return PreviewNone, false, nil
	default:
		return PreviewNone, false, fmt.Errorf("unknown preview kind %q", s)
	}
}

func buildPreview(explicit string, r *rawContent) (Preview, error) {
	var (
		kind PreviewKind
		pub  bool
	)
	if strings.TrimSpace(explicit) != "" {
		k, p, err := parseKind(explicit)
		if err != nil {
			return Preview{}, err
		}
		kind, pub = k, p
	} else {
		kind, pub = classify(r)
	}
	if r == nil {
		return Preview{}, nil
	}

	switch kind {
	case PreviewProfile:
		return Preview{Kind: kind, Profile: &Profile{
			Title:       r.Title,
			Banner:      r.Banner,
			Info:        r.PersonalInfo,
			Summary:     r.Summary,
			Contact:     r.Contact,
			Stats:       r.Stats,
			Interests:   r.Interests,
			DownloadURL: r.DownloadURL,
		}}, nil
	case PreviewEducation:
		return Preview{Kind: kind, Education: &Education{
			Degree:       r.Degree,
			Field:        r.Field,
			Institution:  r.Institution,
			Location:     r.Location,
			Duration:     r.Duration,
			Status:       r.Status,
			Banner:       r.Banner,
			Overview:     r.Overview,
			Courses:      r.Courses,
			Achievements: r.Achievements,
			Publications: r.Publications,
		}}, nil
	case PreviewCertification:
		return Preview{Kind: kind, Certification: &Certification{
			Title:           r.Title,
			Issuer:          r.Issuer,
			IssueDate:       r.IssueDate,
			ExpiryDate:      r.ExpiryDate,
			CredentialID:    r.CredentialID,
			Banner:          r.Banner,
			Description:     r.Description,
			Skills:          r.Skills,
			VerificationURL: r.VerificationURL,
			Status:          r.Status,
		}}, nil
	case PreviewExperience:
		return Preview{Kind: kind, Experience: &Experience{
			Title:       r.Title,
			Company:     r.Company,
			Location:    r.Location,
			Duration:    r.Duration,
			Type:        r.Type,
			Banner:      r.Banner,
			Description: r.Description,
			Skills:      r.Skills,
		}}, nil
	case PreviewProject:
		return Preview{Kind: kind, Project: &Project{
			Title:        r.Title,
			Organization: r.Organization,
			Duration:     r.Duration,
			Summary:      r.Summary,
			Skills:       r.Skills,
			GitHubURL:    r.GitHubURL,
			Ongoing:      r.Ongoing,
			Status:       r.Status,
		}}, nil
	case PreviewEvent:
		typ := r.EventType
		if pub || r.PublicationType != "" {
			typ = r.PublicationType
		}
		topics := r.Topics
		if len(topics) == 0 {
			topics = r.Keywords
		}
		return Preview{Kind: kind, Event: &Event{
			Title:       r.Title,
			Publication: pub,
			Type:        typ,
			Conference:  r.Conference,
			Location:    r.Location,
			Date:        r.Date,
			Duration:    r.Duration,
			Status:      r.Status,
			Banner:      r.Banner,
			Abstract:    r.Abstract,
			Highlights:  r.Description,
			Authors:     r.Authors,
			Topics:      topics,
		}}, nil
	default:
		return Preview{}, nil
	}
}

// Skills returns the chip list shown for a preview (interests for profiles).
func (p Preview) Skills() []string {
	switch p.Kind {
	case PreviewProfile:
		if p.Profile != nil {
			return p.Profile.Interests
		}
	case PreviewCertification:
		if p.Certification != nil {
			return p.Certification.Skills
		}
	case PreviewExperience:
		if p.Experience != nil {
			return p.Experience.Skills
		}
	case PreviewProject:
		if p.Project != nil {
			return p.Project.Skills
		}
	case PreviewEvent:
		if p.Event != nil {
			return p.Event.Topics
		}
	}
	return nil
}

// PrimaryLink returns the most relevant outbound link of a preview, or "".
func (p Preview) PrimaryLink() string {
	switch p.Kind {
	case PreviewProfile:
		if p.Profile == nil {
			return ""
		}
		if p.Profile.DownloadURL != "" {
			return p.Profile.DownloadURL
		}
		if c := p.Profile.Contact; c != nil {
			if c.LinkedIn != "" {
				return withScheme(c.LinkedIn)
			}
			if c.Email != "" {
				return "mailto:" + c.Email
			}
		}
	case PreviewCertification:
		if p.Certification != nil {
			return p.Certification.VerificationURL
		}
	case PreviewProject:
		if p.Project != nil {
			return p.Project.GitHubURL
		}
	}
	return ""
}

func withScheme(s string) string {
	if strings.Contains(s, "://") {
		return s
	}
	return "https://" + s
}
