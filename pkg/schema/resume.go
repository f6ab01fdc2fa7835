package schema

import "slices"

// Resume is the résumé document. It is always replaced as a whole.
type Resume struct {
	ID           string       `json:"id"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Projects     []Project    `json:"projects"`
	Skills       Skills       `json:"skills"`
}

// PersonalInfo is the résumé header.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Experience is one work history entry.
type Experience struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Duration    string   `json:"duration"`
	Description []string `json:"description"`
}

// Education is one education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Duration    string `json:"duration"`
	GPA         string `json:"gpa,omitempty"`
}

// Project is one portfolio entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
}

// Skills lists technical and soft skills.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// Clone returns a deep copy of r.
func (r *Resume) Clone() *Resume {
	if r == nil {
		return nil
	}

	out := *r
	out.Experience = slices.Clone(r.Experience)
	for i := range out.Experience {
		out.Experience[i].Description = slices.Clone(out.Experience[i].Description)
	}
	out.Education = slices.Clone(r.Education)
	out.Projects = slices.Clone(r.Projects)
	for i := range out.Projects {
		out.Projects[i].Technologies = slices.Clone(out.Projects[i].Technologies)
	}
	out.Skills.Technical = slices.Clone(r.Skills.Technical)
	out.Skills.Soft = slices.Clone(r.Skills.Soft)
	return &out
}
