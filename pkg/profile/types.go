package profile

// Profile is the candidate information the CLI sends with every generation.
type Profile struct {
	Name       string     `json:"name" yaml:"name"`
	Email      string     `json:"email,omitempty" yaml:"email,omitempty"`
	Phone      string     `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location   string     `json:"location,omitempty" yaml:"location,omitempty"`
	Experience string     `json:"experience,omitempty" yaml:"experience,omitempty"`
	Positions  []Position `json:"positions,omitempty" yaml:"positions,omitempty"`
	Skills     []string   `json:"skills,omitempty" yaml:"skills,omitempty"`
	Education  string     `json:"education,omitempty" yaml:"education,omitempty"`
}

// Position is a single role in the candidate's work history.
type Position struct {
	Company    string   `json:"company" yaml:"company"`
	Role       string   `json:"role" yaml:"role"`
	Dates      string   `json:"dates,omitempty" yaml:"dates,omitempty"`
	Highlights []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}
