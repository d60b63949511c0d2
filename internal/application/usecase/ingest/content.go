package ingest

// GeneratedContent is the shape the content generator asks the model for. It is versioned
// independently from GeneratePortfolioInput; ToPortfolioInput bridges the two.
type GeneratedContent struct {
	User GeneratedUser `json:"user"`
}

type GeneratedUser struct {
	Name         string                 `json:"name"`
	Email        string                 `json:"email"`
	Bio          string                 `json:"bio"`
	Image        string                 `json:"image"`
	Profile      GeneratedProfile       `json:"profile"`
	Languages    []GeneratedLanguage    `json:"languages"`
	Skills       []GeneratedSkill       `json:"skills"`
	Projects     []GeneratedProject     `json:"projects"`
	Experiences  []GeneratedExperience  `json:"experiences"`
	Educations   []GeneratedEducation   `json:"educations"`
	Testimonials []GeneratedTestimonial `json:"testimonials"`
	Achievements []GeneratedAchievement `json:"achievements"`
}

type GeneratedProfile struct {
	FullName string            `json:"fullName"`
	Title    string            `json:"title"`
	Bio      string            `json:"bio"`
	Location string            `json:"location"`
	Pronouns string            `json:"pronouns"`
	FunFact  string            `json:"funFact"`
	Motto    string            `json:"motto"`
	Phone    string            `json:"phone"`
	Socials  *GeneratedSocials `json:"socials"`
}

type GeneratedSocials struct {
	Github   string `json:"github,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

func (s *GeneratedSocials) isEmpty() bool {
	return s == nil || (s.Github == "" && s.Linkedin == "" && s.Twitter == "" && s.Website == "")
}

type GeneratedLanguage struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type GeneratedSkill struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type GeneratedProject struct {
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Link         string   `json:"link"`
	Status       string   `json:"status"`
	Technologies []string `json:"technologies"`
}

type GeneratedExperience struct {
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type GeneratedEducation struct {
	Type        string `json:"type"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type GeneratedTestimonial struct {
	FromName     string   `json:"fromName"`
	FromRole     string   `json:"fromRole"`
	Relationship string   `json:"relationship"`
	Message      string   `json:"message"`
	Rating       *float64 `json:"rating"`
}

type GeneratedAchievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Link        string `json:"link"`
}
