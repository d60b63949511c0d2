package ingest

// GeneratePortfolioInput is the materializer contract. Blank strings are treated as absent.
type GeneratePortfolioInput struct {
	User PortfolioUserInput `json:"user"`
}

type PortfolioUserInput struct {
	Name         string             `json:"name,omitempty"`
	Email        string             `json:"email,omitempty"`
	Bio          string             `json:"bio,omitempty"`
	Image        string             `json:"image,omitempty"`
	ProfileImage string             `json:"profileImage,omitempty"`
	Profile      ProfileInput       `json:"profile"`
	Languages    []LanguageInput    `json:"languages,omitempty"`
	Skills       []SkillInput       `json:"skills,omitempty"`
	Projects     []ProjectInput     `json:"projects,omitempty"`
	Experiences  []ExperienceInput  `json:"experiences,omitempty"`
	Educations   []EducationInput   `json:"educations,omitempty"`
	Achievements []AchievementInput `json:"achievements,omitempty"`
	Testimonials []TestimonialInput `json:"testimonials,omitempty"`
}

type ProfileInput struct {
	FullName string `json:"fullName"`
	Title    string `json:"title,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
	Pronouns string `json:"pronouns,omitempty"`
	FunFact  string `json:"funFact,omitempty"`
	Motto    string `json:"motto,omitempty"`
	Picture  string `json:"picture,omitempty"`
	Phone    string `json:"phone,omitempty"`
	// Socials is an object, an array, a JSON-looking string or a plain string.
	Socials any `json:"socials,omitempty"`
}

type LanguageInput struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type SkillInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type ImageInput struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type ProjectInput struct {
	Title        string       `json:"title"`
	Category     string       `json:"category"`
	Description  string       `json:"description,omitempty"`
	Link         string       `json:"link,omitempty"`
	Status       string       `json:"status"`
	Images       []ImageInput `json:"images,omitempty"`
	ProjectTools []SkillInput `json:"projectTools,omitempty"`
}

type ExperienceInput struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

type EducationInput struct {
	Type        string `json:"type"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

type AchievementInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
	Link        string `json:"link,omitempty"`
}

type TestimonialInput struct {
	FromName     string   `json:"fromName"`
	FromRole     string   `json:"fromRole,omitempty"`
	Relationship string   `json:"relationship,omitempty"`
	Message      string   `json:"message"`
	Rating       *float64 `json:"rating,omitempty"`
}

type Summary struct {
	User              string `json:"user"`
	Email             string `json:"email"`
	LanguagesCount    int    `json:"languagesCount"`
	SkillsCount       int    `json:"skillsCount"`
	ProjectsCount     int    `json:"projectsCount"`
	ExperiencesCount  int    `json:"experiencesCount"`
	EducationsCount   int    `json:"educationsCount"`
	AchievementsCount int    `json:"achievementsCount"`
	TestimonialsCount int    `json:"testimonialsCount"`
}

type GeneratePortfolioOutput struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Summary Summary `json:"summary"`
}
