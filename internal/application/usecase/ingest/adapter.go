package ingest

import (
	"strings"

	"github.com/khoahotran/portfolio-builder/internal/domain/skill"
)

// ToPortfolioInput maps generated content onto the materializer contract.
// Project technologies borrow the category of a same-named generated skill and fall back to OTHER.
func ToPortfolioInput(c *GeneratedContent) GeneratePortfolioInput {
	if c == nil {
		return GeneratePortfolioInput{}
	}
	u := c.User

	categoryOf := make(map[string]string, len(u.Skills))
	skills := make([]SkillInput, 0, len(u.Skills))
	for _, s := range u.Skills {
		key := strings.ToLower(strings.TrimSpace(s.Name))
		if _, ok := categoryOf[key]; !ok {
			categoryOf[key] = s.Type
		}
		skills = append(skills, SkillInput{Name: s.Name, Category: s.Type})
	}

	fullName := u.Profile.FullName
	if strings.TrimSpace(fullName) == "" {
		fullName = u.Name
	}

	in := PortfolioUserInput{
		Name:  u.Name,
		Email: u.Email,
		Bio:   u.Bio,
		Image: u.Image,
		Profile: ProfileInput{
			FullName: fullName,
			Title:    u.Profile.Title,
			Bio:      u.Profile.Bio,
			Location: u.Profile.Location,
			Pronouns: u.Profile.Pronouns,
			FunFact:  u.Profile.FunFact,
			Motto:    u.Profile.Motto,
			Phone:    u.Profile.Phone,
		},
		Skills: skills,
	}
	if !u.Profile.Socials.isEmpty() {
		in.Profile.Socials = u.Profile.Socials
	}

	for _, l := range u.Languages {
		in.Languages = append(in.Languages, LanguageInput{Name: l.Name, Level: l.Level})
	}

	for _, p := range u.Projects {
		tools := make([]SkillInput, 0, len(p.Technologies))
		for _, tech := range p.Technologies {
			category, ok := categoryOf[strings.ToLower(strings.TrimSpace(tech))]
			if !ok {
				category = string(skill.CategoryOther)
			}
			tools = append(tools, SkillInput{Name: tech, Category: category})
		}
		in.Projects = append(in.Projects, ProjectInput{
			Title:        p.Title,
			Category:     p.Category,
			Description:  p.Description,
			Link:         p.Link,
			Status:       p.Status,
			ProjectTools: tools,
		})
	}

	for _, e := range u.Experiences {
		in.Experiences = append(in.Experiences, ExperienceInput{
			Role:        e.JobTitle,
			Company:     e.Company,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
		})
	}

	for _, e := range u.Educations {
		in.Educations = append(in.Educations, EducationInput{
			Type:        e.Type,
			Degree:      e.Degree,
			Institution: e.Institution,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
		})
	}

	for _, a := range u.Achievements {
		in.Achievements = append(in.Achievements, AchievementInput{
			Title:       a.Title,
			Description: a.Description,
			Date:        a.Date,
			Link:        a.Link,
		})
	}

	for _, t := range u.Testimonials {
		in.Testimonials = append(in.Testimonials, TestimonialInput{
			FromName:     t.FromName,
			FromRole:     t.FromRole,
			Relationship: t.Relationship,
			Message:      t.Message,
			Rating:       t.Rating,
		})
	}

	return GeneratePortfolioInput{User: in}
}
