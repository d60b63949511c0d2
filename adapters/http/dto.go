package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-builder/internal/domain/career"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/domain/profile"
	"github.com/khoahotran/portfolio-builder/internal/domain/project"
	"github.com/khoahotran/portfolio-builder/internal/domain/skill"
)

// Public portfolio DTOs. Account fields such as email are never exposed.
type PortfolioDTO struct {
	OwnerID      uuid.UUID            `json:"owner_id"`
	Name         *string              `json:"name"`
	Bio          *string              `json:"bio"`
	ProfileImage *string              `json:"profile_image"`
	Profile      *ProfileDTO          `json:"profile"`
	Skills       []SkillDTO           `json:"skills"`
	Projects     []ProjectDTO         `json:"projects"`
	Experiences  []career.Experience  `json:"experiences"`
	Educations   []career.Education   `json:"educations"`
	Achievements []career.Achievement `json:"achievements"`
	Testimonials []TestimonialDTO     `json:"testimonials"`
}

type ProfileDTO struct {
	FullName  string             `json:"full_name"`
	Title     *string            `json:"title"`
	Bio       *string            `json:"bio"`
	Location  *string            `json:"location"`
	Pronouns  *string            `json:"pronouns"`
	FunFact   *string            `json:"fun_fact"`
	Motto     *string            `json:"motto"`
	Picture   *string            `json:"picture"`
	Socials   *profile.Socials   `json:"socials"`
	Languages []profile.Language `json:"languages"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type SkillDTO struct {
	Name     string         `json:"name"`
	Category skill.Category `json:"category"`
}

type ProjectDTO struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Category    project.Category `json:"category"`
	Description *string          `json:"description"`
	Link        *string          `json:"link"`
	Status      project.Status   `json:"status"`
	Images      []project.Image  `json:"images"`
	Tools       []SkillDTO       `json:"tools"`
}

type TestimonialDTO struct {
	FromName     string  `json:"from_name"`
	FromRole     *string `json:"from_role"`
	Relationship *string `json:"relationship"`
	Message      string  `json:"message"`
	Rating       *int    `json:"rating"`
}

func toSkillDTOs(skills []skill.Skill) []SkillDTO {
	out := make([]SkillDTO, len(skills))
	for i, s := range skills {
		out[i] = SkillDTO{Name: s.Name, Category: s.Category}
	}
	return out
}

func ToPortfolioDTO(p *portfolio.Portfolio) PortfolioDTO {
	dto := PortfolioDTO{
		OwnerID:      p.User.ID,
		Name:         p.User.Name,
		Bio:          p.User.Bio,
		ProfileImage: p.User.ProfileImage,
		Skills:       toSkillDTOs(p.Skills),
		Projects:     make([]ProjectDTO, len(p.Projects)),
		Experiences:  p.Experiences,
		Educations:   p.Educations,
		Achievements: p.Achievements,
		Testimonials: make([]TestimonialDTO, len(p.Testimonials)),
	}

	if p.Profile != nil {
		dto.Profile = &ProfileDTO{
			FullName:  p.Profile.FullName,
			Title:     p.Profile.Title,
			Bio:       p.Profile.Bio,
			Location:  p.Profile.Location,
			Pronouns:  p.Profile.Pronouns,
			FunFact:   p.Profile.FunFact,
			Motto:     p.Profile.Motto,
			Picture:   p.Profile.Picture,
			Socials:   p.Profile.Socials,
			Languages: p.Profile.Languages,
			UpdatedAt: p.Profile.UpdatedAt,
		}
	}

	for i, pr := range p.Projects {
		dto.Projects[i] = ProjectDTO{
			ID:          pr.ID,
			Title:       pr.Title,
			Category:    pr.Category,
			Description: pr.Description,
			Link:        pr.Link,
			Status:      pr.Status,
			Images:      pr.Images,
			Tools:       toSkillDTOs(pr.Tools),
		}
	}

	for i, t := range p.Testimonials {
		dto.Testimonials[i] = TestimonialDTO{
			FromName:     t.FromName,
			FromRole:     t.FromRole,
			Relationship: t.Relationship,
			Message:      t.Message,
			Rating:       t.Rating,
		}
	}
	return dto
}
