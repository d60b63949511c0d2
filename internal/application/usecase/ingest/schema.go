package ingest

import (
	"strings"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/domain/career"
	"github.com/khoahotran/portfolio-builder/internal/domain/profile"
	"github.com/khoahotran/portfolio-builder/internal/domain/project"
	"github.com/khoahotran/portfolio-builder/internal/domain/skill"
)

const resumeInstruction = `You are an assistant that converts a résumé into a structured portfolio.
Extract only information present in the résumé. Do not invent employers, dates, projects or testimonials.
Use null for anything the résumé does not state. Dates must be ISO 8601 (YYYY-MM-DD or YYYY-MM).
Use "Present" as endDate for current positions. Every enum field must use one of the listed values.
Respond with JSON only, no markdown and no commentary.`

func str(description string, nullable bool) *service.Schema {
	return &service.Schema{Type: service.TypeString, Description: description, Nullable: nullable}
}

func enum(values []string, description string) *service.Schema {
	return &service.Schema{Type: service.TypeString, Description: description, Enum: values}
}

func object(required []string, props map[string]*service.Schema) *service.Schema {
	return &service.Schema{Type: service.TypeObject, Properties: props, Required: required}
}

func array(items *service.Schema) *service.Schema {
	return &service.Schema{Type: service.TypeArray, Items: items}
}

// ResumeSchema is the fixed output contract for résumé extraction.
func ResumeSchema() *service.Schema {
	socials := object(nil, map[string]*service.Schema{
		"github":   str("GitHub profile URL", true),
		"linkedin": str("LinkedIn profile URL", true),
		"twitter":  str("Twitter/X profile URL", true),
		"website":  str("Personal website URL", true),
	})
	socials.Nullable = true

	rating := &service.Schema{Type: service.TypeNumber, Description: "Rating from 1 to 5", Nullable: true}

	profileSchema := object([]string{"fullName"}, map[string]*service.Schema{
		"fullName": str("Full name of the person", false),
		"title":    str("Professional headline, e.g. Backend Engineer", true),
		"bio":      str("Short professional summary", true),
		"location": str("City and country", true),
		"pronouns": str("Pronouns if stated", true),
		"funFact":  str("A fun fact if stated", true),
		"motto":    str("Personal motto if stated", true),
		"phone":    str("Phone number", true),
		"socials":  socials,
	})

	user := object([]string{"name", "profile"}, map[string]*service.Schema{
		"name":    str("Full name", false),
		"email":   str("Email address", true),
		"bio":     str("One paragraph bio", true),
		"image":   str("Avatar URL if present", true),
		"profile": profileSchema,
		"languages": array(object([]string{"name", "level"}, map[string]*service.Schema{
			"name":  str("Spoken language", false),
			"level": enum(profile.LanguageLevels.Strings(), "Proficiency"),
		})),
		"skills": array(object([]string{"name", "type"}, map[string]*service.Schema{
			"name": str("Skill name as written in the résumé", false),
			"type": enum(skill.Categories.Strings(), "Skill category"),
		})),
		"projects": array(object([]string{"title", "status"}, map[string]*service.Schema{
			"title":        str("Project name", false),
			"category":     enum(project.Categories.Strings(), "Project category"),
			"description":  str("What the project does", true),
			"link":         str("Project URL", true),
			"status":       enum(project.Statuses.Strings(), "Project status"),
			"technologies": array(str("Technology used", false)),
		})),
		"experiences": array(object([]string{"jobTitle", "company"}, map[string]*service.Schema{
			"jobTitle":    str("Role held", false),
			"company":     str("Employer", false),
			"startDate":   str("Start date", true),
			"endDate":     str("End date or Present", true),
			"description": str("Responsibilities and impact", true),
		})),
		"educations": array(object([]string{"type", "degree", "institution"}, map[string]*service.Schema{
			"type":        enum(career.EducationTypes.Strings(), "Kind of education"),
			"degree":      str("Degree or certificate name", false),
			"institution": str("School or provider", false),
			"startDate":   str("Start date", true),
			"endDate":     str("End date", true),
			"description": str("Details", true),
		})),
		"testimonials": array(object([]string{"fromName", "message"}, map[string]*service.Schema{
			"fromName":     str("Author", false),
			"fromRole":     str("Author role", true),
			"relationship": str("Relationship to the person", true),
			"message":      str("Testimonial text", false),
			"rating":       rating,
		})),
		"achievements": array(object([]string{"title"}, map[string]*service.Schema{
			"title":       str("Award or achievement", false),
			"description": str("Details", true),
			"date":        str("Date received", true),
			"link":        str("Reference URL", true),
		})),
	})

	return object([]string{"user"}, map[string]*service.Schema{"user": user})
}

func buildResumePrompt(resumeText string) string {
	var b strings.Builder
	b.WriteString("Convert the following résumé into the portfolio JSON structure.\n\n")
	b.WriteString("--- Résumé ---\n")
	b.WriteString(resumeText)
	b.WriteString("\n--- End of résumé ---\n")
	return b.String()
}
