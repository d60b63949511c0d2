package skill

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-builder/internal/domain/vocab"
)

// Skill is a catalog entry shared by every user, unique by (Name, Category).
type Skill struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type Category string

const (
	CategoryLanguage  Category = "LANGUAGE"
	CategoryFramework Category = "FRAMEWORK"
	CategoryLibrary   Category = "LIBRARY"
	CategoryDatabase  Category = "DATABASE"
	CategoryTool      Category = "TOOL"
	CategoryCloud     Category = "CLOUD"
	CategoryDevOps    Category = "DEVOPS"
	CategoryDesign    Category = "DESIGN"
	CategorySoftSkill Category = "SOFT_SKILL"
	CategoryOther     Category = "OTHER"
)

var Categories = vocab.New("SkillCategory",
	[]Category{
		CategoryLanguage, CategoryFramework, CategoryLibrary, CategoryDatabase, CategoryTool,
		CategoryCloud, CategoryDevOps, CategoryDesign, CategorySoftSkill, CategoryOther,
	},
	map[string]Category{
		"PROGRAMMING_LANGUAGE": CategoryLanguage,
		"PROGRAMMING":          CategoryLanguage,
		"LANG":                 CategoryLanguage,
		"SCRIPTING":            CategoryLanguage,
		"FRONTEND":             CategoryFramework,
		"BACKEND":              CategoryFramework,
		"WEB_FRAMEWORK":        CategoryFramework,
		"FRAMEWORKS":           CategoryFramework,
		"LIB":                  CategoryLibrary,
		"LIBRARIES":            CategoryLibrary,
		"PACKAGE":              CategoryLibrary,
		"DB":                   CategoryDatabase,
		"DATABASES":            CategoryDatabase,
		"SQL":                  CategoryDatabase,
		"NOSQL":                CategoryDatabase,
		"STORAGE":              CategoryDatabase,
		"TOOLS":                CategoryTool,
		"TOOLING":              CategoryTool,
		"SOFTWARE":             CategoryTool,
		"IDE":                  CategoryTool,
		"PLATFORM":             CategoryCloud,
		"CLOUD_PLATFORM":       CategoryCloud,
		"INFRASTRUCTURE":       CategoryCloud,
		"AWS":                  CategoryCloud,
		"GCP":                  CategoryCloud,
		"AZURE":                CategoryCloud,
		"DEV_OPS":              CategoryDevOps,
		"CI_CD":                CategoryDevOps,
		"CI/CD":                CategoryDevOps,
		"OPERATIONS":           CategoryDevOps,
		"UI":                   CategoryDesign,
		"UX":                   CategoryDesign,
		"UI/UX":                CategoryDesign,
		"GRAPHIC_DESIGN":       CategoryDesign,
		"SOFT":                 CategorySoftSkill,
		"SOFT_SKILLS":          CategorySoftSkill,
		"INTERPERSONAL":        CategorySoftSkill,
		"COMMUNICATION":        CategorySoftSkill,
		"LEADERSHIP":           CategorySoftSkill,
		"MISC":                 CategoryOther,
		"GENERAL":              CategoryOther,
	},
	CategoryOther,
)

// ParseCategory never fails; ok is false when the fallback category was used.
func ParseCategory(raw string) (category Category, ok bool) {
	return Categories.Coerce(raw)
}
