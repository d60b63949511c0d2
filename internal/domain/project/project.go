package project

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-builder/internal/domain/skill"
	"github.com/khoahotran/portfolio-builder/internal/domain/vocab"
)

type Project struct {
	ID          uuid.UUID     `json:"id"`
	OwnerID     uuid.UUID     `json:"owner_id"`
	Title       string        `json:"title"`
	Category    Category      `json:"category"`
	Description *string       `json:"description"`
	Link        *string       `json:"link"`
	Status      Status        `json:"status"`
	Images      []Image       `json:"images"`
	Tools       []skill.Skill `json:"tools"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type Image struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	URL       string    `json:"url"`
	Caption   *string   `json:"caption"`
}

type Category string

const (
	CategoryDevelopment Category = "DEVELOPMENT"
	CategoryDesign      Category = "DESIGN"
	CategoryDataScience Category = "DATA_SCIENCE"
	CategoryMobile      Category = "MOBILE"
	CategoryResearch    Category = "RESEARCH"
	CategoryWriting     Category = "WRITING"
	CategoryMarketing   Category = "MARKETING"
	CategoryOther       Category = "OTHER"
)

var Categories = vocab.New("ProjectCategory",
	[]Category{
		CategoryDevelopment, CategoryDesign, CategoryDataScience, CategoryMobile,
		CategoryResearch, CategoryWriting, CategoryMarketing, CategoryOther,
	},
	map[string]Category{
		"WEB_DEVELOPMENT":      CategoryDevelopment,
		"WEB":                  CategoryDevelopment,
		"SOFTWARE":             CategoryDevelopment,
		"SOFTWARE_DEVELOPMENT": CategoryDevelopment,
		"BACKEND":              CategoryDevelopment,
		"FRONTEND":             CategoryDevelopment,
		"FULLSTACK":            CategoryDevelopment,
		"FULL_STACK":           CategoryDevelopment,
		"OPEN_SOURCE":          CategoryDevelopment,
		"GAME_DEVELOPMENT":     CategoryDevelopment,
		"UI":                   CategoryDesign,
		"UX":                   CategoryDesign,
		"UI/UX":                CategoryDesign,
		"GRAPHIC_DESIGN":       CategoryDesign,
		"PRODUCT_DESIGN":       CategoryDesign,
		"DATA":                 CategoryDataScience,
		"DATA_ANALYSIS":        CategoryDataScience,
		"MACHINE_LEARNING":     CategoryDataScience,
		"ML":                   CategoryDataScience,
		"AI":                   CategoryDataScience,
		"ANALYTICS":            CategoryDataScience,
		"MOBILE_DEVELOPMENT":   CategoryMobile,
		"MOBILE_APP":           CategoryMobile,
		"IOS":                  CategoryMobile,
		"ANDROID":              CategoryMobile,
		"ACADEMIC":             CategoryResearch,
		"THESIS":               CategoryResearch,
		"PAPER":                CategoryResearch,
		"BLOG":                 CategoryWriting,
		"ARTICLE":              CategoryWriting,
		"CONTENT":              CategoryWriting,
		"TECHNICAL_WRITING":    CategoryWriting,
		"SEO":                  CategoryMarketing,
		"GROWTH":               CategoryMarketing,
		"BRANDING":             CategoryMarketing,
	},
	CategoryOther,
)

// ParseCategory never fails; ok is false when the fallback category was used.
func ParseCategory(raw string) (category Category, ok bool) {
	return Categories.Coerce(raw)
}

type Status string

const (
	StatusPlanned    Status = "PLANNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusArchived   Status = "ARCHIVED"
)

var Statuses = vocab.New("ProjectStatus",
	[]Status{StatusPlanned, StatusInProgress, StatusCompleted, StatusArchived},
	map[string]Status{
		"ONGOING":     StatusInProgress,
		"ACTIVE":      StatusInProgress,
		"WIP":         StatusInProgress,
		"DEVELOPMENT": StatusInProgress,
		"CURRENT":     StatusInProgress,
		"DONE":        StatusCompleted,
		"COMPLETE":    StatusCompleted,
		"FINISHED":    StatusCompleted,
		"SHIPPED":     StatusCompleted,
		"LAUNCHED":    StatusCompleted,
		"RELEASED":    StatusCompleted,
		"LIVE":        StatusCompleted,
		"PLANNING":    StatusPlanned,
		"TODO":        StatusPlanned,
		"UPCOMING":    StatusPlanned,
		"IDEA":        StatusPlanned,
		"ARCHIVE":     StatusArchived,
		"DEPRECATED":  StatusArchived,
		"INACTIVE":    StatusArchived,
		"ABANDONED":   StatusArchived,
		"PAUSED":      StatusArchived,
	},
	StatusInProgress,
)

// ParseStatus never fails; ok is false when the fallback status was used.
func ParseStatus(raw string) (status Status, ok bool) {
	return Statuses.Coerce(raw)
}
