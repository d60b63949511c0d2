// Package portfolio defines the aggregate rendered on a public portfolio page and the
// transactional write port the ingestion pipeline runs against.
package portfolio

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-builder/internal/domain/career"
	"github.com/khoahotran/portfolio-builder/internal/domain/profile"
	"github.com/khoahotran/portfolio-builder/internal/domain/project"
	"github.com/khoahotran/portfolio-builder/internal/domain/skill"
	"github.com/khoahotran/portfolio-builder/internal/domain/user"
)

var ErrProfileMissing = errors.New("profile not found after upsert")

type Portfolio struct {
	User         user.User            `json:"user"`
	Profile      *profile.Profile     `json:"profile"`
	Skills       []skill.Skill        `json:"skills"`
	Projects     []project.Project    `json:"projects"`
	Experiences  []career.Experience  `json:"experiences"`
	Educations   []career.Education   `json:"educations"`
	Achievements []career.Achievement `json:"achievements"`
	Testimonials []career.Testimonial `json:"testimonials"`
}

// Tx is the set of writes available inside one unit of work. Every method is scoped by the
// caller-supplied owner id; implementations must not write outside it.
type Tx interface {
	UpdateUser(ctx context.Context, userID uuid.UUID, patch user.Patch) error
	UpsertProfile(ctx context.Context, userID uuid.UUID, patch profile.Patch) error
	FindProfileID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	// CreateLanguages skips rows that already exist and returns how many were inserted.
	CreateLanguages(ctx context.Context, profileID uuid.UUID, languages []profile.Language) (int, error)

	// FindSkill returns nil, nil when the catalog has no (name, category) entry.
	FindSkill(ctx context.Context, name string, category skill.Category) (*skill.Skill, error)
	CreateSkill(ctx context.Context, s *skill.Skill) error
	EnsureUserSkill(ctx context.Context, userID, skillID uuid.UUID) error

	CreateProject(ctx context.Context, p *project.Project) error
	CreateImages(ctx context.Context, projectID uuid.UUID, images []project.Image) error
	CreateProjectTool(ctx context.Context, projectID, skillID uuid.UUID) error

	CreateExperiences(ctx context.Context, items []career.Experience) error
	CreateEducations(ctx context.Context, items []career.Education) error
	CreateAchievements(ctx context.Context, items []career.Achievement) error
	CreateTestimonials(ctx context.Context, items []career.Testimonial) error
}

// Store runs fn inside a single transaction. Any error returned by fn rolls back every write.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Repository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Portfolio, error)
}
