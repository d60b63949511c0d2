package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/domain/career"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/domain/profile"
	"github.com/khoahotran/portfolio-builder/internal/domain/project"
	"github.com/khoahotran/portfolio-builder/internal/domain/skill"
	"github.com/khoahotran/portfolio-builder/internal/domain/user"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const (
	msgPortfolioFailed    = "Failed to generate portfolio"
	msgPortfolioGenerated = "Portfolio generated successfully"
)

type GeneratePortfolioUseCase struct {
	store     portfolio.Store
	publisher service.EventPublisher
	logger    logger.Logger
	now       func() time.Time
}

// NewGeneratePortfolioUseCase wires the materializer. publisher may be nil when no event bus is configured.
func NewGeneratePortfolioUseCase(store portfolio.Store, publisher service.EventPublisher, log logger.Logger) *GeneratePortfolioUseCase {
	return &GeneratePortfolioUseCase{
		store:     store,
		publisher: publisher,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// step is one ordered write of the ingestion script.
type step struct {
	name string
	run  func(ctx context.Context, tx portfolio.Tx) error
}

func (uc *GeneratePortfolioUseCase) Execute(ctx context.Context, input GeneratePortfolioInput) (*GeneratePortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "GeneratePortfolio")
	defer span.End()

	ownerID, ok := auth.OwnerIDFromContext(ctx)
	if !ok {
		return nil, apperror.NewUnauthorized("no authenticated session", nil)
	}
	if strings.TrimSpace(input.User.Profile.FullName) == "" {
		return nil, apperror.NewInvalidInput("profile.fullName is required", nil)
	}

	l := uc.logger.With(zap.String("owner_id", ownerID.String()))
	span.SetAttributes(attribute.String("owner_id", ownerID.String()))

	summary := Summary{User: input.User.Name, Email: input.User.Email}
	steps := uc.plan(ownerID, input.User, normalizer{log: l}, &summary)

	err := uc.store.WithinTx(ctx, func(ctx context.Context, tx portfolio.Tx) error {
		for _, s := range steps {
			if err := s.run(ctx, tx); err != nil {
				return fmt.Errorf("%s: %w", s.name, err)
			}
		}
		return nil
	})
	if err != nil {
		l.Error("Portfolio generation rolled back", err)
		span.RecordError(err)
		return nil, apperror.NewFailed(msgPortfolioFailed, err)
	}

	l.Info("Portfolio generated",
		zap.Int("languages", summary.LanguagesCount),
		zap.Int("skills", summary.SkillsCount),
		zap.Int("projects", summary.ProjectsCount),
		zap.Int("experiences", summary.ExperiencesCount),
		zap.Int("educations", summary.EducationsCount),
		zap.Int("achievements", summary.AchievementsCount),
		zap.Int("testimonials", summary.TestimonialsCount),
	)

	uc.publishGenerated(ownerID, l)

	return &GeneratePortfolioOutput{
		Success: true,
		Message: msgPortfolioGenerated,
		Summary: summary,
	}, nil
}

// plan converts the input into the ordered write script. Coercion happens here, so the
// transaction only ever sees vocabulary members.
func (uc *GeneratePortfolioUseCase) plan(ownerID uuid.UUID, in PortfolioUserInput, n normalizer, summary *Summary) []step {
	now := uc.now()
	steps := make([]step, 0, 8)

	userPatch := user.Patch{
		Name:         optional(in.Name),
		Bio:          optional(in.Bio),
		ProfileImage: optional(firstNonBlank(in.ProfileImage, in.Image)),
	}
	if !userPatch.IsEmpty() {
		steps = append(steps, step{"update user", func(ctx context.Context, tx portfolio.Tx) error {
			return tx.UpdateUser(ctx, ownerID, userPatch)
		}})
	}

	profilePatch := profile.Patch{
		FullName: strings.TrimSpace(in.Profile.FullName),
		Title:    optional(in.Profile.Title),
		Bio:      optional(in.Profile.Bio),
		Location: optional(in.Profile.Location),
		Pronouns: optional(in.Profile.Pronouns),
		FunFact:  optional(in.Profile.FunFact),
		Motto:    optional(in.Profile.Motto),
		Picture:  optional(in.Profile.Picture),
		Phone:    optional(in.Profile.Phone),
		Socials:  n.socials(in.Profile.Socials),
	}

	languages := make([]profile.Language, 0, len(in.Languages))
	for _, lang := range in.Languages {
		name := strings.TrimSpace(lang.Name)
		if name == "" {
			continue
		}
		languages = append(languages, profile.Language{ID: uuid.New(), Name: name, Level: n.languageLevel(lang.Level)})
	}

	steps = append(steps, step{"upsert profile", func(ctx context.Context, tx portfolio.Tx) error {
		if err := tx.UpsertProfile(ctx, ownerID, profilePatch); err != nil {
			return err
		}
		profileID, err := tx.FindProfileID(ctx, ownerID)
		if err != nil {
			return err
		}
		if profileID == uuid.Nil {
			return portfolio.ErrProfileMissing
		}
		if len(languages) == 0 {
			return nil
		}
		inserted, err := tx.CreateLanguages(ctx, profileID, languages)
		summary.LanguagesCount = inserted
		return err
	}})

	skills := uc.skillRefs(in.Skills, n)
	if len(skills) > 0 {
		steps = append(steps, step{"link skills", func(ctx context.Context, tx portfolio.Tx) error {
			for _, ref := range skills {
				s, err := resolveSkill(ctx, tx, ref, now)
				if err != nil {
					return err
				}
				if err := tx.EnsureUserSkill(ctx, ownerID, s.ID); err != nil {
					return err
				}
			}
			summary.SkillsCount = len(skills)
			return nil
		}})
	}

	projects := uc.projects(ownerID, in.Projects, n, now)
	if len(projects) > 0 {
		steps = append(steps, step{"create projects", func(ctx context.Context, tx portfolio.Tx) error {
			for _, p := range projects {
				if err := tx.CreateProject(ctx, p.project); err != nil {
					return err
				}
				if len(p.project.Images) > 0 {
					if err := tx.CreateImages(ctx, p.project.ID, p.project.Images); err != nil {
						return err
					}
				}
				for _, ref := range p.tools {
					s, err := resolveSkill(ctx, tx, ref, now)
					if err != nil {
						return err
					}
					if err := tx.CreateProjectTool(ctx, p.project.ID, s.ID); err != nil {
						return err
					}
				}
			}
			summary.ProjectsCount = len(projects)
			return nil
		}})
	}

	experiences := make([]career.Experience, 0, len(in.Experiences))
	for _, e := range in.Experiences {
		if strings.TrimSpace(e.Role) == "" && strings.TrimSpace(e.Company) == "" {
			continue
		}
		experiences = append(experiences, career.Experience{
			ID:          uuid.New(),
			OwnerID:     ownerID,
			Role:        strings.TrimSpace(e.Role),
			Company:     strings.TrimSpace(e.Company),
			StartDate:   n.date("experience.startDate", e.StartDate),
			EndDate:     n.date("experience.endDate", e.EndDate),
			Description: optional(e.Description),
		})
	}
	if len(experiences) > 0 {
		steps = append(steps, step{"create experiences", func(ctx context.Context, tx portfolio.Tx) error {
			if err := tx.CreateExperiences(ctx, experiences); err != nil {
				return err
			}
			summary.ExperiencesCount = len(experiences)
			return nil
		}})
	}

	educations := make([]career.Education, 0, len(in.Educations))
	for _, e := range in.Educations {
		if strings.TrimSpace(e.Degree) == "" && strings.TrimSpace(e.Institution) == "" {
			continue
		}
		educations = append(educations, career.Education{
			ID:          uuid.New(),
			OwnerID:     ownerID,
			Type:        n.educationType(e.Type),
			Degree:      strings.TrimSpace(e.Degree),
			Institution: strings.TrimSpace(e.Institution),
			StartDate:   n.date("education.startDate", e.StartDate),
			EndDate:     n.date("education.endDate", e.EndDate),
			Description: optional(e.Description),
		})
	}
	if len(educations) > 0 {
		steps = append(steps, step{"create educations", func(ctx context.Context, tx portfolio.Tx) error {
			if err := tx.CreateEducations(ctx, educations); err != nil {
				return err
			}
			summary.EducationsCount = len(educations)
			return nil
		}})
	}

	achievements := make([]career.Achievement, 0, len(in.Achievements))
	for _, a := range in.Achievements {
		if strings.TrimSpace(a.Title) == "" {
			continue
		}
		achievements = append(achievements, career.Achievement{
			ID:          uuid.New(),
			OwnerID:     ownerID,
			Title:       strings.TrimSpace(a.Title),
			Description: optional(a.Description),
			Date:        n.date("achievement.date", a.Date),
			Link:        optional(a.Link),
		})
	}
	if len(achievements) > 0 {
		steps = append(steps, step{"create achievements", func(ctx context.Context, tx portfolio.Tx) error {
			if err := tx.CreateAchievements(ctx, achievements); err != nil {
				return err
			}
			summary.AchievementsCount = len(achievements)
			return nil
		}})
	}

	testimonials := make([]career.Testimonial, 0, len(in.Testimonials))
	for _, t := range in.Testimonials {
		if strings.TrimSpace(t.FromName) == "" || strings.TrimSpace(t.Message) == "" {
			continue
		}
		testimonials = append(testimonials, career.Testimonial{
			ID:           uuid.New(),
			OwnerID:      ownerID,
			FromName:     strings.TrimSpace(t.FromName),
			FromRole:     optional(t.FromRole),
			Relationship: optional(t.Relationship),
			Message:      strings.TrimSpace(t.Message),
			Rating:       n.rating(t.Rating),
		})
	}
	if len(testimonials) > 0 {
		steps = append(steps, step{"create testimonials", func(ctx context.Context, tx portfolio.Tx) error {
			if err := tx.CreateTestimonials(ctx, testimonials); err != nil {
				return err
			}
			summary.TestimonialsCount = len(testimonials)
			return nil
		}})
	}

	return steps
}

type skillRef struct {
	name     string
	category skill.Category
}

type plannedProject struct {
	project *project.Project
	tools   []skillRef
}

// skillRefs coerces categories and drops blank names and exact repeats.
func (uc *GeneratePortfolioUseCase) skillRefs(in []SkillInput, n normalizer) []skillRef {
	refs := make([]skillRef, 0, len(in))
	seen := make(map[skillRef]struct{}, len(in))
	for _, s := range in {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		ref := skillRef{name: name, category: n.skillCategory(s.Category)}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}
	return refs
}

func (uc *GeneratePortfolioUseCase) projects(ownerID uuid.UUID, in []ProjectInput, n normalizer, now time.Time) []plannedProject {
	out := make([]plannedProject, 0, len(in))
	for _, p := range in {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			n.log.Warn("Skipping project without title")
			continue
		}
		id := uuid.New()
		images := make([]project.Image, 0, len(p.Images))
		for _, img := range p.Images {
			if strings.TrimSpace(img.URL) == "" {
				continue
			}
			images = append(images, project.Image{
				ID:        uuid.New(),
				ProjectID: id,
				URL:       strings.TrimSpace(img.URL),
				Caption:   optional(img.Caption),
			})
		}
		out = append(out, plannedProject{
			project: &project.Project{
				ID:          id,
				OwnerID:     ownerID,
				Title:       title,
				Category:    n.projectCategory(p.Category),
				Description: optional(p.Description),
				Link:        optional(p.Link),
				Status:      n.projectStatus(p.Status),
				Images:      images,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			tools: uc.skillRefs(p.ProjectTools, n),
		})
	}
	return out
}

// resolveSkill reuses the catalog entry for (name, category) or creates it.
func resolveSkill(ctx context.Context, tx portfolio.Tx, ref skillRef, now time.Time) (*skill.Skill, error) {
	existing, err := tx.FindSkill(ctx, ref.name, ref.category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	s := &skill.Skill{ID: uuid.New(), Name: ref.name, Category: ref.category, CreatedAt: now}
	if err := tx.CreateSkill(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *GeneratePortfolioUseCase) publishGenerated(ownerID uuid.UUID, l logger.Logger) {
	if uc.publisher == nil {
		return
	}
	event := service.PortfolioEvent{
		EventType:  service.PortfolioEventGenerated,
		OwnerID:    ownerID,
		OccurredAt: uc.now(),
	}
	go func() {
		if err := uc.publisher.PublishPortfolioEvent(context.Background(), event); err != nil {
			l.Error("Failed to publish portfolio event", err)
		}
	}()
}
