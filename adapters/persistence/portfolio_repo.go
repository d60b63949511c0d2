package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/career"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/domain/profile"
	"github.com/khoahotran/portfolio-builder/internal/domain/project"
	"github.com/khoahotran/portfolio-builder/internal/domain/skill"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type postgresPortfolioRepo struct {
	db     *pgxpool.Pool
	users  *postgresUserRepo
	logger logger.Logger
}

func NewPostgresPortfolioRepo(db *pgxpool.Pool, logger logger.Logger) portfolio.Repository {
	return &postgresPortfolioRepo{db: db, users: &postgresUserRepo{db: db, logger: logger}, logger: logger}
}

func (r *postgresPortfolioRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, error) {
	u, err := r.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("portfolio", ownerID.String())
		}
		return nil, err
	}

	p := &portfolio.Portfolio{User: *u}

	if p.Profile, err = r.profile(ctx, ownerID); err != nil {
		return nil, err
	}
	if p.Skills, err = r.userSkills(ctx, ownerID); err != nil {
		return nil, err
	}
	if p.Projects, err = r.projects(ctx, ownerID); err != nil {
		return nil, err
	}
	if p.Experiences, err = r.experiences(ctx, ownerID); err != nil {
		return nil, err
	}
	if p.Educations, err = r.educations(ctx, ownerID); err != nil {
		return nil, err
	}
	if p.Achievements, err = r.achievements(ctx, ownerID); err != nil {
		return nil, err
	}
	if p.Testimonials, err = r.testimonials(ctx, ownerID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresPortfolioRepo) profile(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT id, user_id, full_name, title, bio, location, pronouns, fun_fact, motto, picture, phone, socials, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	p := &profile.Profile{}
	var socials []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Title, &p.Bio, &p.Location, &p.Pronouns,
		&p.FunFact, &p.Motto, &p.Picture, &p.Phone, &socials, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	if len(socials) > 0 {
		p.Socials = &profile.Socials{}
		if err := p.Socials.UnmarshalJSON(socials); err != nil {
			r.logger.Warn("Failed to unmarshal socials", zap.String("user_id", userID.String()), zap.Error(err))
			p.Socials = nil
		}
	}

	rows, err := r.db.Query(ctx, `SELECT id, profile_id, name, level FROM languages WHERE profile_id = $1 ORDER BY name`, p.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query languages", err)
	}
	p.Languages, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (profile.Language, error) {
		var l profile.Language
		err := row.Scan(&l.ID, &l.ProfileID, &l.Name, &l.Level)
		return l, err
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to scan languages", err)
	}
	return p, nil
}

func scanSkill(row pgx.CollectableRow) (skill.Skill, error) {
	var s skill.Skill
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt)
	return s, err
}

func (r *postgresPortfolioRepo) userSkills(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	query := `
		SELECT s.id, s.name, s.category, s.created_at
		FROM skills s
		JOIN user_skills us ON us.skill_id = s.id
		WHERE us.user_id = $1
		ORDER BY s.category, s.name
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query skills", err)
	}
	skills, err := pgx.CollectRows(rows, scanSkill)
	if err != nil {
		return nil, apperror.NewInternal("failed to scan skills", err)
	}
	return skills, nil
}

func (r *postgresPortfolioRepo) projects(ctx context.Context, ownerID uuid.UUID) ([]project.Project, error) {
	sql, args, err := psql.Select("id, owner_id, title, category, description, link, status, created_at, updated_at").
		From("projects").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build projects query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query projects", err)
	}
	projects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (project.Project, error) {
		var p project.Project
		err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Category, &p.Description, &p.Link, &p.Status, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to scan projects", err)
	}
	if len(projects) == 0 {
		return projects, nil
	}

	ids := make([]uuid.UUID, len(projects))
	index := make(map[uuid.UUID]int, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
		index[p.ID] = i
		projects[i].Images = []project.Image{}
		projects[i].Tools = []skill.Skill{}
	}

	rows, err = r.db.Query(ctx, `SELECT id, project_id, url, caption FROM project_images WHERE project_id = ANY($1)`, ids)
	if err != nil {
		return nil, apperror.NewInternal("failed to query project images", err)
	}
	images, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (project.Image, error) {
		var img project.Image
		err := row.Scan(&img.ID, &img.ProjectID, &img.URL, &img.Caption)
		return img, err
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to scan project images", err)
	}
	for _, img := range images {
		i := index[img.ProjectID]
		projects[i].Images = append(projects[i].Images, img)
	}

	query := `
		SELECT pt.project_id, s.id, s.name, s.category, s.created_at
		FROM project_tools pt
		JOIN skills s ON s.id = pt.skill_id
		WHERE pt.project_id = ANY($1)
		ORDER BY s.name
	`
	rows, err = r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, apperror.NewInternal("failed to query project tools", err)
	}
	defer rows.Close()
	for rows.Next() {
		var projectID uuid.UUID
		var s skill.Skill
		if err := rows.Scan(&projectID, &s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, apperror.NewInternal("failed to scan project tool", err)
		}
		i := index[projectID]
		projects[i].Tools = append(projects[i].Tools, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating project tools", err)
	}
	return projects, nil
}

func (r *postgresPortfolioRepo) experiences(ctx context.Context, ownerID uuid.UUID) ([]career.Experience, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, role, company, start_date, end_date, description
		FROM experiences WHERE owner_id = $1
		ORDER BY start_date DESC NULLS LAST`, ownerID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query experiences", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (career.Experience, error) {
		var e career.Experience
		err := row.Scan(&e.ID, &e.OwnerID, &e.Role, &e.Company, &e.StartDate, &e.EndDate, &e.Description)
		return e, err
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to scan experiences", err)
	}
	return items, nil
}

func (r *postgresPortfolioRepo) educations(ctx context.Context, ownerID uuid.UUID) ([]career.Education, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, type, degree, institution, start_date, end_date, description
		FROM educations WHERE owner_id = $1
		ORDER BY start_date DESC NULLS LAST`, ownerID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query educations", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (career.Education, error) {
		var e career.Education
		err := row.Scan(&e.ID, &e.OwnerID, &e.Type, &e.Degree, &e.Institution, &e.StartDate, &e.EndDate, &e.Description)
		return e, err
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to scan educations", err)
	}
	return items, nil
}

func (r *postgresPortfolioRepo) achievements(ctx context.Context, ownerID uuid.UUID) ([]career.Achievement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, title, description, date, link
		FROM achievements WHERE owner_id = $1
		ORDER BY date DESC NULLS LAST`, ownerID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query achievements", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (career.Achievement, error) {
		var a career.Achievement
		err := row.Scan(&a.ID, &a.OwnerID, &a.Title, &a.Description, &a.Date, &a.Link)
		return a, err
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to scan achievements", err)
	}
	return items, nil
}

func (r *postgresPortfolioRepo) testimonials(ctx context.Context, ownerID uuid.UUID) ([]career.Testimonial, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, from_name, from_role, relationship, message, rating
		FROM testimonials WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query testimonials", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (career.Testimonial, error) {
		var t career.Testimonial
		err := row.Scan(&t.ID, &t.OwnerID, &t.FromName, &t.FromRole, &t.Relationship, &t.Message, &t.Rating)
		return t, err
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to scan testimonials", err)
	}
	return items, nil
}
