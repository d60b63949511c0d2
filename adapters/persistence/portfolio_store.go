package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/career"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/domain/profile"
	"github.com/khoahotran/portfolio-builder/internal/domain/project"
	"github.com/khoahotran/portfolio-builder/internal/domain/skill"
	"github.com/khoahotran/portfolio-builder/internal/domain/user"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresPortfolioStore struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPortfolioStore(db *pgxpool.Pool, logger logger.Logger) portfolio.Store {
	return &postgresPortfolioStore{db: db, logger: logger}
}

func (s *postgresPortfolioStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portfolio.Tx) error) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return fn(ctx, &pgPortfolioTx{tx: tx, logger: s.logger})
	})
}

type pgPortfolioTx struct {
	tx     pgx.Tx
	logger logger.Logger
}

func (t *pgPortfolioTx) exec(ctx context.Context, b sq.Sqlizer, what string) (pgconn.CommandTag, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, apperror.NewInternal("failed to build "+what+" query", err)
	}
	tag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return tag, apperror.NewAppError(apperror.ErrConflict, what+" conflict", pgErr.Detail, err)
		}
		return tag, apperror.NewInternal("failed to "+what, err)
	}
	return tag, nil
}

func (t *pgPortfolioTx) UpdateUser(ctx context.Context, userID uuid.UUID, patch user.Patch) error {
	set := map[string]any{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}
	if patch.ProfileImage != nil {
		set["profile_image"] = *patch.ProfileImage
	}
	if len(set) == 0 {
		return nil
	}

	tag, err := t.exec(ctx, psql.Update("users").SetMap(set).Where(sq.Eq{"id": userID}), "update user")
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", userID.String())
	}
	return nil
}

func (t *pgPortfolioTx) UpsertProfile(ctx context.Context, userID uuid.UUID, patch profile.Patch) error {
	columns := []string{"id", "user_id", "full_name"}
	values := []any{uuid.New(), userID, patch.FullName}
	updates := []string{"full_name = EXCLUDED.full_name"}

	optional := []struct {
		column string
		value  *string
	}{
		{"title", patch.Title},
		{"bio", patch.Bio},
		{"location", patch.Location},
		{"pronouns", patch.Pronouns},
		{"fun_fact", patch.FunFact},
		{"motto", patch.Motto},
		{"picture", patch.Picture},
		{"phone", patch.Phone},
	}
	for _, f := range optional {
		if f.value == nil {
			continue
		}
		columns = append(columns, f.column)
		values = append(values, *f.value)
		updates = append(updates, f.column+" = EXCLUDED."+f.column)
	}
	if patch.Socials != nil {
		raw, err := json.Marshal(patch.Socials)
		if err != nil {
			return apperror.NewInternal("failed to marshal socials", err)
		}
		columns = append(columns, "socials")
		values = append(values, raw)
		updates = append(updates, "socials = EXCLUDED.socials")
	}
	updates = append(updates, "updated_at = NOW()")

	suffix := "ON CONFLICT (user_id) DO UPDATE SET "
	for i, u := range updates {
		if i > 0 {
			suffix += ", "
		}
		suffix += u
	}

	_, err := t.exec(ctx, psql.Insert("profiles").Columns(columns...).Values(values...).Suffix(suffix), "upsert profile")
	return err
}

func (t *pgPortfolioTx) FindProfileID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := t.tx.QueryRow(ctx, `SELECT id FROM profiles WHERE user_id = $1`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, nil
		}
		return uuid.Nil, apperror.NewInternal("failed to query profile id", err)
	}
	return id, nil
}

func (t *pgPortfolioTx) CreateLanguages(ctx context.Context, profileID uuid.UUID, languages []profile.Language) (int, error) {
	if len(languages) == 0 {
		return 0, nil
	}
	b := psql.Insert("languages").Columns("id", "profile_id", "name", "level")
	for _, l := range languages {
		b = b.Values(l.ID, profileID, l.Name, string(l.Level))
	}
	tag, err := t.exec(ctx, b.Suffix("ON CONFLICT (profile_id, name, level) DO NOTHING"), "create languages")
	if err != nil {
		return 0, err
	}
	if skipped := len(languages) - int(tag.RowsAffected()); skipped > 0 {
		t.logger.Debug("Skipped existing languages", zap.Int("skipped", skipped))
	}
	return int(tag.RowsAffected()), nil
}

func (t *pgPortfolioTx) FindSkill(ctx context.Context, name string, category skill.Category) (*skill.Skill, error) {
	s := &skill.Skill{}
	err := t.tx.QueryRow(ctx,
		`SELECT id, name, category, created_at FROM skills WHERE name = $1 AND category = $2`,
		name, string(category),
	).Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to query skill", err)
	}
	return s, nil
}

// CreateSkill is safe against a concurrent insert of the same pair: the existing row id wins.
func (t *pgPortfolioTx) CreateSkill(ctx context.Context, s *skill.Skill) error {
	query := `
		INSERT INTO skills (id, name, category, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name, category) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, created_at
	`
	err := t.tx.QueryRow(ctx, query, s.ID, s.Name, string(s.Category), s.CreatedAt).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to create skill", err)
	}
	return nil
}

func (t *pgPortfolioTx) EnsureUserSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	_, err := t.exec(ctx,
		psql.Insert("user_skills").Columns("user_id", "skill_id").Values(userID, skillID).Suffix("ON CONFLICT DO NOTHING"),
		"link user skill",
	)
	return err
}

func (t *pgPortfolioTx) CreateProject(ctx context.Context, p *project.Project) error {
	_, err := t.exec(ctx, psql.Insert("projects").
		Columns("id", "owner_id", "title", "category", "description", "link", "status", "created_at", "updated_at").
		Values(p.ID, p.OwnerID, p.Title, string(p.Category), p.Description, p.Link, string(p.Status), p.CreatedAt, p.UpdatedAt),
		"create project",
	)
	return err
}

func (t *pgPortfolioTx) CreateImages(ctx context.Context, projectID uuid.UUID, images []project.Image) error {
	rows := make([][]any, len(images))
	for i, img := range images {
		rows[i] = []any{img.ID, projectID, img.URL, img.Caption}
	}
	return t.copy(ctx, "project_images", []string{"id", "project_id", "url", "caption"}, rows)
}

func (t *pgPortfolioTx) CreateProjectTool(ctx context.Context, projectID, skillID uuid.UUID) error {
	_, err := t.exec(ctx,
		psql.Insert("project_tools").Columns("project_id", "skill_id").Values(projectID, skillID).Suffix("ON CONFLICT DO NOTHING"),
		"link project tool",
	)
	return err
}

func (t *pgPortfolioTx) CreateExperiences(ctx context.Context, items []career.Experience) error {
	rows := make([][]any, len(items))
	for i, e := range items {
		rows[i] = []any{e.ID, e.OwnerID, e.Role, e.Company, e.StartDate, e.EndDate, e.Description}
	}
	return t.copy(ctx, "experiences",
		[]string{"id", "owner_id", "role", "company", "start_date", "end_date", "description"}, rows)
}

func (t *pgPortfolioTx) CreateEducations(ctx context.Context, items []career.Education) error {
	rows := make([][]any, len(items))
	for i, e := range items {
		rows[i] = []any{e.ID, e.OwnerID, string(e.Type), e.Degree, e.Institution, e.StartDate, e.EndDate, e.Description}
	}
	return t.copy(ctx, "educations",
		[]string{"id", "owner_id", "type", "degree", "institution", "start_date", "end_date", "description"}, rows)
}

func (t *pgPortfolioTx) CreateAchievements(ctx context.Context, items []career.Achievement) error {
	rows := make([][]any, len(items))
	for i, a := range items {
		rows[i] = []any{a.ID, a.OwnerID, a.Title, a.Description, a.Date, a.Link}
	}
	return t.copy(ctx, "achievements",
		[]string{"id", "owner_id", "title", "description", "date", "link"}, rows)
}

func (t *pgPortfolioTx) CreateTestimonials(ctx context.Context, items []career.Testimonial) error {
	rows := make([][]any, len(items))
	for i, tm := range items {
		rows[i] = []any{tm.ID, tm.OwnerID, tm.FromName, tm.FromRole, tm.Relationship, tm.Message, tm.Rating}
	}
	return t.copy(ctx, "testimonials",
		[]string{"id", "owner_id", "from_name", "from_role", "relationship", "message", "rating"}, rows)
}

func (t *pgPortfolioTx) copy(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := t.tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return apperror.NewInternal("failed to insert "+table, err)
	}
	return nil
}
