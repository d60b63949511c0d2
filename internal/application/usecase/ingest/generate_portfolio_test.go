package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/domain/career"
	"github.com/khoahotran/portfolio-builder/internal/domain/profile"
	"github.com/khoahotran/portfolio-builder/internal/domain/project"
	"github.com/khoahotran/portfolio-builder/internal/domain/skill"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

func observedLogger() (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.NewFromZap(zap.New(core)), logs
}

func newMaterializer(store *memStore) (*GeneratePortfolioUseCase, *observer.ObservedLogs, *fakePublisher) {
	log, logs := observedLogger()
	pub := newFakePublisher()
	return NewGeneratePortfolioUseCase(store, pub, log), logs, pub
}

func fullInput() GeneratePortfolioInput {
	rating := 4.6
	return GeneratePortfolioInput{User: PortfolioUserInput{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Bio:   "Analyst",
		Profile: ProfileInput{
			FullName: "Ada Lovelace",
			Title:    "Engineer",
			Socials:  map[string]any{"github": "https://github.com/ada"},
		},
		Languages: []LanguageInput{{Name: "English", Level: "native"}, {Name: "French", Level: "fluent"}},
		Skills:    []SkillInput{{Name: "Go", Category: "language"}, {Name: "PostgreSQL", Category: "db"}},
		Projects: []ProjectInput{{
			Title:        "Engine",
			Category:     "web_development",
			Status:       "done",
			Images:       []ImageInput{{URL: "https://img.example.com/1.png", Caption: "UI"}},
			ProjectTools: []SkillInput{{Name: "Go", Category: "LANGUAGE"}, {Name: "Redis", Category: "database"}},
		}},
		Experiences:  []ExperienceInput{{Role: "Engineer", Company: "Acme", StartDate: "2020-01", EndDate: "Present"}},
		Educations:   []EducationInput{{Type: "university", Degree: "BSc", Institution: "Uni", StartDate: "2014", EndDate: "2018"}},
		Achievements: []AchievementInput{{Title: "Award", Date: "2021-05-01"}},
		Testimonials: []TestimonialInput{{FromName: "Bob", Message: "Great", Rating: &rating}},
	}}
}

func TestGeneratePortfolio_ExampleScenario(t *testing.T) {
	owner := uuid.New()
	store := newMemStore(owner)
	uc, _, pub := newMaterializer(store)

	out, err := uc.Execute(auth.WithOwnerID(context.Background(), owner), GeneratePortfolioInput{User: PortfolioUserInput{
		Email:     "a@b.com",
		Profile:   ProfileInput{FullName: "A B"},
		Skills:    []SkillInput{{Name: "React", Category: "framework"}},
		Languages: []LanguageInput{{Name: "English", Level: "native"}},
	}})
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, msgPortfolioGenerated, out.Message)
	assert.Equal(t, Summary{Email: "a@b.com", SkillsCount: 1, LanguagesCount: 1}, out.Summary)

	st := store.snapshot()
	require.Contains(t, st.profiles, owner)
	assert.Equal(t, "A B", st.profiles[owner].FullName)

	require.Len(t, st.skills, 1)
	assert.Equal(t, "React", st.skills[0].Name)
	assert.Equal(t, skill.CategoryFramework, st.skills[0].Category)
	assert.Contains(t, st.userSkills, pair{owner, st.skills[0].ID})

	require.Len(t, st.languages, 1)
	assert.Equal(t, "English", st.languages[0].Name)
	assert.Equal(t, profile.LevelNative, st.languages[0].Level)
	assert.Equal(t, st.profiles[owner].ID, st.languages[0].ProfileID)

	select {
	case e := <-pub.events:
		assert.Equal(t, service.PortfolioEventGenerated, e.EventType)
		assert.Equal(t, owner, e.OwnerID)
	case <-time.After(time.Second):
		t.Fatal("expected a portfolio event")
	}
}

func TestGeneratePortfolio_FullPayload(t *testing.T) {
	owner := uuid.New()
	store := newMemStore(owner)
	uc, _, _ := newMaterializer(store)

	out, err := uc.Execute(auth.WithOwnerID(context.Background(), owner), fullInput())
	require.NoError(t, err)

	assert.Equal(t, Summary{
		User: "Ada Lovelace", Email: "ada@example.com",
		LanguagesCount: 2, SkillsCount: 2, ProjectsCount: 1, ExperiencesCount: 1,
		EducationsCount: 1, AchievementsCount: 1, TestimonialsCount: 1,
	}, out.Summary)

	st := store.snapshot()
	u := st.users[owner]
	require.NotNil(t, u.Name)
	assert.Equal(t, "Ada Lovelace", *u.Name)

	require.Len(t, st.projects, 1)
	p := st.projects[0]
	assert.Equal(t, project.CategoryDevelopment, p.Category)
	assert.Equal(t, project.StatusCompleted, p.Status)
	require.Len(t, st.images, 1)
	assert.Equal(t, p.ID, st.images[0].ProjectID)

	// Go is shared between the skill list and the project tools; Redis is new.
	assert.Len(t, st.skills, 3)
	assert.Len(t, st.projectTools, 2)

	require.Len(t, st.experiences, 1)
	exp := st.experiences[0]
	require.NotNil(t, exp.StartDate)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), *exp.StartDate)
	assert.Nil(t, exp.EndDate)

	require.Len(t, st.educations, 1)
	assert.Equal(t, career.EducationDegree, st.educations[0].Type)

	require.Len(t, st.testimonials, 1)
	require.NotNil(t, st.testimonials[0].Rating)
	assert.Equal(t, 5, *st.testimonials[0].Rating)
}

func TestGeneratePortfolio_CoercesProjectCategories(t *testing.T) {
	owner := uuid.New()
	store := newMemStore(owner)
	uc, logs, _ := newMaterializer(store)

	_, err := uc.Execute(auth.WithOwnerID(context.Background(), owner), GeneratePortfolioInput{User: PortfolioUserInput{
		Profile: ProfileInput{FullName: "A B"},
		Projects: []ProjectInput{
			{Title: "One", Category: "web_development", Status: "IN_PROGRESS"},
			{Title: "Two", Category: "something_unknown", Status: "IN_PROGRESS"},
		},
	}})
	require.NoError(t, err)

	st := store.snapshot()
	require.Len(t, st.projects, 2)
	assert.Equal(t, project.CategoryDevelopment, st.projects[0].Category)
	assert.Equal(t, project.CategoryOther, st.projects[1].Category)

	warnings := logs.FilterMessage("Unrecognized enum value, using fallback").FilterField(zap.String("raw", "something_unknown"))
	assert.Equal(t, 1, warnings.Len())
}

func TestGeneratePortfolio_Unauthorized(t *testing.T) {
	inputs := []GeneratePortfolioInput{
		{},
		fullInput(),
		{User: PortfolioUserInput{Profile: ProfileInput{FullName: "A B"}}},
	}
	for _, in := range inputs {
		store := newMemStore()
		uc, _, pub := newMaterializer(store)

		out, err := uc.Execute(context.Background(), in)

		assert.Nil(t, out)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
		assert.Zero(t, store.txs, "no transaction may start without a session")
		assert.Empty(t, pub.events)
	}
}

func TestGeneratePortfolio_RequiresFullName(t *testing.T) {
	owner := uuid.New()
	store := newMemStore(owner)
	uc, _, _ := newMaterializer(store)

	_, err := uc.Execute(auth.WithOwnerID(context.Background(), owner), GeneratePortfolioInput{User: PortfolioUserInput{
		Profile: ProfileInput{FullName: "   "},
	}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Zero(t, store.txs)
}

func TestGeneratePortfolio_RollsBackOnFailure(t *testing.T) {
	for _, op := range []string{"CreateAchievements", "CreateTestimonials", "CreateSkill", "CreateProject"} {
		t.Run(op, func(t *testing.T) {
			owner := uuid.New()
			store := newMemStore(owner)
			store.failOn = op
			uc, _, pub := newMaterializer(store)

			out, err := uc.Execute(auth.WithOwnerID(context.Background(), owner), fullInput())

			assert.Nil(t, out)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrInternal))
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, msgPortfolioFailed, appErr.Message)
			assert.ErrorIs(t, appErr.Cause(), errForced)

			st := store.snapshot()
			assert.Nil(t, st.users[owner].Name)
			assert.Empty(t, st.profiles)
			assert.Empty(t, st.languages)
			assert.Empty(t, st.skills)
			assert.Empty(t, st.projects)
			assert.Empty(t, st.experiences)
			assert.Empty(t, st.educations)
			assert.Empty(t, st.achievements)
			assert.Empty(t, st.testimonials)
			assert.Empty(t, pub.events)
		})
	}
}

func TestGeneratePortfolio_SkillCatalogIsIdempotent(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	store := newMemStore(owner, other)
	uc, _, _ := newMaterializer(store)

	in := GeneratePortfolioInput{User: PortfolioUserInput{
		Profile:   ProfileInput{FullName: "A B"},
		Skills:    []SkillInput{{Name: "React", Category: "framework"}, {Name: "React", Category: "FRAMEWORK"}},
		Languages: []LanguageInput{{Name: "English", Level: "native"}},
	}}

	_, err := uc.Execute(auth.WithOwnerID(context.Background(), owner), in)
	require.NoError(t, err)
	out, err := uc.Execute(auth.WithOwnerID(context.Background(), owner), in)
	require.NoError(t, err)
	_, err = uc.Execute(auth.WithOwnerID(context.Background(), other), in)
	require.NoError(t, err)

	st := store.snapshot()
	require.Len(t, st.skills, 1)
	assert.Len(t, st.userSkills, 2)
	assert.Len(t, st.profiles, 2)
	// The repeated language for the same profile is skipped, not duplicated.
	assert.Len(t, st.languages, 2)
	assert.Equal(t, 0, out.Summary.LanguagesCount)
	assert.Equal(t, 1, out.Summary.SkillsCount)
}

func TestGeneratePortfolio_SocialsRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want string
	}{
		{"object", map[string]any{"github": "https://github.com/ada"}, `{"github":"https://github.com/ada"}`},
		{"json string", `{"linkedin":"https://linkedin.com/in/ada"}`, `{"linkedin":"https://linkedin.com/in/ada"}`},
		{"json array string", `["https://a.dev","https://b.dev"]`, `["https://a.dev","https://b.dev"]`},
		{"plain string", "@ada on most sites", `"@ada on most sites"`},
		{"broken json string", `{"github":`, `"{\"github\":"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			owner := uuid.New()
			store := newMemStore(owner)
			uc, _, _ := newMaterializer(store)

			_, err := uc.Execute(auth.WithOwnerID(context.Background(), owner), GeneratePortfolioInput{User: PortfolioUserInput{
				Profile: ProfileInput{FullName: "A B", Socials: tc.raw},
			}})
			require.NoError(t, err)

			stored := store.snapshot().profiles[owner].Socials
			require.NotNil(t, stored)
			encoded, err := json.Marshal(stored)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(encoded))
		})
	}
}

func TestGeneratePortfolio_PartialProfileUpdateKeepsAbsentFields(t *testing.T) {
	owner := uuid.New()
	store := newMemStore(owner)
	uc, _, _ := newMaterializer(store)
	ctx := auth.WithOwnerID(context.Background(), owner)

	_, err := uc.Execute(ctx, GeneratePortfolioInput{User: PortfolioUserInput{
		Profile: ProfileInput{FullName: "A B", Title: "Engineer", Location: "Hanoi"},
	}})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, GeneratePortfolioInput{User: PortfolioUserInput{
		Profile: ProfileInput{FullName: "A B C", Title: "Staff Engineer"},
	}})
	require.NoError(t, err)

	p := store.snapshot().profiles[owner]
	assert.Equal(t, "A B C", p.FullName)
	require.NotNil(t, p.Title)
	assert.Equal(t, "Staff Engineer", *p.Title)
	require.NotNil(t, p.Location)
	assert.Equal(t, "Hanoi", *p.Location)
}

func TestGeneratePortfolio_UnparseableDateIsDropped(t *testing.T) {
	owner := uuid.New()
	store := newMemStore(owner)
	uc, logs, _ := newMaterializer(store)

	_, err := uc.Execute(auth.WithOwnerID(context.Background(), owner), GeneratePortfolioInput{User: PortfolioUserInput{
		Profile:      ProfileInput{FullName: "A B"},
		Achievements: []AchievementInput{{Title: "Award", Date: "sometime last spring"}},
	}})
	require.NoError(t, err)

	st := store.snapshot()
	require.Len(t, st.achievements, 1)
	assert.Nil(t, st.achievements[0].Date)
	assert.Equal(t, 1, logs.FilterMessage("Unparseable date dropped").Len())
}

func TestGeneratePortfolio_OutOfRangeRatingKeepsTestimonial(t *testing.T) {
	owner := uuid.New()
	store := newMemStore(owner)
	uc, logs, _ := newMaterializer(store)
	huge := 1e10

	out, err := uc.Execute(auth.WithOwnerID(context.Background(), owner), GeneratePortfolioInput{User: PortfolioUserInput{
		Profile:      ProfileInput{FullName: "A B"},
		Testimonials: []TestimonialInput{{FromName: "Bob", Message: "Great", Rating: &huge}},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Summary.TestimonialsCount)

	st := store.snapshot()
	require.Len(t, st.testimonials, 1)
	assert.Nil(t, st.testimonials[0].Rating)
	assert.Equal(t, 1, logs.FilterMessage("Out of range rating dropped").Len())
}

func TestGeneratePortfolio_NilPublisher(t *testing.T) {
	owner := uuid.New()
	store := newMemStore(owner)
	uc := NewGeneratePortfolioUseCase(store, nil, logger.NewNopLogger())

	out, err := uc.Execute(auth.WithOwnerID(context.Background(), owner), fullInput())
	require.NoError(t, err)
	assert.True(t, out.Success)
}
