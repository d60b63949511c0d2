package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/domain/skill"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const sampleContent = `{
  "user": {
    "name": "Ada Lovelace",
    "email": "ada@example.com",
    "profile": {"fullName": "Ada Lovelace", "title": "Engineer", "socials": {"github": "https://github.com/ada"}},
    "languages": [{"name": "English", "level": "NATIVE"}],
    "skills": [{"name": "Go", "type": "LANGUAGE"}, {"name": "Kafka", "type": "TOOL"}],
    "projects": [{"title": "Engine", "category": "DEVELOPMENT", "status": "COMPLETED", "technologies": ["Go", "Kafka", "Redis"]}],
    "experiences": [{"jobTitle": "Engineer", "company": "Acme", "startDate": "2020-01", "endDate": "Present"}],
    "educations": [],
    "testimonials": [{"fromName": "Bob", "message": "Great", "rating": 5}],
    "achievements": null
  }
}`

func TestGenerateContent_ParsesModelOutput(t *testing.T) {
	llm := &fakeLLM{response: sampleContent}
	uc := NewGenerateContentUseCase(llm, logger.NewNopLogger())

	content, err := uc.Execute(auth.WithOwnerID(context.Background(), uuid.New()), GenerateContentInput{ResumeText: "Ada Lovelace, Engineer"})
	require.NoError(t, err)

	assert.Equal(t, 1, llm.calls)
	assert.Contains(t, llm.last.Prompt, "Ada Lovelace, Engineer")
	assert.Equal(t, resumeInstruction, llm.last.Instruction)
	require.NotNil(t, llm.last.Schema)
	assert.Equal(t, []string{"user"}, llm.last.Schema.Required)

	assert.Equal(t, "Ada Lovelace", content.User.Profile.FullName)
	require.Len(t, content.User.Skills, 2)
	assert.Equal(t, "TOOL", content.User.Skills[1].Type)
	require.Len(t, content.User.Experiences, 1)
	assert.Equal(t, "Engineer", content.User.Experiences[0].JobTitle)
	require.NotNil(t, content.User.Profile.Socials)
	assert.Equal(t, "https://github.com/ada", content.User.Profile.Socials.Github)
}

func TestGenerateContent_StripsCodeFence(t *testing.T) {
	llm := &fakeLLM{response: "```json\n" + sampleContent + "\n```"}
	uc := NewGenerateContentUseCase(llm, logger.NewNopLogger())

	content, err := uc.Execute(auth.WithOwnerID(context.Background(), uuid.New()), GenerateContentInput{ResumeText: "cv"})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", content.User.Name)
}

func TestGenerateContent_Failures(t *testing.T) {
	cases := []struct {
		name string
		llm  *fakeLLM
	}{
		{"provider error", &fakeLLM{err: errors.New("503 from provider")}},
		{"invalid json", &fakeLLM{response: "Sure! Here is your portfolio:"}},
		{"truncated json", &fakeLLM{response: `{"user": {"name": "Ada"`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewGenerateContentUseCase(tc.llm, logger.NewNopLogger())

			content, err := uc.Execute(auth.WithOwnerID(context.Background(), uuid.New()), GenerateContentInput{ResumeText: "cv"})

			assert.Nil(t, content)
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, msgContentFailed, appErr.Message)
			assert.True(t, errors.Is(err, apperror.ErrInternal))
			assert.Equal(t, 1, tc.llm.calls, "no retry")
		})
	}
}

func TestGenerateContent_Unauthorized(t *testing.T) {
	llm := &fakeLLM{response: sampleContent}
	uc := NewGenerateContentUseCase(llm, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), GenerateContentInput{ResumeText: "cv"})

	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
	assert.Zero(t, llm.calls)
}

func TestResumeSchema_DeclaresEnums(t *testing.T) {
	user := ResumeSchema().Properties["user"]
	require.NotNil(t, user)

	skillType := user.Properties["skills"].Items.Properties["type"]
	assert.Equal(t, service.TypeString, skillType.Type)
	assert.Equal(t, skill.Categories.Strings(), skillType.Enum)

	level := user.Properties["languages"].Items.Properties["level"]
	assert.Contains(t, level.Enum, "NATIVE")

	status := user.Properties["projects"].Items.Properties["status"]
	assert.Contains(t, status.Enum, "IN_PROGRESS")

	eduType := user.Properties["educations"].Items.Properties["type"]
	assert.Contains(t, eduType.Enum, "SELF_TAUGHT")

	assert.True(t, user.Properties["profile"].Properties["socials"].Nullable)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("  {\"a\":1}  "))
}
