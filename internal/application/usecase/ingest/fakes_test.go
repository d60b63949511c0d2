package ingest

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/domain/career"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/domain/profile"
	"github.com/khoahotran/portfolio-builder/internal/domain/project"
	"github.com/khoahotran/portfolio-builder/internal/domain/skill"
	"github.com/khoahotran/portfolio-builder/internal/domain/user"
)

var errForced = errors.New("forced failure")

type pair struct{ a, b uuid.UUID }

type memState struct {
	users        map[uuid.UUID]user.User
	profiles     map[uuid.UUID]profile.Profile
	languages    []profile.Language
	skills       []skill.Skill
	userSkills   map[pair]struct{}
	projects     []project.Project
	images       []project.Image
	projectTools map[pair]struct{}
	experiences  []career.Experience
	educations   []career.Education
	achievements []career.Achievement
	testimonials []career.Testimonial
}

func (s *memState) clone() *memState {
	c := &memState{
		users:        make(map[uuid.UUID]user.User, len(s.users)),
		profiles:     make(map[uuid.UUID]profile.Profile, len(s.profiles)),
		languages:    append([]profile.Language(nil), s.languages...),
		skills:       append([]skill.Skill(nil), s.skills...),
		userSkills:   make(map[pair]struct{}, len(s.userSkills)),
		projects:     append([]project.Project(nil), s.projects...),
		images:       append([]project.Image(nil), s.images...),
		projectTools: make(map[pair]struct{}, len(s.projectTools)),
		experiences:  append([]career.Experience(nil), s.experiences...),
		educations:   append([]career.Education(nil), s.educations...),
		achievements: append([]career.Achievement(nil), s.achievements...),
		testimonials: append([]career.Testimonial(nil), s.testimonials...),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	for k := range s.userSkills {
		c.userSkills[k] = struct{}{}
	}
	for k := range s.projectTools {
		c.projectTools[k] = struct{}{}
	}
	return c
}

// memStore commits a cloned working state only when fn succeeds.
type memStore struct {
	mu     sync.Mutex
	state  *memState
	failOn string
	txs    int
}

func newMemStore(owners ...uuid.UUID) *memStore {
	st := (&memState{}).clone()
	for _, id := range owners {
		st.users[id] = user.User{ID: id, Email: id.String() + "@example.com"}
	}
	return &memStore{state: st}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portfolio.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs++
	work := m.state.clone()
	if err := fn(ctx, &memTx{st: work, failOn: m.failOn}); err != nil {
		return err
	}
	m.state = work
	return nil
}

func (m *memStore) snapshot() *memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

type memTx struct {
	st     *memState
	failOn string
}

func (t *memTx) fail(op string) error {
	if t.failOn == op {
		return errForced
	}
	return nil
}

func (t *memTx) UpdateUser(_ context.Context, userID uuid.UUID, patch user.Patch) error {
	if err := t.fail("UpdateUser"); err != nil {
		return err
	}
	u, ok := t.st.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	if patch.Name != nil {
		u.Name = patch.Name
	}
	if patch.Bio != nil {
		u.Bio = patch.Bio
	}
	if patch.ProfileImage != nil {
		u.ProfileImage = patch.ProfileImage
	}
	t.st.users[userID] = u
	return nil
}

func (t *memTx) UpsertProfile(_ context.Context, userID uuid.UUID, patch profile.Patch) error {
	if err := t.fail("UpsertProfile"); err != nil {
		return err
	}
	p, ok := t.st.profiles[userID]
	if !ok {
		p = profile.Profile{ID: uuid.New(), UserID: userID}
	}
	p.FullName = patch.FullName
	set := func(dst **string, v *string) {
		if v != nil {
			*dst = v
		}
	}
	set(&p.Title, patch.Title)
	set(&p.Bio, patch.Bio)
	set(&p.Location, patch.Location)
	set(&p.Pronouns, patch.Pronouns)
	set(&p.FunFact, patch.FunFact)
	set(&p.Motto, patch.Motto)
	set(&p.Picture, patch.Picture)
	set(&p.Phone, patch.Phone)
	if patch.Socials != nil {
		p.Socials = patch.Socials
	}
	t.st.profiles[userID] = p
	return nil
}

func (t *memTx) FindProfileID(_ context.Context, userID uuid.UUID) (uuid.UUID, error) {
	return t.st.profiles[userID].ID, nil
}

func (t *memTx) CreateLanguages(_ context.Context, profileID uuid.UUID, languages []profile.Language) (int, error) {
	if err := t.fail("CreateLanguages"); err != nil {
		return 0, err
	}
	inserted := 0
next:
	for _, l := range languages {
		for _, existing := range t.st.languages {
			if existing.ProfileID == profileID && existing.Name == l.Name && existing.Level == l.Level {
				continue next
			}
		}
		l.ProfileID = profileID
		t.st.languages = append(t.st.languages, l)
		inserted++
	}
	return inserted, nil
}

func (t *memTx) FindSkill(_ context.Context, name string, category skill.Category) (*skill.Skill, error) {
	for _, s := range t.st.skills {
		if s.Name == name && s.Category == category {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

func (t *memTx) CreateSkill(_ context.Context, s *skill.Skill) error {
	if err := t.fail("CreateSkill"); err != nil {
		return err
	}
	for _, existing := range t.st.skills {
		if existing.Name == s.Name && existing.Category == s.Category {
			return errors.New("duplicate skill")
		}
	}
	t.st.skills = append(t.st.skills, *s)
	return nil
}

func (t *memTx) EnsureUserSkill(_ context.Context, userID, skillID uuid.UUID) error {
	t.st.userSkills[pair{userID, skillID}] = struct{}{}
	return nil
}

func (t *memTx) CreateProject(_ context.Context, p *project.Project) error {
	if err := t.fail("CreateProject"); err != nil {
		return err
	}
	t.st.projects = append(t.st.projects, *p)
	return nil
}

func (t *memTx) CreateImages(_ context.Context, _ uuid.UUID, images []project.Image) error {
	t.st.images = append(t.st.images, images...)
	return nil
}

func (t *memTx) CreateProjectTool(_ context.Context, projectID, skillID uuid.UUID) error {
	t.st.projectTools[pair{projectID, skillID}] = struct{}{}
	return nil
}

func (t *memTx) CreateExperiences(_ context.Context, items []career.Experience) error {
	if err := t.fail("CreateExperiences"); err != nil {
		return err
	}
	t.st.experiences = append(t.st.experiences, items...)
	return nil
}

func (t *memTx) CreateEducations(_ context.Context, items []career.Education) error {
	if err := t.fail("CreateEducations"); err != nil {
		return err
	}
	t.st.educations = append(t.st.educations, items...)
	return nil
}

func (t *memTx) CreateAchievements(_ context.Context, items []career.Achievement) error {
	if err := t.fail("CreateAchievements"); err != nil {
		return err
	}
	t.st.achievements = append(t.st.achievements, items...)
	return nil
}

func (t *memTx) CreateTestimonials(_ context.Context, items []career.Testimonial) error {
	if err := t.fail("CreateTestimonials"); err != nil {
		return err
	}
	t.st.testimonials = append(t.st.testimonials, items...)
	return nil
}

type fakeLLM struct {
	response string
	err      error
	calls    int
	last     service.StructuredRequest
}

func (f *fakeLLM) GenerateStructured(_ context.Context, req service.StructuredRequest) (string, error) {
	f.calls++
	f.last = req
	return f.response, f.err
}

type fakePublisher struct {
	events chan service.PortfolioEvent
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{events: make(chan service.PortfolioEvent, 8)}
}

func (f *fakePublisher) PublishPortfolioEvent(_ context.Context, e service.PortfolioEvent) error {
	f.events <- e
	return nil
}
