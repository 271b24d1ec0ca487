package usecase

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"healthconnect/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// tick hands out strictly increasing timestamps so ordering by creation time
// is deterministic.
type tick struct {
	mu  sync.Mutex
	now time.Time
}

func (t *tick) next() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.now.IsZero() {
		t.now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	t.now = t.now.Add(time.Second)
	return t.now
}

// -----------------------------------------------------------------------------
// users

type mockUserRepo struct {
	mu    sync.Mutex
	clock tick
	users map[uuid.UUID]*entity.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *mockUserRepo) add(user entity.User) *entity.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := user
	r.users[user.ID] = &stored
	return &user
}

func (r *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = r.clock.next()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		found := *u
		return &found, nil
	}
	return nil, nil
}

func (r *mockUserRepo) FindActiveProfessionalByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, _ := r.FindByID(ctx, id)
	if u == nil || !u.IsActiveProfessional() {
		return nil, nil
	}
	return u, nil
}

func (r *mockUserRepo) FindActiveProfessionals(ctx context.Context) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.User
	for _, u := range r.users {
		if u.IsActiveProfessional() {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// -----------------------------------------------------------------------------
// appointments

type mockAppointmentRepo struct {
	mu           sync.Mutex
	clock        tick
	appointments map[uuid.UUID]*entity.Appointment

	// updateGate, when set, holds every UpdateStatus call until all expected
	// callers have arrived.
	updateGate *sync.WaitGroup
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func (r *mockAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment.ID = uuid.New()
	appointment.CreatedAt = r.clock.next()
	appointment.UpdatedAt = appointment.CreatedAt
	stored := *appointment
	stored.Patient, stored.Professional = nil, nil
	r.appointments[appointment.ID] = &stored
	return nil
}

func (r *mockAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.appointments[id]; ok {
		found := *a
		return &found, nil
	}
	return nil, nil
}

func (r *mockAppointmentRepo) Find(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Appointment
	for _, a := range r.appointments {
		if filter.ID != nil && a.ID != *filter.ID {
			continue
		}
		if filter.PatientID != nil && a.PatientID != *filter.PatientID {
			continue
		}
		if filter.ProfessionalID != nil && a.ProfessionalID != *filter.ProfessionalID {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *mockAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.AppointmentStatus) (int64, error) {
	if r.updateGate != nil {
		r.updateGate.Done()
		r.updateGate.Wait()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok || a.Status != expected {
		return 0, nil
	}
	a.Status = next
	a.UpdatedAt = r.clock.next()
	return 1, nil
}

func (r *mockAppointmentRepo) setStatus(id uuid.UUID, status entity.AppointmentStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[id].Status = status
}

// -----------------------------------------------------------------------------
// audit logs

type mockAuditLogRepo struct {
	mu   sync.Mutex
	logs []entity.AuditLog
}

func (r *mockAuditLogRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = int64(len(r.logs) + 1)
	r.logs = append(r.logs, *log)
	return nil
}

func (r *mockAuditLogRepo) FindByEntity(ctx context.Context, entityName, entityID string) ([]entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.AuditLog
	for _, l := range r.logs {
		if l.EntityName == entityName && l.EntityID == entityID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *mockAuditLogRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.logs))
	for i, l := range r.logs {
		out[i] = l.Action
	}
	return out
}

// -----------------------------------------------------------------------------
// questions

type mockQuestionRepo struct {
	mu        sync.Mutex
	clock     tick
	questions map[uuid.UUID]*entity.Question
}

func newMockQuestionRepo() *mockQuestionRepo {
	return &mockQuestionRepo{questions: make(map[uuid.UUID]*entity.Question)}
}

func (r *mockQuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	question.ID = uuid.New()
	question.AskedAt = r.clock.next()
	stored := *question
	r.questions[question.ID] = &stored
	return nil
}

func (r *mockQuestionRepo) FindAll(ctx context.Context) ([]entity.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Question
	for _, q := range r.questions {
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AskedAt.After(out[j].AskedAt) })
	return out, nil
}

func (r *mockQuestionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q, ok := r.questions[id]; ok {
		found := *q
		return &found, nil
	}
	return nil, nil
}

func (r *mockQuestionRepo) Answer(ctx context.Context, id uuid.UUID, answer string, answeredBy uuid.UUID, answeredAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return 0, nil
	}
	q.Answer = answer
	q.AnsweredBy = &answeredBy
	q.AnsweredAt = &answeredAt
	return 1, nil
}

func (r *mockQuestionRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[id]; !ok {
		return 0, nil
	}
	delete(r.questions, id)
	return 1, nil
}

// -----------------------------------------------------------------------------
// stories

type mockStoryRepo struct {
	mu       sync.Mutex
	clock    tick
	stories  map[uuid.UUID]*entity.Story
	likes    map[uuid.UUID]map[uuid.UUID]bool
	comments map[uuid.UUID][]entity.StoryComment
}

func newMockStoryRepo() *mockStoryRepo {
	return &mockStoryRepo{
		stories:  make(map[uuid.UUID]*entity.Story),
		likes:    make(map[uuid.UUID]map[uuid.UUID]bool),
		comments: make(map[uuid.UUID][]entity.StoryComment),
	}
}

func (r *mockStoryRepo) Create(ctx context.Context, story *entity.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	story.ID = uuid.New()
	story.CreatedAt = r.clock.next()
	story.UpdatedAt = story.CreatedAt
	stored := *story
	r.stories[story.ID] = &stored
	return nil
}

func (r *mockStoryRepo) withCounts(s entity.Story) entity.Story {
	s.LikeCount = int64(len(r.likes[s.ID]))
	s.CommentCount = int64(len(r.comments[s.ID]))
	return s
}

func (r *mockStoryRepo) list(keep func(*entity.Story) bool) []entity.Story {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Story
	for _, s := range r.stories {
		if keep(s) {
			out = append(out, r.withCounts(*s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *mockStoryRepo) FindAll(ctx context.Context) ([]entity.Story, error) {
	return r.list(func(*entity.Story) bool { return true }), nil
}

func (r *mockStoryRepo) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]entity.Story, error) {
	return r.list(func(s *entity.Story) bool { return s.AuthorID == authorID }), nil
}

func (r *mockStoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[id]
	if !ok {
		return nil, nil
	}
	found := r.withCounts(*s)
	found.Comments = append([]entity.StoryComment(nil), r.comments[id]...)
	return &found, nil
}

func storyFKError() error {
	return &pgconn.PgError{Code: "23503", ConstraintName: "fk_story_likes_story"}
}

func (r *mockStoryRepo) ToggleLike(ctx context.Context, storyID, userID uuid.UUID) (bool, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stories[storyID]; !ok {
		return false, 0, storyFKError()
	}
	if r.likes[storyID] == nil {
		r.likes[storyID] = make(map[uuid.UUID]bool)
	}
	liked := !r.likes[storyID][userID]
	if liked {
		r.likes[storyID][userID] = true
	} else {
		delete(r.likes[storyID], userID)
	}
	return liked, int64(len(r.likes[storyID])), nil
}

func (r *mockStoryRepo) AddComment(ctx context.Context, comment *entity.StoryComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stories[comment.StoryID]; !ok {
		return &pgconn.PgError{Code: "23503", ConstraintName: "fk_story_comments_story"}
	}
	comment.ID = uuid.New()
	comment.CreatedAt = r.clock.next()
	r.comments[comment.StoryID] = append(r.comments[comment.StoryID], *comment)
	return nil
}
