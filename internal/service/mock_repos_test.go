package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/eeuunnjjiinn/planner/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id 或 "email:<email>"
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	m.users["email:"+user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := m.users["email:"+email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events map[string]*model.Event
	nextID int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		m.nextID++
		event.EventID = fmt.Sprintf("event-%d", m.nextID)
	}
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) ListByDateRange(_ context.Context, userID, startKey, endKey string) ([]model.Event, error) {
	var result []model.Event
	for _, e := range m.events {
		if e.UserID != userID {
			continue
		}
		if e.DateKey >= startKey && e.DateKey <= endKey {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	delete(m.events, id)
	return nil
}

// ── Mock TodoRepository ──

type mockTodoRepo struct {
	todos  map[string]*model.Todo
	nextID int
}

func newMockTodoRepo() *mockTodoRepo {
	return &mockTodoRepo{todos: make(map[string]*model.Todo)}
}

func (m *mockTodoRepo) Create(_ context.Context, todo *model.Todo) error {
	if todo.TodoID == "" {
		m.nextID++
		todo.TodoID = fmt.Sprintf("todo-%d", m.nextID)
	}
	m.todos[todo.TodoID] = todo
	return nil
}

func (m *mockTodoRepo) GetByID(_ context.Context, id string) (*model.Todo, error) {
	if t, ok := m.todos[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTodoRepo) ListByDate(_ context.Context, userID, dateKey string) ([]model.Todo, error) {
	var result []model.Todo
	for _, t := range m.todos {
		if t.UserID == userID && t.DateKey == dateKey {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTodoRepo) UpdateDone(_ context.Context, id string, done bool) error {
	t, ok := m.todos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Done = done
	return nil
}

func (m *mockTodoRepo) Delete(_ context.Context, id string) error {
	delete(m.todos, id)
	return nil
}

// ── Mock AssessmentRepository ──

type mockAssessmentRepo struct {
	items  map[string]*model.Assessment
	nextID int
}

func newMockAssessmentRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{items: make(map[string]*model.Assessment)}
}

func (m *mockAssessmentRepo) Create(_ context.Context, a *model.Assessment) error {
	if a.AssessmentID == "" {
		m.nextID++
		a.AssessmentID = fmt.Sprintf("assessment-%d", m.nextID)
	}
	m.items[a.AssessmentID] = a
	return nil
}

func (m *mockAssessmentRepo) GetByID(_ context.Context, id string) (*model.Assessment, error) {
	if a, ok := m.items[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssessmentRepo) ListByDateRange(_ context.Context, userID, startKey, endKey string) ([]model.Assessment, error) {
	var result []model.Assessment
	for _, a := range m.items {
		if a.UserID != userID {
			continue
		}
		if a.DateKey >= startKey && a.DateKey <= endKey {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssessmentRepo) Update(_ context.Context, a *model.Assessment) error {
	m.items[a.AssessmentID] = a
	return nil
}

func (m *mockAssessmentRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
	nextID   int
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, s *model.Subject) error {
	if s.SubjectID == "" {
		m.nextID++
		s.SubjectID = fmt.Sprintf("subject-%d", m.nextID)
	}
	m.subjects[s.SubjectID] = s
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context, userID string) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, s *model.Subject) error {
	m.subjects[s.SubjectID] = s
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string) error {
	delete(m.subjects, id)
	return nil
}
