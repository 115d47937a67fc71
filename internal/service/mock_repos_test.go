package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tutorlane/booking_ledger/internal/model"
)

// In-memory stores mirroring the repository semantics, including the
// uniqueness rules the real store enforces with constraints.

// mock RoleStore

type mockRoleStore struct {
	mu     sync.Mutex
	nextID int64
	byCode map[string]*model.Role
}

func newMockRoleStore() *mockRoleStore {
	return &mockRoleStore{byCode: make(map[string]*model.Role)}
}

func (m *mockRoleStore) GetOrCreate(_ context.Context, name, code string) (*model.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if role, ok := m.byCode[code]; ok {
		return role, nil
	}
	m.nextID++
	role := &model.Role{ID: m.nextID, Name: name, Code: code, CreatedAt: time.Now()}
	m.byCode[code] = role
	return role, nil
}

func (m *mockRoleStore) GetByCode(_ context.Context, code string) (*model.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if role, ok := m.byCode[code]; ok {
		return role, nil
	}
	return nil, nil
}

func (m *mockRoleStore) List(_ context.Context) ([]*model.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var roles []*model.Role
	for _, role := range m.byCode {
		roles = append(roles, role)
	}
	return roles, nil
}

// mock UserStore

type mockUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
	roles  *mockRoleStore
}

func newMockUserStore(roles *mockRoleStore) *mockUserStore {
	return &mockUserStore{users: make(map[int64]*model.User), roles: roles}
}

func (m *mockUserStore) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, nil
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (m *mockUserStore) UpdateRole(_ context.Context, userID, roleID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("user %d: %w", userID, model.ErrNotFound)
	}

	m.roles.mu.Lock()
	defer m.roles.mu.Unlock()
	for _, role := range m.roles.byCode {
		if role.ID == roleID {
			user.RoleID = &role.ID
			user.Role = role
			now := time.Now()
			user.UpdatedAt = &now
			return nil
		}
	}
	return fmt.Errorf("role %d: %w", roleID, model.ErrNotFound)
}

func (m *mockUserStore) UpdateBio(_ context.Context, userID int64, bio string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("user %d: %w", userID, model.ErrNotFound)
	}
	user.Bio = bio
	return nil
}

func (m *mockUserStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, model.ErrNotFound)
	}
	delete(m.users, id)
	return nil
}

// mock SlotStore

type mockSlotStore struct {
	mu     sync.Mutex
	nextID int64
	slots  map[int64]*model.Slot
}

func newMockSlotStore() *mockSlotStore {
	return &mockSlotStore{slots: make(map[int64]*model.Slot)}
}

func (m *mockSlotStore) Create(_ context.Context, slot *model.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	slot.ID = m.nextID
	slot.CreatedAt = time.Now()
	m.slots[slot.ID] = slot
	return nil
}

func (m *mockSlotStore) CreateBatch(ctx context.Context, slots []*model.Slot) error {
	for _, slot := range slots {
		if err := m.Create(ctx, slot); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockSlotStore) GetByID(_ context.Context, id int64) (*model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slot, ok := m.slots[id]; ok {
		return slot, nil
	}
	return nil, nil
}

func (m *mockSlotStore) Update(_ context.Context, slot *model.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[slot.ID]; !ok {
		return fmt.Errorf("slot %d: %w", slot.ID, model.ErrNotFound)
	}
	now := time.Now()
	slot.UpdatedAt = &now
	m.slots[slot.ID] = slot
	return nil
}

func (m *mockSlotStore) Deactivate(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot, ok := m.slots[id]
	if !ok {
		return fmt.Errorf("slot %d: %w", id, model.ErrNotFound)
	}
	slot.IsActive = false
	return nil
}

func (m *mockSlotStore) GetByTeacherID(_ context.Context, teacherID int64) ([]*model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var slots []*model.Slot
	for _, slot := range m.slots {
		if slot.TeacherID == teacherID {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

// mock LessonStore

type mockLessonStore struct {
	mu      sync.Mutex
	nextID  int64
	lessons map[int64]*model.Lesson
}

func newMockLessonStore() *mockLessonStore {
	return &mockLessonStore{lessons: make(map[int64]*model.Lesson)}
}

func (m *mockLessonStore) add(slotID, teacherID, studentID int64) *model.Lesson {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	lesson := &model.Lesson{
		ID:          m.nextID,
		SlotID:      slotID,
		TeacherID:   teacherID,
		StudentID:   studentID,
		ConfirmedAt: time.Now(),
	}
	m.lessons[lesson.ID] = lesson
	return lesson
}

func (m *mockLessonStore) GetByID(_ context.Context, id int64) (*model.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lesson, ok := m.lessons[id]; ok {
		return lesson, nil
	}
	return nil, nil
}

func (m *mockLessonStore) GetBySlotID(_ context.Context, slotID int64) (*model.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, lesson := range m.lessons {
		if lesson.SlotID == slotID {
			return lesson, nil
		}
	}
	return nil, nil
}

func (m *mockLessonStore) GetByStudentID(_ context.Context, studentID int64) ([]*model.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var lessons []*model.Lesson
	for _, lesson := range m.lessons {
		if lesson.StudentID == studentID {
			lessons = append(lessons, lesson)
		}
	}
	return lessons, nil
}

func (m *mockLessonStore) GetByTeacherID(_ context.Context, teacherID int64) ([]*model.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var lessons []*model.Lesson
	for _, lesson := range m.lessons {
		if lesson.TeacherID == teacherID {
			lessons = append(lessons, lesson)
		}
	}
	return lessons, nil
}

func (m *mockLessonStore) CountBySlotID(_ context.Context, slotID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, lesson := range m.lessons {
		if lesson.SlotID == slotID {
			count++
		}
	}
	return count, nil
}

// mock RequestStore

type mockRequestStore struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*model.Request
	slots    *mockSlotStore
	lessons  *mockLessonStore
}

func newMockRequestStore(slots *mockSlotStore, lessons *mockLessonStore) *mockRequestStore {
	return &mockRequestStore{
		requests: make(map[int64]*model.Request),
		slots:    slots,
		lessons:  lessons,
	}
}

func (m *mockRequestStore) Create(_ context.Context, request *model.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.requests {
		if existing.SlotID == request.SlotID && existing.StudentID == request.StudentID {
			return model.ErrDuplicateRequest
		}
	}
	m.nextID++
	request.ID = m.nextID
	request.CreatedAt = time.Now()
	m.requests[request.ID] = request
	return nil
}

func (m *mockRequestStore) GetByID(_ context.Context, id int64) (*model.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if request, ok := m.requests[id]; ok {
		return request, nil
	}
	return nil, nil
}

func (m *mockRequestStore) GetBySlotID(_ context.Context, slotID int64) ([]*model.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var requests []*model.Request
	for _, request := range m.requests {
		if request.SlotID == slotID {
			requests = append(requests, request)
		}
	}
	return requests, nil
}

func (m *mockRequestStore) GetByStudentID(_ context.Context, studentID int64) ([]*model.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var requests []*model.Request
	for _, request := range m.requests {
		if request.StudentID == studentID {
			requests = append(requests, request)
		}
	}
	return requests, nil
}

// Accept mirrors the repository transaction: the store mutex stands in for
// the slot row lock, so concurrent accepts for one slot serialize here too.
func (m *mockRequestStore) Accept(ctx context.Context, requestID int64) (*model.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.requests[requestID]
	if !ok {
		return nil, fmt.Errorf("request %d: %w", requestID, model.ErrNotFound)
	}

	slot, err := m.slots.GetByID(ctx, request.SlotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %d: %w", request.SlotID, model.ErrNotFound)
	}

	if request.Status != model.RequestStatusPending {
		return nil, model.ErrInvalidTransition
	}

	count, err := m.lessons.CountBySlotID(ctx, slot.ID)
	if err != nil {
		return nil, err
	}
	if count >= slot.MaxStudents {
		return nil, model.ErrSlotFull
	}

	request.Status = model.RequestStatusAccepted
	now := time.Now()
	request.UpdatedAt = &now

	return m.lessons.add(slot.ID, slot.TeacherID, request.StudentID), nil
}

func (m *mockRequestStore) Reject(_ context.Context, requestID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.requests[requestID]
	if !ok {
		return fmt.Errorf("request %d: %w", requestID, model.ErrNotFound)
	}
	if request.Status != model.RequestStatusPending {
		return model.ErrInvalidTransition
	}

	request.Status = model.RequestStatusRejected
	now := time.Now()
	request.UpdatedAt = &now
	return nil
}

// mock ReviewStore

type mockReviewStore struct {
	mu       sync.Mutex
	nextID   int64
	byLesson map[int64]*model.Review
}

func newMockReviewStore() *mockReviewStore {
	return &mockReviewStore{byLesson: make(map[int64]*model.Review)}
}

func (m *mockReviewStore) Create(_ context.Context, review *model.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byLesson[review.LessonID]; ok {
		return model.ErrDuplicateReview
	}
	m.nextID++
	review.ID = m.nextID
	review.CreatedAt = time.Now()
	m.byLesson[review.LessonID] = review
	return nil
}

func (m *mockReviewStore) GetByLessonID(_ context.Context, lessonID int64) (*model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if review, ok := m.byLesson[lessonID]; ok {
		return review, nil
	}
	return nil, nil
}

func (m *mockReviewStore) GetByTeacherID(_ context.Context, teacherID int64) ([]*model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var reviews []*model.Review
	for _, review := range m.byLesson {
		if review.TeacherID == teacherID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

// mock NotificationStore

type mockNotificationStore struct {
	mu            sync.Mutex
	nextID        int64
	notifications map[int64]*model.Notification
}

func newMockNotificationStore() *mockNotificationStore {
	return &mockNotificationStore{notifications: make(map[int64]*model.Notification)}
}

func (m *mockNotificationStore) Create(_ context.Context, notification *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	notification.ID = m.nextID
	notification.IsRead = false
	notification.CreatedAt = time.Now()
	m.notifications[notification.ID] = notification
	return nil
}

func (m *mockNotificationStore) MarkRead(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	notification, ok := m.notifications[id]
	if !ok {
		return fmt.Errorf("notification %d: %w", id, model.ErrNotFound)
	}
	notification.IsRead = true
	return nil
}

func (m *mockNotificationStore) GetByUserID(_ context.Context, userID int64) ([]*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var notifications []*model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	return notifications, nil
}

func (m *mockNotificationStore) GetUnreadByUserID(_ context.Context, userID int64) ([]*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var notifications []*model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			notifications = append(notifications, n)
		}
	}
	return notifications, nil
}

// mock catalog stores

type mockLessonTypeStore struct {
	mu     sync.Mutex
	nextID int64
	types  map[int64]*model.LessonType
}

func newMockLessonTypeStore() *mockLessonTypeStore {
	return &mockLessonTypeStore{types: make(map[int64]*model.LessonType)}
}

func (m *mockLessonTypeStore) Create(_ context.Context, lt *model.LessonType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	lt.ID = m.nextID
	m.types[lt.ID] = lt
	return nil
}

func (m *mockLessonTypeStore) GetByID(_ context.Context, id int64) (*model.LessonType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lt, ok := m.types[id]; ok {
		return lt, nil
	}
	return nil, nil
}

func (m *mockLessonTypeStore) List(_ context.Context) ([]*model.LessonType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var types []*model.LessonType
	for _, lt := range m.types {
		types = append(types, lt)
	}
	return types, nil
}

type mockSubjectCategoryStore struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]*model.SubjectCategory
	subjects   *mockSubjectStore
}

func newMockSubjectCategoryStore(subjects *mockSubjectStore) *mockSubjectCategoryStore {
	return &mockSubjectCategoryStore{categories: make(map[int64]*model.SubjectCategory), subjects: subjects}
}

func (m *mockSubjectCategoryStore) Create(_ context.Context, sc *model.SubjectCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	sc.ID = m.nextID
	m.categories[sc.ID] = sc
	return nil
}

func (m *mockSubjectCategoryStore) GetByID(_ context.Context, id int64) (*model.SubjectCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sc, ok := m.categories[id]; ok {
		return sc, nil
	}
	return nil, nil
}

func (m *mockSubjectCategoryStore) List(_ context.Context) ([]*model.SubjectCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var categories []*model.SubjectCategory
	for _, sc := range m.categories {
		categories = append(categories, sc)
	}
	return categories, nil
}

// Delete cascades to the category's subjects like the store does.
func (m *mockSubjectCategoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return fmt.Errorf("subject category %d: %w", id, model.ErrNotFound)
	}
	delete(m.categories, id)

	m.subjects.mu.Lock()
	defer m.subjects.mu.Unlock()
	for sid, subject := range m.subjects.subjects {
		if subject.CategoryID == id {
			delete(m.subjects.subjects, sid)
		}
	}
	return nil
}

type mockSubjectStore struct {
	mu       sync.Mutex
	nextID   int64
	subjects map[int64]*model.Subject
}

func newMockSubjectStore() *mockSubjectStore {
	return &mockSubjectStore{subjects: make(map[int64]*model.Subject)}
}

func (m *mockSubjectStore) Create(_ context.Context, subject *model.Subject) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	subject.ID = m.nextID
	m.subjects[subject.ID] = subject
	return nil
}

func (m *mockSubjectStore) GetByID(_ context.Context, id int64) (*model.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if subject, ok := m.subjects[id]; ok {
		return subject, nil
	}
	return nil, nil
}

func (m *mockSubjectStore) ListByCategory(_ context.Context, categoryID int64) ([]*model.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var subjects []*model.Subject
	for _, subject := range m.subjects {
		if subject.CategoryID == categoryID {
			subjects = append(subjects, subject)
		}
	}
	return subjects, nil
}
