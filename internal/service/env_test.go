package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tutorlane/booking_ledger/internal/model"
)

// testEnv wires every service over the in-memory stores, mirroring the
// wiring in cmd/ledger.
type testEnv struct {
	roleStore         *mockRoleStore
	userStore         *mockUserStore
	slotStore         *mockSlotStore
	lessonStore       *mockLessonStore
	requestStore      *mockRequestStore
	reviewStore       *mockReviewStore
	notificationStore *mockNotificationStore

	roles         *RoleService
	users         *UserService
	slots         *SlotService
	lessons       *LessonService
	requests      *RequestService
	reviews       *ReviewService
	notifications *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()

	roleStore := newMockRoleStore()
	userStore := newMockUserStore(roleStore)
	slotStore := newMockSlotStore()
	lessonStore := newMockLessonStore()
	requestStore := newMockRequestStore(slotStore, lessonStore)
	reviewStore := newMockReviewStore()
	notificationStore := newMockNotificationStore()

	roles := NewRoleService(roleStore, logger)
	require.NoError(t, roles.EnsureWellKnown(context.Background()))

	notifications := NewNotificationService(notificationStore, logger)

	return &testEnv{
		roleStore:         roleStore,
		userStore:         userStore,
		slotStore:         slotStore,
		lessonStore:       lessonStore,
		requestStore:      requestStore,
		reviewStore:       reviewStore,
		notificationStore: notificationStore,

		roles:         roles,
		users:         NewUserService(userStore, roles, logger),
		slots:         NewSlotService(slotStore, userStore, logger),
		lessons:       NewLessonService(lessonStore, logger),
		requests:      NewRequestService(requestStore, slotStore, notifications, logger),
		reviews:       NewReviewService(reviewStore, lessonStore, logger),
		notifications: notifications,
	}
}

func (e *testEnv) createTeacher(t *testing.T, username string) *model.User {
	t.Helper()
	ctx := context.Background()

	user, err := e.users.Register(ctx, username, "")
	require.NoError(t, err)
	require.NoError(t, e.users.SetRole(ctx, user.ID, model.RoleCodeTeacher))

	user, err = e.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	return user
}

func (e *testEnv) createStudent(t *testing.T, username string) *model.User {
	t.Helper()
	ctx := context.Background()

	user, err := e.users.Register(ctx, username, "")
	require.NoError(t, err)
	require.NoError(t, e.users.SetRole(ctx, user.ID, model.RoleCodeStudent))

	user, err = e.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	return user
}

// createSlot makes a one-hour slot for the teacher starting an hour from now.
func (e *testEnv) createSlot(t *testing.T, teacher *model.User, maxStudents int) *model.Slot {
	t.Helper()
	ctx := context.Background()

	catalog := e.createCatalog(t)
	start := time.Now().Add(time.Hour)

	slot, err := e.slots.Create(ctx, &model.Slot{
		TypeID:      catalog.lessonType.ID,
		SubjectID:   catalog.subject.ID,
		TeacherID:   teacher.ID,
		MaxStudents: maxStudents,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	})
	require.NoError(t, err)
	return slot
}

type testCatalog struct {
	lessonType *model.LessonType
	category   *model.SubjectCategory
	subject    *model.Subject
}

func (e *testEnv) createCatalog(t *testing.T) *testCatalog {
	t.Helper()

	// Catalog rows are plain reference data; the slot services only carry
	// their ids, so fixed fakes are enough here.
	return &testCatalog{
		lessonType: &model.LessonType{ID: 1, Name: "Online"},
		category:   &model.SubjectCategory{ID: 1, Name: "Science"},
		subject:    &model.Subject{ID: 1, Name: "Maths", CategoryID: 1},
	}
}
