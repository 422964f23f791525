package schedules

import (
	"context"
	"flexera-service/internal/app/models"
	"flexera-service/internal/pkg/constvars"
	"flexera-service/internal/pkg/dto/requests"
	"flexera-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) FindByPractitionerAndDate(ctx context.Context, practitionerID, date string) (*models.PractitionerSchedule, error) {
	args := m.Called(ctx, practitionerID, date)
	schedule, _ := args.Get(0).(*models.PractitionerSchedule)
	return schedule, args.Error(1)
}

func (m *MockScheduleRepository) FindByPractitioner(ctx context.Context, practitionerID string) ([]models.PractitionerSchedule, error) {
	args := m.Called(ctx, practitionerID)
	schedules, _ := args.Get(0).([]models.PractitionerSchedule)
	return schedules, args.Error(1)
}

func (m *MockScheduleRepository) FindByDate(ctx context.Context, date string) ([]models.PractitionerSchedule, error) {
	args := m.Called(ctx, date)
	schedules, _ := args.Get(0).([]models.PractitionerSchedule)
	return schedules, args.Error(1)
}

func (m *MockScheduleRepository) FindByBookedPatient(ctx context.Context, patientID string) ([]models.PractitionerSchedule, error) {
	args := m.Called(ctx, patientID)
	schedules, _ := args.Get(0).([]models.PractitionerSchedule)
	return schedules, args.Error(1)
}

func (m *MockScheduleRepository) CreateSchedule(ctx context.Context, schedule *models.PractitionerSchedule) (*models.PractitionerSchedule, error) {
	args := m.Called(ctx, schedule)
	created, _ := args.Get(0).(*models.PractitionerSchedule)
	return created, args.Error(1)
}

func (m *MockScheduleRepository) AppendSlots(ctx context.Context, scheduleID string, slots []models.Slot) error {
	args := m.Called(ctx, scheduleID, slots)
	return args.Error(0)
}

func (m *MockScheduleRepository) RemoveOpenSlot(ctx context.Context, scheduleID, slotID string) (bool, error) {
	args := m.Called(ctx, scheduleID, slotID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) ReserveSlot(ctx context.Context, practitionerID, date, slotID, patientID string, price float64, reservedAt time.Time) (bool, error) {
	args := m.Called(ctx, practitionerID, date, slotID, patientID, price, reservedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) AttachOrder(ctx context.Context, slotID, orderID string) (bool, error) {
	args := m.Called(ctx, slotID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) FindSlotByOrder(ctx context.Context, orderID string) (*models.PractitionerSchedule, *models.Slot, error) {
	args := m.Called(ctx, orderID)
	schedule, _ := args.Get(0).(*models.PractitionerSchedule)
	slot, _ := args.Get(1).(*models.Slot)
	return schedule, slot, args.Error(2)
}

func (m *MockScheduleRepository) BookSlotByOrder(ctx context.Context, orderID, transactionID string) (bool, error) {
	args := m.Called(ctx, orderID, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) ReleaseSlotByOrder(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) ReleaseSlotByID(ctx context.Context, slotID string) (bool, error) {
	args := m.Called(ctx, slotID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) ReleaseBookedSlot(ctx context.Context, scheduleID, slotID, patientID string) (bool, error) {
	args := m.Called(ctx, scheduleID, slotID, patientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func newTestScheduleUsecase(repo *MockScheduleRepository) *scheduleUsecase {
	return &scheduleUsecase{
		ScheduleRepository: repo,
		Log:                zap.NewNop(),
	}
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format(constvars.DateFormat)
}

func TestScheduleUsecase_AddSlots_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsMalformedDate", func(t *testing.T) {
		uc := newTestScheduleUsecase(new(MockScheduleRepository))
		_, err := uc.AddSlots(ctx, "prac-1", &requests.AddSchedule{
			Date:      "07-12-2025",
			TimeSlots: []requests.TimeSlotInput{{From: "10:00", To: "10:30"}},
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		assert.Equal(t, constvars.ErrDevInvalidDateFormat, customErr.DevMessage)
	})

	t.Run("RejectsPastDate", func(t *testing.T) {
		uc := newTestScheduleUsecase(new(MockScheduleRepository))
		_, err := uc.AddSlots(ctx, "prac-1", &requests.AddSchedule{
			Date:      "2020-01-01",
			TimeSlots: []requests.TimeSlotInput{{From: "10:00", To: "10:30"}},
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrDevDateInPast, customErr.DevMessage)
	})

	t.Run("RejectsBadClockTime", func(t *testing.T) {
		uc := newTestScheduleUsecase(new(MockScheduleRepository))
		_, err := uc.AddSlots(ctx, "prac-1", &requests.AddSchedule{
			Date:      futureDate(),
			TimeSlots: []requests.TimeSlotInput{{From: "25:00", To: "26:00"}},
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrDevInvalidTimeFormat, customErr.DevMessage)
	})

	t.Run("RejectsEndNotAfterStart", func(t *testing.T) {
		uc := newTestScheduleUsecase(new(MockScheduleRepository))
		_, err := uc.AddSlots(ctx, "prac-1", &requests.AddSchedule{
			Date:      futureDate(),
			TimeSlots: []requests.TimeSlotInput{{From: "10:30", To: "10:30"}},
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrDevSlotEndNotAfterStart, customErr.DevMessage)
	})

	t.Run("RejectsDuplicateWithinRequest", func(t *testing.T) {
		uc := newTestScheduleUsecase(new(MockScheduleRepository))
		_, err := uc.AddSlots(ctx, "prac-1", &requests.AddSchedule{
			Date: futureDate(),
			TimeSlots: []requests.TimeSlotInput{
				{From: "10:00", To: "10:30"},
				{From: "10:00", To: "10:30"},
			},
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrDevDuplicateSlotInRequest, customErr.DevMessage)
	})

	t.Run("RejectsOverlapWithinRequest", func(t *testing.T) {
		uc := newTestScheduleUsecase(new(MockScheduleRepository))
		_, err := uc.AddSlots(ctx, "prac-1", &requests.AddSchedule{
			Date: futureDate(),
			TimeSlots: []requests.TimeSlotInput{
				{From: "10:00", To: "11:00"},
				{From: "10:30", To: "11:30"},
			},
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrDevOverlappingSlot, customErr.DevMessage)
	})

	t.Run("RejectsOverlapWithStoredSlots", func(t *testing.T) {
		repo := new(MockScheduleRepository)
		date := futureDate()
		repo.On("FindByPractitionerAndDate", mock.Anything, "prac-1", date).Return(&models.PractitionerSchedule{
			ID:             primitive.NewObjectID(),
			PractitionerID: "prac-1",
			Date:           date,
			TimeSlots: []models.Slot{
				{ID: "s1", From: "10:00", To: "10:30", Status: models.SlotStatusOpen},
			},
		}, nil)

		uc := newTestScheduleUsecase(repo)
		_, err := uc.AddSlots(ctx, "prac-1", &requests.AddSchedule{
			Date:      date,
			TimeSlots: []requests.TimeSlotInput{{From: "10:15", To: "10:45"}},
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrDevOverlappingSlot, customErr.DevMessage)
		repo.AssertNotCalled(t, "AppendSlots", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestScheduleUsecase_AddSlots_Persists(t *testing.T) {
	ctx := context.Background()
	date := futureDate()

	t.Run("CreatesNewScheduleDocument", func(t *testing.T) {
		repo := new(MockScheduleRepository)
		repo.On("FindByPractitionerAndDate", mock.Anything, "prac-1", date).Return(nil, nil)
		repo.On("CreateSchedule", mock.Anything, mock.AnythingOfType("*models.PractitionerSchedule")).
			Return(&models.PractitionerSchedule{PractitionerID: "prac-1", Date: date}, nil)

		uc := newTestScheduleUsecase(repo)
		schedule, err := uc.AddSlots(ctx, "prac-1", &requests.AddSchedule{
			Date: date,
			TimeSlots: []requests.TimeSlotInput{
				{From: "09:00", To: "09:30"},
				{From: "09:30", To: "10:00"},
			},
		})

		assert.NoError(t, err)
		assert.NotNil(t, schedule)
		repo.AssertExpectations(t)
	})

	t.Run("AppendsToExistingSchedule", func(t *testing.T) {
		repo := new(MockScheduleRepository)
		existing := &models.PractitionerSchedule{
			ID:             primitive.NewObjectID(),
			PractitionerID: "prac-1",
			Date:           date,
			TimeSlots: []models.Slot{
				{ID: "s1", From: "08:00", To: "08:30", Status: models.SlotStatusOpen},
			},
		}
		repo.On("FindByPractitionerAndDate", mock.Anything, "prac-1", date).Return(existing, nil)
		repo.On("AppendSlots", mock.Anything, existing.ID.Hex(), mock.AnythingOfType("[]models.Slot")).Return(nil)

		uc := newTestScheduleUsecase(repo)
		schedule, err := uc.AddSlots(ctx, "prac-1", &requests.AddSchedule{
			Date:      date,
			TimeSlots: []requests.TimeSlotInput{{From: "09:00", To: "09:30"}},
		})

		assert.NoError(t, err)
		assert.Len(t, schedule.TimeSlots, 2)
		repo.AssertExpectations(t)
	})

	t.Run("NewSlotsStartOpenWithGeneratedIDs", func(t *testing.T) {
		repo := new(MockScheduleRepository)
		repo.On("FindByPractitionerAndDate", mock.Anything, "prac-1", date).Return(nil, nil)

		var captured *models.PractitionerSchedule
		repo.On("CreateSchedule", mock.Anything, mock.AnythingOfType("*models.PractitionerSchedule")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*models.PractitionerSchedule)
			}).
			Return(&models.PractitionerSchedule{}, nil)

		uc := newTestScheduleUsecase(repo)
		_, err := uc.AddSlots(ctx, "prac-1", &requests.AddSchedule{
			Date:      date,
			TimeSlots: []requests.TimeSlotInput{{From: "09:00", To: "09:30"}},
		})

		assert.NoError(t, err)
		assert.Len(t, captured.TimeSlots, 1)
		assert.Equal(t, models.SlotStatusOpen, captured.TimeSlots[0].Status)
		assert.NotEmpty(t, captured.TimeSlots[0].ID)
	})
}

func TestScheduleUsecase_RemoveSlot(t *testing.T) {
	ctx := context.Background()
	scheduleID := primitive.NewObjectID()

	owned := []models.PractitionerSchedule{{ID: scheduleID, PractitionerID: "prac-1"}}

	t.Run("RemovesOpenSlot", func(t *testing.T) {
		repo := new(MockScheduleRepository)
		repo.On("FindByPractitioner", mock.Anything, "prac-1").Return(owned, nil)
		repo.On("RemoveOpenSlot", mock.Anything, scheduleID.Hex(), "slot-1").Return(true, nil)

		uc := newTestScheduleUsecase(repo)
		assert.NoError(t, uc.RemoveSlot(ctx, "prac-1", scheduleID.Hex(), "slot-1"))
	})

	t.Run("RejectsForeignSchedule", func(t *testing.T) {
		repo := new(MockScheduleRepository)
		repo.On("FindByPractitioner", mock.Anything, "prac-2").Return(nil, nil)

		uc := newTestScheduleUsecase(repo)
		err := uc.RemoveSlot(ctx, "prac-2", scheduleID.Hex(), "slot-1")

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
		repo.AssertNotCalled(t, "RemoveOpenSlot", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RejectsNonOpenSlot", func(t *testing.T) {
		repo := new(MockScheduleRepository)
		repo.On("FindByPractitioner", mock.Anything, "prac-1").Return(owned, nil)
		repo.On("RemoveOpenSlot", mock.Anything, scheduleID.Hex(), "slot-1").Return(false, nil)

		uc := newTestScheduleUsecase(repo)
		err := uc.RemoveSlot(ctx, "prac-1", scheduleID.Hex(), "slot-1")

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}

func TestScheduleUsecase_ListAppointments(t *testing.T) {
	ctx := context.Background()
	scheduleID := primitive.NewObjectID()

	schedules := []models.PractitionerSchedule{{
		ID:             scheduleID,
		PractitionerID: "prac-1",
		Date:           "2025-12-07",
		TimeSlots: []models.Slot{
			{ID: "s1", From: "09:00", To: "09:30", Status: models.SlotStatusOpen},
			{ID: "s2", From: "10:00", To: "10:30", Status: models.SlotStatusBooked, BookedBy: "patient-1", Price: 300},
			{ID: "s3", From: "11:00", To: "11:30", Status: models.SlotStatusPendingPayment, BookedBy: "patient-2"},
		},
	}}

	t.Run("PatientSeesOnlyOwnBookedSlots", func(t *testing.T) {
		repo := new(MockScheduleRepository)
		repo.On("FindByBookedPatient", mock.Anything, "patient-1").Return(schedules, nil)

		uc := newTestScheduleUsecase(repo)
		appointments, err := uc.ListAppointmentsForPatient(ctx, "patient-1")

		assert.NoError(t, err)
		assert.Len(t, appointments, 1)
		assert.Equal(t, "s2", appointments[0].SlotID)
		assert.Equal(t, 300.0, appointments[0].Price)
	})

	t.Run("PractitionerSeesAllBookedSlots", func(t *testing.T) {
		repo := new(MockScheduleRepository)
		repo.On("FindByPractitioner", mock.Anything, "prac-1").Return(schedules, nil)

		uc := newTestScheduleUsecase(repo)
		appointments, err := uc.ListAppointmentsForPractitioner(ctx, "prac-1")

		assert.NoError(t, err)
		assert.Len(t, appointments, 1)
		assert.Equal(t, "patient-1", appointments[0].BookedBy)
	})
}
