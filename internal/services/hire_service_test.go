package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/pkg/apperrors"
)

func dtoGuestHireRequest() dto.CreateGuestHireRequest {
	return dto.CreateGuestHireRequest{
		GuestName:  "Carlos",
		GuestEmail: "carlos@example.com",
		Message:    "Arreglo de cañería",
	}
}

const (
	testClientID   = "11111111-1111-1111-1111-111111111111"
	testProUserID  = "22222222-2222-2222-2222-222222222222"
	testProID      = "33333333-3333-3333-3333-333333333333"
	testHireID     = "44444444-4444-4444-4444-444444444444"
	testStrangerID = "55555555-5555-5555-5555-555555555555"
)

func testHire(status models.HireStatus) *models.Hire {
	clientID := testClientID
	return &models.Hire{
		BaseModel:      models.BaseModel{ID: testHireID},
		ClientID:       &clientID,
		ProfessionalID: testProID,
		Status:         status,
		Professional: models.Professional{
			BaseModel: models.BaseModel{ID: testProID},
			UserID:    testProUserID,
		},
	}
}

func newHireServiceForTest(hireRepo *mockHireRepo) *HireService {
	userRepo := &mockUserRepo{
		findByIDFn: func(id string) (*models.User, error) {
			return &models.User{BaseModel: models.BaseModel{ID: id}, Email: "user@test.local"}, nil
		},
	}
	notifService, _ := testNotificationService(userRepo)

	proRepo := &mockProfessionalRepo{
		findByIDFn: func(id string) (*models.Professional, error) {
			return &models.Professional{
				BaseModel: models.BaseModel{ID: testProID},
				UserID:    testProUserID,
			}, nil
		},
		findByUserIDFn: func(userID string) (*models.Professional, error) {
			if userID == testProUserID {
				return &models.Professional{
					BaseModel: models.BaseModel{ID: testProID},
					UserID:    testProUserID,
				}, nil
			}
			return nil, repositories.ErrProfessionalNotFound
		},
	}

	return NewHireService(hireRepo, proRepo, notifService, testCollector())
}

func TestRespondToProposal_Accept(t *testing.T) {
	var gotFrom, gotTo models.HireStatus
	var gotExtra map[string]interface{}

	repo := &mockHireRepo{
		findByIDFn: func(id string) (*models.Hire, error) {
			if gotTo != "" {
				// Перечитывание после перехода
				return testHire(gotTo), nil
			}
			return testHire(models.HireStatusPending), nil
		},
		updateStatusGuardedFn: func(hireID string, from, to models.HireStatus, extra map[string]interface{}) error {
			gotFrom, gotTo, gotExtra = from, to, extra
			return nil
		},
	}
	svc := newHireServiceForTest(repo)

	resp, err := svc.RespondToProposal(nil, testHireID, testProUserID, true)
	require.NoError(t, err)

	assert.Equal(t, models.HireStatusPending, gotFrom)
	assert.Equal(t, models.HireStatusInProgress, gotTo)
	assert.Contains(t, gotExtra, "started_at", "принятие должно фиксировать started_at")
	assert.Equal(t, string(models.HireStatusInProgress), resp.Status)
}

func TestRespondToProposal_Reject(t *testing.T) {
	var gotTo models.HireStatus

	repo := &mockHireRepo{
		findByIDFn: func(id string) (*models.Hire, error) {
			if gotTo != "" {
				return testHire(gotTo), nil
			}
			return testHire(models.HireStatusPending), nil
		},
		updateStatusGuardedFn: func(hireID string, from, to models.HireStatus, extra map[string]interface{}) error {
			gotTo = to
			return nil
		},
	}
	svc := newHireServiceForTest(repo)

	resp, err := svc.RespondToProposal(nil, testHireID, testProUserID, false)
	require.NoError(t, err)
	assert.Equal(t, string(models.HireStatusRejected), resp.Status)
}

func TestRespondToProposal_WrongCaller(t *testing.T) {
	repo := &mockHireRepo{
		findByIDFn: func(id string) (*models.Hire, error) {
			return testHire(models.HireStatusPending), nil
		},
	}
	svc := newHireServiceForTest(repo)

	_, err := svc.RespondToProposal(nil, testHireID, testStrangerID, true)
	assert.ErrorIs(t, err, apperrors.ErrHireAccessDenied)
}

func TestCompleteEngagement_FromTerminalStatus(t *testing.T) {
	repo := &mockHireRepo{
		findByIDFn: func(id string) (*models.Hire, error) {
			return testHire(models.HireStatusCompleted), nil
		},
	}
	svc := newHireServiceForTest(repo)

	_, err := svc.CompleteEngagement(nil, testHireID, testClientID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestCompleteEngagement_ConcurrentStatusChange(t *testing.T) {
	repo := &mockHireRepo{
		findByIDFn: func(id string) (*models.Hire, error) {
			return testHire(models.HireStatusWaitingClientApproval), nil
		},
		updateStatusGuardedFn: func(hireID string, from, to models.HireStatus, extra map[string]interface{}) error {
			// Статус успел измениться между чтением и записью
			return repositories.ErrHireStatusChanged
		},
	}
	svc := newHireServiceForTest(repo)

	_, err := svc.CompleteEngagement(nil, testHireID, testClientID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestDisputeCompletion_OnlyFromWaitingApproval(t *testing.T) {
	repo := &mockHireRepo{
		findByIDFn: func(id string) (*models.Hire, error) {
			return testHire(models.HireStatusInProgress), nil
		},
	}
	svc := newHireServiceForTest(repo)

	_, err := svc.DisputeCompletion(nil, testHireID, testClientID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidHireTransition)
}

func TestCancelEngagement_EitherParty(t *testing.T) {
	for _, caller := range []string{testClientID, testProUserID} {
		var gotTo models.HireStatus
		repo := &mockHireRepo{
			findByIDFn: func(id string) (*models.Hire, error) {
				if gotTo != "" {
					return testHire(gotTo), nil
				}
				return testHire(models.HireStatusInProgress), nil
			},
			updateStatusGuardedFn: func(hireID string, from, to models.HireStatus, extra map[string]interface{}) error {
				gotTo = to
				return nil
			},
		}
		svc := newHireServiceForTest(repo)

		resp, err := svc.CancelEngagement(nil, testHireID, caller)
		require.NoError(t, err, "caller %s", caller)
		assert.Equal(t, string(models.HireStatusCancelled), resp.Status)
	}
}

func TestCancelEngagement_StrangerDenied(t *testing.T) {
	repo := &mockHireRepo{
		findByIDFn: func(id string) (*models.Hire, error) {
			return testHire(models.HireStatusInProgress), nil
		},
	}
	svc := newHireServiceForTest(repo)

	_, err := svc.CancelEngagement(nil, testHireID, testStrangerID)
	assert.ErrorIs(t, err, apperrors.ErrHireAccessDenied)
}

func TestCreateGuestHire_GeneratesToken(t *testing.T) {
	var created *models.Hire
	repo := &mockHireRepo{
		createFn: func(hire *models.Hire) error {
			hire.ID = testHireID
			created = hire
			return nil
		},
	}
	svc := newHireServiceForTest(repo)

	resp, err := svc.CreateGuestHire(nil, testProUserID, dtoGuestHireRequest())
	require.NoError(t, err)

	require.NotNil(t, created)
	require.NotNil(t, created.ReviewToken)
	assert.Equal(t, *created.ReviewToken, resp.ReviewToken)
	assert.Equal(t, models.HireStatusInProgress, created.Status)
	assert.Nil(t, created.ClientID, "гостевая заявка не привязана к аккаунту")
	assert.False(t, created.ReviewedByGuest)
}

func TestCreateGuestHire_ClientsDenied(t *testing.T) {
	svc := newHireServiceForTest(&mockHireRepo{})

	_, err := svc.CreateGuestHire(nil, testStrangerID, dtoGuestHireRequest())
	assert.ErrorIs(t, err, apperrors.ErrNotProfessional)
}
