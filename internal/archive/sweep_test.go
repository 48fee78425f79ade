package archive

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks PatientStore,CaregiverStore,TreatmentStore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"nhplus/internal/archive/mocks"
	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
	dErrors "nhplus/pkg/domain-errors"
	"nhplus/pkg/platform/sentinel"
	"nhplus/pkg/requestcontext"
)

// =============================================================================
// Sweep Failure Policy Test Suite
// =============================================================================
// Justification for unit tests: persistence failures mid-sweep cannot be
// provoked through the real stores. Mocks inject them to verify the
// abort-on-first-error policy and the vanished-row rule.

type SweepFailureSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	patients   *mocks.MockPatientStore
	caregivers *mocks.MockCaregiverStore
	treatments *mocks.MockTreatmentStore
	service    *Service
	ctx        context.Context
}

func TestSweepFailureSuite(t *testing.T) {
	suite.Run(t, new(SweepFailureSuite))
}

func (s *SweepFailureSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.patients = mocks.NewMockPatientStore(s.ctrl)
	s.caregivers = mocks.NewMockCaregiverStore(s.ctrl)
	s.treatments = mocks.NewMockTreatmentStore(s.ctrl)
	var err error
	s.service, err = New(s.patients, s.caregivers, s.treatments)
	s.Require().NoError(err)
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC))
}

func (s *SweepFailureSuite) TearDownTest() {
	s.ctrl.Finish()
}

func expiredPatient(pid id.PatientID) *models.Patient {
	on := time.Date(2013, time.June, 3, 0, 0, 0, 0, time.UTC)
	return &models.Patient{ID: pid, Archival: models.Archival{ArchivedOn: &on}}
}

func expiredTreatment(tid id.TreatmentID) *models.Treatment {
	on := time.Date(2013, time.June, 3, 0, 0, 0, 0, time.UTC)
	return &models.Treatment{ID: tid, PatientID: 99, Archival: models.Archival{ArchivedOn: &on}}
}

func (s *SweepFailureSuite) TestAbortsOnFirstDeleteError() {
	s.patients.EXPECT().ListArchived(gomock.Any()).Return(
		[]*models.Patient{expiredPatient(1), expiredPatient(2), expiredPatient(3)}, nil)
	s.treatments.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	gomock.InOrder(
		s.patients.EXPECT().Delete(gomock.Any(), id.PatientID(1)).Return(expiredPatient(1), nil),
		s.patients.EXPECT().Delete(gomock.Any(), id.PatientID(2)).Return(nil, errors.New("disk I/O error")),
	)
	// Patient 3, caregivers and treatments must not be touched.

	result, err := s.service.Sweep(s.ctx)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.ErrorContains(err, "disk I/O error")
	s.Equal(SweepResult{Patients: 1}, result, "rows deleted before the failure are reported")
}

func (s *SweepFailureSuite) TestVanishedRowsAreSkipped() {
	s.treatments.EXPECT().ListArchived(gomock.Any()).Return(
		[]*models.Treatment{expiredTreatment(1), expiredTreatment(2)}, nil)
	s.treatments.EXPECT().Delete(gomock.Any(), id.TreatmentID(1)).
		Return(nil, fmt.Errorf("delete treatment 1: %w", sentinel.ErrNotFound))
	s.treatments.EXPECT().Delete(gomock.Any(), id.TreatmentID(2)).Return(expiredTreatment(2), nil)

	deleted, err := s.service.DeleteOldTreatments(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, deleted)
}

func (s *SweepFailureSuite) TestSnapshotFailure() {
	s.caregivers.EXPECT().ListArchived(gomock.Any()).Return(nil, errors.New("connection refused"))
	s.treatments.EXPECT().ListAll(gomock.Any()).Return(nil, nil).AnyTimes()

	deleted, err := s.service.DeleteOldCaregivers(s.ctx)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Zero(deleted)
}

func (s *SweepFailureSuite) TestArchiveWriteFailure() {
	s.patients.EXPECT().FindByID(gomock.Any(), id.PatientID(1)).Return(&models.Patient{ID: 1}, nil)
	s.patients.EXPECT().Archive(gomock.Any(), id.PatientID(1), gomock.Any()).Return(errors.New("database is locked"))

	_, err := s.service.ArchivePatient(s.ctx, 1)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
