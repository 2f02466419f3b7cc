package services

import (
	"context"
	"errors"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"school-inventory/internal/dto"
	"school-inventory/internal/entities"
	apperrors "school-inventory/pkg/errors"
)

type EquipmentServiceSuite struct {
	suite.Suite
	ctx       context.Context
	tx        *fakeTxManager
	equipment *mockEquipmentRepo
	details   *mockDetailRepo
	history   *mockHistoryRepo
	buildings *mockBuildingRepo
	types     *mockDeviceTypeRepo
	svc       EquipmentServiceInterface
}

func TestEquipmentServiceSuite(t *testing.T) {
	suite.Run(t, new(EquipmentServiceSuite))
}

func (s *EquipmentServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.tx = &fakeTxManager{}
	s.equipment = new(mockEquipmentRepo)
	s.details = new(mockDetailRepo)
	s.history = new(mockHistoryRepo)
	s.buildings = new(mockBuildingRepo)
	s.types = new(mockDeviceTypeRepo)
	s.svc = NewEquipmentService(newTestBase(), s.tx, s.equipment, s.details, s.history, s.buildings, s.types, zap.NewNop())
}

func (s *EquipmentServiceSuite) TearDownTest() {
	s.equipment.AssertExpectations(s.T())
	s.details.AssertExpectations(s.T())
	s.history.AssertExpectations(s.T())
}

func cpuEquipment(id uint64) *entities.Equipment {
	return &entities.Equipment{
		ID: id, Code: "PC-001", BuildingID: 1, TypeID: 1, Status: entities.EquipmentStatusActive,
		BuildingName: "Lab1", TypeName: "CPU",
	}
}

func monitorEquipment(id uint64) *entities.Equipment {
	return &entities.Equipment{
		ID: id, Code: "MON-001", BuildingID: 1, TypeID: 2, Status: entities.EquipmentStatusActive,
		BuildingName: "Lab1", TypeName: "Monitor",
	}
}

func (s *EquipmentServiceSuite) expectCatalogs(typeName string) {
	s.buildings.On("FindBuilding", s.ctx, mock.Anything, uint64(1)).Return(&entities.Building{ID: 1, Name: "Lab1"}, nil)
	typeID := uint64(1)
	if !entities.IsCPUType(typeName) {
		typeID = 2
	}
	s.types.On("FindDeviceType", s.ctx, mock.Anything, typeID).Return(&entities.DeviceType{ID: typeID, Name: typeName}, nil)
}

func (s *EquipmentServiceSuite) expectLoad(e *entities.Equipment) {
	s.equipment.On("FindEquipment", s.ctx, mock.Anything, e.ID, false).Return(e, nil).Once()
	if e.IsCPU() {
		s.details.On("GetPcDetails", s.ctx, []uint64{e.ID}).Return([]entities.PcDetail{{ID: 5, EquipmentID: e.ID, RamGB: null.IntFrom(16)}}, nil).Once()
		s.details.On("GetGraphics", s.ctx, []uint64{5}).Return([]entities.Graphics{}, nil).Once()
		s.details.On("GetPeripherals", s.ctx, []uint64{e.ID}).Return([]entities.Peripheral{{EquipmentID: e.ID, Kind: "Mouse"}}, nil).Once()
	}
}

func (s *EquipmentServiceSuite) TestCreateCPUWritesComposition() {
	s.expectCatalogs("CPU")
	s.equipment.On("ExistsByCode", s.ctx, mock.Anything, "PC-001", uint64(0)).Return(false, nil)
	s.equipment.On("CreateEquipment", s.ctx, mock.Anything, mock.MatchedBy(func(e *entities.Equipment) bool {
		return e.Code == "PC-001" && e.Status == entities.EquipmentStatusActive
	})).Return(cpuEquipment(10), nil)
	s.details.On("UpsertPcDetail", s.ctx, mock.Anything, mock.MatchedBy(func(d *entities.PcDetail) bool {
		return d.EquipmentID == 10 && d.RamGB.Int == 16
	})).Return(uint64(5), nil)
	s.details.On("UpsertGraphics", s.ctx, mock.Anything, mock.MatchedBy(func(g *entities.Graphics) bool {
		return g.PcDetailID == 5 && g.Brand.String == "NVIDIA"
	})).Return(nil)
	s.details.On("CreatePeripherals", s.ctx, mock.Anything, uint64(10), []entities.Peripheral{{Kind: "Mouse", Brand: "Logitech"}}).Return(nil)
	s.expectLoad(cpuEquipment(10))

	res, err := s.svc.CreateEquipment(s.ctx, adminActor, dto.CreateEquipmentDTO{
		Code: " PC-001 ", BuildingID: 1, TypeID: 1,
		Detail:   &dto.PcDetailDTO{RamGB: null.IntFrom(16)},
		Graphics: &dto.GraphicsDTO{Brand: null.StringFrom("NVIDIA")},
		Peripherals: []dto.PeripheralDTO{
			{Kind: "Mouse", Brand: "Logitech"},
			{Kind: "  ", Brand: "Без типа"},
		},
	})

	s.Require().NoError(err)
	s.Equal(uint64(10), res.ID)
	s.Require().NotNil(res.Detail)
	s.Equal(16, res.Detail.RamGB.Int)
	s.Len(res.Peripherals, 1)
	s.Equal(1, s.tx.committed)
}

func (s *EquipmentServiceSuite) TestCreateGraphicsWithoutDetailAnchorsEmptyDetail() {
	s.expectCatalogs("cpu")
	s.equipment.On("ExistsByCode", s.ctx, mock.Anything, "PC-001", uint64(0)).Return(false, nil)
	s.equipment.On("CreateEquipment", s.ctx, mock.Anything, mock.Anything).Return(cpuEquipment(10), nil)
	s.details.On("UpsertPcDetail", s.ctx, mock.Anything, mock.MatchedBy(func(d *entities.PcDetail) bool {
		return d.EquipmentID == 10 && !d.RamGB.Valid && !d.Processor.Valid
	})).Return(uint64(7), nil)
	s.details.On("UpsertGraphics", s.ctx, mock.Anything, mock.MatchedBy(func(g *entities.Graphics) bool {
		return g.PcDetailID == 7 && g.VramGB.Int == 8
	})).Return(nil)
	s.details.On("CreatePeripherals", s.ctx, mock.Anything, uint64(10), []entities.Peripheral{}).Return(nil)
	s.expectLoad(cpuEquipment(10))

	_, err := s.svc.CreateEquipment(s.ctx, adminActor, dto.CreateEquipmentDTO{
		Code: "PC-001", BuildingID: 1, TypeID: 1,
		Graphics: &dto.GraphicsDTO{VramGB: null.IntFrom(8)},
	})
	s.Require().NoError(err)
}

func (s *EquipmentServiceSuite) TestCreateNonCPUIgnoresComposition() {
	s.expectCatalogs("Monitor")
	s.equipment.On("ExistsByCode", s.ctx, mock.Anything, "MON-001", uint64(0)).Return(false, nil)
	s.equipment.On("CreateEquipment", s.ctx, mock.Anything, mock.Anything).Return(monitorEquipment(11), nil)
	s.expectLoad(monitorEquipment(11))

	res, err := s.svc.CreateEquipment(s.ctx, adminActor, dto.CreateEquipmentDTO{
		Code: "MON-001", BuildingID: 1, TypeID: 2,
		Detail:      &dto.PcDetailDTO{RamGB: null.IntFrom(16)},
		Peripherals: []dto.PeripheralDTO{{Kind: "Mouse"}},
	})

	s.Require().NoError(err)
	s.Nil(res.Detail)
	s.Nil(res.Graphics)
	s.Empty(res.Peripherals)
	s.details.AssertNotCalled(s.T(), "UpsertPcDetail", mock.Anything, mock.Anything, mock.Anything)
	s.details.AssertNotCalled(s.T(), "CreatePeripherals", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *EquipmentServiceSuite) TestCreateDuplicateCodeConflict() {
	s.expectCatalogs("CPU")
	s.equipment.On("ExistsByCode", s.ctx, mock.Anything, "PC-001", uint64(0)).Return(true, nil)

	_, err := s.svc.CreateEquipment(s.ctx, adminActor, dto.CreateEquipmentDTO{Code: "PC-001", BuildingID: 1, TypeID: 1})

	s.ErrorIs(err, apperrors.ErrConflict)
	s.equipment.AssertNotCalled(s.T(), "CreateEquipment", mock.Anything, mock.Anything, mock.Anything)
	s.Equal(1, s.tx.rolledBack)
}

func (s *EquipmentServiceSuite) TestCreateUnknownBuildingNotFound() {
	s.buildings.On("FindBuilding", s.ctx, mock.Anything, uint64(99)).
		Return(nil, apperrors.NewNotFoundError("здание с id %d не найдено", 99))

	_, err := s.svc.CreateEquipment(s.ctx, adminActor, dto.CreateEquipmentDTO{Code: "PC-001", BuildingID: 99, TypeID: 1})

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.equipment.AssertNotCalled(s.T(), "CreateEquipment", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EquipmentServiceSuite) TestCreateStoreFailureIsTransactionError() {
	s.expectCatalogs("CPU")
	s.equipment.On("ExistsByCode", s.ctx, mock.Anything, "PC-001", uint64(0)).Return(false, nil)
	s.equipment.On("CreateEquipment", s.ctx, mock.Anything, mock.Anything).Return(cpuEquipment(10), nil)
	s.details.On("CreatePeripherals", s.ctx, mock.Anything, uint64(10), mock.Anything).Return(errors.New("conn reset"))

	_, err := s.svc.CreateEquipment(s.ctx, adminActor, dto.CreateEquipmentDTO{
		Code: "PC-001", BuildingID: 1, TypeID: 1, Peripherals: []dto.PeripheralDTO{{Kind: "Mouse"}},
	})

	s.ErrorIs(err, apperrors.ErrTransaction)
	s.Equal(1, s.tx.rolledBack)
	s.Equal(0, s.tx.committed)
}

func (s *EquipmentServiceSuite) TestCreateRejectsBadStatusAndRole() {
	_, err := s.svc.CreateEquipment(s.ctx, adminActor, dto.CreateEquipmentDTO{Code: "X", BuildingID: 1, TypeID: 1, Status: "Deleted"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.CreateEquipment(s.ctx, adminActor, dto.CreateEquipmentDTO{Code: "X", BuildingID: 1, TypeID: 1, Status: "Broken"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.CreateEquipment(s.ctx, standardActor, dto.CreateEquipmentDTO{Code: "X", BuildingID: 1, TypeID: 1})
	s.ErrorIs(err, apperrors.ErrForbidden)

	s.Equal(0, s.tx.committed+s.tx.rolledBack)
}

func (s *EquipmentServiceSuite) TestDeleteWithDetailWritesHistory() {
	e := cpuEquipment(10)
	s.equipment.On("FindEquipment", s.ctx, mock.Anything, uint64(10), true).Return(e, nil)
	s.details.On("FindPcDetail", s.ctx, mock.Anything, uint64(10)).Return(&entities.PcDetail{ID: 5, EquipmentID: 10}, nil)
	s.details.On("DeleteGraphics", s.ctx, mock.Anything, uint64(5)).Return(nil)
	s.details.On("DeletePeripherals", s.ctx, mock.Anything, uint64(10)).Return(nil)
	s.details.On("DeletePcDetail", s.ctx, mock.Anything, uint64(10)).Return(nil)
	s.history.On("CreateHistoryEntry", s.ctx, mock.Anything, mock.MatchedBy(func(h *entities.HistoryEntry) bool {
		return h.EquipmentID == 10 && h.Code == "PC-001" && h.Status == entities.EquipmentStatusDeleted &&
			h.DeletedBy.Valid && h.DeletedBy.Uint64 == adminActor.UserID
	})).Return(uint64(1), nil)
	s.equipment.On("DeleteEquipment", s.ctx, mock.Anything, uint64(10)).Return(nil)

	s.Require().NoError(s.svc.DeleteEquipment(s.ctx, adminActor, 10))
	s.Equal(1, s.tx.committed)
}

func (s *EquipmentServiceSuite) TestDeleteWithoutDetailSnapshotsDirectly() {
	e := monitorEquipment(11)
	s.equipment.On("FindEquipment", s.ctx, mock.Anything, uint64(11), true).Return(e, nil)
	s.details.On("FindPcDetail", s.ctx, mock.Anything, uint64(11)).Return(nil, apperrors.ErrNotFound)
	s.history.On("CreateHistoryEntry", s.ctx, mock.Anything, mock.Anything).Return(uint64(2), nil)
	s.equipment.On("DeleteEquipment", s.ctx, mock.Anything, uint64(11)).Return(nil)

	s.Require().NoError(s.svc.DeleteEquipment(s.ctx, adminActor, 11))
	s.details.AssertNotCalled(s.T(), "DeleteGraphics", mock.Anything, mock.Anything, mock.Anything)
	s.details.AssertNotCalled(s.T(), "DeletePcDetail", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EquipmentServiceSuite) TestDeleteMissingIsNotFound() {
	s.equipment.On("FindEquipment", s.ctx, mock.Anything, uint64(404), true).
		Return(nil, apperrors.NewNotFoundError("оборудование с id %d не найдено", 404))

	err := s.svc.DeleteEquipment(s.ctx, adminActor, 404)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.history.AssertNotCalled(s.T(), "CreateHistoryEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EquipmentServiceSuite) TestDeleteFailureAfterHistoryRollsBack() {
	e := monitorEquipment(11)
	s.equipment.On("FindEquipment", s.ctx, mock.Anything, uint64(11), true).Return(e, nil)
	s.details.On("FindPcDetail", s.ctx, mock.Anything, uint64(11)).Return(nil, apperrors.ErrNotFound)
	s.history.On("CreateHistoryEntry", s.ctx, mock.Anything, mock.Anything).Return(uint64(3), nil)
	s.equipment.On("DeleteEquipment", s.ctx, mock.Anything, uint64(11)).Return(errors.New("deadlock detected"))

	err := s.svc.DeleteEquipment(s.ctx, adminActor, 11)

	s.ErrorIs(err, apperrors.ErrTransaction)
	s.Equal(1, s.tx.rolledBack)
	s.Equal(0, s.tx.committed)
}

func (s *EquipmentServiceSuite) TestUpdateDetailsReplacesPeripherals() {
	e := cpuEquipment(10)
	s.equipment.On("FindEquipment", s.ctx, mock.Anything, uint64(10), true).Return(e, nil)
	s.details.On("UpsertPcDetail", s.ctx, mock.Anything, mock.Anything).Return(uint64(5), nil)
	s.details.On("DeleteGraphics", s.ctx, mock.Anything, uint64(5)).Return(nil)
	s.details.On("DeletePeripherals", s.ctx, mock.Anything, uint64(10)).Return(nil).Twice()
	s.details.On("CreatePeripherals", s.ctx, mock.Anything, uint64(10), []entities.Peripheral{{Kind: "Mouse"}, {Kind: "Keyboard"}}).Return(nil).Twice()
	s.expectLoad(e)
	s.expectLoad(e)

	payload := dto.UpdateEquipmentDetailsDTO{
		Detail:      &dto.PcDetailDTO{RamGB: null.IntFrom(32)},
		Peripherals: []dto.PeripheralDTO{{Kind: "Mouse"}, {Kind: ""}, {Kind: "Keyboard"}},
	}
	_, err := s.svc.UpdateEquipmentDetails(s.ctx, adminActor, 10, payload)
	s.Require().NoError(err)
	_, err = s.svc.UpdateEquipmentDetails(s.ctx, adminActor, 10, payload)
	s.Require().NoError(err)

	s.Equal(2, s.tx.committed)
}

func (s *EquipmentServiceSuite) TestUpdateDetailsOnNonCPUIsValidationError() {
	s.equipment.On("FindEquipment", s.ctx, mock.Anything, uint64(11), true).Return(monitorEquipment(11), nil)

	_, err := s.svc.UpdateEquipmentDetails(s.ctx, adminActor, 11, dto.UpdateEquipmentDetailsDTO{
		Peripherals: []dto.PeripheralDTO{{Kind: "Mouse"}},
	})

	s.ErrorIs(err, apperrors.ErrValidation)
	s.details.AssertNotCalled(s.T(), "DeletePeripherals", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EquipmentServiceSuite) TestUpdateDetailsMissingEquipment() {
	s.equipment.On("FindEquipment", s.ctx, mock.Anything, uint64(404), true).
		Return(nil, apperrors.NewNotFoundError("оборудование с id %d не найдено", 404))

	_, err := s.svc.UpdateEquipmentDetails(s.ctx, adminActor, 404, dto.UpdateEquipmentDetailsDTO{})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *EquipmentServiceSuite) TestUpdateToNonCPUPurgesComposition() {
	current := cpuEquipment(10)
	s.equipment.On("FindEquipment", s.ctx, mock.Anything, uint64(10), true).Return(current, nil)
	s.buildings.On("FindBuilding", s.ctx, mock.Anything, uint64(1)).Return(&entities.Building{ID: 1}, nil)
	s.types.On("FindDeviceType", s.ctx, mock.Anything, uint64(2)).Return(&entities.DeviceType{ID: 2, Name: "Monitor"}, nil)
	s.equipment.On("ExistsByCode", s.ctx, mock.Anything, "PC-001", uint64(10)).Return(false, nil)
	s.equipment.On("UpdateEquipment", s.ctx, mock.Anything, mock.MatchedBy(func(e *entities.Equipment) bool {
		return e.ID == 10 && e.TypeID == 2
	})).Return(nil)
	s.details.On("FindPcDetail", s.ctx, mock.Anything, uint64(10)).Return(&entities.PcDetail{ID: 5, EquipmentID: 10}, nil)
	s.details.On("DeleteGraphics", s.ctx, mock.Anything, uint64(5)).Return(nil)
	s.details.On("DeletePcDetail", s.ctx, mock.Anything, uint64(10)).Return(nil)
	s.details.On("DeletePeripherals", s.ctx, mock.Anything, uint64(10)).Return(nil)
	updated := monitorEquipment(10)
	updated.Code = "PC-001"
	s.expectLoad(updated)

	res, err := s.svc.UpdateEquipment(s.ctx, adminActor, 10, dto.UpdateEquipmentDTO{Code: "PC-001", BuildingID: 1, TypeID: 2})

	s.Require().NoError(err)
	s.Equal("Monitor", res.TypeName)
	s.Nil(res.Detail)
}

func (s *EquipmentServiceSuite) TestListComposesOnlyCPU() {
	list := []entities.Equipment{*cpuEquipment(10), *monitorEquipment(11)}
	s.equipment.On("GetActiveEquipments", s.ctx, dto.EquipmentFilter{Text: "lab"}).Return(list, nil)
	s.details.On("GetPcDetails", s.ctx, []uint64{10}).Return([]entities.PcDetail{{ID: 5, EquipmentID: 10}}, nil)
	s.details.On("GetGraphics", s.ctx, []uint64{5}).Return([]entities.Graphics{{PcDetailID: 5, Brand: null.StringFrom("AMD")}}, nil)
	s.details.On("GetPeripherals", s.ctx, []uint64{10}).Return([]entities.Peripheral{
		{EquipmentID: 10, Kind: "Mouse"},
		{EquipmentID: 11, Kind: "Stray"},
	}, nil)

	res, err := s.svc.GetEquipments(s.ctx, standardActor, dto.EquipmentFilter{Text: "lab"})

	s.Require().NoError(err)
	s.Require().Len(res, 2)
	s.Require().NotNil(res[0].Graphics)
	s.Equal("AMD", res[0].Graphics.Brand.String)
	s.Len(res[0].Peripherals, 1)
	s.Nil(res[1].Detail)
	s.Empty(res[1].Peripherals)
}

func (s *EquipmentServiceSuite) TestFindRequiresAdministrator() {
	_, err := s.svc.FindEquipment(s.ctx, standardActor, 10)
	s.ErrorIs(err, apperrors.ErrForbidden)
}
