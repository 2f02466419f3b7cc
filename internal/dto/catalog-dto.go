package dto

type CreateBuildingDTO struct {
	Name string `json:"name" form:"name" validate:"required,notblank,max=50"`
}

type BuildingDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type CreateDeviceTypeDTO struct {
	Name string `json:"name" form:"name" validate:"required,notblank,max=50"`
}

type DeviceTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
