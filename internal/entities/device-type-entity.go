package entities

type DeviceType struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

func (t *DeviceType) IsCPU() bool {
	return IsCPUType(t.Name)
}
