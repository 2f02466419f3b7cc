package entities

type Building struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
