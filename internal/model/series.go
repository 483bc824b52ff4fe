package model

// Series é uma série escolar. Como em Grade, o nome é a chave.
type Series struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SerieRow struct {
	Serie string `gorm:"primaryKey;size:100;column:serie"`
}

func (SerieRow) TableName() string {
	return "series"
}
