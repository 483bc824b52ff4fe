package model

// School é uma escola; o código é a chave natural e o id.
type School struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type EscolaRow struct {
	Codigo string `gorm:"primaryKey;size:50;column:codigo"`
	Nome   string `gorm:"size:200;not null;column:nome"`
}

func (EscolaRow) TableName() string {
	return "escolas"
}
