package model

// Grade é uma turma. O nome é a própria chave: renomear uma turma é
// delete-old + insert-new.
type Grade struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TurmaRow struct {
	Turma string `gorm:"primaryKey;size:100;column:turma"`
}

func (TurmaRow) TableName() string {
	return "turmas"
}
