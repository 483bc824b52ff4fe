package model

// Student é o aluno como o restante da aplicação o enxerga: modelo
// normalizado, com as sondagens em registros próprios (AssessmentResult).
// O código do aluno é a chave natural e também o id; trocar o código de um
// aluno implica remover o registro antigo e recriar sob a nova chave.
type Student struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	BirthDate    string `json:"birthDate"` // YYYY-MM-DD
	Grade        string `json:"grade"`     // nome da turma
	Series       string `json:"series"`    // nome da série
	SchoolID     string `json:"schoolId,omitempty"`
	Observations string `json:"observations,omitempty"`
}

// AlunoRow is the denormalized row the record store actually keeps: the ten
// sondagem phases live as columns on the student itself. Translation between
// this shape and AssessmentResult happens exclusively in the repository
// layer.
type AlunoRow struct {
	Codigo         string `gorm:"primaryKey;size:50;column:codigo"`
	Nome           string `gorm:"size:200;not null;column:nome"`
	DataNascimento string `gorm:"size:10;column:data_nascimento"`
	Escola         string `gorm:"size:50;column:escola"`
	Serie          string `gorm:"size:100;column:serie"`
	Turma          string `gorm:"size:100;column:turma"`
	Observacoes    string `gorm:"type:text;column:observacoes"`

	FaseDesenhoInicial string `gorm:"size:100;column:fase_desenho_inicial"`
	FaseDesenho1Bim    string `gorm:"size:100;column:fase_desenho_1bim"`
	FaseDesenho2Bim    string `gorm:"size:100;column:fase_desenho_2bim"`
	FaseDesenho3Bim    string `gorm:"size:100;column:fase_desenho_3bim"`
	FaseDesenho4Bim    string `gorm:"size:100;column:fase_desenho_4bim"`

	FaseEscritaInicial string `gorm:"size:100;column:fase_escrita_inicial"`
	FaseEscrita1Bim    string `gorm:"size:100;column:fase_escrita_1bim"`
	FaseEscrita2Bim    string `gorm:"size:100;column:fase_escrita_2bim"`
	FaseEscrita3Bim    string `gorm:"size:100;column:fase_escrita_3bim"`
	FaseEscrita4Bim    string `gorm:"size:100;column:fase_escrita_4bim"`
}

func (AlunoRow) TableName() string {
	return "alunos"
}
