package model

// Homework 发布的作业：一个试卷名称对应三种题型的试卷编号
type Homework struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ClassName     string `gorm:"type:varchar(255);not null" json:"className"`
	PaperName     string `gorm:"type:varchar(255);not null;index" json:"paperName"`
	ChoicePaperID string `gorm:"type:varchar(500);not null" json:"choicePaperId"`
	JudgePaperID  string `gorm:"type:varchar(500);not null" json:"judgePaperId"`
	BlankPaperID  string `gorm:"type:varchar(500);not null" json:"blankPaperId"`
}

func (Homework) TableName() string { return "homework" }
