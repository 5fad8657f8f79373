package entity

import "time"

// TestCase 测试案例。feature_id 对应 Melco ID，不唯一：
// 同一个 feature_id 允许多行，导入永远是追加插入（不去重）。
type TestCase struct {
	ID        uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	FeatureID string `json:"feature_id" gorm:"column:feature_id;size:128;index"`

	Source                   string `json:"source" gorm:"column:source;size:128;default:''"`
	Title                    string `json:"title" gorm:"column:title;size:256;default:''"`
	Section                  string `json:"section" gorm:"column:section;size:256;default:''"`
	TestItemEN               string `json:"test_item_en" gorm:"column:test_item_en;type:text;default:''"`
	PreconditionProcedureJP  string `json:"precondition_procedure_jp" gorm:"column:precondition_procedure_jp;type:text;default:''"`
	CriteriaJP               string `json:"criteria_jp" gorm:"column:criteria_jp;type:text;default:''"`

	// 管理用可选字段
	MP            string `json:"mp" gorm:"column:mp;size:64;default:''"`
	DS            string `json:"ds" gorm:"column:ds;size:64;default:''"`
	DT            string `json:"dt" gorm:"column:dt;size:64;default:''"`
	HDCC          string `json:"hdcc" gorm:"column:hdcc;size:64;default:''"`
	RU            string `json:"ru" gorm:"column:ru;size:64;default:''"`
	Specification string `json:"specification" gorm:"column:specification;size:256;default:''"`
	Priority      string `json:"priority" gorm:"column:priority;size:32;default:''"`
	TestVersion   string `json:"test_version" gorm:"column:test_version;size:64;default:''"`
	TestResult    string `json:"test_result" gorm:"column:test_result;size:64;default:''"`
	Tester        string `json:"tester" gorm:"column:tester;size:64;default:''"`
	IssueID       string `json:"issue_id" gorm:"column:issue_id;size:64;default:''"`
	Note          string `json:"note" gorm:"column:note;type:text;default:''"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TestCase) TableName() string {
	return "testcases"
}

// TestCaseResponse 对外只暴露 A-G 栏核心字段
type TestCaseResponse struct {
	FeatureID               string `json:"feature_id"`
	Source                  string `json:"source"`
	Title                   string `json:"title"`
	Section                 string `json:"section"`
	TestItemEN              string `json:"test_item_en"`
	PreconditionProcedureJP string `json:"precondition_procedure_jp"`
	CriteriaJP              string `json:"criteria_jp"`
}

// ToResponse 转成 API 响应结构
func (t *TestCase) ToResponse() TestCaseResponse {
	return TestCaseResponse{
		FeatureID:               t.FeatureID,
		Source:                  t.Source,
		Title:                   t.Title,
		Section:                 t.Section,
		TestItemEN:              t.TestItemEN,
		PreconditionProcedureJP: t.PreconditionProcedureJP,
		CriteriaJP:              t.CriteriaJP,
	}
}
