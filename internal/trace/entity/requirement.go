package entity

import "time"

// CFTSRequirement CFTS 需求条目，req_id 为自然键（导入按它做 upsert）
type CFTSRequirement struct {
	ID              uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	CFTSID          string    `json:"cfts_id" gorm:"column:cfts_id;size:64;index"`
	CFTSName        string    `json:"cfts_name" gorm:"column:cfts_name;size:256;default:''"`
	ReqID           string    `json:"req_id" gorm:"column:req_id;size:128;index"`
	SourceID        string    `json:"source_id" gorm:"column:source_id;size:128;index"`
	Description     string    `json:"description" gorm:"column:description;type:text;default:''"`
	SR24Description string    `json:"sr24_description" gorm:"column:sr24_description;type:text;default:''"`
	MelcoID         string    `json:"melco_id" gorm:"column:melco_id;type:text;default:''"` // 可能含换行，原样保存不拆分
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (CFTSRequirement) TableName() string {
	return "cfts_requirements"
}

// CFTSSearchResult CFTS/Req.ID 查询的响应结构
type CFTSSearchResult struct {
	CFTSID       string            `json:"cfts_id"`
	Requirements []CFTSRequirement `json:"requirements"`
	TotalCount   int               `json:"total_count"`
	TargetReqID  string            `json:"target_req_id,omitempty"` // Req.ID 查询时标记前端需要高亮的行
}
