package entity

import "time"

// SYS2Requirement SYS.2 要件，melco_id 唯一（导入按它做 upsert）。
// cfts_id 由 melco_id 中的 CFTS\d+ 片段推出，可能为空；
// cfts_name 导入时通常为空，查询时从 CFTS 数据补齐。
type SYS2Requirement struct {
	ID      uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	MelcoID string `json:"melco_id" gorm:"column:melco_id;size:128;uniqueIndex"` // 要件ID (例: PSCFTS016-1-4-2)
	CFTSID  string `json:"cfts_id" gorm:"column:cfts_id;size:64;index;default:''"`
	CFTSName string `json:"cfts_name" gorm:"column:cfts_name;size:256;default:''"`

	RequirementEN         string `json:"requirement_en" gorm:"column:requirement_en;type:text;default:''"`         // 要件(英語)
	ReasonEN              string `json:"reason_en" gorm:"column:reason_en;type:text;default:''"`                   // 理由(英語)
	SupplementEN          string `json:"supplement_en" gorm:"column:supplement_en;type:text;default:''"`           // 補足(英語)
	ConfirmationPhase     string `json:"confirmation_phase" gorm:"column:confirmation_phase;size:128;default:''"`  // 確認フェーズ
	VerificationCriteria  string `json:"verification_criteria" gorm:"column:verification_criteria;type:text;default:''"` // 検証基準
	Type                  string `json:"type" gorm:"column:type;size:64;default:''"`                               // 種別
	RelatedRequirementIDs string `json:"related_requirement_ids" gorm:"column:related_requirement_ids;type:text;default:''"` // 関連要件ID，分隔文本

	R1LSR21CFTS string `json:"r1l_sr21cfts" gorm:"column:r1l_sr21cfts;size:256;default:''"`
	R1LSR22CFTS string `json:"r1l_sr22cfts" gorm:"column:r1l_sr22cfts;size:256;default:''"`
	R1LSR23CFTS string `json:"r1l_sr23cfts" gorm:"column:r1l_sr23cfts;size:256;default:''"`
	R1LSR24CFTS string `json:"r1l_sr24cfts" gorm:"column:r1l_sr24cfts;size:256;default:''"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SYS2Requirement) TableName() string {
	return "sys2_requirements"
}

// SYS2AvailabilityResult 批量可用性检查的响应结构
type SYS2AvailabilityResult struct {
	AvailableIDs []string `json:"available_ids"`
}
