package repository

import (
	"context"
	"errors"

	"github.com/peihe07/R1L-RTM-V3/internal/trace/entity"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/melco"
	"gorm.io/gorm"
)

// SYS2Repository SYS.2 要件仓库
type SYS2Repository struct {
	db *gorm.DB
}

// NewSYS2Repository 创建 SYS.2 要件仓库
func NewSYS2Repository(db *gorm.DB) *SYS2Repository {
	return &SYS2Repository{db: db}
}

// FindByMelcoIDs 按变体集合做等值 IN 匹配，按插入顺序（id 升序）返回
func (r *SYS2Repository) FindByMelcoIDs(ctx context.Context, melcoIDs []string) ([]entity.SYS2Requirement, error) {
	if len(melcoIDs) == 0 {
		return nil, nil
	}

	var requirements []entity.SYS2Requirement
	err := r.db.WithContext(ctx).
		Where("melco_id IN ?", melcoIDs).
		Order("id ASC").
		Find(&requirements).Error
	return requirements, err
}

// Search 条件搜索。cfts_id 做不区分大小写的前缀匹配；
// melco_id 做宽松匹配：原始输入、规范形式、#/## 前缀形式任一前缀命中即可。
// 这里刻意比 FindByMelcoIDs 的全变体等值匹配更宽松，两种强度并存是历史行为。
func (r *SYS2Repository) Search(ctx context.Context, cftsID, melcoID string, limit int) ([]entity.SYS2Requirement, error) {
	query := r.db.WithContext(ctx).Model(&entity.SYS2Requirement{})

	if cftsID != "" {
		query = query.Where("cfts_id ILIKE ?", cftsID+"%")
	}

	if melcoID != "" {
		normalized := melco.Normalize(melcoID)
		cond := r.db.Where("melco_id ILIKE ?", melcoID+"%")
		if normalized != "" && normalized != melcoID {
			cond = cond.
				Or("melco_id ILIKE ?", normalized+"%").
				Or("melco_id ILIKE ?", "#"+normalized+"%").
				Or("melco_id ILIKE ?", "##"+normalized+"%")
		}
		query = query.Where(cond)
	}

	var requirements []entity.SYS2Requirement
	err := query.
		Order("melco_id ASC").
		Limit(limit).
		Find(&requirements).Error
	return requirements, err
}

// DistinctMelcoIDsIn 返回存在于给定变体池中的去重 melco_id 列表
func (r *SYS2Repository) DistinctMelcoIDsIn(ctx context.Context, pool []string) ([]string, error) {
	if len(pool) == 0 {
		return nil, nil
	}

	var melcoIDs []string
	err := r.db.WithContext(ctx).
		Model(&entity.SYS2Requirement{}).
		Distinct("melco_id").
		Where("melco_id IN ?", pool).
		Pluck("melco_id", &melcoIDs).Error
	return melcoIDs, err
}

// Upsert 按 melco_id 插入或更新，返回是否新插入
func (r *SYS2Repository) Upsert(ctx context.Context, req *entity.SYS2Requirement) (bool, error) {
	var existing entity.SYS2Requirement
	err := r.db.WithContext(ctx).
		Where("melco_id = ?", req.MelcoID).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	err = r.db.WithContext(ctx).
		Model(&existing).
		Updates(map[string]interface{}{
			"cfts_id":                 req.CFTSID,
			"cfts_name":               req.CFTSName,
			"requirement_en":          req.RequirementEN,
			"reason_en":               req.ReasonEN,
			"supplement_en":           req.SupplementEN,
			"confirmation_phase":      req.ConfirmationPhase,
			"verification_criteria":   req.VerificationCriteria,
			"type":                    req.Type,
			"related_requirement_ids": req.RelatedRequirementIDs,
			"r1l_sr21cfts":            req.R1LSR21CFTS,
			"r1l_sr22cfts":            req.R1LSR22CFTS,
			"r1l_sr23cfts":            req.R1LSR23CFTS,
			"r1l_sr24cfts":            req.R1LSR24CFTS,
		}).Error
	return false, err
}

// Count 记录总数
func (r *SYS2Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&entity.SYS2Requirement{}).
		Count(&total).Error
	return total, err
}
