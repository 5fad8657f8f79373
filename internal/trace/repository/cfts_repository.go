package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/peihe07/R1L-RTM-V3/internal/trace/entity"
	"gorm.io/gorm"
)

// CFTSRepository CFTS 需求仓库
type CFTSRepository struct {
	db *gorm.DB
}

// NewCFTSRepository 创建 CFTS 需求仓库
func NewCFTSRepository(db *gorm.DB) *CFTSRepository {
	return &CFTSRepository{db: db}
}

// SearchByCFTSID 按 CFTS ID 查询。
// 输入不以 "-" 结尾时按前缀匹配（如 "CFTS016" 命中 "CFTS016" 和 "CFTS016-1"），
// 以 "-" 结尾时按完整 ID 精确匹配。
func (r *CFTSRepository) SearchByCFTSID(ctx context.Context, cftsID string) ([]entity.CFTSRequirement, error) {
	var requirements []entity.CFTSRequirement

	query := r.db.WithContext(ctx)
	if strings.HasSuffix(cftsID, "-") {
		query = query.Where("cfts_id = ?", cftsID)
	} else {
		query = query.Where("cfts_id LIKE ?", cftsID+"%")
	}

	err := query.Find(&requirements).Error
	return requirements, err
}

// FindByReqID 按 Req.ID 查询单条需求
func (r *CFTSRepository) FindByReqID(ctx context.Context, reqID string) (*entity.CFTSRequirement, error) {
	var requirement entity.CFTSRequirement
	err := r.db.WithContext(ctx).
		Where("req_id = ?", reqID).
		First(&requirement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &requirement, nil
}

// List 分页获取全部 CFTS 需求
func (r *CFTSRepository) List(ctx context.Context, skip, limit int) ([]entity.CFTSRequirement, error) {
	var requirements []entity.CFTSRequirement
	err := r.db.WithContext(ctx).
		Offset(skip).
		Limit(limit).
		Find(&requirements).Error
	return requirements, err
}

// CFTSPair 自动补全用的 (cfts_id, cfts_name) 对
type CFTSPair struct {
	CFTSID   string `gorm:"column:cfts_id"`
	CFTSName string `gorm:"column:cfts_name"`
}

// DistinctCFTSPairs 去重后的 (cfts_id, cfts_name) 列表，按 cfts_id 排序
func (r *CFTSRepository) DistinctCFTSPairs(ctx context.Context) ([]CFTSPair, error) {
	var pairs []CFTSPair
	err := r.db.WithContext(ctx).
		Model(&entity.CFTSRequirement{}).
		Distinct("cfts_id", "cfts_name").
		Order("cfts_id ASC").
		Find(&pairs).Error
	return pairs, err
}

// AutocompleteReqIDs Req.ID 自动补全，可选前缀过滤，最多 limit 条
func (r *CFTSRepository) AutocompleteReqIDs(ctx context.Context, prefix string, limit int) ([]string, error) {
	var reqIDs []string

	query := r.db.WithContext(ctx).
		Model(&entity.CFTSRequirement{}).
		Distinct("req_id").
		Order("req_id ASC")
	if prefix != "" {
		query = query.Where("req_id LIKE ?", prefix+"%")
	}

	err := query.Limit(limit).Pluck("req_id", &reqIDs).Error
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(reqIDs))
	for _, id := range reqIDs {
		if id != "" {
			out = append(out, id)
		}
	}
	return out, nil
}

// NameLookup 批量取 cfts_id 对应的名称，用于补齐 SYS.2 结果里的 cfts_name
func (r *CFTSRepository) NameLookup(ctx context.Context, cftsIDs []string) (map[string]string, error) {
	lookup := make(map[string]string)
	if len(cftsIDs) == 0 {
		return lookup, nil
	}

	var pairs []CFTSPair
	err := r.db.WithContext(ctx).
		Model(&entity.CFTSRequirement{}).
		Distinct("cfts_id", "cfts_name").
		Where("cfts_id IN ?", cftsIDs).
		Find(&pairs).Error
	if err != nil {
		return nil, err
	}

	for _, p := range pairs {
		lookup[p.CFTSID] = p.CFTSName
	}
	return lookup, nil
}

// Upsert 按 req_id 插入或更新，返回是否新插入。
// 每条记录独立提交，单条失败不影响其余导入行。
func (r *CFTSRepository) Upsert(ctx context.Context, req *entity.CFTSRequirement) (bool, error) {
	var existing entity.CFTSRequirement
	err := r.db.WithContext(ctx).
		Where("req_id = ?", req.ReqID).
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
			"cfts_id":          req.CFTSID,
			"cfts_name":        req.CFTSName,
			"source_id":        req.SourceID,
			"description":      req.Description,
			"sr24_description": req.SR24Description,
			"melco_id":         req.MelcoID,
		}).Error
	return false, err
}

// Count 记录总数
func (r *CFTSRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&entity.CFTSRequirement{}).
		Count(&total).Error
	return total, err
}
