package repository

import (
	"context"

	"github.com/peihe07/R1L-RTM-V3/internal/trace/entity"
	"gorm.io/gorm"
)

// TestCaseRepository 测试案例仓库。
// 没有 upsert：测试案例导入只做追加插入，重复导入会产生重复行。
type TestCaseRepository struct {
	db *gorm.DB
}

// NewTestCaseRepository 创建测试案例仓库
func NewTestCaseRepository(db *gorm.DB) *TestCaseRepository {
	return &TestCaseRepository{db: db}
}

// Insert 无条件插入一条测试案例
func (r *TestCaseRepository) Insert(ctx context.Context, tc *entity.TestCase) error {
	return r.db.WithContext(ctx).Create(tc).Error
}

// FindByFeatureID 按 feature_id 精确匹配，按插入顺序（id 升序）返回
func (r *TestCaseRepository) FindByFeatureID(ctx context.Context, featureID string) ([]entity.TestCase, error) {
	var testcases []entity.TestCase
	err := r.db.WithContext(ctx).
		Where("feature_id = ?", featureID).
		Order("id ASC").
		Find(&testcases).Error
	return testcases, err
}

// Count 记录总数
func (r *TestCaseRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&entity.TestCase{}).
		Count(&total).Error
	return total, err
}
