package service

import (
	"context"
	"fmt"

	"github.com/peihe07/R1L-RTM-V3/internal/trace/entity"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
)

// TestCaseService 测试案例查询服务
type TestCaseService struct {
	testCaseRepo *repository.TestCaseRepository
}

// NewTestCaseService 创建测试案例查询服务
func NewTestCaseService(testCaseRepo *repository.TestCaseRepository) *TestCaseService {
	return &TestCaseService{testCaseRepo: testCaseRepo}
}

// GetByFeatureID 按 Feature ID 取全部测试案例。
// 无命中返回 ErrNotFound（与 SYS.2 搜索的空列表策略不同，保持各端点历史行为）。
func (s *TestCaseService) GetByFeatureID(ctx context.Context, featureID string) ([]entity.TestCaseResponse, error) {
	testcases, err := s.testCaseRepo.FindByFeatureID(ctx, featureID)
	if err != nil {
		return nil, fmt.Errorf("find testcases: %w", err)
	}
	if len(testcases) == 0 {
		return nil, repository.ErrNotFound
	}

	responses := make([]entity.TestCaseResponse, 0, len(testcases))
	for i := range testcases {
		responses = append(responses, testcases[i].ToResponse())
	}
	return responses, nil
}
