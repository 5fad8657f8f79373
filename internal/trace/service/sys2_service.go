package service

import (
	"context"
	"fmt"

	"github.com/peihe07/R1L-RTM-V3/internal/trace/entity"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/melco"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
)

// SYS2Service SYS.2 要件查询服务
type SYS2Service struct {
	sys2Repo *repository.SYS2Repository
	cftsRepo *repository.CFTSRepository
}

// NewSYS2Service 创建 SYS.2 要件查询服务
func NewSYS2Service(sys2Repo *repository.SYS2Repository, cftsRepo *repository.CFTSRepository) *SYS2Service {
	return &SYS2Service{sys2Repo: sys2Repo, cftsRepo: cftsRepo}
}

// GetByMelcoID 按 Melco ID 取 SYS.2 要件。
// 匹配集合为输入本身的变体加规范形式的变体，用于兼容带 #/## 前缀的旧数据。
func (s *SYS2Service) GetByMelcoID(ctx context.Context, melcoID string) ([]entity.SYS2Requirement, error) {
	variants := melco.Variants(melcoID)
	for v := range melco.Variants(melco.Normalize(melcoID)) {
		variants[v] = struct{}{}
	}
	if len(variants) == 0 {
		return nil, repository.ErrNotFound
	}

	pool := make([]string, 0, len(variants))
	for v := range variants {
		pool = append(pool, v)
	}

	requirements, err := s.sys2Repo.FindByMelcoIDs(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("find sys2 requirements: %w", err)
	}
	if len(requirements) == 0 {
		return nil, repository.ErrNotFound
	}

	if err := s.enrichCFTSNames(ctx, requirements); err != nil {
		return nil, err
	}
	return requirements, nil
}

// Search 按条件搜索 SYS.2 要件，无命中返回空列表而不是错误
func (s *SYS2Service) Search(ctx context.Context, cftsID, melcoID string, limit int) ([]entity.SYS2Requirement, error) {
	requirements, err := s.sys2Repo.Search(ctx, cftsID, melcoID, limit)
	if err != nil {
		return nil, fmt.Errorf("search sys2 requirements: %w", err)
	}
	if len(requirements) == 0 {
		return []entity.SYS2Requirement{}, nil
	}

	if err := s.enrichCFTSNames(ctx, requirements); err != nil {
		return nil, err
	}
	return requirements, nil
}

// Availability 批量检查哪些 Melco ID 有对应的 SYS.2 数据。
// 输入先规范化再按首次出现顺序去重，输出保持这个顺序；空输入返回空结果。
func (s *SYS2Service) Availability(ctx context.Context, ids []string) (*entity.SYS2AvailabilityResult, error) {
	seen := make(map[string]struct{})
	uniqueIDs := make([]string, 0, len(ids))
	for _, raw := range ids {
		if raw == "" {
			continue
		}
		normalized := melco.Normalize(raw)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		uniqueIDs = append(uniqueIDs, normalized)
	}

	if len(uniqueIDs) == 0 {
		return &entity.SYS2AvailabilityResult{AvailableIDs: []string{}}, nil
	}

	pool := melco.VariantPool(uniqueIDs)
	if len(pool) == 0 {
		return &entity.SYS2AvailabilityResult{AvailableIDs: []string{}}, nil
	}

	stored, err := s.sys2Repo.DistinctMelcoIDsIn(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("check sys2 availability: %w", err)
	}

	availableNormalized := make(map[string]struct{}, len(stored))
	for _, melcoID := range stored {
		if n := melco.Normalize(melcoID); n != "" {
			availableNormalized[n] = struct{}{}
		}
	}

	available := make([]string, 0, len(uniqueIDs))
	for _, melcoID := range uniqueIDs {
		if _, ok := availableNormalized[melcoID]; ok {
			available = append(available, melcoID)
		}
	}

	return &entity.SYS2AvailabilityResult{AvailableIDs: available}, nil
}

// enrichCFTSNames 把 cfts_name 为空的结果用 CFTS 数据里的名称补齐
func (s *SYS2Service) enrichCFTSNames(ctx context.Context, requirements []entity.SYS2Requirement) error {
	cftsIDs := make([]string, 0, len(requirements))
	seen := make(map[string]struct{})
	for _, req := range requirements {
		if req.CFTSID == "" {
			continue
		}
		if _, ok := seen[req.CFTSID]; ok {
			continue
		}
		seen[req.CFTSID] = struct{}{}
		cftsIDs = append(cftsIDs, req.CFTSID)
	}
	if len(cftsIDs) == 0 {
		return nil
	}

	lookup, err := s.cftsRepo.NameLookup(ctx, cftsIDs)
	if err != nil {
		return fmt.Errorf("lookup cfts names: %w", err)
	}

	for i := range requirements {
		if requirements[i].CFTSID != "" && requirements[i].CFTSName == "" {
			requirements[i].CFTSName = lookup[requirements[i].CFTSID]
		}
	}
	return nil
}
