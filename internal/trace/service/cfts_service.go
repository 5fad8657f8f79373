package service

import (
	"context"
	"fmt"

	"github.com/peihe07/R1L-RTM-V3/internal/trace/entity"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
)

// CFTSService CFTS 需求查询服务
type CFTSService struct {
	cftsRepo *repository.CFTSRepository
}

// NewCFTSService 创建 CFTS 需求查询服务
func NewCFTSService(cftsRepo *repository.CFTSRepository) *CFTSService {
	return &CFTSService{cftsRepo: cftsRepo}
}

// SearchByCFTSID 按 CFTS ID 搜索需求（前缀/精确策略见仓库层），无命中返回 ErrNotFound
func (s *CFTSService) SearchByCFTSID(ctx context.Context, cftsID string) (*entity.CFTSSearchResult, error) {
	requirements, err := s.cftsRepo.SearchByCFTSID(ctx, cftsID)
	if err != nil {
		return nil, fmt.Errorf("search cfts requirements: %w", err)
	}
	if len(requirements) == 0 {
		return nil, repository.ErrNotFound
	}

	return &entity.CFTSSearchResult{
		CFTSID:       cftsID,
		Requirements: requirements,
		TotalCount:   len(requirements),
	}, nil
}

// SearchByReqID 按 Req.ID 搜索，返回该需求所在 CFTS 组的全部需求，
// 并用 target_req_id 标记请求的那一条
func (s *CFTSService) SearchByReqID(ctx context.Context, reqID string) (*entity.CFTSSearchResult, error) {
	requirement, err := s.cftsRepo.FindByReqID(ctx, reqID)
	if err != nil {
		return nil, err
	}

	requirements, err := s.cftsRepo.SearchByCFTSID(ctx, requirement.CFTSID)
	if err != nil {
		return nil, fmt.Errorf("expand cfts group: %w", err)
	}

	return &entity.CFTSSearchResult{
		CFTSID:       requirement.CFTSID,
		Requirements: requirements,
		TotalCount:   len(requirements),
		TargetReqID:  reqID,
	}, nil
}

// GetRequirement 按 Req.ID 取单条需求
func (s *CFTSService) GetRequirement(ctx context.Context, reqID string) (*entity.CFTSRequirement, error) {
	return s.cftsRepo.FindByReqID(ctx, reqID)
}

// List 分页获取全部需求
func (s *CFTSService) List(ctx context.Context, skip, limit int) ([]entity.CFTSRequirement, error) {
	return s.cftsRepo.List(ctx, skip, limit)
}

// AutocompleteCFTSIDs 自动补全用的 CFTS 列表，格式 "CFTS016 Anti-Theft"，
// 没有名称时只给 ID
func (s *CFTSService) AutocompleteCFTSIDs(ctx context.Context) ([]string, error) {
	pairs, err := s.cftsRepo.DistinctCFTSPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cfts pairs: %w", err)
	}

	result := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.CFTSID == "" {
			continue
		}
		if p.CFTSName != "" {
			result = append(result, p.CFTSID+" "+p.CFTSName)
		} else {
			result = append(result, p.CFTSID)
		}
	}
	return result, nil
}

// AutocompleteReqIDs Req.ID 自动补全，最多 100 条
func (s *CFTSService) AutocompleteReqIDs(ctx context.Context, query string) ([]string, error) {
	return s.cftsRepo.AutocompleteReqIDs(ctx, query, 100)
}
