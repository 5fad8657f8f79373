package importer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/peihe07/R1L-RTM-V3/internal/trace/entity"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// SYS2Importer 导入 SYS.2 要件工作簿（R1L_SYS.2.xlsx），按 melco_id upsert
type SYS2Importer struct {
	repo   *repository.SYS2Repository
	logger *zap.Logger
}

// NewSYS2Importer 创建 SYS.2 导入器
func NewSYS2Importer(repo *repository.SYS2Repository, logger *zap.Logger) *SYS2Importer {
	return &SYS2Importer{repo: repo, logger: logger}
}

// ParseFile 解析工作簿。列名英文优先、日文兜底；
// 没有 Melco ID 的行跳过；cfts_id 从 melco_id 里的 CFTS\d+ 片段推出。
func (im *SYS2Importer) ParseFile(path string) ([]entity.SYS2Requirement, int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	rows, err := readSheet(f)
	if err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	total := len(rows)

	records := make([]entity.SYS2Requirement, 0, total)
	for _, row := range rows {
		melcoID := row.get("Melco Id", "要件ID")
		if melcoID == "" {
			continue
		}

		records = append(records, entity.SYS2Requirement{
			MelcoID:               melcoID,
			CFTSID:                cftsIDPattern.FindString(melcoID),
			CFTSName:              "", // 查询时从 CFTS 数据补齐
			RequirementEN:         row.get("Requirement", "要件(英語)"),
			ReasonEN:              row.get("Reason", "理由(英語)"),
			SupplementEN:          row.get("Supplementary", "補足(英語)"),
			ConfirmationPhase:     row.get("Verification Phase", "確認フェーズ"),
			VerificationCriteria:  row.get("Verification Criteria", "検証基準"),
			Type:                  row.get("Type", "種別"),
			RelatedRequirementIDs: row.get("Related Requirement ID", "関連要件ID"),
			R1LSR21CFTS:           row.get("(R1L_SR21CFTS)"),
			R1LSR22CFTS:           row.get("(R1L_SR22CFTS)"),
			R1LSR23CFTS:           row.get("(R1L_SR23CFTS)"),
			R1LSR24CFTS:           row.get("(R1L_SR24CFTS)"),
		})
	}
	return records, total, nil
}

// ImportFile 导入单个工作簿，每条记录独立提交，失败行记入报告后继续
func (im *SYS2Importer) ImportFile(ctx context.Context, path string) (*Report, error) {
	records, total, err := im.ParseFile(path)
	if err != nil {
		return nil, err
	}

	report := &Report{
		TotalRecords: total,
		ValidRecords: len(records),
		Errors:       []RowError{},
	}

	for i := range records {
		isNew, err := im.repo.Upsert(ctx, &records[i])
		if err != nil {
			im.logger.Warn("Failed to import SYS.2 requirement",
				zap.String("melco_id", records[i].MelcoID), zap.Error(err))
			report.Errors = append(report.Errors, RowError{
				Key:   records[i].MelcoID,
				Error: err.Error(),
			})
			continue
		}
		if isNew {
			report.InsertedRecords++
		}
	}
	report.SkippedRecords = report.ValidRecords - report.InsertedRecords

	im.logger.Info("SYS.2 workbook imported",
		zap.String("file", filepath.Base(path)),
		zap.Int("total", total),
		zap.Int("valid", report.ValidRecords),
		zap.Int("inserted", report.InsertedRecords),
	)
	return report, nil
}
