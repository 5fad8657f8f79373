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

// TestCaseImporter 导入测试案例工作簿（R1L_TestCase.xlsx）。
// 与另外两个导入器不同：永远无条件插入，不做 upsert，
// 重复导入同一个文件会把所有行再插一遍。
type TestCaseImporter struct {
	repo   *repository.TestCaseRepository
	logger *zap.Logger
}

// NewTestCaseImporter 创建测试案例导入器
func NewTestCaseImporter(repo *repository.TestCaseRepository, logger *zap.Logger) *TestCaseImporter {
	return &TestCaseImporter{repo: repo, logger: logger}
}

// ParseFile 解析工作簿，没有 Feature-ID 的行跳过
func (im *TestCaseImporter) ParseFile(path string) ([]entity.TestCase, int, error) {
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

	records := make([]entity.TestCase, 0, total)
	for _, row := range rows {
		featureID := row.get("Feature-ID")
		if featureID == "" {
			continue
		}

		records = append(records, entity.TestCase{
			FeatureID:               featureID,
			Source:                  row.get("Source"),
			Title:                   row.get("Title"),
			Section:                 row.get("Section"),
			TestItemEN:              row.get("TestItem(EN)"),
			PreconditionProcedureJP: row.get("Precondition/Procedure(JP)"),
			CriteriaJP:              row.get("Criteria(JP)"),
			MP:                      row.get("MP"),
			DS:                      row.get("DS"),
			DT:                      row.get("DT"),
			HDCC:                    row.get("HDCC"),
			RU:                      row.get("RU"),
			Specification:           row.get("Specification"),
			Priority:                row.get("Priority"),
			TestVersion:             row.get("Test Version"),
			TestResult:              row.get("Test Result"),
			Tester:                  row.get("Tester"),
			IssueID:                 row.get("Issue ID"),
			Note:                    row.get("Note"),
		})
	}
	return records, total, nil
}

// ImportFile 导入单个工作簿，每行独立提交，失败行记入报告后继续
func (im *TestCaseImporter) ImportFile(ctx context.Context, path string) (*Report, error) {
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
		if err := im.repo.Insert(ctx, &records[i]); err != nil {
			im.logger.Warn("Failed to import test case",
				zap.String("title", records[i].Title), zap.Error(err))
			report.Errors = append(report.Errors, RowError{
				Key:   records[i].Title,
				Error: err.Error(),
			})
			continue
		}
		report.InsertedRecords++
	}
	report.SkippedRecords = report.ValidRecords - report.InsertedRecords

	im.logger.Info("Test case workbook imported",
		zap.String("file", filepath.Base(path)),
		zap.Int("total", total),
		zap.Int("valid", report.ValidRecords),
		zap.Int("inserted", report.InsertedRecords),
	)
	return report, nil
}
