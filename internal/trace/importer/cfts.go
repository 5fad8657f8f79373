package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/peihe07/R1L-RTM-V3/internal/trace/entity"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var (
	cftsIDPattern = regexp.MustCompile(`CFTS\d+`)
	// 文件名形如 CFTS016_Anti-Theft.xlsx 或 SYS1_CFTS016_Anti-Theft_SR26.xlsx，
	// 名称取 CFTS 编号到可选的 _SR\d+ 后缀之间的部分
	cftsNamePattern = regexp.MustCompile(`CFTS\d+[_\s](.+?)(?:_SR\d+)?\.(xlsx|xls)$`)
)

// CFTSImporter 从文件夹批量导入 CFTS Excel 文件，按 req_id upsert
type CFTSImporter struct {
	repo   *repository.CFTSRepository
	logger *zap.Logger
}

// NewCFTSImporter 创建 CFTS 导入器
func NewCFTSImporter(repo *repository.CFTSRepository, logger *zap.Logger) *CFTSImporter {
	return &CFTSImporter{repo: repo, logger: logger}
}

// FindExcelFiles 找出文件夹下的 CFTS Excel 文件（CFTS* 或 SYS1_CFTS* 前缀）
func (im *CFTSImporter) FindExcelFiles(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, "CFTS") && !strings.HasPrefix(name, "SYS1_CFTS") {
			continue
		}
		if strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xls") {
			files = append(files, filepath.Join(folder, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// ExtractCFTSFromFilename 从文件名解析 (cfts_id, cfts_name)
func ExtractCFTSFromFilename(filename string) (string, string) {
	cftsID := cftsIDPattern.FindString(filename)

	cftsName := ""
	if m := cftsNamePattern.FindStringSubmatch(filename); m != nil {
		cftsName = strings.TrimSpace(m[1])
	}
	return cftsID, cftsName
}

// ParseFile 解析单个 CFTS Excel 文件，返回有效记录和文件总行数。
// 没有 req_id 的行跳过；melco_id 原样保留（含内嵌换行），只去首尾空白。
func (im *CFTSImporter) ParseFile(path string) ([]entity.CFTSRequirement, int, error) {
	cftsID, cftsName := ExtractCFTSFromFilename(filepath.Base(path))
	if cftsID == "" {
		return nil, 0, fmt.Errorf("could not extract CFTS number from filename: %s", filepath.Base(path))
	}

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

	records := make([]entity.CFTSRequirement, 0, total)
	for _, row := range rows {
		reqID := row.get("ReqIF.ForeignID")
		if reqID == "" {
			continue
		}

		records = append(records, entity.CFTSRequirement{
			CFTSID:          cftsID,
			CFTSName:        cftsName,
			ReqID:           reqID,
			SourceID:        row.get("Source Id"),
			Description:     row.get("SR26 Description"),
			SR24Description: row.get("SR24 Description"),
			MelcoID:         row.get("Melco Id"),
		})
	}
	return records, total, nil
}

// ImportFolder 处理文件夹下全部 CFTS 文件。
// 每条记录独立提交，单行失败记入报告后继续；单个文件解析失败同样只记录。
func (im *CFTSImporter) ImportFolder(ctx context.Context, folder string) (*Report, error) {
	files, err := im.FindExcelFiles(folder)
	if err != nil {
		return nil, err
	}

	report := &Report{
		TotalFiles:   len(files),
		SuccessFiles: []string{},
		FailedFiles:  []string{},
		Errors:       []RowError{},
	}

	for _, path := range files {
		base := filepath.Base(path)
		im.logger.Info("Processing CFTS file", zap.String("file", base))

		records, total, err := im.ParseFile(path)
		if err != nil {
			im.logger.Error("Failed to parse CFTS file", zap.String("file", base), zap.Error(err))
			report.FailedFiles = append(report.FailedFiles, base)
			report.Errors = append(report.Errors, RowError{File: base, Error: err.Error()})
			continue
		}

		inserted := 0
		for i := range records {
			isNew, err := im.repo.Upsert(ctx, &records[i])
			if err != nil {
				im.logger.Warn("Failed to import CFTS requirement",
					zap.String("req_id", records[i].ReqID), zap.Error(err))
				report.Errors = append(report.Errors, RowError{
					File:  base,
					Key:   records[i].ReqID,
					Error: err.Error(),
				})
				continue
			}
			if isNew {
				inserted++
			}
		}

		report.SuccessFiles = append(report.SuccessFiles, base)
		report.TotalRecords += total
		report.ValidRecords += len(records)
		report.InsertedRecords += inserted
		report.SkippedRecords += len(records) - inserted

		im.logger.Info("CFTS file imported",
			zap.String("file", base),
			zap.Int("total", total),
			zap.Int("valid", len(records)),
			zap.Int("inserted", inserted),
		)
	}

	return report, nil
}
