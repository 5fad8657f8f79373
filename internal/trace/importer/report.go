package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RowError 单行/单文件导入错误
type RowError struct {
	File  string `json:"file,omitempty"`
	Key   string `json:"key,omitempty"`
	Error string `json:"error"`
}

// Report 导入运行报告。
// 行级错误只记录不中断：一次运行里失败的行不影响其余行的提交。
type Report struct {
	TotalFiles      int        `json:"total_files,omitempty"`
	SuccessFiles    []string   `json:"success_files,omitempty"`
	FailedFiles     []string   `json:"failed_files,omitempty"`
	TotalRecords    int        `json:"total_records"`
	ValidRecords    int        `json:"valid_records"`
	InsertedRecords int        `json:"inserted_records"`
	SkippedRecords  int        `json:"skipped_records"`
	Errors          []RowError `json:"errors"`
}

// Save 把报告落盘为 <prefix>_import_report_<时间戳>.json，返回文件路径
func (r *Report) Save(dir, prefix string) (string, error) {
	name := fmt.Sprintf("%s_import_report_%s.json", prefix, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
