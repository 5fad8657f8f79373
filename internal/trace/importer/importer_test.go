package importer

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peihe07/R1L-RTM-V3/internal/trace/entity"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// writeWorkbook 生成测试用 xlsx：第一行表头，后面是数据行
func writeWorkbook(t *testing.T, path string, header []string, rows [][]string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := append([][]string{header}, rows...)
	for i, row := range all {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellStr(sheet, cell, val))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestExtractCFTSFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		wantID   string
		wantName string
	}{
		{"CFTS016_Anti-Theft.xlsx", "CFTS016", "Anti-Theft"},
		{"SYS1_CFTS016_Anti-Theft_SR26.xlsx", "CFTS016", "Anti-Theft"},
		{"CFTS114_Power Window_SR21.xlsx", "CFTS114", "Power Window"},
		{"CFTS017.xlsx", "CFTS017", ""},
		{"notes.xlsx", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			id, name := ExtractCFTSFromFilename(tt.filename)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestCFTSImportFolder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	im := NewCFTSImporter(repos.CFTS, zap.NewNop())
	folder := t.TempDir()

	header := []string{"ReqIF.ForeignID", "Source Id", "SR26 Description", "SR24 Description", "Melco Id"}
	writeWorkbook(t, filepath.Join(folder, "CFTS016_Anti-Theft.xlsx"), header, [][]string{
		{"R1", "S1", "Lock doors", "Lock all doors", "PSCFTS016-1"},
		{"", "S2", "no req id, skipped", "", ""},
		{"R2", "S3", "Unlock doors", "", "PSCFTS016-2"},
	})
	// 前缀不匹配的文件忽略
	writeWorkbook(t, filepath.Join(folder, "Other.xlsx"), header, [][]string{
		{"X1", "", "should not be imported", "", ""},
	})

	ctx := context.Background()
	report, err := im.ImportFolder(ctx, folder)
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalFiles)
	assert.Equal(t, []string{"CFTS016_Anti-Theft.xlsx"}, report.SuccessFiles)
	assert.Equal(t, 3, report.TotalRecords)
	assert.Equal(t, 2, report.ValidRecords)
	assert.Equal(t, 2, report.InsertedRecords)
	assert.Empty(t, report.Errors)

	count, err := repos.CFTS.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	req, err := repos.CFTS.FindByReqID(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, "CFTS016", req.CFTSID)
	assert.Equal(t, "Anti-Theft", req.CFTSName)
	assert.Equal(t, "Lock doors", req.Description)
	assert.Equal(t, "Lock all doors", req.SR24Description)
}

func TestCFTSImportRerunUpdatesInsteadOfDuplicating(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	im := NewCFTSImporter(repos.CFTS, zap.NewNop())
	folder := t.TempDir()

	header := []string{"ReqIF.ForeignID", "SR26 Description"}
	path := filepath.Join(folder, "CFTS016_Anti-Theft.xlsx")
	writeWorkbook(t, path, header, [][]string{
		{"R1", "original"},
		{"R2", "original"},
	})

	ctx := context.Background()
	_, err := im.ImportFolder(ctx, folder)
	require.NoError(t, err)

	writeWorkbook(t, path, header, [][]string{
		{"R1", "updated"},
		{"R2", "original"},
	})
	report, err := im.ImportFolder(ctx, folder)
	require.NoError(t, err)

	// 第二次全是既有 req_id：插入 0，按更新处理
	assert.Equal(t, 0, report.InsertedRecords)
	assert.Equal(t, 2, report.SkippedRecords)

	count, err := repos.CFTS.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	req, err := repos.CFTS.FindByReqID(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, "updated", req.Description)
}

func TestSYS2ImportJapaneseHeaders(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	im := NewSYS2Importer(repos.SYS2, zap.NewNop())

	path := filepath.Join(t.TempDir(), "R1L_SYS.2.xlsx")
	writeWorkbook(t, path,
		[]string{"要件ID", "要件(英語)", "理由(英語)", "種別", "(R1L_SR21CFTS)"},
		[][]string{
			{"PSCFTS016-1-4-2", "Vehicle shall lock doors", "Safety", "Functional", "SR21-1"},
			{"", "row without melco id, skipped", "", "", ""},
		})

	ctx := context.Background()
	report, err := im.ImportFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalRecords)
	assert.Equal(t, 1, report.ValidRecords)
	assert.Equal(t, 1, report.InsertedRecords)

	var req entity.SYS2Requirement
	require.NoError(t, db.Where("melco_id = ?", "PSCFTS016-1-4-2").First(&req).Error)
	// cfts_id 从 melco_id 推出
	assert.Equal(t, "CFTS016", req.CFTSID)
	assert.Equal(t, "Vehicle shall lock doors", req.RequirementEN)
	assert.Equal(t, "Safety", req.ReasonEN)
	assert.Equal(t, "SR21-1", req.R1LSR21CFTS)
}

func TestSYS2ImportPartialFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	im := NewSYS2Importer(repos.SYS2, zap.NewNop())

	// melco_id 列宽 128，超长行入库失败，但不拖垮整个文件
	tooLong := "PSCFTS016-" + strings.Repeat("9", 130)
	rows := [][]string{
		{"PSCFTS016-1", "req one"},
		{"PSCFTS016-2", "req two"},
		{tooLong, "oversized id"},
		{"PSCFTS016-3", "req three"},
		{"PSCFTS016-4", "req four"},
	}
	path := filepath.Join(t.TempDir(), "R1L_SYS.2.xlsx")
	writeWorkbook(t, path, []string{"Melco Id", "Requirement"}, rows)

	ctx := context.Background()
	report, err := im.ImportFile(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, 5, report.ValidRecords)
	assert.Equal(t, 4, report.InsertedRecords)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, tooLong, report.Errors[0].Key)

	count, err := repos.SYS2.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestTestCaseImportAppendsOnRerun(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	im := NewTestCaseImporter(repos.TestCase, zap.NewNop())

	path := filepath.Join(t.TempDir(), "R1L_TestCase.xlsx")
	writeWorkbook(t, path,
		[]string{"Feature-ID", "Source", "Title", "TestItem(EN)"},
		[][]string{
			{"PSCFTS016-1", "IT3", "Door lock", "Lock all doors"},
			{"PSCFTS016-1", "IT3", "Door unlock", "Unlock all doors"},
		})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		report, err := im.ImportFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 2, report.InsertedRecords, "run %d", i+1)
	}

	// 纯追加：重复导入把行数翻倍
	count, err := repos.TestCase.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestReportSave(t *testing.T) {
	dir := t.TempDir()
	report := &Report{
		TotalRecords:    3,
		ValidRecords:    2,
		InsertedRecords: 2,
		Errors:          []RowError{},
	}

	path, err := report.Save(dir, "cfts")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	base := filepath.Base(path)
	assert.True(t, strings.HasPrefix(base, "cfts_import_report_"), base)
	assert.True(t, strings.HasSuffix(base, ".json"), base)
}

func TestFindExcelFilesSorted(t *testing.T) {
	folder := t.TempDir()
	header := []string{"ReqIF.ForeignID"}
	for _, name := range []string{"CFTS017_B.xlsx", "SYS1_CFTS016_A_SR26.xlsx", "CFTS016_A.xlsx"} {
		writeWorkbook(t, filepath.Join(folder, name), header, nil)
	}

	im := NewCFTSImporter(nil, zap.NewNop())
	files, err := im.FindExcelFiles(folder)
	require.NoError(t, err)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	assert.Equal(t, []string{"CFTS016_A.xlsx", "CFTS017_B.xlsx", "SYS1_CFTS016_A_SR26.xlsx"}, names)
}
