package main

import (
	"fmt"

	"github.com/peihe07/R1L-RTM-V3/internal/trace/importer"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
	"github.com/spf13/cobra"
)

var testcaseCmd = &cobra.Command{
	Use:   "testcase <file>",
	Short: "Import a test case workbook (append-only)",
	Long: `Import test cases from a workbook such as R1L_TestCase.xlsx.

Rows are keyed by the Feature-ID column (a Melco ID); rows without one
are skipped. Unlike the cfts and sys2 importers this import NEVER
updates existing rows: every run appends all rows again, so re-running
the same file doubles the data. Check the row counts before re-running.

Example:
  reqimport testcase ../data/R1L_TestCase.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runTestCaseImport,
}

func runTestCaseImport(cmd *cobra.Command, args []string) error {
	cfg, zapLogger, db, err := setup()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	repo := repository.NewTestCaseRepository(db)
	im := importer.NewTestCaseImporter(repo, zapLogger)

	report, err := im.ImportFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("import testcase workbook: %w", err)
	}

	return finishReport(cmd.Context(), cfg, zapLogger, report, "testcase")
}
