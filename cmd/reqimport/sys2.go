package main

import (
	"fmt"

	"github.com/peihe07/R1L-RTM-V3/internal/trace/importer"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
	"github.com/spf13/cobra"
)

var sys2Cmd = &cobra.Command{
	Use:   "sys2 <file>",
	Short: "Import a SYS.2 requirement workbook",
	Long: `Import SYS.2 requirements from a workbook such as R1L_SYS.2.xlsx.

Column names are matched English-first with a Japanese fallback
(e.g. "Melco Id" / "要件ID"). Rows without a Melco ID are skipped;
rows are upserted by Melco ID. The CFTS number is derived from the
CFTS\d+ fragment inside the Melco ID.

Example:
  reqimport sys2 ../data/R1L_SYS.2.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runSYS2Import,
}

func runSYS2Import(cmd *cobra.Command, args []string) error {
	cfg, zapLogger, db, err := setup()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	repo := repository.NewSYS2Repository(db)
	im := importer.NewSYS2Importer(repo, zapLogger)

	report, err := im.ImportFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("import sys2 workbook: %w", err)
	}

	return finishReport(cmd.Context(), cfg, zapLogger, report, "sys2")
}
