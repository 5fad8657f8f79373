package main

import (
	"fmt"

	"github.com/peihe07/R1L-RTM-V3/internal/trace/importer"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
	"github.com/spf13/cobra"
)

var cftsCmd = &cobra.Command{
	Use:   "cfts <folder>",
	Short: "Import CFTS requirement spreadsheets from a folder",
	Long: `Import all CFTS Excel files (CFTS* / SYS1_CFTS* prefix, .xlsx/.xls)
found in the given folder.

The CFTS number and name are taken from the filename, e.g.
  CFTS016_Anti-Theft.xlsx           -> CFTS016 / Anti-Theft
  SYS1_CFTS016_Anti-Theft_SR26.xlsx -> CFTS016 / Anti-Theft

Rows are upserted by Req.ID (ReqIF.ForeignID column); rows without one
are skipped.

Example:
  reqimport cfts ../data/CFTS`,
	Args: cobra.ExactArgs(1),
	RunE: runCFTSImport,
}

func runCFTSImport(cmd *cobra.Command, args []string) error {
	cfg, zapLogger, db, err := setup()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	repo := repository.NewCFTSRepository(db)
	im := importer.NewCFTSImporter(repo, zapLogger)

	report, err := im.ImportFolder(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("import cfts folder: %w", err)
	}

	return finishReport(cmd.Context(), cfg, zapLogger, report, "cfts")
}
