package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/org-structure-audit/internal/dto"
	"github.com/org-structure-audit/internal/repository"
	"github.com/org-structure-audit/internal/service"
)

// importCmd replaces the stored roster with a CSV file
var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Replace the stored employees with an employee CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	strict, err := strictFlag(cmd)
	if err != nil {
		return err
	}

	db, err := repository.Open(cfg.Database, 1)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := repository.Migrate(sqlDB, cfg.Database.Dialect()); err != nil {
		return err
	}

	svc := service.NewAuditService(repository.NewEmployeeRepository(db), cfg.Audit, logger)
	n, err := svc.Import(cmd.Context(), f, &dto.ImportQuery{Strict: strict})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d employees\n", n)
	return nil
}
