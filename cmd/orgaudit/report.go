package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/org-structure-audit/internal/dto"
	"github.com/org-structure-audit/internal/service"
)

// reportCmd prints the findings for a CSV file
var reportCmd = &cobra.Command{
	Use:   "report <file.csv>",
	Short: "Print findings for an employee CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	query, err := auditQuery(cmd)
	if err != nil {
		return err
	}

	svc := service.NewAuditService(nil, cfg.Audit, logger)
	outcome, err := svc.AuditUpload(cmd.Context(), f, query)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, line := range outcome.Result.Lines() {
		fmt.Fprintln(out, line)
	}
	return nil
}

func auditQuery(cmd *cobra.Command) (*dto.AuditQuery, error) {
	flags := cmd.Flags()
	query := &dto.AuditQuery{}

	var err error
	if query.Lower, err = flags.GetString("lower"); err != nil {
		return nil, err
	}
	if query.Upper, err = flags.GetString("upper"); err != nil {
		return nil, err
	}
	if query.MaxLevel, err = flags.GetInt("max-level"); err != nil {
		return nil, err
	}
	query.Strict, err = strictFlag(cmd)
	if err != nil {
		return nil, err
	}
	return query, nil
}

// strictFlag возвращает nil, если флаг не задан явно
func strictFlag(cmd *cobra.Command) (*bool, error) {
	if !cmd.Flags().Changed("strict") {
		return nil, nil
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return nil, err
	}
	return &strict, nil
}
