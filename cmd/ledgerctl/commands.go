package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Repuestos-api/pkg/config"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Herramientas de mantenimiento del ledger de repuestos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newVerifyCmd(), newHashPINCmd(), newVersionCmd())
	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})
	return cfg, log, nil
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica o revierte las migraciones embebidas",
	}
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate"))
		},
	})
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Revierte todas las migraciones (solo desarrollo)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ok, _ := cmd.Flags().GetBool("yes"); !ok {
				return fmt.Errorf("migrate down borra todos los datos; confirme con --yes")
			}
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := postgres.MigrateDown(cfg.DB.ConnectionString()); err != nil {
				return err
			}
			log.Warn().Msg("migraciones revertidas")
			return nil
		},
	}
	downCmd.Flags().Bool("yes", false, "Confirma la operación destructiva")
	migrateCmd.AddCommand(downCmd)
	return migrateCmd
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-stock",
		Short: "Recalcula el stock desde el ledger y lo compara con el valor cacheado",
		Long: `Recorre los repuestos (o uno solo con --part) y reproduce sus movimientos.
Solo informa diferencias; no corrige nada. Sale con error si hay alguna.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			loc, err := cfg.Ledger.Location()
			if err != nil {
				return err
			}
			policy, err := ledger.NewPolicy(cfg.Ledger.ExportMergePeriod, cfg.Ledger.ImportMergePeriod,
				cfg.Ledger.FOCReason, cfg.Ledger.FOCInExportTotals, loc)
			if err != nil {
				return err
			}

			pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := inventory.NewVerifyStockUseCase(postgres.NewTxRunner(pool), policy)
			partID, _ := cmd.Flags().GetString("part")
			res, err := uc.Verify(cmd.Context(), partID)
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if err := printVerify(cmd.OutOrStdout(), res, asJSON); err != nil {
				return err
			}
			if !res.Consistent {
				log.Warn().Int("drifts", len(res.Drifts)).Msg("stock inconsistente con el ledger")
				return fmt.Errorf("%d repuestos con diferencias", len(res.Drifts))
			}
			return nil
		},
	}
	cmd.Flags().String("part", "", "Verificar solo este repuesto (amann_material_no)")
	cmd.Flags().Bool("json", false, "Salida en JSON")
	return cmd
}

func printVerify(w io.Writer, res *dto.VerifyStockResponse, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Fprintf(w, "repuestos revisados: %d\n", res.PartsChecked)
	if res.Consistent {
		fmt.Fprintln(w, "sin diferencias")
		return nil
	}
	fmt.Fprintf(w, "%-20s %10s %10s %8s\n", "REPUESTO", "CACHEADO", "LEDGER", "DELTA")
	for _, d := range res.Drifts {
		fmt.Fprintf(w, "%-20s %10d %10d %+8d\n", d.PartID, d.Cached, d.Replayed, d.Delta)
	}
	return nil
}

func newHashPINCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-pin <pin>",
		Short: "Genera el hash bcrypt para ADMIN_PIN_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin := strings.TrimSpace(args[0])
			if pin == "" {
				return fmt.Errorf("el PIN no puede estar vacío")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
