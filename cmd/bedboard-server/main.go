package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/geims/bedboard/internal/config"
	"github.com/geims/bedboard/internal/domain/bedstatus"
	"github.com/geims/bedboard/internal/domain/ward"
	"github.com/geims/bedboard/internal/platform/auth"
	"github.com/geims/bedboard/internal/platform/db"
	"github.com/geims/bedboard/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "bedboard-server",
		Short:        "ICU/HDU bed status board API",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(bedCmd())
	rootCmd.AddCommand(hashPasswordCmd())
	return rootCmd
}

func newLogger(env string, out io.Writer) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the bed board API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg, newLogger(cfg.Env, os.Stdout))
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema for STORE_BACKEND=postgres",
	}

	withMigrator := func(ctx context.Context, fn func(*db.Migrator) error) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for migrations")
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolConfig{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
		if err != nil {
			return err
		}
		defer pool.Close()
		return fn(db.NewMigrator(pool, migrations.FS))
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(m *db.Migrator) error {
				count, err := m.Up(cmd.Context())
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s).\n", count)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(m *db.Migrator) error {
				statuses, err := m.Status(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}
				printMigrationStatus(cmd.OutOrStdout(), statuses)
				return nil
			})
		},
	})
	return cmd
}

func printMigrationStatus(w io.Writer, statuses []db.MigrationStatus) {
	fmt.Fprintf(w, "%-8s %-40s %-8s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
	for _, s := range statuses {
		state, at := "pending", ""
		if s.Applied {
			state = "applied"
			if s.AppliedAt != nil {
				at = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
		}
		fmt.Fprintf(w, "%-8d %-40s %-8s %s\n", s.Version, s.Name, state, at)
	}
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the ward catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			asJSON, _ := cmd.Flags().GetBool("json")
			if file == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				file = cfg.CatalogFile
			}
			cat, err := ward.Load(file)
			if err != nil {
				return err
			}
			return printCatalog(cmd.OutOrStdout(), cat, asJSON)
		},
	}
	cmd.Flags().String("file", "", "Catalog file (defaults to CATALOG_FILE, then the built-in wards)")
	cmd.Flags().Bool("json", false, "Print as JSON")
	return cmd
}

func printCatalog(w io.Writer, cat *ward.Catalog, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cat.ListWards())
	}
	for _, wd := range cat.ListWards() {
		ids := make([]string, 0, len(wd.Beds))
		for _, id := range wd.Beds {
			ids = append(ids, string(id))
		}
		fmt.Fprintf(w, "%s (%d)\n  %s\n", wd.Name, len(wd.Beds), strings.Join(ids, ", "))
	}
	fmt.Fprintf(w, "%d wards, %d distinct beds\n", len(cat.ListWards()), cat.Len())
	return nil
}

func bedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bed",
		Short: "Bed status operations",
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Set the status and patient of one bed",
		RunE: func(cmd *cobra.Command, args []string) error {
			bedID, _ := cmd.Flags().GetString("bed")
			status, _ := cmd.Flags().GetString("status")
			patient, _ := cmd.Flags().GetString("patient")
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				password = os.Getenv("BEDBOARD_ADMIN_PASSWORD")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return bedstatus.ConfigError("%v", err)
			}
			logger := newLogger(cfg.Env, os.Stderr)

			ctx := cmd.Context()
			a, err := openApp(ctx, cfg, logger, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			rec, err := setBed(ctx, a, password, ward.BedID(bedID), status, patient)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", bedID, rec.Status, rec.Patient)
			return nil
		},
	}
	setCmd.Flags().String("bed", "", "Bed id")
	setCmd.Flags().String("status", "", "New status")
	setCmd.Flags().String("patient", "", "Patient name (empty clears it)")
	setCmd.Flags().String("password", "", "Admin password (or BEDBOARD_ADMIN_PASSWORD)")
	_ = setCmd.MarkFlagRequired("bed")
	_ = setCmd.MarkFlagRequired("status")
	cmd.AddCommand(setCmd)
	return cmd
}

// setBed runs the same guard as the HTTP admin routes before writing.
func setBed(ctx context.Context, a *app, credential string, id ward.BedID, status, patient string) (bedstatus.BedRecord, error) {
	if !a.guards.passwords.Authorize(ctx, credential) {
		return bedstatus.BedRecord{}, &bedstatus.WriteError{BedID: id, Kind: bedstatus.ErrUnauthorized}
	}
	return a.svc.Apply(auth.WithAdminMethod(ctx, auth.MethodCLI), id, status, patient)
}

func hashPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().String("password", "", "Password to hash (read from stdin when empty)")
	return cmd
}
