package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/scriptguard/internal/bootstrap"
	"github.com/bryanwahyu/scriptguard/internal/config"
	"github.com/bryanwahyu/scriptguard/internal/infra/rubric"
)

func newRubricCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rubric",
		Short: "Inspect and publish the active rubric",
	}
	cmd.AddCommand(newRubricExportCommand(ctx))
	cmd.AddCommand(newRubricPushCommand(ctx))
	return cmd
}

func newRubricExportCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active rubric as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rb, err := bootstrap.LoadRubric(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if outPath == "" {
				return rubric.Encode(cmd.OutOrStdout(), rb.Document())
			}
			raw, err := rubric.Marshal(rb.Document())
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, raw, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote rubric to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newRubricPushCommand(ctx *commandContext) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload the active rubric to MinIO or a database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rb, err := bootstrap.LoadRubric(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			doc := rb.Document()

			switch target {
			case config.RubricMinio:
				store, err := bootstrap.NewStore(cmd.Context(), cfg, true)
				if err != nil {
					return err
				}
				url, err := store.Push(cmd.Context(), cfg.Minio.ObjectKey, doc)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pushed rubric to %s\n", url)
			case config.RubricMySQL, config.RubricPostgres:
				repo, db, err := bootstrap.OpenRubricRepository(cmd.Context(), cfg, target)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := repo.Save(cmd.Context(), doc); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved rubric to %s database %s\n", target, cfg.Database.Name)
			default:
				return fmt.Errorf("unknown push target %q (want minio, mysql or postgres)", target)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", config.RubricMinio, "Destination: minio, mysql or postgres")
	return cmd
}
