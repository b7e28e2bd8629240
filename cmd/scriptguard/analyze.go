package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/scriptguard/internal/application/review"
	"github.com/bryanwahyu/scriptguard/internal/bootstrap"
	"github.com/bryanwahyu/scriptguard/internal/infra/ai/prompt"
	"github.com/bryanwahyu/scriptguard/internal/infra/logging"
	"github.com/bryanwahyu/scriptguard/internal/response"
)

// errRejected makes the process exit non-zero without printing an error.
var errRejected = errors.New("script not approved")

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var creator string
	var briefType string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a script file (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			content, err := readScript(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			logger := logging.NewWithWriter(cfg.Log, cmd.ErrOrStderr())
			rb, err := bootstrap.LoadRubric(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			renderer, err := prompt.New(cfg.Analysis.Brand)
			if err != nil {
				return err
			}
			svc := review.NewService(ctx.newCompleter(cfg.OpenAI), renderer, rb,
				review.WithLogger(logger),
				review.WithParallel(cfg.Analysis.Parallel),
			)

			env := response.NewHandler(svc, logger).Analyze(cmd.Context(), response.Request{
				Content:     content,
				CreatorName: creator,
				BriefType:   briefType,
			})

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(env); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, renderEnvelope(env))
			}

			if env.Body.Status != response.StatusApproved {
				return errRejected
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&creator, "creator", "", "Creator name")
	cmd.Flags().StringVar(&briefType, "brief-type", "", "Optional brief type")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the response envelope as JSON")
	_ = cmd.MarkFlagRequired("creator")
	return cmd
}

func readScript(path string, stdin io.Reader) (string, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(raw), nil
}
