package main

import (
	"github.com/spf13/cobra"

	"github.com/bryanwahyu/scriptguard/internal/bootstrap"
	"github.com/bryanwahyu/scriptguard/internal/config"
	"github.com/bryanwahyu/scriptguard/internal/domain/ai"
)

type commandContext struct {
	configPath   string
	cfg          *config.Config
	newCompleter func(config.OpenAIConfig) ai.Completer
}

func newCommandContext() *commandContext {
	return &commandContext{
		newCompleter: func(c config.OpenAIConfig) ai.Completer { return bootstrap.NewCompleter(c) },
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := c.configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "scriptguard",
		Short:         "Review sponsored video scripts against the brand rubric",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configPath, "config", "c", "", "Configuration file path (default $CONFIG_PATH or config.yaml)")

	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newRubricCommand(ctx))
	return rootCmd
}
