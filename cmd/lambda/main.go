package main

import (
	"context"
	"log/slog"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/bryanwahyu/scriptguard/internal/bootstrap"
	"github.com/bryanwahyu/scriptguard/internal/config"
	"github.com/bryanwahyu/scriptguard/internal/infra/lambda"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		slog.Error("config load", "error", err)
		os.Exit(1)
	}

	// Cold start: the rubric is loaded once per execution environment.
	app, err := bootstrap.New(context.Background(), cfg)
	if err != nil {
		slog.Error("bootstrap", "error", err)
		os.Exit(1)
	}

	awslambda.Start(lambda.NewHandler(app.Handler, app.Logger).Handle)
}
