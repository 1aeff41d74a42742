package main

import (
	"context"
	"log"

	"kernelworx-backend/infrastructure/config"
	"kernelworx-backend/infrastructure/di"
	"kernelworx-backend/interfaces/appsync"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	resolver := appsync.NewResolver(container)
	lambda.Start(resolver.Handle)
}
