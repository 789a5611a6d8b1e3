package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jobpilot/jobreview/config"
)

// DynamoConnectConfig contains configuration for the DynamoDB client.
type DynamoConnectConfig struct {
	Dynamo config.DynamoConfig
	Logger *slog.Logger
}

// ConnectDynamo builds a DynamoDB client from the region, optional static credentials and
// optional endpoint override. Without static credentials the default AWS chain is used.
// No request is made here; the first store call surfaces connectivity problems.
// SDK retries are disabled: every store operation is a single attempt.
func ConnectDynamo(ctx context.Context, cfg DynamoConnectConfig) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Dynamo.Region),
		awsconfig.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	}
	if cfg.Dynamo.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Dynamo.AccessKeyID, cfg.Dynamo.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Dynamo.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Dynamo.Endpoint)
		}
	})

	if cfg.Logger != nil {
		cfg.Logger.InfoContext(ctx, "dynamodb client configured",
			"region", cfg.Dynamo.Region,
			"table", cfg.Dynamo.TableName,
			"index", cfg.Dynamo.UnprocessedIndex,
			"endpoint_override", cfg.Dynamo.Endpoint != "",
			"static_credentials", cfg.Dynamo.HasStaticCredentials(),
		)
	}
	return client, nil
}
