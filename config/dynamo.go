package config

import "strings"

// DynamoConfig contains the DynamoDB connection and schema settings.
//
// TableName and UnprocessedIndex have no defaults: startup fails when either is missing.
type DynamoConfig struct {
	Region          string `env:"AWS_REGION"            envDefault:"us-east-1" validate:"required"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	// Endpoint overrides the service endpoint (e.g. http://localhost:8000 for DynamoDB Local).
	Endpoint string `env:"DYNAMODB_ENDPOINT"`

	TableName        string `env:"DYNAMODB_TABLE_NAME"             validate:"required"`
	UnprocessedIndex string `env:"DYNAMODB_UNPROCESSED_JOBS_INDEX" validate:"required"`
}

// Sanitize trims whitespace from identifiers copied from shell environments.
func (d *DynamoConfig) Sanitize() {
	d.Region = strings.TrimSpace(d.Region)
	d.Endpoint = strings.TrimSpace(d.Endpoint)
	d.TableName = strings.TrimSpace(d.TableName)
	d.UnprocessedIndex = strings.TrimSpace(d.UnprocessedIndex)
}

// HasStaticCredentials reports whether both halves of a static key pair were supplied.
func (d *DynamoConfig) HasStaticCredentials() bool {
	return d.AccessKeyID != "" && d.SecretAccessKey != ""
}
