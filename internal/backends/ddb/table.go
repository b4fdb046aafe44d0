package ddb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	SBump = "BUMP"
	SRepo = "REPO"
)

func pkBump(key, version string) string { return fmt.Sprintf("%s#%s#%s", SBump, key, version) }
func skRepo(repo string) string         { return fmt.Sprintf("%s#%s", SRepo, repo) }

func parseRepo(sk string) (string, error) {
	repo, ok := strings.CutPrefix(sk, SRepo+"#")
	if !ok || repo == "" {
		return "", fmt.Errorf("malformed sort key %q", sk)
	}
	return repo, nil
}

func createTableInput(table string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []ddbTypes.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
			{AttributeName: aws.String("SK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
		},
		KeySchema: []ddbTypes.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: ddbTypes.KeyTypeHash},
			{AttributeName: aws.String("SK"), KeyType: ddbTypes.KeyTypeRange},
		},
		BillingMode: ddbTypes.BillingModePayPerRequest,
	}
}

func createTableIfNotExists(ctx context.Context, client *dynamodb.Client, table string) error {
	_, err := client.CreateTable(ctx, createTableInput(table))
	var re *ddbTypes.ResourceInUseException
	if err != nil && !errors.As(err, &re) {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}
