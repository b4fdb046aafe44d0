package ddb

import (
	"context"

	"bumpdeps/internal/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Ledger implements ports.Ledger with one item per repository under a (key, version) partition.
type Ledger struct {
	table string
	cli   *dynamodb.Client
}

type ledgerItem struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
	types.RepoResult
}

// NewLedger creates the table if it doesn't exist yet.
func NewLedger(ctx context.Context, table string, cli *dynamodb.Client) (*Ledger, error) {
	if err := createTableIfNotExists(ctx, cli, table); err != nil {
		return nil, types.Err(types.ErrDataStoreAccess, err, "")
	}
	return &Ledger{table: table, cli: cli}, nil
}

func (l *Ledger) Record(ctx context.Context, key, version string, result types.RepoResult) error {
	item, err := attributevalue.MarshalMap(ledgerItem{
		PK:         pkBump(key, version),
		SK:         skRepo(result.Repo),
		RepoResult: result,
	})
	if err != nil {
		return err
	}
	_, err = l.cli.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &l.table,
		Item:      item,
	})
	if err != nil {
		return types.Err(types.ErrDataStoreAccess, err, "record %s", result.Repo)
	}
	return nil
}

func (l *Ledger) Results(ctx context.Context, key, version string) ([]types.RepoResult, error) {
	input := &dynamodb.QueryInput{
		TableName:              &l.table,
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]ddbTypes.AttributeValue{
			":pk": &ddbTypes.AttributeValueMemberS{Value: pkBump(key, version)},
			":sk": &ddbTypes.AttributeValueMemberS{Value: SRepo + "#"},
		},
		ConsistentRead: aws.Bool(true),
	}
	var out []types.RepoResult
	paginator := dynamodb.NewQueryPaginator(l.cli, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, types.Err(types.ErrDataStoreAccess, err, "query %s", pkBump(key, version))
		}
		for _, raw := range page.Items {
			var it ledgerItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			if it.Repo == "" {
				if it.Repo, err = parseRepo(it.SK); err != nil {
					return nil, err
				}
			}
			out = append(out, it.RepoResult)
		}
	}
	return out, nil
}
