package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConcurrentCommit is returned when another writer committed a
// snapshot between Latest and Commit.
var ErrConcurrentCommit = errors.New("concurrent snapshot commit detected")

// DDBClient is the interface for the DynamoDB operations LatestPointer
// uses. *dynamodb.Client satisfies it.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// LatestPointer records which snapshot under a base URI is current.
// S3 has no compare-and-swap, so the pointer lives in DynamoDB as a
// monotonically versioned item list; conditional writes make commits
// atomic and let multiple writers coordinate safely.
//
// Table schema:
//   - Partition key: base_uri (string) - the S3 prefix/path
//   - Sort key: version (number) - monotonically increasing version
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name grid-snapshots \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type LatestPointer struct {
	client    DDBClient
	tableName string
	baseURI   string
}

// NewLatestPointer creates a pointer store for the given table and base
// URI (e.g. "s3://bucket/prefix").
func NewLatestPointer(client DDBClient, tableName, baseURI string) *LatestPointer {
	return &LatestPointer{
		client:    client,
		tableName: tableName,
		baseURI:   baseURI,
	}
}

// Latest returns the newest committed version and the snapshot name it
// points at. Version 0 with an empty name means nothing was committed
// yet.
func (p *LatestPointer) Latest(ctx context.Context) (uint64, string, error) {
	resp, err := p.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(p.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: p.baseURI},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to query DynamoDB: %w", err)
	}

	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in DynamoDB")
	}
	nameAttr, ok := item["snapshot"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid snapshot attribute in DynamoDB")
	}

	var version uint64
	if _, err := fmt.Sscanf(versionAttr.Value, "%d", &version); err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}

	return version, nameAttr.Value, nil
}

// Commit atomically records name as the latest snapshot and returns the
// version it was committed under. A conditional put guards against a
// racing writer taking the same version.
func (p *LatestPointer) Commit(ctx context.Context, name string) (uint64, error) {
	currentVersion, _, err := p.Latest(ctx)
	if err != nil {
		return 0, err
	}

	newVersion := currentVersion + 1

	_, err = p.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(p.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri": &types.AttributeValueMemberS{Value: p.baseURI},
			"version":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", newVersion)},
			"snapshot": &types.AttributeValueMemberS{Value: name},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentCommit
		}
		return 0, fmt.Errorf("failed to commit version to DynamoDB: %w", err)
	}

	return newVersion, nil
}
