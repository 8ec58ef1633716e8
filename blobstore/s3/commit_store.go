package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConcurrentModification is returned when another writer committed a
// model version concurrently.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// DDBClient is the subset of DynamoDB operations the commit store uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// CommitStore publishes which model blob is current.
//
// S3 cannot atomically swap a "latest" pointer, so the pointer lives in a
// DynamoDB table instead: each successful save commits a new monotonically
// increasing version whose item names the model object key. Readers query
// the highest version to resolve the current model; stale readers never
// observe a half-written object because model blobs themselves are
// immutable once uploaded.
//
// Table schema:
//   - Partition key: base_uri (string) - the s3://bucket/prefix of the store
//   - Sort key: version (number) - monotonically increasing commit version
type CommitStore struct {
	client    DDBClient
	tableName string
	baseURI   string
}

// NewCommitStore creates a commit store over the given DynamoDB table.
// baseURI should be the "s3://bucket/prefix" the model blobs live under.
func NewCommitStore(client DDBClient, tableName, baseURI string) *CommitStore {
	return &CommitStore{
		client:    client,
		tableName: tableName,
		baseURI:   baseURI,
	}
}

// Latest returns the committed version and model blob name. A zero version
// means nothing has been committed yet.
func (s *CommitStore) Latest(ctx context.Context) (uint64, string, error) {
	resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false),
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
	nameAttr, ok := item["model_name"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid model_name attribute in DynamoDB")
	}

	var version uint64
	if _, err := fmt.Sscanf(versionAttr.Value, "%d", &version); err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}
	return version, nameAttr.Value, nil
}

// Commit atomically publishes modelName as the next version using a
// DynamoDB conditional write.
func (s *CommitStore) Commit(ctx context.Context, modelName string) (uint64, error) {
	current, _, err := s.Latest(ctx)
	if err != nil {
		return 0, err
	}
	next := current + 1

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri":   &types.AttributeValueMemberS{Value: s.baseURI},
			"version":    &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", next)},
			"model_name": &types.AttributeValueMemberS{Value: modelName},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentModification
		}
		return 0, fmt.Errorf("failed to commit version to DynamoDB: %w", err)
	}
	return next, nil
}
