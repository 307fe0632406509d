package dynamodb

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"snapboard-backend/domain/social"
	pkgerrors "snapboard-backend/pkg/errors"
)

// postTimeLayout keeps sort keys fixed-width so lexical order matches
// chronological order
const postTimeLayout = "2006-01-02T15:04:05.000000000Z"

// postRecord lives in its owner's partition, sorted chronologically.
// GSI1 gives the direct by-ID lookup.
type postRecord struct {
	PK        string          `dynamodbav:"PK"`
	SK        string          `dynamodbav:"SK"`
	GSI1PK    string          `dynamodbav:"GSI1PK"`
	GSI1SK    string          `dynamodbav:"GSI1SK"`
	ItemType  string          `dynamodbav:"ItemType"`
	PostID    string          `dynamodbav:"PostID"`
	OwnerID   string          `dynamodbav:"OwnerID"`
	ImageRef  string          `dynamodbav:"ImageRef"`
	Caption   string          `dynamodbav:"Caption"`
	Comments  []commentRecord `dynamodbav:"Comments"`
	CreatedAt time.Time       `dynamodbav:"CreatedAt"`
}

type commentRecord struct {
	AuthorID  string    `dynamodbav:"AuthorID"`
	Text      string    `dynamodbav:"Text"`
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
}

// PostRepository is the DynamoDB implementation of the post port
type PostRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewPostRepository creates a new post repository
func NewPostRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) *PostRepository {
	return &PostRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// Save persists a post
func (r *PostRepository) Save(ctx context.Context, post *social.Post) error {
	item, err := attributevalue.MarshalMap(r.toRecord(post))
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal post").WithCause(err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save post", err)
	}
	return nil
}

// GetByID retrieves a post via the GSI1 PostID lookup
func (r *PostRepository) GetByID(ctx context.Context, id string) (*social.Post, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: gsiPostIDPrefix + id},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get post", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("post")
	}

	var record postRecord
	if err := attributevalue.UnmarshalMap(result.Items[0], &record); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal post").WithCause(err)
	}
	return record.toDomain(), nil
}

// GetByOwner retrieves one account's posts, newest first
func (r *PostRepository) GetByOwner(ctx context.Context, ownerID string) ([]*social.Post, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: accountPK(ownerID)},
			":prefix": &types.AttributeValueMemberS{Value: postSKPrefix},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list posts", err)
	}
	return r.unmarshalPosts(result.Items)
}

// GetByOwners merges the newest posts of several owners into one
// reverse-chronological slice capped at limit. Each owner partition is
// queried newest-first with the same cap, so the merged cut is exact.
func (r *PostRepository) GetByOwners(ctx context.Context, ownerIDs []string, limit int) ([]*social.Post, error) {
	merged := make([]*social.Post, 0, limit)
	for _, ownerID := range ownerIDs {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk":     &types.AttributeValueMemberS{Value: accountPK(ownerID)},
				":prefix": &types.AttributeValueMemberS{Value: postSKPrefix},
			},
			ScanIndexForward: aws.Bool(false),
			Limit:            aws.Int32(int32(limit)),
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("list feed posts", err)
		}

		posts, err := r.unmarshalPosts(result.Items)
		if err != nil {
			return nil, err
		}
		merged = append(merged, posts...)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt().After(merged[j].CreatedAt())
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

func (r *PostRepository) unmarshalPosts(items []map[string]types.AttributeValue) ([]*social.Post, error) {
	posts := make([]*social.Post, 0, len(items))
	for _, item := range items {
		var record postRecord
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return nil, pkgerrors.NewInternalError("failed to unmarshal post").WithCause(err)
		}
		posts = append(posts, record.toDomain())
	}
	return posts, nil
}

func (r *PostRepository) toRecord(post *social.Post) postRecord {
	comments := make([]commentRecord, 0, len(post.Comments()))
	for _, c := range post.Comments() {
		comments = append(comments, commentRecord{
			AuthorID:  c.AuthorID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}

	return postRecord{
		PK:        accountPK(post.OwnerID()),
		SK:        postSK(post.CreatedAt().UTC().Format(postTimeLayout), post.ID()),
		GSI1PK:    gsiPostIDPrefix + post.ID(),
		GSI1SK:    "POST",
		ItemType:  "POST",
		PostID:    post.ID(),
		OwnerID:   post.OwnerID(),
		ImageRef:  post.ImageRef(),
		Caption:   post.Caption(),
		Comments:  comments,
		CreatedAt: post.CreatedAt(),
	}
}

func (rec postRecord) toDomain() *social.Post {
	comments := make([]social.Comment, 0, len(rec.Comments))
	for _, c := range rec.Comments {
		comments = append(comments, social.Comment{
			AuthorID:  c.AuthorID,
			PostID:    rec.PostID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return social.ReconstructPost(rec.PostID, rec.OwnerID, rec.ImageRef, rec.Caption, comments, rec.CreatedAt)
}
