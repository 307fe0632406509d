package dynamodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"snapboard-backend/domain/taskboard"
	pkgerrors "snapboard-backend/pkg/errors"
)

// userRecord shares GSI1 partition "USER" so the invite-candidate
// listing is a single query over the user population
type userRecord struct {
	PK        string    `dynamodbav:"PK"`
	SK        string    `dynamodbav:"SK"`
	GSI1PK    string    `dynamodbav:"GSI1PK"`
	GSI1SK    string    `dynamodbav:"GSI1SK"`
	ItemType  string    `dynamodbav:"ItemType"`
	UserID    string    `dynamodbav:"UserID"`
	Email     string    `dynamodbav:"Email"`
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
}

// UserRepository is the DynamoDB implementation of the taskboard user port
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// Save persists a user
func (r *UserRepository) Save(ctx context.Context, user *taskboard.User) error {
	item, err := attributevalue.MarshalMap(r.toRecord(user))
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal user").WithCause(err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save user", err)
	}
	return nil
}

// GetByID retrieves a user by its ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*taskboard.User, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       itemKey(userPK(id), metadataSK),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get user", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	var record userRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal user").WithCause(err)
	}
	return record.toDomain(), nil
}

// GetByEmail retrieves a user by its email via GSI1
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*taskboard.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: gsiUserPartition},
			":sk": &types.AttributeValueMemberS{Value: emailGSIKey(email)},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get user by email", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	var record userRecord
	if err := attributevalue.UnmarshalMap(result.Items[0], &record); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal user").WithCause(err)
	}
	return record.toDomain(), nil
}

// GetOrCreateByEmail resolves an email to a user, creating one on first
// sight. The create transactionally claims the email so two concurrent
// first requests cannot mint two users for one address; the loser
// re-reads the winner's record.
func (r *UserRepository) GetOrCreateByEmail(ctx context.Context, email string) (*taskboard.User, error) {
	user, err := r.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !pkgerrors.IsNotFound(err) {
		return nil, err
	}

	user, err = taskboard.NewUser(email)
	if err != nil {
		return nil, err
	}

	items, err := r.createTransactItems(user)
	if err != nil {
		return nil, err
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) && hasConditionFailure(canceled) {
			return r.GetByEmail(ctx, email)
		}
		return nil, pkgerrors.NewDatabaseError("create user", err)
	}

	r.logger.Info("user created",
		zap.String("userID", user.ID()),
		zap.String("email", user.Email()),
	)
	return user, nil
}

// createTransactItems builds the first-sight create: the user record
// plus the email claim that makes the address exclusive.
func (r *UserRepository) createTransactItems(user *taskboard.User) ([]types.TransactWriteItem, error) {
	recordItem, err := attributevalue.MarshalMap(r.toRecord(user))
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to marshal user").WithCause(err)
	}

	claimItem, err := attributevalue.MarshalMap(emailClaimRecord{
		PK:       userEmailPK(user.Email()),
		SK:       claimSK,
		ItemType: "EMAILCLAIM",
		Email:    user.Email(),
		OwnerID:  user.ID(),
	})
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to marshal email claim").WithCause(err)
	}

	return []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                claimItem,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			},
		},
		{
			Put: &types.Put{
				TableName: aws.String(r.tableName),
				Item:      recordItem,
			},
		},
	}, nil
}

// ListOthers retrieves every user except the given one, in email order
func (r *UserRepository) ListOthers(ctx context.Context, excludeUserID string) ([]*taskboard.User, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: gsiUserPartition},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list users", err)
	}

	users := make([]*taskboard.User, 0, len(result.Items))
	for _, item := range result.Items {
		var record userRecord
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return nil, pkgerrors.NewInternalError("failed to unmarshal user").WithCause(err)
		}
		if record.UserID == excludeUserID {
			continue
		}
		users = append(users, record.toDomain())
	}
	return users, nil
}

func (r *UserRepository) toRecord(user *taskboard.User) userRecord {
	return userRecord{
		PK:        userPK(user.ID()),
		SK:        metadataSK,
		GSI1PK:    gsiUserPartition,
		GSI1SK:    emailGSIKey(user.Email()),
		ItemType:  "USER",
		UserID:    user.ID(),
		Email:     user.Email(),
		CreatedAt: user.CreatedAt(),
	}
}

func (rec userRecord) toDomain() *taskboard.User {
	return taskboard.ReconstructUser(rec.UserID, rec.Email, rec.CreatedAt)
}
