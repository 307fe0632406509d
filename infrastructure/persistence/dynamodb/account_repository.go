package dynamodb

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/social"
	pkgerrors "snapboard-backend/pkg/errors"
)

const searchResultLimit = 25

// accountRecord is the single-table shape of an account. Both halves of
// every follow edge live embedded here, so loading an account loads its
// whole neighborhood in one read.
type accountRecord struct {
	PK        string       `dynamodbav:"PK"`
	SK        string       `dynamodbav:"SK"`
	GSI1PK    string       `dynamodbav:"GSI1PK"`
	GSI1SK    string       `dynamodbav:"GSI1SK"`
	ItemType  string       `dynamodbav:"ItemType"`
	AccountID string       `dynamodbav:"AccountID"`
	Email     string       `dynamodbav:"Email"`
	Following []edgeRecord `dynamodbav:"Following"`
	Followers []edgeRecord `dynamodbav:"Followers"`
	Version   int          `dynamodbav:"Version"`
	CreatedAt time.Time    `dynamodbav:"CreatedAt"`
}

type edgeRecord struct {
	FollowerID string `dynamodbav:"FollowerID"`
	FolloweeID string `dynamodbav:"FolloweeID"`
}

// emailClaimRecord reserves an email for exactly one account. It is
// written in the same transaction as the account record, conditioned on
// not existing yet, so two concurrent first-sight creates cannot both
// succeed.
type emailClaimRecord struct {
	PK       string `dynamodbav:"PK"`
	SK       string `dynamodbav:"SK"`
	ItemType string `dynamodbav:"ItemType"`
	Email    string `dynamodbav:"Email"`
	OwnerID  string `dynamodbav:"OwnerID"`
}

// AccountRepository is the DynamoDB implementation of the account port
type AccountRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) *AccountRepository {
	return &AccountRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// Save persists an account
func (r *AccountRepository) Save(ctx context.Context, account *social.Account) error {
	item, err := attributevalue.MarshalMap(r.toRecord(account))
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal account").WithCause(err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save account", err)
	}
	return nil
}

// SaveWithUoW registers the account save in the given unit of work. The
// put is conditioned on the version the account was loaded at, so a
// concurrent transaction that already rewrote this account's edge lists
// cancels the commit instead of being silently overwritten.
func (r *AccountRepository) SaveWithUoW(ctx context.Context, account *social.Account, uow ports.UnitOfWork) error {
	dynamoUoW, ok := uow.(*DynamoDBUnitOfWork)
	if !ok {
		return pkgerrors.NewInternalError("unit of work is not DynamoDB-backed")
	}

	record := r.toRecord(account)
	record.Version = account.Version() + 1
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal account").WithCause(err)
	}

	return dynamoUoW.RegisterWrite(types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(PK) OR Version = :version"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":version": &types.AttributeValueMemberN{Value: strconv.Itoa(account.Version())},
			},
		},
	})
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*social.Account, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       itemKey(accountPK(id), metadataSK),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get account", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("account")
	}

	var record accountRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal account").WithCause(err)
	}
	return record.toDomain(), nil
}

// GetByEmail retrieves an account by its email via GSI1
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*social.Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: gsiAccountPartition},
			":sk": &types.AttributeValueMemberS{Value: emailGSIKey(email)},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get account by email", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("account")
	}

	var record accountRecord
	if err := attributevalue.UnmarshalMap(result.Items[0], &record); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal account").WithCause(err)
	}
	return record.toDomain(), nil
}

// GetOrCreateByEmail resolves an email to an account, creating one on
// first sight. The create transactionally claims the email, so two
// concurrent first requests cannot mint two accounts for one address;
// the loser re-reads the winner's record.
func (r *AccountRepository) GetOrCreateByEmail(ctx context.Context, email string) (*social.Account, error) {
	account, err := r.GetByEmail(ctx, email)
	if err == nil {
		return account, nil
	}
	if !pkgerrors.IsNotFound(err) {
		return nil, err
	}

	account, err = social.NewAccount(email)
	if err != nil {
		return nil, err
	}

	items, err := r.createTransactItems(account)
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
		return nil, pkgerrors.NewDatabaseError("create account", err)
	}

	r.logger.Info("account created",
		zap.String("accountID", account.ID()),
		zap.String("email", account.Email()),
	)
	return account, nil
}

// createTransactItems builds the first-sight create: the account record
// plus the email claim that makes the address exclusive.
func (r *AccountRepository) createTransactItems(account *social.Account) ([]types.TransactWriteItem, error) {
	recordItem, err := attributevalue.MarshalMap(r.toRecord(account))
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to marshal account").WithCause(err)
	}

	claimItem, err := attributevalue.MarshalMap(emailClaimRecord{
		PK:       accountEmailPK(account.Email()),
		SK:       claimSK,
		ItemType: "EMAILCLAIM",
		Email:    account.Email(),
		OwnerID:  account.ID(),
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

// SearchByEmail returns accounts whose email sorts at or after the query,
// in email order
func (r *AccountRepository) SearchByEmail(ctx context.Context, query string) ([]*social.Account, error) {
	query = strings.TrimSpace(strings.ToLower(query))

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK >= :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: gsiAccountPartition},
			":sk": &types.AttributeValueMemberS{Value: emailGSIKey(query)},
		},
		Limit: aws.Int32(searchResultLimit),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("search accounts", err)
	}

	accounts := make([]*social.Account, 0, len(result.Items))
	for _, item := range result.Items {
		var record accountRecord
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return nil, pkgerrors.NewInternalError("failed to unmarshal account").WithCause(err)
		}
		accounts = append(accounts, record.toDomain())
	}
	return accounts, nil
}

func (r *AccountRepository) toRecord(account *social.Account) accountRecord {
	return accountRecord{
		PK:        accountPK(account.ID()),
		SK:        metadataSK,
		GSI1PK:    gsiAccountPartition,
		GSI1SK:    emailGSIKey(account.Email()),
		ItemType:  "ACCOUNT",
		AccountID: account.ID(),
		Email:     account.Email(),
		Following: toEdgeRecords(account.Following()),
		Followers: toEdgeRecords(account.Followers()),
		Version:   account.Version(),
		CreatedAt: account.CreatedAt(),
	}
}

func (rec accountRecord) toDomain() *social.Account {
	return social.ReconstructAccount(
		rec.AccountID,
		rec.Email,
		fromEdgeRecords(rec.Following),
		fromEdgeRecords(rec.Followers),
		rec.Version,
		rec.CreatedAt,
	)
}

func toEdgeRecords(edges []social.FollowEdge) []edgeRecord {
	out := make([]edgeRecord, 0, len(edges))
	for _, e := range edges {
		out = append(out, edgeRecord{FollowerID: e.FollowerID, FolloweeID: e.FolloweeID})
	}
	return out
}

func fromEdgeRecords(records []edgeRecord) []social.FollowEdge {
	out := make([]social.FollowEdge, 0, len(records))
	for _, rec := range records {
		out = append(out, social.FollowEdge{FollowerID: rec.FollowerID, FolloweeID: rec.FolloweeID})
	}
	return out
}
