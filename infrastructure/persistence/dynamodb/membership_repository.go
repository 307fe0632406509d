package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/taskboard"
	pkgerrors "snapboard-backend/pkg/errors"
)

// membershipRecord sits in the board partition for per-board listings;
// GSI1 inverts it for per-user listings.
type membershipRecord struct {
	PK        string    `dynamodbav:"PK"`
	SK        string    `dynamodbav:"SK"`
	GSI1PK    string    `dynamodbav:"GSI1PK"`
	GSI1SK    string    `dynamodbav:"GSI1SK"`
	ItemType  string    `dynamodbav:"ItemType"`
	BoardID   string    `dynamodbav:"BoardID"`
	UserID    string    `dynamodbav:"UserID"`
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
}

// MembershipRepository is the DynamoDB implementation of the membership port
type MembershipRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) *MembershipRepository {
	return &MembershipRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// Save persists a membership edge
func (r *MembershipRepository) Save(ctx context.Context, edge taskboard.MembershipEdge) error {
	item, err := attributevalue.MarshalMap(toMembershipRecord(edge))
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal membership").WithCause(err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save membership", err)
	}
	return nil
}

// Get retrieves the membership edge for a (board, user) pair
func (r *MembershipRepository) Get(ctx context.Context, boardID, userID string) (*taskboard.MembershipEdge, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       itemKey(boardPK(boardID), memberSK(userID)),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get membership", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("membership")
	}

	var record membershipRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal membership").WithCause(err)
	}
	edge := record.toDomain()
	return &edge, nil
}

// Exists reports whether the (board, user) edge is present
func (r *MembershipRepository) Exists(ctx context.Context, boardID, userID string) (bool, error) {
	_, err := r.Get(ctx, boardID, userID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListByBoard retrieves all membership edges of a board
func (r *MembershipRepository) ListByBoard(ctx context.Context, boardID string) ([]taskboard.MembershipEdge, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: boardPK(boardID)},
			":prefix": &types.AttributeValueMemberS{Value: memberSKPrefix},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list board members", err)
	}
	return r.unmarshalEdges(result.Items)
}

// ListByUser retrieves all membership edges a user holds via GSI1
func (r *MembershipRepository) ListByUser(ctx context.Context, userID string) ([]taskboard.MembershipEdge, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: memberGSIKey(userID)},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list user memberships", err)
	}
	return r.unmarshalEdges(result.Items)
}

// SaveWithUoW registers the membership save in the given unit of work
func (r *MembershipRepository) SaveWithUoW(ctx context.Context, edge taskboard.MembershipEdge, uow ports.UnitOfWork) error {
	dynamoUoW, ok := uow.(*DynamoDBUnitOfWork)
	if !ok {
		return pkgerrors.NewInternalError("unit of work is not DynamoDB-backed")
	}

	item, err := attributevalue.MarshalMap(toMembershipRecord(edge))
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal membership").WithCause(err)
	}

	return dynamoUoW.RegisterWrite(types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(r.tableName),
			Item:      item,
		},
	})
}

// DeleteWithUoW registers the membership delete in the given unit of work
func (r *MembershipRepository) DeleteWithUoW(ctx context.Context, boardID, userID string, uow ports.UnitOfWork) error {
	dynamoUoW, ok := uow.(*DynamoDBUnitOfWork)
	if !ok {
		return pkgerrors.NewInternalError("unit of work is not DynamoDB-backed")
	}

	return dynamoUoW.RegisterWrite(types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(r.tableName),
			Key:       itemKey(boardPK(boardID), memberSK(userID)),
		},
	})
}

func (r *MembershipRepository) unmarshalEdges(items []map[string]types.AttributeValue) ([]taskboard.MembershipEdge, error) {
	edges := make([]taskboard.MembershipEdge, 0, len(items))
	for _, item := range items {
		var record membershipRecord
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return nil, pkgerrors.NewInternalError("failed to unmarshal membership").WithCause(err)
		}
		edges = append(edges, record.toDomain())
	}
	return edges, nil
}

func toMembershipRecord(edge taskboard.MembershipEdge) membershipRecord {
	return membershipRecord{
		PK:        boardPK(edge.BoardID),
		SK:        memberSK(edge.UserID),
		GSI1PK:    memberGSIKey(edge.UserID),
		GSI1SK:    boardPK(edge.BoardID),
		ItemType:  "MEMBERSHIP",
		BoardID:   edge.BoardID,
		UserID:    edge.UserID,
		CreatedAt: edge.CreatedAt,
	}
}

func (rec membershipRecord) toDomain() taskboard.MembershipEdge {
	return taskboard.MembershipEdge{
		BoardID:   rec.BoardID,
		UserID:    rec.UserID,
		CreatedAt: rec.CreatedAt,
	}
}
