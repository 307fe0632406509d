package dynamodb

import (
	"context"
	"fmt"
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

// boardRecord carries the task and member reference counters that back
// the delete precondition
type boardRecord struct {
	PK          string    `dynamodbav:"PK"`
	SK          string    `dynamodbav:"SK"`
	GSI1PK      string    `dynamodbav:"GSI1PK"`
	GSI1SK      string    `dynamodbav:"GSI1SK"`
	ItemType    string    `dynamodbav:"ItemType"`
	BoardID     string    `dynamodbav:"BoardID"`
	Title       string    `dynamodbav:"Title"`
	CreatorID   string    `dynamodbav:"CreatorID"`
	TaskCount   int       `dynamodbav:"TaskCount"`
	MemberCount int       `dynamodbav:"MemberCount"`
	CreatedAt   time.Time `dynamodbav:"CreatedAt"`
	UpdatedAt   time.Time `dynamodbav:"UpdatedAt"`
}

// BoardRepository is the DynamoDB implementation of the board port
type BoardRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) *BoardRepository {
	return &BoardRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// Save persists a board. The write upserts non-counter attributes and
// leaves existing counters untouched, so a rename cannot clobber a
// counter bump committed concurrently by a task or membership change.
func (r *BoardRepository) Save(ctx context.Context, board *taskboard.Board) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key:       itemKey(boardPK(board.ID()), metadataSK),
		UpdateExpression: aws.String(
			"SET Title = :title, CreatorID = :creator, ItemType = :type, " +
				"GSI1PK = :gsipk, GSI1SK = :gsisk, BoardID = :id, " +
				"CreatedAt = if_not_exists(CreatedAt, :created), UpdatedAt = :updated, " +
				"TaskCount = if_not_exists(TaskCount, :zero), MemberCount = if_not_exists(MemberCount, :zero)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":title":   &types.AttributeValueMemberS{Value: board.Title()},
			":creator": &types.AttributeValueMemberS{Value: board.CreatorID()},
			":type":    &types.AttributeValueMemberS{Value: "BOARD"},
			":gsipk":   &types.AttributeValueMemberS{Value: creatorGSIKey(board.CreatorID())},
			":gsisk":   &types.AttributeValueMemberS{Value: boardPK(board.ID())},
			":id":      &types.AttributeValueMemberS{Value: board.ID()},
			":created": &types.AttributeValueMemberS{Value: board.CreatedAt().UTC().Format(time.RFC3339Nano)},
			":updated": &types.AttributeValueMemberS{Value: board.UpdatedAt().UTC().Format(time.RFC3339Nano)},
			":zero":    &types.AttributeValueMemberN{Value: "0"},
		},
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save board", err)
	}
	return nil
}

// GetByID retrieves a board by its ID
func (r *BoardRepository) GetByID(ctx context.Context, id string) (*taskboard.Board, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       itemKey(boardPK(id), metadataSK),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get board", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("board")
	}

	var record boardRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal board").WithCause(err)
	}
	return record.toDomain(), nil
}

// GetByCreator retrieves all boards created by a user via GSI1
func (r *BoardRepository) GetByCreator(ctx context.Context, creatorID string) ([]*taskboard.Board, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: creatorGSIKey(creatorID)},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list boards by creator", err)
	}

	boards := make([]*taskboard.Board, 0, len(result.Items))
	for _, item := range result.Items {
		var record boardRecord
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return nil, pkgerrors.NewInternalError("failed to unmarshal board").WithCause(err)
		}
		boards = append(boards, record.toDomain())
	}
	return boards, nil
}

// AdjustCountersWithUoW registers an ADD update against the board's
// reference counters. Conditioned on the board existing, so a counter
// bump cannot resurrect a deleted board as a bare counter item.
func (r *BoardRepository) AdjustCountersWithUoW(ctx context.Context, boardID string, taskDelta, memberDelta int, uow ports.UnitOfWork) error {
	dynamoUoW, ok := uow.(*DynamoDBUnitOfWork)
	if !ok {
		return pkgerrors.NewInternalError("unit of work is not DynamoDB-backed")
	}

	return dynamoUoW.RegisterWrite(types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(r.tableName),
			Key:                 itemKey(boardPK(boardID), metadataSK),
			UpdateExpression:    aws.String("ADD TaskCount :td, MemberCount :md SET UpdatedAt = :now"),
			ConditionExpression: aws.String("attribute_exists(PK)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":td":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", taskDelta)},
				":md":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", memberDelta)},
				":now": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
			},
		},
	})
}

// DeleteWithUoW registers the board delete conditioned on both reference
// counters being zero. A task or member created between the caller's
// check and the commit fails the condition and cancels the transaction.
func (r *BoardRepository) DeleteWithUoW(ctx context.Context, boardID string, uow ports.UnitOfWork) error {
	dynamoUoW, ok := uow.(*DynamoDBUnitOfWork)
	if !ok {
		return pkgerrors.NewInternalError("unit of work is not DynamoDB-backed")
	}

	return dynamoUoW.RegisterWrite(types.TransactWriteItem{
		Delete: &types.Delete{
			TableName:           aws.String(r.tableName),
			Key:                 itemKey(boardPK(boardID), metadataSK),
			ConditionExpression: aws.String("TaskCount = :zero AND MemberCount = :zero"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":zero": &types.AttributeValueMemberN{Value: "0"},
			},
		},
	})
}

func (rec boardRecord) toDomain() *taskboard.Board {
	return taskboard.ReconstructBoard(
		rec.BoardID,
		rec.Title,
		rec.CreatorID,
		rec.TaskCount,
		rec.MemberCount,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
}
