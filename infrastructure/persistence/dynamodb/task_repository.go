package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/taskboard"
	pkgerrors "snapboard-backend/pkg/errors"
)

// taskRecord sits in its board partition; GSI1 gives the direct by-ID
// lookup. Optional timestamps marshal as absent, not zero.
type taskRecord struct {
	PK          string     `dynamodbav:"PK"`
	SK          string     `dynamodbav:"SK"`
	GSI1PK      string     `dynamodbav:"GSI1PK"`
	GSI1SK      string     `dynamodbav:"GSI1SK"`
	ItemType    string     `dynamodbav:"ItemType"`
	TaskID      string     `dynamodbav:"TaskID"`
	BoardID     string     `dynamodbav:"BoardID"`
	Title       string     `dynamodbav:"Title"`
	DueDate     *time.Time `dynamodbav:"DueDate,omitempty"`
	AssigneeID  string     `dynamodbav:"AssigneeID"`
	Completed   bool       `dynamodbav:"Completed"`
	CompletedAt *time.Time `dynamodbav:"CompletedAt,omitempty"`
	CreatedAt   time.Time  `dynamodbav:"CreatedAt"`
	UpdatedAt   time.Time  `dynamodbav:"UpdatedAt"`
}

// titleClaimRecord reserves a task title system-wide. The conditional
// put on this item is what makes the uniqueness rule atomic.
type titleClaimRecord struct {
	PK       string `dynamodbav:"PK"`
	SK       string `dynamodbav:"SK"`
	ItemType string `dynamodbav:"ItemType"`
	Title    string `dynamodbav:"Title"`
	TaskID   string `dynamodbav:"TaskID"`
}

// TaskRepository is the DynamoDB implementation of the task port
type TaskRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// GetByID retrieves a task via the GSI1 TaskID lookup
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*taskboard.Task, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: gsiTaskIDPrefix + id},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get task", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("task")
	}

	var record taskRecord
	if err := attributevalue.UnmarshalMap(result.Items[0], &record); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal task").WithCause(err)
	}
	return record.toDomain(), nil
}

// GetByBoard retrieves all tasks in a board partition
func (r *TaskRepository) GetByBoard(ctx context.Context, boardID string) ([]*taskboard.Task, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: boardPK(boardID)},
			":prefix": &types.AttributeValueMemberS{Value: taskSKPrefix},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list board tasks", err)
	}
	return r.unmarshalTasks(result.Items)
}

// GetByTitle resolves the system-wide title claim, then loads the
// holding task
func (r *TaskRepository) GetByTitle(ctx context.Context, title string) (*taskboard.Task, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       itemKey(titlePK(title), claimSK),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get title claim", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("task")
	}

	var claim titleClaimRecord
	if err := attributevalue.UnmarshalMap(result.Item, &claim); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal title claim").WithCause(err)
	}
	return r.GetByID(ctx, claim.TaskID)
}

// GetAssignedOnBoard retrieves a board's tasks currently assigned to a
// user. Feeds the cascade that unassigns a revoked member.
func (r *TaskRepository) GetAssignedOnBoard(ctx context.Context, boardID, userID string) ([]*taskboard.Task, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(boardPK(boardID))).
		And(expression.Key("SK").BeginsWith(taskSKPrefix))
	filter := expression.Name("AssigneeID").Equal(expression.Value(userID))

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyCond).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to build query expression").WithCause(err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list assigned tasks", err)
	}
	return r.unmarshalTasks(result.Items)
}

// SaveWithUoW registers the task save in the given unit of work
func (r *TaskRepository) SaveWithUoW(ctx context.Context, task *taskboard.Task, uow ports.UnitOfWork) error {
	dynamoUoW, ok := uow.(*DynamoDBUnitOfWork)
	if !ok {
		return pkgerrors.NewInternalError("unit of work is not DynamoDB-backed")
	}

	item, err := attributevalue.MarshalMap(r.toRecord(task))
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal task").WithCause(err)
	}

	return dynamoUoW.RegisterWrite(types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(r.tableName),
			Item:      item,
		},
	})
}

// DeleteWithUoW registers the task delete in the given unit of work
func (r *TaskRepository) DeleteWithUoW(ctx context.Context, task *taskboard.Task, uow ports.UnitOfWork) error {
	dynamoUoW, ok := uow.(*DynamoDBUnitOfWork)
	if !ok {
		return pkgerrors.NewInternalError("unit of work is not DynamoDB-backed")
	}

	return dynamoUoW.RegisterWrite(types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(r.tableName),
			Key:       itemKey(boardPK(task.BoardID()), taskSK(task.ID())),
		},
	})
}

// ClaimTitleWithUoW registers a conditional put of the title claim item.
// An existing claim fails the condition and cancels the transaction,
// which the unit of work surfaces as a conflict.
func (r *TaskRepository) ClaimTitleWithUoW(ctx context.Context, title, taskID string, uow ports.UnitOfWork) error {
	dynamoUoW, ok := uow.(*DynamoDBUnitOfWork)
	if !ok {
		return pkgerrors.NewInternalError("unit of work is not DynamoDB-backed")
	}

	item, err := attributevalue.MarshalMap(titleClaimRecord{
		PK:       titlePK(title),
		SK:       claimSK,
		ItemType: "TITLECLAIM",
		Title:    title,
		TaskID:   taskID,
	})
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal title claim").WithCause(err)
	}

	return dynamoUoW.RegisterWrite(types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(PK)"),
		},
	})
}

// ReleaseTitleWithUoW registers removal of a title claim
func (r *TaskRepository) ReleaseTitleWithUoW(ctx context.Context, title string, uow ports.UnitOfWork) error {
	dynamoUoW, ok := uow.(*DynamoDBUnitOfWork)
	if !ok {
		return pkgerrors.NewInternalError("unit of work is not DynamoDB-backed")
	}

	return dynamoUoW.RegisterWrite(types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(r.tableName),
			Key:       itemKey(titlePK(title), claimSK),
		},
	})
}

func (r *TaskRepository) unmarshalTasks(items []map[string]types.AttributeValue) ([]*taskboard.Task, error) {
	tasks := make([]*taskboard.Task, 0, len(items))
	for _, item := range items {
		var record taskRecord
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return nil, pkgerrors.NewInternalError("failed to unmarshal task").WithCause(err)
		}
		tasks = append(tasks, record.toDomain())
	}
	return tasks, nil
}

func (r *TaskRepository) toRecord(task *taskboard.Task) taskRecord {
	return taskRecord{
		PK:          boardPK(task.BoardID()),
		SK:          taskSK(task.ID()),
		GSI1PK:      gsiTaskIDPrefix + task.ID(),
		GSI1SK:      "TASK",
		ItemType:    "TASK",
		TaskID:      task.ID(),
		BoardID:     task.BoardID(),
		Title:       task.Title(),
		DueDate:     task.DueDate(),
		AssigneeID:  task.AssigneeID(),
		Completed:   task.IsCompleted(),
		CompletedAt: task.CompletedAt(),
		CreatedAt:   task.CreatedAt(),
		UpdatedAt:   task.UpdatedAt(),
	}
}

func (rec taskRecord) toDomain() *taskboard.Task {
	return taskboard.ReconstructTask(
		rec.TaskID,
		rec.BoardID,
		rec.Title,
		rec.DueDate,
		rec.AssigneeID,
		rec.Completed,
		rec.CompletedAt,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
}
