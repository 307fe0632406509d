package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"snapboard-backend/application/ports"
	pkgerrors "snapboard-backend/pkg/errors"
)

// DynamoDBUnitOfWork collects writes from several repositories and
// commits them in a single TransactWriteItems call. Repositories
// contribute items through RegisterWrite; the caller owns Begin and
// Commit.
type DynamoDBUnitOfWork struct {
	client *dynamodb.Client

	transactItems []types.TransactWriteItem
	inTransaction bool
}

// NewDynamoDBUnitOfWork creates a new unit of work instance
func NewDynamoDBUnitOfWork(client *dynamodb.Client) *DynamoDBUnitOfWork {
	return &DynamoDBUnitOfWork{
		client:        client,
		transactItems: make([]types.TransactWriteItem, 0),
	}
}

// Begin starts a new transaction
func (uow *DynamoDBUnitOfWork) Begin(ctx context.Context) error {
	if uow.inTransaction {
		return fmt.Errorf("transaction already in progress")
	}
	uow.inTransaction = true
	uow.clear()
	return nil
}

// RegisterWrite adds a write item to the pending transaction
func (uow *DynamoDBUnitOfWork) RegisterWrite(item types.TransactWriteItem) error {
	if !uow.inTransaction {
		return fmt.Errorf("no transaction in progress")
	}
	uow.transactItems = append(uow.transactItems, item)
	return nil
}

// Commit executes all registered writes atomically. A condition failure
// on any item cancels the whole transaction and surfaces as a conflict.
func (uow *DynamoDBUnitOfWork) Commit(ctx context.Context) error {
	if !uow.inTransaction {
		return fmt.Errorf("no transaction in progress")
	}

	defer func() {
		uow.inTransaction = false
	}()

	if err := checkTransactLimit(len(uow.transactItems)); err != nil {
		return err
	}

	if len(uow.transactItems) > 0 {
		input := &dynamodb.TransactWriteItemsInput{
			TransactItems: uow.transactItems,
		}

		if _, err := uow.client.TransactWriteItems(ctx, input); err != nil {
			uow.clear()
			var canceled *types.TransactionCanceledException
			if errors.As(err, &canceled) && hasConditionFailure(canceled) {
				return pkgerrors.NewConflictError("transaction rejected by a condition check").WithCause(err)
			}
			return pkgerrors.NewDatabaseError("transaction failed", err)
		}
	}

	uow.clear()
	return nil
}

// Rollback cancels the current transaction
func (uow *DynamoDBUnitOfWork) Rollback() error {
	if !uow.inTransaction {
		return fmt.Errorf("no transaction in progress")
	}
	uow.inTransaction = false
	uow.clear()
	return nil
}

// IsInTransaction returns whether a transaction is currently active
func (uow *DynamoDBUnitOfWork) IsInTransaction() bool {
	return uow.inTransaction
}

func (uow *DynamoDBUnitOfWork) clear() {
	uow.transactItems = make([]types.TransactWriteItem, 0)
}

// maxTransactItems is DynamoDB's TransactWriteItems hard limit. The
// largest write the services produce is a full 25-user invite (25 edges
// plus the counter update) and a revoke cascade, both well inside it.
const maxTransactItems = 100

func checkTransactLimit(count int) error {
	if count > maxTransactItems {
		return fmt.Errorf("transaction exceeds the %d item limit: %d items", maxTransactItems, count)
	}
	return nil
}

func hasConditionFailure(canceled *types.TransactionCanceledException) bool {
	for _, reason := range canceled.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}

// UnitOfWorkFactory produces fresh units of work bound to a shared client
type UnitOfWorkFactory struct {
	client *dynamodb.Client
}

// NewUnitOfWorkFactory creates a unit of work factory
func NewUnitOfWorkFactory(client *dynamodb.Client) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{client: client}
}

// New returns an unstarted unit of work
func (f *UnitOfWorkFactory) New() ports.UnitOfWork {
	return NewDynamoDBUnitOfWork(f.client)
}
