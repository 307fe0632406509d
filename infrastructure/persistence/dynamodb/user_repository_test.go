package dynamodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"snapboard-backend/domain/taskboard"
)

func TestUserCreateTransactItems(t *testing.T) {
	repo := NewUserRepository(nil, "snapboard", "GSI1", zap.NewNop())

	user, err := taskboard.NewUser("Bob@Example.com")
	require.NoError(t, err)

	items, err := repo.createTransactItems(user)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// The claim is keyed by the normalized address and conditioned on
	// being first, so concurrent first-sight creates collapse to one user.
	claim := items[0].Put
	require.NotNil(t, claim)
	assert.Equal(t, "USEREMAIL#bob@example.com", stringAttr(t, claim.Item, "PK"))
	assert.Equal(t, "CLAIM", stringAttr(t, claim.Item, "SK"))
	assert.Equal(t, user.ID(), stringAttr(t, claim.Item, "OwnerID"))
	require.NotNil(t, claim.ConditionExpression)
	assert.Equal(t, "attribute_not_exists(PK)", *claim.ConditionExpression)

	record := items[1].Put
	require.NotNil(t, record)
	assert.Equal(t, "USER#"+user.ID(), stringAttr(t, record.Item, "PK"))
	assert.Equal(t, "bob@example.com", stringAttr(t, record.Item, "Email"))
}
