package dynamodb

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Single-table key prefixes. Every record carries a PK/SK pair; records
// that need an alternate access path also carry GSI1PK/GSI1SK.
const (
	accountPKPrefix = "ACCOUNT#"
	userPKPrefix    = "USER#"
	boardPKPrefix   = "BOARD#"
	postSKPrefix    = "POST#"
	memberSKPrefix  = "MEMBER#"
	taskSKPrefix    = "TASK#"
	titlePKPrefix   = "TASKTITLE#"

	// Email claim partitions back the unique-email guarantee on first-sight
	// identity creation, the same way TASKTITLE# backs title uniqueness.
	accountEmailPKPrefix = "ACCOUNTEMAIL#"
	userEmailPKPrefix    = "USEREMAIL#"

	metadataSK = "METADATA"
	claimSK    = "CLAIM"

	// GSI1 partition values for type-wide queries
	gsiAccountPartition = "ACCOUNT"
	gsiUserPartition    = "USER"

	gsiEmailPrefix   = "EMAIL#"
	gsiPostIDPrefix  = "POSTID#"
	gsiTaskIDPrefix  = "TASKID#"
	gsiCreatorPrefix = "BOARDCREATOR#"
	gsiMemberPrefix  = "MEMBERUSER#"
)

func accountPK(id string) string         { return accountPKPrefix + id }
func userPK(id string) string            { return userPKPrefix + id }
func boardPK(id string) string           { return boardPKPrefix + id }
func memberSK(userID string) string      { return memberSKPrefix + userID }
func taskSK(id string) string            { return taskSKPrefix + id }
func titlePK(title string) string        { return titlePKPrefix + title }
func accountEmailPK(email string) string { return accountEmailPKPrefix + email }
func userEmailPK(email string) string    { return userEmailPKPrefix + email }
func emailGSIKey(email string) string    { return gsiEmailPrefix + email }
func creatorGSIKey(id string) string     { return gsiCreatorPrefix + id }
func memberGSIKey(userID string) string  { return gsiMemberPrefix + userID }

// postSK orders posts chronologically within an owner partition
func postSK(createdAt, postID string) string {
	return fmt.Sprintf("%s%s#%s", postSKPrefix, createdAt, postID)
}

func itemKey(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}
