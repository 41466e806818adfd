package service

import (
	"github.com/Kerhoff/BozorlikBot/internal/models"
	"github.com/Kerhoff/BozorlikBot/internal/shoplist"
)

// Action tells the transport how to answer a processed message.
type Action int

const (
	// ActionReply routes the oracle's answer to the user unchanged.
	ActionReply Action = iota
	ActionListCreated
	ActionListEdited
	ActionEditNotUnderstood
	ActionPurchasesRecorded
	ActionPurchasesNotRecognized
	// ActionListCompleted means the list was archived and the session is gone.
	ActionListCompleted
)

var actionNames = map[Action]string{
	ActionReply:                  "reply",
	ActionListCreated:            "list_created",
	ActionListEdited:             "list_edited",
	ActionEditNotUnderstood:      "edit_not_understood",
	ActionPurchasesRecorded:      "purchases_recorded",
	ActionPurchasesNotRecognized: "purchases_not_recognized",
	ActionListCompleted:          "list_completed",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Result is the outcome of a text or voice message.
type Result struct {
	Action Action

	// Text is the oracle answer for ActionReply, or the transcript of a voice message.
	Text string

	List     models.ShoppingList
	Progress shoplist.Progress
	// AddedCost is the cost of the items marked by this message.
	AddedCost int64
	// Record is the archived entry for ActionListCompleted.
	Record *models.PurchaseRecord

	// PreviousMessageID is the list message that the reply supersedes, 0 if none.
	PreviousMessageID int
}

// Snapshot is a read-only view of a user's session.
type Snapshot struct {
	List          models.ShoppingList
	Progress      shoplist.Progress
	Editing       bool
	ListMessageID int
}
