package session

import (
	"sync"

	"github.com/Kerhoff/BozorlikBot/internal/models"
)

// Session is the conversation state of one user.
type Session struct {
	List    models.ShoppingList
	Editing bool
	// ListMessageID is the chat message that last rendered the list, 0 if none.
	ListMessageID int
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

// Store keeps sessions in memory, keyed by user id.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session

	locksMu sync.Mutex
	locks   map[int64]*userLock
}
