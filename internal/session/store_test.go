package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/BozorlikBot/internal/models"
)

func testList() models.ShoppingList {
	return models.ShoppingList{Sections: []models.Section{
		{Category: models.CategoryVegetables, Items: []models.Item{models.NewItem("Лук", "1 кг")}},
	}}
}

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()

	_, ok := store.Get(1)
	assert.False(t, ok)

	store.Put(1, Session{List: testList(), ListMessageID: 10})
	assert.Equal(t, 1, store.Len())

	sess, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, 10, sess.ListMessageID)
	assert.False(t, sess.Editing)

	assert.True(t, store.Update(1, func(s *Session) { s.Editing = true }))
	assert.False(t, store.Update(2, func(s *Session) { s.Editing = true }))

	deleted, ok := store.Delete(1)
	require.True(t, ok)
	assert.True(t, deleted.Editing)
	assert.Equal(t, 0, store.Len())

	_, ok = store.Delete(1)
	assert.False(t, ok)
}

func TestStoreReturnsCopies(t *testing.T) {
	store := NewStore()
	list := testList()
	store.Put(1, Session{List: list})

	// mutating the caller's list does not reach the store
	list.Sections[0].Items[0].Name = "Чеснок"

	sess, _ := store.Get(1)
	assert.Equal(t, "Лук", sess.List.Sections[0].Items[0].Name)

	sess.List.Sections[0].Items[0].Purchased = true
	again, _ := store.Get(1)
	assert.False(t, again.List.Sections[0].Items[0].Purchased)
}

func TestStoreUsersAreIsolated(t *testing.T) {
	store := NewStore()
	store.Put(1, Session{List: testList()})
	store.Put(2, Session{List: testList(), Editing: true})

	store.Delete(1)

	sess, ok := store.Get(2)
	require.True(t, ok)
	assert.True(t, sess.Editing)
}

func TestLockSerializesSameUser(t *testing.T) {
	store := NewStore()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := store.Lock(42)
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)

	store.locksMu.Lock()
	defer store.locksMu.Unlock()
	assert.Empty(t, store.locks)
}

func TestLockDoesNotBlockOtherUsers(t *testing.T) {
	store := NewStore()
	unlock := store.Lock(1)
	defer unlock()

	done := make(chan struct{})
	go func() {
		release := store.Lock(2)
		release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for another user blocked")
	}
}
