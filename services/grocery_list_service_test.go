package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
	"github.com/akinalp/grocery-planner/ws"
)

func TestGroceryListService(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	hub := &recordingPublisher{}
	svc := NewGroceryListService(repos.grocery, hub)

	user := repos.createUser(t, "list@example.com")

	list, err := svc.GetActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	again, err := svc.GetActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, list.ID, again.ID)

	_, err = svc.SaveItems(ctx, user.ID, &models.SaveItemsRequest{})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	saved, err := svc.SaveItems(ctx, user.ID, &models.SaveItemsRequest{Items: []models.GroceryItem{
		{ID: "i1", Name: "Milk", Amount: "1", Unit: "l", Aisle: "Dairy"},
		{ID: "i2", Name: "Eggs", Amount: "12"},
	}})
	require.NoError(t, err)
	assert.Len(t, saved.Items, 2)

	checked := true
	item, err := svc.UpdateItem(ctx, user.ID, "i2", &models.UpdateGroceryItemRequest{Checked: &checked})
	require.NoError(t, err)
	assert.True(t, item.Checked)
	assert.Equal(t, "Eggs", item.Name)

	_, err = svc.UpdateItem(ctx, user.ID, "missing", &models.UpdateGroceryItemRequest{Checked: &checked})
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	require.NoError(t, svc.DeleteItem(ctx, user.ID, "i1"))
	assert.ErrorIs(t, svc.DeleteItem(ctx, user.ID, "i1"), pkg.ErrNotFound)

	list, err = svc.GetActive(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].Checked)

	require.NoError(t, svc.Clear(ctx, user.ID))
	list, err = svc.GetActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	assert.Equal(t, []string{
		ws.OpGroceryListUpdate, // SaveItems
		ws.OpGroceryListUpdate, // UpdateItem
		ws.OpGroceryListUpdate, // DeleteItem
		ws.OpGroceryListClear,
	}, hub.ops())
	for _, e := range hub.events {
		assert.Equal(t, user.ID, e.userID)
	}
}

func TestSavedListService(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	hub := &recordingPublisher{}
	svc := NewSavedListService(repos.grocery, hub).(*savedListService)
	svc.now = func() time.Time { return time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC) }

	owner := repos.createUser(t, "owner@example.com")
	other := repos.createUser(t, "other@example.com")

	_, err := svc.Save(ctx, owner.ID, &models.SaveGroceryListRequest{})
	assert.ErrorIs(t, err, pkg.ErrBadRequest, "items array is required")

	list, err := svc.Save(ctx, owner.ID, &models.SaveGroceryListRequest{
		Items: []models.GroceryItem{{ID: "a", Name: "Flour", Amount: "2", Unit: "cup"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Grocery List 3/7/2026", list.Name)
	require.NotNil(t, list.SavedAt)

	named, err := svc.Save(ctx, owner.ID, &models.SaveGroceryListRequest{
		Name:  "  Party  ",
		Items: []models.GroceryItem{},
	})
	require.NoError(t, err)
	assert.Equal(t, "Party", named.Name)

	lists, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, lists, 2)

	got, err := svc.Get(ctx, owner.ID, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flour", got.Items[0].Name)

	_, err = svc.Get(ctx, other.ID, list.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, owner.ID, list.ID))
	assert.ErrorIs(t, svc.Delete(ctx, owner.ID, list.ID), pkg.ErrNotFound)

	assert.Equal(t, []string{ws.OpSavedListCreate, ws.OpSavedListCreate, ws.OpSavedListDelete}, hub.ops())
}
