package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *ServiceDB {
	t.Helper()

	db, err := NewServiceDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Migrate())

	count, err := db.Count(context.Background(), Manufacturers, Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInsertGetUpdateDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	row, err := db.Insert(ctx, Manufacturers, Fields{
		"name":         "ABC Steel",
		"product_type": "W-Beam",
		"price":        1250.5,
	})
	require.NoError(t, err)
	assert.Positive(t, row.ID())
	assert.Equal(t, "ABC Steel", row.String("name"))
	assert.Equal(t, 1250.5, row.Float64("price"))
	assert.Equal(t, "", row.String("location"))
	assert.False(t, row.Time("created_at").IsZero())

	updated, err := db.Update(ctx, Manufacturers, row.ID(), Fields{"location": "Pune"})
	require.NoError(t, err)
	assert.Equal(t, "Pune", updated.String("location"))
	assert.Equal(t, "ABC Steel", updated.String("name"))

	require.NoError(t, db.Delete(ctx, Manufacturers, row.ID()))

	_, err = db.Get(ctx, Manufacturers, row.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.Delete(ctx, Manufacturers, row.ID()), ErrNotFound)

	_, err = db.Update(ctx, Manufacturers, row.ID(), Fields{"location": "Delhi"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsert_RejectsUnknownColumns(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.Insert(ctx, Products, Fields{"name": "Road Studs", "colour": "red"})
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = db.Insert(ctx, Products, Fields{})
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestInsert_UniqueViolationIsConflict(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	fields := Fields{"username": "admin", "password_hash": "x", "role": "admin", "active": true}
	row, err := db.Insert(ctx, Users, fields)
	require.NoError(t, err)
	assert.True(t, row.Bool("active"))

	_, err = db.Insert(ctx, Users, fields)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestList_Filters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"Kiran Road Safety", "ABC Steel", "Road Line Paints"} {
		_, err := db.Insert(ctx, Dealers, Fields{"name": name, "location": "Pune"})
		require.NoError(t, err)
	}

	all, err := db.List(ctx, Dealers, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	road, err := db.List(ctx, Dealers, Filter{Like: map[string]string{"name": "road"}, OrderBy: "name"})
	require.NoError(t, err)
	require.Len(t, road, 2)
	assert.Equal(t, "Kiran Road Safety", road[0].String("name"))
	assert.Equal(t, "Road Line Paints", road[1].String("name"))

	page, err := db.List(ctx, Dealers, Filter{Limit: 1, Offset: 1, Desc: true})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "ABC Steel", page[0].String("name"))

	_, err = db.List(ctx, Dealers, Filter{Equals: map[string]any{"password_hash": "x"}})
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestList_AtMostComparesTimestamps(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	order, err := db.Insert(ctx, Orders, Fields{"manufacturer": "ABC Steel", "quantity": 10})
	require.NoError(t, err)

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{now.Add(-time.Hour), now.Add(time.Hour)} {
		_, err := db.Insert(ctx, Reminders, Fields{"order_id": order.ID(), "remind_at": at, "status": "pending"})
		require.NoError(t, err)
	}

	due, err := db.List(ctx, Reminders, Filter{
		Equals: map[string]any{"status": "pending"},
		AtMost: map[string]any{"remind_at": now},
	})
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, now.Add(-time.Hour), due[0].Time("remind_at"))
	assert.Nil(t, due[0].TimePtr("sent_at"))
}

func TestDeleteOrder_CascadesReminders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	order, err := db.Insert(ctx, Orders, Fields{"product": "Road Studs"})
	require.NoError(t, err)
	_, err = db.Insert(ctx, Reminders, Fields{"order_id": order.ID(), "remind_at": time.Now()})
	require.NoError(t, err)

	require.NoError(t, db.Delete(ctx, Orders, order.ID()))

	count, err := db.Count(ctx, Reminders, Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}
