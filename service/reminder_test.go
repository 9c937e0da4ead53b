package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDueSoon(t *testing.T) {
	db := setupTestDB(t)
	cat := mustCategory(t, db, "Rent")
	now := at(2025, time.March, 10)

	insertBill(t, db, billFixture{CategoryID: cat.ID, Vendor: "past", DueDate: date(2025, time.March, 9)})
	insertBill(t, db, billFixture{CategoryID: cat.ID, Vendor: "edge", DueDate: date(2025, time.March, 17)})
	insertBill(t, db, billFixture{CategoryID: cat.ID, Vendor: "today", DueDate: date(2025, time.March, 10)})
	insertBill(t, db, billFixture{CategoryID: cat.ID, Vendor: "later", DueDate: date(2025, time.March, 18)})
	insertBill(t, db, billFixture{CategoryID: cat.ID, Vendor: "none"})

	bills, err := DueSoon(db, now, 7)
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, "today", bills[0].Vendor)
	assert.Equal(t, "edge", bills[1].Vendor)
	assert.Equal(t, "Rent", bills[0].Category.Name)

	none, err := DueSoon(db, now, -1)
	require.NoError(t, err)
	require.Len(t, none, 1)
	assert.Equal(t, "today", none[0].Vendor)
}
