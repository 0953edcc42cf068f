package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextApprovalLevel(t *testing.T) {
	var m MaterialMasterRecord
	assert.Equal(t, 1, m.NextApprovalLevel())
	assert.False(t, m.FullyApproved())

	m.Approvals[0].Approved = true
	assert.Equal(t, 2, m.NextApprovalLevel())

	m.Approvals[1].Approved = true
	m.Approvals[2].Approved = true
	assert.Equal(t, 0, m.NextApprovalLevel(), "con los tres niveles otorgados no queda nivel pendiente")
	assert.True(t, m.FullyApproved())
}

func TestHasWarehouse(t *testing.T) {
	m := MaterialMasterRecord{WarehouseIDs: []string{"wh-1", "wh-3"}}

	assert.True(t, m.HasWarehouse("wh-1"))
	assert.True(t, m.HasWarehouse("wh-3"))
	assert.False(t, m.HasWarehouse("wh-2"))

	var vacio MaterialMasterRecord
	assert.False(t, vacio.HasWarehouse("wh-1"), "lista vacía no contiene ninguna bodega")
}
