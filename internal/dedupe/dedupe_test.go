package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/vendor-cli/internal/model"
)

func rec(name, address string) model.VendorRecord {
	return model.VendorRecord{Name: name, Address: address}
}

func TestAgainst_EmptyHistoryReturnsBatchUnchanged(t *testing.T) {
	batch := model.VendorBatch{rec("A", "1"), rec("B", "2"), rec("A", "1")}

	fresh, newCount, dupCount := Against(batch, nil)

	assert.Equal(t, batch, fresh)
	assert.Equal(t, 3, newCount)
	assert.Zero(t, dupCount)
}

func TestAgainst_KnownAndNewSplit(t *testing.T) {
	history := model.VendorBatch{rec("X", "Y")}
	batch := model.VendorBatch{rec("X", "Y"), rec("Z", "W")}

	fresh, newCount, dupCount := Against(batch, history)

	require.Len(t, fresh, 1)
	assert.Equal(t, "Z", fresh[0].Name)
	assert.Equal(t, "W", fresh[0].Address)
	assert.Equal(t, 1, newCount)
	assert.Equal(t, 1, dupCount)
}

func TestAgainst_KeyIsCaseAndTrimInsensitive(t *testing.T) {
	history := model.VendorBatch{rec("Acme Tents ", "MG Road")}
	batch := model.VendorBatch{rec("acme tents", "mg road")}

	fresh, newCount, dupCount := Against(batch, history)

	assert.Empty(t, fresh)
	assert.Zero(t, newCount)
	assert.Equal(t, 1, dupCount)
}

func TestAgainst_PreservesBatchOrder(t *testing.T) {
	history := model.VendorBatch{rec("B", "2")}
	batch := model.VendorBatch{rec("C", "3"), rec("B", "2"), rec("A", "1")}

	fresh, _, _ := Against(batch, history)

	require.Len(t, fresh, 2)
	assert.Equal(t, "C", fresh[0].Name)
	assert.Equal(t, "A", fresh[1].Name)
}

func TestAgainst_IntraBatchDuplicatesKept(t *testing.T) {
	history := model.VendorBatch{rec("Old", "Road")}
	batch := model.VendorBatch{rec("Twin", "Street"), rec("Twin", "Street")}

	fresh, newCount, dupCount := Against(batch, history)

	assert.Len(t, fresh, 2)
	assert.Equal(t, 2, newCount)
	assert.Zero(t, dupCount)
}

func TestAgainst_IdempotentAgainstOwnOutput(t *testing.T) {
	history := model.VendorBatch{rec("X", "Y")}
	batch := model.VendorBatch{rec("X", "Y"), rec("Z", "W"), rec("Q", "R")}

	fresh, _, _ := Against(batch, history)
	merged := append(append(model.VendorBatch{}, history...), fresh...)

	again, newCount, dupCount := Against(fresh, merged)

	assert.Empty(t, again)
	assert.Zero(t, newCount)
	assert.Equal(t, len(fresh), dupCount)
}

func TestAgainst_DoesNotMutateInputs(t *testing.T) {
	history := model.VendorBatch{rec("X", "Y")}
	batch := model.VendorBatch{rec("X", "Y"), rec("Z", "W")}

	batchCopy := append(model.VendorBatch{}, batch...)
	historyCopy := append(model.VendorBatch{}, history...)

	_, _, _ = Against(batch, history)

	assert.Equal(t, batchCopy, batch)
	assert.Equal(t, historyCopy, history)
}
