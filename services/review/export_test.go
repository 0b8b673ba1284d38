package review

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExport(t *testing.T) {
	svc, _ := setupService(t, nil)
	ctx := context.Background()

	a, err := svc.Submit(ctx, submitReq("Ana", "Great"))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, submitReq("Bo", "Fine"))
	require.NoError(t, err)
	_, err = svc.Reject(ctx, a.ID, "duplicate account")
	require.NoError(t, err)

	data, err := svc.Export(ctx, "")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Email", rows[0][2])
	assert.Equal(t, "Bo", rows[1][1])
	assert.Equal(t, "rejected", rows[2][6])
	assert.Equal(t, "duplicate account", rows[2][10])

	_, err = svc.Export(ctx, "bogus")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
