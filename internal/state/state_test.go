package state

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore/mocks"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	appState := New()

	channels := make(map[string]chan docstore.Snapshot)
	mockStore.EXPECT().
		Subscribe(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, collection string) (<-chan docstore.Snapshot, error) {
			ch := make(chan docstore.Snapshot, 1)
			channels[collection] = ch
			return ch, nil
		}).
		Times(6)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, appState.Start(ctx, mockStore))
	require.Len(t, channels, 6)

	raw, err := json.Marshal(domain.DailyBusinessResult{Date: "2026-01-15", NetRevenue: 2500000})
	require.NoError(t, err)
	channels[docstore.CollectionBusinessResults] <- docstore.Snapshot{
		"2026-01-15": raw,
		"quebrado":   []byte("{nao é json"), // documento ilegível é só ignorado
	}

	assert.Eventually(t, func() bool {
		result, ok := appState.BusinessResultByDate("2026-01-15")
		return ok && result.NetRevenue == 2500000
	}, time.Second, 10*time.Millisecond)

	_, ok := appState.BusinessResultByDate("quebrado")
	assert.False(t, ok)

	// Um novo snapshot substitui o anterior por inteiro.
	channels[docstore.CollectionBusinessResults] <- docstore.Snapshot{}
	assert.Eventually(t, func() bool {
		_, ok := appState.BusinessResultByDate("2026-01-15")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestStartSubscribeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().
		Subscribe(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("canal de notificação indisponível"))

	err := New().Start(context.Background(), mockStore)
	assert.Error(t, err)
}

func TestFail(t *testing.T) {
	appState := New()
	assert.NoError(t, appState.Failure())

	first := errors.New("conexão perdida")
	appState.Fail(first)
	appState.Fail(errors.New("erro posterior"))

	// O primeiro erro fatal é o que fica.
	assert.Equal(t, first, appState.Failure())
}

func TestAccessorOrdering(t *testing.T) {
	appState := New()

	appState.ReplaceBusinessResults([]domain.DailyBusinessResult{
		{Date: "2026-01-14"},
		{Date: "2026-01-16"},
		{Date: "2026-01-15"},
	})
	results := appState.BusinessResults()
	require.Len(t, results, 3)
	assert.Equal(t, "2026-01-16", results[0].Date)
	assert.Equal(t, "2026-01-14", results[2].Date)

	appState.ReplaceMaterials([]domain.Material{
		{ID: 10, Name: "Trà đào"},
		{ID: 2, Name: "Sữa đặc"},
	})
	materials := appState.Materials()
	require.Len(t, materials, 2)
	assert.Equal(t, 2, materials[0].ID)

	material, ok := appState.MaterialByID(10)
	require.True(t, ok)
	assert.Equal(t, "Trà đào", material.Name)

	appState.ReplaceExpenses([]domain.ExpenseRecord{
		{ID: "2026-01-15-b", Date: "2026-01-15", Amount: 50000},
		{ID: "2026-01-15-a", Date: "2026-01-15", Amount: 100000},
		{ID: "2026-01-14-c", Date: "2026-01-14", Amount: 30000},
	})
	byDate := appState.ExpensesByDate("2026-01-15")
	require.Len(t, byDate, 2)
	assert.Equal(t, "2026-01-15-a", byDate[0].ID)

	all := appState.Expenses()
	require.Len(t, all, 3)
	assert.Equal(t, "2026-01-14-c", all[2].ID)
}
