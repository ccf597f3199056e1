package classify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendtrack/internal/classify"
)

func TestService_Reload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := classify.NewMockRepository(ctrl)
	svc := classify.NewService(repo)

	entries := []classify.Entry{{Description: "Tesco Superstore", Category: "food"}}
	repo.EXPECT().ListEntries(gomock.Any()).Return(entries, nil)

	require.NoError(t, svc.Reload(context.Background()))
	assert.Equal(t, entries, svc.Snapshot())
	assert.Equal(t, "food", svc.Classify("TESCO SUPERSTORE LONDON"))
}

func TestService_ReloadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := classify.NewMockRepository(ctrl)
	svc := classify.NewService(repo)

	repo.EXPECT().ListEntries(gomock.Any()).Return(nil, errors.New("db error"))

	assert.Error(t, svc.Reload(context.Background()))
}

func TestService_EmptySnapshotClassifiesToDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := classify.NewService(classify.NewMockRepository(ctrl))

	assert.Equal(t, "General", svc.Classify("Tesco"))
}
