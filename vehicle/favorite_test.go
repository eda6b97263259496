package vehicle

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFavorite(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectExec("INSERT OR IGNORE INTO FavoriteVehicle \\(visitor_id, vehicle_id\\) VALUES \\(\\?, \\?\\)").
		WithArgs("visitor-1", "v1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, AddFavorite("visitor-1", "v1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFavorite(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectExec("DELETE FROM FavoriteVehicle WHERE visitor_id = \\? AND vehicle_id = \\?").
		WithArgs("visitor-1", "v1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, RemoveFavorite("visitor-1", "v1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsFavorite(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectQuery("SELECT 1 FROM FavoriteVehicle").
		WithArgs("visitor-1", "v1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM FavoriteVehicle").
		WithArgs("visitor-1", "v2").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	fav, err := IsFavorite("visitor-1", "v1")
	require.NoError(t, err)
	assert.True(t, fav)

	fav, err = IsFavorite("visitor-1", "v2")
	require.NoError(t, err)
	assert.False(t, fav)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteSet(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectQuery("SELECT vehicle_id FROM FavoriteVehicle WHERE visitor_id = \\? ORDER BY favorited_at DESC").
		WithArgs("visitor-1").
		WillReturnRows(sqlmock.NewRows([]string{"vehicle_id"}).AddRow("v2").AddRow("v1"))

	set := FavoriteSet(context.Background(), "visitor-1")

	assert.Equal(t, map[string]bool{"v1": true, "v2": true}, set)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteSet_NoVisitor(t *testing.T) {
	mock := setupMock(t)

	set := FavoriteSet(context.Background(), "")

	assert.Empty(t, set)
	assert.NoError(t, mock.ExpectationsWereMet())
}
