package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecodrive/database/dbtest"
	"ecodrive/models"
	"ecodrive/repository"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 0, repository.DefaultPageSize},
		{-1, 5, 0, 5},
		{2, -10, 2, repository.DefaultPageSize},
		{1, 500, 1, repository.MaxPageSize},
	}
	for _, tt := range tests {
		p, s := repository.NormalizePage(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, p)
		assert.Equal(t, tt.wantSize, s)
	}
}

func TestRepositoryCRUD(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.New[models.Neighborhood](db)

	for _, nome := range []string{"Centro", "Pinheiros", "Moema"} {
		require.NoError(t, repo.Create(ctx, &models.Neighborhood{Nome: nome}))
	}

	got, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Pinheiros", got.Nome)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	ok, err := repo.ExistsByID(ctx, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	page, err := repo.FindPage(ctx, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Moema", page.Items[0].Nome)

	names := repository.MapPage(page, func(n *models.Neighborhood) string { return n.Nome })
	assert.Equal(t, []string{"Moema"}, names.Items)
	assert.Equal(t, page.TotalPages, names.TotalPages)

	found, err := repo.FindContaining(ctx, "nome", "PIN")
	require.NoError(t, err)
	require.Len(t, found, 1)

	n, err := repo.DeleteWhere(ctx, "nome = ?", "Centro")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepositoryWithTxRollsBack(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.New[models.Neighborhood](db)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := repo.WithTx(tx).Create(ctx, &models.Neighborhood{Nome: "Temporário"}); err != nil {
			return err
		}
		return gorm.ErrInvalidTransaction
	})
	require.Error(t, err)

	count, err := repo.Count(ctx, "nome = ?", "Temporário")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNormalizePageBoundsOffset(t *testing.T) {
	page, size := repository.NormalizePage(922337203685477581, 10)
	assert.Equal(t, 10, size)
	assert.Less(t, page, 922337203685477581)
	assert.Positive(t, page*size)
	assert.Positive(t, (page+1)*size)
}

func TestFindPageBeyondLastPageIsEmpty(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.New[models.Neighborhood](db)
	for _, nome := range []string{"Centro", "Pinheiros", "Moema"} {
		require.NoError(t, repo.Create(ctx, &models.Neighborhood{Nome: nome}))
	}

	for _, page := range []int{1, 5, 922337203685477581} {
		p, err := repo.FindPage(ctx, page, 10)
		require.NoError(t, err)
		assert.Empty(t, p.Items, "page %d", page)
		assert.NotNil(t, p.Items)
		assert.EqualValues(t, 3, p.TotalElements)
		assert.Equal(t, 1, p.TotalPages)
	}
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%centro%", repository.ContainsPattern("  Centro "))
	assert.Equal(t, "%100!%%", repository.ContainsPattern("100%"))
	assert.Equal(t, "%a!_b%", repository.ContainsPattern("a_b"))
	assert.Equal(t, "%oi!!%", repository.ContainsPattern("oi!"))
}

func TestFindContainingMatchesWildcardsLiterally(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.New[models.Neighborhood](db)
	for _, nome := range []string{"Centro", "Moema", "Vila 100% Verde", "Jardim_Sul", "Bela Vista!"} {
		require.NoError(t, repo.Create(ctx, &models.Neighborhood{Nome: nome}))
	}

	tests := []struct {
		value string
		want  []string
	}{
		{"%", []string{"Vila 100% Verde"}},
		{"_", []string{"Jardim_Sul"}},
		{"!", []string{"Bela Vista!"}},
		{"0%", []string{"Vila 100% Verde"}},
		{"a_1", nil},
		{"EMA", []string{"Moema"}},
	}
	for _, tt := range tests {
		found, err := repo.FindContaining(ctx, "nome", tt.value)
		require.NoError(t, err)
		var names []string
		for _, n := range found {
			names = append(names, n.Nome)
		}
		assert.Equal(t, tt.want, names, "search %q", tt.value)
	}
}
