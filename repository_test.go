/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymeta_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entitymeta"
	"github.com/suparena/entitymeta/datastore"
	"github.com/suparena/entitymeta/datastore/mock"
	"github.com/suparena/entitymeta/datastore/testmodels"
	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/resolver"
)

func openMock[T any](md *resolver.EntityMetadata) (datastore.DataStore[T], error) {
	return mock.New[T](md), nil
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	catalog := entitymeta.NewCatalog()

	repo, err := entitymeta.OpenRepository(catalog, openMock[testmodels.Player])
	require.NoError(t, err)
	assert.Equal(t, "Player", repo.Metadata().TableName())
	assert.Same(t, repo.Metadata(), entitymeta.MustResolve[testmodels.Player](catalog))

	player := &testmodels.Player{Name: "Ada", Rating: 1850}
	require.NoError(t, repo.Save(ctx, player))
	require.NotEmpty(t, player.PlayerID, "generated key is assigned on save")

	got, err := repo.Get(ctx, player.PlayerID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)

	require.NoError(t, repo.Remove(ctx, player))
	_, err = repo.Get(ctx, player.PlayerID)
	assert.True(t, errors.IsNotFound(err))
}

func TestRepositoryExplicitKeys(t *testing.T) {
	ctx := context.Background()
	md, err := resolver.For[testmodels.RatingSystem]()
	require.NoError(t, err)
	repo := entitymeta.NewRepository[testmodels.RatingSystem](md, mock.New[testmodels.RatingSystem](md))

	id := "TTOakville"
	require.NoError(t, repo.Save(ctx, &testmodels.RatingSystem{ID: &id}))
	require.NoError(t, repo.Delete(ctx, id))

	err = repo.Save(ctx, &testmodels.RatingSystem{})
	assert.True(t, errors.IsValidationError(err), "key is not generated for rating systems")

	err = repo.Save(ctx, nil)
	assert.True(t, errors.IsValidationError(err))

	err = repo.Remove(ctx, &testmodels.RatingSystem{})
	assert.True(t, errors.IsValidationError(err))
}

func TestOpenRepositoryErrors(t *testing.T) {
	catalog := entitymeta.NewCatalog()

	_, err := entitymeta.OpenRepository(catalog, openMock[keyless])
	assert.ErrorIs(t, err, errors.ErrMissingIDField)

	_, err = entitymeta.OpenRepository(catalog, func(*resolver.EntityMetadata) (datastore.DataStore[testmodels.Match], error) {
		return nil, fmt.Errorf("connection refused")
	})
	assert.EqualError(t, err, "connection refused")
}
