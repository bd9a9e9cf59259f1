/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"

	"github.com/suparena/entitymeta/datastore/mock"
	"github.com/suparena/entitymeta/datastore/testmodels"
	"github.com/suparena/entitymeta/environment"
	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/resolver"
)

func TestMockDataStore(t *testing.T) {
	ctx := context.Background()

	md, err := resolver.For[testmodels.RatingSystem](resolver.WithEnvironment(environment.Map{"env.prefix": "test"}))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	t.Run("BasicOperations", func(t *testing.T) {
		mockStore := mock.New[testmodels.RatingSystem](md)
		if mockStore.TableName() != "test_rating_systems" {
			t.Fatalf("unexpected table name %q", mockStore.TableName())
		}

		// Test Put
		entity := &testmodels.RatingSystem{ID: aws.String("123"), Name: aws.String("Test")}
		if err := mockStore.Put(ctx, entity); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		// Test GetOne
		retrieved, err := mockStore.GetOne(ctx, "123")
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if *retrieved.ID != "123" || *retrieved.Name != "Test" {
			t.Fatalf("Retrieved entity mismatch: %+v", retrieved)
		}

		// Pointer keys resolve to the same entry
		if _, err := mockStore.GetOne(ctx, aws.String("123")); err != nil {
			t.Fatalf("GetOne with pointer key failed: %v", err)
		}

		// Test Delete
		if err := mockStore.Delete(ctx, "123"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		// Verify deletion
		_, err = mockStore.GetOne(ctx, "123")
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
		if err := mockStore.Delete(ctx, "123"); !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error on second delete, got: %v", err)
		}
	})

	t.Run("MissingKeyRejected", func(t *testing.T) {
		mockStore := mock.New[testmodels.RatingSystem](md)
		err := mockStore.Put(ctx, &testmodels.RatingSystem{Name: aws.String("No key")})
		if !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got: %v", err)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		mockStore := mock.New[testmodels.RatingSystem](md)

		// Simulate Put error
		putErr := errors.NewValidationError("name", "required")
		mockStore.WithPutError(putErr)

		err := mockStore.Put(ctx, &testmodels.RatingSystem{ID: aws.String("123")})
		if err != putErr {
			t.Fatalf("Expected put error, got: %v", err)
		}

		// Simulate Delete error
		deleteErr := errors.NewAlreadyExistsError("RatingSystem", "123")
		mockStore.WithDeleteError(deleteErr)

		err = mockStore.Delete(ctx, "123")
		if err != deleteErr {
			t.Fatalf("Expected delete error, got: %v", err)
		}

		getErr := errors.NewNotFoundError("RatingSystem", "x")
		mockStore.WithGetError(getErr)
		if _, err := mockStore.GetOne(ctx, "x"); err != getErr {
			t.Fatalf("Expected get error, got: %v", err)
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		mockStore := mock.New[testmodels.RatingSystem](md)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		if err := mockStore.Put(cctx, &testmodels.RatingSystem{ID: aws.String("1")}); err == nil {
			t.Fatal("Expected context error")
		}
	})
}

func TestMockGeneratedKeys(t *testing.T) {
	ctx := context.Background()

	t.Run("NumericSequence", func(t *testing.T) {
		md, err := resolver.For[testmodels.Match]()
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		mockStore := mock.New[testmodels.Match](md)

		first := &testmodels.Match{Winner: "a", Loser: "b"}
		second := &testmodels.Match{Winner: "c", Loser: "d"}
		if err := mockStore.Put(ctx, first); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := mockStore.Put(ctx, second); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if first.MatchID != 1 || second.MatchID != 2 {
			t.Fatalf("Expected generated keys 1 and 2, got %d and %d", first.MatchID, second.MatchID)
		}

		got, err := mockStore.GetOne(ctx, int64(2))
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if got.Winner != "c" {
			t.Fatalf("Unexpected entity %+v", got)
		}

		// An explicit key is kept as is
		explicit := &testmodels.Match{MatchID: 40, Winner: "e"}
		if err := mockStore.Put(ctx, explicit); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if explicit.MatchID != 40 {
			t.Fatalf("Explicit key was replaced: %d", explicit.MatchID)
		}
		if mockStore.Count() != 3 {
			t.Fatalf("Expected 3 entities, got %d", mockStore.Count())
		}
	})

	t.Run("UUIDKeys", func(t *testing.T) {
		md, err := resolver.For[testmodels.Player]()
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		mockStore := mock.New[testmodels.Player](md)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p := &testmodels.Player{Name: "p"}
				if err := mockStore.Put(ctx, p); err != nil {
					t.Errorf("Put failed: %v", err)
					return
				}
				if _, err := uuid.Parse(p.PlayerID); err != nil {
					t.Errorf("Generated key %q is not a UUID: %v", p.PlayerID, err)
				}
			}()
		}
		wg.Wait()

		if mockStore.Count() != 20 {
			t.Fatalf("Expected 20 players, got %d", mockStore.Count())
		}
	})
}
