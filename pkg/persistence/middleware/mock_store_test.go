package middleware_test

import (
	"context"
	"errors"

	"github.com/aretw0/menubot/pkg/domain"
	"github.com/aretw0/menubot/pkg/ports"
)

var errStoreDown = errors.New("store down")

// failingStore rejects every call.
type failingStore struct{}

func (failingStore) Save(context.Context, string, *domain.State) error { return errStoreDown }

func (failingStore) Load(context.Context, string) (*domain.State, error) {
	return nil, errStoreDown
}

func (failingStore) Delete(context.Context, string) error { return errStoreDown }

func (failingStore) List(context.Context) ([]string, error) { return nil, errStoreDown }

var _ ports.StateStore = failingStore{}
