package service

import (
	"context"
	"errors"

	"github.com/jkorir-dev/duka-pos/internal/domain/entity"
	"github.com/jkorir-dev/duka-pos/internal/domain/repository"
)

// In-memory gateway stubs so the services can be exercised without a
// database. failLoad/failSave simulate IO errors.

type stubCatalogRepo struct {
	snapshot repository.CatalogSnapshot
	failLoad bool
	failSave bool
	saves    int
}

func (s *stubCatalogRepo) Load(ctx context.Context) (*repository.CatalogSnapshot, error) {
	if s.failLoad {
		return nil, errors.New("disk gone")
	}
	snapshot := s.snapshot
	return &snapshot, nil
}

func (s *stubCatalogRepo) Replace(ctx context.Context, snapshot *repository.CatalogSnapshot) error {
	if s.failSave {
		return errors.New("disk gone")
	}
	s.snapshot = *snapshot
	s.saves++
	return nil
}

type stubUserRepo struct {
	users    []entity.User
	failLoad bool
	failSave bool
	saves    int
}

func (s *stubUserRepo) Load(ctx context.Context) ([]entity.User, error) {
	if s.failLoad {
		return nil, errors.New("disk gone")
	}
	return append([]entity.User(nil), s.users...), nil
}

func (s *stubUserRepo) Replace(ctx context.Context, users []entity.User) error {
	if s.failSave {
		return errors.New("disk gone")
	}
	s.users = append([]entity.User(nil), users...)
	s.saves++
	return nil
}

type stubReceiptRepo struct {
	receipts []entity.Receipt
	failLoad bool
	failSave bool
	saves    int
}

func (s *stubReceiptRepo) Load(ctx context.Context) ([]entity.Receipt, error) {
	if s.failLoad {
		return nil, errors.New("disk gone")
	}
	return append([]entity.Receipt(nil), s.receipts...), nil
}

func (s *stubReceiptRepo) Replace(ctx context.Context, receipts []entity.Receipt) error {
	if s.failSave {
		return errors.New("disk gone")
	}
	s.receipts = append([]entity.Receipt(nil), receipts...)
	s.saves++
	return nil
}
