package service

import (
	"context"
	"errors"
	"strings"

	"alpr_gateway/internal/models"
	"alpr_gateway/internal/repository"
)

var (
	ErrPersonNotFound    = errors.New("person not found")
	ErrCarNumberRequired = errors.New("car number is required")
)

type PeopleService struct {
	repo repository.PeopleRepo
}

func NewPeopleService(repo repository.PeopleRepo) *PeopleService {
	return &PeopleService{repo: repo}
}

// List returns the registry, optionally narrowed by a case-insensitive
// substring over every text column.
func (s *PeopleService) List(ctx context.Context, search string) ([]models.Person, error) {
	people, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Person, 0, len(people))
	for _, p := range people {
		if containsFold(search, p.Name, p.CarNumber, p.CarModel, p.Phone, p.Address) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Save inserts or replaces a person. The car number is stored normalized so
// recognized plates match it.
func (s *PeopleService) Save(ctx context.Context, p models.Person) (models.Person, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.CarModel = strings.TrimSpace(p.CarModel)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Address = strings.TrimSpace(p.Address)
	p.CarNumber = NormalizePlate(p.CarNumber)
	if p.CarNumber == "" {
		return models.Person{}, ErrCarNumberRequired
	}

	id, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return models.Person{}, err
	}
	p.ID = id
	return p, nil
}

func (s *PeopleService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPersonNotFound
	}
	return err
}

// containsFold reports whether any field contains needle, ignoring case.
// An empty needle matches everything.
func containsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
