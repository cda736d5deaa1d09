package service

import (
	"context"
	"errors"
	"strings"

	"alpr_gateway/internal/models"
	"alpr_gateway/internal/repository"
)

var (
	ErrPointNotFound     = errors.New("access point not found")
	ErrPointNameRequired = errors.New("point name is required")
)

// SettingsReader is the part of the settings service other services read.
type SettingsReader interface {
	Get(ctx context.Context) (models.Settings, error)
}

type PointService struct {
	repo     repository.PointRepo
	settings SettingsReader
}

func NewPointService(repo repository.PointRepo, settings SettingsReader) *PointService {
	return &PointService{repo: repo, settings: settings}
}

// List returns access points with their snapshot names and MQTT branches
// filled in, optionally narrowed by a case-insensitive substring.
func (s *PointService) List(ctx context.Context, search string) ([]models.AccessPoint, error) {
	st, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	points, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.AccessPoint, 0, len(points))
	for _, p := range points {
		decoratePoint(&p, st.MQTT.BaseTopic)
		if containsFold(search, p.Name, p.MQTTTopic, p.InCameraURL, p.OutCameraURL, p.BranchIn, p.BranchOut) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Save inserts or replaces a point. The MQTT topic defaults to the name.
func (s *PointService) Save(ctx context.Context, p models.AccessPoint) (models.AccessPoint, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return models.AccessPoint{}, ErrPointNameRequired
	}
	p.MQTTTopic = strings.TrimSpace(p.MQTTTopic)
	if p.MQTTTopic == "" {
		p.MQTTTopic = p.Name
	}
	p.InCameraURL = strings.TrimSpace(p.InCameraURL)
	p.OutCameraURL = strings.TrimSpace(p.OutCameraURL)

	id, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return models.AccessPoint{}, err
	}
	p.ID = id

	st, err := s.settings.Get(ctx)
	if err != nil {
		return models.AccessPoint{}, err
	}
	decoratePoint(&p, st.MQTT.BaseTopic)
	return p, nil
}

func (s *PointService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPointNotFound
	}
	return err
}

// decoratePoint fills the derived fields. Snapshots exist only for points
// with the matching camera configured.
func decoratePoint(p *models.AccessPoint, baseTopic string) {
	safe := SafeName(p.Name)
	p.SnapshotIn, p.SnapshotOut = "", ""
	if p.InCameraURL != "" {
		p.SnapshotIn = safe + "_in.jpg"
	}
	if p.OutCameraURL != "" {
		p.SnapshotOut = safe + "_out.jpg"
	}
	p.BranchIn = baseTopic + "/" + p.Name + "/IN"
	p.BranchOut = baseTopic + "/" + p.Name + "/OUT"
}
