package repository

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

type milestoneRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

type projectRecord struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	ContextID  string            `json:"context_id,omitempty"`
	Status     string            `json:"status"`
	Milestones []milestoneRecord `json:"milestones"`
	CreatedAt  time.Time         `json:"created_at"`
}

func toProjectRecord(p *domain.Project) projectRecord {
	record := projectRecord{
		ID:         p.ID,
		Title:      p.Title,
		ContextID:  p.ContextID,
		Status:     string(p.Status),
		Milestones: make([]milestoneRecord, 0, len(p.Milestones)),
		CreatedAt:  p.CreatedAt,
	}
	for _, m := range p.Milestones {
		record.Milestones = append(record.Milestones, milestoneRecord{ID: m.ID, Title: m.Title, Order: m.Order})
	}
	return record
}

func (r projectRecord) toDomain() *domain.Project {
	project := &domain.Project{
		ID:         r.ID,
		Title:      r.Title,
		ContextID:  r.ContextID,
		Status:     domain.ProjectStatus(r.Status),
		Milestones: make([]domain.Milestone, 0, len(r.Milestones)),
		CreatedAt:  r.CreatedAt,
	}
	for _, m := range r.Milestones {
		project.Milestones = append(project.Milestones, domain.Milestone{ID: m.ID, Title: m.Title, Order: m.Order})
	}
	return project
}

func decodeProject(data []byte) (*domain.Project, error) {
	var record projectRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidProjectData
	}
	return record.toDomain(), nil
}

type projectRepository struct {
	client redis.UniversalClient
	keys   keyspace
}

func NewProjectRepository(client redis.UniversalClient, keyPrefix string) domain.ProjectRepository {
	return &projectRepository{
		client: client,
		keys:   newKeyspace(keyPrefix),
	}
}

func (r *projectRepository) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	data, err := r.client.Get(ctx, r.keys.project(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	return decodeProject(data)
}

func (r *projectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	ids, err := r.client.SMembers(ctx, r.keys.projects()).Result()
	if err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(ids))
	if len(ids) == 0 {
		return projects, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.keys.project(id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		project, err := decodeProject([]byte(raw))
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}

	slices.SortFunc(projects, func(a, b domain.Project) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return projects, nil
}

func (r *projectRepository) SaveProject(ctx context.Context, project *domain.Project) error {
	if project == nil || project.ID == "" {
		return domain.ErrInvalidProject
	}

	data, err := json.Marshal(toProjectRecord(project))
	if err != nil {
		return ErrInvalidProjectData
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.keys.project(project.ID), data, 0)
		pipe.SAdd(ctx, r.keys.projects(), project.ID)
		return nil
	})
	return err
}
