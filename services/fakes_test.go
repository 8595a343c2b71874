package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/launchit-app/launchit/backend/models"
)

// In-memory stand-ins for the database repos. They copy rows on the way in
// and out so tests cannot accidentally share state with the service under
// test.

type fakeProjectStore struct {
	rows map[uuid.UUID]*models.Project

	// addErrs is popped once per Add call; a nil entry means success.
	addErrs   []error
	findErr   error
	updateErr error

	addCalls    int
	updateCalls int
	findCalls   int
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{rows: make(map[uuid.UUID]*models.Project)}
}

func (s *fakeProjectStore) seed(p *models.Project) {
	cp := *p
	s.rows[cp.ID] = &cp
}

func (s *fakeProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	s.findCalls++
	if s.findErr != nil {
		return nil, s.findErr
	}
	if p, ok := s.rows[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeProjectStore) FindDraft(userID uuid.UUID, name string) (*models.Project, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, p := range s.rows {
		if p.UserID == userID && p.Name == name && p.Status == models.StatusDraft {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeProjectStore) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	if s.findErr != nil {
		return false, s.findErr
	}
	for _, p := range s.rows {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeProjectStore) CountLaunchedSince(userID uuid.UUID, since time.Time) (int64, error) {
	if s.findErr != nil {
		return 0, s.findErr
	}
	var count int64
	for _, p := range s.rows {
		if p.UserID == userID && p.Status == models.StatusLaunched && !p.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *fakeProjectStore) FindLaunchedByNormalizedURL(normalizedURL string, excludeID uuid.UUID) (*models.Project, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, p := range s.rows {
		if p.NormalizedURL == normalizedURL && p.Status == models.StatusLaunched && p.ID != excludeID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeProjectStore) Add(project *models.Project) error {
	s.addCalls++
	if len(s.addErrs) > 0 {
		err := s.addErrs[0]
		s.addErrs = s.addErrs[1:]
		if err != nil {
			return err
		}
	}
	cp := *project
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.rows[cp.ID] = &cp
	return nil
}

func (s *fakeProjectStore) Update(project *models.Project) error {
	s.updateCalls++
	if s.updateErr != nil {
		return s.updateErr
	}
	cp := *project
	s.rows[cp.ID] = &cp
	return nil
}

func (s *fakeProjectStore) Delete(id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

type fakeDeletedStore struct {
	records []*models.DeletedProject
}

func (s *fakeDeletedStore) Add(record *models.DeletedProject) error {
	cp := *record
	s.records = append(s.records, &cp)
	return nil
}

func (s *fakeDeletedStore) FindByNormalizedURL(normalizedURL string) (*models.DeletedProject, error) {
	var newest *models.DeletedProject
	for _, rec := range s.records {
		if rec.NormalizedURL != normalizedURL {
			continue
		}
		if newest == nil || rec.DeletedAt.After(newest.DeletedAt) {
			newest = rec
		}
	}
	if newest == nil {
		return nil, nil
	}
	cp := *newest
	return &cp, nil
}

type fakeLikeStore struct {
	likes  []*models.Like
	addErr error
}

func (s *fakeLikeStore) Add(like *models.Like) error {
	if s.addErr != nil {
		return s.addErr
	}
	cp := *like
	s.likes = append(s.likes, &cp)
	return nil
}

type fakeProfileStore struct {
	profiles map[uuid.UUID]*models.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (s *fakeProfileStore) FindByID(id uuid.UUID) (*models.Profile, error) {
	if p, ok := s.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

type fakeRelaunchStore struct {
	requests []*models.RelaunchRequest
}

func (s *fakeRelaunchStore) Add(request *models.RelaunchRequest) error {
	cp := *request
	s.requests = append(s.requests, &cp)
	return nil
}

func (s *fakeRelaunchStore) HasPending(projectID uuid.UUID) (bool, error) {
	for _, req := range s.requests {
		if req.ProjectID == projectID && req.Status == models.RelaunchPendingReview {
			return true, nil
		}
	}
	return false, nil
}

type fakeNotificationStore struct {
	notifications []*models.Notification
}

func (s *fakeNotificationStore) Add(notification *models.Notification) error {
	cp := *notification
	s.notifications = append(s.notifications, &cp)
	return nil
}

func (s *fakeNotificationStore) AddBatch(notifications []*models.Notification) error {
	for _, n := range notifications {
		cp := *n
		s.notifications = append(s.notifications, &cp)
	}
	return nil
}

type fakeCommentStore struct {
	rows map[uuid.UUID]*models.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{rows: make(map[uuid.UUID]*models.Comment)}
}

func (s *fakeCommentStore) seed(c *models.Comment) {
	cp := *c
	s.rows[cp.ID] = &cp
}

func (s *fakeCommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	if c, ok := s.rows[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeCommentStore) FindByProject(projectID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, c := range s.rows {
		if c.ProjectID == projectID {
			cp := *c
			comments = append(comments, &cp)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *fakeCommentStore) CountReplies(id uuid.UUID) (int64, error) {
	var count int64
	for _, c := range s.rows {
		if c.ParentID != nil && *c.ParentID == id {
			count++
		}
	}
	return count, nil
}

func (s *fakeCommentStore) Add(comment *models.Comment) error {
	cp := *comment
	s.rows[cp.ID] = &cp
	return nil
}

func (s *fakeCommentStore) SoftDelete(id uuid.UUID) error {
	c, ok := s.rows[id]
	if !ok {
		return fmt.Errorf("comment %s not found", id)
	}
	c.Content = ""
	c.Deleted = true
	return nil
}

func (s *fakeCommentStore) Delete(id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

type fakeObjectStore struct {
	mu        sync.Mutex
	uploads   map[string][]byte
	uploadErr error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{uploads: make(map[string][]byte)}
}

func (s *fakeObjectStore) Upload(_ context.Context, key, _ string, body []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads[key] = body
	return s.BaseURL() + "/" + key, nil
}

func (s *fakeObjectStore) BaseURL() string {
	return "https://media.test"
}

// completeProfile builds a profile that passes the launch completeness gate.
func completeProfile(id uuid.UUID) *models.Profile {
	return &models.Profile{
		ID:        id,
		Username:  "ada",
		FullName:  "Ada Lovelace",
		Location:  "London",
		GithubURL: "https://github.com/ada",
	}
}

// launchForm builds a valid submission form.
func launchForm(name, url string) *ProjectForm {
	return &ProjectForm{
		Name:        name,
		WebsiteURL:  url,
		Tagline:     "Ship faster",
		Description: "A tool for shipping faster.",
		Category:    "devtools",
	}
}

// noopSleep replaces real backoff waits in tests.
func noopSleep(context.Context, time.Duration) error { return nil }
