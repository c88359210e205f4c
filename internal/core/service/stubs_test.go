package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User
	seq    int
	findFn func(id string) error // optional failure injection for FindByID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findFn != nil {
		if err := r.findFn(id); err != nil {
			return nil, err
		}
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateDetails(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != nil {
		for _, other := range r.users {
			if other.ID != id && other.Email == *patch.Email {
				return nil, domain.ErrUserExists
			}
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

// ---------------------------------------------------------------------------
// Token store + notice queue
// ---------------------------------------------------------------------------

type stubTokenStore struct {
	revoked map[string]time.Time
	resets  map[string]string
	err     error
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{revoked: make(map[string]time.Time), resets: make(map[string]string)}
}

func (s *stubTokenStore) Revoke(_ context.Context, id string, until time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.revoked[id] = until
	return nil
}

func (s *stubTokenStore) IsRevoked(_ context.Context, id string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.revoked[id]
	return ok, nil
}

func (s *stubTokenStore) SaveResetToken(_ context.Context, digest, userID string, _ time.Duration) error {
	s.resets[digest] = userID
	return nil
}

func (s *stubTokenStore) ConsumeResetToken(_ context.Context, digest string) (string, error) {
	id, ok := s.resets[digest]
	if !ok {
		return "", domain.ErrInvalidResetToken
	}
	delete(s.resets, digest)
	return id, nil
}

type stubNoticeQueue struct {
	mu      sync.Mutex
	notices []ports.PasswordResetNotice
	err     error
}

func (q *stubNoticeQueue) Enqueue(n ports.PasswordResetNotice) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.notices = append(q.notices, n)
	return nil
}

// ---------------------------------------------------------------------------
// Bootcamps
// ---------------------------------------------------------------------------

type stubBootcampRepo struct {
	items  map[string]*domain.Bootcamp
	seq    int
	writes int
}

func newStubBootcampRepo() *stubBootcampRepo {
	return &stubBootcampRepo{items: make(map[string]*domain.Bootcamp)}
}

func (r *stubBootcampRepo) put(b *domain.Bootcamp) *domain.Bootcamp {
	clone := *b
	r.items[b.ID] = &clone
	return b
}

func (r *stubBootcampRepo) Create(_ context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	if b.Exclusive {
		for _, existing := range r.items {
			if existing.Exclusive && existing.User == b.User {
				return nil, domain.ErrAlreadyPublished
			}
		}
	}
	r.seq++
	r.writes++
	clone := *b
	clone.ID = fmt.Sprintf("bootcamp-%d", r.seq)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBootcampRepo) FindByID(_ context.Context, id string) (*domain.Bootcamp, error) {
	b, ok := r.items[id]
	if !ok {
		return nil, domain.ErrBootcampNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBootcampRepo) List(_ context.Context, q ports.ListQuery) ([]*domain.Bootcamp, int64, error) {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*domain.Bootcamp
	for _, id := range ids {
		clone := *r.items[id]
		out = append(out, &clone)
	}
	total := int64(len(out))
	start := int(q.Skip())
	if start > len(out) {
		return nil, total, nil
	}
	end := start + q.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *stubBootcampRepo) CountByOwner(_ context.Context, ownerID string) (int64, error) {
	var n int64
	for _, b := range r.items {
		if b.User == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *stubBootcampRepo) Update(_ context.Context, id, ownerID string, p ports.BootcampPatch) (*domain.Bootcamp, error) {
	b, ok := r.items[id]
	if !ok || (ownerID != "" && b.User != ownerID) {
		return nil, domain.ErrBootcampNotFound
	}
	r.writes++
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Slug != nil {
		b.Slug = *p.Slug
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Housing != nil {
		b.Housing = *p.Housing
	}
	clone := *b
	return &clone, nil
}

func (r *stubBootcampRepo) Delete(_ context.Context, id, ownerID string) error {
	b, ok := r.items[id]
	if !ok || (ownerID != "" && b.User != ownerID) {
		return domain.ErrBootcampNotFound
	}
	r.writes++
	delete(r.items, id)
	return nil
}

func (r *stubBootcampRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(r.items))
	r.items = make(map[string]*domain.Bootcamp)
	return n, nil
}

func (r *stubBootcampRepo) SetAverageCost(_ context.Context, id string, cost float64) error {
	if b, ok := r.items[id]; ok {
		b.AverageCost = cost
	}
	return nil
}

func (r *stubBootcampRepo) SetAverageRating(_ context.Context, id string, rating float64) error {
	if b, ok := r.items[id]; ok {
		b.AverageRating = rating
	}
	return nil
}

// ---------------------------------------------------------------------------
// Courses
// ---------------------------------------------------------------------------

type stubCourseRepo struct {
	items  map[string]*domain.Course
	seq    int
	writes int
	// beforeWrite runs ahead of Update/Delete to simulate concurrent changes.
	beforeWrite func()
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{items: make(map[string]*domain.Course)}
}

func (r *stubCourseRepo) Create(_ context.Context, c *domain.Course) (*domain.Course, error) {
	r.seq++
	r.writes++
	clone := *c
	clone.ID = fmt.Sprintf("course-%d", r.seq)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCourseRepo) FindInBootcamp(ctx context.Context, bootcampID, id string) (*domain.Course, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil || c.Bootcamp != bootcampID {
		return nil, domain.ErrCourseNotFound
	}
	return c, nil
}

func (r *stubCourseRepo) List(_ context.Context, _ ports.ListQuery) ([]*domain.Course, int64, error) {
	var out []*domain.Course
	for _, c := range r.items {
		clone := *c
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubCourseRepo) ListByBootcamp(_ context.Context, bootcampID string) ([]*domain.Course, error) {
	var out []*domain.Course
	for _, c := range r.items {
		if c.Bootcamp == bootcampID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCourseRepo) Update(_ context.Context, id, ownerID string, p ports.CoursePatch) (*domain.Course, error) {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}
	c, ok := r.items[id]
	if !ok || (ownerID != "" && c.User != ownerID) {
		return nil, domain.ErrCourseNotFound
	}
	r.writes++
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Tuition != nil {
		c.Tuition = *p.Tuition
	}
	if p.Weeks != nil {
		c.Weeks = *p.Weeks
	}
	clone := *c
	return &clone, nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id, ownerID string) error {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}
	c, ok := r.items[id]
	if !ok || (ownerID != "" && c.User != ownerID) {
		return domain.ErrCourseNotFound
	}
	r.writes++
	delete(r.items, id)
	return nil
}

func (r *stubCourseRepo) DeleteByBootcamp(_ context.Context, bootcampID string) (int64, error) {
	var n int64
	for id, c := range r.items {
		if c.Bootcamp == bootcampID {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *stubCourseRepo) AverageTuition(_ context.Context, bootcampID string) (float64, error) {
	var sum float64
	var n int
	for _, c := range r.items {
		if c.Bootcamp == bootcampID {
			sum += c.Tuition
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// ---------------------------------------------------------------------------
// Reviews
// ---------------------------------------------------------------------------

type stubReviewRepo struct {
	items map[string]*domain.Review
	seq   int
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{items: make(map[string]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rv *domain.Review) (*domain.Review, error) {
	for _, existing := range r.items {
		if existing.Bootcamp == rv.Bootcamp && existing.User == rv.User {
			return nil, domain.ErrDuplicateReview
		}
	}
	r.seq++
	clone := *rv
	clone.ID = fmt.Sprintf("review-%d", r.seq)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	rv, ok := r.items[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	clone := *rv
	return &clone, nil
}

func (r *stubReviewRepo) List(_ context.Context, _ ports.ListQuery) ([]*domain.Review, int64, error) {
	var out []*domain.Review
	for _, rv := range r.items {
		clone := *rv
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubReviewRepo) ListByBootcamp(_ context.Context, bootcampID string) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, rv := range r.items {
		if rv.Bootcamp == bootcampID {
			clone := *rv
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) Update(_ context.Context, id, ownerID string, p ports.ReviewPatch) (*domain.Review, error) {
	rv, ok := r.items[id]
	if !ok || (ownerID != "" && rv.User != ownerID) {
		return nil, domain.ErrReviewNotFound
	}
	if p.Title != nil {
		rv.Title = *p.Title
	}
	if p.Text != nil {
		rv.Text = *p.Text
	}
	if p.Rating != nil {
		rv.Rating = *p.Rating
	}
	clone := *rv
	return &clone, nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id, ownerID string) error {
	rv, ok := r.items[id]
	if !ok || (ownerID != "" && rv.User != ownerID) {
		return domain.ErrReviewNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubReviewRepo) DeleteByBootcamp(_ context.Context, bootcampID string) (int64, error) {
	var n int64
	for id, rv := range r.items {
		if rv.Bootcamp == bootcampID {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *stubReviewRepo) AverageRating(_ context.Context, bootcampID string) (float64, error) {
	var sum, n int
	for _, rv := range r.items {
		if rv.Bootcamp == bootcampID {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

// ---------------------------------------------------------------------------
// Identities
// ---------------------------------------------------------------------------

var (
	alice = domain.Identity{ID: "alice", Role: domain.RolePublisher}
	carol = domain.Identity{ID: "carol", Role: domain.RoleUser}
	root  = domain.Identity{ID: "root", Role: domain.RoleAdmin}
)

// ---------------------------------------------------------------------------
// Context-aware wrappers
// ---------------------------------------------------------------------------

// hangupCourses cancels the request context right after a course write, the
// way a client closing its connection would, and refuses calls on a cancelled
// context like a real driver.
type hangupCourses struct {
	*stubCourseRepo
	cancel context.CancelFunc
}

func (r *hangupCourses) Delete(ctx context.Context, id, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.stubCourseRepo.Delete(ctx, id, ownerID)
	r.cancel()
	return err
}

func (r *hangupCourses) DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := r.stubCourseRepo.DeleteByBootcamp(ctx, bootcampID)
	r.cancel()
	return n, err
}

func (r *hangupCourses) AverageTuition(ctx context.Context, bootcampID string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return r.stubCourseRepo.AverageTuition(ctx, bootcampID)
}

type ctxBootcamps struct {
	*stubBootcampRepo
}

func (r *ctxBootcamps) Delete(ctx context.Context, id, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.stubBootcampRepo.Delete(ctx, id, ownerID)
}

func (r *ctxBootcamps) SetAverageCost(ctx context.Context, id string, cost float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.stubBootcampRepo.SetAverageCost(ctx, id, cost)
}

type ctxReviews struct {
	*stubReviewRepo
}

func (r *ctxReviews) DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return r.stubReviewRepo.DeleteByBootcamp(ctx, bootcampID)
}

type failingReviews struct {
	*stubReviewRepo
	err error
}

func (r *failingReviews) DeleteByBootcamp(context.Context, string) (int64, error) {
	return 0, r.err
}

// staleCount answers CountByOwner as if a concurrent create had not landed yet.
type staleCount struct {
	*stubBootcampRepo
}

func (staleCount) CountByOwner(context.Context, string) (int64, error) { return 0, nil }
