package service

import (
	"BlogPress/internal/api/dto"
	"BlogPress/internal/model"
	"BlogPress/internal/pkg/client"
	redisUtil "BlogPress/internal/pkg/redis"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
)

type fakeEngagementRepo struct {
	mu       sync.Mutex
	likes    map[uint64]map[string]bool
	views    map[uint64]int64
	comments map[uint64]*model.BlogComment
	nextID   uint64

	likeErr error
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{
		likes:    make(map[uint64]map[string]bool),
		views:    make(map[uint64]int64),
		comments: make(map[uint64]*model.BlogComment),
	}
}

func (f *fakeEngagementRepo) CreateLike(_ context.Context, like *model.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.likeErr != nil {
		return f.likeErr
	}
	if f.likes[like.BlogID] == nil {
		f.likes[like.BlogID] = make(map[string]bool)
	}
	if f.likes[like.BlogID][like.Username] {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	f.likes[like.BlogID][like.Username] = true
	return nil
}

func (f *fakeEngagementRepo) DeleteLike(_ context.Context, blogID uint64, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.likes[blogID][username] {
		return false, nil
	}
	delete(f.likes[blogID], username)
	return true, nil
}

func (f *fakeEngagementRepo) CheckLikeExists(_ context.Context, blogID uint64, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likes[blogID][username], nil
}

func (f *fakeEngagementRepo) ToggleLike(_ context.Context, blogID uint64, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.likes[blogID] == nil {
		f.likes[blogID] = make(map[string]bool)
	}
	if f.likes[blogID][username] {
		delete(f.likes[blogID], username)
		return false, nil
	}
	f.likes[blogID][username] = true
	return true, nil
}

func (f *fakeEngagementRepo) CreateView(_ context.Context, view *model.BlogView) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views[view.BlogID]++
	return nil
}

func (f *fakeEngagementRepo) CreateComment(_ context.Context, comment *model.BlogComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	comment.ID = f.nextID
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeEngagementRepo) SaveComment(_ context.Context, comment *model.BlogComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeEngagementRepo) DeleteComment(_ context.Context, commentID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.comments, commentID)
	return nil
}

func (f *fakeEngagementRepo) GetCommentByID(_ context.Context, commentID uint64) (*model.BlogComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[commentID]
	if !ok {
		return nil, nil
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeEngagementRepo) GetRootComments(_ context.Context, blogID uint64) ([]*model.BlogComment, error) {
	return f.selectComments(func(c *model.BlogComment) bool {
		return c.BlogID == blogID && c.ParentID == nil
	}), nil
}

func (f *fakeEngagementRepo) GetChildComments(_ context.Context, parentID uint64) ([]*model.BlogComment, error) {
	return f.selectComments(func(c *model.BlogComment) bool {
		return c.ParentID != nil && *c.ParentID == parentID
	}), nil
}

func (f *fakeEngagementRepo) selectComments(match func(*model.BlogComment) bool) []*model.BlogComment {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.BlogComment
	for _, comment := range f.comments {
		if match(comment) {
			copied := *comment
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (f *fakeEngagementRepo) GetLikeCount(_ context.Context, blogID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.likes[blogID])), nil
}

func (f *fakeEngagementRepo) GetViewCount(_ context.Context, blogID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.views[blogID], nil
}

func (f *fakeEngagementRepo) GetCommentCount(_ context.Context, blogID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, comment := range f.comments {
		if comment.BlogID == blogID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEngagementRepo) seedLikes(blogID uint64, usernames ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.likes[blogID] == nil {
		f.likes[blogID] = make(map[string]bool)
	}
	for _, username := range usernames {
		f.likes[blogID][username] = true
	}
}

type fakeCounterCache struct {
	mu     sync.Mutex
	values map[string]int64
	dirty  []uint64
	getErr error
}

func newFakeCounterCache() *fakeCounterCache {
	return &fakeCounterCache{values: make(map[string]int64)}
}

func (f *fakeCounterCache) GetCount(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return 0, f.getErr
	}
	value, ok := f.values[key]
	if !ok {
		return 0, redisUtil.ErrCacheMiss
	}
	return value, nil
}

func (f *fakeCounterCache) SetCount(_ context.Context, key string, value int64, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *fakeCounterCache) MarkDirty(_ context.Context, blogID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirty = append(f.dirty, blogID)
	return nil
}

type fakePublisher struct {
	mu          sync.Mutex
	milestones  []*dto.MilestonePayload
	blogCreated []*dto.BlogCreatedPayload
	registered  []*dto.UserRegisteredPayload
}

func (f *fakePublisher) PublishBlogCreated(payload *dto.BlogCreatedPayload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blogCreated = append(f.blogCreated, payload)
}

func (f *fakePublisher) PublishMilestone(payload *dto.MilestonePayload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.milestones = append(f.milestones, payload)
}

func (f *fakePublisher) PublishUserRegistered(payload *dto.UserRegisteredPayload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, payload)
}

func (f *fakePublisher) Close() {}

type fakeBlogClient struct {
	summary *client.BlogSummary
	err     error
}

func (f *fakeBlogClient) GetBlogSummary(context.Context, uint64) (*client.BlogSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

type fakeUserClient struct {
	profiles map[string]*client.UserProfile
	emails   []string
	emailErr error
}

func (f *fakeUserClient) GetUserByID(_ context.Context, userID string) (*client.UserProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return profile, nil
}

func (f *fakeUserClient) GetAllUserEmails(context.Context) ([]string, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	return f.emails, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailSender struct {
	mu      sync.Mutex
	sent    []sentMail
	failFor map[string]bool
}

func (f *fakeMailSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[to] {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeMailSender) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.to)
	}
	return out
}
