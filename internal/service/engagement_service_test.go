package service

import (
	"BlogPress/internal/pkg/client"
	"BlogPress/internal/pkg/consts"
	"context"
	"errors"
	"testing"
)

func newTestEngagementService() (*EngagementServiceImpl, *fakeEngagementRepo, *fakeCounterCache, *fakePublisher) {
	repo := newFakeEngagementRepo()
	cache := newFakeCounterCache()
	publisher := &fakePublisher{}
	blogs := &fakeBlogClient{summary: &client.BlogSummary{ID: 1, Title: "Go 并发模型", AuthorID: 42}}
	svc := NewEngagementService(repo, cache, blogs, publisher).(*EngagementServiceImpl)
	return svc, repo, cache, publisher
}

func TestLikeBlogFirstTime(t *testing.T) {
	svc, repo, cache, _ := newTestEngagementService()
	ctx := context.Background()

	created, err := svc.LikeBlog(ctx, 1, "alice")
	if err != nil {
		t.Fatalf("LikeBlog() error = %v", err)
	}
	if !created {
		t.Fatal("created = false, want true")
	}

	count, _ := repo.GetLikeCount(ctx, 1)
	if count != 1 {
		t.Fatalf("like count = %d, want 1", count)
	}
	if len(cache.dirty) != 1 || cache.dirty[0] != 1 {
		t.Fatalf("dirty marks = %v, want [1]", cache.dirty)
	}
}

func TestLikeBlogDuplicateIsNoOp(t *testing.T) {
	svc, repo, _, publisher := newTestEngagementService()
	ctx := context.Background()
	repo.seedLikes(4, "alice", "bob", "carol", "dave") // 下一个赞命中 5

	created, err := svc.LikeBlog(ctx, 4, "alice")
	if err != nil {
		t.Fatalf("duplicate LikeBlog() error = %v", err)
	}
	if created {
		t.Fatal("created = true for duplicate like")
	}
	if len(publisher.milestones) != 0 {
		t.Fatalf("milestones published on duplicate = %d, want 0", len(publisher.milestones))
	}

	count, _ := repo.GetLikeCount(ctx, 4)
	if count != 4 {
		t.Fatalf("like count = %d, want 4", count)
	}
}

func TestLikeBlogPublishesMilestone(t *testing.T) {
	svc, repo, _, publisher := newTestEngagementService()
	ctx := context.Background()
	repo.seedLikes(1, "u1", "u2", "u3", "u4")

	if _, err := svc.LikeBlog(ctx, 1, "u5"); err != nil {
		t.Fatalf("LikeBlog() error = %v", err)
	}

	if len(publisher.milestones) != 1 {
		t.Fatalf("milestones = %d, want 1", len(publisher.milestones))
	}
	got := publisher.milestones[0]
	if got.BlogID != "1" || got.MilestoneType != consts.MilestoneTypeLikes || got.Count != 5 {
		t.Fatalf("payload = %+v, want blogID 1 LIKES 5", got)
	}
	if got.BlogTitle != "Go 并发模型" || got.AuthorID != "42" {
		t.Fatalf("enrichment = title %q author %q, want filled", got.BlogTitle, got.AuthorID)
	}
}

func TestLikeBlogMilestoneWithoutEnrichment(t *testing.T) {
	repo := newFakeEngagementRepo()
	publisher := &fakePublisher{}
	blogs := &fakeBlogClient{err: errors.New("blog service down")}
	svc := NewEngagementService(repo, newFakeCounterCache(), blogs, publisher)
	repo.seedLikes(7, "u1", "u2", "u3", "u4")

	if _, err := svc.LikeBlog(context.Background(), 7, "u5"); err != nil {
		t.Fatalf("LikeBlog() error = %v", err)
	}

	if len(publisher.milestones) != 1 {
		t.Fatalf("milestones = %d, want 1 despite enrichment failure", len(publisher.milestones))
	}
	got := publisher.milestones[0]
	if got.BlogTitle != "" || got.AuthorID != "" {
		t.Fatalf("enrichment fields = %+v, want empty", got)
	}
	if got.Count != 5 {
		t.Fatalf("count = %d, want 5", got.Count)
	}
}

func TestUnlikeBlog(t *testing.T) {
	svc, repo, _, publisher := newTestEngagementService()
	ctx := context.Background()
	repo.seedLikes(1, "alice")

	removed, err := svc.UnlikeBlog(ctx, 1, "alice")
	if err != nil {
		t.Fatalf("UnlikeBlog() error = %v", err)
	}
	if !removed {
		t.Fatal("removed = false, want true")
	}

	removed, err = svc.UnlikeBlog(ctx, 1, "alice")
	if err != nil {
		t.Fatalf("repeated UnlikeBlog() error = %v", err)
	}
	if removed {
		t.Fatal("removed = true for missing like")
	}
	if len(publisher.milestones) != 0 {
		t.Fatal("unlike published a milestone")
	}
}

func TestToggleLike(t *testing.T) {
	svc, _, _, _ := newTestEngagementService()
	ctx := context.Background()

	liked, err := svc.ToggleLike(ctx, 1, "alice")
	if err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if !liked {
		t.Fatal("first toggle = false, want true")
	}

	liked, err = svc.ToggleLike(ctx, 1, "alice")
	if err != nil {
		t.Fatalf("second ToggleLike() error = %v", err)
	}
	if liked {
		t.Fatal("second toggle = true, want false")
	}

	exists, _ := svc.IsLiked(ctx, 1, "alice")
	if exists {
		t.Fatal("IsLiked = true after toggle off")
	}
}

func TestRecordViewMilestones(t *testing.T) {
	svc, _, _, publisher := newTestEngagementService()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if err := svc.RecordView(ctx, 1, "alice", "10.0.0.1"); err != nil {
			t.Fatalf("RecordView() error = %v", err)
		}
	}

	if len(publisher.milestones) != 2 {
		t.Fatalf("milestones = %d, want 2 (at 5 and 10)", len(publisher.milestones))
	}
	if publisher.milestones[0].Count != 5 || publisher.milestones[1].Count != 10 {
		t.Fatalf("milestone counts = %d, %d, want 5, 10",
			publisher.milestones[0].Count, publisher.milestones[1].Count)
	}
	if publisher.milestones[0].MilestoneType != consts.MilestoneTypeViews {
		t.Fatalf("type = %s, want VIEWS", publisher.milestones[0].MilestoneType)
	}
}

func TestGetLikeCountCacheAside(t *testing.T) {
	svc, repo, cache, _ := newTestEngagementService()
	ctx := context.Background()
	repo.seedLikes(1, "alice", "bob")

	count, err := svc.GetLikeCount(ctx, 1)
	if err != nil {
		t.Fatalf("GetLikeCount() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if cache.values[consts.BlogLikeKey+"1"] != 2 {
		t.Fatal("cache not backfilled after miss")
	}

	// 命中缓存后不再回源
	repo.seedLikes(1, "carol")
	count, err = svc.GetLikeCount(ctx, 1)
	if err != nil {
		t.Fatalf("cached GetLikeCount() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("cached count = %d, want stale 2", count)
	}
}

func TestGetLikeCountCacheFailureFallsBack(t *testing.T) {
	svc, repo, cache, _ := newTestEngagementService()
	cache.getErr = errors.New("redis down")
	repo.seedLikes(1, "alice")

	count, err := svc.GetLikeCount(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetLikeCount() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1 from database", count)
	}
}

func TestGetCounts(t *testing.T) {
	svc, repo, _, _ := newTestEngagementService()
	ctx := context.Background()
	repo.seedLikes(1, "alice", "bob", "carol")
	for i := 0; i < 2; i++ {
		_ = svc.RecordView(ctx, 1, "alice", "10.0.0.1")
	}

	counts, err := svc.GetCounts(ctx, 1)
	if err != nil {
		t.Fatalf("GetCounts() error = %v", err)
	}
	if counts.Likes != 3 || counts.Views != 2 || counts.Comments != 0 {
		t.Fatalf("counts = %+v, want {3 2 0}", counts)
	}
}
