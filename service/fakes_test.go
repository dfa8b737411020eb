package service

import (
	"Streamify/config"
	"Streamify/models"
	"Streamify/pkg/pipeline"
	"Streamify/pkg/storage"
	"Streamify/pkg/upload"
	"Streamify/types"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		App:     &config.App{Env: "test", HashSalt: "salt"},
		Jwt:     &config.Jwt{AccessSecret: "access", RefreshSecret: "refresh", AccessExpire: 60, RefreshExpire: 600},
		Storage: &config.Storage{Folder: "streamify"},
		Upload:  &config.Upload{Timeout: 5},
	}
}

// ---- users ----

type fakeUsers struct {
	mu      sync.Mutex
	items   map[int64]*models.User
	watched map[[2]int64]time.Time
	writes  int

	// beforeRotate 在条件更新前执行，模拟并发刷新
	beforeRotate func()
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{items: map[int64]*models.User{}, watched: map[[2]int64]time.Time{}}
	for _, u := range users {
		f.items[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.items {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	f.writes++
	cp := *user
	f.items[user.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return f.FindByLogin(context.Background(), username, "")
}

func (f *fakeUsers) FindByLogin(_ context.Context, username, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.items {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) IsTaken(_ context.Context, username, email string) (bool, error) {
	_, err := f.FindByLogin(context.Background(), username, email)
	return err == nil, nil
}

func (f *fakeUsers) UpdateFields(_ context.Context, id int64, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.writes++
	for k, v := range fields {
		switch k {
		case "refresh_token":
			u.RefreshToken = v.(string)
		case "password":
			u.Password = v.(string)
		case "full_name":
			u.FullName = v.(string)
		case "email":
			u.Email = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "profile_image":
			u.ProfileImage = v.(string)
		case "profile_image_id":
			u.ProfileImageID = v.(string)
		case "banner_image":
			u.BannerImage = v.(string)
		case "banner_image_id":
			u.BannerImageID = v.(string)
		}
	}
	return nil
}

func (f *fakeUsers) RotateRefreshToken(_ context.Context, id int64, old, next string) (bool, error) {
	if f.beforeRotate != nil {
		f.beforeRotate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.items[id]
	if !ok || u.RefreshToken != old {
		return false, nil
	}
	f.writes++
	u.RefreshToken = next
	return true, nil
}

func (f *fakeUsers) RecordWatch(_ context.Context, userID, videoID int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watched[[2]int64{userID, videoID}] = at
	return nil
}

// ---- videos ----

type fakeVideos struct {
	mu      sync.Mutex
	items   map[int64]*models.Video
	writes  int
	views   map[int64]int
	deleted []int64
	failOn  string
}

func newFakeVideos(videos ...*models.Video) *fakeVideos {
	f := &fakeVideos{items: map[int64]*models.Video{}, views: map[int64]int{}}
	for _, v := range videos {
		f.items[v.ID] = v
	}
	return f
}

func (f *fakeVideos) Create(_ context.Context, video *models.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn == "create" {
		return errors.New("db down")
	}
	f.writes++
	cp := *video
	f.items[video.ID] = &cp
	return nil
}

func (f *fakeVideos) FindByID(_ context.Context, id int64) (*models.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideos) UpdateFields(_ context.Context, id int64, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.writes++
	for k, val := range fields {
		switch k {
		case "title":
			v.Title = val.(string)
		case "description":
			v.Description = val.(string)
		case "is_published":
			v.IsPublished = val.(bool)
		case "thumbnail":
			v.Thumbnail = val.(string)
		case "thumbnail_public_id":
			v.ThumbnailPublicID = val.(string)
		case "visibility":
			v.Visibility = val.(models.Visibility)
		}
	}
	return nil
}

func (f *fakeVideos) IncrViews(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views[id]++
	return nil
}

func (f *fakeVideos) DeleteCascade(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.writes++
	delete(f.items, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// ---- comments ----

type fakeComments struct {
	mu     sync.Mutex
	items  map[int64]*models.Comment
	writes int
}

func newFakeComments(comments ...*models.Comment) *fakeComments {
	f := &fakeComments{items: map[int64]*models.Comment{}}
	for _, c := range comments {
		f.items[c.ID] = c
	}
	return f
}

func (f *fakeComments) Create(_ context.Context, c *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	cp := *c
	f.items[c.ID] = &cp
	return nil
}

func (f *fakeComments) FindByID(_ context.Context, id int64) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComments) UpdateFields(_ context.Context, id int64, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if text, ok := fields["text"].(string); ok {
		f.items[id].Text = text
	}
	return nil
}

func (f *fakeComments) AppendReply(_ context.Context, id int64, reply models.Reply) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.items[id].Replies = append(f.items[id].Replies, reply)
	return nil
}

func (f *fakeComments) DeleteCascade(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	delete(f.items, id)
	return nil
}

// ---- subscriptions ----

type fakeSubscriptions struct {
	mu    sync.Mutex
	users *fakeUsers
	pairs map[[2]int64]bool
}

func (f *fakeSubscriptions) Toggle(ctx context.Context, subscriberID, channelID int64) (bool, int64, error) {
	if _, err := f.users.FindByID(ctx, channelID); err != nil {
		return false, 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{subscriberID, channelID}
	if f.pairs[key] {
		delete(f.pairs, key)
	} else {
		f.pairs[key] = true
	}
	var count int64
	for k := range f.pairs {
		if k[1] == channelID {
			count++
		}
	}
	return f.pairs[key], count, nil
}

// ---- playlists ----

type fakePlaylists struct {
	mu     sync.Mutex
	items  map[int64]*models.Playlist
	videos map[int64][]int64
	writes int
}

func newFakePlaylists(playlists ...*models.Playlist) *fakePlaylists {
	f := &fakePlaylists{items: map[int64]*models.Playlist{}, videos: map[int64][]int64{}}
	for _, p := range playlists {
		f.items[p.ID] = p
	}
	return f
}

func (f *fakePlaylists) Create(_ context.Context, p *models.Playlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakePlaylists) FindByID(_ context.Context, id int64) (*models.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlaylists) UpdateFields(_ context.Context, id int64, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if name, ok := fields["name"].(string); ok {
		f.items[id].Name = name
	}
	return nil
}

func (f *fakePlaylists) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	delete(f.items, id)
	delete(f.videos, id)
	return nil
}

func (f *fakePlaylists) AddVideo(_ context.Context, playlistID, videoID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.videos[playlistID] {
		if v == videoID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.writes++
	f.videos[playlistID] = append(f.videos[playlistID], videoID)
	return nil
}

func (f *fakePlaylists) RemoveVideo(_ context.Context, playlistID, videoID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.videos[playlistID]
	for i, v := range list {
		if v == videoID {
			f.writes++
			f.videos[playlistID] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ---- views ----

// fakeViews 校验并记录 pipeline，返回预置结果
type fakeViews struct {
	t         *testing.T
	mu        sync.Mutex
	pipelines []*pipeline.Pipeline
	detail    *types.VideoDetail
	playlist  *types.PlaylistView
	profile   *types.ChannelProfile
}

func (f *fakeViews) record(p *pipeline.Pipeline) pipeline.Pagination {
	f.t.Helper()
	if _, err := p.Compile(); err != nil {
		f.t.Fatalf("pipeline does not compile: %v", err)
	}
	f.mu.Lock()
	f.pipelines = append(f.pipelines, p)
	f.mu.Unlock()
	return p.Pagination()
}

func emptyPage[T any](pg pipeline.Pagination) *pipeline.Page[T] {
	return pipeline.NewPage([]T{}, 0, pg)
}

func (f *fakeViews) VideoCards(_ context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.VideoCard], error) {
	return emptyPage[types.VideoCard](f.record(p)), nil
}

func (f *fakeViews) VideoDetail(_ context.Context, p *pipeline.Pipeline) (*types.VideoDetail, error) {
	f.record(p)
	if f.detail == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f.detail
	return &cp, nil
}

func (f *fakeViews) LikedVideos(_ context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.LikedVideo], error) {
	return emptyPage[types.LikedVideo](f.record(p)), nil
}

func (f *fakeViews) Comments(_ context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.CommentView], error) {
	return emptyPage[types.CommentView](f.record(p)), nil
}

func (f *fakeViews) Playlists(_ context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.PlaylistView], error) {
	return emptyPage[types.PlaylistView](f.record(p)), nil
}

func (f *fakeViews) Playlist(_ context.Context, p *pipeline.Pipeline) (*types.PlaylistView, error) {
	f.record(p)
	if f.playlist == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f.playlist
	return &cp, nil
}

func (f *fakeViews) Channels(_ context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.ChannelCard], error) {
	return emptyPage[types.ChannelCard](f.record(p)), nil
}

func (f *fakeViews) ChannelProfile(_ context.Context, p *pipeline.Pipeline) (*types.ChannelProfile, error) {
	f.record(p)
	if f.profile == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f.profile
	return &cp, nil
}

func (f *fakeViews) WatchHistory(_ context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.HistoryItem], error) {
	return emptyPage[types.HistoryItem](f.record(p)), nil
}

// ---- media ----

type fakeStore struct {
	mu       sync.Mutex
	uploads  []string
	deletes  []string
	failNext bool
}

func (f *fakeStore) Upload(_ context.Context, _, key, _ string) (*storage.Object, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return nil, errors.New("store unavailable")
	}
	f.uploads = append(f.uploads, key)
	return &storage.Object{URL: "https://cdn.test/" + key, PublicID: key}, nil
}

func (f *fakeStore) Delete(_ context.Context, publicID string, _ storage.Kind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, publicID)
	return nil
}

type fakeProber struct{ duration float64 }

func (p fakeProber) Duration(context.Context, string) (float64, error) {
	return p.duration, nil
}

func newMedia(store *fakeStore) *MediaService {
	return &MediaService{Store: store, Prober: fakeProber{duration: 12.5}, Config: testConfig()}
}

// stagedFile 在临时目录写一个假暂存文件
func stagedFile(t *testing.T, field string, kind storage.Kind, ext string) *upload.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), upload.FilePrefix+field+ext)
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 16)), 0o600); err != nil {
		t.Fatal(err)
	}
	return &upload.File{Field: field, Kind: kind, Path: path, Ext: ext, Size: 16}
}

// ---- engagement ----

type reactionKey struct {
	actor  int64
	target models.Target
}

type fakeReactions struct {
	mu       sync.Mutex
	counters map[models.Target]CounterDelta
	rows     map[reactionKey]models.Like
}

func newFakeReactions(targets ...models.Target) *fakeReactions {
	f := &fakeReactions{counters: map[models.Target]CounterDelta{}, rows: map[reactionKey]models.Like{}}
	for _, t := range targets {
		f.counters[t] = CounterDelta{}
	}
	return f
}

// Transaction 整个事务持有全局锁，失败时回滚到快照
func (f *fakeReactions) Transaction(_ context.Context, fn func(tx ReactionTx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	counters := make(map[models.Target]CounterDelta, len(f.counters))
	for k, v := range f.counters {
		counters[k] = v
	}
	rows := make(map[reactionKey]models.Like, len(f.rows))
	for k, v := range f.rows {
		rows[k] = v
	}

	if err := fn(fakeTx{f}); err != nil {
		f.counters, f.rows = counters, rows
		return err
	}
	return nil
}

type fakeTx struct{ f *fakeReactions }

func (tx fakeTx) LockTarget(target models.Target) error {
	if _, ok := tx.f.counters[target]; !ok {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (tx fakeTx) FindReaction(actorID int64, target models.Target) (*models.Like, error) {
	row, ok := tx.f.rows[reactionKey{actorID, target}]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (tx fakeTx) CreateReaction(like *models.Like) error {
	key := reactionKey{like.ActorID, like.Target}
	if _, ok := tx.f.rows[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	tx.f.rows[key] = *like
	return nil
}

func (tx fakeTx) UpdateReactionType(id int64, t models.LikeType) error {
	for k, row := range tx.f.rows {
		if row.ID == id {
			row.Type = t
			tx.f.rows[k] = row
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (tx fakeTx) DeleteReaction(id int64) error {
	for k, row := range tx.f.rows {
		if row.ID == id {
			delete(tx.f.rows, k)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (tx fakeTx) AdjustCounters(target models.Target, delta CounterDelta) error {
	c := tx.f.counters[target]
	c.Likes = max(c.Likes+delta.Likes, 0)
	c.Dislikes = max(c.Dislikes+delta.Dislikes, 0)
	tx.f.counters[target] = c
	return nil
}

func (tx fakeTx) Counters(target models.Target) (int64, int64, error) {
	c := tx.f.counters[target]
	return c.Likes, c.Dislikes, nil
}

type fakeLocker struct{ err error }

func (l fakeLocker) Lock(context.Context, string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	return func() {}, nil
}

type fakeViewCounter struct {
	mu   sync.Mutex
	seen map[[2]int64]bool
}

func (f *fakeViewCounter) FirstView(_ context.Context, viewerID, videoID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen == nil {
		f.seen = map[[2]int64]bool{}
	}
	key := [2]int64{viewerID, videoID}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}
