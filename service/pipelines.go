package service

import (
	"Streamify/models"
	"Streamify/pkg/pipeline"
)

// private 私有视频不出现在任何列表中
const private = string(models.VisibilityPrivate)

func ownerFields(alias string) []pipeline.Field {
	return []pipeline.Field{
		pipeline.Col(alias + ".id").As("owner_id"),
		pipeline.Col(alias + ".username").As("owner_username"),
		pipeline.Col(alias + ".full_name").As("owner_full_name"),
		pipeline.Col(alias + ".profile_image").As("owner_profile_image"),
	}
}

// videoCardFields 视频卡片字段，v 为视频别名，u 为作者别名
func videoCardFields() []pipeline.Field {
	fields := pipeline.Cols("v", "id", "title", "description", "url", "thumbnail", "duration",
		"views", "likes", "visibility", "category", "is_published", "created_at")
	return append(fields, ownerFields("u")...)
}

func reacted(as, kind, local string, viewerID int64, t models.LikeType) pipeline.Derived {
	alias := "l_" + as
	return pipeline.Exists(as, pipeline.Subquery("likes", alias).Where(
		pipeline.Eq(alias+".target_kind", kind),
		pipeline.On(alias+".target_id", local),
		pipeline.Eq(alias+".actor_id", viewerID),
		pipeline.Eq(alias+".type", string(t)),
	))
}

func subscriberCount(as, channel string) pipeline.Derived {
	alias := "s_" + as
	return pipeline.Count(as, pipeline.Subquery("subscriptions", alias).Where(pipeline.On(alias+".channel_id", channel)))
}

func isSubscribed(as, channel string, viewerID int64) pipeline.Derived {
	alias := "s_" + as
	return pipeline.Exists(as, pipeline.Subquery("subscriptions", alias).Where(
		pipeline.On(alias+".channel_id", channel),
		pipeline.Eq(alias+".subscriber_id", viewerID),
	))
}

// VideoFeedPipeline 首页 / 频道视频列表，只包含已发布的公开视频
func VideoFeedPipeline(query string, ownerID int64, sort pipeline.SortKey, pg pipeline.Pagination) *pipeline.Pipeline {
	p := pipeline.From("videos", "v").
		Lookup("users", "u", pipeline.On("u.id", "v.owner_id")).
		Match(
			pipeline.Eq("v.is_published", true),
			pipeline.Eq("v.visibility", string(models.VisibilityPublic)),
		)
	if ownerID > 0 {
		p.Match(pipeline.Eq("v.owner_id", ownerID))
	}
	return p.Search("v", query).
		Project(videoCardFields()...).
		Sort(sort).
		Paginate(pg)
}

func VideoDetailPipeline(videoID, viewerID int64) *pipeline.Pipeline {
	fields := pipeline.Cols("v", "id", "title", "description", "url", "thumbnail", "duration", "views",
		"likes", "dislikes", "visibility", "category", "tags", "is_published", "created_at")
	return pipeline.From("videos", "v").
		Lookup("users", "u", pipeline.On("u.id", "v.owner_id")).
		Match(pipeline.Eq("v.id", videoID)).
		Project(append(fields, ownerFields("u")...)...).
		Derive(
			subscriberCount("owner_subscribers_count", "v.owner_id"),
			isSubscribed("owner_is_subscribed", "v.owner_id", viewerID),
			reacted("is_liked", string(models.TargetVideo), "v.id", viewerID, models.LikeTypeLike),
			reacted("is_disliked", string(models.TargetVideo), "v.id", viewerID, models.LikeTypeDislike),
		)
}

func LikedVideosPipeline(actorID int64, pg pipeline.Pagination) *pipeline.Pipeline {
	return pipeline.From("likes", "l").
		Join("videos", "v", pipeline.On("v.id", "l.target_id")).
		Lookup("users", "u", pipeline.On("u.id", "v.owner_id")).
		Match(
			pipeline.Eq("l.actor_id", actorID),
			pipeline.Eq("l.target_kind", string(models.TargetVideo)),
			pipeline.Eq("l.type", string(models.LikeTypeLike)),
			pipeline.Eq("v.is_published", true),
			pipeline.Ne("v.visibility", private),
		).
		Project(append(videoCardFields(), pipeline.Col("l.updated_at").As("liked_at"))...).
		Sort(pipeline.Desc("l.updated_at")).
		Paginate(pg)
}

func CommentListPipeline(videoID, viewerID int64, pg pipeline.Pagination) *pipeline.Pipeline {
	fields := pipeline.Cols("c", "id", "video_id", "text", "likes", "dislikes", "replies", "created_at")
	return pipeline.From("comments", "c").
		Lookup("users", "u", pipeline.On("u.id", "c.owner_id")).
		Match(pipeline.Eq("c.video_id", videoID)).
		Project(append(fields, ownerFields("u")...)...).
		Derive(
			reacted("is_liked", string(models.TargetComment), "c.id", viewerID, models.LikeTypeLike),
			reacted("is_disliked", string(models.TargetComment), "c.id", viewerID, models.LikeTypeDislike),
		).
		Sort(pipeline.Desc("c.created_at")).
		Paginate(pg)
}

func playlistBase() *pipeline.Pipeline {
	fields := pipeline.Cols("p", "id", "name", "description", "created_at", "updated_at")
	return pipeline.From("playlists", "p").
		Lookup("users", "u", pipeline.On("u.id", "p.owner_id")).
		Project(append(fields, ownerFields("u")...)...).
		Derive(
			pipeline.Count("total_videos", pipeline.Subquery("playlist_videos", "pvc").
				Join("videos", "vc", pipeline.On("vc.id", "pvc.video_id")).
				Where(pipeline.On("pvc.playlist_id", "p.id"), pipeline.Eq("vc.is_published", true), pipeline.Ne("vc.visibility", private))),
			pipeline.Sum("total_views", "vs.views", pipeline.Subquery("playlist_videos", "pvs").
				Join("videos", "vs", pipeline.On("vs.id", "pvs.video_id")).
				Where(pipeline.On("pvs.playlist_id", "p.id"), pipeline.Eq("vs.is_published", true), pipeline.Ne("vs.visibility", private))),
		)
}

func UserPlaylistsPipeline(ownerID int64, pg pipeline.Pagination) *pipeline.Pipeline {
	return playlistBase().
		Match(pipeline.Eq("p.owner_id", ownerID)).
		Sort(pipeline.Desc("p.created_at")).
		Paginate(pg)
}

func PlaylistDetailPipeline(playlistID int64) *pipeline.Pipeline {
	return playlistBase().Match(pipeline.Eq("p.id", playlistID))
}

// PlaylistVideosPipeline 按加入顺序返回已发布且非私有的视频
func PlaylistVideosPipeline(playlistID int64, pg pipeline.Pagination) *pipeline.Pipeline {
	return pipeline.From("playlist_videos", "pv").
		Join("videos", "v", pipeline.On("v.id", "pv.video_id")).
		Lookup("users", "u", pipeline.On("u.id", "v.owner_id")).
		Match(pipeline.Eq("pv.playlist_id", playlistID), pipeline.Eq("v.is_published", true), pipeline.Ne("v.visibility", private)).
		Project(videoCardFields()...).
		Sort(pipeline.Asc("pv.id")).
		Paginate(pg)
}

func channelCards(join string, match pipeline.Cond, viewerID int64, pg pipeline.Pagination) *pipeline.Pipeline {
	return pipeline.From("subscriptions", "s").
		Join("users", "u", pipeline.On("u.id", join)).
		Match(match).
		Project(
			pipeline.Col("u.id"), pipeline.Col("u.username"), pipeline.Col("u.full_name"), pipeline.Col("u.profile_image"),
			pipeline.Col("s.created_at").As("subscribed_at"),
		).
		Derive(
			subscriberCount("subscribers_count", "u.id"),
			isSubscribed("is_subscribed", "u.id", viewerID),
		).
		Sort(pipeline.Desc("s.created_at")).
		Paginate(pg)
}

// SubscribersPipeline 订阅了 channelID 的用户
func SubscribersPipeline(channelID, viewerID int64, pg pipeline.Pagination) *pipeline.Pipeline {
	return channelCards("s.subscriber_id", pipeline.Eq("s.channel_id", channelID), viewerID, pg)
}

// SubscribedChannelsPipeline subscriberID 订阅的频道
func SubscribedChannelsPipeline(subscriberID, viewerID int64, pg pipeline.Pagination) *pipeline.Pipeline {
	return channelCards("s.channel_id", pipeline.Eq("s.subscriber_id", subscriberID), viewerID, pg)
}

// ChannelProfilePipeline self 为 true 时返回邮箱
func ChannelProfilePipeline(userID, viewerID int64, self bool) *pipeline.Pipeline {
	p := pipeline.From("users", "u").
		Match(pipeline.Eq("u.id", userID)).
		Project(pipeline.Cols("u", "id", "username", "full_name", "profile_image", "banner_image",
			"bio", "social_links", "subscribers_count", "created_at")...).
		Derive(
			pipeline.Count("channels_subscribed_to_count", pipeline.Subquery("subscriptions", "st").
				Where(pipeline.On("st.subscriber_id", "u.id"))),
			isSubscribed("is_subscribed", "u.id", viewerID),
		)
	if self {
		p.AllowColumns("u.email").Project(pipeline.Col("u.email"))
	}
	return p
}

func WatchHistoryPipeline(userID int64, pg pipeline.Pagination) *pipeline.Pipeline {
	return pipeline.From("watch_history", "w").
		Join("videos", "v", pipeline.On("v.id", "w.video_id")).
		Lookup("users", "u", pipeline.On("u.id", "v.owner_id")).
		Match(pipeline.Eq("w.user_id", userID), pipeline.Eq("v.is_published", true), pipeline.Ne("v.visibility", private)).
		Project(append(videoCardFields(), pipeline.Col("w.watched_at"))...).
		Sort(pipeline.Desc("w.watched_at")).
		Paginate(pg)
}
