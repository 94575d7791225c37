package services

import "github.com/prometheus/client_golang/prometheus"

// Domain counters, exposed on /metrics next to the HTTP collectors.
var (
	roomsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "idol_rooms_created_total",
		Help: "Rooms created.",
	})
	roomsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "idol_rooms_deleted_total",
		Help: "Rooms deleted by their creator.",
	})
	postsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "idol_posts_created_total",
		Help: "Posts created in rooms.",
	})
	reactions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "idol_reactions_total",
		Help: "Post reactions by kind.",
	}, []string{"kind"})
	matchLikes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "idol_match_likes_total",
		Help: "Accepted likes on match posts.",
	})
	matchPostsDeleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "idol_match_posts_deleted_total",
		Help: "Match posts deleted, by operation.",
	}, []string{"op"})
	uploads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "idol_uploads_total",
		Help: "Stored image uploads by kind.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(roomsCreated, roomsDeleted, postsCreated, reactions, matchLikes, matchPostsDeleted, uploads)
}
