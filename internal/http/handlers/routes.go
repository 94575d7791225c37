package handlers

import "github.com/gin-gonic/gin"

// Register mounts every API endpoint on g. Path names are part of the client
// contract and stay as they are.
func (h *Handlers) Register(g *gin.RouterGroup) {
	// accounts
	g.POST("/username", h.RegisterUsername)
	g.POST("/username_check", h.UsernameCheck)

	// rooms and posts
	g.GET("/rooms", h.ListRooms)
	g.POST("/rooms", h.CreateRoom)
	g.DELETE("/rooms/:id", h.DeleteRoom)
	g.GET("/posts", h.ListPosts)
	g.POST("/posts", h.CreatePost)
	g.POST("/reaction", h.React)

	// profiles
	g.GET("/profile", h.GetProfile)
	g.POST("/profile", h.SetProfile)
	g.POST("/upload_icon", h.UploadIcon)

	// champion gallery
	g.GET("/champion_image", h.ListChampionImages)
	g.POST("/champion_image", h.UploadChampionImage)

	// matching board
	g.GET("/match_idols", h.ListMatchPosts)
	g.POST("/match_post", h.CreateMatchPost)
	g.POST("/my_match_posts", h.ListMyMatchPosts)
	g.POST("/delete_match_post", h.DeleteMatchPost)
	g.POST("/delete_all_my_match_posts", h.DeleteAllMyMatchPosts)
	g.POST("/delete_all_match_posts", h.DeleteAllMatchPosts)
	g.POST("/like_match_post", h.LikeMatchPost)
}
