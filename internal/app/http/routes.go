package routes

import (
	"net/http"
	"time"

	adminapi "portfolio-admin/internal/api/admin"
	authapi "portfolio-admin/internal/api/auth"
	mediaapi "portfolio-admin/internal/api/media"
	"portfolio-admin/internal/api/resource"
	"portfolio-admin/internal/api/users"
	worksapi "portfolio-admin/internal/api/works"
	"portfolio-admin/internal/app/http/middleware"
	"portfolio-admin/internal/auth"
	"portfolio-admin/internal/content"
	"portfolio-admin/internal/curation"
	"portfolio-admin/internal/domain/blog"
	"portfolio-admin/internal/domain/media"
	"portfolio-admin/internal/domain/pages"
	"portfolio-admin/internal/domain/performances"
	"portfolio-admin/internal/domain/works"
	"portfolio-admin/internal/infra/storage"
	"portfolio-admin/internal/infra/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Deps is everything the routes need from main.
type Deps struct {
	DB             *gorm.DB
	Files          storage.ObjectStore
	Verifier       auth.Verifier
	Tokens         *auth.HMACVerifier
	TokenTTL       time.Duration
	MaxUploadBytes int64
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	artworkStore := store.NewArtworkStore(d.DB)
	artworks := content.NewService[works.Artwork, *works.Artwork](artworkStore, d.Files, content.Options{
		What: "Artwork", Folder: "artworks", CoverField: "imageUrl", MaxUploadBytes: d.MaxUploadBytes,
	})
	performanceSvc := content.NewService[performances.Performance, *performances.Performance](
		store.NewRepo[performances.Performance](d.DB, "performance", true, "sort_order ASC, date DESC"),
		d.Files,
		content.Options{What: "Performance", Folder: "performances", CoverField: "coverImage", MaxUploadBytes: d.MaxUploadBytes},
	)
	pageSvc := content.NewService[pages.Page, *pages.Page](
		store.NewRepo[pages.Page](d.DB, "page", true, "sort_order ASC, title ASC"),
		d.Files,
		content.Options{What: "Page"},
	)
	postSvc := content.NewService[blog.Post, *blog.Post](
		store.NewRepo[blog.Post](d.DB, "blog post", true, "published_at DESC, created_at DESC"),
		d.Files,
		content.Options{What: "Post", Folder: "blog", CoverField: "coverImage", MaxUploadBytes: d.MaxUploadBytes},
	)
	mediaLib := content.NewMediaLibrary(store.NewRepo[media.Media](d.DB, "media", false, ""), d.Files, d.MaxUploadBytes)

	worksH := worksapi.NewHandler(artworks, curation.NewService(artworkStore), d.MaxUploadBytes)
	performancesH := resource.NewHandler(performanceSvc, "performances", d.MaxUploadBytes)
	pagesH := resource.NewHandler(pageSvc, "pages", d.MaxUploadBytes)
	postsH := resource.NewHandler(postSvc, "posts", d.MaxUploadBytes)
	mediaH := mediaapi.NewHandler(mediaLib, d.MaxUploadBytes)
	authH := authapi.NewHandler(d.DB, d.Tokens, d.TokenTTL)
	usersH := users.NewHandler(d.DB)
	adminH := adminapi.NewHandler(d.DB)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/login", authH.Login)

	public.GET("/public/artworks", worksH.PublicArtworks)
	public.GET("/public/artworks/:slug", worksH.PublicArtwork)
	public.GET("/public/collections", worksH.PublicCollections)
	public.GET("/public/exhibitions", worksH.PublicExhibitions)
	public.GET("/public/performances", performancesH.PublicList)
	public.GET("/public/performances/:slug", performancesH.PublicGet)
	public.GET("/public/pages/:slug", pagesH.PublicGet)
	public.GET("/public/blog", postsH.PublicList)
	public.GET("/public/blog/:slug", postsH.PublicGet)

	// Authenticated
	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(d.Verifier), middleware.SanitizeAndCleanInputMiddleware())
	authed.GET("/me", usersH.GetCurrentUser)
	authed.POST("/change-password", authH.ChangePassword)

	authed.GET("/artworks", worksH.ListArtworks)
	authed.POST("/artworks", worksH.CreateArtwork)
	authed.GET("/artworks/:id", worksH.GetArtwork)
	authed.PUT("/artworks/:id", worksH.UpdateArtwork)
	authed.DELETE("/artworks/:id", worksH.DeleteArtwork)

	authed.GET("/collections", worksH.ListCollections)
	authed.GET("/collections/series", worksH.ListSeries)
	authed.PUT("/collections/artworks", worksH.AddToCollection)
	authed.POST("/collections/rename", worksH.RenameCollection)
	authed.POST("/collections/remove", worksH.RemoveFromCollection)
	authed.DELETE("/collections/:name", worksH.DeleteCollection)

	authed.GET("/exhibitions", worksH.ListExhibitions)
	authed.POST("/exhibitions/lookup", worksH.LookupExhibition)
	authed.POST("/exhibitions/artworks", worksH.AddExhibition)
	authed.PUT("/exhibitions", worksH.UpdateExhibition)
	authed.POST("/exhibitions/split", worksH.SplitExhibition)
	authed.POST("/exhibitions/delete", worksH.DeleteExhibition)
	authed.POST("/exhibitions/remove", worksH.RemoveFromExhibition)

	registerResource(authed, "/performances", performancesH)
	registerResource(authed, "/pages", pagesH)
	registerResource(authed, "/blog", postsH)

	authed.GET("/media", mediaH.List)
	authed.POST("/media", mediaH.Upload)
	authed.PUT("/media/:id", mediaH.Update)
	authed.DELETE("/media/:id", mediaH.Delete)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(d.Verifier), middleware.RequireRole("admin"))
	admin.GET("/users", adminH.ListUsers)
	admin.POST("/users", adminH.CreateUser)
	admin.DELETE("/users/:id", adminH.DeleteUser)
}

type crud interface {
	List(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func registerResource(g *gin.RouterGroup, path string, h crud) {
	g.GET(path, h.List)
	g.POST(path, h.Create)
	g.GET(path+"/:id", h.Get)
	g.PUT(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}
