package handlers

import (
	"folio/middleware"
	"folio/storage"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Store is everything the API reads and writes. *database.DB implements it.
type Store interface {
	Pinger
	ProjectStore
	SkillStore
	ContactStore
	ProfileStore
	CVStore
	AdminStore
}

// Sessions issues, resolves and revokes admin sessions.
type Sessions interface {
	middleware.SessionLookup
	SessionIssuer
}

type Deps struct {
	Store         Store
	Sessions      Sessions
	Files         storage.Store
	Redis         *redis.Client
	PublicAPIKey  string
	ContactLimit  int
	ContactWindow time.Duration
	MaxUpload     int64
}

// Register mounts every route on r.
func Register(r *gin.Engine, d Deps) {
	r.GET("/health", HealthCheck(d.Store))

	api := r.Group("/api", middleware.RequireAPIKey(d.PublicAPIKey))
	{
		api.POST("/auth/login", Login(d.Store, d.Sessions))
		api.GET("/projects", ListProjects(d.Store))
		api.GET("/projects/:id", GetProject(d.Store))
		api.GET("/skills", ListSkills(d.Store))
		api.GET("/experiences", ListExperiences(d.Store))
		api.GET("/education", ListEducation(d.Store))
		api.GET("/cv", GetCV(d.Store, d.Files))
		api.POST("/contacts",
			middleware.RateLimit(d.Redis, "contact", d.ContactLimit, d.ContactWindow),
			SubmitContact(d.Store))
	}

	authed := api.Group("", middleware.AuthRequired(d.Sessions))
	{
		authed.GET("/auth/session", GetSession)
		authed.POST("/auth/logout", Logout(d.Sessions))
	}

	admin := api.Group("/admin", middleware.AuthRequired(d.Sessions))
	{
		admin.POST("/projects", CreateProject(d.Store))
		admin.PUT("/projects/:id", UpdateProject(d.Store))
		admin.DELETE("/projects/:id", DeleteProject(d.Store))

		admin.GET("/skills/:id", GetSkill(d.Store))
		admin.POST("/skills", CreateSkill(d.Store))
		admin.PUT("/skills/:id", UpdateSkill(d.Store))
		admin.DELETE("/skills/:id", DeleteSkill(d.Store))

		admin.GET("/contacts", ListContacts(d.Store))
		admin.POST("/cv", UploadCV(d.Store, d.Files, d.MaxUpload))
	}
}
