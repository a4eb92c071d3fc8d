package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/career-os/internal/domain/education"
	"github.com/khoahotran/career-os/internal/domain/experience"
	"github.com/khoahotran/career-os/internal/domain/project"
	"github.com/khoahotran/career-os/internal/domain/skill"
	"github.com/khoahotran/career-os/pkg/apperror"
	"github.com/khoahotran/career-os/pkg/auth"
)

type Handlers struct {
	Auth        *AuthHandler
	Profile     *ProfileHandler
	Experiences *RecordHandler[experience.Experience, experience.Filter, experience.Patch]
	Skills      *RecordHandler[skill.Skill, skill.Filter, skill.Patch]
	Projects    *RecordHandler[project.Project, project.Filter, project.Patch]
	Educations  *RecordHandler[education.Education, education.Filter, education.Patch]
	Generation  *GenerationHandler
	Usage       *UsageHandler
}

func NewRouter(h Handlers, jwtSvc *auth.JWTService, mapper *apperror.Mapper) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), ErrorMiddleware(mapper))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		admin := api.Group("/admin")
		{
			admin.POST("/auth/login", h.Auth.Login)

			adminPrivate := admin.Group("/")
			adminPrivate.Use(AuthMiddleware(jwtSvc))
			{
				adminPrivate.GET("/profile", h.Profile.GetProfile)
				adminPrivate.PUT("/profile", h.Profile.UpdateProfile)

				h.Experiences.Register(adminPrivate.Group("/experiences"))
				h.Skills.Register(adminPrivate.Group("/skills"))
				h.Projects.Register(adminPrivate.Group("/projects"))
				h.Educations.Register(adminPrivate.Group("/educations"))

				adminPrivate.POST("/generate/:kind", h.Generation.Generate)
				adminPrivate.POST("/revise/:kind", h.Generation.Revise)

				adminPrivate.GET("/usage", h.Usage.GetUsage)
			}
		}
	}

	return router
}
