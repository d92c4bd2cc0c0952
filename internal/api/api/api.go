package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"github.com/awscbba/registry-frontend-sub000/cmd/middleware"
	"github.com/awscbba/registry-frontend-sub000/internal/service"
)

type Routers struct {
	Service service.Service
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())
	apiGroup := app.Group("/v1")

	apiGroup.POST("/sessions", r.Service.OpenSession)
	apiGroup.GET("/state", r.Service.GetState)
	apiGroup.POST("/navigate", r.Service.Navigate)
	apiGroup.POST("/back", r.Service.GoBack)
	apiGroup.GET("/dashboard", r.Service.GetDashboard)
	apiGroup.GET("/banner", r.Service.GetBanner)
	apiGroup.POST("/banner/clear", r.Service.ClearBanner)

	apiGroup.GET("/people", r.Service.ListPeople)
	apiGroup.POST("/people", r.Service.CreatePerson)
	apiGroup.PUT("/people/:id", r.Service.UpdatePerson)
	apiGroup.POST("/people/:id/delete", r.Service.DeletePerson)

	apiGroup.GET("/projects", r.Service.ListProjects)
	apiGroup.POST("/projects", r.Service.CreateProject)
	apiGroup.PUT("/projects/:id", r.Service.UpdateProject)
	apiGroup.POST("/projects/:id/delete", r.Service.DeleteProject)
	apiGroup.POST("/projects/:id/status", r.Service.ChangeProjectStatus)
	apiGroup.GET("/projects/:id/subscribers", r.Service.ListSubscribers)

	apiGroup.POST("/subscriptions/:id/accept", r.Service.AcceptSubscriber)
	apiGroup.POST("/subscriptions/:id/decline", r.Service.DeclineSubscriber)
	apiGroup.POST("/subscriptions/:id/deactivate", r.Service.DeactivateSubscriber)

	app.GET("/", func(c *ginext.Context) {
		c.File("./frontend/index.html")
	})
	app.GET("/adm", func(c *ginext.Context) {
		c.File("./frontend/adm.html")
	})
	app.Static("/frontend", "./frontend")

	return app
}
