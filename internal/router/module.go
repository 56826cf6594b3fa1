package router

import "github.com/gin-gonic/gin"

// Module is a feature area that mounts its routes on the /api group.
// Name is used in startup logs.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}
