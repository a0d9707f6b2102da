package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecodrive/apperror"
	"ecodrive/models"
	"ecodrive/services"
)

// ContextUserID is the gin context key holding the authenticated usuario id.
const ContextUserID = "usuario_id"

type UserHandler struct {
	*CRUDHandler[models.UserInput, models.UserResponse]
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler {
	return &UserHandler{
		CRUDHandler: NewCRUDHandler[models.UserInput, models.UserResponse]("usuarios", svc),
		svc:         svc,
	}
}

// Register mounts the user routes; auth guards /me only.
func (h *UserHandler) Register(g *gin.RouterGroup, auth gin.HandlerFunc) {
	g.POST("/login", h.Login)
	g.GET("/me", auth, h.Me)
	g.GET("/busca", h.byQuery("nome", h.svc.SearchByName))
	h.CRUDHandler.Register(g)
}

func (h *UserHandler) Login(c *gin.Context) {
	var in models.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, bindError(err))
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the user the bearer token belongs to.
func (h *UserHandler) Me(c *gin.Context) {
	id := c.GetUint(ContextUserID)
	if id == 0 {
		fail(c, apperror.Unauthorized("Token de acesso ausente ou inválido."))
		return
	}
	r, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			err = apperror.Unauthorized("Token de acesso ausente ou inválido.")
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toItem(c, h.links, r))
}
