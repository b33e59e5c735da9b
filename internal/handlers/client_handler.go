package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/agenda/internal/domain/client"
	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/httpresp"
	"github.com/BruksfildServices01/agenda/internal/middleware"
	"github.com/BruksfildServices01/agenda/internal/usecase/client"
)

type ClientHandler struct {
	create *client.CreateClient
	update *client.UpdateClient
	get    *client.GetClient
	list   *client.ListClients
	remove *client.DeleteClient
}

func NewClientHandler(
	create *client.CreateClient,
	update *client.UpdateClient,
	get *client.GetClient,
	list *client.ListClients,
	remove *client.DeleteClient,
) *ClientHandler {
	return &ClientHandler{
		create: create,
		update: update,
		get:    get,
		list:   list,
		remove: remove,
	}
}

// Field rules live in the domain so the error codes stay precise.
type ClientRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Notes  string `json:"notes"`
	Active *bool  `json:"active"`
}

func (r ClientRequest) input() domain.Input {
	return domain.Input{
		Name:   r.Name,
		Phone:  r.Phone,
		Email:  r.Email,
		Notes:  r.Notes,
		Active: r.Active,
	}
}

// ======================================================
// LIST / GET
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.list.Execute(c.Request.Context(), c.Query("q"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_clients")
		return
	}
	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	cl, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_client")
		return
	}
	httpresp.OK(c, cl)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cl, err := h.create.Execute(c.Request.Context(), middleware.ActorID(c), req.input())
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_client")
		return
	}
	httpresp.Created(c, cl)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cl, err := h.update.Execute(c.Request.Context(), middleware.ActorID(c), id, req.input())
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_client")
		return
	}
	httpresp.OK(c, cl)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.ActorID(c), id); err != nil {
		httperr.FromError(c, err, "failed_to_delete_client")
		return
	}
	httpresp.NoContent(c)
}
