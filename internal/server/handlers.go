package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/mindupgrade/internal/store"
)

// APIVersion is reported by /healthz. Clients refuse a different major.
const APIVersion = "v1.0.0"

type LoginRequest struct {
	Email string `json:"email"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Handlers serves the user record API over a store.Repo.
type Handlers struct {
	repo    store.Repo
	logger  *zap.Logger
	metrics *Metrics
}

func NewHandlers(repo store.Repo, logger *zap.Logger, metrics *Metrics) *Handlers {
	return &Handlers{repo: repo, logger: logger, metrics: metrics}
}

// RegisterRoutes registers the record API on rg:
//
//	POST /login        create-if-absent, returns the record
//	GET  /data/:email  returns the record or 404
//	PUT  /data/:email  shallow merge, returns {"ok": true}
//	GET  /healthz      liveness and API version
func RegisterRoutes(rg gin.IRouter, h *Handlers) {
	rg.POST("/login", h.HandleLogin)
	rg.GET("/data/:email", h.HandleGet)
	rg.PUT("/data/:email", h.HandlePut)
	rg.GET("/healthz", h.HandleHealth)
}

// HandleLogin handles POST /login.
func (h *Handlers) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email required"})
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email required"})
		return
	}

	rec, created, err := h.repo.Create(c.Request.Context(), email)
	if err != nil {
		h.internal(c, "login", err)
		return
	}
	h.metrics.logins.WithLabelValues(strconv.FormatBool(created)).Inc()
	if created {
		h.logger.Info("user created", zap.String("email", email))
	}
	c.JSON(http.StatusOK, rec)
}

// HandleGet handles GET /data/:email.
func (h *Handlers) HandleGet(c *gin.Context) {
	rec, err := h.repo.Get(c.Request.Context(), c.Param("email"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		return
	}
	if err != nil {
		h.internal(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// HandlePut handles PUT /data/:email. The body must be a JSON object;
// its top-level keys replace the stored ones.
func (h *Handlers) HandlePut(c *gin.Context) {
	var patch store.Record
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Body must be a JSON object"})
		return
	}
	if err := h.repo.Put(c.Request.Context(), c.Param("email"), patch); err != nil {
		h.internal(c, "put", err)
		return
	}
	h.metrics.saves.Inc()
	c.JSON(http.StatusOK, OKResponse{OK: true})
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Version: APIVersion})
}

func (h *Handlers) internal(c *gin.Context, op string, err error) {
	h.logger.Error("store failed", zap.String("op", op), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
}
