package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pm-platform/patient-service/internal/domain/patient"
	"github.com/pm-platform/patient-service/internal/dto"
	"github.com/pm-platform/patient-service/internal/service"
)

type PatientHandler struct {
	svc *service.PatientService
	log *zap.Logger
}

func NewPatientHandler(svc *service.PatientService, log *zap.Logger) *PatientHandler {
	return &PatientHandler{svc: svc, log: log}
}

func (h *PatientHandler) Register(rg *gin.RouterGroup) {
	patients := rg.Group("/patients")
	{
		patients.GET("", h.list)
		patients.GET("/search", h.search)
		patients.GET("/:id", h.get)
		patients.POST("", h.create)
		patients.PUT("/:id", h.update)
		patients.DELETE("/:id", h.delete)
	}
}

// list returns all patients, or one page when `page` / `page_size` query
// parameters are present.
func (h *PatientHandler) list(c *gin.Context) {
	if c.Query("page") != "" || c.Query("page_size") != "" {
		q := &patient.ListQuery{
			Page:     parseQueryInt(c, "page", 1),
			PageSize: parseQueryInt(c, "page_size", 20),
		}
		paged, err := h.svc.ListPage(c.Request.Context(), q)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, paged)
		return
	}

	patients, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, patients)
}

func (h *PatientHandler) search(c *gin.Context) {
	results, err := h.svc.Search(
		c.Request.Context(),
		c.Query("name"),
		c.Query("email"),
		c.Query("address"),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, results)
}

func (h *PatientHandler) get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) create(c *gin.Context) {
	var req dto.PatientRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, created)
}

func (h *PatientHandler) update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req dto.PatientRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, updated)
}

func (h *PatientHandler) delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
