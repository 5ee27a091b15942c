package handler

import (
	"errors"
	"net/http"
	"strconv"

	"hospital-medicine-api/internal/service"
	"hospital-medicine-api/internal/transform"
	"hospital-medicine-api/pkg/dto"
	"hospital-medicine-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HospitalHandler struct {
	hospitalService *service.HospitalService
}

func NewHospitalHandler(hospitalService *service.HospitalService) *HospitalHandler {
	return &HospitalHandler{
		hospitalService: hospitalService,
	}
}

// Register mounts the hospital routes on rg
func (h *HospitalHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.GetAllHospitals)
	rg.POST("", h.CreateHospital)
	rg.GET("/:id", h.GetHospital)
	rg.PUT("/:id", h.UpdateHospital)
	rg.DELETE("/:id", h.DeleteHospital)
}

// GetAllHospitals retrieves every hospital with its medicine
func (h *HospitalHandler) GetAllHospitals(c *gin.Context) {
	hospitals, err := h.hospitalService.Read(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, hospitals)
}

// GetHospital retrieves a specific hospital by ID
func (h *HospitalHandler) GetHospital(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	hospital, err := h.hospitalService.ReadByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, hospital)
}

// CreateHospital creates a hospital and its medicine
func (h *HospitalHandler) CreateHospital(c *gin.Context) {
	var req dto.HospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	hospital, err := h.hospitalService.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, hospital)
}

// UpdateHospital replaces an existing hospital and its medicine
func (h *HospitalHandler) UpdateHospital(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.HospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	hospital, err := h.hospitalService.UpdateByID(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, hospital)
}

// DeleteHospital deletes a hospital and its medicine, returning the deleted record
func (h *HospitalHandler) DeleteHospital(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	hospital, err := h.hospitalService.DeleteByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, hospital)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hospital ID")
		return 0, false
	}
	return uint(id), true
}

// fail maps service errors to responses: not found is an empty 404,
// unparseable fields are a 400, anything else is a 500.
func (h *HospitalHandler) fail(c *gin.Context, err error) {
	var verr *transform.ValidationError
	switch {
	case errors.Is(err, service.ErrHospitalNotFound):
		c.Status(http.StatusNotFound)
	case errors.As(err, &verr):
		utils.FieldErrorResponse(c, http.StatusBadRequest, "invalid request", verr.Fields)
	default:
		_ = c.Error(err)
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("hospital request failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}
