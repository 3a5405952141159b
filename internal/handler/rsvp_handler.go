package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dumorro/e-nvites/internal/domain"
	"github.com/Dumorro/e-nvites/internal/dto"
	"github.com/Dumorro/e-nvites/internal/service"
	"github.com/Dumorro/e-nvites/pkg/response"
)

// RSVPHandler handles the guest-facing RSVP HTTP requests. The invitation
// GUID in the request acts as the bearer capability; there is no other
// authentication on these routes.
type RSVPHandler struct {
	rsvpService   service.RSVPService
	inviteService service.InviteService
}

// NewRSVPHandler creates a new RSVPHandler
func NewRSVPHandler(rsvpService service.RSVPService, inviteService service.InviteService) *RSVPHandler {
	return &RSVPHandler{
		rsvpService:   rsvpService,
		inviteService: inviteService,
	}
}

// GetGuest handles guest lookup by GUID
// GET /api/rsvp?guid=xxx
func (h *RSVPHandler) GetGuest(c *gin.Context) {
	var query dto.GetGuestQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("GUID is required"))
		return
	}

	guest, err := h.rsvpService.GetGuest(c.Request.Context(), query.GUID)
	if err != nil {
		if errors.Is(err, service.ErrGuestNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Convidado não encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(""))
		return
	}

	c.JSON(http.StatusOK, response.Success(dto.GuestResponse{Guest: guest}))
}

// UpdateRSVP handles a guest confirming or declining attendance
// POST /api/rsvp
func (h *RSVPHandler) UpdateRSVP(c *gin.Context) {
	var req dto.UpdateRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("GUID and status are required"))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	status := domain.GuestStatus(req.Status)
	guest, err := h.rsvpService.UpdateStatus(c.Request.Context(), req.GUID, status)
	if err != nil {
		if errors.Is(err, service.ErrGuestNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Convidado não encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(""))
		return
	}

	message := "Presença recusada. Obrigado por avisar!"
	if status == domain.StatusConfirmed {
		message = "Presença confirmada com sucesso!"
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(dto.GuestResponse{Guest: guest}, message))
}

// ConfirmByEmail handles confirmation through the email + event form
// POST /api/rsvp/confirm-by-email
func (h *RSVPHandler) ConfirmByEmail(c *gin.Context) {
	var req dto.ConfirmByEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Email e evento são obrigatórios"))
		return
	}

	guest, err := h.rsvpService.ConfirmByEmail(c.Request.Context(), req.Email, req.EventSlug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Evento não encontrado"))
		case errors.Is(err, service.ErrEmailNotOnList):
			c.JSON(http.StatusNotFound, response.NotFound(
				"Email não encontrado na lista de convidados. Somente pessoas pré-convidadas podem confirmar presença."))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(""))
		}
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(
		dto.GuestResponse{Guest: guest}, "Presença confirmada com sucesso!"))
}

// GetGuestImage serves the invite image as a base64 data URI
// GET /api/rsvp/guest-image?qrCode=xxx&eventId=N
func (h *RSVPHandler) GetGuestImage(c *gin.Context) {
	var query dto.GuestImageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("qrCode e eventId são obrigatórios"))
		return
	}

	image, err := h.inviteService.GetGuestImage(c.Request.Context(), query.QRCode, query.EventID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Evento não encontrado"))
		case errors.Is(err, service.ErrImageNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Convite não encontrado"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(""))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(image))
}
