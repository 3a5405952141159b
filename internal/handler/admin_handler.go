package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dumorro/e-nvites/internal/domain"
	"github.com/Dumorro/e-nvites/internal/dto"
	"github.com/Dumorro/e-nvites/internal/service"
	"github.com/Dumorro/e-nvites/pkg/response"
)

// AdminHandler handles the admin-only HTTP requests. All routes behind it
// are guarded by the shared-secret middleware.
type AdminHandler struct {
	guestListService service.GuestListService
	importerService  service.ImporterService
	inviteService    service.InviteService
	rsvpService      service.RSVPService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	guestListService service.GuestListService,
	importerService service.ImporterService,
	inviteService service.InviteService,
	rsvpService service.RSVPService,
) *AdminHandler {
	return &AdminHandler{
		guestListService: guestListService,
		importerService:  importerService,
		inviteService:    inviteService,
		rsvpService:      rsvpService,
	}
}

// ListGuests serves the guest list with stats and active events
// GET /api/rsvp/list?status=&event_id=&search=&export=
func (h *AdminHandler) ListGuests(c *gin.Context) {
	var query dto.ListGuestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.guestListService.List(c.Request.Context(), &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Erro ao buscar convidados"))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// ImportGuests handles a bulk CSV guest import
// POST /api/admin/import-guests (multipart: file, eventId)
func (h *AdminHandler) ImportGuests(c *gin.Context) {
	eventID, ok := formEventID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Arquivo não fornecido"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Erro ao ler arquivo"))
		return
	}
	defer file.Close()

	stats, err := h.importerService.ImportGuests(c.Request.Context(), eventID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Evento não encontrado"))
		case errors.Is(err, service.ErrEmptyCSV):
			c.JSON(http.StatusBadRequest, response.BadRequest("Arquivo CSV vazio ou apenas com cabeçalho"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError("Erro ao processar importação"))
		}
		return
	}

	if stats.Status == domain.ImportFailed {
		resp := response.Error(response.ErrCodeDuplicateEntry, "Erro ao inserir convidados")
		if !hasDuplicateError(stats) {
			resp = response.InternalError("Erro ao inserir convidados")
		}
		resp.Data = stats
		c.JSON(response.GetHTTPStatus(resp.Error.Code), resp)
		return
	}

	message := fmt.Sprintf("%d convidado(s) importado(s) com sucesso!", stats.Inserted)
	c.JSON(http.StatusOK, response.SuccessWithMessage(stats, message))
}

// UploadInvites handles a bulk invite-image ZIP upload
// POST /api/admin/upload-invites (multipart: file, eventId)
func (h *AdminHandler) UploadInvites(c *gin.Context) {
	eventID, ok := formEventID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Nenhum arquivo foi enviado"))
		return
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".zip") {
		c.JSON(http.StatusBadRequest, response.BadRequest("O arquivo deve ser um ZIP"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Erro ao ler arquivo"))
		return
	}
	defer file.Close()

	zipData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Erro ao ler arquivo"))
		return
	}

	stats, err := h.inviteService.UploadInvites(c.Request.Context(), eventID, zipData)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Evento não encontrado"))
		case errors.Is(err, service.ErrNotAZip):
			c.JSON(http.StatusBadRequest, response.BadRequest("O arquivo deve ser um ZIP"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError("Erro ao processar upload"))
		}
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(stats, "Upload realizado com sucesso"))
}

// ImportLogs serves the import audit trail
// GET /api/admin/import-logs?eventId=&limit=
func (h *AdminHandler) ImportLogs(c *gin.Context) {
	var query dto.ImportLogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	logs, err := h.guestListService.ImportLogs(c.Request.Context(), &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Erro ao buscar logs"))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"logs": logs}))
}

// SendConfirmation sends or resends a confirmation email to a guest
// POST /api/admin/send-confirmation
func (h *AdminHandler) SendConfirmation(c *gin.Context) {
	var req dto.SendConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	result, err := h.rsvpService.ResendConfirmation(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGuestNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Convidado não encontrado"))
		case errors.Is(err, service.ErrGuestHasNoEmail):
			c.JSON(http.StatusBadRequest, response.BadRequest("Convidado não possui email cadastrado"))
		case errors.Is(err, service.ErrGuestNotConfirmed):
			c.JSON(http.StatusBadRequest, response.BadRequest(
				"Somente convidados confirmados podem receber o email de confirmação"))
		case errors.Is(err, service.ErrEventNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Evento não encontrado"))
		case errors.Is(err, service.ErrEventInactive):
			c.JSON(http.StatusBadRequest, response.BadRequest("Evento não está ativo"))
		default:
			c.JSON(http.StatusInternalServerError, response.Error(response.ErrCodeEmailFailed, "Falha ao enviar email"))
		}
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(result, "Email enviado com sucesso"))
}

// formEventID reads and validates the eventId multipart field, writing the
// error response itself when invalid
func formEventID(c *gin.Context) (int64, bool) {
	raw := c.PostForm("eventId")
	if raw == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID não fornecido"))
		return 0, false
	}
	eventID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || eventID <= 0 {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID inválido"))
		return 0, false
	}
	return eventID, true
}

// hasDuplicateError reports whether a failed import was caused by a
// uniqueness violation rather than a generic database failure
func hasDuplicateError(stats *dto.ImportStats) bool {
	for _, detail := range stats.ErrorDetails {
		if detail.Type == domain.ImportErrorDuplicate {
			return true
		}
	}
	return false
}
