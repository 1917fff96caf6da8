package handlers

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/httpresp"
	"github.com/BruksfildServices01/medagenda/internal/middleware"
	"github.com/BruksfildServices01/medagenda/internal/models"
	ucAttachment "github.com/BruksfildServices01/medagenda/internal/usecase/attachment"
)

const attachmentsField = "arquivos"

type AttachmentHandler struct {
	attachments *ucAttachment.Service
}

func NewAttachmentHandler(attachments *ucAttachment.Service) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments}
}

func (h *AttachmentHandler) Upload(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		httperr.BadRequest(c, "invalid_multipart", "Envie os arquivos como multipart/form-data.")
		return
	}

	headers := form.File[attachmentsField]
	files := make([]ucAttachment.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			httperr.BadRequest(c, "invalid_file", "Arquivo inválido.")
			return
		}
		defer f.Close()

		files = append(files, ucAttachment.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	records, err := h.attachments.Upload(c.Request.Context(), middleware.ActorFrom(c), id, files)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpresp.ListResponse[models.Attachment]{Data: records, Total: len(records)})
}

func (h *AttachmentHandler) List(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.attachments.List(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *AttachmentHandler) Download(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	d, err := h.attachments.Download(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	defer d.Body.Close()

	contentType := d.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, d.Size, contentType, d.Body, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": d.Name}),
	})
}

func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.attachments.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
