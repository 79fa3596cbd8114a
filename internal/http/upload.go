package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/astecastudio/portfolio-api/internal/media"
	"github.com/astecastudio/portfolio-api/pkg/apisdk"
	"github.com/astecastudio/portfolio-api/pkg/httpx"
	"github.com/astecastudio/portfolio-api/pkg/slogx"
)

// maxUploadBytes caps a single media upload at 64 MiB.
const maxUploadBytes = 64 << 20

// UploadHandler stores admin media uploads.
type UploadHandler struct {
	Media *media.Storage
}

// HandleUpload accepts one multipart file under the "file" field, stores
// it under a unique name and returns the public path to reference from a
// portfolio item.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		apisdk.ErrInvalidRequest.WithDescription("a multipart \"file\" field is required").WriteError(w)
		return
	}
	defer file.Close()

	stored, err := h.Media.Save(header.Filename, file)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) {
			apisdk.ErrUnsupportedMedia.WriteError(w)
			return
		}
		log.Error("upload failed", "error", err, "filename", header.Filename)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	httpx.WriteJSON(w, http.StatusCreated, apisdk.UploadResponse{
		FileName: stored,
		FilePath: "/uploads/" + stored,
		ItemType: media.ItemTypeForExtension(ext),
	})
}
