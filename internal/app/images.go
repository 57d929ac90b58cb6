package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/metinatakli/theatre-box-office/api"
	"github.com/metinatakli/theatre-box-office/internal/domain"
	appvalidator "github.com/metinatakli/theatre-box-office/internal/validator"
)

const defaultMaxUploadBytes = 5 << 20

const imageFormField = "image"

func (app *Application) UploadPlayImage(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	play, err := app.playRepo.GetDetailById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.uploadImage(w, r, domain.NewPlayImageUpload(*play), app.playRepo.UpdateImage)
}

func (app *Application) UploadActorImage(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	actor, err := app.actorRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.uploadImage(w, r, domain.NewActorImageUpload(*actor), app.actorRepo.UpdateImage)
}

// uploadImage stores the "image" part of a multipart body under the upload
// root and records its path on the owner through save.
func (app *Application) uploadImage(
	w http.ResponseWriter,
	r *http.Request,
	upload domain.ImageUpload,
	save func(ctx context.Context, id int, image string) error) {

	logger := app.contextGetLogger(r)

	maxBytes := app.config.Upload.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	err := r.ParseMultipartForm(maxBytes)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("body must be a multipart form of at most %d bytes", maxBytes))
		return
	}

	file, _, err := r.FormFile(imageFormField)
	if err != nil {
		app.fieldErrorsResponse(w, r, []api.ValidationError{
			{Field: imageFormField, Issue: appvalidator.ErrRequired},
		})
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		app.serverErrorResponse(w, r, err)
		return
	}
	head = head[:n]

	upload.ContentType = http.DetectContentType(head)

	imagePath, err := upload.Path()
	if err != nil {
		app.fieldErrorsResponse(w, r, []api.ValidationError{
			{Field: imageFormField, Issue: "must be an image file"},
		})
		return
	}

	err = app.storeFile(imagePath, io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = save(r.Context(), upload.OwnerID, imagePath)
	if err != nil {
		app.removeFile(imagePath)

		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	logger.Info("image uploaded", "kind", upload.Kind.String(), "content_type", upload.ContentType, "owner_id", upload.OwnerID, "path", imagePath)

	resp := api.ImageResponse{
		Id:    upload.OwnerID,
		Image: imagePath,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) storeFile(relPath string, src io.Reader) error {
	dst := filepath.Join(app.config.Upload.Root, filepath.FromSlash(relPath))

	err := os.MkdirAll(filepath.Dir(dst), 0o755)
	if err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create upload file: %w", err)
	}

	_, err = io.Copy(f, src)
	if err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to write upload file: %w", err)
	}

	return f.Close()
}

func (app *Application) removeFile(relPath string) {
	err := os.Remove(filepath.Join(app.config.Upload.Root, filepath.FromSlash(relPath)))
	if err != nil {
		app.logger.Warn("failed to remove orphaned upload", "path", relPath, "error", err)
	}
}
