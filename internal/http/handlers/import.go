package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/counter"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/flash"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/middleware"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/render"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/importer"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/shared/apperr"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/storage"
	"github.com/IvanMykytyn/BetterMeTestTask/pkg/view"
	"github.com/IvanMykytyn/BetterMeTestTask/templates/pages"
)

// uploadTimeout bounds the background transfer to the counter API.
const uploadTimeout = 10 * time.Minute

type ImportHandler struct {
	API      *counter.Client
	Cache    *counter.CachedLister
	Tracker  *importer.Tracker
	Archive  storage.Storage
	Flash    *flash.Codec
	Log      *slog.Logger
	MaxBytes int64
}

func NewImportHandler(api *counter.Client, cache *counter.CachedLister, tracker *importer.Tracker, archive storage.Storage, fl *flash.Codec, log *slog.Logger, maxBytes int64) *ImportHandler {
	return &ImportHandler{API: api, Cache: cache, Tracker: tracker, Archive: archive, Flash: fl, Log: log, MaxBytes: maxBytes}
}

func (h *ImportHandler) Page(c *gin.Context) {
	render.Component(c, http.StatusOK, pages.Import(view.ImportPage{
		MaxBytes: h.MaxBytes,
	}, middleware.GetFlash(c)))
}

// Start accepts the CSV, archives it, and forwards it to the counter API.
// Fetch submits get a JSON upload id to poll; plain form submits block
// until the transfer finishes and redirect with a flash.
func (h *ImportHandler) Start(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes)

	file, header, err := c.Request.FormFile(counter.ImportField)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			middleware.Fail(c, apperr.InvalidErr(
				fmt.Sprintf("File is too large. The limit is %d MB.", h.MaxBytes/(1<<20)), nil))
			return
		}
		middleware.Fail(c, apperr.InvalidErr("Choose a CSV file to import.", nil))
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		middleware.Fail(c, apperr.InvalidErr("Only .csv files can be imported.", nil))
		return
	}

	// Spool to a temp file: the archive pass and the API transfer each need
	// a full read, and the request body is gone once this handler returns.
	tmp, size, err := spoolUpload(file)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if key, archiveErr := h.archive(c.Request.Context(), tmp, header.Filename, size); archiveErr != nil {
		// The archive is for later inspection; a failed copy should not
		// block the import itself.
		h.Log.LogAttrs(c.Request.Context(), slog.LevelWarn, "import_archive_failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.Any("err", archiveErr),
		)
	} else {
		h.Log.LogAttrs(c.Request.Context(), slog.LevelInfo, "import_archived",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("key", key),
		)
	}

	// Rewind after the archive pass no matter how it went, so the API
	// transfer always starts from byte zero.
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		discardSpool(tmp)
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if middleware.WantsJSON(c) {
		h.startAsync(c, tmp, header.Filename, size)
		return
	}
	h.runSync(c, tmp, header.Filename, size)
}

// Progress reports the state of a background upload.
func (h *ImportHandler) Progress(c *gin.Context) {
	status, ok := h.Tracker.Status(c.Param("id"))
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Unknown upload."))
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *ImportHandler) startAsync(c *gin.Context, tmp *os.File, filename string, size int64) {
	id := uuid.NewString()
	h.Tracker.Start(id)
	rid := middleware.GetRequestID(c)

	go func() {
		defer discardSpool(tmp)
		ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		defer cancel()

		resp, err := h.API.Import(ctx, filename, tmp, size, func(pct int) {
			h.Tracker.SetProgress(id, pct)
		})
		if err != nil {
			h.Log.LogAttrs(ctx, slog.LevelError, "import_failed",
				slog.String("request_id", rid),
				slog.String("upload_id", id),
				slog.Any("err", err),
			)
			h.Tracker.Fail(id, importMessage(err))
			return
		}

		h.Cache.Invalidate()
		h.Tracker.Finish(id)
		h.Log.LogAttrs(ctx, slog.LevelInfo, "import_finished",
			slog.String("request_id", rid),
			slog.String("upload_id", id),
			slog.String("api_message", resp.Message),
		)
	}()

	c.JSON(http.StatusAccepted, gin.H{"upload_id": id})
}

func (h *ImportHandler) runSync(c *gin.Context, tmp *os.File, filename string, size int64) {
	defer discardSpool(tmp)

	resp, err := h.API.Import(c.Request.Context(), filename, tmp, size, nil)
	if err != nil {
		h.Log.LogAttrs(c.Request.Context(), slog.LevelError, "import_failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.Any("err", err),
		)
		render.RedirectWithFlash(c, h.Flash, "/import", view.FlashError, importMessage(err))
		return
	}

	h.Cache.Invalidate()
	msg := resp.Message
	if msg == "" {
		msg = "Orders imported."
	}
	render.RedirectWithFlash(c, h.Flash, view.ListPath, view.FlashSuccess, msg)
}

func (h *ImportHandler) archive(ctx context.Context, tmp *os.File, filename string, size int64) (string, error) {
	if h.Archive == nil {
		return "", nil
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	res, err := h.Archive.Put(ctx, tmp, storage.PutInput{
		Filename:    filename,
		ContentType: "text/csv",
		Size:        size,
	})
	if err != nil {
		return "", err
	}
	return res.Key, nil
}

func spoolUpload(file multipart.File) (*os.File, int64, error) {
	tmp, err := os.CreateTemp("", "orders-import-*.csv")
	if err != nil {
		return nil, 0, err
	}
	size, err := io.Copy(tmp, file)
	if err != nil {
		discardSpool(tmp)
		return nil, 0, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		discardSpool(tmp)
		return nil, 0, err
	}
	return tmp, size, nil
}

func discardSpool(tmp *os.File) {
	name := tmp.Name()
	_ = tmp.Close()
	_ = os.Remove(name)
}

func importMessage(err error) string {
	var apiErr *counter.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return "Import failed: " + apiErr.Message
	}
	return "Import failed. Check the file and try again."
}
