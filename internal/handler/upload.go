package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jamesleighton95-code/Application-Portfolio/internal/middleware"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/storage"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// UploadHandler serves file upload, the latest-upload query and the
// upload-history export.
type UploadHandler struct {
	Uploads *store.UploadStore
	Files   *storage.Storage
}

func NewUploadHandler(uploads *store.UploadStore, files *storage.Storage) *UploadHandler {
	return &UploadHandler{
		Uploads: uploads,
		Files:   files,
	}
}

// Upload handles POST /upload with multipart field "fileUpload". The
// file lands under the caller's directory, metadata is recorded, and the
// browser goes back to the dashboard.
func (h *UploadHandler) Upload(c *gin.Context) {
	username, loggedIn := middleware.Username(c)
	file, err := c.FormFile("fileUpload")
	if !loggedIn || err != nil {
		c.String(http.StatusBadRequest, "No file uploaded or not logged in.")
		return
	}

	src, err := file.Open()
	if err != nil {
		log.Printf("upload: open multipart file: %v", err)
		c.String(http.StatusInternalServerError, "Upload failed.")
		return
	}
	defer src.Close()

	storedName, err := h.Files.Store(username, file.Filename, src)
	if err != nil {
		log.Printf("upload: store file: %v", err)
		c.String(http.StatusInternalServerError, "Upload failed.")
		return
	}

	if err := h.Uploads.Insert(username, storedName, file.Filename); err != nil {
		log.Printf("upload: insert record: %v", err)
		c.String(http.StatusInternalServerError, "Database error.")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// LatestUpload handles GET /latest-upload. A user with no uploads gets a
// JSON null with status 200, never an error.
func (h *UploadHandler) LatestUpload(c *gin.Context) {
	username, loggedIn := middleware.Username(c)
	if !loggedIn {
		c.String(http.StatusUnauthorized, "Not logged in")
		return
	}

	rec, err := h.Uploads.LatestFor(username)
	if err != nil {
		log.Printf("latest-upload: %v", err)
		c.JSON(http.StatusOK, nil)
		return
	}
	if rec == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stored_filename":   rec.StoredFilename,
		"original_filename": rec.OriginalFilename,
	})
}

// ExportXLSX handles GET /export/xlsx and streams the caller's upload
// history as a spreadsheet.
func (h *UploadHandler) ExportXLSX(c *gin.Context) {
	username, loggedIn := middleware.Username(c)
	if !loggedIn {
		c.String(http.StatusUnauthorized, "Not logged in")
		return
	}

	recs, err := h.Uploads.AllFor(username)
	if err != nil {
		log.Printf("export: list uploads: %v", err)
		c.String(http.StatusInternalServerError, "Export failed.")
		return
	}

	f := excelize.NewFile()
	sheetName := "Uploads"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		c.String(http.StatusInternalServerError, "Export failed.")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Original filename", "Stored filename", "Uploaded at"}
	for i, head := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}

	for idx, rec := range recs {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), rec.OriginalFilename)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), rec.StoredFilename)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), rec.UploadedAt.Format("2006-01-02 15:04:05"))
	}

	f.SetColWidth(sheetName, "A", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 20)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"uploads_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("export: write xlsx: %v", err)
	}
}
