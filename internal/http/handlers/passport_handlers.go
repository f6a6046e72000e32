package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HariStrange/drive-Vault/domain"
	"github.com/HariStrange/drive-Vault/internal/http/middleware"
)

// Multipart field names for passport attachments
const (
	passportPhotoField = "passport_photo"
	signatureField     = "signature"
)

// PassportHandlers serves the passport record endpoints
type PassportHandlers struct {
	passportSvc domain.PassportService
	storage     domain.FileStorage
}

// NewPassportHandlers creates new passport handlers
func NewPassportHandlers(passportSvc domain.PassportService, storage domain.FileStorage) *PassportHandlers {
	return &PassportHandlers{passportSvc: passportSvc, storage: storage}
}

// Create stores the caller's passport record from a multipart form
func (h *PassportHandlers) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var fields domain.PassportFields
	for _, col := range domain.PassportColumns {
		if v := c.PostForm(col); v != "" {
			fields.Set(col, &v)
		}
	}

	files, err := h.saveFiles(c)
	if err != nil {
		respondError(c, err, "Failed to create passport")
		return
	}

	passport, err := h.passportSvc.Create(c.Request.Context(), userID, fields, files)
	if err != nil {
		respondError(c, err, "Failed to create passport")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Passport created successfully",
		"passport": passport,
	})
}

// All lists every record with its owner's contact details
func (h *PassportHandlers) All(c *gin.Context) {
	passports, err := h.passportSvc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch passports")
		return
	}
	c.JSON(http.StatusOK, gin.H{"passports": passports})
}

// Me returns the caller's record
func (h *PassportHandlers) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	passport, err := h.passportSvc.GetMine(c.Request.Context(), userID)
	if errors.Is(err, domain.ErrPassportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Passport details not found"})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to fetch passport details")
		return
	}
	c.JSON(http.StatusOK, gin.H{"passport": passport})
}

// Update patches the caller's record. A form key that is absent leaves the
// column alone, an empty value clears it.
func (h *PassportHandlers) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	patch := domain.NewPassportPatch()
	for _, col := range domain.PassportColumns {
		v, present := c.GetPostForm(col)
		switch {
		case !present:
		case v == "":
			patch.Fields[col] = domain.Clear()
		default:
			patch.Fields[col] = domain.SetTo(v)
		}
	}

	files, err := h.saveFiles(c)
	if err != nil {
		respondError(c, err, "Failed to update passport details")
		return
	}
	patch.Files = files

	passport, err := h.passportSvc.Update(c.Request.Context(), userID, patch)
	if err != nil {
		respondError(c, err, "Failed to update passport details")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Passport updated successfully",
		"passport": passport,
	})
}

// Delete removes a record by id
func (h *PassportHandlers) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.passportSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrPassportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Passport not found"})
			return
		}
		respondError(c, err, "Failed to delete passport")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Passport record deleted successfully"})
}

// saveFiles stores whichever attachments the form carries. If the second
// save fails the first file is removed again.
func (h *PassportHandlers) saveFiles(c *gin.Context) (domain.PassportFiles, error) {
	var files domain.PassportFiles

	photo, err := saveUpload(c, h.storage, domain.PassportUploadDir, passportPhotoField)
	if err != nil {
		return files, err
	}
	signature, err := saveUpload(c, h.storage, domain.PassportUploadDir, signatureField)
	if err != nil {
		if photo != "" {
			if rmErr := h.storage.Remove(domain.PassportUploadDir, photo); rmErr != nil {
				log.Printf("EVENT: file_cleanup_failed dir=%s file=%s error=%q", domain.PassportUploadDir, photo, rmErr)
			}
		}
		return files, err
	}

	files.Photo = photo
	files.Signature = signature
	return files, nil
}
