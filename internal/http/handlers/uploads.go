package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HariStrange/drive-Vault/domain"
)

// saveUpload stores the multipart file under field, returning "" when the form has none
func saveUpload(c *gin.Context, storage domain.FileStorage, dir, field string) (string, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return storage.Save(dir, field, header.Filename, src)
}
