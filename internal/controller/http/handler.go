package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"culinary-hub/internal/entity"
	"culinary-hub/pkg/logger"
	"culinary-hub/pkg/middleware"
	"culinary-hub/pkg/validation"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict), errors.Is(err, entity.ErrHasDependents):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, log *logger.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validation.Message(err)})
		return false
	}
	return true
}

func actorFrom(c *gin.Context) entity.Actor {
	return entity.Actor{
		UserID: c.GetUint(middleware.ContextUserID),
		Role:   entity.Role(c.GetString(middleware.ContextUserRole)),
	}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func pageFrom(c *gin.Context) entity.Page {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return entity.NewPage(limit, offset)
}

// openUpload returns the multipart field "file". The caller closes it.
func openUpload(c *gin.Context) (io.ReadCloser, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Multipart field 'file' is required"})
		return nil, false
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File must be 10 MB or smaller"})
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read uploaded file"})
		return nil, false
	}
	return file, true
}
