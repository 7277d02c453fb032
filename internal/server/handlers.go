package server

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hray3182/RemindSnap/internal/ai"
	"github.com/hray3182/RemindSnap/internal/service"
)

type addReminderRequest struct {
	Message        string `json:"reminderMsg"`
	RemindAt       string `json:"remindAt"`
	RecurrenceRule string `json:"recurrenceRule"`
}

type deleteReminderRequest struct {
	ID int `json:"id"`
}

func (s *Server) handleGetAllReminders(c *gin.Context) {
	reminders, err := s.reminders.List(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list reminders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching reminders"})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (s *Server) handleAddReminder(c *gin.Context) {
	var req addReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reminders, err := s.reminders.Add(c.Request.Context(), req.Message, req.RemindAt, req.RecurrenceRule)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to add reminder: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving reminder"})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (s *Server) handleDeleteReminder(c *gin.Context) {
	var req deleteReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reminders, err := s.reminders.Delete(c.Request.Context(), req.ID)
	if err != nil {
		log.Printf("Failed to delete reminder: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting reminder"})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// allowed image types for the photo upload
var imageMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// handleGenerateReminder extracts a candidate reminder from an uploaded
// photo. Nothing is persisted here; the client echoes the result back
// through /addReminder.
func (s *Server) handleGenerateReminder(c *gin.Context) {
	if s.extractor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo extraction is not configured"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo upload is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	mimeType, ok := imageMimeTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}

	// Uploads are transient working files, removed after extraction
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		log.Printf("Failed to create upload dir: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error handling upload"})
		return
	}
	path := filepath.Join(s.uploadDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, path); err != nil {
		log.Printf("Failed to save upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error handling upload"})
		return
	}
	defer os.Remove(path)

	image, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Failed to read upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error handling upload"})
		return
	}

	draft, err := s.extractor.ExtractReminder(c.Request.Context(), image, mimeType)
	if err != nil {
		log.Printf("Failed to extract reminder: %v", err)
		if errors.Is(err, ai.ErrExtraction) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not read a reminder from the photo"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error generating reminder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reminder generated",
		"reminder": gin.H{
			"reminderMsg": draft.Message,
			"remindAt":    draft.RemindAt.Format(time.RFC3339),
		},
	})
}
