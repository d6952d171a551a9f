package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Scalium-Tech/aligned/internal/api/dto"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/Scalium-Tech/aligned/internal/domain/journal"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JournalHandler handles HTTP requests for journal operations
type JournalHandler struct {
	service journal.Service
}

// NewJournalHandler creates a new JournalHandler instance
func NewJournalHandler(service journal.Service) *JournalHandler {
	return &JournalHandler{service: service}
}

// CreateEntry writes a new journal entry
func (h *JournalHandler) CreateEntry(c *gin.Context) {
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	created, err := h.service.CreateEntry(c.Request.Context(), journal.CreateEntryInput{
		UserID:  userID,
		Content: req.Content,
		Mood:    req.Mood,
		Prompt:  req.Prompt,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": EntryToResponse(created)})
}

// GetEntry returns a single journal entry by ID
func (h *JournalHandler) GetEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry ID"})
		return
	}

	entry, err := h.service.GetEntry(c.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, journal.ErrEntryNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": EntryToResponse(entry)})
}

// ListEntries returns a paginated list of the user's entries
func (h *JournalHandler) ListEntries(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	entries, total, err := h.service.ListEntries(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := dto.EntryListResponse{
		Entries:    make([]dto.EntryResponse, 0, len(entries)),
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, EntryToResponse(&entries[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// DeleteEntry removes a journal entry
func (h *JournalHandler) DeleteEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry ID"})
		return
	}

	if err := h.service.DeleteEntry(c.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, journal.ErrEntryNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "entry deleted successfully"})
}
