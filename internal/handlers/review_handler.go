package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "loomhouse/internal/errors"
	"loomhouse/internal/pagination"
	"loomhouse/internal/services"
)

// ReviewHandler handles client testimonials
type ReviewHandler struct {
	reviewService services.ReviewServicer
	auditService  services.AuditServicer
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService services.ReviewServicer, auditService services.AuditServicer) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, auditService: auditService}
}

// SubmitReviewRequest is the public review form payload
type SubmitReviewRequest struct {
	Author  string `json:"author" binding:"required,min=1,max=100"`
	Company string `json:"company" binding:"max=150"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Body    string `json:"body" binding:"required,min=1,max=2000"`
}

// ApproveReviewRequest toggles a review's visibility
type ApproveReviewRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// SubmitReview stores a review pending approval
// @Summary     Leave a review
// @Tags        public
// @Accept      json
// @Produce     json
// @Param       request body SubmitReviewRequest true "Review"
// @Success     201 {object} MessageResponse "Review received"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /public/reviews [post]
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	_, err := h.reviewService.SubmitReview(c.Request.Context(), services.ReviewInput{
		Author:  req.Author,
		Company: req.Company,
		Rating:  req.Rating,
		Body:    req.Body,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Thank you for your review"})
}

// ListPublicReviews lists approved reviews with their summary
// @Summary     Reviews
// @Tags        public
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Review] "Approved reviews, newest first"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /public/reviews [get]
func (h *ReviewHandler) ListPublicReviews(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	approved := true
	result, err := h.reviewService.ListReviews(c.Request.Context(), &approved, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListReviews handles the admin moderation queue
// @Summary     List reviews
// @Tags        reviews
// @Produce     json
// @Security    BearerAuth
// @Param       approved  query bool false "Filter by approval"
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Review] "Reviews, newest first"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var approved *bool
	if raw := c.Query("approved"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "approved must be a boolean"))
			return
		}
		approved = &v
	}

	result, err := h.reviewService.ListReviews(c.Request.Context(), approved, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ApproveReview publishes or hides a review
// @Summary     Approve review
// @Tags        reviews
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Review ID"
// @Param       request body ApproveReviewRequest true "Approval"
// @Success     200 {object} models.Review "Updated review"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Review not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reviews/{id}/approve [patch]
func (h *ReviewHandler) ApproveReview(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ApproveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	review, err := h.reviewService.SetApproved(c.Request.Context(), id, *req.Approved)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionUpdate, "review", id,
		map[string]interface{}{"is_approved": review.IsApproved})

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// DeleteReview handles the deletion of a review
// @Summary     Delete review
// @Tags        reviews
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Review ID"
// @Success     200 {object} MessageResponse "Review deleted"
// @Failure     400 {object} ErrorResponse "Invalid review ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Review not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionDelete, "review", id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
