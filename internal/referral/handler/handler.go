package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"referral-server/internal/apierrors"
	"referral-server/internal/observability"
	"referral-server/internal/referral/processor"
	"referral-server/internal/referral/validation"
	"referral-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

const (
	MessageCreated        = "Referral created successfully!"
	MessageUpdated        = "Referral updated successfully!"
	MessageDeleted        = "Referral deleted successfully!"
	MessageAvatarUploaded = "Avatar uploaded successfully!"
)

const formMaxMemory = 1 << 20

// multipartOverhead is allowed on top of the avatar limit for form boundaries and fields.
const multipartOverhead = 64 << 10

type Handler struct {
	processor      processor.ReferralProcessor
	logger         *observability.Logger
	avatarMaxBytes int64
}

func New(processor processor.ReferralProcessor, logger *observability.Logger, avatarMaxBytes int64) Handler {
	return Handler{
		processor:      processor,
		logger:         logger,
		avatarMaxBytes: avatarMaxBytes,
	}
}

// MutationResponse is returned by create, update and delete
type MutationResponse struct {
	Message  string          `json:"message"`
	Referral *store.Referral `json:"referral,omitempty"`
}

// AvatarResponse is returned by avatar uploads
type AvatarResponse struct {
	Message   string `json:"message"`
	AvatarURL string `json:"avatar_url"`
}

type listReferralsQuery struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// HandleListReferrals handles GET /api/v1/referrals
func (h *Handler) HandleListReferrals(c *gin.Context) {
	ctx := c.Request.Context()

	var query listReferralsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	response, err := h.processor.Page(ctx, processor.PageRequest{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// HandleGetReferral handles GET /api/v1/referrals/:id
func (h *Handler) HandleGetReferral(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.referralID(c)
	if !ok {
		return
	}

	referral, err := h.processor.Get(ctx, id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, referral)
}

// HandleCreateReferral handles POST /api/v1/referrals
func (h *Handler) HandleCreateReferral(c *gin.Context) {
	h.submit(c, nil)
}

// HandleUpdateReferral handles PUT /api/v1/referrals/:id
func (h *Handler) HandleUpdateReferral(c *gin.Context) {
	id, ok := h.referralID(c)
	if !ok {
		return
	}
	h.submit(c, &id)
}

func (h *Handler) submit(c *gin.Context, existingID *uuid.UUID) {
	ctx := c.Request.Context()

	candidate, err := bindCandidate(c)
	if err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	referral, err := h.processor.Submit(ctx, candidate, existingID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	if existingID == nil {
		c.JSON(http.StatusCreated, MutationResponse{Message: MessageCreated, Referral: &referral})
		return
	}
	c.JSON(http.StatusOK, MutationResponse{Message: MessageUpdated, Referral: &referral})
}

// bindCandidate reads a referral from a JSON body or from form fields named
// like the JSON keys.
func bindCandidate(c *gin.Context) (validation.Candidate, error) {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(formMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return validation.Candidate{}, err
		}
		values := make(map[string]string, len(c.Request.PostForm))
		for key := range c.Request.PostForm {
			values[key] = c.Request.PostForm.Get(key)
		}
		return validation.FromMap(values), nil
	default:
		var candidate validation.Candidate
		err := c.ShouldBindJSON(&candidate)
		return candidate, err
	}
}

// HandleDeleteReferral handles DELETE /api/v1/referrals/:id
func (h *Handler) HandleDeleteReferral(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.referralID(c)
	if !ok {
		return
	}

	if err := h.processor.Delete(ctx, id); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MutationResponse{Message: MessageDeleted})
}

// HandleUploadAvatar handles POST /api/v1/avatars with a multipart "file" part
// and an optional "existing_avatar_url" field naming the avatar being replaced.
func (h *Handler) HandleUploadAvatar(c *gin.Context) {
	ctx := c.Request.Context()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.avatarMaxBytes+multipartOverhead)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			apierrors.RespondWithError(c, h.fileTooLarge())
			return
		}
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "An avatar file is required"))
		return
	}
	defer file.Close()

	if header.Size > h.avatarMaxBytes {
		apierrors.RespondWithError(c, h.fileTooLarge())
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.avatarMaxBytes+1))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Could not read the avatar file"))
		return
	}
	if int64(len(data)) > h.avatarMaxBytes {
		apierrors.RespondWithError(c, h.fileTooLarge())
		return
	}

	url, err := h.processor.UploadAvatar(ctx, processor.UploadAvatarRequest{
		ExistingAvatarURL: c.PostForm("existing_avatar_url"),
		Data:              data,
		Extension:         filepath.Ext(header.Filename),
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AvatarResponse{Message: MessageAvatarUploaded, AvatarURL: url})
}

func (h *Handler) fileTooLarge() *apierrors.APIError {
	return apierrors.RequestEntityTooLarge(apierrors.CodeFileTooLarge, "Avatar file is too large")
}

func (h *Handler) referralID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid referral id"))
		return uuid.Nil, false
	}
	return id, true
}
